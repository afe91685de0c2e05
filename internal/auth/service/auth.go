package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"evently/internal/auth/validator"
	userserrors "evently/internal/users/errors"
	"evently/internal/users/repository"
	"evently/pkg/auth"
	"evently/pkg/config"
	apperrors "evently/pkg/errors"
	"evently/pkg/model"
)

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
}

type AuthService interface {
	Register(ctx context.Context, input *model.RegisterInput) (*model.User, error)
	Login(ctx context.Context, input *model.LoginInput) (*Session, error)
}

type authService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	validator *validator.AuthValidator
	cfg       *config.Config
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	authValidator *validator.AuthValidator,
	cfg *config.Config,
) AuthService {
	return &authService{
		users:     users,
		tokens:    tokens,
		validator: authValidator,
		cfg:       cfg,
	}
}

// Register creates a user with the non-privileged role. Admin accounts are
// provisioned out of band (cmd/seed), never through this endpoint.
func (s *authService) Register(ctx context.Context, input *model.RegisterInput) (*model.User, error) {
	if err := s.validator.ValidateRegister(input); err != nil {
		return nil, invalidInput(err)
	}

	passwordHash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("Email already registered")
		}
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User registered", "user_id", user.ID.Hex(), "email", user.Email)
	return user, nil
}

func (s *authService) Login(ctx context.Context, input *model.LoginInput) (*Session, error) {
	if err := s.validator.ValidateLogin(input); err != nil {
		return nil, invalidInput(err)
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, input.Password); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	identity := auth.Identity{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}

	token, expiresAt, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("User logged in", "user_id", identity.ID, "role", identity.Role)
	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func invalidInput(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]any, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details[fieldErr.Field] = fieldErr.Message
		}
		return apperrors.InvalidInput("Missing or invalid fields").WithDetails(details)
	}
	return apperrors.InvalidInput(err.Error())
}
