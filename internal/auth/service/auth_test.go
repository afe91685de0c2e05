package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"evently/internal/auth/validator"
	userserrors "evently/internal/users/errors"
	"evently/pkg/auth"
	"evently/pkg/config"
	apperrors "evently/pkg/errors"
	"evently/pkg/logger"
	"evently/pkg/model"
)

type mockUserRepository struct {
	createFunc      func(ctx context.Context, user *model.User) error
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = primitive.NewObjectID()
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func newTestService(users *mockUserRepository) (AuthService, *auth.TokenService) {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.FormatJSON,
		Output:  io.Discard,
		Service: "test",
	})
	cfg := &config.Config{Log: log}
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewAuthService(users, tokens, validator.NewAuthValidator(log), cfg), tokens
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	return appErr.StatusCode()
}

func TestRegisterHashesPasswordAndForcesUserRole(t *testing.T) {
	var stored *model.User
	users := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			stored = user
			user.ID = primitive.NewObjectID()
			return nil
		},
	}
	svc, _ := newTestService(users)

	input := &model.RegisterInput{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "correct horse battery",
	}
	user, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored == nil {
		t.Fatal("expected user to be persisted")
	}
	if stored.PasswordHash == input.Password || stored.PasswordHash == "" {
		t.Error("expected password to be stored as a hash")
	}
	if err := auth.ComparePassword(stored.PasswordHash, input.Password); err != nil {
		t.Errorf("stored hash does not verify against the password: %v", err)
	}
	if user.Role != model.RoleUser {
		t.Errorf("expected role %q, got %q", model.RoleUser, user.Role)
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	var created bool
	users := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			created = true
			return nil
		},
	}
	svc, _ := newTestService(users)

	tests := []struct {
		name  string
		input *model.RegisterInput
	}{
		{"missing name", &model.RegisterInput{Email: "a@example.com", Password: "long enough pw"}},
		{"bad email", &model.RegisterInput{Name: "A", Email: "not-an-email", Password: "long enough pw"}},
		{"short password", &model.RegisterInput{Name: "A", Email: "a@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created = false
			_, err := svc.Register(context.Background(), tt.input)
			if statusOf(t, err) != http.StatusBadRequest {
				t.Errorf("expected 400, got %v", err)
			}
			if created {
				t.Error("expected no user record for invalid input")
			}
		})
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	users := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			return userserrors.ErrDuplicateEmail
		},
	}
	svc, _ := newTestService(users)

	input := &model.RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "long enough pw",
	}
	_, err := svc.Register(context.Background(), input)
	if statusOf(t, err) != http.StatusConflict {
		t.Errorf("expected 409, got %v", err)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	hash, err := auth.HashPassword("long enough pw")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	stored := &model.User{
		ID:           primitive.NewObjectID(),
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	users := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return stored, nil
		},
	}
	svc, tokens := newTestService(users)

	session, err := svc.Login(context.Background(), &model.LoginInput{
		Email:    "ada@example.com",
		Password: "long enough pw",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.Token == "" {
		t.Fatal("expected a session token")
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Errorf("expected future expiry, got %v", session.ExpiresAt)
	}

	identity, err := tokens.Verify(session.Token)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if identity.ID != stored.ID.Hex() || identity.Role != model.RoleUser {
		t.Errorf("unexpected identity in token: %+v", identity)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestService(&mockUserRepository{})

	_, err := svc.Login(context.Background(), &model.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever works",
	})
	if statusOf(t, err) != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("the real password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	users := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           primitive.NewObjectID(),
				Email:        email,
				PasswordHash: hash,
				Role:         model.RoleUser,
			}, nil
		},
	}
	svc, _ := newTestService(users)

	_, err = svc.Login(context.Background(), &model.LoginInput{
		Email:    "ada@example.com",
		Password: "a wrong password",
	})
	if statusOf(t, err) != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}
