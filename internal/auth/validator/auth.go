package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"evently/pkg/logger"
	"evently/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

type AuthValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAuthValidator(log *logger.Logger) *AuthValidator {
	return &AuthValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *AuthValidator) ValidateRegister(input *model.RegisterInput) error {
	return v.translate(v.validate.Struct(input))
}

func (v *AuthValidator) ValidateLogin(input *model.LoginInput) error {
	return v.translate(v.validate.Struct(input))
}

func (v *AuthValidator) translate(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var out ValidationErrors
	for _, fieldErr := range validationErrs {
		message := fieldErr.Error()
		switch fieldErr.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fieldErr.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", fieldErr.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", fieldErr.Field(), fieldErr.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", fieldErr.Field(), fieldErr.Param())
		}
		out = append(out, ValidationError{Field: fieldErr.Field(), Message: message})
	}
	return out
}
