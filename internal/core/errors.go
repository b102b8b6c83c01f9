// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinel errors for the failure taxonomy. Repositories and services wrap
// these with fmt.Errorf("...: %w", err); route handlers map them to HTTP
// statuses at the boundary and never let them propagate unconverted.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrNotProvisioned  = errors.New("not provisioned")
	ErrUpstream        = errors.New("upstream failure")
)

type AppError struct {
	Err     error
	Message string
	Status  int
	Code    string
	Details any
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Status:  status,
		Code:    code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Unauthorized"
	}
	return NewAppError(
		ErrUnauthenticated,
		message,
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
	)
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "Forbidden"
	}
	return NewAppError(ErrForbidden, message, http.StatusForbidden, "FORBIDDEN")
}

func ValidationError(message string) *AppError {
	return NewAppError(
		ErrInvalidInput,
		message,
		http.StatusBadRequest,
		"VALIDATION",
	)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		ErrNotFound,
		resource+" not found",
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func DuplicateError(field string) *AppError {
	return NewAppError(
		ErrDuplicateKey,
		field+" already exists",
		http.StatusConflict,
		"DUPLICATE",
	)
}

func UpstreamError(err error) *AppError {
	appErr := NewAppError(
		ErrUpstream,
		"internal server error",
		http.StatusInternalServerError,
		"UPSTREAM_FAILURE",
	)
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

func FormatValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "invalid request"
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		switch fieldErr.Tag() {
		case "required":
			messages = append(messages, fieldErr.Field()+" is required")
		case "oneof":
			messages = append(messages, fmt.Sprintf(
				"%s must be one of: %s",
				fieldErr.Field(),
				fieldErr.Param(),
			))
		case "min":
			messages = append(messages, fmt.Sprintf(
				"%s must be at least %s characters",
				fieldErr.Field(),
				fieldErr.Param(),
			))
		case "max":
			messages = append(messages, fmt.Sprintf(
				"%s must be at most %s characters",
				fieldErr.Field(),
				fieldErr.Param(),
			))
		case "email":
			messages = append(messages, fieldErr.Field()+" must be a valid email")
		case "gt":
			messages = append(messages, fmt.Sprintf(
				"%s must be greater than %s",
				fieldErr.Field(),
				fieldErr.Param(),
			))
		default:
			messages = append(messages, fieldErr.Field()+" is invalid")
		}
	}

	return strings.Join(messages, "; ")
}
