package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInternal            = errors.New("internal error")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenInvalid        = errors.New("token invalid")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrAlreadyVerified     = errors.New("already verified")
	ErrEmailDispatch       = errors.New("email dispatch failed")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation creates a 400 error for malformed or duplicate input.
func Validation(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// AuthenticationFailed creates a 401 error for bad credentials or an
// unverified account.
func AuthenticationFailed(message string) *AppError {
	return &AppError{
		Code:    "AUTHENTICATION_FAILED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// TokenExpired creates a 400 error for a verification token past its max age.
func TokenExpired() *AppError {
	return &AppError{
		Code:    "TOKEN_EXPIRED",
		Message: "Token has expired. Request a new one.",
		Status:  http.StatusBadRequest,
		Err:     ErrTokenExpired,
	}
}

// TokenInvalid creates a 400 error for a malformed or tampered verification token.
func TokenInvalid() *AppError {
	return &AppError{
		Code:    "TOKEN_INVALID",
		Message: "Invalid token",
		Status:  http.StatusBadRequest,
		Err:     ErrTokenInvalid,
	}
}

// InvalidRefreshToken creates a 400 error for a refresh token that fails validation.
func InvalidRefreshToken() *AppError {
	return &AppError{
		Code:    "INVALID_REFRESH_TOKEN",
		Message: "Invalid refresh token.",
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidRefreshToken,
	}
}

// AlreadyVerified creates a 400 error for confirming or resending to an
// already-active account.
func AlreadyVerified() *AppError {
	return &AppError{
		Code:    "ALREADY_VERIFIED",
		Message: "Email is already verified.",
		Status:  http.StatusBadRequest,
		Err:     ErrAlreadyVerified,
	}
}

// UserNotFound creates a 404 error for a user lookup miss surfaced to clients.
func UserNotFound() *AppError {
	return &AppError{
		Code:    "USER_NOT_FOUND",
		Message: "User not found",
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// EmailDispatch creates a 400 error wrapping a mail transport failure.
// The dispatch failure reason is client-visible.
func EmailDispatch(err error) *AppError {
	return &AppError{
		Code:    "EMAIL_DISPATCH_ERROR",
		Message: fmt.Sprintf("failed to send verification email: %v", err),
		Status:  http.StatusBadRequest,
		Err:     fmt.Errorf("%w: %w", ErrEmailDispatch, err),
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrInvalidRefreshToken),
		errors.Is(err, ErrAlreadyVerified),
		errors.Is(err, ErrEmailDispatch):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
