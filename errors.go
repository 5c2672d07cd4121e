package auth

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	textCodeValidationFailed     = "VALIDATION_FAILED"
	textCodeRegistrationConflict = "REGISTRATION_CONFLICT"
	textCodeUserNotFound         = "USER_NOT_FOUND"
)

// ErrAuthenticationFailed is returned when the backend rejects credentials.
var ErrAuthenticationFailed = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode(textCodeAuthenticationFailed).
	WithCode(goerrors.CodeUnauthorized)

// ErrValidationFailed is returned when a payload is rejected before or by the backend.
var ErrValidationFailed = goerrors.New("invalid request payload", goerrors.CategoryValidation).
	WithTextCode(textCodeValidationFailed).
	WithCode(goerrors.CodeBadRequest)

// ErrRegistrationConflict is returned when an account already exists for the identifier.
var ErrRegistrationConflict = goerrors.New("account already exists", goerrors.CategoryConflict).
	WithTextCode(textCodeRegistrationConflict).
	WithCode(goerrors.CodeConflict)

// ErrUserNotFound is returned when the user behind a session cannot be fetched.
var ErrUserNotFound = goerrors.New("user not found", goerrors.CategoryAuth).
	WithTextCode(textCodeUserNotFound).
	WithCode(goerrors.CodeUnauthorized)

// ErrNoSession is the error when no session is available locally
var ErrNoSession = errors.New("no session available")

// ErrSessionExpired is the error for sessions past their expiry
var ErrSessionExpired = errors.New("session expired")

// ErrManagerNotRestored guards against auth actions before Restore completed
var ErrManagerNotRestored = errors.New("session manager not restored")

// IsAuthenticationError checks whether err is a credential rejection
func IsAuthenticationError(err error) bool {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == goerrors.CategoryAuth
	}
	return false
}

// IsValidationError checks whether err is a payload validation failure
func IsValidationError(err error) bool {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == goerrors.CategoryValidation
	}
	return false
}

// IsConflictError checks whether err reports an already existing record
func IsConflictError(err error) bool {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == goerrors.CategoryConflict
	}
	return false
}
