package errors

import (
	"errors"
	"fmt"
)

// Common error types for the rental console.
var (
	// Login failures, surfaced verbatim to the login view
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTimeout            = errors.New("login request timed out")
	ErrServerError        = errors.New("server error")
	ErrUnknown            = errors.New("login failed")

	// Session errors
	ErrSessionExpired = errors.New("session expired")
	ErrNoSession      = errors.New("no active session")

	// Navigation errors
	ErrRouteNotFound = errors.New("route not found")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
