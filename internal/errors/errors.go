package errors

import (
	"errors"
	"fmt"
)

// Common error values for the admin console client.
var (
	// Session errors. The messages are part of the backend-facing contract
	// and are surfaced to the operator verbatim.
	ErrSessionExpired = errors.New("Session expired. Please login again.")
	ErrNoRefreshToken = errors.New("No refresh token available")
	ErrNoAccessToken  = errors.New("No token available")

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
