package store

import (
	"github.com/pkg/errors"
)

// Error taxonomy shared by every adapter. Services and handlers classify
// failures with errors.Is against these sentinels; adapters wrap backend
// errors into exactly one of them at the boundary so no raw driver error
// escapes upward.
var (
	// ErrValidation marks bad input shape or range. Fix locally, do not retry.
	ErrValidation = errors.New("validation failed")

	// ErrAuthRequired marks an operation attempted without an authenticated
	// principal. Cart identity is tied 1:1 to a user, never to a device.
	ErrAuthRequired = errors.New("authentication required")

	// ErrUnavailable marks a transient backend failure. Retries are always
	// user-initiated, never automatic.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrNotFound marks an absent referenced entity. Non-fatal: callers
	// degrade display instead of failing.
	ErrNotFound = errors.New("not found")
)

func IsValidation(err error) bool   { return errors.Is(err, ErrValidation) }
func IsAuthRequired(err error) bool { return errors.Is(err, ErrAuthRequired) }
func IsUnavailable(err error) bool  { return errors.Is(err, ErrUnavailable) }
func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }

// Validationf wraps ErrValidation with a formatted reason.
func Validationf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrValidation, format, args...)
}

// Unavailable wraps a backend error into ErrUnavailable, keeping the cause
// in the chain for logs.
func Unavailable(cause error, op string) error {
	return errors.Wrapf(ErrUnavailable, "%s: %v", op, cause)
}

// NotFoundf wraps ErrNotFound with a formatted reason.
func NotFoundf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}
