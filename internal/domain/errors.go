package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput signals a malformed request value.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidScale signals a chart scale that is not a positive finite number.
	ErrInvalidScale = errors.New("invalid chart scale")

	// ErrUnauthorized signals a missing or unknown session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSessionExpired signals a session past its expiry.
	ErrSessionExpired = errors.New("session expired")
	// ErrMissingCredentials signals an empty identifier or password.
	ErrMissingCredentials = errors.New("please fill in all fields")
	// ErrInvalidCredentials signals credentials rejected by the identity provider.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrOAuthUnsupported signals that the configured provider has no OAuth flow.
	ErrOAuthUnsupported = errors.New("oauth sign-in not supported by identity provider")
	// ErrOAuthStateMismatch signals an unknown or reused OAuth state parameter.
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")
	// ErrTooManyAttempts signals that too many sign-ins are in flight.
	ErrTooManyAttempts = errors.New("too many pending sign-in attempts")
	// ErrProviderUnavailable signals an identity provider failure.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// ProviderError carries the message an identity provider attached to a rejected sign-in.
// The message is safe to show to the user.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError wraps a sentinel with a user-facing provider message.
func NewProviderError(sentinel error, message string) error {
	return &ProviderError{Message: message, Err: sentinel}
}
