package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation error")
	ErrMalformedDate = errors.New("malformed date")
	ErrConflict      = errors.New("conflict")
)

// AuthErrorKind classifies login failures.
type AuthErrorKind string

const (
	AuthInvalidCredential AuthErrorKind = "invalid-credential"
	AuthInvalidEmail      AuthErrorKind = "invalid-email"
	AuthRateLimited       AuthErrorKind = "rate-limited"
	AuthUnknown           AuthErrorKind = "unknown"
)

// AuthError is returned by login; Kind is stable and safe to show callers.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("auth: %s", e.Kind)
}

func (e *AuthError) Unwrap() error { return e.Err }

// AsAuthError extracts an *AuthError from err, if present.
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
