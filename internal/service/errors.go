package service

import (
	"errors"
	"strings"
)

var (
	ErrTokenAuthFailed    = errors.New("token authentication failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError is returned when a record can't be persisted because of
// its attributes. Messages are safe to show to the client.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

func invalid(msgs ...string) *ValidationError {
	return &ValidationError{Messages: msgs}
}
