package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound       = errors.New("game not found")
	ErrGameOver           = errors.New("game is over")
	ErrDuplicateGuess     = errors.New("combination already used as a secret")
	ErrInvalidAttempt     = errors.New("invalid attempt number")
	ErrNoHistoryAtAttempt = errors.New("no combination recorded for attempt")
	ErrEncoding           = errors.New("failed to encode guess history")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)

// ValidationError reports field-level input problems
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add records a message against a field
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors reports whether any field failed
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Err returns the ValidationError as an error, or nil when no field failed
func (e *ValidationError) Err() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// TimeoutError is returned when a guess arrives after the game time limit.
// The secret is revealed to the caller.
type TimeoutError struct {
	Secret string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("game time limit exceeded (secret %s)", e.Secret)
}
