package core

import (
	"errors"
	"fmt"
	"strings"
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("please verify your email before logging in")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrNoSession          = errors.New("no active session")
)

// Collection errors
var (
	ErrNotFound          = errors.New("entity not found")
	ErrToggleUnsupported = errors.New("entity has no toggle relationship")
	ErrAlreadyProcessing = errors.New("an analysis is already in progress")
)

// Store errors
var (
	ErrKeyNotFound = errors.New("key not found")
)

// Config errors (wiring-time configuration)
var (
	ErrStoreRequired = errors.New("store adapter is required")
)

// ValidationError reports the required fields missing from a draft entity.
// It is rejected before any state change.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Missing) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// requireFields builds a ValidationError from label/value pairs, flagging
// every label whose value is blank. Returns nil when all values are present.
func requireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Missing: missing}
}
