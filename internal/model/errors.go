// Package model provides core data types for ajar.
package model

import (
	"errors"
	"fmt"
)

// Error types for ajar operations
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrNotFound           = errors.New("record not found")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnknownPackage     = errors.New("unknown package")
	ErrHashMismatch       = errors.New("hash mismatch detected")
	ErrInvalidSQL         = errors.New("invalid SQL query")
)

// ValidationError reports which field failed which constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DuplicateKeyError is returned when inserting a key that already exists.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("key '%s' already exists", e.Key)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// NotFoundError is returned when a key is absent.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record '%s' not found", e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// invalid is shorthand for building a ValidationError.
func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
