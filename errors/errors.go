/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a widget, repository or entity type is not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when registering something that is already registered
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrParameterConflict is returned when two parameter sets bind the same name to different values
	ErrParameterConflict = errors.New("parameter conflict")

	// ErrUnknownMode is returned when a listing carries a mode the query pipeline does not know
	ErrUnknownMode = errors.New("unknown listing mode")

	// ErrNoIndexMap is returned when no index map is found for a type
	ErrNoIndexMap = errors.New("no index map found for type")
)

// NotFoundError represents an error when something is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when something is already registered
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ParameterConflictError is returned when merging parameter sets that bind
// the same name to different values.
type ParameterConflictError struct {
	Name  string
	Inner any
	Outer any
}

func (e *ParameterConflictError) Error() string {
	return fmt.Sprintf("parameter %q bound twice with different values (%v, %v)", e.Name, e.Inner, e.Outer)
}

func (e *ParameterConflictError) Is(target error) bool {
	return target == ErrParameterConflict
}

// UnknownModeError represents a listing mode outside the supported set
type UnknownModeError struct {
	Mode string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown listing mode %q", e.Mode)
}

func (e *UnknownModeError) Is(target error) bool {
	return target == ErrUnknownMode
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind, key string) error {
	return &NotFoundError{Type: kind, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(kind, key string) error {
	return &AlreadyExistsError{Type: kind, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewParameterConflictError creates a new ParameterConflictError
func NewParameterConflictError(name string, inner, outer any) error {
	return &ParameterConflictError{Name: name, Inner: inner, Outer: outer}
}

// NewUnknownModeError creates a new UnknownModeError
func NewUnknownModeError(mode string) error {
	return &UnknownModeError{Mode: mode}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsParameterConflict checks if an error is a parameter conflict
func IsParameterConflict(err error) bool {
	return errors.Is(err, ErrParameterConflict)
}

// IsUnknownMode checks if an error is an unknown listing mode error
func IsUnknownMode(err error) bool {
	return errors.Is(err, ErrUnknownMode)
}
