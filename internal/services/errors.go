package services

import (
	"errors"
	"fmt"
)

// ValidationError covers empty required fields, all-blank content and
// rename targets that collide with another project.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func newValidationError(format string, v ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, v...)}
}

// NotFoundError means the referenced index or id is no longer present.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func newNotFoundError(format string, v ...interface{}) *NotFoundError {
	return &NotFoundError{Msg: fmt.Sprintf(format, v...)}
}

// FormatError means an import payload is malformed.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string { return e.Msg }

func newFormatError(format string, v ...interface{}) *FormatError {
	return &FormatError{Msg: fmt.Sprintf(format, v...)}
}

// StorageUnavailableError means the persistent store is inaccessible.
type StorageUnavailableError struct {
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return "storage unavailable: " + e.Err.Error()
}

func (e *StorageUnavailableError) Unwrap() error { return e.Err }

// ErrNoChange is the "no change" outcome of a rename to the current name.
// It is reported as information, not as a validation failure.
var ErrNoChange = errors.New("no change")
