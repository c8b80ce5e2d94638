package loader

import (
	"errors"
	"fmt"
)

// Error classes returned by the loader. Every error from Load wraps exactly one.
var (
	ErrLoad       = errors.New("scene load failed")
	ErrParse      = errors.New("scene parse failed")
	ErrValidation = errors.New("scene validation failed")
)

// ValidationError reports a field with the wrong shape, type or range
type ValidationError struct {
	Field  string // e.g. "spheres[0].center"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrValidation, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
