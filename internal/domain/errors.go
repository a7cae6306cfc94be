package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrUsage         = errors.New("usage error")
	ErrInputRead     = errors.New("input read error")
	ErrOutputWrite   = errors.New("output write error")
	ErrInvalidFormat = errors.New("invalid output format")
)

// UsageError describes a bad command line.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage: %s", e.Message)
}

func (e *UsageError) Unwrap() error { return ErrUsage }

// NewUsageError creates a UsageError with a formatted message.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}
