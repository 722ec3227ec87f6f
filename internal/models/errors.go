package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrInvalidConfig ErrorType = iota
	ErrUnknownPkgTool
	ErrAmbiguous
	ErrTypeMismatch
	ErrNoPackages
	ErrMultiplePackages
	ErrFileOp
	ErrPackageParse
	ErrSigning
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrUnknownPkgTool:
		return "UnknownPkgTool"
	case ErrAmbiguous:
		return "Ambiguous"
	case ErrTypeMismatch:
		return "TypeMismatch"
	case ErrNoPackages:
		return "NoPackages"
	case ErrMultiplePackages:
		return "MultiplePackages"
	case ErrFileOp:
		return "FileOp"
	case ErrPackageParse:
		return "PackageParse"
	case ErrSigning:
		return "Signing"
	default:
		return "Unknown"
	}
}

// ConfigError represents an error while building or querying a package configuration
type ConfigError struct {
	Type  ErrorType
	Field string
	Err   error
}

// NewConfigError wraps a formatted message into a ConfigError.
func NewConfigError(t ErrorType, field, format string, args ...any) *ConfigError {
	return &ConfigError{Type: t, Field: field, Err: fmt.Errorf(format, args...)}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Field, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsType reports whether err carries a ConfigError of the given type.
func IsType(err error, t ErrorType) bool {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Type == t
	}
	return false
}
