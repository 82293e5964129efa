// Package errs provides the error kinds shared by the proofreading packages.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrConfiguration marks fatal setup problems: an empty terminal
	// punctuation set, an unreadable input stream, a broken checker config.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
)

// ConfigError is a configuration error with context. It aborts the whole run.
type ConfigError struct {
	Field   string // Setting or input that failed (e.g. "symbols", "input")
	Message string
	Err     error // Underlying error, if any
}

func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if e.Field != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Field, msg)
	}
	return fmt.Sprintf("configuration error: %s", msg)
}

// Is lets errors.Is(err, ErrConfiguration) match while Unwrap still
// exposes the underlying cause.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config creates a ConfigError.
func Config(field, message string) error {
	return &ConfigError{Field: field, Message: message}
}

// WrapConfig wraps err as a ConfigError for field. A nil err stays nil.
func WrapConfig(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ConfigError{Field: field, Err: err}
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// Unsupported returns an error wrapping ErrUnsupported.
func Unsupported(what string) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, what)
}
