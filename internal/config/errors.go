package config

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrUnknownType indicates a modifier or trigger type with no factory.
	ErrUnknownType = errors.New("unknown type")

	// ErrAlreadyRegistered indicates a duplicate factory registration.
	ErrAlreadyRegistered = errors.New("factory already registered")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes one invalid setting in a binding table.
type ValidationError struct {
	// Path locates the setting, e.g. "context[gameplay].action[move].trigger[0]".
	Path string
	// Message describes the validation error.
	Message string
	// Value is the invalid value, if one applies.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors collects every validation failure in a binding table so
// a malformed file reports all its problems at once.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:", len(e))
	for _, ve := range e {
		b.WriteString("\n  ")
		b.WriteString(ve.Error())
	}
	return b.String()
}

// ErrorOrNil returns the collection as an error, or nil when empty.
func (e ValidationErrors) ErrorOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
