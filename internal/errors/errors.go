// Package errors defines the failure taxonomy shared by the inspection
// operations and the rule that splits it into caller-correctable and
// infrastructure failures.
package errors

import (
	sterrors "errors"
	"fmt"
)

// ErrAmbiguousConnection is returned when no connection name is given and
// more than one instance is configured.
var ErrAmbiguousConnection = sterrors.New("ambiguous connection: multiple Redis instances connected, specify 'connection' parameter")

// ConnectionNotFoundError reports a connection name with no registry match.
type ConnectionNotFoundError struct {
	Name string
}

func (e ConnectionNotFoundError) Error() string {
	return fmt.Sprintf("connection not found: %s", e.Name)
}

// ReadOnlyError is reserved for write operations attempted while the server
// runs without write mode.
type ReadOnlyError struct {
	Operation string
}

func (e ReadOnlyError) Error() string {
	return fmt.Sprintf("write operation rejected: %s", e.Operation)
}

// StoreError wraps any failure reported by the backing store. The message of
// the underlying error is passed through unchanged.
type StoreError struct {
	Err error
}

func (e StoreError) Error() string {
	return fmt.Sprintf("redis error: %v", e.Err)
}

func (e StoreError) Unwrap() error {
	return e.Err
}

// ValidationError is a local validation failure, such as a forbidden byte in
// a pattern or a malformed argument.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// Store wraps err as a StoreError. It returns nil for a nil err and leaves
// errors that are already StoreErrors untouched.
func Store(err error) error {
	if err == nil {
		return nil
	}
	var se StoreError
	if sterrors.As(err, &se) {
		return err
	}
	return StoreError{Err: err}
}

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...any) error {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Class is the user-visible category of a failure.
type Class int

const (
	// ClassInvalidInput means the caller can fix the parameters and retry.
	ClassInvalidInput Class = iota
	// ClassInternal means the caller should not retry blindly.
	ClassInternal
)

func (c Class) String() string {
	switch c {
	case ClassInvalidInput:
		return "invalid_input"
	case ClassInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Classify maps err onto one of the two user-visible classes. Store errors and
// anything outside the taxonomy are internal.
func Classify(err error) Class {
	var (
		notFound   ConnectionNotFoundError
		readOnly   ReadOnlyError
		validation ValidationError
		storeErr   StoreError
	)
	switch {
	case sterrors.As(err, &storeErr):
		return ClassInternal
	case sterrors.Is(err, ErrAmbiguousConnection),
		sterrors.As(err, &notFound),
		sterrors.As(err, &readOnly),
		sterrors.As(err, &validation):
		return ClassInvalidInput
	default:
		return ClassInternal
	}
}
