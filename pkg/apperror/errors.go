package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrFieldNotSet        = errors.New("field not set")
	ErrDocumentTypeNotSet = errors.New("document type must be set before document number")
	ErrNegativeLimit      = errors.New("limit must be non-negative")
)

// ValidationError reports a value with a bad format, bad characters, a bad
// length or a logical mismatch with another field.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func NewValidation(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// TypeError reports an input of the wrong dynamic type.
type TypeError struct {
	Field string
	Got   any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: Incorrect type of input data (%T)", e.Field, e.Got)
}

// ImmutabilityError reports an attempt to change or remove a set-once field.
type ImmutabilityError struct {
	Field string
}

func (e *ImmutabilityError) Error() string {
	return fmt.Sprintf("Field %q mustn't be changed", e.Field)
}

// StorageError reports an unreachable, missing or malformed backing store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// WithField returns err with its field name filled in when err is a
// *ValidationError that does not carry one yet. Other errors pass through.
func WithField(err error, field string) error {
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Field == "" {
		tagged := *ve
		tagged.Field = field
		return &tagged
	}
	return err
}

// Kind names the error kind for log fields.
func Kind(err error) string {
	var (
		ve *ValidationError
		te *TypeError
		ie *ImmutabilityError
		se *StorageError
	)
	switch {
	case errors.As(err, &se):
		return "storage"
	case errors.As(err, &ie):
		return "immutability"
	case errors.As(err, &te):
		return "type"
	case errors.As(err, &ve):
		return "validation"
	case errors.Is(err, ErrFieldNotSet):
		return "attribute"
	default:
		return "unknown"
	}
}
