package entity

import (
	"fmt"

	"patient-records/pkg/apperror"
)

// Mutability decides whether a ValidatedField accepts reassignment.
type Mutability int

const (
	Mutable Mutability = iota
	SetOnce
)

// ValidatedField holds one normalized value. Every Set goes through the
// validator first and then through the optional record-level rule; the
// stored value only changes when both succeed.
type ValidatedField[T any] struct {
	name       string
	validate   func(T) (T, error)
	rule       func(T) error
	mutability Mutability
	value      T
	set        bool
}

func NewValidatedField[T any](name string, validate func(T) (T, error), mutability Mutability) *ValidatedField[T] {
	return &ValidatedField[T]{
		name:       name,
		validate:   validate,
		mutability: mutability,
	}
}

// WithRule attaches a check that sees the normalized value before it is stored.
func (f *ValidatedField[T]) WithRule(rule func(T) error) *ValidatedField[T] {
	f.rule = rule
	return f
}

func (f *ValidatedField[T]) Name() string {
	return f.name
}

func (f *ValidatedField[T]) IsSet() bool {
	return f.set
}

func (f *ValidatedField[T]) Get() (T, error) {
	if !f.set {
		var zero T
		return zero, fmt.Errorf("%s: %w", f.name, apperror.ErrFieldNotSet)
	}
	return f.value, nil
}

// Set validates and stores value. created is true when the field was unset
// before the call.
func (f *ValidatedField[T]) Set(value T) (created bool, err error) {
	normalized, err := f.validate(value)
	if err != nil {
		return false, apperror.WithField(err, f.name)
	}
	if f.set && f.mutability == SetOnce {
		return false, &apperror.ImmutabilityError{Field: f.name}
	}
	if f.rule != nil {
		if err := f.rule(normalized); err != nil {
			return false, apperror.WithField(err, f.name)
		}
	}

	created = !f.set
	f.value = normalized
	f.set = true
	return created, nil
}

// Delete returns the field to the unset state. A set-once field that holds a
// value cannot be deleted.
func (f *ValidatedField[T]) Delete() error {
	if f.set && f.mutability == SetOnce {
		return &apperror.ImmutabilityError{Field: f.name}
	}
	var zero T
	f.value = zero
	f.set = false
	return nil
}
