package capability

import (
	"errors"
	"fmt"
)

// Registration-time errors. These abort startup: the registry must be
// complete and valid before the process starts serving requests.
var (
	// ErrDuplicateSlug is returned when a slug is registered twice.
	ErrDuplicateSlug = errors.New("duplicate capability slug")

	// ErrInvalidDescriptor is returned when a descriptor is structurally
	// invalid (empty slug or name, malformed schema, missing executor).
	ErrInvalidDescriptor = errors.New("invalid capability descriptor")
)

// ErrUnknownSlug is the sentinel wrapped by UnknownSlugError.
var ErrUnknownSlug = errors.New("unknown capability slug")

// UnknownSlugError reports a resolve or dispatch request for a slug that was
// never registered.
type UnknownSlugError struct {
	Slug string
}

func (e *UnknownSlugError) Error() string {
	return fmt.Sprintf("unknown capability slug: %s", e.Slug)
}

func (e *UnknownSlugError) Unwrap() error { return ErrUnknownSlug }

// Validation errors. These are per-request and surface in-band through the
// Result envelope; they never abort a batch.
var (
	// ErrMissingField is the sentinel wrapped by MissingFieldError.
	ErrMissingField = errors.New("missing field")

	// ErrTypeMismatch is the sentinel wrapped by TypeMismatchError.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnknownField is the sentinel wrapped by UnknownFieldError.
	ErrUnknownField = errors.New("unknown field")
)

// MissingFieldError reports a required field absent from the raw input.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field: %s", e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// TypeMismatchError reports a field whose value does not match the declared
// type. Want is the declared type tag, Got describes the supplied value.
type TypeMismatchError struct {
	Field string
	Want  Type
	Got   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %s: expected %s, got %s", e.Field, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// UnknownFieldError reports an input key not declared in the schema. Only
// produced in strict validation mode; lenient mode drops unknown keys.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field: %s", e.Field)
}

func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }
