package capability

import (
	"fmt"
	"math"
)

// Type tags the shape of a single schema field.
type Type int

const (
	TypeString Type = iota
	TypeNumber
	TypeInteger
	TypeBoolean
	TypeEnum
	TypeList
	TypeObject
)

// String returns the JSON-facing name of the type tag.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeInteger:
		return "integer"
	case TypeBoolean:
		return "boolean"
	case TypeEnum:
		return "enum"
	case TypeList:
		return "array"
	case TypeObject:
		return "object"
	}
	return "unknown"
}

// Field describes one accepted input parameter.
type Field struct {
	Name        string
	Description string
	Type        Type
	Required    bool
	Default     any
	// EnumValues holds the accepted values for TypeEnum fields.
	EnumValues []string
	// Elem describes the element shape for TypeList fields.
	Elem *Field
	// Fields describes the children for TypeObject fields.
	Fields []Field
}

// Schema is the ordered set of fields a capability accepts. The zero value
// is a schema with no parameters.
type Schema struct {
	Fields []Field
}

// FieldOption configures a Field at declaration time.
type FieldOption func(*Field)

// Required marks the field as mandatory.
func Required() FieldOption {
	return func(f *Field) { f.Required = true }
}

// Default sets the value applied when an optional field is omitted.
func Default(v any) FieldOption {
	return func(f *Field) { f.Default = v }
}

// Description sets the human-readable field description surfaced to the
// planning component.
func Description(s string) FieldOption {
	return func(f *Field) { f.Description = s }
}

// NewSchema builds a schema from the given fields, preserving order.
func NewSchema(fields ...Field) Schema {
	return Schema{Fields: fields}
}

// String declares a string field.
func String(name string, opts ...FieldOption) Field {
	return newField(name, TypeString, opts)
}

// Number declares a floating-point field.
func Number(name string, opts ...FieldOption) Field {
	return newField(name, TypeNumber, opts)
}

// Integer declares an integral field. Values arriving as JSON numbers are
// accepted when they carry no fractional part.
func Integer(name string, opts ...FieldOption) Field {
	return newField(name, TypeInteger, opts)
}

// Boolean declares a boolean field.
func Boolean(name string, opts ...FieldOption) Field {
	return newField(name, TypeBoolean, opts)
}

// Enum declares a string field constrained to the given values.
func Enum(name string, values []string, opts ...FieldOption) Field {
	f := newField(name, TypeEnum, opts)
	f.EnumValues = values
	return f
}

// List declares a homogeneous array field. elem describes the element shape;
// its name is ignored.
func List(name string, elem Field, opts ...FieldOption) Field {
	f := newField(name, TypeList, opts)
	f.Elem = &elem
	return f
}

// Object declares a nested object field with its own child fields.
func Object(name string, fields []Field, opts ...FieldOption) Field {
	f := newField(name, TypeObject, opts)
	f.Fields = fields
	return f
}

func newField(name string, t Type, opts []FieldOption) Field {
	f := Field{Name: name, Type: t}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// check verifies that the schema declaration itself is well formed. Called
// once at registration; a failure here is a programming error in the
// capability catalog and aborts startup.
func (s Schema) check() error {
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if err := f.check(seen); err != nil {
			return err
		}
	}
	return nil
}

func (f Field) check(seen map[string]struct{}) error {
	if f.Name == "" {
		return fmt.Errorf("field with empty name")
	}
	if _, dup := seen[f.Name]; dup {
		return fmt.Errorf("field %s declared twice", f.Name)
	}
	seen[f.Name] = struct{}{}

	switch f.Type {
	case TypeEnum:
		if len(f.EnumValues) == 0 {
			return fmt.Errorf("enum field %s has no values", f.Name)
		}
	case TypeList:
		if f.Elem == nil {
			return fmt.Errorf("list field %s has no element type", f.Name)
		}
		if f.Elem.Type == TypeEnum && len(f.Elem.EnumValues) == 0 {
			return fmt.Errorf("list field %s: enum element has no values", f.Name)
		}
		if f.Elem.Type == TypeList && f.Elem.Elem == nil {
			return fmt.Errorf("list field %s: nested list element has no element type", f.Name)
		}
	case TypeObject:
		childSeen := make(map[string]struct{}, len(f.Fields))
		for _, c := range f.Fields {
			if err := c.check(childSeen); err != nil {
				return fmt.Errorf("object field %s: %w", f.Name, err)
			}
		}
	}

	if f.Default != nil {
		if _, err := f.normalize(f.Default); err != nil {
			return fmt.Errorf("field %s: default value: %w", f.Name, err)
		}
	}
	if f.Required && f.Default != nil {
		return fmt.Errorf("field %s: required fields cannot declare defaults", f.Name)
	}
	return nil
}

// Mode selects how unknown input keys are treated during validation.
type Mode int

const (
	// Lenient drops unknown keys. This is the default: planning components
	// occasionally hallucinate extra parameters and a dropped key is
	// preferable to a failed invocation.
	Lenient Mode = iota

	// Strict rejects unknown keys with an UnknownFieldError.
	Strict
)

// Validate checks raw input against the schema and returns a normalized
// input map: required fields present with matching types, defaults applied
// for omitted optional fields, list elements and nested objects normalized
// recursively. The raw map is never mutated.
func (s Schema) Validate(raw map[string]any, mode Mode) (map[string]any, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	out := make(map[string]any, len(s.Fields))

	for _, f := range s.Fields {
		v, ok := raw[f.Name]
		if !ok || v == nil {
			if f.Required {
				return nil, &MissingFieldError{Field: f.Name}
			}
			if f.Default != nil {
				norm, err := f.normalize(f.Default)
				if err != nil {
					return nil, err
				}
				out[f.Name] = norm
			}
			continue
		}
		norm, err := f.normalize(v)
		if err != nil {
			return nil, err
		}
		out[f.Name] = norm
	}

	if mode == Strict {
		declared := make(map[string]struct{}, len(s.Fields))
		for _, f := range s.Fields {
			declared[f.Name] = struct{}{}
		}
		for k := range raw {
			if _, ok := declared[k]; !ok {
				return nil, &UnknownFieldError{Field: k}
			}
		}
	}

	return out, nil
}

// normalize coerces a single value to the field's declared type.
func (f Field) normalize(v any) (any, error) {
	switch f.Type {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return nil, f.mismatch(v)
		}
		return s, nil

	case TypeNumber:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
		return nil, f.mismatch(v)

	case TypeInteger:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case float64:
			// JSON decodes every number as float64.
			if n != math.Trunc(n) {
				return nil, f.mismatch(v)
			}
			return int64(n), nil
		}
		return nil, f.mismatch(v)

	case TypeBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, f.mismatch(v)
		}
		return b, nil

	case TypeEnum:
		s, ok := v.(string)
		if !ok {
			return nil, f.mismatch(v)
		}
		for _, allowed := range f.EnumValues {
			if s == allowed {
				return s, nil
			}
		}
		return nil, &TypeMismatchError{Field: f.Name, Want: TypeEnum, Got: fmt.Sprintf("%q (allowed: %v)", s, f.EnumValues)}

	case TypeList:
		items, ok := v.([]any)
		if !ok {
			return nil, f.mismatch(v)
		}
		out := make([]any, 0, len(items))
		elem := *f.Elem
		if elem.Name == "" {
			elem.Name = f.Name + "[]"
		}
		for _, item := range items {
			norm, err := elem.normalize(item)
			if err != nil {
				return nil, err
			}
			out = append(out, norm)
		}
		return out, nil

	case TypeObject:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, f.mismatch(v)
		}
		// Nested objects are always validated leniently; strictness is a
		// top-level policy.
		return Schema{Fields: f.Fields}.Validate(m, Lenient)
	}
	return nil, f.mismatch(v)
}

func (f Field) mismatch(v any) error {
	return &TypeMismatchError{Field: f.Name, Want: f.Type, Got: fmt.Sprintf("%T", v)}
}
