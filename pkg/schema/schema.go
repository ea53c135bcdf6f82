// Package schema validates the shape of machine definition documents before
// they are decoded. It is a small structural type system: field names map to
// expected types, required by default, and unknown fields are rejected so
// typos in hand-written YAML surface as errors instead of silently dropped
// declarations.
package schema

import (
	"fmt"
	"reflect"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type.
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// Schema maps field names to their expected types.
type Schema map[string]Type

// Validate checks data against the schema. Fields are required unless marked
// Optional; fields absent from the schema are an error. All failures found
// are aggregated.
func Validate(s Schema, data map[string]any) error {
	var errs []error

	for fieldName, fieldType := range s {
		value, exists := data[fieldName]
		if !exists {
			if _, opt := fieldType.(*optionalType); !opt {
				errs = append(errs, &ValidationError{Key: fieldName, Reason: "required"})
			}
			continue
		}
		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: fieldName, Reason: err.Error(), Value: value})
		}
	}

	for fieldName := range data {
		if _, known := s[fieldName]; !known {
			errs = append(errs, &ValidationError{Key: fieldName, Reason: "unknown field"})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

type stringType struct{}

func (*stringType) Name() string { return "string" }

func (*stringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

type boolType struct{}

func (*boolType) Name() string { return "bool" }

func (*boolType) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

type anyType struct{}

func (*anyType) Name() string { return "any" }

func (*anyType) Validate(any) error { return nil }

type sliceType struct {
	elem Type
}

func (t *sliceType) Name() string { return fmt.Sprintf("[%s]", t.elem.Name()) }

func (t *sliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected list, got %T", value)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := t.elem.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

type mapType struct{}

func (*mapType) Name() string { return "map" }

func (*mapType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return fmt.Errorf("expected mapping, got %T", value)
	}
	return nil
}

type optionalType struct {
	inner Type
}

func (t *optionalType) Name() string { return t.inner.Name() + "?" }

func (t *optionalType) Validate(value any) error {
	if value == nil {
		return nil
	}
	return t.inner.Validate(value)
}

// String validates string values.
func String() Type { return &stringType{} }

// Bool validates boolean values.
func Bool() Type { return &boolType{} }

// Any accepts any value; the consumer interprets it.
func Any() Type { return &anyType{} }

// Slice validates lists with elements of the given type.
func Slice(elem Type) Type { return &sliceType{elem: elem} }

// Map validates that the value is a mapping, without constraining its keys.
func Map() Type { return &mapType{} }

// Optional marks a field as allowed to be absent or null.
func Optional(inner Type) Type { return &optionalType{inner: inner} }
