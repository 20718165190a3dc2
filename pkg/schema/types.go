package schema

import (
	"fmt"
	"strings"
)

// Type defines the contract for field validation.
// Implementations determine how values are validated against a kind.
type Type interface {
	// Name returns the human-readable name of the kind (e.g., "string", "number").
	Name() string
	// Validate checks if a value conforms to this kind.
	Validate(value any) error
}

// --- Built-in Kind Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// NumberType validates numeric values with optional inclusive bounds.
// JSON unmarshaling delivers numbers as float64; integer Go values are
// accepted too and normalized to float64 by Apply.
type NumberType struct {
	Min *float64
	Max *float64
}

func (t *NumberType) Name() string { return "number" }

func (t *NumberType) Validate(value any) error {
	n, ok := toFloat(value)
	if !ok {
		return fmt.Errorf("expected number, got %T", value)
	}
	if t.Min != nil && n < *t.Min {
		return fmt.Errorf("must be at least %v, got %v", *t.Min, n)
	}
	if t.Max != nil && n > *t.Max {
		return fmt.Errorf("must be at most %v, got %v", *t.Max, n)
	}
	return nil
}

// EnumType validates membership in a fixed set of string values.
type EnumType struct {
	Values []string
}

func (t *EnumType) Name() string { return "enum" }

func (t *EnumType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	for _, v := range t.Values {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("must be one of [%s], got %q", strings.Join(t.Values, ", "), s)
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	_, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// --- Factory Functions ---

// String creates a string kind.
func String() Type { return &StringType{} }

// Number creates an unbounded number kind.
func Number() Type { return &NumberType{} }

// NumberBetween creates a number kind with inclusive lower and upper bounds.
func NumberBetween(lo, hi float64) Type {
	return &NumberType{Min: &lo, Max: &hi}
}

// Enum creates an enum kind over the given string values.
func Enum(values ...string) Type { return &EnumType{Values: values} }

// Bool creates a boolean kind.
func Bool() Type { return &BoolType{} }

// toFloat converts any Go numeric value that can arrive through JSON
// decoding or literal Go code to float64.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
