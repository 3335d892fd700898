package schema

import (
	"fmt"
	"reflect"
	"sort"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "order").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %s", jsonKind(value))
	}
	return nil
}

// OrderType validates step order references: null or a positive whole number.
type OrderType struct{}

func (t *OrderType) Name() string { return "order" }

func (t *OrderType) Validate(value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case int:
		if v > 0 {
			return nil
		}
	case float64:
		// JSON numbers decode as float64
		if v == float64(int64(v)) && v > 0 {
			return nil
		}
	default:
		return fmt.Errorf("expected null or positive integer, got %s", jsonKind(value))
	}
	return fmt.Errorf("expected null or positive integer, got %v", value)
}

// SliceType validates arrays of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return fmt.Errorf("expected array, got %s", jsonKind(value))
	}
	for i := 0; i < rv.Len(); i++ {
		if err := t.elemType.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// ObjectType validates a nested document against a Schema.
type ObjectType struct {
	name   string
	schema Schema
}

func (t *ObjectType) Name() string { return t.name }

func (t *ObjectType) Validate(value any) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("expected object, got %s", jsonKind(value))
	}
	return Validate(t.schema, obj)
}

// OptionalType marks a field that may be absent.
type OptionalType struct {
	Type
}

func (t *OptionalType) Name() string { return t.Type.Name() + "?" }

// String creates a string type validator.
func String() Type { return &StringType{} }

// Order creates a step order reference validator.
func Order() Type { return &OrderType{} }

// Slice creates an array validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Object creates a nested document validator.
func Object(name string, s Schema) Type {
	return &ObjectType{name: name, schema: s}
}

// Optional allows the field to be missing. Present values are still validated.
func Optional(t Type) Type {
	return &OptionalType{Type: t}
}

// Transition validates an outgoing transition. Every key is optional; the
// ones present must have the right shape.
func Transition() Type {
	return Object("transition", Schema{
		"condition":       Optional(String()),
		"next_step_order": Optional(Order()),
	})
}

// Clause validates one clause of a condition step. Like Transition, it
// checks shapes only.
func Clause() Type {
	return Object("clause", Schema{
		"field":           Optional(String()),
		"operator":        Optional(String()),
		"value":           Optional(Any()),
		"next_step_order": Optional(Order()),
	})
}

// Any accepts every value.
func Any() Type { return anyType{} }

type anyType struct{}

func (anyType) Name() string         { return "any" }
func (anyType) Validate(_ any) error { return nil }

func jsonKind(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func sortedKeys(s Schema) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
