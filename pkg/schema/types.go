package schema

import (
	"fmt"
	"reflect"
	"sync"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the name used to declare the type (e.g., "string", "number").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// NumberType validates integer or floating-point values. Booleans are rejected.
type NumberType struct{}

func (t *NumberType) Name() string { return "number" }

func (t *NumberType) Validate(value any) error {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return nil
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "boolean" }

func (t *BoolType) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("expected boolean, got %T", value)
	}
	return nil
}

// ObjectType validates key/value maps.
type ObjectType struct{}

func (t *ObjectType) Name() string { return "object" }

func (t *ObjectType) Validate(value any) error {
	if value == nil || reflect.TypeOf(value).Kind() != reflect.Map {
		return fmt.Errorf("expected object, got %T", value)
	}
	return nil
}

// ArrayType validates slices and arrays.
type ArrayType struct{}

func (t *ArrayType) Name() string { return "array" }

func (t *ArrayType) Validate(value any) error {
	if value == nil {
		return fmt.Errorf("expected array, got %T", value)
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		return nil
	default:
		return fmt.Errorf("expected array, got %T", value)
	}
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Number creates a number type validator.
func Number() Type { return &NumberType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Object creates an object type validator.
func Object() Type { return &ObjectType{} }

// Array creates an array type validator.
func Array() Type { return &ArrayType{} }

// Custom creates a named type backed by fn.
func Custom(name string, fn func(any) error) Type {
	return &CustomType{name: name, validate: fn}
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Type{
		"string":  String(),
		"number":  Number(),
		"boolean": Bool(),
		"object":  Object(),
		"array":   Array(),
	}
)

// Lookup returns the type registered under name.
func Lookup(name string) (Type, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := registry[name]
	return t, ok
}

// Register adds or replaces a named type.
func Register(t Type) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[t.Name()] = t
}
