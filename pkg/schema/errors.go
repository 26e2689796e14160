package schema

import "fmt"

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key      string // Field name
	Expected string // Declared type name
	Reason   string // Human-readable reason for failure
	Value    any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", e.Key, e.Reason, e.Value)
}
