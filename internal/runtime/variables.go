package runtime

import "fmt"

// Variables is the request-scoped variable store of one run.
//
// Keys keep their first insertion order, which drives interpolation order.
// Loop iteration indices live in a separate namespace so they can never collide
// with, or be interpolated as, user variables.
type Variables struct {
	keys   []string
	values map[string]any
	loops  map[string]int
}

// NewVariables creates an empty store.
func NewVariables() *Variables {
	return &Variables{
		values: make(map[string]any),
		loops:  make(map[string]int),
	}
}

// Get returns the value stored under key.
func (v *Variables) Get(key string) (any, bool) {
	val, ok := v.values[key]
	return val, ok
}

// Has reports whether key is defined, even when it holds null.
func (v *Variables) Has(key string) bool {
	_, ok := v.values[key]
	return ok
}

// Set defines or overwrites key. Overwriting keeps the original position.
func (v *Variables) Set(key string, val any) {
	if _, ok := v.values[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.values[key] = val
}

// Keys returns the defined keys in insertion order.
func (v *Variables) Keys() []string {
	return append([]string(nil), v.keys...)
}

// Len returns the number of defined keys.
func (v *Variables) Len() int {
	return len(v.keys)
}

// Snapshot returns a shallow copy of the user variables.
func (v *Variables) Snapshot() map[string]any {
	out := make(map[string]any, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}

// LoopIndex returns the next element index of the given loop node.
func (v *Variables) LoopIndex(nodeID string) int {
	return v.loops[nodeID]
}

// SetLoopIndex stores the next element index of the given loop node.
func (v *Variables) SetLoopIndex(nodeID string, index int) {
	v.loops[nodeID] = index
}

func (v *Variables) String() string {
	return fmt.Sprintf("Variables(%d keys, %d loops)", len(v.keys), len(v.loops))
}

// Trace is the append-only, human-readable execution log of one run.
type Trace struct {
	lines []string
}

// Add appends a formatted line.
func (t *Trace) Add(format string, args ...any) {
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// Lines returns a copy of the accumulated lines.
func (t *Trace) Lines() []string {
	return append([]string{}, t.lines...)
}
