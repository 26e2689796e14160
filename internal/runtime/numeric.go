package runtime

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

var errNotNumeric = errors.New("value is not numeric")

// toNumber coerces a dynamic value to float64.
// Numbers, booleans and numeric strings convert; null, blank strings and
// containers do not.
func toNumber(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, errNotNumeric
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, errNotNumeric
		}
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errNotNumeric, t)
		}
		return f, nil
	case map[string]any, []any:
		return 0, errNotNumeric
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %T", errNotNumeric, v)
	}
	return f, nil
}

// normalizeNumber stores whole results as int and everything else as float64.
func normalizeNumber(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<62 {
		return int(f)
	}
	return f
}

// floorMod returns a modulo whose sign follows the divisor.
func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// toSlice converts any slice or array to []any.
func toSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// truthy mirrors the usual dynamic-language notion of truth.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
