package runtime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Resolver resolves "{name}" templates against a Variables store.
//
// Interpolation is plain text replacement: for every defined key, in insertion order,
// each "{key}" is replaced by the rendering of its value. A key whose placeholder text
// occurs inside another placeholder is not disambiguated.
type Resolver struct {
	vars *Variables
}

// NewResolver binds a resolver to a store.
func NewResolver(vars *Variables) *Resolver {
	return &Resolver{vars: vars}
}

// Resolve returns non-string templates unchanged. A template made of exactly one
// "{key}" reference returns the stored value with its original type, or the
// template itself when the key is undefined. Other templates are interpolated.
func (r *Resolver) Resolve(template any) any {
	s, ok := template.(string)
	if !ok {
		return template
	}
	if key, single := singleReference(s); single {
		if val, found := r.vars.Get(key); found {
			return val
		}
		return s
	}
	if strings.Contains(s, "{") && strings.Contains(s, "}") {
		return r.Interpolate(s)
	}
	return s
}

// Interpolate replaces every "{key}" of a defined key with the key's rendering.
func (r *Resolver) Interpolate(text string) string {
	if !strings.Contains(text, "{") {
		return text
	}
	for _, key := range r.vars.keys {
		placeholder := "{" + key + "}"
		if strings.Contains(text, placeholder) {
			text = strings.ReplaceAll(text, placeholder, Stringify(r.vars.values[key]))
		}
	}
	return text
}

// RenderJSON substitutes placeholders in raw JSON text and parses the result.
//
// Substitution happens before parsing, so string values are inserted verbatim and a
// value containing a quote character can break the surrounding document; callers get
// the parse error in that case.
func (r *Resolver) RenderJSON(body string) (any, error) {
	var payload any
	if err := json.Unmarshal([]byte(r.Interpolate(body)), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func singleReference(s string) (string, bool) {
	if len(s) < 2 || !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return "", false
	}
	if strings.Count(s, "{") != 1 {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// Stringify renders a dynamic value as text: strings verbatim, null as "null",
// everything else as compact JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// kindOf names the dynamic type of v the way graph authors think of it.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	if _, ok := toSlice(v); ok {
		return "array"
	}
	if _, err := toNumber(v); err == nil {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
