package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	vars := NewVariables()
	items := []any{1.0, 2.0}
	vars.Set("items", items)
	vars.Set("name", "Ada")
	vars.Set("a", 1)
	vars.Set("b", 2)
	r := NewResolver(vars)

	t.Run("non-string is returned unchanged", func(t *testing.T) {
		assert.Equal(t, 5, r.Resolve(5))
		assert.Nil(t, r.Resolve(nil))
	})

	t.Run("single reference keeps the stored type", func(t *testing.T) {
		assert.Equal(t, items, r.Resolve("{items}"))
		assert.Equal(t, 1, r.Resolve("{a}"))
	})

	t.Run("undefined single reference is left as is", func(t *testing.T) {
		assert.Equal(t, "{missing}", r.Resolve("{missing}"))
	})

	t.Run("mixed text is interpolated", func(t *testing.T) {
		assert.Equal(t, "Hi Ada!", r.Resolve("Hi {name}!"))
		assert.Equal(t, "12", r.Resolve("{a}{b}"))
		assert.Equal(t, "n=[1,2]", r.Resolve("n={items}"))
	})

	t.Run("plain text is returned unchanged", func(t *testing.T) {
		assert.Equal(t, "hello", r.Resolve("hello"))
		assert.Equal(t, "{", r.Resolve("{"))
	})
}

func TestResolver_InterpolateFollowsInsertionOrder(t *testing.T) {
	vars := NewVariables()
	vars.Set("a", "{b}")
	vars.Set("b", "x")
	r := NewResolver(vars)

	assert.Equal(t, "value x", r.Interpolate("value {a}"))
	assert.Equal(t, "{unknown} x", r.Interpolate("{unknown} {b}"))
}

func TestResolver_RenderJSON(t *testing.T) {
	vars := NewVariables()
	vars.Set("sum", 42)
	vars.Set("ratio", 0.5)
	vars.Set("ok", true)
	vars.Set("name", "Ada")
	vars.Set("list", []any{"x", 1.0})
	vars.Set("quoted", `a"b`)
	r := NewResolver(vars)

	t.Run("numbers and booleans round-trip", func(t *testing.T) {
		payload, err := r.RenderJSON(`{"total": {sum}, "ratio": {ratio}, "ok": {ok}}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"total": 42.0, "ratio": 0.5, "ok": true}, payload)
	})

	t.Run("quote-free strings round-trip", func(t *testing.T) {
		payload, err := r.RenderJSON(`{"name": "{name}"}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Ada"}, payload)
	})

	t.Run("containers are inserted as json", func(t *testing.T) {
		payload, err := r.RenderJSON(`{"list": {list}}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"list": []any{"x", 1.0}}, payload)
	})

	t.Run("quote in a string value breaks the document", func(t *testing.T) {
		_, err := r.RenderJSON(`{"v": "{quoted}"}`)
		assert.Error(t, err)
	})
}

func TestStringify(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{true, "true"},
		{false, "false"},
		{"<raw>", "<raw>"},
		{3.0, "3"},
		{2.5, "2.5"},
		{7, "7"},
		{map[string]any{"b": 1, "a": "<"}, `{"a":"<","b":1}`},
		{[]any{1, "x", nil}, `[1,"x",null]`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Stringify(tt.in), "Stringify(%#v)", tt.in)
	}
}

func TestVariables(t *testing.T) {
	vars := NewVariables()
	vars.Set("b", 1)
	vars.Set("a", 2)
	vars.Set("b", 3)
	vars.Set("n", nil)

	assert.Equal(t, []string{"b", "a", "n"}, vars.Keys())
	assert.True(t, vars.Has("n"))
	v, ok := vars.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	vars.SetLoopIndex("loop", 2)
	assert.Equal(t, 2, vars.LoopIndex("loop"))
	assert.Equal(t, 0, vars.LoopIndex("other"))
	assert.NotContains(t, vars.Snapshot(), "loop")

	snap := vars.Snapshot()
	snap["b"] = "changed"
	v, _ = vars.Get("b")
	assert.Equal(t, 3, v, "snapshot is a copy")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "çã", truncate("çãõ", 2))
}
