package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/flowserve"
	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/aretw0/flowserve/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRunner records the input it receives and returns a canned result.
type MockRunner struct {
	mu     sync.Mutex
	Input  domain.Input
	Result domain.Result
}

func (m *MockRunner) Run(_ context.Context, input domain.Input) domain.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Input = input
	return m.Result
}

func (m *MockRunner) Graph() *domain.Graph { return domain.NewGraph(domain.Definition{}) }

func TestHandle_BuildsInput(t *testing.T) {
	runner := &MockRunner{Result: domain.Result{Status: domain.StatusSuccess, Responded: true, Response: map[string]any{"ok": true}}}
	handler := NewHandler(runner)

	req := httptest.NewRequest("PATCH", "/orders/42?x=1&x=2&y=z", strings.NewReader(`{"qty": 3}`))
	req.Header.Add("X-Trace", "a")
	req.Header.Add("X-Trace", "b")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true}`, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	in := runner.Input
	assert.Equal(t, "PATCH", in.Method)
	assert.Equal(t, "/orders/42", in.Path)
	assert.Equal(t, map[string]string{"x": "2", "y": "z"}, in.Query)
	assert.Equal(t, "orders/42", in.Params["path"])
	assert.Equal(t, "a, b", in.Headers["x-trace"])
	assert.Equal(t, map[string]any{"qty": 3.0}, in.Body)
}

func TestHandle_Bodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{"empty", "", nil},
		{"malformed", "{not json", nil},
		{"list", "[1, 2]", []any{1.0, 2.0}},
		{"scalar", `"hi"`, "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &MockRunner{Result: domain.Result{Status: domain.StatusSuccess, Responded: true}}
			w := httptest.NewRecorder()
			NewHandler(runner).ServeHTTP(w, httptest.NewRequest("POST", "/", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, runner.Input.Body)
		})
	}
}

func TestHandle_StatusMapping(t *testing.T) {
	t.Run("fall-through returns the whole result", func(t *testing.T) {
		runner := &MockRunner{Result: domain.Result{
			Status:  domain.StatusSuccess,
			Message: domain.MessageNoResponse,
			Logs:    []string{"a"},
			Context: map[string]any{"k": 1},
		}}
		w := httptest.NewRecorder()
		NewHandler(runner).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var got map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, domain.MessageNoResponse, got["message"])
		assert.Equal(t, "success", got["status"])
	})

	t.Run("error", func(t *testing.T) {
		runner := &MockRunner{Result: domain.Result{Status: domain.StatusError, Error: "boom"}}
		w := httptest.NewRecorder()
		NewHandler(runner).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"status":"error","error":"boom"}`, w.Body.String())
	})

	t.Run("no entry point", func(t *testing.T) {
		runner := &MockRunner{Result: domain.Result{Error: domain.MessageNoEntryPoint}}
		w := httptest.NewRecorder()
		NewHandler(runner).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"No API Entry Point found"}`, w.Body.String())
	})
}

func TestHandle_BodyTooLarge(t *testing.T) {
	runner := &MockRunner{}
	handler := NewHandler(runner, WithMaxBodyBytes(4))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/", strings.NewReader(`{"a": "too long"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestHandle_CORS(t *testing.T) {
	runner := &MockRunner{Result: domain.Result{Status: domain.StatusSuccess, Responded: true}}
	handler := NewHandler(runner, WithCORS(true))

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/orders", nil)
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("plain options reaches the workflow", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/orders", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OPTIONS", runner.Input.Method)
	})
}

func TestHandle_Engine(t *testing.T) {
	b := dsl.New()
	b.Add("start").API().Then("check")
	b.Add("check").Logic("body.qty > 10").True("bulk").False("single")
	b.Add("bulk").Response(`{"tier": "bulk"}`)
	b.Add("single").Response(`{"tier": "single"}`)
	eng := flowserve.NewFromDefinition(b.MustDefinition())

	srv := httptest.NewServer(NewHandler(eng))
	defer srv.Close()

	for qty, want := range map[string]string{"50": "bulk", "2": "single"} {
		resp, err := http.Post(srv.URL+"/anything", "application/json", strings.NewReader(`{"qty": `+qty+`}`))
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, want, got["tier"])
	}
}
