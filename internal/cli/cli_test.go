package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/flowserve"
	"github.com/aretw0/flowserve/pkg/adapters/redis"
	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtinEngine(t *testing.T) *flowserve.Engine {
	t.Helper()
	def, err := BuiltinWorkflow()
	require.NoError(t, err)
	return flowserve.NewFromDefinition(def)
}

func TestBuiltinWorkflow(t *testing.T) {
	eng := builtinEngine(t)

	t.Run("discount", func(t *testing.T) {
		res := eng.Run(context.Background(), domain.Input{Body: map[string]any{"customer": "ana", "prices": []any{40.0, 80.0}}})
		require.True(t, res.Responded, res.Logs)
		resp := res.Response.(map[string]any)
		assert.Equal(t, 2.0, resp["items"])
		assert.Equal(t, 120.0, resp["subtotal"])
		assert.InDelta(t, 108.0, resp["total"], 1e-9)
	})

	t.Run("full price", func(t *testing.T) {
		res := eng.Run(context.Background(), domain.Input{Body: map[string]any{"customer": "bo", "prices": []any{10.0, 20.0}}})
		require.True(t, res.Responded, res.Logs)
		assert.Equal(t, 30.0, res.Response.(map[string]any)["total"])
	})

	t.Run("validation", func(t *testing.T) {
		res := eng.Run(context.Background(), domain.Input{Body: map[string]any{"prices": "none"}})
		require.True(t, res.Responded)
		resp := res.Response.(map[string]any)
		assert.Equal(t, "Bad Request", resp["error"])
	})
}

func TestOpenSource(t *testing.T) {
	t.Run("builtin", func(t *testing.T) {
		src, err := OpenSource(Config{})
		require.NoError(t, err)
		assert.Equal(t, BuiltinName, src.Name)
		assert.Nil(t, src.Publisher)
		assert.NoError(t, src.Close())
	})

	t.Run("file", func(t *testing.T) {
		src, err := OpenSource(Config{GraphPath: "testdata/branch.json"})
		require.NoError(t, err)
		assert.Equal(t, "branch", src.Name)
		def, err := src.Loader.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, def.Nodes, 4)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		src, err := OpenSource(Config{RedisAddr: mr.Addr(), RedisKey: "graphs:main", RedisChannel: redis.DefaultChannel})
		require.NoError(t, err)
		defer src.Close()
		assert.Equal(t, "graphs:main", src.Name)
		require.NotNil(t, src.Publisher)
	})
}

func TestBuildInput(t *testing.T) {
	bodyFile := filepath.Join(t.TempDir(), "body.json")
	require.NoError(t, os.WriteFile(bodyFile, []byte(`{"x": 1}`), 0o644))

	in, err := BuildInput(RunOptions{
		Method:  "post",
		Path:    "/a/b",
		Body:    "@" + bodyFile,
		Query:   []string{"page=2", "q=a=b"},
		Headers: []string{"X-Token=abc"},
	})
	require.NoError(t, err)
	assert.Equal(t, "POST", in.Method)
	assert.Equal(t, "a/b", in.Params["path"])
	assert.Equal(t, map[string]string{"page": "2", "q": "a=b"}, in.Query)
	assert.Equal(t, map[string]string{"x-token": "abc"}, in.Headers)
	assert.Equal(t, map[string]any{"x": 1.0}, in.Body)

	_, err = BuildInput(RunOptions{Query: []string{"novalue"}})
	assert.ErrorContains(t, err, "--query")
	_, err = BuildInput(RunOptions{Body: "{bad"})
	assert.ErrorContains(t, err, "--body")
}

func TestRunOnce_JSON(t *testing.T) {
	var out bytes.Buffer
	res, err := RunOnce(context.Background(), builtinEngine(t), RunOptions{
		Method: "POST",
		Body:   `{"customer": "ana", "prices": [5]}`,
		Format: FormatJSON,
	}, &out)
	require.NoError(t, err)
	assert.True(t, res.Responded)

	var report map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "success", report["status"])
	assert.NotEmpty(t, report["run_id"])
	assert.Contains(t, report["visited"], "quote")
}

func TestRunOnce_MermaidAndFailure(t *testing.T) {
	eng := flowserve.NewFromDefinition(domain.Definition{Nodes: []domain.Node{{ID: "f", Type: domain.NodeTypeFunction}}})

	var out bytes.Buffer
	_, err := RunOnce(context.Background(), eng, RunOptions{Format: FormatJSON, Mermaid: true}, &out)
	assert.ErrorIs(t, err, ErrRunFailed)
	assert.Contains(t, out.String(), "graph TD")

	_, err = RunOnce(context.Background(), eng, RunOptions{Format: "xml"}, io.Discard)
	assert.ErrorContains(t, err, "unknown format")
}

func TestPublish(t *testing.T) {
	mr := miniredis.RunT(t)
	loader := redis.New(mr.Addr(), "", 0)
	defer loader.Close()

	def, err := Publish(context.Background(), "testdata/branch.json", loader)
	require.NoError(t, err)
	assert.Len(t, def.Nodes, 4)

	stored, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, def.Nodes, stored.Nodes)

	_, err = Publish(context.Background(), "testdata/branch.json", nil)
	assert.ErrorIs(t, err, ErrNoPublisher)
}

func TestNewServer(t *testing.T) {
	src, err := OpenSource(Config{})
	require.NoError(t, err)

	srv, err := NewServer(context.Background(), ServeConfig{Addr: ":0"}, src, nil)
	require.Error(t, err, "port 0 is rejected by validation")
	assert.Nil(t, srv)

	srv, err = NewServer(context.Background(), ServeConfig{Addr: "127.0.0.1:8080"}, src, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/quote", strings.NewReader(`{"customer": "ana", "prices": [200]}`))
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total"`)

	m := httptest.NewRecorder()
	srv.MetricsHandler().ServeHTTP(m, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, m.Body.String(), `flowserve_runs_total{status="success"} 1`)
	assert.Contains(t, m.Body.String(), `flowserve_node_executions_total{node_type="data_op"} 2`)
}

func TestServer_ListenAndServeStopsOnCancel(t *testing.T) {
	src, err := OpenSource(Config{})
	require.NoError(t, err)
	srv, err := NewServer(context.Background(), ServeConfig{Addr: "127.0.0.1:18089", Watch: true}, src, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	cancel()
	assert.NoError(t, <-done)
}

func TestQuoteExampleFilesMatchBuiltin(t *testing.T) {
	input := domain.Input{Method: "POST", Body: map[string]any{"customer": "ana", "prices": []any{40.0, 80.0}}}
	want := builtinEngine(t).Run(context.Background(), input)
	require.True(t, want.Responded)

	for _, name := range []string{"workflow.hcl", "workflow.yaml"} {
		t.Run(name, func(t *testing.T) {
			src, err := OpenSource(Config{GraphPath: filepath.Join("..", "..", "examples", "quote", name)})
			require.NoError(t, err)
			eng, err := flowserve.Load(context.Background(), src.Loader)
			require.NoError(t, err)

			got := eng.Run(context.Background(), input)
			require.True(t, got.Responded, got.Logs)
			assert.Equal(t, want.Response, got.Response)
			assert.Equal(t, want.Visited, got.Visited)
		})
	}
}
