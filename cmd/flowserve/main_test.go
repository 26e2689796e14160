package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	t.Setenv("FLOWSERVE_LOG_LEVEL", "error")

	t.Run("version", func(t *testing.T) {
		out, err := execute(t, "version")
		require.NoError(t, err)
		assert.Contains(t, out, "flowserve version")
	})

	t.Run("graph", func(t *testing.T) {
		out, err := execute(t, "graph")
		require.NoError(t, err)
		assert.Contains(t, out, "graph TD")
		assert.Contains(t, out, `check -- "true" --> discount`)
	})

	t.Run("validate", func(t *testing.T) {
		out, err := execute(t, "validate")
		require.NoError(t, err)
		assert.Contains(t, out, "Workflow is valid!")
	})

	t.Run("run", func(t *testing.T) {
		out, err := execute(t, "run", "--format", "json", "--method", "POST",
			"--body", `{"customer": "ana", "prices": [60, 60]}`)
		require.NoError(t, err)

		var report map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, "success", report["status"])
		response := report["response"].(map[string]any)
		assert.InDelta(t, 108.0, response["total"], 1e-9)
	})

	t.Run("publish needs redis", func(t *testing.T) {
		_, err := execute(t, "publish", "../../internal/cli/testdata/branch.json")
		assert.Error(t, err)
	})
}
