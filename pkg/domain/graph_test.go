package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraph(t *testing.T) {
	def := domain.Definition{
		Nodes: []domain.Node{
			{ID: "v", Type: domain.NodeTypeVariable},
			{ID: "start", Type: domain.NodeTypeAPI, Data: map[string]any{"label": "first"}},
			{ID: "other", Type: domain.NodeTypeAPI},
			{ID: "v", Type: domain.NodeTypeFunction},
		},
		Edges: []domain.Edge{
			{Source: "start", Target: "v"},
			{Source: "start", Target: "other"},
			{Source: "ghost", Target: "start"},
		},
	}

	g := domain.NewGraph(def)

	assert.Equal(t, 3, g.Len())

	v, ok := g.Node("v")
	require.True(t, ok)
	assert.Equal(t, domain.NodeTypeFunction, v.Type, "last definition wins")
	assert.Equal(t, "v", g.Nodes()[0].ID, "first position is kept")

	entry, ok := g.Entry()
	require.True(t, ok)
	assert.Equal(t, "start", entry.ID)
	assert.Equal(t, "first", entry.Label())

	out := g.Outgoing("start")
	require.Len(t, out, 2)
	assert.Equal(t, "v", out[0].Target)
	assert.Equal(t, "other", out[1].Target)
	assert.Empty(t, g.Outgoing("other"))

	rebuilt := g.Definition()
	assert.Len(t, rebuilt.Nodes, 3)
	assert.Equal(t, def.Edges, rebuilt.Edges)
}

func TestGraph_NoEntry(t *testing.T) {
	g := domain.NewGraph(domain.Definition{Nodes: []domain.Node{{ID: "r", Type: domain.NodeTypeResponse}}})
	_, ok := g.Entry()
	assert.False(t, ok)

	_, ok = g.Node("missing")
	assert.False(t, ok)
}

func TestEdge_UnmarshalJSON(t *testing.T) {
	var def domain.Definition
	err := json.Unmarshal([]byte(`{
		"nodes": [{"id": "a", "type": "logic", "data": {"condition": "x > 1"}}],
		"edges": [
			{"source": "a", "target": "b", "sourceHandle": "true"},
			{"source": "a", "target": "c", "handle": "false"},
			{"source": "a", "target": "d", "sourceHandle": null},
			{"source": "a", "target": "e", "handle": "done", "sourceHandle": "do"}
		]
	}`), &def)
	require.NoError(t, err)

	require.Len(t, def.Edges, 4)
	assert.Equal(t, "true", def.Edges[0].Handle)
	assert.Equal(t, "false", def.Edges[1].Handle)
	assert.Equal(t, "", def.Edges[2].Handle)
	assert.Equal(t, "done", def.Edges[3].Handle)
	assert.Equal(t, "x > 1", def.Nodes[0].Data["condition"])
}

func TestNode_Label(t *testing.T) {
	assert.Equal(t, "", domain.Node{}.Label())
	assert.Equal(t, "", domain.Node{Data: map[string]any{"label": 3}}.Label())
	assert.Equal(t, "Entry", domain.Node{Data: map[string]any{"label": "Entry"}}.Label())
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "", domain.NoOutcome().Handle())
	assert.Equal(t, domain.HandleTrue, domain.LogicOutcome(true).Handle())
	assert.Equal(t, domain.HandleFalse, domain.LogicOutcome(false).Handle())
	assert.Equal(t, domain.HandleDo, domain.LoopOutcome(domain.LoopDo).Handle())
	assert.Equal(t, domain.HandleDone, domain.LoopOutcome(domain.LoopDone).Handle())
	assert.Equal(t, "", domain.ResponseOutcome(nil).Handle())

	assert.True(t, domain.ResponseOutcome(nil).IsTerminal())
	assert.False(t, domain.LogicOutcome(true).IsTerminal())
	assert.Equal(t, "response", domain.OutcomeResponse.String())
}

func TestResult_JSON(t *testing.T) {
	res := domain.Result{
		Status:    domain.StatusSuccess,
		Response:  map[string]any{"ok": true},
		Responded: true,
		RunID:     "abc",
	}

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","response":{"ok":true}}`, string(raw))
	assert.True(t, res.IsSuccess())

	missing, err := json.Marshal(domain.Result{Error: domain.MessageNoEntryPoint})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"No API Entry Point found"}`, string(missing))
}

func TestInput_AsMap(t *testing.T) {
	in := domain.Input{Method: "GET", Path: "/x", Query: map[string]string{"a": "1"}}
	m := in.AsMap()
	assert.Equal(t, "GET", m["method"])
	assert.Equal(t, map[string]any{"a": "1"}, m["query"])
	assert.Equal(t, map[string]any{}, m["headers"])
	assert.Nil(t, m["body"])
}
