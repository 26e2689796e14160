package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/flowserve/internal/presentation/graph"
	"github.com/aretw0/flowserve/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		def      domain.Definition
		overlay  *graph.GraphOverlay
		contains []string
	}{
		{
			name: "Node Shapes",
			def: domain.Definition{Nodes: []domain.Node{
				{ID: "entry", Type: domain.NodeTypeAPI},
				{ID: "fn", Type: domain.NodeTypeFunction},
				{ID: "each", Type: domain.NodeTypeLoop},
				{ID: "out", Type: domain.NodeTypeResponse},
				{ID: "v", Type: domain.NodeTypeVariable},
				{ID: "sum", Type: domain.NodeTypeMath},
			}},
			contains: []string{
				`entry(("entry"))`,
				`fn[["fn"]]`,
				`each{{"each"}}`,
				`out[/"out"/]`,
				`v[("v")]`,
				`sum["sum"]`,
			},
		},
		{
			name: "Logic Condition Escaping",
			def: domain.Definition{Nodes: []domain.Node{
				{ID: "check", Type: domain.NodeTypeLogic, Data: map[string]any{"condition": `name == "bob"`}},
			}},
			contains: []string{
				`check{"check <br/> name == 'bob'"}`,
			},
		},
		{
			name: "Labels and ID Sanitization",
			def: domain.Definition{Nodes: []domain.Node{
				{ID: "api-1", Type: domain.NodeTypeAPI, Data: map[string]any{"label": "Orders"}},
				{ID: "path/to.node", Type: domain.NodeTypeFunction},
			}},
			contains: []string{
				`api_1(("Orders <br/> api-1"))`,
				`path_to_node[["path/to.node"]]`,
			},
		},
		{
			name: "Handled Edges",
			def: domain.Definition{
				Nodes: []domain.Node{
					{ID: "a", Type: domain.NodeTypeAPI},
					{ID: "b", Type: domain.NodeTypeLogic},
					{ID: "c", Type: domain.NodeTypeResponse},
				},
				Edges: []domain.Edge{
					{Source: "a", Target: "b"},
					{Source: "b", Target: "c", Handle: domain.HandleTrue},
				},
			},
			contains: []string{
				"a --> b",
				`b -- "true" --> c`,
			},
		},
		{
			name: "Overlay",
			def: domain.Definition{Nodes: []domain.Node{
				{ID: "a", Type: domain.NodeTypeAPI},
				{ID: "b", Type: domain.NodeTypeResponse},
			}},
			overlay: graph.OverlayFromResult(domain.Result{Visited: []string{"a", "a", "b"}}),
			contains: []string{
				"class a visited;",
				"class b current;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(domain.NewGraph(tt.def), tt.overlay)
			if !strings.HasPrefix(got, "graph TD\n") {
				t.Errorf("GenerateMermaid() missing header:\n%v", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
		})
	}
}

func TestGenerateMermaid_OverlayDeduplicates(t *testing.T) {
	g := domain.NewGraph(domain.Definition{Nodes: []domain.Node{{ID: "a", Type: domain.NodeTypeAPI}}})
	got := graph.GenerateMermaid(g, &graph.GraphOverlay{VisitedNodes: []string{"a", "a"}})
	if n := strings.Count(got, "class a visited;"); n != 1 {
		t.Errorf("expected one visited class line, got %d:\n%v", n, got)
	}
}

func TestGenerateMermaid_NilGraph(t *testing.T) {
	if got := graph.GenerateMermaid(nil, nil); got != "graph TD\n" {
		t.Errorf("GenerateMermaid(nil) = %q", got)
	}
}
