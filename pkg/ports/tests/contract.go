package tests

import (
	"context"
	"testing"

	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/aretw0/flowserve/pkg/ports"
)

// GraphLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.GraphLoader.
// want is the definition the loader was seeded with.
func GraphLoaderContractTest(t *testing.T, loader ports.GraphLoader, want *domain.Definition) {
	t.Helper()

	// 1. Load returns the seeded definition
	t.Run("Load_Success", func(t *testing.T) {
		def, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading definition: %v", err)
		}
		if def == nil {
			t.Fatal("loader returned a nil definition without error")
		}

		if len(def.Nodes) != len(want.Nodes) {
			t.Fatalf("expected %d nodes, got %d", len(want.Nodes), len(def.Nodes))
		}
		for i, n := range want.Nodes {
			if def.Nodes[i].ID != n.ID || def.Nodes[i].Type != n.Type {
				t.Errorf("node %d mismatch. got %s/%s, want %s/%s", i, def.Nodes[i].ID, def.Nodes[i].Type, n.ID, n.Type)
			}
		}

		if len(def.Edges) != len(want.Edges) {
			t.Fatalf("expected %d edges, got %d", len(want.Edges), len(def.Edges))
		}
		for i, e := range want.Edges {
			if def.Edges[i] != e {
				t.Errorf("edge %d mismatch. got %+v, want %+v", i, def.Edges[i], e)
			}
		}
	})

	// 2. Load is repeatable
	t.Run("Load_Repeatable", func(t *testing.T) {
		first, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first.Nodes) != len(second.Nodes) || len(first.Edges) != len(second.Edges) {
			t.Error("consecutive loads returned different definitions")
		}
	})

	// 3. The graph built from the definition has an entry node
	t.Run("Graph_Entry", func(t *testing.T) {
		def, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, wantEntry := domain.NewGraph(*want).Entry()
		_, gotEntry := domain.NewGraph(*def).Entry()
		if wantEntry != gotEntry {
			t.Errorf("entry presence mismatch. got %v, want %v", gotEntry, wantEntry)
		}
	})
}
