package dsl

import (
	"fmt"

	"github.com/aretw0/flowserve/pkg/adapters/memory"
	"github.com/aretw0/flowserve/pkg/domain"
)

// Builder manages the graph construction.
// Nodes keep the order in which they were first added.
type Builder struct {
	nodes map[string]*NodeBuilder
	order []string
	edges []domain.Edge
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.Node{
			ID:   id,
			Data: make(map[string]any),
		},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Definition compiles the graph. Every edge must connect known nodes.
func (b *Builder) Definition() (domain.Definition, error) {
	def := domain.Definition{
		Nodes: make([]domain.Node, 0, len(b.order)),
		Edges: append([]domain.Edge(nil), b.edges...),
	}
	for _, id := range b.order {
		nb := b.nodes[id]
		if id == "" {
			return domain.Definition{}, fmt.Errorf("node missing ID")
		}
		if nb.node.Type == "" {
			return domain.Definition{}, fmt.Errorf("node %s has no type", id)
		}
		def.Nodes = append(def.Nodes, nb.Build())
	}
	for _, e := range def.Edges {
		if _, ok := b.nodes[e.Target]; !ok {
			return domain.Definition{}, fmt.Errorf("edge %s -> %s: unknown target", e.Source, e.Target)
		}
	}
	return def, nil
}

// Build compiles the graph into a memory Loader.
func (b *Builder) Build() (*memory.Loader, error) {
	def, err := b.Definition()
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return memory.NewLoader(def), nil
}

// MustDefinition is like Definition but panics on error.
// It is meant for literal graphs known at compile time.
func (b *Builder) MustDefinition() domain.Definition {
	def, err := b.Definition()
	if err != nil {
		panic(err)
	}
	return def
}
