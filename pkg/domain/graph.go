package domain

// Graph is the read-only index built from a Definition.
// It is never mutated after construction and may be shared by concurrent runs.
type Graph struct {
	nodes     map[string]Node
	order     []string
	edges     []Edge
	adjacency map[string][]Edge
}

// NewGraph indexes the nodes by id and the edges by source.
// A repeated node id keeps its first position and its last definition.
func NewGraph(def Definition) *Graph {
	g := &Graph{
		nodes:     make(map[string]Node, len(def.Nodes)),
		order:     make([]string, 0, len(def.Nodes)),
		adjacency: make(map[string][]Edge),
	}
	for _, n := range def.Nodes {
		if _, seen := g.nodes[n.ID]; !seen {
			g.order = append(g.order, n.ID)
		}
		g.nodes[n.ID] = n
	}
	g.edges = append(g.edges, def.Edges...)
	for _, e := range def.Edges {
		g.adjacency[e.Source] = append(g.adjacency[e.Source], e)
	}
	return g
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every node in declaration order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Outgoing returns the edges leaving the given node, in declaration order.
// The returned slice must not be modified.
func (g *Graph) Outgoing(id string) []Edge {
	return g.adjacency[id]
}

// Entry returns the first api node in declaration order.
func (g *Graph) Entry() (Node, bool) {
	for _, id := range g.order {
		if n := g.nodes[id]; n.Type == NodeTypeAPI {
			return n, true
		}
	}
	return Node{}, false
}

// Len returns the number of distinct nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Definition rebuilds a flat definition from the index.
func (g *Graph) Definition() Definition {
	return Definition{
		Nodes: g.Nodes(),
		Edges: append([]Edge(nil), g.edges...),
	}
}
