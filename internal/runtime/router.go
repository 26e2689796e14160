package runtime

import "github.com/aretw0/flowserve/pkg/domain"

// executed pairs a node with the outcome of its execution in the current wave.
type executed struct {
	node    domain.Node
	outcome domain.Outcome
}

// nextWave collects the eligible targets of every node executed in a wave.
// Targets are deduplicated and kept in first-seen order.
func nextWave(g *domain.Graph, wave []executed) []string {
	var next []string
	seen := make(map[string]struct{})
	for _, ex := range wave {
		for _, edge := range g.Outgoing(ex.node.ID) {
			if !eligible(ex.node.Type, ex.outcome, edge) {
				continue
			}
			if _, dup := seen[edge.Target]; dup {
				continue
			}
			seen[edge.Target] = struct{}{}
			next = append(next, edge.Target)
		}
	}
	return next
}

// eligible applies the routing table: logic and loop nodes follow only the edge
// whose handle matches their outcome, every other node follows all edges.
func eligible(nodeType domain.NodeType, outcome domain.Outcome, edge domain.Edge) bool {
	switch nodeType {
	case domain.NodeTypeLogic:
		return outcome.Kind == domain.OutcomeLogic && edge.Handle == outcome.Handle()
	case domain.NodeTypeLoop:
		return outcome.Kind == domain.OutcomeLoop && edge.Handle == outcome.Handle()
	default:
		return true
	}
}
