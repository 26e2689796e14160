package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/flowserve/pkg/domain"
)

var knownTypes = map[domain.NodeType]bool{
	domain.NodeTypeAPI:       true,
	domain.NodeTypeVariable:  true,
	domain.NodeTypeLogic:     true,
	domain.NodeTypeMath:      true,
	domain.NodeTypeDataOp:    true,
	domain.NodeTypeInterface: true,
	domain.NodeTypeLoop:      true,
	domain.NodeTypeFunction:  true,
	domain.NodeTypeResponse:  true,
}

var validHandles = map[domain.NodeType][]string{
	domain.NodeTypeLogic: {domain.HandleTrue, domain.HandleFalse},
	domain.NodeTypeLoop:  {domain.HandleDo, domain.HandleDone},
}

// Report lists the problems found in a graph.
// Errors make runs fail; warnings point at edges or nodes that can never fire.
type Report struct {
	Errors   []string
	Warnings []string
}

// Err folds the errors of the report into one error, or nil.
func (r Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(r.Errors), strings.Join(r.Errors, "\n- "))
}

// ValidateGraph checks for broken links and unreachable nodes starting from the entry node.
func ValidateGraph(g *domain.Graph) Report {
	var r Report

	entry, ok := g.Entry()
	if !ok {
		r.Errors = append(r.Errors, "No api entry node")
	}

	for _, node := range g.Nodes() {
		if !knownTypes[node.Type] {
			r.Warnings = append(r.Warnings, fmt.Sprintf("Unknown node type '%s' on '%s' (it will be skipped)", node.Type, node.ID))
		}
		for _, e := range g.Outgoing(node.ID) {
			if _, found := g.Node(e.Target); !found {
				r.Errors = append(r.Errors, fmt.Sprintf("Missing node: '%s' (edge from '%s')", e.Target, node.ID))
			}
			if handles, routed := validHandles[node.Type]; routed && !contains(handles, e.Handle) {
				r.Warnings = append(r.Warnings, fmt.Sprintf("Edge '%s' -> '%s' has handle %q, expected one of %s",
					node.ID, e.Target, e.Handle, strings.Join(handles, "/")))
			}
		}
	}

	for _, e := range g.Definition().Edges {
		if _, found := g.Node(e.Source); !found {
			r.Warnings = append(r.Warnings, fmt.Sprintf("Edge from unknown node '%s' to '%s'", e.Source, e.Target))
		}
	}

	if !ok {
		return r
	}

	// Crawler
	visited := map[string]bool{entry.ID: true}
	queue := []string{entry.ID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, e := range g.Outgoing(current) {
			if !visited[e.Target] {
				visited[e.Target] = true
				queue = append(queue, e.Target)
			}
		}
	}

	for _, node := range g.Nodes() {
		// Variable nodes run before traversal and need no incoming edge.
		if node.Type == domain.NodeTypeVariable || visited[node.ID] {
			continue
		}
		r.Warnings = append(r.Warnings, fmt.Sprintf("Unreachable node: '%s'", node.ID))
	}
	return r
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
