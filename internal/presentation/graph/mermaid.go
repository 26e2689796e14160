package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/flowserve/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// OverlayFromResult builds an overlay from the nodes a run executed.
// The last executed node is marked as current.
func OverlayFromResult(res domain.Result) *GraphOverlay {
	o := &GraphOverlay{VisitedNodes: res.Visited}
	if n := len(res.Visited); n > 0 {
		o.CurrentNode = res.Visited[n-1]
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a graph.
// It applies semantic styling:
// - API entry: ((Circle))
// - Logic: {Rhombus}
// - Loop: {{Hexagon}}
// - Function: [[Subroutine]]
// - Interface / Response: [/Parallelogram/]
// - Variable: [(Cylinder)]
// - Default: [Rectangle]
// Edges carrying a handle are labelled with it.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if g == nil {
		return sb.String()
	}

	nodes := g.Nodes()
	for _, node := range nodes {
		safeID := sanitizeMermaidID(node.ID)
		opener, closer := shape(node.Type)
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, nodeText(node), closer))
	}

	for _, node := range nodes {
		safeID := sanitizeMermaidID(node.ID)
		for _, e := range g.Outgoing(node.ID) {
			safeTo := sanitizeMermaidID(e.Target)
			arrow := "-->"
			if e.Handle != "" {
				arrow = fmt.Sprintf("-- \"%s\" -->", escape(e.Handle))
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, safeTo))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentNode != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

func shape(t domain.NodeType) (string, string) {
	switch t {
	case domain.NodeTypeAPI:
		return "((", "))"
	case domain.NodeTypeLogic:
		return "{", "}"
	case domain.NodeTypeLoop:
		return "{{", "}}"
	case domain.NodeTypeFunction:
		return "[[", "]]"
	case domain.NodeTypeInterface, domain.NodeTypeResponse:
		return "[/", "/]"
	case domain.NodeTypeVariable:
		return "[(", ")]"
	default:
		return "[", "]"
	}
}

func nodeText(n domain.Node) string {
	text := n.ID
	if label := n.Label(); label != "" && label != n.ID {
		text = fmt.Sprintf("%s <br/> %s", label, n.ID)
	}
	if n.Type == domain.NodeTypeLogic {
		if cond, ok := n.Data["condition"].(string); ok && cond != "" {
			text = fmt.Sprintf("%s <br/> %s", text, cond)
		}
	}
	return escape(text)
}

// escape replaces double quotes, which would end a Mermaid label.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
