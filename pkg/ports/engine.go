package ports

import (
	"context"

	"github.com/aretw0/flowserve/pkg/domain"
)

// WorkflowRunner is the interface used by driving adapters (HTTP, MCP, CLI).
// Implementations must be safe for concurrent use.
type WorkflowRunner interface {
	// Run executes the workflow once for input.
	Run(ctx context.Context, input domain.Input) domain.Result

	// Graph returns the graph being executed, for introspection.
	Graph() *domain.Graph
}
