package ports

import (
	"context"

	"github.com/aretw0/flowserve/pkg/domain"
)

// GraphLoader defines how the engine retrieves a workflow definition.
// This allows the storage layer (memory, files, Redis) to be decoupled.
type GraphLoader interface {
	// Load returns the full definition. Implementations must not return a nil
	// definition together with a nil error.
	Load(ctx context.Context) (*domain.Definition, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload functionality.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying graph changes.
	// It abstracts away the specific event details, signaling only that a reload is required.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
