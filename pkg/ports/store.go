package ports

import (
	"context"

	"github.com/aretw0/flowserve/pkg/domain"
)

// GraphPublisher defines a backend that can persist a workflow definition,
// so that other instances can load it later.
type GraphPublisher interface {
	// Publish stores def, replacing any previous definition.
	Publish(ctx context.Context, def *domain.Definition) error
}
