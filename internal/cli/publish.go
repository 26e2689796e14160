package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/flowserve/pkg/adapters/file"
	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/aretw0/flowserve/pkg/ports"
)

// ErrNoPublisher is returned when the configured source cannot store graphs.
var ErrNoPublisher = errors.New("configured source cannot publish graphs (set --redis-addr)")

// Publish reads a graph file and stores it through pub.
func Publish(ctx context.Context, path string, pub ports.GraphPublisher) (*domain.Definition, error) {
	if pub == nil {
		return nil, ErrNoPublisher
	}
	def, err := file.NewLoader(path).Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := pub.Publish(ctx, def); err != nil {
		return nil, fmt.Errorf("failed to publish %s: %w", path, err)
	}
	return def, nil
}
