package flowserve

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/aretw0/flowserve/pkg/ports"
)

// ErrNotWatchable is returned by Reloader.Watch when the loader cannot notify changes.
var ErrNotWatchable = errors.New("current loader does not support watching")

// Reloader serves runs from the most recently loaded Engine.
// Runs already in flight keep the Engine they started with.
type Reloader struct {
	loader  ports.GraphLoader
	opts    []Option
	logger  *slog.Logger
	current atomic.Pointer[Engine]
}

// NewReloader performs the initial load. It fails if that load fails.
func NewReloader(ctx context.Context, loader ports.GraphLoader, logger *slog.Logger, opts ...Option) (*Reloader, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Reloader{loader: loader, opts: opts, logger: logger}
	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload loads the definition again and swaps it in. On failure the previous
// Engine stays active.
func (r *Reloader) Reload(ctx context.Context) error {
	eng, err := Load(ctx, r.loader, r.opts...)
	if err != nil {
		return err
	}
	r.current.Store(eng)
	r.logger.Info("workflow loaded", "nodes", eng.Graph().Len())
	return nil
}

// Watch reloads on every change notification until ctx is done.
func (r *Reloader) Watch(ctx context.Context) error {
	w, ok := r.loader.(ports.Watchable)
	if !ok {
		return ErrNotWatchable
	}
	updates, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	for range updates {
		if err := r.Reload(ctx); err != nil {
			r.logger.Error("workflow reload failed", "err", err)
		}
	}
	return ctx.Err()
}

// Engine returns the active Engine.
func (r *Reloader) Engine() *Engine {
	return r.current.Load()
}

// Run executes the active workflow once for input.
func (r *Reloader) Run(ctx context.Context, input domain.Input) domain.Result {
	return r.current.Load().Run(ctx, input)
}

// Graph returns the active graph.
func (r *Reloader) Graph() *domain.Graph {
	return r.current.Load().Graph()
}
