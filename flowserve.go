package flowserve

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/flowserve/internal/runtime"
	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/aretw0/flowserve/pkg/ports"
)

// Engine is the high-level entry point for the flowserve library.
// It wraps the internal runtime and provides a simplified API for consumers.
// An Engine is immutable and safe for concurrent use.
type Engine struct {
	runtime   *runtime.Engine
	graph     *domain.Graph
	evaluator runtime.ConditionEvaluator
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	maxWaves  int
	Name      string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// ConditionEvaluator decides the branch of a logic node from its condition text and
// the run's variables.
type ConditionEvaluator = runtime.ConditionEvaluator

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithConditionEvaluator sets a custom logic evaluator for the engine.
func WithConditionEvaluator(eval ConditionEvaluator) Option {
	return func(e *Engine) {
		e.evaluator = eval
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxWaves overrides the wave safety cap of a run.
func WithMaxWaves(n int) Option {
	return func(e *Engine) {
		e.maxWaves = n
	}
}

// WithName labels the engine in logs and lifecycle events.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New initializes an Engine for an already indexed graph.
func New(graph *domain.Graph, opts ...Option) *Engine {
	eng := &Engine{graph: graph}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.graph == nil {
		eng.graph = domain.NewGraph(domain.Definition{})
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("graph", eng.Name)
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithConditionEvaluator(eng.evaluator),
		runtime.WithMaxWaves(eng.maxWaves),
		runtime.WithName(eng.Name),
	}
	eng.runtime = runtime.NewEngine(eng.graph, runtimeOpts...)
	return eng
}

// NewFromDefinition indexes def and initializes an Engine for it.
func NewFromDefinition(def domain.Definition, opts ...Option) *Engine {
	return New(domain.NewGraph(def), opts...)
}

// Load fetches the definition from loader and initializes an Engine for it.
func Load(ctx context.Context, loader ports.GraphLoader, opts ...Option) (*Engine, error) {
	def, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow: %w", err)
	}
	return NewFromDefinition(*def, opts...), nil
}

// Run executes the workflow once for input.
func (e *Engine) Run(ctx context.Context, input domain.Input) domain.Result {
	return e.runtime.Run(ctx, input)
}

// Graph returns the graph executed by the engine.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// Inspect returns the full graph definition for visualization or introspection tools.
func (e *Engine) Inspect() domain.Definition {
	return e.graph.Definition()
}
