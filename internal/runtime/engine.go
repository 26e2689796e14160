package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/google/uuid"
)

// DefaultMaxWaves bounds the number of waves of a single run.
const DefaultMaxWaves = 1000

// Engine interprets one workflow graph. It is immutable after construction and
// safe for concurrent use; every Run owns its own state.
type Engine struct {
	graph    *domain.Graph
	name     string
	evaluate ConditionEvaluator
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	maxWaves int
	newRunID func() string
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithConditionEvaluator replaces the logic node evaluator.
func WithConditionEvaluator(eval ConditionEvaluator) EngineOption {
	return func(e *Engine) {
		if eval != nil {
			e.evaluate = eval
		}
	}
}

// WithMaxWaves overrides DefaultMaxWaves. Non-positive values are ignored.
func WithMaxWaves(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxWaves = n
		}
	}
}

// WithName labels runs in logs and events.
func WithName(name string) EngineOption {
	return func(e *Engine) {
		e.name = name
	}
}

// WithRunIDGenerator replaces the random run id source.
func WithRunIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) {
		if fn != nil {
			e.newRunID = fn
		}
	}
}

// NewEngine creates an engine for graph.
func NewEngine(graph *domain.Graph, opts ...EngineOption) *Engine {
	if graph == nil {
		graph = domain.NewGraph(domain.Definition{})
	}
	e := &Engine{
		graph:    graph,
		evaluate: ExprEvaluator,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxWaves: DefaultMaxWaves,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the graph interpreted by the engine.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// Run executes the graph once for input and always returns a Result.
// Node failures are reported inside the Result, never as a panic.
func (e *Engine) Run(ctx context.Context, input domain.Input) domain.Result {
	started := time.Now()
	id := e.newRunID()
	logger := e.logger.With("run_id", id)
	rs := newRunState(ctx, id, logger, e.evaluate)

	e.emitRunStart(ctx, id)
	logger.Debug("run started", "method", input.Method, "path", input.Path)

	result := e.run(rs, input)
	result.RunID = id
	result.Waves = rs.waves
	result.Visited = append([]string(nil), rs.visited...)

	elapsed := time.Since(started)
	e.emitRunEnd(ctx, id, result, elapsed)
	logger.Info("run finished",
		"status", result.Status,
		"responded", result.Responded,
		"waves", result.Waves,
		"duration", elapsed,
	)
	return result
}

func (e *Engine) run(rs *runState, input domain.Input) domain.Result {
	// Variable nodes seed the store before traversal, in declaration order.
	for _, node := range e.graph.Nodes() {
		if node.Type != domain.NodeTypeVariable {
			continue
		}
		if _, err := e.step(rs, node, 0); err != nil {
			rs.trace.Add("Error executing node %s: %v", node.ID, err)
			return rs.failure(err)
		}
	}

	entry, ok := e.graph.Entry()
	if !ok {
		rs.logger.Warn("graph has no entry node", "err", domain.ErrNoEntryPoint)
		return domain.Result{Error: domain.MessageNoEntryPoint}
	}

	label := entry.Label()
	if label == "" {
		label = "API Entry"
	}
	rs.trace.Add("Started execution at %s", label)
	rs.seed(input)

	current := []string{entry.ID}
	for len(current) > 0 && rs.waves < e.maxWaves {
		rs.waves++
		wave := make([]executed, 0, len(current))

		for _, id := range current {
			node, found := e.graph.Node(id)
			if !found {
				err := fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
				rs.trace.Add("Error executing node %s: %v", id, err)
				return rs.failure(err)
			}

			rs.trace.Add("Executing Node: %s (%s)", node.Type, node.ID)
			outcome, err := e.step(rs, node, rs.waves)
			if err != nil {
				rs.trace.Add("Error executing node %s: %v", node.ID, err)
				rs.logger.Error("node failed", "node_id", node.ID, "node_type", node.Type, "err", err)
				return rs.failure(err)
			}
			if outcome.IsTerminal() {
				return domain.Result{
					Status:    domain.StatusSuccess,
					Response:  outcome.Payload,
					Logs:      rs.trace.Lines(),
					Responded: true,
				}
			}
			wave = append(wave, executed{node: node, outcome: outcome})
		}

		current = nextWave(e.graph, wave)
	}

	if len(current) > 0 {
		rs.logger.Warn("wave limit reached", "max_waves", e.maxWaves, "pending", current)
	}

	return domain.Result{
		Status:  domain.StatusSuccess,
		Message: domain.MessageNoResponse,
		Logs:    rs.trace.Lines(),
		Context: rs.vars.Snapshot(),
	}
}

// step runs one node between its lifecycle hooks.
func (e *Engine) step(rs *runState, node domain.Node, wave int) (domain.Outcome, error) {
	e.emitNodeEnter(rs, node, wave)
	outcome, err := rs.execute(node)
	e.emitNodeLeave(rs, node, wave, outcome, err)
	return outcome, err
}

func (rs *runState) failure(err error) domain.Result {
	return domain.Result{
		Status: domain.StatusError,
		Error:  err.Error(),
		Logs:   rs.trace.Lines(),
	}
}

func (e *Engine) emitRunStart(ctx context.Context, id string) {
	if e.hooks.OnRunStart == nil {
		return
	}
	e.hooks.OnRunStart(ctx, &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunStart, RunID: id},
		Graph:     e.name,
	})
}

func (e *Engine) emitRunEnd(ctx context.Context, id string, result domain.Result, elapsed time.Duration) {
	if e.hooks.OnRunEnd == nil {
		return
	}
	status := result.Status
	if status == "" {
		status = domain.StatusError
	}
	e.hooks.OnRunEnd(ctx, &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunEnd, RunID: id},
		Graph:     e.name,
		Status:    status,
		Waves:     result.Waves,
		Duration:  elapsed,
	})
}

func (e *Engine) emitNodeEnter(rs *runState, node domain.Node, wave int) {
	if e.hooks.OnNodeEnter == nil {
		return
	}
	e.hooks.OnNodeEnter(rs.ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNodeEnter, RunID: rs.id},
		NodeID:    node.ID,
		NodeType:  node.Type,
		Wave:      wave,
	})
}

func (e *Engine) emitNodeLeave(rs *runState, node domain.Node, wave int, outcome domain.Outcome, err error) {
	if e.hooks.OnNodeLeave == nil {
		return
	}
	e.hooks.OnNodeLeave(rs.ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNodeLeave, RunID: rs.id},
		NodeID:    node.ID,
		NodeType:  node.Type,
		Wave:      wave,
		Outcome:   outcome.Kind,
		Err:       err,
	})
}
