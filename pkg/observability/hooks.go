package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/flowserve/pkg/domain"
)

// LoggingHooks returns hooks that log every run and node transition at debug level.
// Node failures are logged as warnings.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	if logger == nil {
		return domain.LifecycleHooks{}
	}
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.DebugContext(ctx, "run_start", "run_id", e.RunID, "graph", e.Graph)
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			logger.DebugContext(ctx, "run_end",
				"run_id", e.RunID,
				"status", e.Status,
				"waves", e.Waves,
				"duration", e.Duration,
			)
		},
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_enter",
				"run_id", e.RunID,
				"node_id", e.NodeID,
				"type", e.NodeType,
				"wave", e.Wave,
			)
		},
		OnNodeLeave: func(ctx context.Context, e *domain.NodeEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "node_failed",
					"run_id", e.RunID,
					"node_id", e.NodeID,
					"error", e.Err,
				)
				return
			}
			logger.DebugContext(ctx, "node_leave",
				"run_id", e.RunID,
				"node_id", e.NodeID,
				"outcome", e.Outcome.String(),
			)
		},
	}
}

// ChainHooks merges several hook sets. Callbacks run in argument order.
func ChainHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var (
		runStart  []func(context.Context, *domain.RunEvent)
		runEnd    []func(context.Context, *domain.RunEvent)
		nodeEnter []func(context.Context, *domain.NodeEvent)
		nodeLeave []func(context.Context, *domain.NodeEvent)
	)
	for _, h := range sets {
		if h.OnRunStart != nil {
			runStart = append(runStart, h.OnRunStart)
		}
		if h.OnRunEnd != nil {
			runEnd = append(runEnd, h.OnRunEnd)
		}
		if h.OnNodeEnter != nil {
			nodeEnter = append(nodeEnter, h.OnNodeEnter)
		}
		if h.OnNodeLeave != nil {
			nodeLeave = append(nodeLeave, h.OnNodeLeave)
		}
	}
	return domain.LifecycleHooks{
		OnRunStart:  chainRun(runStart),
		OnRunEnd:    chainRun(runEnd),
		OnNodeEnter: chainNode(nodeEnter),
		OnNodeLeave: chainNode(nodeLeave),
	}
}

func chainRun(fns []func(context.Context, *domain.RunEvent)) func(context.Context, *domain.RunEvent) {
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, e *domain.RunEvent) {
		for _, fn := range fns {
			fn(ctx, e)
		}
	}
}

func chainNode(fns []func(context.Context, *domain.NodeEvent)) func(context.Context, *domain.NodeEvent) {
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, e *domain.NodeEvent) {
		for _, fn := range fns {
			fn(ctx, e)
		}
	}
}
