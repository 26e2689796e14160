package runtime

import (
	"github.com/aretw0/flowserve/pkg/domain"
)

type logicConfig struct {
	Condition string `mapstructure:"condition"`
}

// executeLogic evaluates the condition against the current variables.
// Any evaluation failure is logged and counts as false.
func executeLogic(rs *runState, node domain.Node) (domain.Outcome, error) {
	var cfg logicConfig
	if err := decodeData(node, map[string]any{"condition": "false"}, &cfg); err != nil {
		return domain.NoOutcome(), err
	}

	result, err := rs.evaluate(rs.ctx, normalizeCondition(cfg.Condition), rs.vars.Snapshot())
	if err != nil {
		rs.trace.Add("Logic Error: %v", err)
		return domain.LogicOutcome(false), nil
	}

	rs.trace.Add("Logic: '%s' -> %t", cfg.Condition, result)
	return domain.LogicOutcome(result), nil
}

type loopConfig struct {
	Collection any    `mapstructure:"collection"`
	Variable   string `mapstructure:"variable"`
}

// executeLoop advances the node's iteration index by one element per visit.
// Past the last element it reports "done" and rewinds, so a later visit starts over.
func executeLoop(rs *runState, node domain.Node) (domain.Outcome, error) {
	var cfg loopConfig
	if err := decodeData(node, map[string]any{"variable": "item"}, &cfg); err != nil {
		return domain.NoOutcome(), err
	}

	source := rs.collection(cfg.Collection, true)
	items, ok := toSlice(source)
	if !ok {
		rs.trace.Add("Loop Error: Collection '%s' resolved to %s, expected list. Defaulting to empty.",
			Stringify(cfg.Collection), kindOf(source))
		items = nil
	}

	index := rs.vars.LoopIndex(node.ID)
	if index < len(items) {
		item := items[index]
		if cfg.Variable != "" {
			rs.vars.Set(cfg.Variable, item)
		}
		rs.trace.Add("Loop %s: Item %d = %s", node.ID, index, truncate(Stringify(item), 20))
		rs.vars.SetLoopIndex(node.ID, index+1)
		return domain.LoopOutcome(domain.LoopDo), nil
	}

	rs.trace.Add("Loop %s: Done", node.ID)
	rs.vars.SetLoopIndex(node.ID, 0)
	return domain.LoopOutcome(domain.LoopDone), nil
}
