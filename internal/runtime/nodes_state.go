package runtime

import (
	"encoding/json"

	"github.com/aretw0/flowserve/pkg/domain"
)

type variableConfig struct {
	Name  string `mapstructure:"name"`
	Value any    `mapstructure:"value"`
	Type  string `mapstructure:"type"`
}

// executeVariable stores a resolved value. Values declared as "json" or "array"
// that arrive as text are parsed; text that does not parse is stored as is.
func executeVariable(rs *runState, node domain.Node) (domain.Outcome, error) {
	var cfg variableConfig
	if err := decodeData(node, map[string]any{"type": "string"}, &cfg); err != nil {
		return domain.NoOutcome(), err
	}
	if cfg.Name == "" {
		return domain.NoOutcome(), nil
	}

	value := rs.resolver.Resolve(cfg.Value)
	if cfg.Type == "json" || cfg.Type == "array" {
		if text, ok := value.(string); ok {
			var parsed any
			if err := json.Unmarshal([]byte(text), &parsed); err == nil {
				value = parsed
			} else {
				rs.logger.Debug("variable value is not valid json", "node_id", node.ID, "err", err)
			}
		}
	}

	rs.vars.Set(cfg.Name, value)
	rs.trace.Add("Set Variable '%s' = %s...", cfg.Name, truncate(Stringify(value), 50))
	return domain.NoOutcome(), nil
}

type functionConfig struct {
	FuncName string `mapstructure:"funcName"`
}

// executeFunction is a placeholder that only records its name.
func executeFunction(rs *runState, node domain.Node) (domain.Outcome, error) {
	var cfg functionConfig
	if err := decodeData(node, map[string]any{"funcName": "func"}, &cfg); err != nil {
		return domain.NoOutcome(), err
	}
	rs.trace.Add("Ran function %s", cfg.FuncName)
	return domain.NoOutcome(), nil
}

// executePassThrough does nothing; it is used by entry nodes.
func executePassThrough(_ *runState, _ domain.Node) (domain.Outcome, error) {
	return domain.NoOutcome(), nil
}
