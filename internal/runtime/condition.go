package runtime

import (
	"context"
	"strings"

	"github.com/expr-lang/expr"
)

// ConditionEvaluator decides the branch of a logic node.
// env holds the run's variables and is the only namespace visible to the condition.
type ConditionEvaluator func(ctx context.Context, condition string, env map[string]any) (bool, error)

// ExprEvaluator compiles the condition with expr against env, with every builtin
// function disabled, and reports the truthiness of its value. Unknown names, type
// mismatches and syntax errors are returned as errors.
func ExprEvaluator(_ context.Context, condition string, env map[string]any) (bool, error) {
	program, err := expr.Compile(condition, expr.Env(env), expr.DisableAllBuiltins())
	if err != nil {
		return false, err
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	return truthy(out), nil
}

// normalizeCondition rewrites strict (in)equality operators to plain ones.
func normalizeCondition(raw string) string {
	cond := strings.ReplaceAll(raw, "===", "==")
	return strings.ReplaceAll(cond, "!==", "!=")
}
