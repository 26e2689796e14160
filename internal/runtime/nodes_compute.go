package runtime

import (
	"errors"
	"math"

	"github.com/aretw0/flowserve/pkg/domain"
)

var errModuloByZero = errors.New("modulo by zero")

type mathConfig struct {
	ValA      any    `mapstructure:"valA"`
	ValB      any    `mapstructure:"valB"`
	Op        string `mapstructure:"op"`
	ResultVar string `mapstructure:"resultVar"`
}

// executeMath applies a binary operator to two resolved operands.
//
// When either operand is not numeric, "+" falls back to text concatenation and
// every other operator leaves the result variable untouched.
func executeMath(rs *runState, node domain.Node) (domain.Outcome, error) {
	var cfg mathConfig
	if err := decodeData(node, map[string]any{"op": "+", "resultVar": "result"}, &cfg); err != nil {
		return domain.NoOutcome(), err
	}

	a := rs.resolver.Resolve(cfg.ValA)
	b := rs.resolver.Resolve(cfg.ValB)

	numA, errA := toNumber(a)
	numB, errB := toNumber(b)
	if errA == nil && errB == nil {
		res, err := applyOperator(cfg.Op, numA, numB)
		if err == nil {
			result := normalizeNumber(res)
			rs.vars.Set(cfg.ResultVar, result)
			rs.trace.Add("Math: %s %s %s = %s",
				Stringify(normalizeNumber(numA)), cfg.Op, Stringify(normalizeNumber(numB)), Stringify(result))
			return domain.NoOutcome(), nil
		}
		rs.logger.Debug("math operator failed", "node_id", node.ID, "op", cfg.Op, "err", err)
	}

	if cfg.Op == "+" {
		result := Stringify(a) + Stringify(b)
		rs.vars.Set(cfg.ResultVar, result)
		rs.trace.Add("Math (Str): %s + %s = %s", Stringify(a), Stringify(b), result)
		return domain.NoOutcome(), nil
	}

	rs.trace.Add("Math Error: Could not process %s %s %s", Stringify(a), cfg.Op, Stringify(b))
	return domain.NoOutcome(), nil
}

// applyOperator computes a op b. Unknown operators yield 0.
func applyOperator(op string, a, b float64) (float64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, nil
		}
		return a / b, nil
	case "%":
		if b == 0 {
			return 0, errModuloByZero
		}
		return floorMod(a, b), nil
	default:
		return 0, nil
	}
}

type dataOpConfig struct {
	Collection any    `mapstructure:"collection"`
	Op         string `mapstructure:"op"`
	ResultVar  string `mapstructure:"resultVar"`
}

// executeDataOp aggregates a collection. sum, avg, min and max only see the
// elements that coerce to numbers, booleans excluded; count includes every element.
func executeDataOp(rs *runState, node domain.Node) (domain.Outcome, error) {
	var cfg dataOpConfig
	if err := decodeData(node, map[string]any{"op": "sum", "resultVar": "summary"}, &cfg); err != nil {
		return domain.NoOutcome(), err
	}

	source := rs.collection(cfg.Collection, false)
	items, ok := toSlice(source)
	if !ok {
		rs.trace.Add("DataNode Error: Input is not a list. Value: %s", truncate(Stringify(source), 20))
		items = nil
	}

	result := aggregate(cfg.Op, items)
	rs.vars.Set(cfg.ResultVar, result)
	rs.trace.Add("Data Op: %s(len=%d) = %s", cfg.Op, len(items), Stringify(result))
	return domain.NoOutcome(), nil
}

func aggregate(op string, items []any) any {
	if op == "count" {
		return len(items)
	}

	nums := make([]float64, 0, len(items))
	for _, item := range items {
		if _, isBool := item.(bool); isBool {
			continue
		}
		if f, err := toNumber(item); err == nil {
			nums = append(nums, f)
		}
	}

	switch op {
	case "sum":
		return normalizeNumber(sum(nums))
	case "avg":
		if len(nums) == 0 {
			return 0
		}
		return normalizeNumber(sum(nums) / float64(len(nums)))
	case "min":
		if len(nums) == 0 {
			return 0
		}
		m := nums[0]
		for _, n := range nums[1:] {
			m = math.Min(m, n)
		}
		return normalizeNumber(m)
	case "max":
		if len(nums) == 0 {
			return 0
		}
		m := nums[0]
		for _, n := range nums[1:] {
			m = math.Max(m, n)
		}
		return normalizeNumber(m)
	default:
		return 0
	}
}

func sum(nums []float64) float64 {
	var total float64
	for _, n := range nums {
		total += n
	}
	return total
}
