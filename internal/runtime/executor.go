package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// NodeError reports a failure raised while executing a node.
// Its message is the message of the underlying error.
type NodeError struct {
	NodeID   string
	NodeType domain.NodeType
	Err      error
}

func (e *NodeError) Error() string {
	return e.Err.Error()
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// executorFunc runs one node against the run state.
type executorFunc func(rs *runState, node domain.Node) (domain.Outcome, error)

var executors = map[domain.NodeType]executorFunc{
	domain.NodeTypeAPI:       executePassThrough,
	domain.NodeTypeVariable:  executeVariable,
	domain.NodeTypeLogic:     executeLogic,
	domain.NodeTypeMath:      executeMath,
	domain.NodeTypeDataOp:    executeDataOp,
	domain.NodeTypeInterface: executeInterface,
	domain.NodeTypeLoop:      executeLoop,
	domain.NodeTypeFunction:  executeFunction,
	domain.NodeTypeResponse:  executeResponse,
}

// runState is everything one run owns. It is never shared between runs.
type runState struct {
	ctx      context.Context
	id       string
	vars     *Variables
	trace    *Trace
	resolver *Resolver
	logger   *slog.Logger
	evaluate ConditionEvaluator
	visited  []string
	waves    int
}

func newRunState(ctx context.Context, id string, logger *slog.Logger, evaluate ConditionEvaluator) *runState {
	vars := NewVariables()
	return &runState{
		ctx:      ctx,
		id:       id,
		vars:     vars,
		trace:    &Trace{},
		resolver: NewResolver(vars),
		logger:   logger,
		evaluate: evaluate,
	}
}

// seed stores the request and its convenience aliases.
func (rs *runState) seed(input domain.Input) {
	rs.vars.Set("request", input.AsMap())
	if input.Body != nil {
		rs.vars.Set("body", input.Body)
	}
	if len(input.Query) > 0 {
		rs.vars.Set("query", input.AsMap()["query"])
	}
	if len(input.Params) > 0 {
		rs.vars.Set("params", input.AsMap()["params"])
	}
}

// execute dispatches node to its executor. Unknown types are no-ops.
func (rs *runState) execute(node domain.Node) (outcome domain.Outcome, err error) {
	rs.visited = append(rs.visited, node.ID)

	exec, ok := executors[node.Type]
	if !ok {
		rs.logger.Debug("skipping node of unknown type", "node_id", node.ID, "node_type", node.Type)
		return domain.NoOutcome(), nil
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = domain.NoOutcome()
			err = &NodeError{NodeID: node.ID, NodeType: node.Type, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	outcome, err = exec(rs, node)
	if err != nil {
		return domain.NoOutcome(), &NodeError{NodeID: node.ID, NodeType: node.Type, Err: err}
	}
	return outcome, nil
}

// decodeData decodes node.Data over defaults into out.
// Defaults only apply to keys the node does not define.
func decodeData(node domain.Node, defaults map[string]any, out any) error {
	data := make(map[string]any, len(node.Data)+len(defaults))
	for k, v := range defaults {
		data[k] = v
	}
	for k, v := range node.Data {
		data[k] = v
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("invalid %s node data: %w", node.Type, err)
	}
	return nil
}

// collection resolves the collection reference of a data_op or loop node.
// A string naming a variable yields that variable. With walkBody, "body.a.b"
// walks the request body and yields an empty list when a segment is not an object.
func (rs *runState) collection(source any, walkBody bool) any {
	value := rs.resolver.Resolve(source)
	ref, ok := value.(string)
	if !ok {
		return value
	}

	if walkBody && strings.HasPrefix(ref, "body.") {
		return rs.walkBody(strings.Split(strings.TrimPrefix(ref, "body."), "."))
	}
	if ref == "body" {
		if body, found := rs.vars.Get("body"); found {
			return body
		}
		return []any{}
	}
	if val, found := rs.vars.Get(ref); found {
		return val
	}
	return value
}

func (rs *runState) walkBody(path []string) any {
	var current any = map[string]any{}
	if body, found := rs.vars.Get("body"); found {
		current = body
	}
	for _, segment := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return []any{}
		}
		current = obj[segment]
	}
	return current
}
