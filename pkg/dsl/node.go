package dsl

import (
	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/aretw0/flowserve/pkg/schema"
)

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

func (n *NodeBuilder) kind(t domain.NodeType) *NodeBuilder {
	n.node.Type = t
	return n
}

// Set stores an arbitrary data key on the node.
func (n *NodeBuilder) Set(key string, value any) *NodeBuilder {
	n.node.Data[key] = value
	return n
}

// Label sets the human label of the node.
func (n *NodeBuilder) Label(label string) *NodeBuilder {
	return n.Set("label", label)
}

// API marks the node as the entry point.
func (n *NodeBuilder) API() *NodeBuilder {
	return n.kind(domain.NodeTypeAPI)
}

// Variable declares a variable initialised before traversal.
func (n *NodeBuilder) Variable(name string, value any) *NodeBuilder {
	return n.kind(domain.NodeTypeVariable).Set("name", name).Set("value", value)
}

// As sets the declared type of a variable ("string", "json", "array"...).
func (n *NodeBuilder) As(varType string) *NodeBuilder {
	return n.Set("type", varType)
}

// Logic evaluates condition and routes through the "true"/"false" handles.
func (n *NodeBuilder) Logic(condition string) *NodeBuilder {
	return n.kind(domain.NodeTypeLogic).Set("condition", condition)
}

// Math stores a op b under resultVar.
func (n *NodeBuilder) Math(a any, op string, b any, resultVar string) *NodeBuilder {
	return n.kind(domain.NodeTypeMath).
		Set("valA", a).
		Set("op", op).
		Set("valB", b).
		Set("resultVar", resultVar)
}

// DataOp aggregates collection with op (count, sum, avg, min, max).
func (n *NodeBuilder) DataOp(op string, collection any, resultVar string) *NodeBuilder {
	return n.kind(domain.NodeTypeDataOp).
		Set("op", op).
		Set("collection", collection).
		Set("resultVar", resultVar)
}

// Interface validates the request body against fields.
func (n *NodeBuilder) Interface(fields ...schema.Field) *NodeBuilder {
	list := make([]any, 0, len(fields))
	for _, f := range fields {
		list = append(list, map[string]any{
			"name":     f.Name,
			"type":     f.Type,
			"required": f.Required,
		})
	}
	return n.kind(domain.NodeTypeInterface).Set("fields", list)
}

// Loop iterates collection, binding each element to variable.
func (n *NodeBuilder) Loop(collection any, variable string) *NodeBuilder {
	return n.kind(domain.NodeTypeLoop).Set("collection", collection).Set("variable", variable)
}

// Function marks the node as a named placeholder.
func (n *NodeBuilder) Function(name string) *NodeBuilder {
	return n.kind(domain.NodeTypeFunction).Set("funcName", name)
}

// Response ends the run with the JSON body template.
func (n *NodeBuilder) Response(body string) *NodeBuilder {
	return n.kind(domain.NodeTypeResponse).Set("responseType", "json").Set("body", body)
}

// RespondWith ends the run with the value of a variable.
func (n *NodeBuilder) RespondWith(variable string) *NodeBuilder {
	return n.kind(domain.NodeTypeResponse).Set("responseType", "variable").Set("body", variable)
}

// Then adds an unconditional edge to the target node.
func (n *NodeBuilder) Then(target string) *NodeBuilder {
	return n.When("", target)
}

// When adds an edge labelled with handle to the target node.
func (n *NodeBuilder) When(handle, target string) *NodeBuilder {
	n.builder.edges = append(n.builder.edges, domain.Edge{
		Source: n.node.ID,
		Target: target,
		Handle: handle,
	})
	return n
}

// True routes a logic node's true branch.
func (n *NodeBuilder) True(target string) *NodeBuilder {
	return n.When(domain.HandleTrue, target)
}

// False routes a logic node's false branch.
func (n *NodeBuilder) False(target string) *NodeBuilder {
	return n.When(domain.HandleFalse, target)
}

// Each routes a loop node's per-element branch.
func (n *NodeBuilder) Each(target string) *NodeBuilder {
	return n.When(domain.HandleDo, target)
}

// Done routes a loop node's exit branch.
func (n *NodeBuilder) Done(target string) *NodeBuilder {
	return n.When(domain.HandleDone, target)
}

// Build returns the underlying domain.Node.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.Node {
	data := make(map[string]any, len(n.node.Data))
	for k, v := range n.node.Data {
		data[k] = v
	}
	return domain.Node{ID: n.node.ID, Type: n.node.Type, Data: data}
}
