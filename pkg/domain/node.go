package domain

import (
	"encoding/json"
	"fmt"
)

// NodeType identifies the behaviour of a node.
type NodeType string

const (
	// NodeTypeAPI marks the entry point of the workflow.
	NodeTypeAPI NodeType = "api"
	// NodeTypeVariable declares or updates a context variable.
	NodeTypeVariable NodeType = "variable"
	// NodeTypeLogic evaluates a condition and routes through its "true"/"false" handles.
	NodeTypeLogic NodeType = "logic"
	// NodeTypeMath applies an arithmetic operator to two operands.
	NodeTypeMath NodeType = "math"
	// NodeTypeDataOp aggregates a collection (count, sum, avg, min, max).
	NodeTypeDataOp NodeType = "data_op"
	// NodeTypeInterface validates the request body against a field list.
	NodeTypeInterface NodeType = "interface"
	// NodeTypeLoop iterates a collection and routes through its "do"/"done" handles.
	NodeTypeLoop NodeType = "loop"
	// NodeTypeFunction is a placeholder that performs no computation.
	NodeTypeFunction NodeType = "function"
	// NodeTypeResponse terminates the run with a payload.
	NodeTypeResponse NodeType = "response"
)

// Routing handles carried by edges leaving logic and loop nodes.
const (
	HandleTrue  = "true"
	HandleFalse = "false"
	HandleDo    = "do"
	HandleDone  = "done"
)

// Node represents a logical unit in the graph.
// Data holds the type-specific configuration (e.g. "condition" for logic nodes).
type Node struct {
	ID   string         `json:"id" yaml:"id"`
	Type NodeType       `json:"type" yaml:"type"`
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// Label returns the human label of the node, if any.
func (n Node) Label() string {
	if l, ok := n.Data["label"].(string); ok {
		return l
	}
	return ""
}

// Edge links a source node to a target node.
// Handle is only meaningful for logic ("true"/"false") and loop ("do"/"done") sources.
type Edge struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Handle string `json:"handle,omitempty" yaml:"handle,omitempty"`
}

// UnmarshalJSON accepts the editor's "sourceHandle" field as an alias of "handle".
func (e *Edge) UnmarshalJSON(data []byte) error {
	var raw struct {
		Source       string  `json:"source"`
		Target       string  `json:"target"`
		Handle       *string `json:"handle"`
		SourceHandle *string `json:"sourceHandle"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Source = raw.Source
	e.Target = raw.Target
	e.Handle = ""
	switch {
	case raw.Handle != nil:
		e.Handle = *raw.Handle
	case raw.SourceHandle != nil:
		e.Handle = *raw.SourceHandle
	}
	return nil
}

// Definition is the authoring format of a workflow: a flat list of nodes and edges.
type Definition struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// ParseDefinition decodes a JSON workflow document.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	return &def, nil
}
