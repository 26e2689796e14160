package file

import (
	"fmt"

	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// hclRoot decodes the top-level blocks of a workflow file:
//
//	node "start" {
//	  type = "api"
//	  data = { label = "Entry" }
//	}
//
//	edge {
//	  source = "start"
//	  target = "check"
//	  handle = "true"
//	}
type hclRoot struct {
	Nodes  []*hclNode `hcl:"node,block"`
	Edges  []*hclEdge `hcl:"edge,block"`
	Remain hcl.Body   `hcl:",remain"`
}

type hclNode struct {
	ID   string    `hcl:"id,label"`
	Type string    `hcl:"type"`
	Data cty.Value `hcl:"data,optional"`
}

type hclEdge struct {
	Source string `hcl:"source"`
	Target string `hcl:"target"`
	Handle string `hcl:"handle,optional"`
}

func decodeHCL(filename string, data []byte) (*domain.Definition, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse HCL file %s: %v", domain.ErrInvalidDefinition, filename, diags)
	}

	var root hclRoot
	if diags := gohcl.DecodeBody(f.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode HCL file %s: %v", domain.ErrInvalidDefinition, filename, diags)
	}

	def := &domain.Definition{
		Nodes: make([]domain.Node, 0, len(root.Nodes)),
		Edges: make([]domain.Edge, 0, len(root.Edges)),
	}
	for _, n := range root.Nodes {
		native, err := ctyToNative(n.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: node %q: %v", domain.ErrInvalidDefinition, n.ID, err)
		}
		var nodeData map[string]any
		if native != nil {
			m, ok := native.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: node %q: data must be an object", domain.ErrInvalidDefinition, n.ID)
			}
			nodeData = m
		}
		def.Nodes = append(def.Nodes, domain.Node{ID: n.ID, Type: domain.NodeType(n.Type), Data: nodeData})
	}
	for _, e := range root.Edges {
		def.Edges = append(def.Edges, domain.Edge{Source: e.Source, Target: e.Target, Handle: e.Handle})
	}
	return def, nil
}

// ctyToNative recursively converts a cty.Value to the plain values produced by
// encoding/json, so HCL graphs behave like JSON ones.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}
