package flowserve_test

import (
	"context"
	"fmt"

	"github.com/aretw0/flowserve"
	"github.com/aretw0/flowserve/pkg/domain"
)

// ExampleNewFromDefinition runs a graph that multiplies two numbers and responds with the product.
func ExampleNewFromDefinition() {
	def := domain.Definition{
		Nodes: []domain.Node{
			{ID: "start", Type: domain.NodeTypeAPI},
			{ID: "sum", Type: domain.NodeTypeMath, Data: map[string]any{
				"valA": 2, "valB": 3, "op": "*", "resultVar": "product",
			}},
			{ID: "reply", Type: domain.NodeTypeResponse, Data: map[string]any{
				"body": `{"product": {product}}`,
			}},
		},
		Edges: []domain.Edge{
			{Source: "start", Target: "sum"},
			{Source: "sum", Target: "reply"},
		},
	}

	eng := flowserve.NewFromDefinition(def)
	res := eng.Run(context.Background(), domain.Input{Method: "GET", Path: "/"})

	fmt.Println(res.Status)
	fmt.Println(res.Response)
	// Output:
	// success
	// map[product:6]
}
