/*
Package flowserve is a workflow graph engine for serving HTTP endpoints.

A workflow is a directed graph of typed nodes (api, variable, logic, math, data_op,
interface, loop, function, response) connected by edges. Each incoming request is one
run: the engine starts at the api node, executes nodes in synchronous waves, routes
through the edges selected by each node's outcome and stops at the first response node
or when no node is left to execute.

# Concept

The graph is static and shared; every run owns a fresh variable store seeded from the
request. Logic conditions are evaluated by a restricted expression language that only
sees the run's variables. The engine never panics on a bad node: recoverable problems
are written to the run log, everything else becomes an error Result.

# Usage

	package main

	import (
		"context"
		"fmt"

		"github.com/aretw0/flowserve"
		"github.com/aretw0/flowserve/pkg/adapters/file"
		"github.com/aretw0/flowserve/pkg/domain"
	)

	func main() {
		eng, err := flowserve.Load(context.Background(), file.NewLoader("workflow.json"))
		if err != nil {
			panic(err)
		}

		res := eng.Run(context.Background(), domain.Input{
			Method: "POST",
			Path:   "/orders",
			Body:   map[string]any{"id": 7.0},
		})
		fmt.Println(res.Status, res.Response)
	}

The pkg/adapters/http package serves an Engine over HTTP and pkg/observability turns
its lifecycle hooks into Prometheus metrics.
*/
package flowserve
