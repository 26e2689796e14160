/*
Package domain contains the core domain models of the flowserve engine.

It defines the workflow graph (Nodes, Edges and the adjacency index built from them),
the request Input consumed by a run, the Outcome produced by each node execution and the
Result returned to the transport. This package is kept pure and free of I/O, following
Hexagonal Architecture principles.

# Key Entities

  - Node: a unit of work in the graph (api, variable, logic, math, data_op, interface,
    loop, function or response).
  - Edge: a directed link between two nodes, optionally labelled with a routing handle.
  - Graph: a read-only index of nodes and outgoing edges, safe to share between runs.
  - Outcome: the tagged result of executing one node, used for routing and termination.
  - Result: the terminal success or error record of one run.
*/
package domain
