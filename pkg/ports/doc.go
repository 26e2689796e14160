/*
Package ports defines the ports (interfaces) of the flowserve engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to be fed from various graph sources and driven by various transports.

# Key Interfaces

  - GraphLoader: Responsible for loading the workflow Definition (memory, file, Redis).
  - GraphPublisher: Persists a Definition so that other instances can load it.
  - Watchable: Notifies when the stored Definition changes.
  - WorkflowRunner: The engine as seen by the HTTP, MCP and CLI adapters.
*/
package ports
