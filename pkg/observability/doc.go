/*
Package observability provides tools for monitoring the flowserve engine.

It includes Prometheus collectors fed by the engine lifecycle hooks, structured
logging hooks for auditing node transitions, and a helper to chain several hook
sets into one.
*/
package observability
