// Package app wires the voyagent components into a runnable application:
// configuration loading, the immutable server registry, the discovery
// coordinator, the workflow orchestrator, and the HTTP API server, with
// signal-driven shutdown.
package app
