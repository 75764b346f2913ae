// Package workflow implements the travel planning workflow that feeds the
// event bridge.
//
// An Orchestrator aggregates tools from the enabled MCP servers, attributes
// them to the specialist agent roster, and runs the responder to produce the
// final answer, emitting setup, tool-call, and streaming delta events along
// the way. Which servers participate in the default tool set is an explicit
// policy injected at construction, not a hidden exclusion rule.
//
// The model provider lives behind the Responder interface and is supplied by
// the caller; the built-in summary responder keeps the pipeline runnable
// without provider credentials.
package workflow
