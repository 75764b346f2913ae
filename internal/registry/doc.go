// Package registry holds the immutable, process-wide table of configured
// remote MCP servers.
//
// The registry is built once at startup from configuration and read-only
// afterwards, so it needs no locking and can be shared freely between the
// discovery coordinator, the workflow layer, and the API server. Default
// tool-set membership (every server not marked test-only) lives here as an
// explicit, overridable policy.
package registry
