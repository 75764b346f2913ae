// Package config loads and validates the voyagent configuration.
//
// Configuration lives in a single config.yaml describing the API server bind
// address, the discovery time budgets, and the fleet of remote MCP tool
// servers. Loading fails fast on structural problems such as duplicate
// server ids or malformed URLs; a missing file falls back to defaults with
// an empty server list.
//
// Access tokens in server entries may reference environment variables using
// ${VAR} syntax, so secrets stay out of the file itself.
package config
