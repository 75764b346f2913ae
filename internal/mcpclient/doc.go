// Package mcpclient provides MCP client implementations for communicating
// with remote tool servers.
//
// Two transports are supported, matching the configured server types:
//
//   - StreamableHTTPClient for HTTP-based servers
//   - SSEClient for Server-Sent Events communication
//
// NewClientFromDescriptor selects the implementation from a registry
// descriptor and wires up bearer authentication when the descriptor carries
// an access token. Both implementations share the connection bookkeeping in
// baseClient and expose the narrow MCPClient interface the discovery and
// workflow layers consume.
package mcpclient
