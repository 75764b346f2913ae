package mcpclient

import (
	"fmt"

	"voyagent/internal/config"
	"voyagent/internal/registry"
)

// NewClientFromDescriptor creates the appropriate MCP client for a server
// descriptor. When the descriptor carries an access token it is sent as a
// bearer Authorization header on every request.
func NewClientFromDescriptor(d registry.Descriptor) (MCPClient, error) {
	headers := make(map[string]string)
	if d.AccessToken != "" {
		headers["Authorization"] = "Bearer " + d.AccessToken
	}

	switch d.Transport {
	case config.TransportHTTP:
		return NewStreamableHTTPClient(d.URL, headers), nil
	case config.TransportSSE:
		return NewSSEClient(d.URL, headers), nil
	default:
		return nil, fmt.Errorf("unsupported transport %q for server %s (supported: %s, %s)",
			d.Transport, d.ID, config.TransportHTTP, config.TransportSSE)
	}
}
