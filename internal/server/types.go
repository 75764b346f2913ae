package server

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// ToolInfo is the per-tool entry in a server report.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ServerReport is the externally visible state of one configured server as
// seen by the latest discovery call.
type ServerReport struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	URL       string     `json:"url"`
	Type      string     `json:"type"`
	Reachable bool       `json:"reachable"`
	ToolCount int        `json:"tool_count"`
	Tools     []ToolInfo `json:"tools"`
	Error     string     `json:"error,omitempty"`
	LatencyMS int64      `json:"latency_ms"`
}

// ToolsReport is the body of GET /api/tools.
type ToolsReport struct {
	Servers          map[string]ServerReport `json:"servers"`
	TotalTools       int                     `json:"total_tools"`
	TotalServers     int                     `json:"total_servers"`
	AvailableServers int                     `json:"available_servers"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string     `json:"status"`
	Service string     `json:"service"`
	Version string     `json:"version"`
	MCP     MCPSummary `json:"mcp"`
}

// MCPSummary summarizes the configured server fleet without probing it.
type MCPSummary struct {
	TotalServers      int      `json:"total_servers"`
	ConfiguredServers []string `json:"configured_servers"`
}
