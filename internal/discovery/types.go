package discovery

import (
	"time"

	"voyagent/internal/faults"

	"github.com/mark3labs/mcp-go/mcp"
)

// ProbeResult is the outcome of one reachability and catalog check against
// one server. Results are created fresh per probe invocation and never
// mutated after construction.
type ProbeResult struct {
	ServerID  string
	Reachable bool
	Tools     []mcp.Tool // Server-reported order, empty unless Reachable
	Err       *faults.Record
	Latency   time.Duration
}

// ServerTool pairs a tool with the id of the server that exposes it. This is
// the flattened shape handed to the agent layer.
type ServerTool struct {
	ServerID string
	Tool     mcp.Tool
}

// Options carries the time budgets for a discovery call. Unset budgets fall
// back to the named defaults in the config package, never to an implicit
// transport-level timeout.
type Options struct {
	PerCallTimeout  time.Duration // Budget for a single probe
	OverallDeadline time.Duration // Budget for the whole fan-out
}
