package discovery

import (
	"context"
	"sync"
	"time"

	"voyagent/internal/config"
	"voyagent/internal/faults"
	"voyagent/internal/mcpclient"
	"voyagent/internal/registry"
	"voyagent/pkg/logging"

	"golang.org/x/sync/errgroup"
)

// ClientFactory creates an MCP client for a server descriptor. Injectable so
// tests can substitute fakes for the transport layer.
type ClientFactory func(registry.Descriptor) (mcpclient.MCPClient, error)

// Coordinator fans discovery out over the configured servers. Two
// independent discovery calls share no mutable state and may run fully
// concurrently.
type Coordinator struct {
	registry  *registry.Registry
	newClient ClientFactory
}

// NewCoordinator creates a coordinator over the given registry. A nil
// factory uses the real transport clients.
func NewCoordinator(reg *registry.Registry, factory ClientFactory) *Coordinator {
	if factory == nil {
		factory = mcpclient.NewClientFromDescriptor
	}
	return &Coordinator{
		registry:  reg,
		newClient: factory,
	}
}

// normalize fills unset budgets with the named defaults and keeps the
// per-call budget within the overall deadline.
func (o Options) normalize() Options {
	if o.PerCallTimeout <= 0 {
		o.PerCallTimeout = config.DefaultPerCallTimeout
	}
	if o.OverallDeadline <= 0 {
		o.OverallDeadline = config.DefaultOverallDeadline
	}
	if o.PerCallTimeout > o.OverallDeadline {
		o.PerCallTimeout = o.OverallDeadline
	}
	return o
}

// Discover probes each requested server concurrently and returns exactly one
// ProbeResult per requested id. Unknown ids produce a result with an
// unknown-server fault and no network call. Probes still outstanding when
// the overall deadline elapses are cancelled and reported as timed out;
// they are never silently dropped. One server's failure cannot block or
// taint another's result.
func (c *Coordinator) Discover(ctx context.Context, serverIDs []string, opts Options) map[string]ProbeResult {
	opts = opts.normalize()

	results := make(map[string]ProbeResult, len(serverIDs))
	var descriptors []registry.Descriptor

	for _, id := range serverIDs {
		if _, dup := results[id]; dup {
			continue
		}
		d, err := c.registry.Describe(id)
		if err != nil {
			results[id] = ProbeResult{
				ServerID:  id,
				Reachable: false,
				Err:       faults.New(faults.KindUnknownServer, "server %q is not configured", id),
			}
			continue
		}
		// Placeholder so every requested id has an entry even if the
		// probe goroutine is cut off at the deadline.
		results[id] = ProbeResult{
			ServerID:  id,
			Reachable: false,
			Err:       faults.New(faults.KindTimeout, "probe of %s did not complete within %s", id, opts.OverallDeadline),
		}
		descriptors = append(descriptors, d)
	}

	if len(descriptors) == 0 {
		return results
	}

	octx, cancel := context.WithTimeout(ctx, opts.OverallDeadline)
	defer cancel()

	start := time.Now()
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(octx)
	for _, d := range descriptors {
		g.Go(func() error {
			r := c.Probe(gctx, d, opts.PerCallTimeout)
			mu.Lock()
			results[d.ID] = r
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	reachable := 0
	for _, r := range results {
		if r.Reachable {
			reachable++
		}
	}
	logging.Info("Discovery", "Probed %d servers in %s: %d reachable, %d unreachable",
		len(serverIDs), time.Since(start).Round(time.Millisecond), reachable, len(serverIDs)-reachable)

	return results
}

// AggregateTools flattens the reachable side of a discovery call into the
// ordered tool list handed to the agent layer: caller-requested server order
// first, catalog order within a server. Servers that failed are excluded
// here but remain visible in the raw per-server map from Discover.
func (c *Coordinator) AggregateTools(ctx context.Context, serverIDs []string, opts Options) []ServerTool {
	results := c.Discover(ctx, serverIDs, opts)

	var tools []ServerTool
	seen := make(map[string]bool, len(serverIDs))
	for _, id := range serverIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		r := results[id]
		if !r.Reachable {
			continue
		}
		for _, t := range r.Tools {
			tools = append(tools, ServerTool{ServerID: id, Tool: t})
		}
	}
	return tools
}
