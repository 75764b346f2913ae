package discovery

import (
	"context"
	"time"

	"voyagent/internal/faults"
	"voyagent/internal/registry"
	"voyagent/pkg/logging"
)

// Probe performs one reachability and catalog check against the given
// server. It never returns an error: every failure mode (refused
// connection, timeout, protocol violation) folds into the result with
// Reachable=false. A probe that exceeds perCallTimeout is reported as a
// timeout and any partially received catalog is discarded.
func (c *Coordinator) Probe(ctx context.Context, d registry.Descriptor, perCallTimeout time.Duration) ProbeResult {
	start := time.Now()

	pctx, cancel := context.WithTimeout(ctx, perCallTimeout)
	defer cancel()

	// The network work runs in its own goroutine so the budget holds even
	// if a transport call fails to honor context cancellation. On timeout
	// the late result, if any, is dropped along with its partial catalog.
	done := make(chan ProbeResult, 1)
	go func() {
		done <- c.runProbe(pctx, d)
	}()

	var result ProbeResult
	select {
	case result = <-done:
		if result.Err != nil && pctx.Err() != nil && ctx.Err() == nil {
			// The probe's own budget elapsed mid-call; report it as a
			// timeout no matter how the transport dressed the failure.
			result.Err = faults.New(faults.KindTimeout, "probe of %s exceeded %s", d.ID, perCallTimeout)
			result.Tools = nil
		}
	case <-pctx.Done():
		msg := faults.New(faults.KindTimeout, "probe of %s exceeded %s", d.ID, perCallTimeout)
		if ctx.Err() != nil {
			msg = faults.New(faults.KindTimeout, "probe of %s cancelled at the discovery deadline", d.ID)
		}
		result = ProbeResult{
			ServerID:  d.ID,
			Reachable: false,
			Err:       msg,
		}
	}

	result.Latency = time.Since(start)

	if result.Reachable {
		logging.Debug("Discovery", "Server %s reachable with %d tools in %s", d.ID, len(result.Tools), result.Latency)
	} else {
		logging.Debug("Discovery", "Server %s unreachable: %v", d.ID, result.Err)
	}
	return result
}

// runProbe does the actual connect, handshake, and catalog fetch.
func (c *Coordinator) runProbe(ctx context.Context, d registry.Descriptor) ProbeResult {
	client, err := c.newClient(d)
	if err != nil {
		return ProbeResult{ServerID: d.ID, Err: faults.Translate(err)}
	}
	defer client.Close()

	if err := client.Initialize(ctx); err != nil {
		return ProbeResult{ServerID: d.ID, Err: faults.Translate(err)}
	}

	tools, err := client.ListTools(ctx)
	if err != nil {
		return ProbeResult{ServerID: d.ID, Err: faults.Translate(err)}
	}

	return ProbeResult{
		ServerID:  d.ID,
		Reachable: true,
		Tools:     tools,
	}
}
