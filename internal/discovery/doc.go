// Package discovery implements fan-out tool discovery across the configured
// MCP servers.
//
// A Coordinator launches one Probe per requested server concurrently, each
// with its own per-call budget, and races the whole fan-out against an
// overall deadline. Probes are isolated: a slow or dead server never blocks
// or corrupts the results of the others, and every failure is recovered
// locally into the ProbeResult rather than propagated. The per-server map
// from Discover always has exactly one entry per requested id; servers that
// could not be probed are explicitly represented as unreachable.
//
// AggregateTools flattens the reachable subset into the ordered tool list
// the agent layer consumes. Discovery holds no cache: every call re-probes,
// so results reflect the current state of the fleet.
package discovery
