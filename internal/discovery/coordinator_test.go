package discovery

import (
	"context"
	"fmt"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"voyagent/internal/config"
	"voyagent/internal/faults"
	"voyagent/internal/mcpclient"
	"voyagent/internal/registry"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient implements mcpclient.MCPClient for testing without network.
type mockClient struct {
	tools   []mcp.Tool
	initErr error
	listErr error
	delay   time.Duration // applied before Initialize returns, honoring ctx
}

func (m *mockClient) Initialize(ctx context.Context) error {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return m.initErr
}

func (m *mockClient) Close() error { return nil }

func (m *mockClient) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.tools, nil
}

func (m *mockClient) CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	return &mcp.CallToolResult{}, nil
}

func tools(names ...string) []mcp.Tool {
	var ts []mcp.Tool
	for _, n := range names {
		ts = append(ts, mcp.Tool{Name: n, Description: n + " tool"})
	}
	return ts
}

// testFleet builds a registry plus a factory serving the given mock per id.
func testFleet(t *testing.T, mocks map[string]*mockClient) (*registry.Registry, ClientFactory, *atomic.Int32) {
	t.Helper()

	var servers []config.ServerConfig
	for id := range mocks {
		servers = append(servers, config.ServerConfig{
			ID:        id,
			Name:      id,
			URL:       "http://" + id + ".test/mcp",
			Transport: config.TransportHTTP,
		})
	}
	reg, err := registry.New(servers)
	require.NoError(t, err)

	var dials atomic.Int32
	factory := func(d registry.Descriptor) (mcpclient.MCPClient, error) {
		dials.Add(1)
		m, ok := mocks[d.ID]
		if !ok {
			return nil, fmt.Errorf("no mock for %s", d.ID)
		}
		return m, nil
	}
	return reg, factory, &dials
}

func fastOpts() Options {
	return Options{PerCallTimeout: 200 * time.Millisecond, OverallDeadline: 500 * time.Millisecond}
}

func TestDiscover_MixedReachability(t *testing.T) {
	mocks := map[string]*mockClient{
		"planner": {tools: tools("plan_trip")},
		"search":  {tools: tools("search_web", "fetch_page")},
		"echo":    {initErr: fmt.Errorf("dial tcp 127.0.0.1:5007: %w", syscall.ECONNREFUSED)},
	}
	reg, factory, _ := testFleet(t, mocks)
	c := NewCoordinator(reg, factory)

	results := c.Discover(context.Background(), []string{"planner", "search", "echo"}, fastOpts())

	require.Len(t, results, 3)
	assert.True(t, results["planner"].Reachable)
	assert.True(t, results["search"].Reachable)

	echo := results["echo"]
	assert.False(t, echo.Reachable)
	require.NotNil(t, echo.Err)
	assert.Equal(t, faults.KindConnectionFailed, echo.Err.Kind)
	assert.Empty(t, echo.Tools)
}

func TestDiscover_UnknownServerNoDial(t *testing.T) {
	mocks := map[string]*mockClient{
		"planner": {tools: tools("plan_trip")},
	}
	reg, factory, dials := testFleet(t, mocks)
	c := NewCoordinator(reg, factory)

	results := c.Discover(context.Background(), []string{"planner", "ghost"}, fastOpts())

	require.Len(t, results, 2)
	ghost := results["ghost"]
	assert.False(t, ghost.Reachable)
	require.NotNil(t, ghost.Err)
	assert.Equal(t, faults.KindUnknownServer, ghost.Err.Kind)

	// Only the known server was dialed.
	assert.Equal(t, int32(1), dials.Load())
}

func TestDiscover_DeadlineBoundsSlowServer(t *testing.T) {
	mocks := map[string]*mockClient{
		"planner": {tools: tools("plan_trip")},
		"glacier": {delay: 5 * time.Second, tools: tools("never_seen")},
	}
	reg, factory, _ := testFleet(t, mocks)
	c := NewCoordinator(reg, factory)

	opts := Options{PerCallTimeout: 150 * time.Millisecond, OverallDeadline: 300 * time.Millisecond}

	start := time.Now()
	results := c.Discover(context.Background(), []string{"planner", "glacier"}, opts)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 2*time.Second, "slow server must not extend total latency past the deadline")

	require.Len(t, results, 2)
	assert.True(t, results["planner"].Reachable)

	glacier := results["glacier"]
	assert.False(t, glacier.Reachable)
	require.NotNil(t, glacier.Err)
	assert.Equal(t, faults.KindTimeout, glacier.Err.Kind)
	// Partial data from the timed-out probe is discarded.
	assert.Empty(t, glacier.Tools)
}

func TestDiscover_EveryRequestedIDPresent(t *testing.T) {
	mocks := map[string]*mockClient{
		"a": {tools: tools("t1")},
		"b": {initErr: fmt.Errorf("boom")},
		"c": {delay: time.Minute},
	}
	reg, factory, _ := testFleet(t, mocks)
	c := NewCoordinator(reg, factory)

	requested := []string{"a", "b", "c", "missing"}
	results := c.Discover(context.Background(), requested, fastOpts())

	require.Len(t, results, len(requested))
	for _, id := range requested {
		r, ok := results[id]
		require.True(t, ok, "requested id %s must be present", id)
		assert.Equal(t, id, r.ServerID)
	}
}

func TestDiscover_Idempotent(t *testing.T) {
	mocks := map[string]*mockClient{
		"planner": {tools: tools("plan_trip", "suggest_hotels")},
	}
	reg, factory, _ := testFleet(t, mocks)
	c := NewCoordinator(reg, factory)

	first := c.Discover(context.Background(), []string{"planner"}, fastOpts())
	second := c.Discover(context.Background(), []string{"planner"}, fastOpts())

	assert.Equal(t, first["planner"].Tools, second["planner"].Tools)
}

func TestAggregateTools_OrderAndExclusion(t *testing.T) {
	mocks := map[string]*mockClient{
		"search":  {tools: tools("search_web")},
		"planner": {tools: tools("plan_trip", "suggest_hotels")},
		"echo":    {initErr: fmt.Errorf("connection refused")},
	}
	reg, factory, _ := testFleet(t, mocks)
	c := NewCoordinator(reg, factory)

	agg := c.AggregateTools(context.Background(), []string{"planner", "echo", "search"}, fastOpts())

	// Caller-requested server order, catalog order within a server, failed
	// servers excluded.
	var flat []string
	for _, st := range agg {
		flat = append(flat, st.ServerID+"/"+st.Tool.Name)
	}
	assert.Equal(t, []string{
		"planner/plan_trip",
		"planner/suggest_hotels",
		"search/search_web",
	}, flat)
}

func TestDiscover_ConcreteScenario(t *testing.T) {
	// Registry: echo unreachable, planner reachable with ["plan_trip"].
	mocks := map[string]*mockClient{
		"echo":    {initErr: fmt.Errorf("dial tcp 127.0.0.1:5007: %w", syscall.ECONNREFUSED)},
		"planner": {tools: tools("plan_trip")},
	}
	reg, factory, _ := testFleet(t, mocks)
	c := NewCoordinator(reg, factory)

	opts := Options{PerCallTimeout: time.Second, OverallDeadline: 5 * time.Second}
	results := c.Discover(context.Background(), []string{"echo", "planner"}, opts)

	assert.False(t, results["echo"].Reachable)
	assert.Equal(t, faults.KindConnectionFailed, results["echo"].Err.Kind)
	assert.True(t, results["planner"].Reachable)
	require.Len(t, results["planner"].Tools, 1)
	assert.Equal(t, "plan_trip", results["planner"].Tools[0].Name)

	agg := c.AggregateTools(context.Background(), []string{"echo", "planner"}, opts)
	require.Len(t, agg, 1)
	assert.Equal(t, "plan_trip", agg[0].Tool.Name)
}

func TestProbe_ListFailureDiscardsPartial(t *testing.T) {
	mocks := map[string]*mockClient{
		"flaky": {listErr: fmt.Errorf("tool list is not a sequence")},
	}
	reg, factory, _ := testFleet(t, mocks)
	c := NewCoordinator(reg, factory)

	d, err := reg.Describe("flaky")
	require.NoError(t, err)

	r := c.Probe(context.Background(), d, 200*time.Millisecond)
	assert.False(t, r.Reachable)
	assert.Empty(t, r.Tools)
	require.NotNil(t, r.Err)
	assert.Equal(t, faults.KindWorkflowFault, r.Err.Kind)
}
