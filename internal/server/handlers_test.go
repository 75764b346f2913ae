package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"voyagent/internal/bridge"
	"voyagent/internal/config"
	"voyagent/internal/discovery"
	"voyagent/internal/mcpclient"
	"voyagent/internal/registry"
	"voyagent/internal/workflow"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient serves a fixed catalog or failure for handler tests.
type fakeClient struct {
	tools []mcp.Tool
	err   error
}

func (f *fakeClient) Initialize(ctx context.Context) error { return f.err }
func (f *fakeClient) Close() error                         { return nil }
func (f *fakeClient) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	return f.tools, nil
}
func (f *fakeClient) CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	return &mcp.CallToolResult{}, nil
}

// newTestAPI wires a server over a two-server fleet: planner reachable,
// echo down.
func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.GetDefaultConfig()
	cfg.Discovery.PerCallTimeout = config.Duration(200 * time.Millisecond)
	cfg.Discovery.OverallDeadline = config.Duration(500 * time.Millisecond)
	cfg.Servers = []config.ServerConfig{
		{ID: "planner", Name: "Itinerary Planning", URL: "http://planner.test/mcp", Transport: config.TransportHTTP},
		{ID: "echo", Name: "Echo", URL: "http://echo.test/sse", Transport: config.TransportSSE, TestOnly: true},
	}

	reg, err := registry.New(cfg.Servers)
	require.NoError(t, err)

	factory := func(d registry.Descriptor) (mcpclient.MCPClient, error) {
		if d.ID == "echo" {
			return &fakeClient{err: fmt.Errorf("connection refused")}, nil
		}
		return &fakeClient{tools: []mcp.Tool{
			{Name: "plan_trip", Description: "Plan a trip"},
		}}, nil
	}
	coordinator := discovery.NewCoordinator(reg, factory)

	opts := discovery.Options{
		PerCallTimeout:  cfg.Discovery.PerCallTimeout.Std(),
		OverallDeadline: cfg.Discovery.OverallDeadline.Std(),
	}
	orchestrator := workflow.NewOrchestrator(coordinator, nil, reg.DefaultEnabled(), opts)

	s := New("test", cfg, reg, coordinator, orchestrator)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHandleHealth(t *testing.T) {
	ts := newTestAPI(t)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "OK", health.Status)
	assert.Equal(t, "voyagent-api", health.Service)
	assert.Equal(t, 2, health.MCP.TotalServers)
	assert.Equal(t, []string{"planner", "echo"}, health.MCP.ConfiguredServers)
}

func TestHandleTools_MixedReachability(t *testing.T) {
	ts := newTestAPI(t)

	resp, err := http.Get(ts.URL + "/api/tools")
	require.NoError(t, err)
	defer resp.Body.Close()
	// Partial failure is still a 200; the report carries the detail.
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report ToolsReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))

	assert.Equal(t, 2, report.TotalServers)
	assert.Equal(t, 1, report.AvailableServers)
	assert.Equal(t, 1, report.TotalTools)

	planner := report.Servers["planner"]
	assert.True(t, planner.Reachable)
	require.Len(t, planner.Tools, 1)
	assert.Equal(t, "plan_trip", planner.Tools[0].Name)
	assert.Equal(t, "http", planner.Type)

	echo := report.Servers["echo"]
	assert.False(t, echo.Reachable)
	assert.Empty(t, echo.Tools)
	assert.NotEmpty(t, echo.Error)
}

func readEnvelopes(t *testing.T, body *bufio.Reader) []bridge.Envelope {
	t.Helper()
	var envelopes []bridge.Envelope
	for {
		line, err := body.ReadString('\n')
		if err != nil {
			return envelopes
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var env bridge.Envelope
		require.NoError(t, json.Unmarshal([]byte(line), &env), "bad envelope: %s", line)
		envelopes = append(envelopes, env)
	}
}

func TestHandleChat_StreamsEnvelopes(t *testing.T) {
	ts := newTestAPI(t)

	body, err := json.Marshal(ChatRequest{Message: "plan a trip to Kyoto"})
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/api/chat", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	envelopes := readEnvelopes(t, bufio.NewReader(resp.Body))
	require.NotEmpty(t, envelopes)

	for _, env := range envelopes {
		assert.Equal(t, "metadata", env.Type)
	}
	assert.Equal(t, string(bridge.EventSetup), envelopes[0].Event)

	// Exactly one terminal envelope, and it is last.
	terminal := envelopes[len(envelopes)-1]
	assert.Equal(t, string(bridge.EventComplete), terminal.Event)
	for _, env := range envelopes[:len(envelopes)-1] {
		assert.NotEqual(t, string(bridge.EventComplete), env.Event)
		assert.NotEqual(t, string(bridge.EventError), env.Event)
	}
}

func TestHandleChat_BadRequest(t *testing.T) {
	ts := newTestAPI(t)

	resp, err := http.Post(ts.URL+"/api/chat", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/api/chat", "application/json", strings.NewReader(`{"context":{}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestAPI(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/chat", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
