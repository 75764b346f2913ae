package registry

import (
	"testing"

	"voyagent/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServers() []config.ServerConfig {
	return []config.ServerConfig{
		{ID: "customer-query", Name: "Customer Query", URL: "http://localhost:5001/mcp", Transport: config.TransportHTTP},
		{ID: "itinerary-planning", Name: "Itinerary Planning", URL: "http://localhost:5002/mcp", Transport: config.TransportHTTP},
		{ID: "echo-ping", Name: "Echo", URL: "http://localhost:5007/sse", Transport: config.TransportSSE, TestOnly: true},
	}
}

func TestNew_DuplicateIDFails(t *testing.T) {
	servers := testServers()
	servers = append(servers, config.ServerConfig{ID: "echo-ping", Name: "Echo again", URL: "http://localhost:5008/mcp"})

	_, err := New(servers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "echo-ping")
}

func TestDescribe(t *testing.T) {
	reg, err := New(testServers())
	require.NoError(t, err)

	d, err := reg.Describe("customer-query")
	require.NoError(t, err)
	assert.Equal(t, "Customer Query", d.Name)
	assert.Equal(t, config.TransportHTTP, d.Transport)

	_, err = reg.Describe("not-there")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "not-there", notFound.ID)
}

func TestIDs_DeclarationOrder(t *testing.T) {
	reg, err := New(testServers())
	require.NoError(t, err)

	assert.Equal(t, []string{"customer-query", "itinerary-planning", "echo-ping"}, reg.IDs())
	assert.Equal(t, 3, reg.Len())
}

func TestDefaultEnabled_ExcludesTestOnly(t *testing.T) {
	reg, err := New(testServers())
	require.NoError(t, err)

	assert.Equal(t, []string{"customer-query", "itinerary-planning"}, reg.DefaultEnabled())
}

func TestIDs_CopyIsIndependent(t *testing.T) {
	reg, err := New(testServers())
	require.NoError(t, err)

	ids := reg.IDs()
	ids[0] = "mutated"
	assert.Equal(t, "customer-query", reg.IDs()[0])
}
