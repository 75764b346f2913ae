package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Transport identifies how an MCP server is reached.
type Transport string

const (
	// TransportHTTP is the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportSSE is the Server-Sent Events transport.
	TransportSSE Transport = "sse"
)

// Duration wraps time.Duration so timeout values can be written in YAML as
// "5s" or "250ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig describes one remote MCP tool server.
type ServerConfig struct {
	ID          string    `yaml:"id"`                    // Unique identifier, stable for the process lifetime
	Name        string    `yaml:"name"`                  // Human-readable display name
	URL         string    `yaml:"url"`                   // Base address of the server
	Transport   Transport `yaml:"transport,omitempty"`   // Transport kind (default: http)
	AccessToken string    `yaml:"accessToken,omitempty"` // Optional bearer token; ${VAR} references are expanded
	TestOnly    bool      `yaml:"testOnly,omitempty"`    // Excluded from the default workflow tool set
}

// DiscoveryConfig holds the time budgets for fan-out tool discovery. Both
// values are explicit; the defaults are applied at load time, never
// implicitly inside the coordinator.
type DiscoveryConfig struct {
	PerCallTimeout  Duration `yaml:"perCallTimeout,omitempty"`  // Budget for one probe (default: 5s)
	OverallDeadline Duration `yaml:"overallDeadline,omitempty"` // Budget for a whole discovery call (default: 10s)
}

// Config is the top-level configuration structure for voyagent.
type Config struct {
	Host      string          `yaml:"host,omitempty"`     // Host to bind the API server to (default: 0.0.0.0)
	Port      int             `yaml:"port,omitempty"`     // Port for the API server (default: 4000)
	LogLevel  string          `yaml:"logLevel,omitempty"` // Minimum log level (default: INFO)
	Discovery DiscoveryConfig `yaml:"discovery,omitempty"`
	Servers   []ServerConfig  `yaml:"servers"`
}
