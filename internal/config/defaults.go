package config

import "time"

const (
	// DefaultPort is the port the API server listens on.
	DefaultPort = 4000
	// DefaultHost is the bind address for the API server.
	DefaultHost = "0.0.0.0"

	// DefaultPerCallTimeout bounds a single server probe.
	DefaultPerCallTimeout = 5 * time.Second
	// DefaultOverallDeadline bounds a whole discovery fan-out.
	DefaultOverallDeadline = 10 * time.Second
)

// GetDefaultConfig returns the default configuration for voyagent. The
// server list is empty; servers come from config.yaml.
func GetDefaultConfig() Config {
	return Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		LogLevel: "INFO",
		Discovery: DiscoveryConfig{
			PerCallTimeout:  Duration(DefaultPerCallTimeout),
			OverallDeadline: Duration(DefaultOverallDeadline),
		},
	}
}

// applyDefaults fills zero-valued fields after unmarshalling so every budget
// the coordinator sees is explicit.
func applyDefaults(c *Config) {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.Discovery.PerCallTimeout == 0 {
		c.Discovery.PerCallTimeout = Duration(DefaultPerCallTimeout)
	}
	if c.Discovery.OverallDeadline == 0 {
		c.Discovery.OverallDeadline = Duration(DefaultOverallDeadline)
	}
	for i := range c.Servers {
		if c.Servers[i].Transport == "" {
			c.Servers[i].Transport = TransportHTTP
		}
	}
}
