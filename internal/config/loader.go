package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"voyagent/pkg/logging"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// LoadConfig loads configuration from the given directory. The directory
// should contain config.yaml; a missing file yields the defaults. Access
// token values may reference environment variables as ${VAR}, matching how
// the tool servers' tokens are provisioned.
func LoadConfig(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return Config{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}

	applyDefaults(&config)
	expandTokens(&config)

	if errs := Validate(config); errs.HasErrors() {
		return Config{}, errs
	}

	logging.Info("ConfigLoader", "Loaded configuration from %s (%d servers)", configFilePath, len(config.Servers))
	return config, nil
}

// expandTokens resolves ${VAR} references in access tokens against the
// process environment. A reference to an unset variable expands to the
// empty string, which downstream treats as no token.
func expandTokens(c *Config) {
	for i := range c.Servers {
		c.Servers[i].AccessToken = os.ExpandEnv(c.Servers[i].AccessToken)
	}
}
