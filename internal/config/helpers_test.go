package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// yamlNode parses a scalar into a yaml.Node for unmarshal tests.
func yamlNode(t *testing.T, value string) *yaml.Node {
	t.Helper()
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(value), &node))
	return node.Content[0]
}
