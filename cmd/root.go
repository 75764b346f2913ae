package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the voyagent application.
var rootCmd = &cobra.Command{
	Use:   "voyagent",
	Short: "Multi-agent travel planning API over MCP tool servers",
	Long: `voyagent aggregates a fleet of remote MCP tool servers and exposes
their combined capabilities to a multi-agent travel planning workflow.
It serves a streaming chat API and per-server health reporting.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. Called from main to
// inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "voyagent version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
