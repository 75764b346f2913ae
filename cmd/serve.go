package cmd

import (
	"context"
	"fmt"

	"voyagent/internal/app"

	"github.com/spf13/cobra"
)

// serveDebug enables verbose logging across the application.
var serveDebug bool

// serveConfigPath is the directory containing config.yaml.
var serveConfigPath string

// serveCmd starts the API server: tool discovery endpoints plus the
// streaming chat workflow.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the voyagent API server",
	Long: `Starts the voyagent API server.

The server probes the configured MCP tool servers on demand and exposes:
  GET  /api/health  process liveness and the configured fleet
  GET  /api/tools   per-server reachability and tool catalogs
  POST /api/chat    streaming travel planning workflow (Server-Sent Events)

Configuration is read from config.yaml in the directory given by
--config-path (default: current directory). Access tokens referenced as
${VAR} are resolved from the environment, including a local .env file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := app.Config{
		ConfigPath: serveConfigPath,
		Debug:      serveDebug,
		Version:    GetVersion(),
	}

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().StringVar(&serveConfigPath, "config-path", ".", "Directory containing config.yaml")
}
