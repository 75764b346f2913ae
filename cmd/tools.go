package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"voyagent/internal/config"
	"voyagent/internal/discovery"
	"voyagent/internal/registry"
	"voyagent/pkg/logging"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// toolsConfigPath is the directory containing config.yaml.
var toolsConfigPath string

// toolsCmd runs a one-shot discovery fan-out and prints the per-server
// report as a table.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Probe the configured MCP servers and list their tools",
	Long: `Probes every configured MCP server concurrently and prints each
server's reachability, probe latency, and tool catalog. Unreachable servers
are listed with the failure kind instead of tools.`,
	Args: cobra.NoArgs,
	RunE: runTools,
}

func runTools(cmd *cobra.Command, args []string) error {
	// Keep diagnostics off stdout so the table stays pipeable.
	logging.Init(logging.LevelError, os.Stderr)
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(toolsConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	reg, err := registry.New(cfg.Servers)
	if err != nil {
		return fmt.Errorf("failed to build server registry: %w", err)
	}
	if reg.Len() == 0 {
		fmt.Println("No servers configured.")
		return nil
	}

	coordinator := discovery.NewCoordinator(reg, nil)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Probing %d MCP servers...", reg.Len())
	s.Start()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results := coordinator.Discover(ctx, reg.IDs(), discovery.Options{
		PerCallTimeout:  cfg.Discovery.PerCallTimeout.Std(),
		OverallDeadline: cfg.Discovery.OverallDeadline.Std(),
	})
	s.Stop()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"SERVER", "STATUS", "LATENCY", "TOOLS"})

	for _, id := range reg.IDs() {
		r := results[id]
		status := "reachable"
		detail := ""
		if !r.Reachable {
			status = "unreachable"
			if r.Err != nil {
				detail = string(r.Err.Kind)
			}
		} else {
			var names []string
			for _, tool := range r.Tools {
				names = append(names, tool.Name)
			}
			detail = strings.Join(names, ", ")
		}
		t.AppendRow(table.Row{id, status, r.Latency.Round(time.Millisecond), detail})
	}
	t.Render()

	return nil
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.Flags().StringVar(&toolsConfigPath, "config-path", ".", "Directory containing config.yaml")
}
