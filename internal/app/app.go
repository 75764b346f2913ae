package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"voyagent/internal/config"
	"voyagent/internal/discovery"
	"voyagent/internal/registry"
	"voyagent/internal/server"
	"voyagent/internal/workflow"
	"voyagent/pkg/logging"

	"github.com/joho/godotenv"
)

// Config carries the startup options from the CLI layer.
type Config struct {
	ConfigPath string // Directory containing config.yaml
	Debug      bool   // Force debug-level logging
	Version    string // Build version for health reporting
}

// Application owns the wired component graph for one process.
type Application struct {
	cfg    config.Config
	server *server.Server
}

// NewApplication loads configuration and wires the registry, discovery
// coordinator, workflow orchestrator, and API server together. Construction
// fails fast on configuration errors such as duplicate server ids.
func NewApplication(appCfg Config) (*Application, error) {
	// Tokens referenced from config.yaml may live in a local .env file,
	// as in development setups. A missing file is not an error.
	if err := godotenv.Load(); err == nil {
		logging.Debug("Bootstrap", "Loaded environment from .env")
	}

	cfg, err := config.LoadConfig(appCfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if appCfg.Debug {
		level = logging.LevelDebug
	}
	logging.Init(level, os.Stdout)

	reg, err := registry.New(cfg.Servers)
	if err != nil {
		return nil, fmt.Errorf("failed to build server registry: %w", err)
	}

	coordinator := discovery.NewCoordinator(reg, nil)

	opts := discovery.Options{
		PerCallTimeout:  cfg.Discovery.PerCallTimeout.Std(),
		OverallDeadline: cfg.Discovery.OverallDeadline.Std(),
	}
	orchestrator := workflow.NewOrchestrator(coordinator, nil, reg.DefaultEnabled(), opts)

	srv := server.New(appCfg.Version, cfg, reg, coordinator, orchestrator)

	logging.Info("Bootstrap", "Application wired with %d configured servers (%d in default tool set)",
		reg.Len(), len(reg.DefaultEnabled()))

	return &Application{cfg: cfg, server: srv}, nil
}

// Run serves the API until the context is cancelled or an interrupt signal
// arrives.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.server.Start(ctx)
}
