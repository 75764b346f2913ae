package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"voyagent/internal/config"
	"voyagent/internal/discovery"
	"voyagent/internal/registry"
	"voyagent/internal/workflow"
	"voyagent/pkg/logging"
)

// serviceName identifies this API in health responses and logs.
const serviceName = "voyagent-api"

// shutdownTimeout bounds graceful shutdown; in-flight chat streams past it
// are cut off.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP API exposing tool discovery and the streaming chat
// workflow.
type Server struct {
	version      string
	cfg          config.Config
	registry     *registry.Registry
	coordinator  *discovery.Coordinator
	orchestrator *workflow.Orchestrator

	httpServer *http.Server
}

// New creates the API server over the given components.
func New(version string, cfg config.Config, reg *registry.Registry, coordinator *discovery.Coordinator, orchestrator *workflow.Orchestrator) *Server {
	return &Server{
		version:      version,
		cfg:          cfg,
		registry:     reg,
		coordinator:  coordinator,
		orchestrator: orchestrator,
	}
}

// Handler returns the routed HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/tools", s.handleTools)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	return corsMiddleware(mux)
}

// Start binds the listener and serves until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("Server", "API listening on http://%s", addr)
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("API server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logging.Info("Server", "Shutting down API server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown failed: %w", err)
	}
	return nil
}

// corsMiddleware mirrors the permissive CORS policy of the upstream UI
// deployments.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
