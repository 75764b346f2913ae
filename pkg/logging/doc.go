// Package logging provides a structured logging system for voyagent built on
// Go's standard slog package.
//
// All log entries carry a subsystem identifier for categorization, a message
// with optional printf-style formatting, and optional error information:
//
//	logging.Init(logging.LevelInfo, os.Stdout)
//	logging.Info("Bootstrap", "Application starting up")
//	logging.Debug("Config", "Loaded configuration from %s", configPath)
//	logging.Error("Discovery", err, "Probe failed for server %s", id)
//
// Level filtering happens at the handler, so filtered-out messages cost no
// allocation. The package is safe for concurrent use from multiple
// goroutines.
package logging
