package server

import (
	"encoding/json"
	"net/http"

	"voyagent/internal/bridge"
	"voyagent/internal/discovery"
	"voyagent/pkg/logging"
)

// handleHealth reports process liveness and the configured fleet. It does
// not probe the servers; GET /api/tools carries the reachability report.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "OK",
		Service: serviceName,
		Version: s.version,
		MCP: MCPSummary{
			TotalServers:      s.registry.Len(),
			ConfiguredServers: s.registry.IDs(),
		},
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleTools runs a full discovery fan-out and reports every configured
// server, reachable or not. Partial failure is normal output here, never an
// HTTP error.
func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	ids := s.registry.IDs()
	results := s.coordinator.Discover(r.Context(), ids, discovery.Options{
		PerCallTimeout:  s.cfg.Discovery.PerCallTimeout.Std(),
		OverallDeadline: s.cfg.Discovery.OverallDeadline.Std(),
	})

	report := ToolsReport{
		Servers:      make(map[string]ServerReport, len(ids)),
		TotalServers: len(ids),
	}
	for _, id := range ids {
		d, err := s.registry.Describe(id)
		if err != nil {
			continue
		}
		result := results[id]

		sr := ServerReport{
			ID:        id,
			Name:      d.Name,
			URL:       d.URL,
			Type:      string(d.Transport),
			Reachable: result.Reachable,
			ToolCount: len(result.Tools),
			Tools:     make([]ToolInfo, 0, len(result.Tools)),
			LatencyMS: result.Latency.Milliseconds(),
		}
		for _, t := range result.Tools {
			sr.Tools = append(sr.Tools, ToolInfo{Name: t.Name, Description: t.Description})
		}
		if result.Err != nil {
			sr.Error = result.Err.Error()
		}
		if result.Reachable {
			report.AvailableServers++
			report.TotalTools += len(result.Tools)
		}
		report.Servers[id] = sr
	}

	writeJSON(w, http.StatusOK, report)
}

// handleChat streams workflow progress for one chat request as Server-Sent
// Events. The stream always terminates with exactly one completion or error
// envelope; closing the connection cancels the workflow.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, `{"error": "message is required"}`, http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, `{"error": "streaming unsupported"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// The request context carries client disconnection into the bridge, so
	// an abandoned stream cancels the workflow instead of running it out.
	br := bridge.Start(r.Context(), s.orchestrator.Invocation(req.Message, req.Context))
	defer br.Cancel()

	logging.Info("Server", "Chat invocation %s started", br.ID())

	for event := range br.Events() {
		data, err := json.Marshal(event.Envelope())
		if err != nil {
			logging.Error("Server", err, "Failed to encode envelope for invocation %s", br.ID())
			continue
		}
		if _, err := w.Write(append(data, '\n', '\n')); err != nil {
			// Client went away; the deferred cancel stops the producer.
			logging.Debug("Server", "Chat invocation %s consumer detached", br.ID())
			return
		}
		flusher.Flush()
	}

	logging.Info("Server", "Chat invocation %s finished", br.ID())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("Server", err, "Failed to encode response")
	}
}
