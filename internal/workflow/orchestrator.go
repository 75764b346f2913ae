package workflow

import (
	"context"
	"fmt"
	"strings"

	"voyagent/internal/bridge"
	"voyagent/internal/discovery"
	"voyagent/pkg/logging"
)

// deltaChunkSize is the number of characters per streamed response chunk.
const deltaChunkSize = 50

// Responder produces the final response text for a request, given the tools
// aggregated from the reachable servers. This is the boundary behind which
// model providers and prompt content live; the orchestrator treats it as
// opaque.
type Responder interface {
	Respond(ctx context.Context, message string, reqContext map[string]interface{}, tools []discovery.ServerTool) (string, error)
}

// Orchestrator assembles the travel planning workflow: it aggregates tools
// from the enabled servers, attributes them to the specialist agents, and
// runs the responder, emitting progress events along the way.
type Orchestrator struct {
	coordinator *discovery.Coordinator
	responder   Responder
	enabled     []string // Server ids included in the workflow tool set
	opts        discovery.Options
}

// NewOrchestrator creates a workflow orchestrator. The enabled list is the
// injected tool-set membership policy (typically registry.DefaultEnabled());
// a nil responder falls back to the built-in summary responder.
func NewOrchestrator(coordinator *discovery.Coordinator, responder Responder, enabled []string, opts discovery.Options) *Orchestrator {
	if responder == nil {
		responder = summaryResponder{}
	}
	return &Orchestrator{
		coordinator: coordinator,
		responder:   responder,
		enabled:     enabled,
		opts:        opts,
	}
}

// Invocation binds one user request into a producer the event bridge can
// run. Each invocation is independent; concurrent invocations share no
// mutable state.
func (o *Orchestrator) Invocation(message string, reqContext map[string]interface{}) bridge.Producer {
	return &invocation{orchestrator: o, message: message, reqContext: reqContext}
}

type invocation struct {
	orchestrator *Orchestrator
	message      string
	reqContext   map[string]interface{}
}

// Name implements bridge.Producer.
func (inv *invocation) Name() string {
	return TriageAgentName
}

// Produce implements bridge.Producer. It emits setup and tool-call events,
// streams the response in chunks, and returns the completion payload. Any
// error bubbles to the bridge, which turns it into the terminal error event.
func (inv *invocation) Produce(ctx context.Context, emit bridge.EmitFunc) (map[string]interface{}, error) {
	o := inv.orchestrator

	tools := o.coordinator.AggregateTools(ctx, o.enabled, o.opts)

	emit(bridge.EventSetup, TriageAgentName, map[string]interface{}{
		"message":    "Initializing travel planning workflow with MCP tools",
		"tool_count": len(tools),
		"agents":     readyAgents(tools),
	})

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("workflow cancelled during setup: %w", err)
	}

	emit(bridge.EventToolCall, TriageAgentName, map[string]interface{}{
		"message":  "Processing travel request with specialized agents",
		"toolName": "triage_agent_process",
	})

	result, err := o.responder.Respond(ctx, inv.message, inv.reqContext, tools)
	if err != nil {
		return nil, fmt.Errorf("triage agent failed: %w", err)
	}

	for i := 0; i < len(result); i += deltaChunkSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("workflow cancelled mid-stream: %w", err)
		}
		end := min(i+deltaChunkSize, len(result))
		emit(bridge.EventDelta, TriageAgentName, map[string]interface{}{
			"delta": result[i:end],
		})
	}

	logging.Info("Workflow", "Request processed with %d tools available", len(tools))

	return map[string]interface{}{
		"message": "Request processed successfully",
		"result":  result,
	}, nil
}

// readyAgents lists the specialist agents whose server contributed at least
// one tool to this invocation.
func readyAgents(tools []discovery.ServerTool) []string {
	seen := make(map[string]bool)
	var agents []string
	for _, t := range tools {
		name := AgentForServer(t.ServerID)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		agents = append(agents, name)
	}
	return agents
}

// summaryResponder is the placeholder used until a model provider is wired
// in. It answers with the toolset the workflow would dispatch over, which
// keeps the full pipeline exercisable without credentials.
type summaryResponder struct{}

func (summaryResponder) Respond(ctx context.Context, message string, reqContext map[string]interface{}, tools []discovery.ServerTool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if len(tools) == 0 {
		return "No travel planning tools are currently reachable; please retry shortly.", nil
	}

	var names []string
	for _, t := range tools {
		names = append(names, t.Tool.Name)
	}
	return fmt.Sprintf("Received %q. %d tools are available for planning: %s.",
		message, len(tools), strings.Join(names, ", ")), nil
}
