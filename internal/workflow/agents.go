package workflow

// AgentDefinition ties a specialized agent to the MCP server whose tools it
// owns. The triage agent is not listed here; it receives the union of all
// aggregated tools.
type AgentDefinition struct {
	Name     string
	ServerID string
	Purpose  string
}

// TriageAgentName is the agent that fronts every workflow invocation and
// hands sub-tasks to the specialists.
const TriageAgentName = "TriageAgent"

// Agents returns the specialized agent roster in handoff priority order.
func Agents() []AgentDefinition {
	return []AgentDefinition{
		{Name: "CustomerQueryAgent", ServerID: "customer-query", Purpose: "Extracts preferences and constraints from the customer inquiry"},
		{Name: "DestinationRecommendationAgent", ServerID: "destination-recommendation", Purpose: "Recommends destinations matching the customer profile"},
		{Name: "ItineraryPlanningAgent", ServerID: "itinerary-planning", Purpose: "Builds day-by-day itineraries for a chosen destination"},
		{Name: "CodeEvaluationAgent", ServerID: "code-evaluation", Purpose: "Evaluates code snippets supplied with the request"},
		{Name: "ModelInferenceAgent", ServerID: "model-inference", Purpose: "Runs local model inference tasks"},
		{Name: "WebSearchAgent", ServerID: "web-search", Purpose: "Searches the web for live travel information"},
		{Name: "EchoAgent", ServerID: "echo-ping", Purpose: "Connectivity check agent used in test setups"},
	}
}

// AgentForServer returns the agent name owning the given server's tools, or
// the empty string when no specialist claims it.
func AgentForServer(serverID string) string {
	for _, a := range Agents() {
		if a.ServerID == serverID {
			return a.Name
		}
	}
	return ""
}
