package bridge

// EventKind identifies the type of a workflow event. The set is closed:
// consumers dispatch over these kinds exhaustively instead of inspecting
// payload shapes.
type EventKind string

const (
	// EventSetup announces the workflow is assembling its agents and tools.
	EventSetup EventKind = "AgentSetup"
	// EventToolCall announces a tool invocation by an agent.
	EventToolCall EventKind = "AgentToolCall"
	// EventDelta carries an incremental chunk of the response text.
	EventDelta EventKind = "AgentStream"
	// EventMessage carries a complete intermediate agent message.
	EventMessage EventKind = "AgentMessage"
	// EventComplete is the terminal event of a successful workflow.
	EventComplete EventKind = "AgentComplete"
	// EventError is the terminal event of a failed workflow.
	EventError EventKind = "Error"
)

// Terminal reports whether the kind closes the stream.
func (k EventKind) Terminal() bool {
	return k == EventComplete || k == EventError
}

// Event is one discrete unit of workflow progress. Sequence strictly
// increases within one invocation; the bridge never reorders events.
type Event struct {
	Kind     EventKind
	Agent    string
	Payload  map[string]interface{}
	Sequence uint64
}

// Envelope is the externally visible wrapper for an event, shaped for the
// streaming chat API.
type Envelope struct {
	Type  string                 `json:"type"`
	Agent string                 `json:"agent,omitempty"`
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

// Envelope derives the wire shape of the event.
func (e Event) Envelope() Envelope {
	return Envelope{
		Type:  "metadata",
		Agent: e.Agent,
		Event: string(e.Kind),
		Data:  e.Payload,
	}
}
