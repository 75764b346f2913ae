package bridge

import (
	"context"
	"fmt"

	"voyagent/internal/faults"
	"voyagent/pkg/logging"

	"github.com/google/uuid"
)

// queueCapacity bounds the event queue between producer and consumer. It
// decouples producer pace from consumer pace without unbounded growth.
const queueCapacity = 32

// EmitFunc is handed to the producer for publishing non-terminal progress
// events. Terminal events are written by the bridge itself, never by the
// producer.
type EmitFunc func(kind EventKind, agent string, payload map[string]interface{})

// Producer is a long-running workflow that emits progress events and
// terminates with a result payload or an error. The bridge treats it as
// opaque.
type Producer interface {
	// Name is the agent name attached to the terminal completion event.
	Name() string

	// Produce runs the workflow. Emitted events are delivered to the
	// consumer in emission order. The returned payload becomes the
	// terminal completion event; a returned error becomes the terminal
	// error event.
	Produce(ctx context.Context, emit EmitFunc) (map[string]interface{}, error)
}

// Bridge relays events from one workflow invocation to one consumer. It is
// single-use: one producer run, one consumer, no replay.
type Bridge struct {
	id     string
	events chan Event
	cancel context.CancelFunc
}

// Start launches the producer in a background goroutine and returns the
// bridge its consumer reads from. The producer inherits cancellation from
// ctx: if the consumer detaches (the surrounding request context is
// cancelled), the producer is cancelled promptly instead of running to
// completion unobserved.
//
// Exactly one terminal event is written per invocation, and nothing after
// it. Producer errors and panics surface as the terminal error event; they
// never escape the bridge.
func Start(ctx context.Context, producer Producer) *Bridge {
	bctx, cancel := context.WithCancel(ctx)

	b := &Bridge{
		id:     uuid.NewString(),
		events: make(chan Event, queueCapacity),
		cancel: cancel,
	}

	go b.run(bctx, producer)
	return b
}

// ID returns the invocation id of this bridge, used for log correlation.
func (b *Bridge) ID() string {
	return b.id
}

// Events returns the consumer side of the bridge. The channel yields events
// in emission order and is closed after the terminal event. Only one
// consumer may read from it.
func (b *Bridge) Events() <-chan Event {
	return b.events
}

// Cancel detaches the consumer, cancelling the background producer. Safe to
// call multiple times and after completion.
func (b *Bridge) Cancel() {
	b.cancel()
}

func (b *Bridge) run(ctx context.Context, producer Producer) {
	defer close(b.events)
	defer b.cancel()

	var seq uint64
	emit := func(kind EventKind, agent string, payload map[string]interface{}) {
		if kind.Terminal() {
			// The single terminal event is the bridge's to write.
			logging.Warn("Bridge", "Producer attempted to emit terminal event %s directly, dropping (invocation %s)", kind, b.id)
			return
		}
		seq++
		select {
		case b.events <- Event{Kind: kind, Agent: agent, Payload: payload, Sequence: seq}:
		case <-ctx.Done():
		}
	}

	result, err := b.runProducer(ctx, producer, emit)

	var terminal Event
	if err != nil {
		rec := faults.Translate(err)
		logging.Error("Bridge", rec, "Workflow invocation %s failed", b.id)
		terminal = Event{
			Kind: EventError,
			Payload: map[string]interface{}{
				"error": rec.Message,
				"kind":  string(rec.Kind),
			},
		}
	} else {
		terminal = Event{
			Kind:    EventComplete,
			Agent:   producer.Name(),
			Payload: result,
		}
	}
	seq++
	terminal.Sequence = seq

	// A detached consumer no longer reads; do not block on the dead queue.
	select {
	case b.events <- terminal:
	case <-ctx.Done():
		// Queued events are still drained by the consumer via channel
		// close if it comes back; a cancelled context means it will not.
	}
}

// runProducer isolates the producer so a panic becomes a terminal error
// event instead of taking down the process.
func (b *Bridge) runProducer(ctx context.Context, producer Producer, emit EmitFunc) (result map[string]interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = faults.New(faults.KindWorkflowFault, "workflow panic: %v", r)
		}
	}()

	if ctx.Err() != nil {
		return nil, fmt.Errorf("workflow cancelled before start: %w", ctx.Err())
	}
	return producer.Produce(ctx, emit)
}
