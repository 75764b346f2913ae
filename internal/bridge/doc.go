// Package bridge turns a long-running workflow producer into an
// incrementally consumed event stream.
//
// A background goroutine runs the producer and writes each progress event
// into a bounded queue as soon as it is produced. The consumer reads events
// in emission order until the single terminal event (completion or error)
// closes the stream. Cancellation propagates both ways: a detaching
// consumer cancels the producer, and a failing or panicking producer is
// recovered into a well-formed terminal error event, so the consumer never
// hangs and no fault escapes the bridge unobserved.
//
// A bridge instance serves exactly one invocation and one consumer; it does
// not support replay.
package bridge
