// Package eventsource provides a pull-based feed of raw streaming protocol
// events, decoupling stream normalization from the transport that produced
// the events.
//
// A Source yields events one at a time:
//   - EventOpen: the connection/stream was established
//   - EventMessage: one protocol message payload (an SSE data payload)
//
// End of source is signaled with io.EOF; any other error is a transport
// error and terminates the feed.
package eventsource

import "context"

// EventType identifies the kind of raw protocol event.
type EventType string

const (
	// EventOpen signals the stream connection was established.
	EventOpen EventType = "open"

	// EventMessage carries one message payload from the stream.
	EventMessage EventType = "message"
)

// Event is a single raw protocol event.
type Event struct {
	// Type is the event kind ("open" or "message")
	Type EventType

	// Data is the message payload text (empty for open events).
	// For SSE this is the concatenated `data:` payload of one event.
	Data string
}

// Source is a pull-driven feed of raw protocol events.
//
// Next blocks until an event is available, the source is exhausted
// (io.EOF), or a transport error occurs. A Source has a single consumer;
// calling Next after it returned io.EOF or an error is undefined.
type Source interface {
	Next(ctx context.Context) (Event, error)
}
