package eventsource

import (
	"context"
	"io"
)

// ReplaySource replays a fixed sequence of events, then reports io.EOF or a
// configured terminal error. Used by mock providers and in tests.
type ReplaySource struct {
	events []Event
	err    error
	pos    int
}

// NewReplaySource creates a source that yields the given events in order,
// then io.EOF.
func NewReplaySource(events ...Event) *ReplaySource {
	return &ReplaySource{events: events}
}

// NewReplaySourceWithError creates a source that yields the given events in
// order, then the given transport error.
func NewReplaySourceWithError(err error, events ...Event) *ReplaySource {
	return &ReplaySource{events: events, err: err}
}

// Next returns the next replayed event.
func (s *ReplaySource) Next(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}
	if s.pos >= len(s.events) {
		if s.err != nil {
			return Event{}, s.err
		}
		return Event{}, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}

// Polled reports how many events have been consumed so far.
func (s *ReplaySource) Polled() int {
	return s.pos
}

// Messages is a convenience constructor: an open event followed by one
// message event per payload.
func Messages(payloads ...string) []Event {
	events := make([]Event, 0, len(payloads)+1)
	events = append(events, Event{Type: EventOpen})
	for _, p := range payloads {
		events = append(events, Event{Type: EventMessage, Data: p})
	}
	return events
}
