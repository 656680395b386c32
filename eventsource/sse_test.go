package eventsource

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func drain(t *testing.T, src Source) []Event {
	t.Helper()
	var events []Event
	for {
		ev, err := src.Next(context.Background())
		if err == io.EOF {
			return events
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		events = append(events, ev)
	}
}

func TestSSESource_BasicEvents(t *testing.T) {
	body := "data: {\"a\":1}\n\ndata: [DONE]\n\n"
	src := NewSSESource(strings.NewReader(body))

	events := drain(t, src)

	if len(events) != 3 {
		t.Fatalf("expected 3 events (open + 2 messages), got %d: %v", len(events), events)
	}
	if events[0].Type != EventOpen {
		t.Errorf("first event = %s, want open", events[0].Type)
	}
	if events[1].Data != `{"a":1}` {
		t.Errorf("first message data = %q", events[1].Data)
	}
	if events[2].Data != "[DONE]" {
		t.Errorf("second message data = %q", events[2].Data)
	}
}

func TestSSESource_MultiLineData(t *testing.T) {
	// Per the SSE spec, multiple data: lines of one event join with \n.
	body := "data: line1\ndata: line2\n\n"
	src := NewSSESource(strings.NewReader(body))

	events := drain(t, src)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[1].Data != "line1\nline2" {
		t.Errorf("data = %q, want %q", events[1].Data, "line1\nline2")
	}
}

func TestSSESource_SkipsCommentsAndOtherFields(t *testing.T) {
	body := ": keep-alive\nevent: message\nid: 42\ndata: hello\n\n"
	src := NewSSESource(strings.NewReader(body))

	events := drain(t, src)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[1].Data != "hello" {
		t.Errorf("data = %q, want %q", events[1].Data, "hello")
	}
}

func TestSSESource_CRLFAndNoTrailingBlankLine(t *testing.T) {
	body := "data: one\r\n\r\ndata: two"
	src := NewSSESource(strings.NewReader(body))

	events := drain(t, src)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[1].Data != "one" || events[2].Data != "two" {
		t.Errorf("data = %q, %q", events[1].Data, events[2].Data)
	}
}

func TestSSESource_ContextCancelled(t *testing.T) {
	src := NewSSESource(strings.NewReader("data: x\n\n"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Next(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestReplaySource_Sequence(t *testing.T) {
	src := NewReplaySource(Messages(`{"a":1}`, "[DONE]")...)

	events := drain(t, src)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if src.Polled() != 3 {
		t.Errorf("Polled() = %d, want 3", src.Polled())
	}
}

func TestReplaySource_TerminalError(t *testing.T) {
	wantErr := errors.New("connection reset")
	src := NewReplaySourceWithError(wantErr, Event{Type: EventOpen})

	if _, err := src.Next(context.Background()); err != nil {
		t.Fatalf("first Next() error = %v", err)
	}
	_, err := src.Next(context.Background())
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}
