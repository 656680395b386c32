package anthropic

import (
	"context"
	"errors"
	"io"
	"testing"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	llmstream "github.com/streamline-ai/llmstream-go"
)

// fakeStream is an exhausted or failed message stream.
type fakeStream struct {
	err error
}

func (f *fakeStream) Next() bool { return false }

func (f *fakeStream) Current() anthropicsdk.MessageStreamEventUnion {
	return anthropicsdk.MessageStreamEventUnion{}
}

func (f *fakeStream) Err() error { return f.err }

func TestStreamer_StartThenCleanEOF(t *testing.T) {
	s := NewStreamer(&fakeStream{}, llmstream.StreamOptions{})
	ctx := context.Background()

	event, err := s.Next(ctx)
	if err != nil {
		t.Fatalf("first Next error = %v", err)
	}
	if event.Type != llmstream.InterEventStart {
		t.Fatalf("first event = %v, want start", event.Type)
	}

	if _, err := s.Next(ctx); !errors.Is(err, io.EOF) {
		t.Fatalf("second Next error = %v, want io.EOF", err)
	}

	// Terminal state is sticky.
	if _, err := s.Next(ctx); !errors.Is(err, io.EOF) {
		t.Fatalf("third Next error = %v, want io.EOF", err)
	}
}

func TestStreamer_StreamErrorIsTerminal(t *testing.T) {
	streamErr := errors.New("overloaded")
	s := NewStreamer(&fakeStream{err: streamErr}, llmstream.StreamOptions{})
	ctx := context.Background()

	if _, err := s.Next(ctx); err != nil {
		t.Fatalf("start event error = %v", err)
	}

	if _, err := s.Next(ctx); !errors.Is(err, streamErr) {
		t.Fatalf("error = %v, want %v", err, streamErr)
	}
	if _, err := s.Next(ctx); !errors.Is(err, io.EOF) {
		t.Fatalf("post-error Next = %v, want io.EOF", err)
	}
}

func TestStreamer_ContextCancellation(t *testing.T) {
	s := NewStreamer(&fakeStream{}, llmstream.StreamOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestUsageFromAnthropic(t *testing.T) {
	usage := usageFromAnthropic(anthropicsdk.Usage{
		InputTokens:          12,
		OutputTokens:         8,
		CacheReadInputTokens: 4,
	})

	want := llmstream.Usage{
		InputTokens:  12,
		OutputTokens: 8,
		TotalTokens:  20,
		CachedTokens: 4,
	}
	if usage != want {
		t.Errorf("usage = %+v, want %+v", usage, want)
	}
}

func TestPartialToolUse_Finalize(t *testing.T) {
	partial := &partialToolUse{
		id:        "toolu_01",
		name:      "get_weather",
		arguments: `{"city":"Tokyo"}`,
	}

	call := partial.finalize()
	if call.CallID != "toolu_01" || call.FnName != "get_weather" {
		t.Errorf("call = %+v", call)
	}
	if call.FnArguments["city"] != "Tokyo" {
		t.Errorf("FnArguments = %+v, want city=Tokyo", call.FnArguments)
	}
}

func TestPartialToolUse_FinalizeUnparsableArguments(t *testing.T) {
	partial := &partialToolUse{id: "toolu_02", name: "broken", arguments: `{"unterminated`}

	call := partial.finalize()
	if len(call.FnArguments) != 0 {
		t.Errorf("FnArguments = %+v, want empty map", call.FnArguments)
	}
}

func TestFlushPartial_GatedByCaptureFlag(t *testing.T) {
	s := NewStreamer(&fakeStream{}, llmstream.StreamOptions{})
	s.partial = &partialToolUse{id: "toolu_03", name: "fn", arguments: "{}"}
	s.flushPartial()
	if len(s.captured.tools) != 0 {
		t.Errorf("tools = %+v, want none without CaptureToolCalls", s.captured.tools)
	}

	s = NewStreamer(&fakeStream{}, llmstream.StreamOptions{CaptureToolCalls: true})
	s.partial = &partialToolUse{id: "toolu_03", name: "fn", arguments: "{}"}
	s.flushPartial()
	if len(s.captured.tools) != 1 || s.captured.tools[0].CallID != "toolu_03" {
		t.Errorf("tools = %+v, want the flushed call", s.captured.tools)
	}
}
