// Package anthropic normalizes Anthropic's native streaming event dialect
// into the llmstream intermediate event algebra.
//
// Unlike the OpenAI-compatible dialect, Anthropic frames content in
// explicit blocks (content_block_start / delta / stop) and splits usage
// across message_start and message_delta; the SDK's message accumulator
// folds those back together.
package anthropic

import (
	"context"
	"encoding/json"
	"io"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/rs/zerolog"

	llmstream "github.com/streamline-ai/llmstream-go"
)

// MessageStream is the subset of the SDK streaming client the streamer
// drives. *ssestream.Stream[anthropic.MessageStreamEventUnion], as returned
// by client.Messages.NewStreaming, satisfies it.
type MessageStream interface {
	Next() bool
	Current() anthropic.MessageStreamEventUnion
	Err() error
}

// Streamer drives an Anthropic message stream and emits intermediate
// events. Single consumer; terminal once message_stop (or an error) has
// been observed, after which the underlying stream is never touched again.
type Streamer struct {
	stream MessageStream
	opts   llmstream.StreamOptions
	logger zerolog.Logger

	started bool
	done    bool

	// message accumulates SDK events for end-of-stream usage accounting
	message anthropic.Message

	captured capturedData
	partial  *partialToolUse
}

type capturedData struct {
	content   *string
	reasoning *string
	tools     []llmstream.ToolCall
}

// partialToolUse is the single in-flight tool_use block. Anthropic frames
// blocks explicitly, so assembly is keyed on the block index and argument
// JSON arrives via input_json_delta fragments.
type partialToolUse struct {
	index     int64
	id        string
	name      string
	arguments string
}

func (p *partialToolUse) finalize() llmstream.ToolCall {
	args := map[string]interface{}{}
	if p.arguments != "" {
		if err := json.Unmarshal([]byte(p.arguments), &args); err != nil {
			args = map[string]interface{}{}
		}
	}
	return llmstream.ToolCall{CallID: p.id, FnName: p.name, FnArguments: args}
}

// Option configures a Streamer.
type Option func(*Streamer)

// WithLogger sets the logger used for stream tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Streamer) {
		s.logger = logger
	}
}

// NewStreamer creates a Streamer over an SDK message stream, typically
// client.Messages.NewStreaming(ctx, params).
func NewStreamer(stream MessageStream, opts llmstream.StreamOptions, options ...Option) *Streamer {
	s := &Streamer{
		stream: stream,
		opts:   opts,
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Next performs one drive step and returns the next intermediate event.
// Returns io.EOF after the End event; any other error is terminal.
func (s *Streamer) Next(ctx context.Context) (llmstream.InterEvent, error) {
	if s.done {
		return llmstream.InterEvent{}, io.EOF
	}
	if err := ctx.Err(); err != nil {
		s.done = true
		return llmstream.InterEvent{}, err
	}

	if !s.started {
		s.started = true
		return llmstream.NewStartEvent(), nil
	}

	for s.stream.Next() {
		event := s.stream.Current()

		if err := s.message.Accumulate(event); err != nil {
			s.done = true
			s.logger.Error().Err(err).Msg("failed to accumulate message")
			return llmstream.InterEvent{}, err
		}

		out, emit := s.consumeEvent(event)
		if emit {
			return out, nil
		}
	}

	s.done = true
	if err := s.stream.Err(); err != nil {
		s.logger.Error().Err(err).Msg("anthropic stream error")
		return llmstream.InterEvent{}, err
	}
	// Stream closed without message_stop.
	return llmstream.InterEvent{}, io.EOF
}

// consumeEvent translates one SDK event. emit is false for bookkeeping
// events (message_start, message_delta, block stops).
func (s *Streamer) consumeEvent(event anthropic.MessageStreamEventUnion) (llmstream.InterEvent, bool) {
	switch e := event.AsAny().(type) {
	case anthropic.ContentBlockStartEvent:
		if e.ContentBlock.Type == "tool_use" {
			s.flushPartial()
			s.partial = &partialToolUse{
				index: e.Index,
				id:    e.ContentBlock.ID,
				name:  e.ContentBlock.Name,
			}
			return llmstream.NewToolChunkEvent(int(e.Index), llmstream.InterToolChunk{
				ID:   e.ContentBlock.ID,
				Name: e.ContentBlock.Name,
			}), true
		}
		return llmstream.InterEvent{}, false

	case anthropic.ContentBlockDeltaEvent:
		switch e.Delta.Type {
		case "text_delta":
			if s.opts.CaptureContent {
				appendString(&s.captured.content, e.Delta.Text)
			}
			return llmstream.NewContentChunkEvent(e.Delta.Text), true

		case "thinking_delta":
			if s.opts.CaptureReasoning {
				appendString(&s.captured.reasoning, e.Delta.Thinking)
			}
			return llmstream.NewReasoningChunkEvent(e.Delta.Thinking), true

		case "input_json_delta":
			if s.partial != nil {
				s.partial.arguments += e.Delta.PartialJSON
			}
			return llmstream.NewToolChunkEvent(int(e.Index), llmstream.InterToolChunk{
				Arguments: e.Delta.PartialJSON,
			}), true

		default:
			// signature_delta and friends carry nothing we surface
			return llmstream.InterEvent{}, false
		}

	case anthropic.ContentBlockStopEvent:
		s.flushPartial()
		return llmstream.InterEvent{}, false

	case anthropic.MessageStopEvent:
		s.done = true
		return llmstream.NewEndEvent(s.takeEnd()), true

	default:
		// message_start, message_delta: accounting only, folded into the
		// accumulated message
		return llmstream.InterEvent{}, false
	}
}

func (s *Streamer) flushPartial() {
	if s.partial == nil {
		return
	}
	if s.opts.CaptureToolCalls {
		s.captured.tools = append(s.captured.tools, s.partial.finalize())
	}
	s.partial = nil
}

// takeEnd moves the accumulator out for the terminal End event.
func (s *Streamer) takeEnd() llmstream.InterEnd {
	s.flushPartial()

	end := llmstream.InterEnd{
		CapturedContent:   s.captured.content,
		CapturedReasoning: s.captured.reasoning,
		CapturedToolCalls: s.captured.tools,
	}
	if s.opts.CaptureUsage {
		usage := usageFromAnthropic(s.message.Usage)
		end.CapturedUsage = &usage
	}
	s.captured = capturedData{}
	return end
}

// usageFromAnthropic normalizes the SDK usage record.
func usageFromAnthropic(u anthropic.Usage) llmstream.Usage {
	usage := llmstream.Usage{
		InputTokens:  int(u.InputTokens),
		OutputTokens: int(u.OutputTokens),
		CachedTokens: int(u.CacheReadInputTokens),
	}
	usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	return usage
}

func appendString(dst **string, text string) {
	if *dst == nil {
		copied := text
		*dst = &copied
		return
	}
	**dst += text
}
