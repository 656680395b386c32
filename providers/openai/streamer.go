package openai

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	llmstream "github.com/streamline-ai/llmstream-go"
	"github.com/streamline-ai/llmstream-go/eventsource"
)

// Streamer drives an event source carrying an OpenAI-compatible stream and
// emits intermediate events. It has a single consumer and two states:
// active, and done once the [DONE] sentinel (or a terminal error) has been
// observed. Once done it never touches the source again.
type Streamer struct {
	source   eventsource.Source
	provider llmstream.ProviderID
	opts     llmstream.StreamOptions
	logger   zerolog.Logger

	done     bool
	captured capturedData
	partial  *partialToolCall
}

// capturedData accumulates streamed data for the terminal End event, gated
// per field by the capture flags. It is moved out (not copied) when the
// stream ends.
type capturedData struct {
	content   *string
	reasoning *string
	usage     *llmstream.Usage
	tools     []llmstream.ToolCall
}

// Option configures a Streamer.
type Option func(*Streamer)

// WithLogger sets the logger used for stream tracing. Defaults to a no-op
// logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Streamer) {
		s.logger = logger
	}
}

// NewStreamer creates a Streamer for the given provider dialect over the
// given event source. The provider selects where usage accounting is read
// from; it must be one of the OpenAI-compatible providers.
func NewStreamer(source eventsource.Source, provider llmstream.ProviderID, opts llmstream.StreamOptions, options ...Option) (*Streamer, error) {
	if !provider.IsOpenAICompatible() {
		return nil, &llmstream.ModelError{
			Provider: provider.String(),
			Reason:   "provider does not speak the OpenAI-compatible streaming dialect",
			Err:      llmstream.ErrUnsupportedFeature,
		}
	}
	if err := llmstream.RequireStreaming(provider); err != nil {
		return nil, err
	}

	s := &Streamer{
		source:   source,
		provider: provider,
		opts:     opts,
		logger:   zerolog.Nop(),
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// Next performs one drive step and returns the next intermediate event.
//
// Each step pulls raw events from the source until one of them produces an
// event for the caller; finish signals and usage-only payloads are consumed
// without emitting. Returns io.EOF after the End event, or when the source
// closed without sending the [DONE] sentinel. Any other error is terminal:
// no further events are produced and the source is not consulted again.
func (s *Streamer) Next(ctx context.Context) (llmstream.InterEvent, error) {
	if s.done {
		// Re-polling a finished source is undefined for the collaborator.
		return llmstream.InterEvent{}, io.EOF
	}

	for {
		raw, err := s.source.Next(ctx)
		if err != nil {
			s.done = true
			if errors.Is(err, io.EOF) {
				// Provider closed the connection without the sentinel.
				return llmstream.InterEvent{}, io.EOF
			}
			s.logger.Error().Err(err).Str("provider", s.provider.String()).Msg("stream transport error")
			return llmstream.InterEvent{}, err
		}

		switch raw.Type {
		case eventsource.EventOpen:
			return llmstream.NewStartEvent(), nil

		case eventsource.EventMessage:
			event, emit, err := s.consumeMessage(raw.Data)
			if err != nil {
				s.done = true
				return llmstream.InterEvent{}, err
			}
			if emit {
				return event, nil
			}
			// Finish signal or usage-only payload; keep pulling.

		default:
			s.logger.Warn().Str("type", string(raw.Type)).Msg("unknown source event type")
		}
	}
}

// consumeMessage processes one message payload. emit is false when the
// payload is bookkeeping only (finish signal, usage payload).
func (s *Streamer) consumeMessage(data string) (event llmstream.InterEvent, emit bool, err error) {
	// The sentinel is a literal, not JSON; check it before parsing.
	if data == doneSentinel {
		s.done = true
		return llmstream.NewEndEvent(s.takeEnd()), true, nil
	}

	delta, err := decodeMessage(s.provider, data)
	if err != nil {
		return llmstream.InterEvent{}, false, err
	}

	s.logger.Trace().Str("data", data).Msg("stream message")

	switch delta.kind {
	case deltaFinish:
		// More payloads follow before the literal [DONE].
		s.captureUsage(delta.usage)
		return llmstream.InterEvent{}, false, nil

	case deltaContent:
		if s.opts.CaptureContent {
			appendString(&s.captured.content, delta.content)
		}
		return llmstream.NewContentChunkEvent(delta.content), true, nil

	case deltaReasoning:
		if s.opts.CaptureReasoning {
			appendString(&s.captured.reasoning, delta.reasoning)
		}
		return llmstream.NewReasoningChunkEvent(delta.reasoning), true, nil

	case deltaToolCall:
		// The incoming fragment is re-emitted as-is; a flush of the
		// previous call is recorded into the accumulator, never emitted
		// as a separate event.
		next, flushed := merge(s.partial, delta.tool)
		s.partial = next
		if flushed != nil && s.opts.CaptureToolCalls {
			s.captured.tools = append(s.captured.tools, flushed.finalize())
		}
		return llmstream.NewToolChunkEvent(delta.tool.Index, interToolChunk(delta.tool)), true, nil

	case deltaUsageOnly:
		s.captureUsage(delta.usage)
		return llmstream.InterEvent{}, false, nil

	default:
		s.logger.Warn().Str("data", data).Msg("empty choice content")
		return llmstream.InterEvent{}, false, nil
	}
}

// captureUsage records usage first-write-wins: accounting captured at the
// finish signal is never overwritten by a later usage-only payload.
func (s *Streamer) captureUsage(usage *llmstream.Usage) {
	if usage == nil || !s.opts.CaptureUsage || s.captured.usage != nil {
		return
	}
	s.captured.usage = usage
}

// takeEnd flushes a still-held partial tool call, then moves the
// accumulator out. The streamer holds empty state afterwards.
func (s *Streamer) takeEnd() llmstream.InterEnd {
	if s.partial != nil && s.opts.CaptureToolCalls {
		s.captured.tools = append(s.captured.tools, s.partial.finalize())
	}
	s.partial = nil

	end := llmstream.InterEnd{
		CapturedUsage:     s.captured.usage,
		CapturedContent:   s.captured.content,
		CapturedReasoning: s.captured.reasoning,
		CapturedToolCalls: s.captured.tools,
	}
	s.captured = capturedData{}
	return end
}

func appendString(dst **string, text string) {
	if *dst == nil {
		copied := text
		*dst = &copied
		return
	}
	**dst += text
}
