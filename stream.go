package llmstream

import (
	"context"
	"fmt"
)

// ChatStreamEventType identifies the kind of public stream event.
type ChatStreamEventType string

const (
	// StreamEventStart is the first event of the stream.
	StreamEventStart ChatStreamEventType = "start"

	// StreamEventChunk carries a content or tool-call delta.
	StreamEventChunk ChatStreamEventType = "chunk"

	// StreamEventReasoningChunk carries a reasoning text delta.
	StreamEventReasoningChunk ChatStreamEventType = "reasoning_chunk"

	// StreamEventEnd is the final event; it carries the captured summary.
	StreamEventEnd ChatStreamEventType = "end"
)

// StreamToolChunk is the public shape of one tool-call fragment.
type StreamToolChunk struct {
	// ID is the (partial) tool call id
	ID string `json:"id"`

	// Name is the (partial) function name
	Name string `json:"name"`

	// Arguments is the raw argument JSON text fragment
	Arguments string `json:"arguments"`
}

// StreamChunk is the content of a Chunk event: either a text delta or one
// tool-call fragment identified by its call index.
type StreamChunk struct {
	// Content is the text delta (empty for tool chunks)
	Content string `json:"content,omitempty"`

	// Tool is the tool-call fragment, nil for content chunks
	Tool *StreamToolChunk `json:"tool,omitempty"`

	// ToolIndex identifies which logical call the fragment belongs to
	ToolIndex int `json:"tool_index,omitempty"`
}

// IsTool returns true if this chunk carries a tool-call fragment.
func (c StreamChunk) IsTool() bool {
	return c.Tool != nil
}

// StreamReasoningChunk is the content of a ReasoningChunk event.
type StreamReasoningChunk struct {
	// Content is the reasoning text delta
	Content string `json:"content"`
}

// StreamEnd is the terminal summary of a stream. Each captured field is
// populated only if the corresponding StreamOptions capture flag was set
// and the stream produced matching data.
type StreamEnd struct {
	// CapturedUsage holds normalized token accounting, if captured
	CapturedUsage *Usage `json:"captured_usage,omitempty"`

	// CapturedContent holds the full assistant content, if captured
	CapturedContent *MessageContent `json:"captured_content,omitempty"`

	// CapturedReasoning holds the full reasoning text, if captured
	CapturedReasoning *string `json:"captured_reasoning,omitempty"`

	// CapturedToolCalls holds the finalized tool calls in arrival order, if captured
	CapturedToolCalls []ToolCall `json:"captured_tool_calls,omitempty"`
}

// ChatStreamEvent is the normalized public stream event for any provider.
type ChatStreamEvent struct {
	// Type is the event kind
	Type ChatStreamEventType `json:"type"`

	// Chunk is set when Type == StreamEventChunk
	Chunk *StreamChunk `json:"chunk,omitempty"`

	// Reasoning is set when Type == StreamEventReasoningChunk
	Reasoning *StreamReasoningChunk `json:"reasoning,omitempty"`

	// End is set when Type == StreamEventEnd
	End *StreamEnd `json:"end,omitempty"`
}

// ChatStream is the caller-facing stream of normalized events. It is a
// stateless 1:1 relay over an InterStream: no buffering, no reordering.
//
// Usage:
//
//	stream := llmstream.NewChatStream(streamer)
//	for {
//		event, err := stream.Next(ctx)
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			return err // terminal, no further events
//		}
//		// process event
//	}
type ChatStream struct {
	inter InterStream
}

// NewChatStream wraps a provider streamer into the public stream.
func NewChatStream(inter InterStream) *ChatStream {
	return &ChatStream{inter: inter}
}

// Next returns the next public event. It returns io.EOF when the stream is
// exhausted; any other error is terminal.
func (s *ChatStream) Next(ctx context.Context) (ChatStreamEvent, error) {
	event, err := s.inter.Next(ctx)
	if err != nil {
		return ChatStreamEvent{}, err
	}

	switch event.Type {
	case InterEventStart:
		return ChatStreamEvent{Type: StreamEventStart}, nil

	case InterEventChunk:
		return ChatStreamEvent{Type: StreamEventChunk, Chunk: publicChunk(event.Chunk)}, nil

	case InterEventReasoningChunk:
		return ChatStreamEvent{
			Type:      StreamEventReasoningChunk,
			Reasoning: &StreamReasoningChunk{Content: event.Reasoning},
		}, nil

	case InterEventEnd:
		return ChatStreamEvent{Type: StreamEventEnd, End: publicEnd(event.End)}, nil

	default:
		return ChatStreamEvent{}, fmt.Errorf("llmstream: unknown intermediate event type %q", event.Type)
	}
}

func publicChunk(chunk InterChunk) *StreamChunk {
	switch chunk.Kind {
	case InterChunkTool:
		return &StreamChunk{
			ToolIndex: chunk.ToolIndex,
			Tool: &StreamToolChunk{
				ID:        chunk.Tool.ID,
				Name:      chunk.Tool.Name,
				Arguments: chunk.Tool.Arguments,
			},
		}
	default:
		return &StreamChunk{Content: chunk.Content}
	}
}

func publicEnd(end InterEnd) *StreamEnd {
	out := &StreamEnd{
		CapturedUsage:     end.CapturedUsage,
		CapturedReasoning: end.CapturedReasoning,
		CapturedToolCalls: end.CapturedToolCalls,
	}
	if end.CapturedContent != nil {
		content := NewMessageContent(*end.CapturedContent)
		out.CapturedContent = &content
	}
	return out
}
