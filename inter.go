package llmstream

import "context"

// Intermediate stream event types, the seam between provider streamers and
// the public ChatStream. Provider wire detail stops here: new provider
// families plug in by emitting InterEvents without touching the public
// contract.

// InterEventType identifies the kind of intermediate event.
type InterEventType string

const (
	InterEventStart          InterEventType = "start"
	InterEventChunk          InterEventType = "chunk"
	InterEventReasoningChunk InterEventType = "reasoning_chunk"
	InterEventEnd            InterEventType = "end"
)

// InterChunkKind distinguishes content deltas from tool-call deltas.
type InterChunkKind string

const (
	InterChunkContent InterChunkKind = "content"
	InterChunkTool    InterChunkKind = "tool"
)

// InterToolChunk is one raw tool-call fragment: any subset of the fields may
// be empty on a given fragment. Arguments is a raw JSON text fragment that
// is only valid JSON once all fragments for the call are assembled.
type InterToolChunk struct {
	ID        string
	Name      string
	Arguments string
}

// InterChunk is either a content text delta or a tool-call fragment
// identified by its provider-assigned call index.
type InterChunk struct {
	Kind InterChunkKind

	// Content is the text delta (Kind == InterChunkContent)
	Content string

	// ToolIndex and Tool carry the fragment (Kind == InterChunkTool)
	ToolIndex int
	Tool      InterToolChunk
}

// InterEnd carries the captured data moved out of the streamer's
// accumulator. Each field is present only if its capture flag was set and
// the stream actually produced matching data.
type InterEnd struct {
	CapturedUsage     *Usage
	CapturedContent   *string
	CapturedReasoning *string
	CapturedToolCalls []ToolCall
}

// InterEvent is the provider-agnostic intermediate event.
type InterEvent struct {
	Type InterEventType

	// Chunk is set when Type == InterEventChunk
	Chunk InterChunk

	// Reasoning is the text delta when Type == InterEventReasoningChunk
	Reasoning string

	// End is set when Type == InterEventEnd; it is always the last event
	End InterEnd
}

// NewStartEvent creates a Start intermediate event.
func NewStartEvent() InterEvent {
	return InterEvent{Type: InterEventStart}
}

// NewContentChunkEvent creates a content-delta Chunk event.
func NewContentChunkEvent(text string) InterEvent {
	return InterEvent{
		Type:  InterEventChunk,
		Chunk: InterChunk{Kind: InterChunkContent, Content: text},
	}
}

// NewToolChunkEvent creates a tool-fragment Chunk event.
func NewToolChunkEvent(index int, tool InterToolChunk) InterEvent {
	return InterEvent{
		Type:  InterEventChunk,
		Chunk: InterChunk{Kind: InterChunkTool, ToolIndex: index, Tool: tool},
	}
}

// NewReasoningChunkEvent creates a reasoning-delta event.
func NewReasoningChunkEvent(text string) InterEvent {
	return InterEvent{Type: InterEventReasoningChunk, Reasoning: text}
}

// NewEndEvent creates the terminal End event.
func NewEndEvent(end InterEnd) InterEvent {
	return InterEvent{Type: InterEventEnd, End: end}
}

// InterStream is the pull interface every provider streamer implements.
//
// Next performs one bounded drive step: it pulls at most what is needed to
// produce a single event and returns. It returns io.EOF once the stream is
// terminal (after the End event, or when the source closed without a
// terminal sentinel); any other error is terminal and no further events
// follow it. Next must never be called concurrently.
type InterStream interface {
	Next(ctx context.Context) (InterEvent, error)
}
