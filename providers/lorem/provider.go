// Package lorem is a mock provider that streams lorem ipsum text.
// Used for testing and development without real API keys.
package lorem

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	loremgen "github.com/bozaro/golorem"

	llmstream "github.com/streamline-ai/llmstream-go"
)

// Provider generates synthetic normalized streams.
type Provider struct {
	generator *loremgen.Lorem
}

// NewProvider creates a new lorem ipsum provider.
func NewProvider() *Provider {
	return &Provider{
		generator: loremgen.New(),
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() llmstream.ProviderID {
	return llmstream.ProviderLorem
}

// SupportsModel returns true if the model name starts with "lorem-".
// Example models: "lorem-fast", "lorem-reasoner", "lorem-tooler"
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "lorem-")
}

// Stream builds a synthetic stream for the given model. Model name variants
// select the stream shape:
//   - models containing "reasoner" prefix the content with reasoning chunks
//   - models containing "tooler" emit a fragmented tool call instead of text
func (p *Provider) Stream(model string, opts llmstream.StreamOptions) (*Streamer, error) {
	if !p.SupportsModel(model) {
		return nil, &llmstream.ModelError{
			Model:    model,
			Provider: p.Name().String(),
			Reason:   "model not served by the lorem provider (must start with 'lorem-')",
			Err:      llmstream.ErrInvalidModel,
		}
	}
	if err := llmstream.RequireStreaming(llmstream.ProviderLorem); err != nil {
		return nil, err
	}

	s := &Streamer{opts: opts}
	s.events = append(s.events, llmstream.NewStartEvent())

	if strings.Contains(model, "reasoner") {
		for _, word := range strings.Fields(p.generator.Sentence(3, 6)) {
			s.pushReasoning(word + " ")
		}
	}

	if strings.Contains(model, "tooler") {
		s.pushToolCall("call_lorem_1", "lookup_phrase", `{"phrase":"`, p.generator.Sentence(2, 4), `"}`)
	} else {
		for _, word := range strings.Fields(p.generator.Sentence(5, 15)) {
			s.pushContent(word + " ")
		}
	}

	s.events = append(s.events, llmstream.NewEndEvent(s.takeEnd()))
	return s, nil
}

// Streamer replays a precomputed synthetic event sequence. It satisfies
// llmstream.InterStream.
type Streamer struct {
	opts   llmstream.StreamOptions
	events []llmstream.InterEvent
	pos    int

	captured struct {
		content   *string
		reasoning *string
		usage     *llmstream.Usage
		tools     []llmstream.ToolCall
	}
}

// Next returns the next synthetic event; io.EOF once exhausted.
func (s *Streamer) Next(ctx context.Context) (llmstream.InterEvent, error) {
	if err := ctx.Err(); err != nil {
		return llmstream.InterEvent{}, err
	}
	if s.pos >= len(s.events) {
		return llmstream.InterEvent{}, io.EOF
	}
	event := s.events[s.pos]
	s.pos++
	return event, nil
}

func (s *Streamer) pushContent(text string) {
	if s.opts.CaptureContent {
		appendString(&s.captured.content, text)
	}
	s.events = append(s.events, llmstream.NewContentChunkEvent(text))
}

func (s *Streamer) pushReasoning(text string) {
	if s.opts.CaptureReasoning {
		appendString(&s.captured.reasoning, text)
	}
	s.events = append(s.events, llmstream.NewReasoningChunkEvent(text))
}

// pushToolCall emits the call the way real providers fragment it: id and
// name first, then the argument JSON split across chunks.
func (s *Streamer) pushToolCall(id, name string, argFragments ...string) {
	s.events = append(s.events, llmstream.NewToolChunkEvent(0, llmstream.InterToolChunk{
		ID:   id,
		Name: name,
	}))
	var args string
	for _, frag := range argFragments {
		args += frag
		s.events = append(s.events, llmstream.NewToolChunkEvent(0, llmstream.InterToolChunk{
			Arguments: frag,
		}))
	}
	if s.opts.CaptureToolCalls {
		parsed := map[string]interface{}{}
		if err := json.Unmarshal([]byte(args), &parsed); err != nil {
			parsed = map[string]interface{}{}
		}
		s.captured.tools = append(s.captured.tools, llmstream.ToolCall{
			CallID:      id,
			FnName:      name,
			FnArguments: parsed,
		})
	}
}

func (s *Streamer) takeEnd() llmstream.InterEnd {
	end := llmstream.InterEnd{
		CapturedContent:   s.captured.content,
		CapturedReasoning: s.captured.reasoning,
		CapturedToolCalls: s.captured.tools,
	}
	if s.opts.CaptureUsage {
		usage := s.estimateUsage()
		end.CapturedUsage = &usage
	}
	return end
}

// estimateUsage derives mock accounting from the generated chunks,
// one token per emitted word.
func (s *Streamer) estimateUsage() llmstream.Usage {
	var output int
	for _, event := range s.events {
		switch event.Type {
		case llmstream.InterEventChunk:
			if event.Chunk.Kind == llmstream.InterChunkContent {
				output += len(strings.Fields(event.Chunk.Content))
			}
		case llmstream.InterEventReasoningChunk:
			output += len(strings.Fields(event.Reasoning))
		}
	}
	usage := llmstream.Usage{
		InputTokens:  1,
		OutputTokens: output,
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
