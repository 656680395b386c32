package anthropic

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	llmstream "github.com/streamline-ai/llmstream-go"
)

const defaultMaxTokens = 4096

// Provider opens normalized streams against the Anthropic Messages API.
type Provider struct {
	client *anthropic.Client
}

// NewProvider creates an Anthropic provider with the given API key.
func NewProvider(apiKey string) (*Provider, error) {
	if apiKey == "" {
		return nil, llmstream.ErrInvalidAPIKey
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &Provider{
		client: &client,
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() llmstream.ProviderID {
	return llmstream.ProviderAnthropic
}

// SupportsModel returns true if this provider serves the given model.
// Anthropic models start with "claude-".
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "claude-")
}

// StreamRequest carries the parameters for an Anthropic streaming call.
type StreamRequest struct {
	Model     string
	Prompt    string
	System    string
	MaxTokens int
}

// Stream opens a streaming request and returns a streamer over it. The
// returned streamer normalizes the SDK's event union into intermediate
// events; wrap it in llmstream.NewChatStream for the public event surface.
func (p *Provider) Stream(ctx context.Context, req StreamRequest, opts llmstream.StreamOptions, options ...Option) (*Streamer, error) {
	if !p.SupportsModel(req.Model) {
		return nil, &llmstream.ModelError{
			Model:    req.Model,
			Provider: p.Name().String(),
			Reason:   "model not served by Anthropic (must start with 'claude-')",
			Err:      llmstream.ErrInvalidModel,
		}
	}
	if err := llmstream.RequireStreaming(llmstream.ProviderAnthropic); err != nil {
		return nil, err
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	apiParams := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		apiParams.System = []anthropic.TextBlockParam{
			{Text: req.System},
		}
	}

	stream := p.client.Messages.NewStreaming(ctx, apiParams)
	return NewStreamer(stream, opts, options...), nil
}
