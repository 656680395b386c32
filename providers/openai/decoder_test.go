package openai

import (
	"errors"
	"testing"

	llmstream "github.com/streamline-ai/llmstream-go"
)

func TestDecodeMessage_ContentDelta(t *testing.T) {
	data := `{"id":"chatcmpl-1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":"Hello"},"finish_reason":null}]}`

	delta, err := decodeMessage(llmstream.ProviderOpenAI, data)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if delta.kind != deltaContent {
		t.Fatalf("kind = %v, want deltaContent", delta.kind)
	}
	if delta.content != "Hello" {
		t.Errorf("content = %q, want %q", delta.content, "Hello")
	}
}

func TestDecodeMessage_ReasoningDelta(t *testing.T) {
	data := `{"choices":[{"index":0,"delta":{"reasoning_content":"thinking..."},"finish_reason":null}]}`

	delta, err := decodeMessage(llmstream.ProviderDeepSeek, data)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if delta.kind != deltaReasoning {
		t.Fatalf("kind = %v, want deltaReasoning", delta.kind)
	}
	if delta.reasoning != "thinking..." {
		t.Errorf("reasoning = %q", delta.reasoning)
	}
}

func TestDecodeMessage_ToolCallDelta(t *testing.T) {
	data := `{"choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"id":"call_VkT1Z57SU75JNIOCxzGZnYVd","type":"function","function":{"name":"get_weather","arguments":""}}]},"finish_reason":null}]}`

	delta, err := decodeMessage(llmstream.ProviderOpenAI, data)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if delta.kind != deltaToolCall {
		t.Fatalf("kind = %v, want deltaToolCall", delta.kind)
	}
	if delta.tool.Index != 0 {
		t.Errorf("tool index = %d, want 0", delta.tool.Index)
	}
	if delta.tool.ID != "call_VkT1Z57SU75JNIOCxzGZnYVd" {
		t.Errorf("tool id = %q", delta.tool.ID)
	}
	if delta.tool.Function.Name != "get_weather" {
		t.Errorf("tool name = %q", delta.tool.Function.Name)
	}
	if delta.tool.Function.Arguments != "" {
		t.Errorf("tool arguments = %q, want empty", delta.tool.Function.Arguments)
	}
}

func TestDecodeMessage_PartialToolCallFragment(t *testing.T) {
	// Argument-only fragments carry neither id nor name.
	data := `{"choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"function":{"arguments":"{\""}}]},"finish_reason":null}]}`

	delta, err := decodeMessage(llmstream.ProviderOpenAI, data)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if delta.kind != deltaToolCall {
		t.Fatalf("kind = %v, want deltaToolCall", delta.kind)
	}
	if delta.tool.ID != "" || delta.tool.Function.Name != "" {
		t.Errorf("expected empty id/name, got %q/%q", delta.tool.ID, delta.tool.Function.Name)
	}
	if delta.tool.Function.Arguments != `{"` {
		t.Errorf("arguments = %q, want %q", delta.tool.Function.Arguments, `{"`)
	}
}

func TestDecodeMessage_FinishSignal(t *testing.T) {
	tests := []struct {
		name      string
		provider  llmstream.ProviderID
		data      string
		wantUsage *llmstream.Usage
	}{
		{
			name:      "base dialect defers usage",
			provider:  llmstream.ProviderOpenAI,
			data:      `{"choices":[{"index":0,"delta":{},"finish_reason":"stop"}]}`,
			wantUsage: nil,
		},
		{
			name:     "groq attaches usage under x_groq",
			provider: llmstream.ProviderGroq,
			data:     `{"choices":[{"index":0,"delta":{},"finish_reason":"stop"}],"x_groq":{"usage":{"prompt_tokens":7,"completion_tokens":3,"total_tokens":10}}}`,
			wantUsage: &llmstream.Usage{
				InputTokens: 7, OutputTokens: 3, TotalTokens: 10,
			},
		},
		{
			name:     "xai attaches usage under the generic key",
			provider: llmstream.ProviderXAI,
			data:     `{"choices":[{"index":0,"delta":{},"finish_reason":"stop"}],"usage":{"prompt_tokens":4,"completion_tokens":2,"total_tokens":6}}`,
			wantUsage: &llmstream.Usage{
				InputTokens: 4, OutputTokens: 2, TotalTokens: 6,
			},
		},
		{
			name:     "deepseek attaches usage under the generic key",
			provider: llmstream.ProviderDeepSeek,
			data:     `{"choices":[{"index":0,"delta":{},"finish_reason":"stop"}],"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`,
			wantUsage: &llmstream.Usage{
				InputTokens: 1, OutputTokens: 1, TotalTokens: 2,
			},
		},
		{
			name:      "groq finish without usage is permissive",
			provider:  llmstream.ProviderGroq,
			data:      `{"choices":[{"index":0,"delta":{},"finish_reason":"stop"}]}`,
			wantUsage: &llmstream.Usage{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, err := decodeMessage(tt.provider, tt.data)
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if delta.kind != deltaFinish {
				t.Fatalf("kind = %v, want deltaFinish", delta.kind)
			}
			if tt.wantUsage == nil {
				if delta.usage != nil {
					t.Fatalf("usage = %+v, want nil", delta.usage)
				}
				return
			}
			if delta.usage == nil {
				t.Fatal("usage = nil, want non-nil")
			}
			if *delta.usage != *tt.wantUsage {
				t.Errorf("usage = %+v, want %+v", *delta.usage, *tt.wantUsage)
			}
		})
	}
}

func TestDecodeMessage_UsageOnlyPayload(t *testing.T) {
	data := `{"id":"chatcmpl-1","choices":[],"usage":{"prompt_tokens":2,"completion_tokens":3,"total_tokens":5}}`

	delta, err := decodeMessage(llmstream.ProviderOpenAI, data)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if delta.kind != deltaUsageOnly {
		t.Fatalf("kind = %v, want deltaUsageOnly", delta.kind)
	}
	if delta.usage == nil || delta.usage.TotalTokens != 5 {
		t.Errorf("usage = %+v, want total 5", delta.usage)
	}
}

func TestDecodeMessage_UsageOnlyIgnoredForVariantProviders(t *testing.T) {
	// Variant providers deliver usage at the finish signal; a trailing
	// usage payload must not be captured for them.
	data := `{"choices":[],"usage":{"prompt_tokens":9,"completion_tokens":9,"total_tokens":18}}`

	delta, err := decodeMessage(llmstream.ProviderGroq, data)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if delta.kind != deltaUsageOnly {
		t.Fatalf("kind = %v, want deltaUsageOnly", delta.kind)
	}
	if delta.usage != nil {
		t.Errorf("usage = %+v, want nil for groq", delta.usage)
	}
}

func TestDecodeMessage_RoleOnlyDeltaIsNotAnError(t *testing.T) {
	data := `{"choices":[{"index":0,"delta":{"role":"assistant"},"finish_reason":null}]}`

	delta, err := decodeMessage(llmstream.ProviderOpenAI, data)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if delta.kind != deltaUsageOnly {
		t.Errorf("kind = %v, want deltaUsageOnly", delta.kind)
	}
}

func TestDecodeMessage_MalformedJSON(t *testing.T) {
	_, err := decodeMessage(llmstream.ProviderOpenAI, `{"choices":[`)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var decodeErr *llmstream.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error type = %T, want *llmstream.DecodeError", err)
	}
	if decodeErr.Provider != llmstream.ProviderOpenAI {
		t.Errorf("provider = %s, want openai", decodeErr.Provider)
	}
}

func TestUsageFromJSON_Normalization(t *testing.T) {
	delta, err := decodeMessage(llmstream.ProviderOpenAI,
		`{"choices":[],"usage":{"prompt_tokens":10,"completion_tokens":20,"completion_tokens_details":{"reasoning_tokens":5},"prompt_tokens_details":{"cached_tokens":8}}}`)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	usage := delta.usage
	if usage == nil {
		t.Fatal("usage = nil")
	}
	if usage.TotalTokens != 30 {
		t.Errorf("TotalTokens = %d, want 30 (input+output fallback)", usage.TotalTokens)
	}
	if usage.ReasoningTokens != 5 {
		t.Errorf("ReasoningTokens = %d, want 5", usage.ReasoningTokens)
	}
	if usage.CachedTokens != 8 {
		t.Errorf("CachedTokens = %d, want 8", usage.CachedTokens)
	}
}
