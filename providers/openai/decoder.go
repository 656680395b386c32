// Package openai normalizes the OpenAI-compatible chat-completions
// streaming dialect into the llmstream intermediate event algebra.
//
// The dialect is shared by OpenAI, Groq, xAI, and DeepSeek; the providers
// differ only in where usage accounting appears in the stream:
//
//   - OpenAI (base dialect): usage arrives in a dedicated payload with no
//     choices, after the finish signal.
//   - Groq: usage is attached to the finish-signal payload under x_groq.usage.
//   - xAI, DeepSeek: usage is attached to the finish-signal payload under
//     the generic usage key; these providers may omit finish_reason entirely
//     while the choice is still active.
package openai

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	llmstream "github.com/streamline-ai/llmstream-go"
)

// doneSentinel is the literal payload that signals the logical end of the
// stream. It is not JSON and must be checked before structured parsing.
const doneSentinel = "[DONE]"

// deltaKind classifies one decoded message payload.
type deltaKind int

const (
	// deltaFinish: the first choice carries a finish_reason; no content is
	// expected in this payload, but usage may be attached per provider.
	deltaFinish deltaKind = iota

	// deltaContent: an assistant-visible text fragment
	deltaContent

	// deltaReasoning: a reasoning/thinking text fragment
	deltaReasoning

	// deltaToolCall: one tool-call fragment
	deltaToolCall

	// deltaUsageOnly: no per-choice content; may carry usage accounting
	deltaUsageOnly
)

// messageDelta is the decoded form of one stream payload.
type messageDelta struct {
	kind      deltaKind
	content   string
	reasoning string
	tool      toolCallFragment

	// usage is the normalized accounting attached to this payload, already
	// resolved per provider dialect; nil when the payload carries none.
	usage *llmstream.Usage
}

// decodeMessage classifies one message payload for the given provider.
//
// Malformed JSON is a hard error for the whole stream. Absent or
// unrecognized fields are never an error: a payload with no recognizable
// per-choice content and no finish signal decodes as usage-only.
func decodeMessage(provider llmstream.ProviderID, data string) (messageDelta, error) {
	var probe interface{}
	if err := json.Unmarshal([]byte(data), &probe); err != nil {
		return messageDelta{}, &llmstream.DecodeError{Provider: provider, Data: data, Err: err}
	}

	root := gjson.Parse(data)

	first := root.Get("choices.0")
	if first.Exists() {
		// finish_reason ends this choice. xAI and DeepSeek omit the field
		// entirely while active, so absence is never an error.
		if fr := first.Get("finish_reason"); fr.Exists() && fr.Type == gjson.String {
			return messageDelta{kind: deltaFinish, usage: finishUsage(provider, root)}, nil
		}

		if c := first.Get("delta.content"); c.Exists() && c.Type == gjson.String {
			return messageDelta{kind: deltaContent, content: c.String()}, nil
		}

		if tc := first.Get("delta.tool_calls.0"); tc.Exists() {
			var frag toolCallFragment
			if err := json.Unmarshal([]byte(tc.Raw), &frag); err != nil {
				return messageDelta{}, &llmstream.DecodeError{Provider: provider, Data: data, Err: err}
			}
			return messageDelta{kind: deltaToolCall, tool: frag}, nil
		}

		if rc := first.Get("delta.reasoning_content"); rc.Exists() && rc.Type == gjson.String {
			return messageDelta{kind: deltaReasoning, reasoning: rc.String()}, nil
		}

		// A choice with nothing we consume (role-only delta, logprobs, ...)
		return messageDelta{kind: deltaUsageOnly, usage: standaloneUsage(provider, root)}, nil
	}

	// No choices at all: the base-dialect usage payload.
	return messageDelta{kind: deltaUsageOnly, usage: standaloneUsage(provider, root)}, nil
}

// finishUsage extracts usage attached to a finish-signal payload, per the
// provider's dialect. The base dialect defers usage to a later payload and
// returns nil here. For the variants the extraction is permissive: a finish
// signal without the expected usage object yields a zero Usage rather than
// an error.
func finishUsage(provider llmstream.ProviderID, root gjson.Result) *llmstream.Usage {
	switch provider {
	case llmstream.ProviderGroq:
		if u := usageFromJSON(root.Get("x_groq.usage")); u != nil {
			return u
		}
		return &llmstream.Usage{}
	case llmstream.ProviderXAI, llmstream.ProviderDeepSeek:
		if u := usageFromJSON(root.Get("usage")); u != nil {
			return u
		}
		return &llmstream.Usage{}
	default:
		return nil
	}
}

// standaloneUsage extracts usage from a payload with no per-choice content.
// Only the base dialect places usage here; variant providers already
// delivered it with the finish signal.
func standaloneUsage(provider llmstream.ProviderID, root gjson.Result) *llmstream.Usage {
	switch provider {
	case llmstream.ProviderGroq, llmstream.ProviderXAI, llmstream.ProviderDeepSeek:
		return nil
	default:
		return usageFromJSON(root.Get("usage"))
	}
}

// usageFromJSON normalizes an OpenAI-style usage object.
func usageFromJSON(v gjson.Result) *llmstream.Usage {
	if !v.Exists() || !v.IsObject() {
		return nil
	}
	usage := llmstream.Usage{
		InputTokens:     int(v.Get("prompt_tokens").Int()),
		OutputTokens:    int(v.Get("completion_tokens").Int()),
		TotalTokens:     int(v.Get("total_tokens").Int()),
		ReasoningTokens: int(v.Get("completion_tokens_details.reasoning_tokens").Int()),
		CachedTokens:    int(v.Get("prompt_tokens_details.cached_tokens").Int()),
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &usage
}
