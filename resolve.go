package llmstream

import "strings"

// modelPrefixes maps well-known model name prefixes to their provider.
// Checked in order; first match wins.
var modelPrefixes = []struct {
	prefix   string
	provider ProviderID
}{
	{"gpt-", ProviderOpenAI},
	{"o1", ProviderOpenAI},
	{"o3", ProviderOpenAI},
	{"o4", ProviderOpenAI},
	{"chatgpt-", ProviderOpenAI},
	{"claude-", ProviderAnthropic},
	{"grok-", ProviderXAI},
	{"deepseek-", ProviderDeepSeek},
	{"lorem-", ProviderLorem},
}

// ResolveProvider maps a model name to its provider.
//
// Namespaced names ("groq/llama-3.3-70b", "openai/gpt-4o") resolve by
// namespace; bare names resolve by well-known prefix. Unknown names return
// a ModelError wrapping ErrInvalidModel.
func ResolveProvider(model string) (ProviderID, error) {
	if ns, _, ok := strings.Cut(model, "/"); ok {
		provider := ProviderID(ns)
		if provider.IsValid() {
			return provider, nil
		}
		return "", &ModelError{
			Model:  model,
			Reason: "unknown provider namespace '" + ns + "'",
			Err:    ErrInvalidModel,
		}
	}

	for _, entry := range modelPrefixes {
		if strings.HasPrefix(model, entry.prefix) {
			return entry.provider, nil
		}
	}

	return "", &ModelError{
		Model:  model,
		Reason: "model name does not match any known provider",
		Err:    ErrInvalidModel,
	}
}
