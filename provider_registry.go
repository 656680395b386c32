package llmstream

// ProviderID represents a unique provider identifier.
// Using a typed constant prevents typos and provides compile-time safety.
//
// The identifier selects the streaming dialect: all OpenAI-compatible
// providers share one wire decoder, but differ in where usage accounting
// appears in the stream (see providers/openai).
type ProviderID string

// Known provider identifiers
const (
	// ProviderOpenAI is OpenAI's chat completions API (base dialect)
	ProviderOpenAI ProviderID = "openai"

	// ProviderGroq is Groq's OpenAI-compatible API
	// (usage arrives under x_groq.usage with the finish signal)
	ProviderGroq ProviderID = "groq"

	// ProviderXAI is xAI's Grok API
	// (usage arrives with the finish signal; finish_reason may be absent while active)
	ProviderXAI ProviderID = "xai"

	// ProviderDeepSeek is DeepSeek's OpenAI-compatible API
	// (same usage placement as xAI)
	ProviderDeepSeek ProviderID = "deepseek"

	// ProviderAnthropic is Anthropic's Claude API (native event dialect)
	ProviderAnthropic ProviderID = "anthropic"

	// ProviderLorem is the mock Lorem provider for testing
	ProviderLorem ProviderID = "lorem"
)

// String returns the string representation of the provider ID
func (p ProviderID) String() string {
	return string(p)
}

// IsValid returns true if the provider ID is a known provider
func (p ProviderID) IsValid() bool {
	switch p {
	case ProviderOpenAI, ProviderGroq, ProviderXAI, ProviderDeepSeek, ProviderAnthropic, ProviderLorem:
		return true
	default:
		return false
	}
}

// IsOpenAICompatible returns true if the provider speaks the OpenAI
// chat-completions streaming dialect (possibly with per-provider quirks).
func (p ProviderID) IsOpenAICompatible() bool {
	switch p {
	case ProviderOpenAI, ProviderGroq, ProviderXAI, ProviderDeepSeek:
		return true
	default:
		return false
	}
}
