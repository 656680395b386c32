package llmstream

// Usage is the normalized token accounting record.
// Provider wire shapes differ (prompt_tokens vs input_tokens, nested detail
// objects); streamers normalize to this one representation.
type Usage struct {
	// InputTokens is the number of tokens in the prompt/input
	InputTokens int `json:"input_tokens"`

	// OutputTokens is the number of tokens generated
	OutputTokens int `json:"output_tokens"`

	// TotalTokens is the provider-reported total (input + output when absent)
	TotalTokens int `json:"total_tokens"`

	// ReasoningTokens is the number of output tokens spent on reasoning,
	// when the provider reports it separately (0 otherwise)
	ReasoningTokens int `json:"reasoning_tokens,omitempty"`

	// CachedTokens is the number of prompt tokens served from cache,
	// when the provider reports it (0 otherwise)
	CachedTokens int `json:"cached_tokens,omitempty"`
}

// IsZero returns true if no accounting data is present.
func (u Usage) IsZero() bool {
	return u == Usage{}
}
