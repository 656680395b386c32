package llmstream

// StreamOptions controls which streamed data is captured into the terminal
// StreamEnd event. The flags are supplied before the stream starts and are
// immutable for the stream's lifetime.
//
// Capture only controls retention for the final summary: every content,
// reasoning, and tool-call fragment is emitted to the caller as it arrives
// regardless of these flags.
type StreamOptions struct {
	// CaptureContent accumulates the full assistant text into StreamEnd.CapturedContent
	CaptureContent bool

	// CaptureReasoning accumulates reasoning/thinking text into StreamEnd.CapturedReasoning
	CaptureReasoning bool

	// CaptureUsage retains token usage accounting into StreamEnd.CapturedUsage
	CaptureUsage bool

	// CaptureToolCalls retains finalized tool calls into StreamEnd.CapturedToolCalls
	CaptureToolCalls bool
}

// WithCaptureContent returns a copy with content capture enabled.
func (o StreamOptions) WithCaptureContent() StreamOptions {
	o.CaptureContent = true
	return o
}

// WithCaptureReasoning returns a copy with reasoning capture enabled.
func (o StreamOptions) WithCaptureReasoning() StreamOptions {
	o.CaptureReasoning = true
	return o
}

// WithCaptureUsage returns a copy with usage capture enabled.
func (o StreamOptions) WithCaptureUsage() StreamOptions {
	o.CaptureUsage = true
	return o
}

// WithCaptureToolCalls returns a copy with tool-call capture enabled.
func (o StreamOptions) WithCaptureToolCalls() StreamOptions {
	o.CaptureToolCalls = true
	return o
}

// CaptureAll returns options with every capture flag enabled.
func CaptureAll() StreamOptions {
	return StreamOptions{
		CaptureContent:   true,
		CaptureReasoning: true,
		CaptureUsage:     true,
		CaptureToolCalls: true,
	}
}
