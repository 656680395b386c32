package llmstream

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
// These can be checked with errors.Is().
var (
	// ErrInvalidModel indicates the requested model is not supported by any provider.
	ErrInvalidModel = errors.New("llmstream: invalid or unsupported model")

	// ErrInvalidAPIKey indicates the API key is missing, malformed, or unauthorized.
	ErrInvalidAPIKey = errors.New("llmstream: invalid API key")

	// ErrUnsupportedFeature indicates the requested operation is not available
	// for the provider. Examples: streaming on a provider without stream
	// support, image generation on a text-only provider.
	ErrUnsupportedFeature = errors.New("llmstream: unsupported feature")

	// ErrProviderUnavailable indicates the provider service is down or unreachable.
	ErrProviderUnavailable = errors.New("llmstream: provider unavailable")
)

// DecodeError represents a failure to parse a streamed message payload.
// Once raised, the stream produces no further events.
type DecodeError struct {
	Provider ProviderID // The provider whose payload failed to parse
	Data     string     // The raw payload text
	Err      error      // Wrapped parse error, if any
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider '%s': failed to decode stream payload %q: %v", e.Provider, e.Data, e.Err)
	}
	return fmt.Sprintf("provider '%s': failed to decode stream payload %q", e.Provider, e.Data)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ModelError represents an error related to model validation or provider
// capability, raised before a stream is constructed.
type ModelError struct {
	Model    string // The model that was requested
	Provider string // The provider name
	Reason   string // Human-readable explanation
	Err      error  // Wrapped error (usually ErrInvalidModel or ErrUnsupportedFeature)
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model '%s' for provider '%s': %s (%v)", e.Model, e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("model '%s' for provider '%s': %s", e.Model, e.Provider, e.Reason)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// ProviderError represents an error from the underlying provider API or
// transport. Stream transport errors are propagated verbatim inside Err;
// retrying is a caller-level concern.
type ProviderError struct {
	Provider   string // The provider name
	StatusCode int    // HTTP status code (if applicable)
	Message    string // Error message from provider
	Err        error  // Wrapped error (transport error or sentinel)
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider '%s' error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider '%s' error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsDecodeError checks if an error came from a malformed stream payload.
func IsDecodeError(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}

// IsConfigError checks if an error was raised before any stream was
// constructed (invalid model, unsupported operation). These require request
// changes rather than retries.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrInvalidModel) || errors.Is(err, ErrUnsupportedFeature) {
		return true
	}

	var modelErr *ModelError
	return errors.As(err, &modelErr)
}
