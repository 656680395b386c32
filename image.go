package llmstream

import "encoding/json"

// Image generation request/response data carriers. These are plain data
// types with no streaming state machine; provider adapters translate them
// at the HTTP boundary.

// ImageRequest describes an image generation request.
type ImageRequest struct {
	// Prompt is a text description of the desired image(s).
	// Maximum length is provider-defined (4000 characters for OpenAI).
	Prompt string `json:"prompt"`

	// N is the number of images to generate (1-10)
	N *int `json:"n,omitempty"`

	// Size of the generated images, e.g. "1024x1024", "1792x1024"
	Size *string `json:"size,omitempty"`

	// Quality of the generated image: "standard" or "hd"
	Quality *string `json:"quality,omitempty"`

	// Style of the generated images: "vivid" or "natural"
	Style *string `json:"style,omitempty"`

	// ResponseFormat for returned images: "url" or "b64_json"
	ResponseFormat *string `json:"response_format,omitempty"`
}

// NewImageRequest creates an ImageRequest with the given prompt.
func NewImageRequest(prompt string) *ImageRequest {
	return &ImageRequest{Prompt: prompt}
}

// WithN sets the number of images to generate.
func (r *ImageRequest) WithN(n int) *ImageRequest {
	r.N = &n
	return r
}

// WithSize sets the size of the generated images.
func (r *ImageRequest) WithSize(size string) *ImageRequest {
	r.Size = &size
	return r
}

// WithQuality sets the quality of the generated image.
func (r *ImageRequest) WithQuality(quality string) *ImageRequest {
	r.Quality = &quality
	return r
}

// WithStyle sets the style of the generated images.
func (r *ImageRequest) WithStyle(style string) *ImageRequest {
	r.Style = &style
	return r
}

// WithResponseFormat sets the format in which images are returned.
func (r *ImageRequest) WithResponseFormat(format string) *ImageRequest {
	r.ResponseFormat = &format
	return r
}

// ImageResponse is the result of an image generation request.
type ImageResponse struct {
	// Images holds the generated images as image content parts
	Images []ContentPart `json:"images"`

	// Model is the model that served the request
	Model string `json:"model"`

	// Provider identifies which provider generated the images
	Provider ProviderID `json:"provider"`

	// Usage is the eventual accounting for the request
	Usage *Usage `json:"usage,omitempty"`

	// RawBody preserves the raw response body for provider-specific features
	RawBody json.RawMessage `json:"raw_body,omitempty"`
}

// FirstImage returns the first image, or false if none were generated.
func (r *ImageResponse) FirstImage() (ContentPart, bool) {
	if len(r.Images) == 0 {
		return ContentPart{}, false
	}
	return r.Images[0], true
}
