package llmstream

// Content part type constants
const (
	PartTypeText  = "text"
	PartTypeImage = "image"
)

// ContentPart is one piece of multimodal content.
type ContentPart struct {
	// PartType indicates the kind of part ("text", "image")
	PartType string `json:"part_type"`

	// Text contains the text for text parts
	Text string `json:"text,omitempty"`

	// URL points at the image for URL-based image parts
	URL string `json:"url,omitempty"`

	// B64Data contains base64-encoded image bytes for inline image parts
	B64Data string `json:"b64_data,omitempty"`

	// MimeType is the media type for image parts (e.g., "image/png")
	MimeType string `json:"mime_type,omitempty"`
}

// NewTextPart creates a text content part.
func NewTextPart(text string) ContentPart {
	return ContentPart{PartType: PartTypeText, Text: text}
}

// NewImageURLPart creates an image part referencing a URL.
func NewImageURLPart(url string) ContentPart {
	return ContentPart{PartType: PartTypeImage, URL: url}
}

// NewImageB64Part creates an inline base64 image part.
func NewImageB64Part(mimeType, b64 string) ContentPart {
	return ContentPart{PartType: PartTypeImage, MimeType: mimeType, B64Data: b64}
}

// MessageContent is the public representation of assembled message content.
// Captured stream content is converted from its raw accumulated string into
// this richer form at the public boundary.
type MessageContent struct {
	Parts []ContentPart `json:"parts"`
}

// NewMessageContent creates a MessageContent holding a single text part.
func NewMessageContent(text string) MessageContent {
	return MessageContent{Parts: []ContentPart{NewTextPart(text)}}
}

// Text concatenates the text of all text parts.
func (c MessageContent) Text() string {
	var out string
	for _, p := range c.Parts {
		if p.PartType == PartTypeText {
			out += p.Text
		}
	}
	return out
}

// IsEmpty returns true if the content holds no parts.
func (c MessageContent) IsEmpty() bool {
	return len(c.Parts) == 0
}
