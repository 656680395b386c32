package llmstream

// ToolCall is a finalized tool invocation reassembled from streamed
// fragments. FnArguments holds the parsed form of the argument JSON text
// that arrived piecemeal; if the assembled text is not valid JSON the map
// is empty rather than the call being dropped.
type ToolCall struct {
	// CallID is the provider-assigned call identifier
	CallID string `json:"call_id"`

	// FnName is the function name
	FnName string `json:"fn_name"`

	// FnArguments is the parsed function arguments
	FnArguments map[string]interface{} `json:"fn_arguments"`
}
