package openai

import (
	"encoding/json"

	llmstream "github.com/streamline-ai/llmstream-go"
)

// toolCallFragment mirrors the wire shape of one delta.tool_calls entry.
// Any subset of the fields may be absent on a given fragment; absence means
// "no additional text for that field", not an error.
type toolCallFragment struct {
	Index    int              `json:"index"`
	ID       string           `json:"id"`
	Function toolCallFunction `json:"function"`
}

type toolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// partialToolCall is the single in-flight tool call, owned by the streamer
// and grown in place across drive steps. All fragments for one logical call
// share the same index and arrive before fragments for the next call.
type partialToolCall struct {
	index     int
	id        string
	name      string
	arguments string
}

func newPartialToolCall(frag toolCallFragment) *partialToolCall {
	return &partialToolCall{
		index:     frag.Index,
		id:        frag.ID,
		name:      frag.Function.Name,
		arguments: frag.Function.Arguments,
	}
}

// merge folds a fragment into the held partial call.
//
// Same index: the fragment's fields append onto the held call (append order
// follows arrival order, which is what makes the reassembled argument JSON
// valid). Different index: the held call is complete and returned as
// flushed, and the fragment starts a new partial call.
func merge(current *partialToolCall, frag toolCallFragment) (next, flushed *partialToolCall) {
	if current == nil {
		return newPartialToolCall(frag), nil
	}
	if frag.Index == current.index {
		current.id += frag.ID
		current.name += frag.Function.Name
		current.arguments += frag.Function.Arguments
		return current, nil
	}
	return newPartialToolCall(frag), current
}

// finalize parses the assembled argument text into a finalized ToolCall.
// Unparsable arguments fall back to an empty map; one malformed tool call
// does not abort an otherwise-good stream.
func (p *partialToolCall) finalize() llmstream.ToolCall {
	args := map[string]interface{}{}
	if p.arguments != "" {
		if err := json.Unmarshal([]byte(p.arguments), &args); err != nil {
			args = map[string]interface{}{}
		}
	}
	return llmstream.ToolCall{
		CallID:      p.id,
		FnName:      p.name,
		FnArguments: args,
	}
}

// interToolChunk converts a raw fragment to its intermediate representation.
func interToolChunk(frag toolCallFragment) llmstream.InterToolChunk {
	return llmstream.InterToolChunk{
		ID:        frag.ID,
		Name:      frag.Function.Name,
		Arguments: frag.Function.Arguments,
	}
}
