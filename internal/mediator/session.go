package mediator

import "context"

// ToolCall is a structured request emitted by the model asking the host to
// execute a named capability with the given arguments.
type ToolCall struct {
	Name string
	Args map[string]any
}

// Part is one content part of a model response: narrative text or a tool call.
type Part struct {
	Text string
	Call *ToolCall
}

// Response is a model-API-neutral view of one assistant response.
type Response struct {
	Parts []Part
}

// ToolCall returns the tool call in the response's first part, or nil. The
// loop keys off the first part only; trailing parts of a tool-call response
// are preamble text the model may emit alongside the call.
func (r *Response) ToolCall() *ToolCall {
	if r == nil || len(r.Parts) == 0 {
		return nil
	}
	return r.Parts[0].Call
}

// Text concatenates the text of all text parts. A response still carrying an
// unresolved tool call can legitimately have no text at all; callers must
// handle the empty string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	var out string
	for _, p := range r.Parts {
		out += p.Text
	}
	return out
}

// Session is one conversational exchange with the generative model. The
// concrete implementation owns the provider-specific wire format; the mediator
// only sees neutral responses.
type Session interface {
	SendText(ctx context.Context, text string) (*Response, error)
	SendToolResult(ctx context.Context, name string, result map[string]any) (*Response, error)
}
