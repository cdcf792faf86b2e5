package registry

import "fmt"

// ContentBlock is one typed block inside a Result. Only text blocks are
// produced by the built-in capabilities.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is the uniform envelope every capability invocation produces.
// Callers distinguish outcomes solely via IsError; handlers never let
// business failures escape as Go errors.
type Result struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// NewTextResult returns a success envelope with a single text block.
func NewTextResult(format string, args ...interface{}) *Result {
	return &Result{
		Content: []ContentBlock{{Type: "text", Text: fmt.Sprintf(format, args...)}},
	}
}

// NewErrorResult returns an error envelope with a single text block.
func NewErrorResult(format string, args ...interface{}) *Result {
	return &Result{
		Content: []ContentBlock{{Type: "text", Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

// Text returns the concatenated text of all blocks. Convenience for tests
// and logging.
func (r *Result) Text() string {
	var out string
	for _, block := range r.Content {
		out += block.Text
	}
	return out
}
