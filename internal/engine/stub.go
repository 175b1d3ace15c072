package engine

import (
	"context"
	"strings"
)

// StubModelClient returns canned replies (for development/testing).
type StubModelClient struct{}

// Complete returns a canned reply keyed on the prompt contents.
func (m *StubModelClient) Complete(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "Summarize the following meeting transcript"):
		return "# Meeting Summary\n\n- [Stub] Key decision one.\n- [Stub] Key decision two.\n\n## Action Items\n\n- [Stub] Follow up next week.", nil
	case strings.Contains(prompt, "User edit request:"):
		return "# Meeting Summary (revised)\n\n- [Stub] Revised per your request.", nil
	case strings.Contains(prompt, "User question:"):
		return "[Stub] Based on the meeting, the main conclusion was to ship the prototype.", nil
	}
	return "[Stub] OK.", nil
}
