package model

// Summary status constants
const (
	StatusDraft = "draft"
	StatusFinal = "final"
)

// Summary is the versioned meeting summary under edit. Content is opaque
// Markdown text. Version starts at 1 and increments by exactly one per
// accepted content replacement; History holds the superseded contents,
// oldest first, so len(History) == Version-1 at all times.
type Summary struct {
	Content string   `json:"content"`
	Status  string   `json:"status"`
	Version int      `json:"version"`
	History []string `json:"history"`
}

// NewDraftSummary creates a draft summary at version 1 with empty history.
func NewDraftSummary(content string) *Summary {
	return &Summary{
		Content: content,
		Status:  StatusDraft,
		Version: 1,
		History: []string{},
	}
}

// UpdateContent replaces the summary content, pushing the old content onto
// the history and bumping the version. Only drafts can be updated.
func (s *Summary) UpdateContent(newContent string) error {
	if s.Status == StatusFinal {
		return ErrSummaryFinalized
	}
	s.History = append(s.History, s.Content)
	s.Content = newContent
	s.Version++
	return nil
}

// Finalize marks the summary as final. The transition is one-way: a second
// call fails and nothing else (content, version, history) is touched.
func (s *Summary) Finalize() error {
	if s.Status == StatusFinal {
		return ErrAlreadyFinal
	}
	s.Status = StatusFinal
	return nil
}

// Clone returns a deep copy of the summary.
func (s *Summary) Clone() *Summary {
	c := *s
	c.History = append([]string(nil), s.History...)
	return &c
}
