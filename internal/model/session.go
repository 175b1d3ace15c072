package model

import (
	"sync"
	"time"
)

// Session aggregates one transcript, one summary and one conversation log
// under a single id. All mutating methods are mutually exclusive for the
// same session and refresh UpdatedAt; different sessions can be mutated
// fully in parallel. Reads go through Snapshot so callers never observe a
// half-applied update.
type Session struct {
	mu sync.Mutex

	id             string
	sourceFilename string
	transcript     string
	summary        *Summary
	history        []ChatMessage
	createdAt      time.Time
	updatedAt      time.Time
}

// SessionView is an immutable point-in-time copy of a session.
type SessionView struct {
	ID             string        `json:"id"`
	SourceFilename string        `json:"source_filename"`
	Transcript     string        `json:"transcript"`
	Summary        Summary       `json:"summary"`
	History        []ChatMessage `json:"chat_history"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// SessionUpdate is a partial update applied atomically by Session.Apply.
// Nil fields are left untouched; a non-nil History replaces the log.
type SessionUpdate struct {
	SourceFilename *string
	Transcript     *string
	Summary        *Summary
	History        []ChatMessage
}

// NewSession creates a session with an empty transcript, an empty draft
// summary and an empty conversation log.
func NewSession(id, sourceFilename string) *Session {
	now := time.Now()
	return &Session{
		id:             id,
		sourceFilename: sourceFilename,
		summary:        NewDraftSummary(""),
		history:        []ChatMessage{},
		createdAt:      now,
		updatedAt:      now,
	}
}

// ID returns the immutable session identifier.
func (s *Session) ID() string { return s.id }

// AddMessage appends a message to the conversation log.
func (s *Session) AddMessage(msg ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, msg)
	s.updatedAt = time.Now()
}

// ClearHistory empties the conversation log. The summary is not affected.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = s.history[:0]
	s.updatedAt = time.Now()
}

// SetTranscript replaces the transcript wholesale.
func (s *Session) SetTranscript(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = text
	s.updatedAt = time.Now()
}

// SetSummary replaces the summary wholesale.
func (s *Session) SetSummary(summary *Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
	s.updatedAt = time.Now()
}

// UpdateSummaryContent replaces the summary content, keeping version
// history. UpdatedAt is refreshed only when the update is accepted.
func (s *Session) UpdateSummaryContent(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.summary.UpdateContent(text); err != nil {
		return err
	}
	s.updatedAt = time.Now()
	return nil
}

// FinalizeSummary marks the summary as final.
func (s *Session) FinalizeSummary() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.summary.Finalize(); err != nil {
		return err
	}
	s.updatedAt = time.Now()
	return nil
}

// Apply applies a partial update as one atomic step: no other mutation on
// this session can interleave between the individual field writes.
func (s *Session) Apply(u SessionUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.SourceFilename != nil {
		s.sourceFilename = *u.SourceFilename
	}
	if u.Transcript != nil {
		s.transcript = *u.Transcript
	}
	if u.Summary != nil {
		s.summary = u.Summary
	}
	if u.History != nil {
		s.history = append([]ChatMessage{}, u.History...)
	}
	s.updatedAt = time.Now()
}

// Snapshot returns a deep copy of the current session state.
func (s *Session) Snapshot() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionView{
		ID:             s.id,
		SourceFilename: s.sourceFilename,
		Transcript:     s.transcript,
		Summary:        *s.summary.Clone(),
		History:        append([]ChatMessage{}, s.history...),
		CreatedAt:      s.createdAt,
		UpdatedAt:      s.updatedAt,
	}
}
