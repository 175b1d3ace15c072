package model

import (
	"fmt"
	"strings"
	"time"
)

// Message role constants
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message kind constants
const (
	KindQuestion    = "question"
	KindEditRequest = "edit_request"
	KindResponse    = "response"
)

// emptyHistoryPlaceholder is rendered instead of an empty conversation log.
// Prompts are built by direct substring inclusion of this rendering, so it
// must stay deterministic.
const emptyHistoryPlaceholder = "(no prior conversation)"

// ChatMessage is one user/assistant exchange in a session's conversation
// log. Role/kind consistency is enforced at construction: questions and edit
// requests come from the user, responses from the assistant.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChatMessage creates a validated ChatMessage stamped with the current time.
func NewChatMessage(role, content, kind string) (ChatMessage, error) {
	switch role {
	case RoleUser:
		if kind != KindQuestion && kind != KindEditRequest {
			return ChatMessage{}, fmt.Errorf("%w: kind %q not allowed for role %q", ErrInvalidMessage, kind, role)
		}
	case RoleAssistant:
		if kind != KindResponse {
			return ChatMessage{}, fmt.Errorf("%w: kind %q not allowed for role %q", ErrInvalidMessage, kind, role)
		}
	default:
		return ChatMessage{}, fmt.Errorf("%w: unknown role %q", ErrInvalidMessage, role)
	}
	return ChatMessage{
		Role:      role,
		Content:   content,
		Kind:      kind,
		Timestamp: time.Now(),
	}, nil
}

// FormatHistory renders a conversation log as one "role: content" line per
// message, in append order. An empty log renders as a fixed placeholder.
// This is the canonical serialization consumed by prompt builders.
func FormatHistory(history []ChatMessage) string {
	if len(history) == 0 {
		return emptyHistoryPlaceholder
	}
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		lines = append(lines, msg.Role+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}
