package model

import (
	"errors"
	"strings"
	"testing"
)

func TestNewChatMessage(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		kind    string
		wantErr bool
	}{
		{"user question", RoleUser, KindQuestion, false},
		{"user edit request", RoleUser, KindEditRequest, false},
		{"assistant response", RoleAssistant, KindResponse, false},
		{"user response", RoleUser, KindResponse, true},
		{"assistant question", RoleAssistant, KindQuestion, true},
		{"assistant edit request", RoleAssistant, KindEditRequest, true},
		{"unknown role", "system", KindQuestion, true},
		{"unknown kind", RoleUser, "command", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewChatMessage(tt.role, "hello", tt.kind)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMessage) {
					t.Fatalf("err = %v, want ErrInvalidMessage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewChatMessage: %v", err)
			}
			if msg.Role != tt.role || msg.Kind != tt.kind || msg.Content != "hello" {
				t.Errorf("message = %+v, want role=%q kind=%q", msg, tt.role, tt.kind)
			}
			if msg.Timestamp.IsZero() {
				t.Error("Timestamp should be set")
			}
		})
	}
}

func TestFormatHistory_Empty(t *testing.T) {
	got := FormatHistory(nil)
	if got != "(no prior conversation)" {
		t.Errorf("FormatHistory(nil) = %q, want placeholder", got)
	}
	if got != FormatHistory([]ChatMessage{}) {
		t.Error("empty slice should render the same placeholder")
	}
}

func TestFormatHistory_Order(t *testing.T) {
	q, err := NewChatMessage(RoleUser, "Q", KindQuestion)
	if err != nil {
		t.Fatalf("NewChatMessage: %v", err)
	}
	a, err := NewChatMessage(RoleAssistant, "A", KindResponse)
	if err != nil {
		t.Fatalf("NewChatMessage: %v", err)
	}

	got := FormatHistory([]ChatMessage{q, a})
	qi := strings.Index(got, "user: Q")
	ai := strings.Index(got, "assistant: A")
	if qi < 0 || ai < 0 {
		t.Fatalf("rendering missing messages: %q", got)
	}
	if qi > ai {
		t.Errorf("messages out of order: %q", got)
	}
}
