package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yangwenmai/minutes/internal/model"
)

// ChatService answers questions and edit requests about one meeting. It
// builds the prompt from the transcript, the current summary, the rendered
// conversation log and the user message, then invokes the model client. It
// never touches session state; the caller decides what to do with the reply.
type ChatService struct {
	client           ModelClient
	questionTemplate string
	editTemplate     string
}

// ChatOption configures the chat service.
type ChatOption func(*ChatService)

// WithQuestionTemplate overrides the default question prompt template.
func WithQuestionTemplate(t string) ChatOption {
	return func(s *ChatService) {
		if t != "" {
			s.questionTemplate = t
		}
	}
}

// WithEditTemplate overrides the default edit-request prompt template.
func WithEditTemplate(t string) ChatOption {
	return func(s *ChatService) {
		if t != "" {
			s.editTemplate = t
		}
	}
}

// NewChatService creates a chat service backed by the given model client.
func NewChatService(client ModelClient, opts ...ChatOption) *ChatService {
	s := &ChatService{
		client:           client,
		questionTemplate: defaultQuestionPrompt,
		editTemplate:     defaultEditPrompt,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chat generates a reply to a user message. kind selects the prompt
// template: model.KindEditRequest asks the generator for a full revised
// summary, anything else is treated as a question. There is no empty-input
// short-circuit here: a user message is assumed always meaningful.
func (s *ChatService) Chat(ctx context.Context, transcript, summary, message string, history []model.ChatMessage, kind string) (string, error) {
	template := s.questionTemplate
	if kind == model.KindEditRequest {
		template = s.editTemplate
	}
	prompt := buildChatPrompt(template, transcript, summary, model.FormatHistory(history), message)

	slog.Info("chat started", "kind", kind, "history_length", len(history))
	reply, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return reply, nil
}
