package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// SummaryService generates the first draft summary for a transcript.
type SummaryService struct {
	client   ModelClient
	template string
}

// SummaryOption configures the summary service.
type SummaryOption func(*SummaryService)

// WithSummaryTemplate overrides the default summary prompt template.
func WithSummaryTemplate(t string) SummaryOption {
	return func(s *SummaryService) {
		if t != "" {
			s.template = t
		}
	}
}

// NewSummaryService creates a summary service backed by the given model client.
func NewSummaryService(client ModelClient, opts ...SummaryOption) *SummaryService {
	s := &SummaryService{
		client:   client,
		template: defaultSummaryPrompt,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate summarizes a transcript. An empty or whitespace-only transcript
// short-circuits to an empty result without invoking the generator.
func (s *SummaryService) Generate(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		slog.Info("empty transcript, skipping generator")
		return "", nil
	}

	prompt := buildSummaryPrompt(s.template, transcript)
	slog.Info("summary generation started", "transcript_length", len(transcript))

	result, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	return result, nil
}
