// Package transcribe provides the client for the Whisper transcription
// service (an OpenAI-compatible HTTP API).
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// Client talks to a Whisper transcription server.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// Option configures the transcription client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithModel sets the transcription model name.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// NewClient creates a new transcription client.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8765"
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   "whisper-1",
		httpClient: &http.Client{
			Timeout: 300 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Error reports a failed transcription request.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("transcription service unreachable: %s", e.Detail)
	}
	return fmt.Sprintf("transcription failed with status %d: %s", e.StatusCode, e.Detail)
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe sends audio bytes to the transcription endpoint and returns
// the transcript text.
func (c *Client) Transcribe(ctx context.Context, data []byte, filename, language string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := mw.WriteField("model", c.model); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if language != "" {
		if err := mw.WriteField("language", language); err != nil {
			return "", fmt.Errorf("write language field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	url := c.baseURL + "/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	slog.Info("transcription started", "filename", filename, "language", language, "size_bytes", len(data))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Detail: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &Error{StatusCode: resp.StatusCode, Detail: extractDetail(respBody)}
	}

	var tr transcriptionResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	text := strings.TrimSpace(tr.Text)
	slog.Info("transcription finished", "filename", filename, "transcript_length", len(text))
	return text, nil
}

// Health reports whether the transcription service responds on /health.
func (c *Client) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("transcription health check failed", "url", c.baseURL, "error", err)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// extractDetail pulls a human-readable message out of an error response
// body, falling back to the raw body.
func extractDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error.Message != "" {
			return payload.Error.Message
		}
	}
	return strings.TrimSpace(string(body))
}
