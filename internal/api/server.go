// Package api exposes the HTTP surface of the minutes server. It
// orchestrates the collaborators — registry, transcription client, prompt
// services, export archive — and maps their typed errors to stable
// machine-readable codes.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yangwenmai/minutes/internal/config"
	"github.com/yangwenmai/minutes/internal/engine"
	"github.com/yangwenmai/minutes/internal/session"
	"github.com/yangwenmai/minutes/internal/store"
)

// uploadOverhead is headroom on top of the configured upload limit for
// multipart framing and form fields.
const uploadOverhead int64 = 1 << 20

// Transcriber converts an uploaded recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, data []byte, filename, language string) (string, error)
	Health(ctx context.Context) bool
}

// Server holds the HTTP handlers and dependencies.
type Server struct {
	registry    *session.Registry
	transcriber Transcriber
	summarizer  *engine.SummaryService
	chat        *engine.ChatService
	archive     store.ExportArchiver
	cfg         config.Config
	mux         *http.ServeMux
}

// New creates a new API server.
func New(registry *session.Registry, transcriber Transcriber, summarizer *engine.SummaryService, chat *engine.ChatService, archive store.ExportArchiver, cfg config.Config) *Server {
	srv := &Server{
		registry:    registry,
		transcriber: transcriber,
		summarizer:  summarizer,
		chat:        chat,
		archive:     archive,
		cfg:         cfg,
		mux:         http.NewServeMux(),
	}
	srv.routes()
	return srv
}

// Handler returns the root http.Handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.cfg.CORSOrigin, limitBody(s.cfg.UploadMaxBytes+uploadOverhead, s.mux))
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/upload", s.handleUpload)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	s.mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	s.mux.HandleFunc("POST /api/sessions/{id}/chat", s.handleChat)
	s.mux.HandleFunc("POST /api/sessions/{id}/finalize", s.handleFinalize)
	s.mux.HandleFunc("GET /api/sessions/{id}/export", s.handleExport)
	s.mux.HandleFunc("GET /api/exports", s.handleListExports)
}

// ---------------------------------------------------------------------------
// Middleware
// ---------------------------------------------------------------------------

// corsMiddleware sets CORS headers. Defaults to "*" for development.
func corsMiddleware(origin string, next http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// limitBody restricts the request body to max bytes.
func limitBody(max int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, max)
		next.ServeHTTP(w, r)
	})
}

// ---------------------------------------------------------------------------
// Error codes and response helpers
// ---------------------------------------------------------------------------

// Stable machine-readable error codes returned in the error envelope.
const (
	codeFileFormat         = "FILE_FORMAT_ERROR"
	codeFileSize           = "FILE_SIZE_ERROR"
	codeInvalidRequest     = "INVALID_REQUEST"
	codeSessionNotFound    = "SESSION_NOT_FOUND"
	codeTranscription      = "TRANSCRIPTION_ERROR"
	codeGenerationTimeout  = "GENERATION_TIMEOUT"
	codeServiceUnavailable = "SERVICE_UNAVAILABLE"
	codeGenerationFailed   = "GENERATION_FAILED"
	codeSummaryFinalized   = "SUMMARY_FINALIZED"
	codeInternal           = "INTERNAL_ERROR"
)

type errorBody struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RetryAllowed bool   `json:"retry_allowed"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string, retryAllowed bool) {
	writeJSON(w, status, map[string]errorBody{"error": {
		Code:         code,
		Message:      msg,
		RetryAllowed: retryAllowed,
	}})
}

// writeGeneratorError maps the invoker's error taxonomy onto HTTP statuses:
// a timeout may be retried, a missing tool needs operator intervention, a
// nonzero exit carries the tool's own message.
func writeGeneratorError(w http.ResponseWriter, err error) {
	var timeoutErr *engine.TimeoutError
	var unavailableErr *engine.UnavailableError
	var cliErr *engine.CLIError
	switch {
	case errors.As(err, &timeoutErr):
		writeError(w, http.StatusGatewayTimeout, codeGenerationTimeout,
			"the AI service timed out, please try again", true)
	case errors.As(err, &unavailableErr):
		writeError(w, http.StatusServiceUnavailable, codeServiceUnavailable,
			"the AI service is not available, check that the generator command is installed", false)
	case errors.As(err, &cliErr):
		writeError(w, http.StatusBadGateway, codeGenerationFailed,
			"the AI service reported an error: "+cliErr.Stderr, true)
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error", true)
	}
}
