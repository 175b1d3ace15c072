package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yangwenmai/minutes/internal/audio"
	"github.com/yangwenmai/minutes/internal/model"
)

type summaryView struct {
	Content string `json:"content"`
	Status  string `json:"status"`
	Version int    `json:"version"`
}

func newSummaryView(s model.Summary) summaryView {
	return summaryView{Content: s.Content, Status: s.Status, Version: s.Version}
}

// ---------------------------------------------------------------------------
// POST /api/upload
// ---------------------------------------------------------------------------

type uploadResponse struct {
	SessionID  string      `json:"session_id"`
	Transcript string      `json:"transcript"`
	Summary    summaryView `json:"summary"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusBadRequest, codeFileSize,
				fmt.Sprintf("file too large, the limit is %d MB", s.cfg.UploadMaxBytes>>20), true)
			return
		}
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid multipart body", true)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeFileFormat, "file field is required", true)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, codeFileFormat, "filename must not be empty", true)
		return
	}
	if !audio.IsSupportedFormat(header.Filename) {
		writeError(w, http.StatusBadRequest, codeFileFormat, audio.FormatErrorMessage(), true)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeFileSize,
			fmt.Sprintf("file too large, the limit is %d MB", s.cfg.UploadMaxBytes>>20), true)
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, codeFileFormat, "uploaded file is empty", true)
		return
	}
	if int64(len(data)) > s.cfg.UploadMaxBytes {
		writeError(w, http.StatusBadRequest, codeFileSize,
			fmt.Sprintf("file too large, the limit is %d MB", s.cfg.UploadMaxBytes>>20), true)
		return
	}

	// Reusing an existing session must fail before any external call.
	sessionID := r.FormValue("session_id")
	if sessionID != "" && !s.registry.Exists(sessionID) {
		writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found", false)
		return
	}

	language := r.FormValue("language")
	if language == "" {
		language = s.cfg.WhisperLanguage
	}

	transcript, err := s.transcriber.Transcribe(r.Context(), data, header.Filename, language)
	if err != nil {
		slog.Error("transcription failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusBadGateway, codeTranscription,
			"transcription failed, please try again", true)
		return
	}

	summaryText, err := s.summarizer.Generate(r.Context(), transcript)
	if err != nil {
		slog.Error("summary generation failed", "filename", header.Filename, "error", err)
		writeGeneratorError(w, err)
		return
	}

	// Session state changes only after both external calls succeeded.
	filename := header.Filename
	update := model.SessionUpdate{
		SourceFilename: &filename,
		Transcript:     &transcript,
		Summary:        model.NewDraftSummary(summaryText),
		History:        []model.ChatMessage{},
	}
	if sessionID == "" {
		sessionID = s.registry.Create(header.Filename)
	}
	if err := s.registry.Update(sessionID, update); err != nil {
		// The reused session was deleted while we were transcribing.
		writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found", false)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		SessionID:  sessionID,
		Transcript: transcript,
		Summary:    summaryView{Content: summaryText, Status: model.StatusDraft, Version: 1},
	})
}

// ---------------------------------------------------------------------------
// POST /api/sessions/{id}/chat
// ---------------------------------------------------------------------------

type chatRequest struct {
	Message string `json:"message"`
	Type    string `json:"type"` // "question" (default) or "edit_request"
}

type chatResponse struct {
	Reply          string      `json:"reply"`
	Summary        summaryView `json:"summary"`
	SummaryUpdated bool        `json:"summary_updated"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid JSON body", true)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "message is required", true)
		return
	}
	if req.Type == "" {
		req.Type = model.KindQuestion
	}

	userMsg, err := model.NewChatMessage(model.RoleUser, req.Message, req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest,
			"type must be question or edit_request", true)
		return
	}

	sess, err := s.registry.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found", false)
		return
	}
	view := sess.Snapshot()

	reply, err := s.chat.Chat(r.Context(), view.Transcript, view.Summary.Content, req.Message, view.History, req.Type)
	if err != nil {
		// The session is untouched on any generator failure.
		slog.Error("chat failed", "session_id", id, "kind", req.Type, "error", err)
		writeGeneratorError(w, err)
		return
	}

	assistantMsg, err := model.NewChatMessage(model.RoleAssistant, reply, model.KindResponse)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error", true)
		return
	}
	sess.AddMessage(userMsg)
	sess.AddMessage(assistantMsg)

	summaryUpdated := false
	if req.Type == model.KindEditRequest {
		switch err := sess.UpdateSummaryContent(reply); {
		case err == nil:
			summaryUpdated = true
		case errors.Is(err, model.ErrSummaryFinalized):
			// Deliberate no-op: the reply is kept in the log, but a final
			// summary is never rewritten.
			slog.Warn("edit request ignored, summary already final", "session_id", id)
		default:
			writeError(w, http.StatusInternalServerError, codeInternal, "internal error", true)
			return
		}
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Reply:          reply,
		Summary:        newSummaryView(sess.Snapshot().Summary),
		SummaryUpdated: summaryUpdated,
	})
}

// ---------------------------------------------------------------------------
// POST /api/sessions/{id}/finalize
// ---------------------------------------------------------------------------

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	sess, err := s.registry.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found", false)
		return
	}

	if err := sess.FinalizeSummary(); err != nil {
		if errors.Is(err, model.ErrAlreadyFinal) {
			writeError(w, http.StatusConflict, codeSummaryFinalized, "summary is already finalized", false)
			return
		}
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error", true)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"summary": newSummaryView(sess.Snapshot().Summary),
	})
}

// ---------------------------------------------------------------------------
// GET /api/sessions/{id}
// ---------------------------------------------------------------------------

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	sess, err := s.registry.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found", false)
		return
	}

	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// ---------------------------------------------------------------------------
// DELETE /api/sessions/{id}
// ---------------------------------------------------------------------------

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.registry.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found", false)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// GET /api/sessions/{id}/export
// ---------------------------------------------------------------------------

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	sess, err := s.registry.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found", false)
		return
	}
	view := sess.Snapshot()
	filename := exportFilename(view.SourceFilename)

	export := model.Export{
		ID:         uuid.New().String(),
		SessionID:  id,
		Filename:   filename,
		Content:    view.Summary.Content,
		Status:     view.Summary.Status,
		Version:    view.Summary.Version,
		ExportedAt: time.Now(),
	}
	if err := s.archive.SaveExport(r.Context(), export); err != nil {
		// The download itself must still succeed.
		slog.Error("archiving export failed", "session_id", id, "error", err)
	}

	// The summary leaves the system verbatim: no wrapping, no front matter.
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(view.Summary.Content))
}

// exportFilename derives the download name from the source recording name.
func exportFilename(source string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "summary"
	}
	return base + ".md"
}

// ---------------------------------------------------------------------------
// GET /api/exports
// ---------------------------------------------------------------------------

func (s *Server) handleListExports(w http.ResponseWriter, r *http.Request) {
	exports, err := s.archive.ListExports(r.Context())
	if err != nil {
		slog.Error("listing exports failed", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "failed to list exports", true)
		return
	}
	if exports == nil {
		exports = []model.Export{}
	}
	writeJSON(w, http.StatusOK, exports)
}

// ---------------------------------------------------------------------------
// GET /api/health
// ---------------------------------------------------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	whisper := "unreachable"
	if s.transcriber.Health(r.Context()) {
		whisper = "ok"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"whisper_service": whisper,
		"sessions":        s.registry.Count(),
	})
}
