// Package config provides centralized configuration for the minutes server.
// All configurable values are loaded from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all server configuration values.
type Config struct {
	// Port is the HTTP server listen port.
	Port string

	// WhisperURL is the base URL of the transcription service.
	WhisperURL string

	// WhisperTimeout is the timeout for one transcription request.
	WhisperTimeout time.Duration

	// WhisperLanguage is the default transcription language code.
	WhisperLanguage string

	// GeneratorCommand is the external text-generation command plus its
	// fixed arguments, e.g. "claude" or "claude --model sonnet".
	GeneratorCommand []string

	// GeneratorTimeout is the timeout for one generator invocation.
	GeneratorTimeout time.Duration

	// SummaryTemplate optionally overrides the summary prompt template.
	// Placeholders: {transcript}.
	SummaryTemplate string

	// QuestionTemplate optionally overrides the question prompt template.
	// Placeholders: {transcript}, {summary}, {chat_history}, {message}.
	QuestionTemplate string

	// EditTemplate optionally overrides the edit-request prompt template.
	// Same placeholders as QuestionTemplate.
	EditTemplate string

	// UploadMaxBytes is the maximum accepted upload size in bytes.
	UploadMaxBytes int64

	// ArchivePath is the path to the SQLite export archive.
	ArchivePath string

	// SessionTTL evicts sessions idle for longer than this duration.
	// Zero disables eviction and sessions live until explicitly deleted.
	SessionTTL time.Duration

	// ReapInterval is how often idle sessions are checked for eviction.
	ReapInterval time.Duration

	// CORSOrigin is the allowed CORS origin. Defaults to "*".
	CORSOrigin string
}

// Load reads configuration from environment variables, applying defaults.
func Load() Config {
	return Config{
		Port:             envOr("PORT", "8000"),
		WhisperURL:       envOr("WHISPER_URL", "http://localhost:8765"),
		WhisperTimeout:   envDuration("WHISPER_TIMEOUT", 300*time.Second),
		WhisperLanguage:  envOr("WHISPER_LANGUAGE", "zh"),
		GeneratorCommand: strings.Fields(envOr("GENERATOR_COMMAND", "claude")),
		GeneratorTimeout: envDuration("GENERATOR_TIMEOUT", 120*time.Second),
		SummaryTemplate:  os.Getenv("SUMMARY_TEMPLATE"),
		QuestionTemplate: os.Getenv("QUESTION_TEMPLATE"),
		EditTemplate:     os.Getenv("EDIT_TEMPLATE"),
		UploadMaxBytes:   envInt64("UPLOAD_MAX_BYTES", 100<<20),
		ArchivePath:      envOr("ARCHIVE_PATH", "minutes.db"),
		SessionTTL:       envDuration("SESSION_TTL", 0),
		ReapInterval:     envDuration("REAP_INTERVAL", time.Minute),
		CORSOrigin:       envOr("CORS_ORIGIN", "*"),
	}
}

// UseStub returns true when the generator command is explicitly disabled,
// selecting the stub model client for local development.
func (c Config) UseStub() bool {
	return len(c.GeneratorCommand) == 1 && c.GeneratorCommand[0] == "stub"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
