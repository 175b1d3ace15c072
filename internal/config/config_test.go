package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.WhisperURL != "http://localhost:8765" {
		t.Errorf("WhisperURL = %q", cfg.WhisperURL)
	}
	if cfg.WhisperTimeout != 300*time.Second {
		t.Errorf("WhisperTimeout = %s, want 300s", cfg.WhisperTimeout)
	}
	if cfg.WhisperLanguage != "zh" {
		t.Errorf("WhisperLanguage = %q, want zh", cfg.WhisperLanguage)
	}
	if !reflect.DeepEqual(cfg.GeneratorCommand, []string{"claude"}) {
		t.Errorf("GeneratorCommand = %v, want [claude]", cfg.GeneratorCommand)
	}
	if cfg.GeneratorTimeout != 120*time.Second {
		t.Errorf("GeneratorTimeout = %s, want 120s", cfg.GeneratorTimeout)
	}
	if cfg.UploadMaxBytes != 100<<20 {
		t.Errorf("UploadMaxBytes = %d, want 100MB", cfg.UploadMaxBytes)
	}
	if cfg.ArchivePath != "minutes.db" {
		t.Errorf("ArchivePath = %q", cfg.ArchivePath)
	}
	if cfg.SessionTTL != 0 {
		t.Errorf("SessionTTL = %s, want 0 (disabled)", cfg.SessionTTL)
	}
	if cfg.ReapInterval != time.Minute {
		t.Errorf("ReapInterval = %s, want 1m", cfg.ReapInterval)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GENERATOR_COMMAND", "claude --model sonnet")
	t.Setenv("GENERATOR_TIMEOUT", "30s")
	t.Setenv("UPLOAD_MAX_BYTES", "1048576")
	t.Setenv("SUMMARY_TEMPLATE", "TL;DR: {transcript}")
	t.Setenv("SESSION_TTL", "2h")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if !reflect.DeepEqual(cfg.GeneratorCommand, []string{"claude", "--model", "sonnet"}) {
		t.Errorf("GeneratorCommand = %v", cfg.GeneratorCommand)
	}
	if cfg.GeneratorTimeout != 30*time.Second {
		t.Errorf("GeneratorTimeout = %s, want 30s", cfg.GeneratorTimeout)
	}
	if cfg.UploadMaxBytes != 1<<20 {
		t.Errorf("UploadMaxBytes = %d, want 1MB", cfg.UploadMaxBytes)
	}
	if cfg.SummaryTemplate != "TL;DR: {transcript}" {
		t.Errorf("SummaryTemplate = %q", cfg.SummaryTemplate)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL = %s, want 2h", cfg.SessionTTL)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("GENERATOR_TIMEOUT", "not-a-duration")
	t.Setenv("UPLOAD_MAX_BYTES", "not-a-number")

	cfg := Load()

	if cfg.GeneratorTimeout != 120*time.Second {
		t.Errorf("GeneratorTimeout = %s, want default 120s", cfg.GeneratorTimeout)
	}
	if cfg.UploadMaxBytes != 100<<20 {
		t.Errorf("UploadMaxBytes = %d, want default 100MB", cfg.UploadMaxBytes)
	}
}

func TestUseStub(t *testing.T) {
	t.Setenv("GENERATOR_COMMAND", "stub")
	if !Load().UseStub() {
		t.Error("UseStub = false, want true")
	}

	t.Setenv("GENERATOR_COMMAND", "claude")
	if Load().UseStub() {
		t.Error("UseStub = true, want false")
	}
}
