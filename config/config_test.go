package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "HTTP_ADDR", "MODEL_PATH", "CLASSIFIER_BACKEND", "TEXT_COLUMN",
		"MAX_UPLOAD_MB", "WORDCLOUD_MAX_WORDS", "LOG_LEVEL", "VALKEY_INIT_ADDRESS",
		"VALKEY_PASSWORD", "VALKEY_TLS", "CACHE_TTL", "AWS_REGION", "AWS_ENDPOINT",
		"HISTORY_TABLE_NAME", "KAFKA_BROKER", "KAFKA_TOPIC_ANALYSIS", "OPENAI_API_KEY",
		"OPENAI_MODEL", "REMOTE_CLASSIFIER_URL", "REMOTE_CLASSIFIER_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "dev" {
		t.Fatalf("unexpected env: %q", cfg.Env)
	}
	if cfg.HTTPAddr != ":5000" {
		t.Fatalf("unexpected addr: %q", cfg.HTTPAddr)
	}
	if cfg.TextColumn != "content" {
		t.Fatalf("unexpected text column: %q", cfg.TextColumn)
	}
	if cfg.ClassifierBackend != BackendNaiveBayes {
		t.Fatalf("unexpected backend: %q", cfg.ClassifierBackend)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Fatalf("unexpected max upload: %d", cfg.MaxUploadBytes)
	}
	if cfg.CacheTTL != time.Hour {
		t.Fatalf("unexpected cache ttl: %v", cfg.CacheTTL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("unexpected level: %v", cfg.LogLevel)
	}
	if cfg.RemoteClassifierTimeout != 60*time.Second {
		t.Fatalf("unexpected remote timeout: %v", cfg.RemoteClassifierTimeout)
	}
	if cfg.CacheEnabled() || cfg.HistoryEnabled() || cfg.EventsEnabled() {
		t.Fatal("optional components should be disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLASSIFIER_BACKEND", "VADER")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_UPLOAD_MB", "4")
	t.Setenv("VALKEY_INIT_ADDRESS", "localhost:6379")
	t.Setenv("HISTORY_TABLE_NAME", "SentimentAnalyses")
	t.Setenv("CACHE_TTL", "15m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ClassifierBackend != BackendVader {
		t.Fatalf("unexpected backend: %q", cfg.ClassifierBackend)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("unexpected level: %v", cfg.LogLevel)
	}
	if cfg.MaxUploadBytes != 4<<20 {
		t.Fatalf("unexpected max upload: %d", cfg.MaxUploadBytes)
	}
	if !cfg.CacheEnabled() || !cfg.HistoryEnabled() {
		t.Fatal("expected cache and history to be enabled")
	}
	if cfg.CacheTTL != 15*time.Minute {
		t.Fatalf("unexpected cache ttl: %v", cfg.CacheTTL)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"unknown backend", "CLASSIFIER_BACKEND", "bert", "unknown CLASSIFIER_BACKEND"},
		{"openai without key", "CLASSIFIER_BACKEND", "openai", "OPENAI_API_KEY"},
		{"bad upload size", "MAX_UPLOAD_MB", "lots", "MAX_UPLOAD_MB"},
		{"zero upload size", "MAX_UPLOAD_MB", "0", "must be positive"},
		{"bad ttl", "CACHE_TTL", "soon", "CACHE_TTL"},
		{"bad level", "LOG_LEVEL", "loud", "LOG_LEVEL"},
		{"remote without url", "CLASSIFIER_BACKEND", "remote", "REMOTE_CLASSIFIER_URL"},
		{"bad remote timeout", "REMOTE_CLASSIFIER_TIMEOUT", "forever", "REMOTE_CLASSIFIER_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
