package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "CORS_ORIGINS", "NEWSAGG_FETCH_TIMEOUT", "NEWSAGG_CONCURRENCY",
		"NEWSAGG_HOST_INTERVAL", "NEWSAGG_USER_AGENT", "LOG_LEVEL", "SUMMARIZER",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Port)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("expected CORS '*', got %v", cfg.CORSOrigins)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Errorf("expected 15s fetch timeout, got %s", cfg.FetchTimeout)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", cfg.Concurrency)
	}
	if cfg.Summarizer != SummarizerPlaceholder {
		t.Errorf("expected placeholder summarizer, got %q", cfg.Summarizer)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %s", cfg.LogLevel)
	}
}

func TestFromEnv_ReadsOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("NEWSAGG_FETCH_TIMEOUT", "3s")
	t.Setenv("NEWSAGG_HOST_INTERVAL", "500ms")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SUMMARIZER", "OpenAI")

	cfg, err := FromEnv()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("expected origins %v, got %v", want, cfg.CORSOrigins)
	}
	if cfg.FetchTimeout != 3*time.Second || cfg.HostInterval != 500*time.Millisecond {
		t.Errorf("unexpected durations: %s %s", cfg.FetchTimeout, cfg.HostInterval)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %s", cfg.LogLevel)
	}
	if cfg.Summarizer != SummarizerOpenAI {
		t.Errorf("expected openai summarizer, got %q", cfg.Summarizer)
	}
}

func TestFromEnv_RejectsInvalidValues(t *testing.T) {
	testCases := map[string][2]string{
		"port out of range":       {"PORT", "70000"},
		"non-numeric port":        {"PORT", "abc"},
		"zero concurrency":        {"NEWSAGG_CONCURRENCY", "0"},
		"non-numeric concurrency": {"NEWSAGG_CONCURRENCY", "many"},
		"unparseable timeout":     {"NEWSAGG_FETCH_TIMEOUT", "soon"},
		"unparseable interval":    {"NEWSAGG_HOST_INTERVAL", "often"},
		"bad log level":           {"LOG_LEVEL", "loud"},
		"unknown summarizer":      {"SUMMARIZER", "magic"},
	}

	for name, kv := range testCases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := FromEnv()
			if err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
			if !strings.Contains(err.Error(), kv[0]) && !strings.Contains(err.Error(), kv[1]) {
				t.Errorf("error should name %s or its value, got: %v", kv[0], err)
			}
		})
	}
}

func TestLoad_ReadsDotEnvWithoutOverridingEnvironment(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("PORT")
	os.Unsetenv("OPENAI_MODEL")
	t.Setenv("CORS_ORIGINS", "https://env.example")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "PORT=7000\nCORS_ORIGINS=https://file.example\nOPENAI_MODEL=gpt-4o-mini\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("OPENAI_MODEL")
	})

	cfg, err := Load(envFile)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 7000 {
		t.Errorf("expected port from .env, got %d", cfg.Port)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("expected model from .env, got %q", cfg.OpenAIModel)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"https://env.example"}) {
		t.Errorf("environment should win over .env, got %v", cfg.CORSOrigins)
	}
}

func TestLoad_MissingDotEnvIsFine(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing .env should not be an error, got: %v", err)
	}
}

func TestRedacted_HidesAPIKey(t *testing.T) {
	if got := (Config{OpenAIAPIKey: "sk-secret"}).Redacted(); got != "****" {
		t.Errorf("expected redacted key, got %q", got)
	}
	if got := (Config{}).Redacted(); got != "(not set)" {
		t.Errorf("expected '(not set)', got %q", got)
	}
}
