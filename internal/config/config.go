// Package config loads newsagg settings from the environment and feed lists from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Summarizer names.
const (
	SummarizerPlaceholder = "placeholder"
	SummarizerOpenAI      = "openai"
)

// DefaultFeeds are used by the CLI when no feeds are given.
var DefaultFeeds = []string{
	"http://feeds.bbci.co.uk/news/technology/rss.xml",
	"https://techcrunch.com/feed/",
}

// Config holds runtime settings.
type Config struct {
	Port         int
	CORSOrigins  []string
	FetchTimeout time.Duration
	Concurrency  int
	HostInterval time.Duration
	UserAgent    string
	LogLevel     slog.Level

	Summarizer    string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
}

// Load reads an optional .env file from envFile (empty means ".env") and then
// the process environment. Values already set in the environment win.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only. Unset keys
// take their defaults; set but unparseable values are errors.
func FromEnv() (Config, error) {
	cfg := Config{
		CORSOrigins:   parseOrigins(getenv("CORS_ORIGINS", "*")),
		UserAgent:     os.Getenv("NEWSAGG_USER_AGENT"),
		Summarizer:    strings.ToLower(getenv("SUMMARIZER", SummarizerPlaceholder)),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
	}

	var err error
	if cfg.Port, err = getInt("PORT", 8000); err != nil {
		return Config{}, err
	}
	if cfg.Concurrency, err = getInt("NEWSAGG_CONCURRENCY", 4); err != nil {
		return Config{}, err
	}
	if cfg.FetchTimeout, err = getDuration("NEWSAGG_FETCH_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.HostInterval, err = getDuration("NEWSAGG_HOST_INTERVAL", 0); err != nil {
		return Config{}, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("invalid concurrency %d: must be > 0", c.Concurrency)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("invalid fetch timeout %s: must be > 0", c.FetchTimeout)
	}
	switch c.Summarizer {
	case SummarizerPlaceholder, SummarizerOpenAI:
	default:
		return fmt.Errorf("invalid summarizer %q: must be '%s' or '%s'", c.Summarizer, SummarizerPlaceholder, SummarizerOpenAI)
	}
	return nil
}

// Redacted returns the API key suitable for display.
func (c Config) Redacted() string {
	if c.OpenAIAPIKey == "" {
		return "(not set)"
	}
	return "****"
}

func parseOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "*" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
