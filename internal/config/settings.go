package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/textlens/internal/types"
)

// Environment variables read after the optional .env file
const (
	EnvAPIURL           = "TEXTLENS_API_URL"
	EnvTimeout          = "TEXTLENS_TIMEOUT"
	EnvLogLevel         = "TEXTLENS_LOG_LEVEL"
	EnvIncludeKeywords  = "TEXTLENS_INCLUDE_KEYWORDS"
	EnvIncludeSentiment = "TEXTLENS_INCLUDE_SENTIMENT"
)

// DefaultEnvFile is loaded when no --env-file is given, if it exists
const DefaultEnvFile = ".env"

// MinEditorHeight is the smallest text area the TUI will draw
const MinEditorHeight = 3

// Settings is the user configuration
type Settings struct {
	APIURL           string           `yaml:"api_url"`
	TimeoutSeconds   int              `yaml:"timeout_seconds"`
	IncludeKeywords  bool             `yaml:"include_keywords"`
	IncludeSentiment bool             `yaml:"include_sentiment"`
	LogLevel         string           `yaml:"log_level"`
	MaxEditorHeight  int              `yaml:"max_editor_height"`
	TLS              *types.TLSConfig `yaml:"tls,omitempty"`
}

// Defaults returns the built-in settings
func Defaults() Settings {
	return Settings{
		APIURL:           "http://localhost:8000",
		TimeoutSeconds:   30,
		IncludeKeywords:  true,
		IncludeSentiment: true,
		LogLevel:         "info",
		MaxEditorHeight:  12,
	}
}

// Timeout returns the request timeout as a duration
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Validate checks the settings for values the client cannot use
func (s Settings) Validate() error {
	u, err := url.Parse(s.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url %q: %w", s.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api_url %q: scheme must be http or https", s.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api_url %q: missing host", s.APIURL)
	}
	if s.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", s.TimeoutSeconds)
	}
	if s.MaxEditorHeight < MinEditorHeight {
		return fmt.Errorf("max_editor_height must be at least %d, got %d", MinEditorHeight, s.MaxEditorHeight)
	}
	return nil
}

// Load reads settings from a YAML file on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (Settings, error) {
	settings := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings as YAML
func Save(path string, settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// LoadEnvFile loads a dotenv file into the process environment.
// An empty path tries DefaultEnvFile and ignores its absence; an explicit
// path must exist. Variables already set are not overwritten.
func LoadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return nil
		}
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from TEXTLENS_* environment variables
func ApplyEnv(s *Settings) error {
	if v, ok := lookup(EnvAPIURL); ok {
		s.APIURL = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		s.LogLevel = v
	}
	if v, ok := lookup(EnvTimeout); ok {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		s.TimeoutSeconds = seconds
	}
	if v, ok := lookup(EnvIncludeKeywords); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvIncludeKeywords, v, err)
		}
		s.IncludeKeywords = b
	}
	if v, ok := lookup(EnvIncludeSentiment); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvIncludeSentiment, v, err)
		}
		s.IncludeSentiment = b
	}
	return nil
}

// Resolve loads settings from path, then the env file, then the environment
func Resolve(path, envFile string) (Settings, error) {
	settings, err := Load(path)
	if err != nil {
		return settings, err
	}
	if err := LoadEnvFile(envFile); err != nil {
		return settings, err
	}
	if err := ApplyEnv(&settings); err != nil {
		return settings, err
	}
	return settings, nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
