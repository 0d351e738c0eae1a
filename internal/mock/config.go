package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPort matches the port the analysis API listens on by default
const DefaultPort = 8000

// LoadConfig loads a mock configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// validateConfig validates the mock configuration
func validateConfig(config *Config) error {
	if len(config.Routes) == 0 {
		return fmt.Errorf("no routes defined")
	}

	for i, route := range config.Routes {
		if route.Method == "" {
			return fmt.Errorf("route %d: method is required", i)
		}
		if route.Path == "" {
			return fmt.Errorf("route %d: path is required", i)
		}
		if route.PathType != "" && route.PathType != "exact" && route.PathType != "prefix" && route.PathType != "regex" {
			return fmt.Errorf("route %d: pathType must be 'exact', 'prefix', or 'regex'", i)
		}
		if route.Delay < 0 {
			return fmt.Errorf("route %d: delay cannot be negative", i)
		}
	}

	return nil
}

// SaveConfig saves a mock configuration to a file
func SaveConfig(config *Config, path string) error {
	var data []byte
	var err error

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig serves canned analysis API responses
func DefaultConfig() *Config {
	jsonHeaders := map[string]string{"Content-Type": "application/json"}

	return &Config{
		Port:    DefaultPort,
		Host:    "localhost",
		Logging: true,
		Routes: []Route{
			{
				Name:    "analyze",
				Method:  http.MethodPost,
				Path:    "/api/analyze",
				Status:  http.StatusOK,
				Headers: jsonHeaders,
				Delay:   300,
				Body: `{"summary":"A short greeting to the world.",` +
					`"metadata":{"title":"Hello World","topics":["greetings"],"sentiment":"positive","keywords":["hello","world"]},` +
					`"processing_time":0.42,"confidence_score":0.91}`,
			},
			{
				Name:    "history (no matches)",
				Method:  http.MethodGet,
				Path:    "/api/history",
				Query:   map[string]string{"sentiment": "negative"},
				Status:  http.StatusOK,
				Headers: jsonHeaders,
				Body:    `{"analyses":[],"total":0,"skip":0,"limit":50}`,

				EchoFilters: true,
			},
			{
				Name:    "history",
				Method:  http.MethodGet,
				Path:    "/api/history",
				Status:  http.StatusOK,
				Headers: jsonHeaders,
				Delay:   150,
				Body: `{"analyses":[` +
					`{"id":2,"title":"Hello World","summary":"A short greeting to the world.","sentiment":"positive",` +
					`"topics":["greetings"],"keywords":["hello","world"],"processing_time":0.42,"created_at":"2024-05-02T09:30:00"},` +
					`{"id":1,"title":null,"summary":"Quarterly numbers were flat.","sentiment":"neutral",` +
					`"topics":[],"keywords":[],"processing_time":null,"created_at":"2024-05-01T17:05:12"}` +
					`],"total":2,"skip":0,"limit":50}`,

				EchoFilters: true,
			},
			{
				Name:    "health",
				Method:  http.MethodGet,
				Path:    "/api/health",
				Status:  http.StatusOK,
				Headers: jsonHeaders,
				Body:    `{"status":"healthy","service":"text-analysis-api"}`,
			},
		},
	}
}
