package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), FilePermissions))
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), settings)
	assert.Equal(t, 30*time.Second, settings.Timeout())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
api_url: https://analysis.example.com
include_sentiment: false
tls:
  ca_file: /etc/ssl/ca.pem
`)

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://analysis.example.com", settings.APIURL)
	assert.False(t, settings.IncludeSentiment)
	assert.True(t, settings.IncludeKeywords)
	assert.Equal(t, 30, settings.TimeoutSeconds)
	assert.Equal(t, 12, settings.MaxEditorHeight)
	require.NotNil(t, settings.TLS)
	assert.Equal(t, "/etc/ssl/ca.pem", settings.TLS.CAFile)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "api_url: [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	settings := Defaults()
	settings.LogLevel = "debug"

	require.NoError(t, Save(path, settings))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(s *Settings) {}, false},
		{"https", func(s *Settings) { s.APIURL = "https://api.example.com/base" }, false},
		{"no scheme", func(s *Settings) { s.APIURL = "localhost:8000" }, true},
		{"ftp", func(s *Settings) { s.APIURL = "ftp://example.com" }, true},
		{"no host", func(s *Settings) { s.APIURL = "http://" }, true},
		{"zero timeout", func(s *Settings) { s.TimeoutSeconds = 0 }, true},
		{"tiny editor", func(s *Settings) { s.MaxEditorHeight = 1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://remote:9000")
	t.Setenv(EnvTimeout, "5")
	t.Setenv(EnvIncludeKeywords, "false")
	t.Setenv(EnvLogLevel, "  ")

	s := Defaults()
	require.NoError(t, ApplyEnv(&s))

	assert.Equal(t, "http://remote:9000", s.APIURL)
	assert.Equal(t, 5, s.TimeoutSeconds)
	assert.False(t, s.IncludeKeywords)
	assert.True(t, s.IncludeSentiment)
	assert.Equal(t, "info", s.LogLevel, "blank values are ignored")
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	tests := map[string]string{
		EnvTimeout:          "soon",
		EnvIncludeKeywords:  "maybe",
		EnvIncludeSentiment: "2",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			s := Defaults()
			assert.Error(t, ApplyEnv(&s))
		})
	}
}

func TestResolve_EnvFileOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	settingsPath := writeFile(t, dir, "config.yaml", "api_url: http://from-yaml:8000\n")
	envPath := writeFile(t, dir, "test.env", "TEXTLENS_API_URL=http://from-env:8000\n")

	// Registered so the variable godotenv sets is restored afterwards
	t.Setenv(EnvAPIURL, "")
	require.NoError(t, os.Unsetenv(EnvAPIURL))

	settings, err := Resolve(settingsPath, envPath)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:8000", settings.APIURL)
}

func TestLoadEnvFile_ExplicitMissingFile(t *testing.T) {
	err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestInitialize_CreatesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, Initialize())

	assert.Equal(t, filepath.Join(home, ".textlens"), ConfigDir)
	assert.Equal(t, filepath.Join(ConfigDir, "keybinds.yaml"), KeybindsFile)
	assert.Equal(t, filepath.Join(ConfigDir, "textlens.log"), LogFile)

	settings, err := Load(SettingsFile)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), settings)
}
