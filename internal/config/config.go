package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

// LocalSettingsFile overrides the global settings when present in the
// working directory
const LocalSettingsFile = ".textlens.yaml"

var (
	// ConfigDir is the global configuration directory (~/.textlens)
	ConfigDir string

	// SettingsFile is the global settings file
	SettingsFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string

	// LogFile receives the TUI log output
	LogFile string
)

// Initialize sets up the configuration directory and files
// It creates ~/.textlens/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	// Set global paths
	ConfigDir = filepath.Join(homeDir, ".textlens")
	SettingsFile = filepath.Join(ConfigDir, "config.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.yaml")
	LogFile = filepath.Join(ConfigDir, "textlens.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Write the default settings so users have something to edit
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := Save(SettingsFile, Defaults()); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}

// LocalConfigExists checks if there's a local .textlens.yaml
func LocalConfigExists() bool {
	_, err := os.Stat(LocalSettingsFile)
	return err == nil
}

// GetSettingsFilePath returns the settings file path (local or global)
func GetSettingsFilePath() string {
	if LocalConfigExists() {
		return LocalSettingsFile
	}
	return SettingsFile
}
