package keybinds

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the user's keybinding configuration.
// Each section maps a key to an action name.
type Config struct {
	Version string            `yaml:"version"`
	Global  map[string]string `yaml:"global,omitempty"`
	Editor  map[string]string `yaml:"editor,omitempty"`
	Filter  map[string]string `yaml:"filter,omitempty"`
	Form    map[string]string `yaml:"form,omitempty"`
	Notice  map[string]string `yaml:"notice,omitempty"`
}

// sections pairs each context with its config section
func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal: c.Global,
		ContextEditor: c.Editor,
		ContextFilter: c.Filter,
		ContextForm:   c.Form,
		ContextNotice: c.Notice,
	}
}

// LoadConfig loads keybinding configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.yaml format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies user configuration to a registry.
// User bindings override default bindings; "noop" unbinds a default key.
func ApplyConfig(registry *Registry, config *Config) error {
	for context, bindings := range config.sections() {
		for key, actionStr := range bindings {
			if err := ValidateKey(key); err != nil {
				return fmt.Errorf("%s: %w", context, err)
			}
			action := Action(strings.TrimSpace(actionStr))
			if err := ValidateAction(string(action)); err != nil {
				return fmt.Errorf("%s.%s: %w", context, key, err)
			}
			if action == ActionNoOp {
				registry.Unregister(context, key)
				continue
			}
			registry.Register(context, key, action)
		}
	}
	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.yaml: %w", err)
		}

		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}
	// If config doesn't exist, that's fine - use defaults

	return registry, nil
}

// ExportDefaults exports default keybindings as a config file
// Useful for users to see what can be customized
func ExportDefaults() *Config {
	registry := NewDefaultRegistry()
	config := &Config{Version: "1.0"}

	export := func(context Context) map[string]string {
		out := make(map[string]string)
		for key, action := range registry.bindings[context] {
			out[key] = string(action)
		}
		return out
	}

	config.Global = export(ContextGlobal)
	config.Editor = export(ContextEditor)
	config.Filter = export(ContextFilter)
	config.Form = export(ContextForm)
	config.Notice = export(ContextNotice)
	return config
}
