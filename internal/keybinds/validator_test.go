package keybinds

import (
	"strings"
	"testing"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator()

	if v == nil {
		t.Fatal("NewValidator returned nil")
	}

	if !v.reservedKeys["ctrl+c"] {
		t.Error("Expected ctrl+c to be a reserved key")
	}

	if len(v.contextHierarchy) != len(Contexts)-1 {
		t.Errorf("Expected every non-global context in the hierarchy, got %d", len(v.contextHierarchy))
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name: "conflict error",
			err: ValidationError{
				Type:    "conflict",
				Context: ContextFilter,
				Key:     "q",
				Message: "quit would capture typed text",
			},
			expected: "[conflict] q in context 'filter': quit would capture typed text",
		},
		{
			name: "invalid error",
			err: ValidationError{
				Type:    "invalid",
				Context: ContextGlobal,
				Key:     "",
				Message: "empty key",
			},
			expected: "[invalid]  in context 'global': empty key",
		},
		{
			name: "warning",
			err: ValidationError{
				Type:    "warning",
				Context: ContextForm,
				Key:     "tab",
				Message: "shadows global binding",
			},
			expected: "[warning] tab in context 'form': shadows global binding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidationResult_String(t *testing.T) {
	tests := []struct {
		name     string
		result   *ValidationResult
		contains []string
	}{
		{
			name:     "no issues",
			result:   &ValidationResult{},
			contains: []string{"No issues found"},
		},
		{
			name: "only errors",
			result: &ValidationResult{
				Errors: []ValidationError{
					{Type: "conflict", Context: ContextEditor, Key: "x", Message: "captures text"},
				},
			},
			contains: []string{"Errors (1)", "conflict", "editor", "x"},
		},
		{
			name: "both errors and warnings",
			result: &ValidationResult{
				Errors: []ValidationError{
					{Type: "conflict", Context: ContextEditor, Key: "x", Message: "captures text"},
				},
				Warnings: []ValidationError{
					{Type: "warning", Context: ContextForm, Key: "tab", Message: "shadows"},
				},
			},
			contains: []string{"Errors (1)", "Warnings (1)", "conflict", "warning"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("String() output missing %q, got:\n%s", want, got)
				}
			}
		})
	}
}

func TestDefaultRegistryIsClean(t *testing.T) {
	result := NewValidator().ValidateRegistry(NewDefaultRegistry())
	if result.HasErrors() || result.HasWarnings() {
		t.Errorf("Expected default bindings to validate cleanly, got:\n%s", result.String())
	}
}

func TestCheckTextInputKeys(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name         string
		context      Context
		key          string
		expectErrors int
	}{
		{"letter in editor", ContextEditor, "x", 1},
		{"space in filter", ContextFilter, " ", 1},
		{"ctrl combo in editor", ContextEditor, "ctrl+x", 0},
		{"named key in filter", ContextFilter, "enter", 0},
		{"letter in form", ContextForm, "x", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			r.Register(tt.context, tt.key, ActionLoadHistory)

			result := &ValidationResult{}
			v.checkTextInputKeys(r, result)

			if len(result.Errors) != tt.expectErrors {
				t.Errorf("Expected %d errors, got %d", tt.expectErrors, len(result.Errors))
			}
			for _, err := range result.Errors {
				if err.Type != "conflict" {
					t.Errorf("Expected error type 'conflict', got %q", err.Type)
				}
			}
		})
	}
}

func TestCheckReservedKeys(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name           string
		setupRegistry  func() *Registry
		expectWarnings int
	}{
		{
			name: "no reserved keys",
			setupRegistry: func() *Registry {
				r := NewRegistry()
				r.Register(ContextForm, "q", ActionQuit)
				return r
			},
			expectWarnings: 0,
		},
		{
			name: "reserved key with correct action",
			setupRegistry: func() *Registry {
				r := NewRegistry()
				r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
				return r
			},
			expectWarnings: 0,
		},
		{
			name: "reserved key rebound",
			setupRegistry: func() *Registry {
				r := NewRegistry()
				r.Register(ContextGlobal, "ctrl+c", ActionQuit)
				return r
			},
			expectWarnings: 1,
		},
		{
			name: "reserved key rebound in a context",
			setupRegistry: func() *Registry {
				r := NewRegistry()
				r.Register(ContextEditor, "ctrl+c", ActionCopySummary)
				return r
			},
			expectWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &ValidationResult{}
			v.checkReservedKeys(tt.setupRegistry(), result)

			if len(result.Warnings) != tt.expectWarnings {
				t.Errorf("Expected %d warnings, got %d", tt.expectWarnings, len(result.Warnings))
			}
		})
	}
}

func TestCheckShadowing(t *testing.T) {
	v := NewValidator()

	r := NewRegistry()
	r.Register(ContextGlobal, "tab", ActionFocusNext)
	r.Register(ContextForm, "tab", ActionActivate)
	r.Register(ContextFilter, "tab", ActionFocusNext)

	result := &ValidationResult{}
	v.checkShadowing(r, result)

	if len(result.Warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(result.Warnings))
	}
	if result.Warnings[0].Context != ContextForm {
		t.Errorf("Expected warning in form context, got %s", result.Warnings[0].Context)
	}
}

func TestValidateRegistry_UnknownContextAndAction(t *testing.T) {
	r := NewRegistry()
	r.Register(Context("sidebar"), "x", ActionQuit)
	r.Register(ContextForm, "x", Action("launch_rocket"))

	result := NewValidator().ValidateRegistry(r)
	if len(result.Errors) != 2 {
		t.Errorf("Expected 2 errors, got %d:\n%s", len(result.Errors), result.String())
	}
}

func TestValidateConfig(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name         string
		config       *Config
		expectErrors bool
	}{
		{
			name: "valid config",
			config: &Config{
				Global: map[string]string{"ctrl+g": "load_history"},
				Form:   map[string]string{"x": "activate"},
			},
			expectErrors: false,
		},
		{
			name:         "empty config",
			config:       &Config{},
			expectErrors: false,
		},
		{
			name:         "unknown action",
			config:       &Config{Global: map[string]string{"ctrl+g": "open_sidebar"}},
			expectErrors: true,
		},
		{
			name:         "printable key while typing",
			config:       &Config{Filter: map[string]string{"r": "clear_filters"}},
			expectErrors: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateConfig(tt.config)

			if tt.expectErrors && !result.HasErrors() {
				t.Error("Expected errors but got none")
			}
			if !tt.expectErrors && result.HasErrors() {
				t.Errorf("Expected no errors but got: %v", result.Errors)
			}
		})
	}
}

func TestFindConflicts(t *testing.T) {
	if conflicts := FindConflicts(&Config{Form: map[string]string{"r": "clear_filters"}}); len(conflicts) != 0 {
		t.Errorf("Expected no conflicts but got: %v", conflicts)
	}
	if conflicts := FindConflicts(&Config{Editor: map[string]string{"r": "clear_filters"}}); len(conflicts) != 1 {
		t.Errorf("Expected 1 conflict, got: %v", conflicts)
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"empty key", "", true},
		{"simple key", "q", false},
		{"space", " ", false},
		{"multi-char key", "esc", false},
		{"ctrl modifier", "ctrl+c", false},
		{"shift modifier", "shift+tab", false},
		{"modifier only", "ctrl+", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAction(t *testing.T) {
	tests := []struct {
		name      string
		actionStr string
		wantErr   bool
	}{
		{"empty action", "", true},
		{"valid action", "quit", false},
		{"flow trigger", "submit_analysis", false},
		{"unknown action", "custom_action", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAction(tt.actionStr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAction() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
