package keybinds

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultBindings(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		context Context
		key     string
		want    Action
		found   bool
	}{
		{ContextEditor, "ctrl+s", ActionSubmitAnalysis, true},
		{ContextFilter, "ctrl+s", ActionSubmitAnalysis, true},
		{ContextFilter, "enter", ActionLoadHistory, true},
		{ContextForm, "enter", ActionActivate, true},
		{ContextForm, "left", ActionSelectPrev, true},
		{ContextNotice, "esc", ActionDismissNotice, true},
		{ContextGlobal, "ctrl+l", ActionLoadHistory, true},
		{ContextEditor, "enter", "", false},
		{ContextEditor, "q", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.context)+"/"+tt.key, func(t *testing.T) {
			action, ok := r.Match(tt.context, tt.key)
			if ok != tt.found {
				t.Fatalf("Match(%s, %q) found = %v, want %v", tt.context, tt.key, ok, tt.found)
			}
			if action != tt.want {
				t.Errorf("Match(%s, %q) = %s, want %s", tt.context, tt.key, action, tt.want)
			}
		})
	}
}

func TestGetBindingString(t *testing.T) {
	r := NewDefaultRegistry()

	if got := r.GetBindingString(ContextForm, ActionSelectPrev); got != "h, left" {
		t.Errorf("Expected %q, got %q", "h, left", got)
	}
	if got := r.GetBindingString(ContextEditor, ActionLoadHistory); got != "ctrl+l" {
		t.Errorf("Expected global fallback %q, got %q", "ctrl+l", got)
	}
	if got := r.GetBindingString(ContextNotice, ActionActivate); got != "unbound" {
		t.Errorf("Expected unbound, got %q", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := NewDefaultRegistry()
	clone := r.Clone()
	clone.Register(ContextForm, "x", ActionQuit)

	if r.HasBinding(ContextForm, "x") {
		t.Error("Expected original registry to be unchanged")
	}
	if !clone.HasBinding(ContextForm, "x") {
		t.Error("Expected clone to have the new binding")
	}
}

func TestListBindings_Sorted(t *testing.T) {
	bindings := NewDefaultRegistry().ListBindings(ContextNotice)
	if len(bindings) < 3 {
		t.Fatalf("Expected notice and global bindings, got %d", len(bindings))
	}
	for i, want := range []string{" ", "enter", "esc"} {
		if bindings[i].Key != want || bindings[i].Context != ContextNotice {
			t.Errorf("binding %d = %+v, want key %q in notice", i, bindings[i], want)
		}
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		r, err := LoadOrDefault(filepath.Join(dir, "absent.yaml"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !r.HasBinding(ContextGlobal, "ctrl+s") {
			t.Error("Expected default bindings")
		}
	})

	t.Run("override and unbind", func(t *testing.T) {
		path := filepath.Join(dir, "keybinds.yaml")
		content := "version: \"1.0\"\nglobal:\n  ctrl+g: submit_analysis\nform:\n  q: noop\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		r, err := LoadOrDefault(path)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if action, _ := r.Match(ContextEditor, "ctrl+g"); action != ActionSubmitAnalysis {
			t.Errorf("Expected ctrl+g to submit, got %q", action)
		}
		if r.HasBinding(ContextForm, "q") {
			t.Error("Expected q to be unbound in form context")
		}
		if !r.HasBinding(ContextGlobal, "ctrl+s") {
			t.Error("Expected defaults to survive")
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("global:\n  ctrl+g: explode\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadOrDefault(path); err == nil {
			t.Error("Expected error for unknown action")
		}
	})
}

func TestExportDefaultsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.yaml")
	if err := SaveConfig(ExportDefaults(), path); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	registry := NewRegistry()
	if err := ApplyConfig(registry, config); err != nil {
		t.Fatal(err)
	}

	defaults := NewDefaultRegistry()
	for _, context := range Contexts {
		if got, want := len(registry.bindings[context]), len(defaults.bindings[context]); got != want {
			t.Errorf("context %s: got %d bindings, want %d", context, got, want)
		}
	}
}
