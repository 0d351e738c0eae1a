/*
Package keybinds provides customizable keyboard binding management.

# Overview

Keys map to actions within a context. The TUI asks the registry for the
action of a key in the context of the focused field and falls back to the
global bindings when the context has none.

# Contexts

  - global: available everywhere (flow triggers, focus, scrolling)
  - editor: the analyze text area; enter is left unbound so it inserts a newline
  - filter: the search and keyword inputs; enter loads history
  - form: buttons, checkboxes and the sentiment selector
  - notice: the blocking notice raised for empty input

# Configuration File Format

Overrides live in keybinds.yaml, one section per context:

	version: "1.0"
	global:
	  ctrl+s: submit_analysis
	  ctrl+l: load_history
	form:
	  q: noop

Binding a key to "noop" removes the default binding.

# Validation

The validator reports unknown contexts and actions, printable keys bound in
the typing contexts, rebinding of ctrl+c, and context bindings that shadow a
global one.

# Example Usage

	registry, err := LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}
	if action, ok := registry.Match(ContextFilter, "enter"); ok {
		// Handle action
	}
*/
package keybinds
