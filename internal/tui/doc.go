/*
Package tui implements the interactive terminal front end of textlens.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: widget state plus the flow.Bindings the flows render into
  - Update: processes messages and returns commands
  - View: draws the form, the result panel and the history panel

# Key Components

  - model.go: Model, construction and the Update loop
  - keys.go: keyboard routing through the keybinds.Registry
  - actions.go: flow triggers, clipboard and version check commands
  - render.go: View rendering and styles
  - editor.go: text area sizing

# Threading Model

Update is the only code that mutates state. Remote calls run inside
tea.Cmd functions through flow.Controller.Run*, which never touch the view,
and come back as analysisDoneMsg or historyLoadedMsg. Update then calls the
matching Finish* method. Every command shares one root context that is
cancelled on quit.

# Keybind System

Keys resolve by focus context (editor, filter, form, notice) and fall back
to the global context. A keybinds.yaml file in the config directory
overrides the defaults.
*/
package tui
