package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/textlens/internal/flow"
	"github.com/studiowebux/textlens/internal/keybinds"
)

// keyContext returns the keybind context of the focused field
func (m *Model) keyContext() keybinds.Context {
	if m.bindings.Notice() != "" {
		return keybinds.ContextNotice
	}
	switch m.focus {
	case FieldEditor:
		return keybinds.ContextEditor
	case FieldSearch, FieldKeyword:
		return keybinds.ContextFilter
	default:
		return keybinds.ContextForm
	}
}

// handleKeyPress routes key presses through the registry. Keys without a
// binding go to the focused text widget.
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	keyCtx := m.keyContext()
	action, ok := m.keybinds.Match(keyCtx, msg.String())

	// A notice blocks everything except dismissing it or force quitting
	if keyCtx == keybinds.ContextNotice {
		switch {
		case ok && action == keybinds.ActionDismissNotice:
			m.bindings.DismissNotice()
			return m.setFocus(FieldEditor)
		case ok && action == keybinds.ActionQuitForce:
			return m.quit()
		}
		return nil
	}

	if !ok {
		return m.updateFocused(msg)
	}

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return m.quit()

	case keybinds.ActionSubmitAnalysis:
		return m.submitAnalysis()

	case keybinds.ActionLoadHistory:
		return m.loadHistory()

	case keybinds.ActionClearFilters:
		return m.clearFilters()

	case keybinds.ActionFocusNext:
		return m.setFocus((m.focus + 1) % fieldCount)

	case keybinds.ActionFocusPrev:
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)

	case keybinds.ActionActivate:
		return m.activate()

	case keybinds.ActionSelectPrev:
		if m.focus == FieldSentiment {
			m.sentimentIndex = (m.sentimentIndex + len(sentimentOptions) - 1) % len(sentimentOptions)
		}

	case keybinds.ActionSelectNext:
		if m.focus == FieldSentiment {
			m.sentimentIndex = (m.sentimentIndex + 1) % len(sentimentOptions)
		}

	case keybinds.ActionScrollUp:
		m.outputView().HalfViewUp()

	case keybinds.ActionScrollDown:
		m.outputView().HalfViewDown()

	case keybinds.ActionCopySummary:
		return m.copySummary()

	case keybinds.ActionNoOp:
	}

	return nil
}

// activate presses the focused button or toggles the focused checkbox.
// The sentiment selector has no activation.
func (m *Model) activate() tea.Cmd {
	switch m.focus {
	case FieldIncludeKeywords:
		m.includeKeywords = !m.includeKeywords
	case FieldIncludeSentiment:
		m.includeSentiment = !m.includeSentiment
	case FieldAnalyze:
		return m.submitAnalysis()
	case FieldLoad, FieldApply:
		return m.loadHistory()
	case FieldClear:
		return m.clearFilters()
	}
	return nil
}

// setFocus moves focus and points the scroll keys at the matching panel
func (m *Model) setFocus(field Field) tea.Cmd {
	m.focus = field
	m.editor.Blur()
	m.search.Blur()
	m.keyword.Blur()

	if field < FieldSearch {
		m.activeOutput = flow.FlowAnalyze
	} else {
		m.activeOutput = flow.FlowHistory
	}

	switch field {
	case FieldEditor:
		return m.editor.Focus()
	case FieldSearch:
		return m.search.Focus()
	case FieldKeyword:
		return m.keyword.Focus()
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.cancel()
	return tea.Quit
}
