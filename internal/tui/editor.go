package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/textlens/internal/config"
)

// fitEditorHeight returns the number of rows needed to show value at the
// given width, kept within [config.MinEditorHeight, maxHeight]
func fitEditorHeight(value string, width, maxHeight int) int {
	if maxHeight < config.MinEditorHeight {
		maxHeight = config.MinEditorHeight
	}

	rows := 0
	for _, line := range strings.Split(value, "\n") {
		w := lipgloss.Width(line)
		if width > 0 && w > width {
			rows += (w + width - 1) / width
			continue
		}
		rows++
	}

	return max(config.MinEditorHeight, min(rows, maxHeight))
}

// resizeEditor grows or shrinks the text area to fit its content
func (m *Model) resizeEditor() {
	h := fitEditorHeight(m.editor.Value(), m.editor.Width(), m.maxEditorHeight)
	if h != m.editor.Height() {
		m.editor.SetHeight(h)
		m.layout()
	}
}
