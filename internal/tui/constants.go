package tui

import "time"

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Form column width bounds
	FormWidthMin   = 36
	FormWidthMax   = 70
	FormWidthRatio = 45 // percent of the terminal width

	// Viewport Padding and Borders
	ViewportBorderWidth       = 2 // Width consumed by borders
	ViewportPaddingHorizontal = 2 // Horizontal padding (left + right)

	StatusBarHeight = 1
	PanelTitleLines = 1

	// Default widget sizes before the first WindowSizeMsg
	DefaultEditorWidth = 48
	DefaultOutputWidth = 60
	DefaultOutputLines = 10

	// Notice modal width
	NoticeWidth = 50

	// How long a status message stays in the status bar
	StatusTimeout = 3 * time.Second
)
