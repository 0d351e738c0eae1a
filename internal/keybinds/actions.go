package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal Context = "global" // Available everywhere
	ContextEditor Context = "editor" // Text area of the analyze form
	ContextFilter Context = "filter" // Search and keyword inputs
	ContextForm   Context = "form"   // Buttons, checkboxes and the sentiment selector
	ContextNotice Context = "notice" // Blocking notice
)

// Contexts lists every known context
var Contexts = []Context{
	ContextGlobal,
	ContextEditor,
	ContextFilter,
	ContextForm,
	ContextNotice,
}

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Flow triggers
	ActionSubmitAnalysis Action = "submit_analysis" // Send the text for analysis
	ActionLoadHistory    Action = "load_history"    // Query history with current filters
	ActionClearFilters   Action = "clear_filters"   // Reset filters and reload history

	// Focus
	ActionFocusNext Action = "focus_next" // Move focus to the next field
	ActionFocusPrev Action = "focus_prev" // Move focus to the previous field

	// Form controls
	ActionActivate   Action = "activate"    // Press a button or toggle a checkbox
	ActionSelectPrev Action = "select_prev" // Previous sentiment option
	ActionSelectNext Action = "select_next" // Next sentiment option

	// Output panes
	ActionScrollUp    Action = "scroll_up"    // Scroll the output up
	ActionScrollDown  Action = "scroll_down"  // Scroll the output down
	ActionCopySummary Action = "copy_summary" // Copy the last summary to clipboard

	// Notice
	ActionDismissNotice Action = "dismiss_notice" // Close the blocking notice

	ActionNoOp Action = "noop" // No operation (ignore key)
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:           {ActionQuit, "Quit", "Global"},
	ActionQuitForce:      {ActionQuitForce, "Force quit", "Global"},
	ActionSubmitAnalysis: {ActionSubmitAnalysis, "Analyze text", "Analyze"},
	ActionLoadHistory:    {ActionLoadHistory, "Load history", "History"},
	ActionClearFilters:   {ActionClearFilters, "Clear filters", "History"},
	ActionFocusNext:      {ActionFocusNext, "Next field", "Navigation"},
	ActionFocusPrev:      {ActionFocusPrev, "Previous field", "Navigation"},
	ActionActivate:       {ActionActivate, "Press or toggle", "Form"},
	ActionSelectPrev:     {ActionSelectPrev, "Previous option", "Form"},
	ActionSelectNext:     {ActionSelectNext, "Next option", "Form"},
	ActionScrollUp:       {ActionScrollUp, "Scroll up", "Output"},
	ActionScrollDown:     {ActionScrollDown, "Scroll down", "Output"},
	ActionCopySummary:    {ActionCopySummary, "Copy summary", "Output"},
	ActionDismissNotice:  {ActionDismissNotice, "Dismiss notice", "Notice"},
	ActionNoOp:           {ActionNoOp, "Ignore key", "Other"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether the action is handled by the application
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}

// IsGlobalAction returns true if the action is available in all contexts
func IsGlobalAction(action Action) bool {
	return action == ActionQuitForce
}
