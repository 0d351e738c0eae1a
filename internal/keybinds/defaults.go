package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerEditorBindings(r)
	registerFilterBindings(r)
	registerFormBindings(r)
	registerNoticeBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "ctrl+s", ActionSubmitAnalysis)
	r.Register(ContextGlobal, "ctrl+l", ActionLoadHistory)
	r.Register(ContextGlobal, "ctrl+r", ActionClearFilters)
	r.Register(ContextGlobal, "ctrl+y", ActionCopySummary)
	r.Register(ContextGlobal, "tab", ActionFocusNext)
	r.Register(ContextGlobal, "shift+tab", ActionFocusPrev)
	r.Register(ContextGlobal, "pgup", ActionScrollUp)
	r.Register(ContextGlobal, "pgdown", ActionScrollDown)
}

// registerEditorBindings leaves enter to the text area, where it inserts a
// newline
func registerEditorBindings(r *Registry) {
	r.Register(ContextEditor, "alt+enter", ActionSubmitAnalysis)
}

// registerFilterBindings submits the history query from the text filters
func registerFilterBindings(r *Registry) {
	r.Register(ContextFilter, "enter", ActionLoadHistory)
}

// registerFormBindings covers buttons, checkboxes and the selector
func registerFormBindings(r *Registry) {
	r.RegisterMultiple(ContextForm, []string{"enter", " "}, ActionActivate)
	r.RegisterMultiple(ContextForm, []string{"left", "h"}, ActionSelectPrev)
	r.RegisterMultiple(ContextForm, []string{"right", "l"}, ActionSelectNext)
	r.RegisterMultiple(ContextForm, []string{"up", "k"}, ActionFocusPrev)
	r.RegisterMultiple(ContextForm, []string{"down", "j"}, ActionFocusNext)
	r.Register(ContextForm, "q", ActionQuit)
}

// registerNoticeBindings closes the blocking notice
func registerNoticeBindings(r *Registry) {
	r.RegisterMultiple(ContextNotice, []string{"enter", "esc", " "}, ActionDismissNotice)
}
