package flow

import (
	"fmt"

	"github.com/studiowebux/textlens/internal/analysis"
)

// ValidationError rejects input before any request is sent
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RenderError reports a display slot that was not bound at render time
type RenderError struct {
	Slot SlotName
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("display slot %q is not bound", string(e.Slot))
}

// failureMessage formats the single user-facing template shared by every
// flow failure
func failureMessage(action string, err error) string {
	return fmt.Sprintf("Failed to %s: %s", action, analysis.CleanLine(err.Error()))
}
