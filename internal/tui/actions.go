package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/textlens/internal/flow"
	"github.com/studiowebux/textlens/internal/version"
)

// submitAnalysis starts the analyze flow unless it is already running.
// Blank text raises the notice instead of a request.
func (m *Model) submitAnalysis() tea.Cmd {
	if m.bindings.AnalyzeButton().Disabled {
		return nil
	}

	req, err := m.ctrl.BeginAnalysis(m.editor.Value(), flow.Options{
		IncludeKeywords:  m.includeKeywords,
		IncludeSentiment: m.includeSentiment,
	})
	if err != nil {
		return nil
	}
	m.refreshViews()

	ctx, ctrl := m.ctx, m.ctrl
	return tea.Batch(
		func() tea.Msg {
			return analysisDoneMsg{outcome: ctrl.RunAnalysis(ctx, req)}
		},
		m.spinner.Tick,
	)
}

// loadHistory queries history with the current filter fields
func (m *Model) loadHistory() tea.Cmd {
	if m.bindings.LoadButton().Disabled {
		return nil
	}

	filter := m.ctrl.BeginHistory(m.filterValues())
	m.activeOutput = flow.FlowHistory
	m.refreshViews()

	ctx, ctrl := m.ctx, m.ctrl
	return tea.Batch(
		func() tea.Msg {
			return historyLoadedMsg{outcome: ctrl.RunHistory(ctx, filter)}
		},
		m.spinner.Tick,
	)
}

// clearFilters empties the three filter fields and reloads history
func (m *Model) clearFilters() tea.Cmd {
	if m.bindings.LoadButton().Disabled {
		return nil
	}

	m.search.SetValue("")
	m.keyword.SetValue("")
	m.sentimentIndex = 0
	return m.loadHistory()
}

// copySummary copies the displayed summary to the clipboard
func (m *Model) copySummary() tea.Cmd {
	region := m.bindings.ResultRegion()
	if !region.Visible || region.Error != "" {
		return m.setErrorMessage("No summary to copy")
	}

	summary, _ := m.bindings.Slot(flow.SlotSummary)
	if err := m.copy(summary.Text); err != nil {
		m.log.WithError(err).Warn("Clipboard write failed")
		return m.setErrorMessage(fmt.Sprintf("Failed to copy to clipboard: %v", err))
	}
	return m.setStatusMessage("Summary copied to clipboard")
}

func checkVersionCmd(ctx context.Context, current string) tea.Cmd {
	return func() tea.Msg {
		update, err := version.NewChecker().CheckForUpdate(ctx, current)
		return versionCheckMsg{update: update, err: err}
	}
}

// Helper methods for setting messages with a timeout
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = msg
	m.errorMsg = ""
	return clearStatusAfter(StatusTimeout)
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.errorMsg = msg
	m.statusMsg = ""
	return clearStatusAfter(StatusTimeout)
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
