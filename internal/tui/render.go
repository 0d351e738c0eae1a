package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/textlens/internal/analysis"
	"github.com/studiowebux/textlens/internal/flow"
	"github.com/studiowebux/textlens/internal/keybinds"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleLabel = lipgloss.NewStyle().Bold(true)

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	styleErrorPanel = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorRed).
			Foreground(colorRed).
			Padding(0, 1)
)

// sentimentStyles colors a sentiment by its state class
var sentimentStyles = map[string]lipgloss.Style{
	analysis.SentimentClassPrefix + "positive": styleSuccess,
	analysis.SentimentClassPrefix + "negative": styleError,
	analysis.SentimentClassPrefix + "neutral":  styleWarning,
}

func sentimentStyle(class string) lipgloss.Style {
	if s, ok := sentimentStyles[class]; ok {
		return s
	}
	return styleSubtle
}

// formWidth returns the outer width of the form column
func (m *Model) formWidth() int {
	if m.width == 0 {
		return DefaultEditorWidth + ViewportBorderWidth + ViewportPaddingHorizontal
	}
	return max(FormWidthMin, min(m.width*FormWidthRatio/100, FormWidthMax))
}

// layout sizes the widgets for the current window
func (m *Model) layout() {
	if m.width == 0 {
		return
	}

	inner := m.formWidth() - ViewportBorderWidth - ViewportPaddingHorizontal
	m.editor.SetWidth(inner)
	m.search.Width = inner - len("Search:    ") - 1
	m.keyword.Width = inner - len("Keyword:   ") - 1

	outputWidth := m.width - m.formWidth() - ViewportBorderWidth - ViewportPaddingHorizontal
	outputHeight := m.height - StatusBarHeight
	panelHeight := outputHeight/2 - ViewportBorderWidth - PanelTitleLines

	m.resultView.Width = max(outputWidth, 10)
	m.resultView.Height = max(panelHeight, 1)
	m.historyView.Width = max(outputWidth, 10)
	m.historyView.Height = max(outputHeight-outputHeight/2-ViewportBorderWidth-PanelTitleLines, 1)

	m.refreshViews()
}

// outputView returns the panel the scroll keys act on
func (m *Model) outputView() *viewport.Model {
	if m.activeOutput == flow.FlowHistory {
		return &m.historyView
	}
	return &m.resultView
}

// refreshViews redraws both output panels from the bindings and honours
// pending scroll requests
func (m *Model) refreshViews() {
	m.resultView.SetContent(m.renderResult(m.resultView.Width))
	m.historyView.SetContent(m.renderHistory(m.historyView.Width))

	if m.bindings.ConsumeScroll(flow.FlowAnalyze) {
		m.activeOutput = flow.FlowAnalyze
		m.resultView.GotoTop()
	}
	if m.bindings.ConsumeScroll(flow.FlowHistory) {
		m.activeOutput = flow.FlowHistory
		m.historyView.GotoTop()
	}
}

// renderResult renders the content of the result panel
func (m *Model) renderResult(width int) string {
	region := m.bindings.ResultRegion()
	wrap := lipgloss.NewStyle().Width(width)

	switch {
	case region.Loading:
		return m.spinner.View() + " " + flow.LabelAnalyzeBusy
	case region.Error != "":
		return styleErrorPanel.Width(max(width-ViewportBorderWidth, 1)).Render(region.Error)
	case !region.Visible:
		return styleSubtle.Render("Results will appear here.")
	}

	slot := func(name flow.SlotName) flow.Slot {
		s, _ := m.bindings.Slot(name)
		return s
	}
	sentiment := slot(flow.SlotSentiment)

	var b strings.Builder
	b.WriteString(styleTitle.Render(slot(flow.SlotTitle).Text) + "\n\n")
	b.WriteString(wrap.Render(slot(flow.SlotSummary).Text) + "\n\n")
	b.WriteString(styleLabel.Render("Topics: ") + wrap.Render(slot(flow.SlotTopics).Text) + "\n")
	b.WriteString(styleLabel.Render("Sentiment: ") + sentimentStyle(sentiment.Class).Render(sentiment.Text) + "\n")
	b.WriteString(styleLabel.Render("Keywords: ") + wrap.Render(slot(flow.SlotKeywords).Text) + "\n\n")

	footer := slot(flow.SlotProcessingTime).Text
	if confidence := m.bindings.Confidence(); confidence != "" {
		footer += " | " + confidence
	}
	b.WriteString(styleSubtle.Render(footer))
	return b.String()
}

// renderHistory renders the content of the history panel
func (m *Model) renderHistory(width int) string {
	region := m.bindings.HistoryRegion()
	wrap := lipgloss.NewStyle().Width(width)

	switch {
	case region.Loading:
		return m.spinner.View() + " " + flow.LabelHistoryBusy
	case region.Error != "":
		return styleErrorPanel.Width(max(width-ViewportBorderWidth, 1)).Render(region.Error)
	case !region.Visible:
		return styleSubtle.Render(fmt.Sprintf("Press %s to load history.",
			m.keybinds.GetBindingString(keybinds.ContextGlobal, keybinds.ActionLoadHistory)))
	}

	view := m.bindings.HistoryView()
	if view.Empty() {
		return wrap.Render(view.Placeholder)
	}

	var b strings.Builder
	if view.Header != "" {
		b.WriteString(styleWarning.Render(wrap.Render(view.Header)) + "\n\n")
	}
	for i, e := range view.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styleTitle.Render(fmt.Sprintf("%d. %s", i+1, e.Title)) + "\n")
		b.WriteString(styleSubtle.Render(e.Date) + "\n")
		b.WriteString(wrap.Render(e.Summary) + "\n")

		meta := fmt.Sprintf("Sentiment: %s | Topics: %s | Keywords: %s",
			sentimentStyle(analysis.SentimentClass(e.Sentiment)).Render(e.Sentiment), e.Topics, e.Keywords)
		if e.ProcessingTime != "" {
			meta += " | " + e.ProcessingTime
		}
		b.WriteString(wrap.Render(meta) + "\n")
	}
	return b.String()
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}

	if notice := m.bindings.Notice(); notice != "" {
		return m.renderNotice(notice)
	}

	form := stylePanel.Width(m.formWidth() - ViewportBorderWidth).Render(m.renderForm())

	outputWidth := m.width - m.formWidth() - ViewportBorderWidth
	result := m.renderPanel("Result", m.resultView, outputWidth, m.activeOutput == flow.FlowAnalyze)
	history := m.renderPanel("History", m.historyView, outputWidth, m.activeOutput == flow.FlowHistory)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		form,
		lipgloss.JoinVertical(lipgloss.Left, result, history),
	)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m Model) renderPanel(title string, view viewport.Model, width int, active bool) string {
	border := colorGray
	if active {
		border = colorCyan
	}
	return stylePanel.
		BorderForeground(border).
		Width(max(width-ViewportBorderWidth, 1)).
		Render(styleTitle.Render(title) + "\n" + view.View())
}

// renderForm renders the analyze form and the history filters
func (m Model) renderForm() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Analyze") + "\n")
	b.WriteString(m.editor.View() + "\n")
	b.WriteString(m.renderCheckbox(FieldIncludeKeywords, "Include keywords", m.includeKeywords) + "\n")
	b.WriteString(m.renderCheckbox(FieldIncludeSentiment, "Include sentiment", m.includeSentiment) + "\n")
	b.WriteString(m.renderButton(FieldAnalyze, m.bindings.AnalyzeButton()) + "\n\n")

	b.WriteString(styleTitle.Render("History") + "\n")
	b.WriteString(m.renderLabel(FieldSearch, "Search:    ") + m.search.View() + "\n")
	b.WriteString(m.renderLabel(FieldSentiment, "Sentiment: ") + m.renderSelector() + "\n")
	b.WriteString(m.renderLabel(FieldKeyword, "Keyword:   ") + m.keyword.View() + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderButton(FieldLoad, m.bindings.LoadButton()), " ",
		m.renderButton(FieldApply, m.bindings.ApplyButton()), " ",
		m.renderButton(FieldClear, flow.Control{Label: LabelClear, Disabled: m.bindings.LoadButton().Disabled}),
	))

	return b.String()
}

func (m Model) renderLabel(field Field, label string) string {
	if m.focus == field {
		return styleSelected.Render(label)
	}
	return styleLabel.Render(label)
}

func (m Model) renderCheckbox(field Field, label string, checked bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	text := box + " " + label
	if m.focus == field {
		return styleSelected.Render(text)
	}
	return text
}

func (m Model) renderButton(field Field, control flow.Control) string {
	text := "[ " + control.Label + " ]"
	switch {
	case control.Disabled:
		return styleSubtle.Render(text)
	case m.focus == field:
		return styleSelected.Render(text)
	default:
		return text
	}
}

func (m Model) renderSelector() string {
	value := sentimentOptions[m.sentimentIndex]
	if value == "" {
		value = "any"
	}
	text := "< " + value + " >"
	if m.focus == FieldSentiment {
		return styleSelected.Render(text)
	}
	return text
}

// renderNotice renders the blocking notice over an empty screen
func (m Model) renderNotice(notice string) string {
	hint := styleSubtle.Render(fmt.Sprintf("Press %s to continue",
		m.keybinds.GetBindingString(keybinds.ContextNotice, keybinds.ActionDismissNotice)))
	box := stylePanel.
		BorderForeground(colorYellow).
		Width(NoticeWidth).
		Render(styleWarning.Render(notice) + "\n\n" + hint)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderStatusBar renders the bottom status line
func (m Model) renderStatusBar() string {
	left := "textlens " + m.version
	if m.apiURL != "" {
		left += " • " + m.apiURL
	}
	if m.latestVersion != "" {
		left += " " + styleWarning.Render("(update available: "+m.latestVersion+")")
	}

	var right string
	switch {
	case m.errorMsg != "":
		right = styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		right = styleSuccess.Render(m.statusMsg)
	default:
		right = styleSubtle.Render(fmt.Sprintf("%s analyze | %s history | %s copy | %s quit",
			m.keybinds.GetBindingString(keybinds.ContextGlobal, keybinds.ActionSubmitAnalysis),
			m.keybinds.GetBindingString(keybinds.ContextGlobal, keybinds.ActionLoadHistory),
			m.keybinds.GetBindingString(keybinds.ContextGlobal, keybinds.ActionCopySummary),
			m.keybinds.GetBindingString(keybinds.ContextGlobal, keybinds.ActionQuitForce)))
	}

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}
	return left + strings.Repeat(" ", spacing) + right
}
