package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/studiowebux/textlens/internal/config"
	"github.com/studiowebux/textlens/internal/flow"
	"github.com/studiowebux/textlens/internal/keybinds"
	"github.com/studiowebux/textlens/internal/version"
)

// Field is a focusable element of the form
type Field int

const (
	FieldEditor Field = iota
	FieldIncludeKeywords
	FieldIncludeSentiment
	FieldAnalyze
	FieldSearch
	FieldSentiment
	FieldKeyword
	FieldLoad
	FieldApply
	FieldClear
	fieldCount
)

// sentimentOptions are the values of the sentiment selector; "" means any
var sentimentOptions = []string{"", "positive", "neutral", "negative"}

// LabelClear is the label of the clear filters button
const LabelClear = "Clear"

// Options configures the TUI
type Options struct {
	Service  flow.Service
	Keybinds *keybinds.Registry
	Logger   *logrus.Logger

	Version string
	APIURL  string

	IncludeKeywords  bool
	IncludeSentiment bool
	MaxEditorHeight  int

	// CheckUpdates queries the release feed once at startup
	CheckUpdates bool
	// Clipboard receives copied text; defaults to the system clipboard
	Clipboard func(string) error
}

// Model represents the TUI state
type Model struct {
	ctrl     *flow.Controller
	bindings *flow.Bindings
	keybinds *keybinds.Registry
	log      *logrus.Logger

	// Root context of every remote call, cancelled on quit
	ctx    context.Context
	cancel context.CancelFunc

	version       string
	apiURL        string
	checkUpdates  bool
	latestVersion string
	copy          func(string) error

	// Analyze form
	editor           textarea.Model
	maxEditorHeight  int
	includeKeywords  bool
	includeSentiment bool

	// History filters
	search         textinput.Model
	keyword        textinput.Model
	sentimentIndex int

	// Output
	resultView  viewport.Model
	historyView viewport.Model
	spinner     spinner.Model
	// activeOutput is the panel scrolled by scroll_up/scroll_down
	activeOutput flow.Flow

	focus Field

	// UI state
	width     int
	height    int
	statusMsg string
	errorMsg  string
	quitting  bool
}

// New creates a new TUI model
func New(opts Options) Model {
	if opts.Keybinds == nil {
		opts.Keybinds = keybinds.NewDefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.MaxEditorHeight < config.MinEditorHeight {
		opts.MaxEditorHeight = config.Defaults().MaxEditorHeight
	}

	editor := textarea.New()
	editor.Placeholder = "Enter text to analyze..."
	editor.Prompt = ""
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.SetWidth(DefaultEditorWidth)
	editor.SetHeight(config.MinEditorHeight)
	editor.Focus()

	search := textinput.New()
	search.Placeholder = "Search in summaries"
	search.Prompt = ""

	keyword := textinput.New()
	keyword.Placeholder = "Keyword"
	keyword.Prompt = ""

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = lipgloss.NewStyle().Foreground(colorYellow)

	bindings := flow.NewBindings()
	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		ctrl:             flow.NewController(opts.Service, bindings, opts.Logger),
		bindings:         bindings,
		keybinds:         opts.Keybinds,
		log:              opts.Logger,
		ctx:              ctx,
		cancel:           cancel,
		version:          opts.Version,
		apiURL:           opts.APIURL,
		checkUpdates:     opts.CheckUpdates,
		copy:             opts.Clipboard,
		editor:           editor,
		maxEditorHeight:  opts.MaxEditorHeight,
		includeKeywords:  opts.IncludeKeywords,
		includeSentiment: opts.IncludeSentiment,
		search:           search,
		keyword:          keyword,
		resultView:       viewport.New(DefaultOutputWidth, DefaultOutputLines),
		historyView:      viewport.New(DefaultOutputWidth, DefaultOutputLines),
		spinner:          spin,
		activeOutput:     flow.FlowAnalyze,
		focus:            FieldEditor,
	}
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.checkUpdates {
		cmds = append(cmds, checkVersionCmd(m.ctx, m.version))
	}
	return tea.Batch(cmds...)
}

// Close cancels every in-flight request
func (m *Model) Close() {
	m.cancel()
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case analysisDoneMsg:
		if err := m.ctrl.FinishAnalysis(msg.outcome); err != nil {
			m.log.WithError(err).Debug("Analysis ended with an error panel")
		}
		m.refreshViews()

	case historyLoadedMsg:
		if err := m.ctrl.FinishHistory(msg.outcome); err != nil {
			m.log.WithError(err).Debug("History ended with an error panel")
		}
		m.refreshViews()

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshViews()

	case versionCheckMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Debug("Version check failed")
		} else if msg.update.Available {
			m.latestVersion = msg.update.Latest
		}

	case clearStatusMsg:
		m.statusMsg = ""
		m.errorMsg = ""

	default:
		cmd = m.updateFocused(msg)
	}

	return m, cmd
}

// busy reports whether any flow is waiting on the network
func (m *Model) busy() bool {
	return m.bindings.State(flow.FlowAnalyze).Status == flow.StatusBusy ||
		m.bindings.State(flow.FlowHistory).Status == flow.StatusBusy
}

// updateFocused forwards a message to the focused text widget
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case FieldEditor:
		m.editor, cmd = m.editor.Update(msg)
		m.resizeEditor()
	case FieldSearch:
		m.search, cmd = m.search.Update(msg)
	case FieldKeyword:
		m.keyword, cmd = m.keyword.Update(msg)
	}
	return cmd
}

// filterValues returns the raw contents of the filter fields
func (m *Model) filterValues() flow.FilterValues {
	return flow.FilterValues{
		Search:    m.search.Value(),
		Sentiment: sentimentOptions[m.sentimentIndex],
		Keyword:   m.keyword.Value(),
	}
}

// Custom message types
type analysisDoneMsg struct {
	outcome flow.AnalysisOutcome
}

type historyLoadedMsg struct {
	outcome flow.HistoryOutcome
}

type versionCheckMsg struct {
	update version.Update
	err    error
}

type clearStatusMsg struct{}
