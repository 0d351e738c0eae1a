package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/textlens/internal/analysis"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

// errPickCancelled is returned when the picker is closed without a choice
var errPickCancelled = fmt.Errorf("selection cancelled")

type entryItem struct {
	entry analysis.EntryView
	index int
}

func (i entryItem) FilterValue() string {
	return i.entry.Title + " " + i.entry.Keywords + " " + i.entry.Topics
}

func (i entryItem) Title() string {
	return fmt.Sprintf("%s  %s  [%s]", i.entry.Date, i.entry.Title, i.entry.Sentiment)
}

func (i entryItem) Description() string { return "" }

type pickerModel struct {
	list     list.Model
	choice   int
	quitting bool
}

func newPickerModel(view analysis.HistoryView) pickerModel {
	items := make([]list.Item, 0, len(view.Entries))
	for i, e := range view.Entries {
		items = append(items, entryItem{entry: e, index: i})
	}

	const defaultWidth = 80
	const listHeight = 14

	l := list.New(items, itemDelegate{}, defaultWidth, listHeight)
	l.Title = "Select an analysis"
	if view.Header != "" {
		l.Title = view.Header
	}
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return pickerModel{list: l, choice: -1}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		// Let the list own keys while its filter prompt is open
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			m.choice = -1
			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(entryItem); ok {
				m.choice = i.index
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("↑/↓: navigate • /: filter • enter: show • q/ctrl+c: cancel")
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

// pickEntry shows an interactive list of history entries and returns the
// index of the chosen one
func pickEntry(view analysis.HistoryView) (int, error) {
	p := tea.NewProgram(newPickerModel(view))
	finalModel, err := p.Run()
	if err != nil {
		return -1, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(pickerModel)
	if result.choice < 0 {
		return -1, errPickCancelled
	}
	return result.choice, nil
}

// itemDelegate is a custom list item delegate
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(entryItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", i.index+1, i.Title())

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}
