package tui

import (
	"context"
	"io"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/studiowebux/textlens/internal/types"
)

// fakeService records calls and answers with canned values
type fakeService struct {
	mu        sync.Mutex
	requests  []types.AnalysisRequest
	filters   []types.HistoryFilter
	result    *types.AnalysisResult
	page      *types.HistoryPage
	err       error
	sawCancel bool
}

func (f *fakeService) Analyze(ctx context.Context, req types.AnalysisRequest) (*types.AnalysisResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	f.sawCancel = ctx.Err() != nil
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeService) QueryHistory(ctx context.Context, filter types.HistoryFilter) (*types.HistoryPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	if f.page == nil {
		return &types.HistoryPage{Filters: filter}, nil
	}
	return f.page, nil
}

// CreateTestModel creates a sized Model over svc with a recording clipboard
func CreateTestModel(t *testing.T, svc *fakeService) (*Model, *[]string) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	var copied []string
	m := New(Options{
		Service:          svc,
		Logger:           logger,
		Version:          "test-version",
		APIURL:           "http://localhost:8000",
		IncludeKeywords:  true,
		IncludeSentiment: true,
		MaxEditorHeight:  6,
		Clipboard: func(s string) error {
			copied = append(copied, s)
			return nil
		},
	})
	t.Cleanup(m.Close)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &m, &copied
}

// press sends one key to the model
func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and every command it batches, feeding flow messages back
// into the model. Ticks and other messages are dropped.
func drain(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(m, c)
		}
	case analysisDoneMsg, historyLoadedMsg:
		m.Update(msg)
	}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
