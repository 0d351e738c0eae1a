package flow

import (
	"sync"

	"github.com/studiowebux/textlens/internal/analysis"
)

// Presenter is the view side of the flows. Bindings is the implementation;
// tests wrap it to observe calls.
type Presenter interface {
	EnterBusy(f Flow)
	ExitBusy(f Flow)
	ShowError(f Flow, message string)
	RequestScroll(f Flow)
	RenderResult(view analysis.ResultView) error
	RenderHistory(view analysis.HistoryView)
	Notify(message string)
}

// Bindings is the set of view elements the flows write into. It is built
// once at startup and handed to the Controller; front ends read it to draw.
type Bindings struct {
	mu sync.RWMutex

	analyzeButton *Control
	loadButton    *Control
	applyButton   *Control

	result  Region
	history Region

	slots       map[SlotName]*Slot
	confidence  string
	historyView analysis.HistoryView

	states map[Flow]ViewState
	notice string
}

// NewBindings binds every required slot
func NewBindings() *Bindings {
	return NewBindingsWithSlots(RequiredSlots)
}

// NewBindingsWithSlots binds only the named slots
func NewBindingsWithSlots(slots []SlotName) *Bindings {
	b := &Bindings{
		analyzeButton: newControl(LabelAnalyze, LabelAnalyzeBusy),
		loadButton:    newControl(LabelLoadHistory, LabelHistoryBusy),
		applyButton:   newControl(LabelApplyFilters, LabelHistoryBusy),
		slots:         make(map[SlotName]*Slot, len(slots)),
		states: map[Flow]ViewState{
			FlowAnalyze: {Status: StatusIdle},
			FlowHistory: {Status: StatusIdle},
		},
	}
	for _, name := range slots {
		b.slots[name] = &Slot{}
	}
	return b
}

// EnterBusy locks the flow's triggers and shows its loading indicator.
// Any earlier error panel is dropped; the analyze flow also hides the
// previous result.
func (b *Bindings) EnterBusy(f Flow) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch f {
	case FlowAnalyze:
		b.analyzeButton.lock()
		b.result.Loading = true
		b.result.Visible = false
		b.result.Error = ""
	case FlowHistory:
		b.loadButton.lock()
		b.applyButton.lock()
		b.history.Loading = true
		b.history.Error = ""
	}
	b.states[f] = ViewState{Status: StatusBusy}
}

// ExitBusy releases the flow's triggers whatever state it ended in
func (b *Bindings) ExitBusy(f Flow) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch f {
	case FlowAnalyze:
		b.analyzeButton.release()
		b.result.Loading = false
	case FlowHistory:
		b.loadButton.release()
		b.applyButton.release()
		b.history.Loading = false
	}
	b.states[f] = ViewState{Status: StatusIdle}
}

// ShowError replaces the flow's output region with an error panel
func (b *Bindings) ShowError(f Flow, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	region := b.region(f)
	region.Error = message
	region.Visible = true
	region.ScrollRequested = true
	if f == FlowHistory {
		b.historyView = analysis.HistoryView{}
	}
	b.states[f] = ViewState{Status: StatusError, Message: message}
}

// RequestScroll asks the renderer to bring the flow's region into view
func (b *Bindings) RequestScroll(f Flow) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.region(f).ScrollRequested = true
}

// RenderResult writes a normalized result into the display slots.
// Nothing is written unless every required slot is bound.
func (b *Bindings) RenderResult(view analysis.ResultView) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, name := range RequiredSlots {
		if _, ok := b.slots[name]; !ok {
			return &RenderError{Slot: name}
		}
	}

	b.slots[SlotSummary].Text = view.Summary
	b.slots[SlotTitle].Text = view.Title
	b.slots[SlotTopics].Text = view.Topics
	b.slots[SlotSentiment].Text = view.SentimentLabel
	b.slots[SlotSentiment].Class = view.SentimentClass
	b.slots[SlotKeywords].Text = view.Keywords
	b.slots[SlotProcessingTime].Text = view.ProcessingTime
	b.confidence = view.Confidence

	b.result.Error = ""
	b.result.Visible = true
	return nil
}

// RenderHistory replaces the history list
func (b *Bindings) RenderHistory(view analysis.HistoryView) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.historyView = view
	b.history.Error = ""
	b.history.Visible = true
}

// Notify raises a blocking notice; the front end must dismiss it
func (b *Bindings) Notify(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notice = message
}

// Notice returns the pending notice, if any
func (b *Bindings) Notice() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.notice
}

// DismissNotice clears the pending notice
func (b *Bindings) DismissNotice() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notice = ""
}

// State returns the flow's current view state
func (b *Bindings) State(f Flow) ViewState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.states[f]
}

// AnalyzeButton returns a copy of the analyze trigger
func (b *Bindings) AnalyzeButton() Control {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return *b.analyzeButton
}

// LoadButton returns a copy of the load-history trigger
func (b *Bindings) LoadButton() Control {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return *b.loadButton
}

// ApplyButton returns a copy of the apply-filters trigger
func (b *Bindings) ApplyButton() Control {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return *b.applyButton
}

// ResultRegion returns a copy of the analysis result region
func (b *Bindings) ResultRegion() Region {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.result
}

// HistoryRegion returns a copy of the history list region
func (b *Bindings) HistoryRegion() Region {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history
}

// Slot returns a copy of a display slot and whether it is bound
func (b *Bindings) Slot(name SlotName) (Slot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	slot, ok := b.slots[name]
	if !ok {
		return Slot{}, false
	}
	return *slot, true
}

// Confidence returns the optional confidence line of the last result
func (b *Bindings) Confidence() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.confidence
}

// HistoryView returns the last rendered history list
func (b *Bindings) HistoryView() analysis.HistoryView {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.historyView
}

// ConsumeScroll reports and clears a pending scroll request for the flow
func (b *Bindings) ConsumeScroll(f Flow) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	region := b.region(f)
	requested := region.ScrollRequested
	region.ScrollRequested = false
	return requested
}

func (b *Bindings) region(f Flow) *Region {
	if f == FlowHistory {
		return &b.history
	}
	return &b.result
}
