package flow

// Flow identifies one request/render/cleanup cycle
type Flow string

const (
	FlowAnalyze Flow = "analyze"
	FlowHistory Flow = "history"
)

// Status is the coarse state of a flow
type Status int

const (
	StatusIdle Status = iota
	StatusBusy
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusBusy:
		return "busy"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// ViewState is the state of one flow. Message is set only for StatusError.
type ViewState struct {
	Status  Status
	Message string
}

// Trigger labels
const (
	LabelAnalyze      = "Analyze Text"
	LabelAnalyzeBusy  = "Analyzing..."
	LabelLoadHistory  = "Load History"
	LabelApplyFilters = "Apply Filters"
	LabelHistoryBusy  = "Loading..."
)

// Control is a trigger that starts a flow
type Control struct {
	Label        string
	DefaultLabel string
	BusyLabel    string
	Disabled     bool
}

func newControl(label, busyLabel string) *Control {
	return &Control{Label: label, DefaultLabel: label, BusyLabel: busyLabel}
}

func (c *Control) lock() {
	c.Disabled = true
	c.Label = c.BusyLabel
}

func (c *Control) release() {
	c.Disabled = false
	c.Label = c.DefaultLabel
}

// Region is an output area owned by one flow
type Region struct {
	Visible bool
	Loading bool
	// Error holds the error panel text; non-empty means it replaced the content
	Error string
	// ScrollRequested asks the renderer to bring the region into view.
	// Renderers clear it once honoured.
	ScrollRequested bool
}

// SlotName names a display slot of the analysis result
type SlotName string

const (
	SlotSummary        SlotName = "summary"
	SlotTitle          SlotName = "title"
	SlotTopics         SlotName = "topics"
	SlotSentiment      SlotName = "sentiment"
	SlotKeywords       SlotName = "keywords"
	SlotProcessingTime SlotName = "processingTime"
)

// RequiredSlots lists every slot the analyze flow writes, in display order
var RequiredSlots = []SlotName{
	SlotSummary,
	SlotTitle,
	SlotTopics,
	SlotSentiment,
	SlotKeywords,
	SlotProcessingTime,
}

// Slot is one display field. Class carries a state class name, used by the
// sentiment slot.
type Slot struct {
	Text  string
	Class string
}
