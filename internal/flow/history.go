package flow

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/studiowebux/textlens/internal/analysis"
	"github.com/studiowebux/textlens/internal/types"
)

const actionHistory = "load history"

// FilterValues are the raw contents of the three filter fields
type FilterValues struct {
	Search    string
	Sentiment string
	Keyword   string
}

// HistoryOutcome is the result of RunHistory
type HistoryOutcome struct {
	Page *types.HistoryPage
	Err  error
}

// BeginHistory projects the filter fields and enters Busy for both history
// triggers
func (c *Controller) BeginHistory(values FilterValues) types.HistoryFilter {
	filter := analysis.ProjectFilter(values.Search, values.Sentiment, values.Keyword)
	c.view.EnterBusy(FlowHistory)

	c.log.WithFields(logrus.Fields{
		"search":    filter.Search,
		"sentiment": filter.Sentiment,
		"keyword":   filter.Keyword,
	}).Debug("History query started")
	return filter
}

// RunHistory performs the remote query. It does not touch the view.
func (c *Controller) RunHistory(ctx context.Context, filter types.HistoryFilter) HistoryOutcome {
	page, err := c.svc.QueryHistory(ctx, filter)
	return HistoryOutcome{Page: page, Err: err}
}

// FinishHistory renders the list or the error panel and leaves Busy
func (c *Controller) FinishHistory(out HistoryOutcome) error {
	defer c.view.ExitBusy(FlowHistory)

	if out.Err != nil {
		c.log.WithError(out.Err).Warn("History query failed")
		c.view.ShowError(FlowHistory, failureMessage(actionHistory, out.Err))
		return out.Err
	}

	view := analysis.BuildHistoryView(out.Page)
	c.view.RenderHistory(view)
	c.log.WithField("entries", len(view.Entries)).Debug("History rendered")
	return nil
}

// LoadHistory runs the whole history flow and returns the raw page
func (c *Controller) LoadHistory(ctx context.Context, values FilterValues) (*types.HistoryPage, error) {
	filter := c.BeginHistory(values)
	out := c.RunHistory(ctx, filter)
	if err := c.FinishHistory(out); err != nil {
		return nil, err
	}
	return out.Page, nil
}

// ClearFilters empties the filter fields and reloads the unfiltered history
func (c *Controller) ClearFilters(ctx context.Context, values *FilterValues) (*types.HistoryPage, error) {
	*values = FilterValues{}
	return c.LoadHistory(ctx, *values)
}
