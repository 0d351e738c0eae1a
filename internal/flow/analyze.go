package flow

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/studiowebux/textlens/internal/analysis"
	"github.com/studiowebux/textlens/internal/types"
)

// MessageEmptyText is the notice raised for blank input
const MessageEmptyText = "Please enter some text to analyze"

// MessageDisplayIncomplete replaces the result when the display cannot hold it
const MessageDisplayIncomplete = "Result display elements not found. Please restart textlens."

const actionAnalyze = "analyze text"

// Options are the analysis toggles of the form
type Options struct {
	IncludeKeywords  bool
	IncludeSentiment bool
}

// AnalysisOutcome is the result of RunAnalysis
type AnalysisOutcome struct {
	Result *types.AnalysisResult
	Err    error
}

// BeginAnalysis validates the input and enters Busy.
// Blank input raises a notice and returns a *ValidationError; the view is
// otherwise untouched and no request must be sent.
func (c *Controller) BeginAnalysis(raw string, opts Options) (types.AnalysisRequest, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		c.view.Notify(MessageEmptyText)
		return types.AnalysisRequest{}, &ValidationError{Message: MessageEmptyText}
	}

	c.view.EnterBusy(FlowAnalyze)
	c.view.RequestScroll(FlowAnalyze)

	c.log.WithFields(logrus.Fields{
		"chars":             len(text),
		"include_keywords":  opts.IncludeKeywords,
		"include_sentiment": opts.IncludeSentiment,
	}).Debug("Analysis started")

	return types.AnalysisRequest{
		Text:             text,
		IncludeKeywords:  opts.IncludeKeywords,
		IncludeSentiment: opts.IncludeSentiment,
	}, nil
}

// RunAnalysis performs the remote call. It does not touch the view.
func (c *Controller) RunAnalysis(ctx context.Context, req types.AnalysisRequest) AnalysisOutcome {
	result, err := c.svc.Analyze(ctx, req)
	return AnalysisOutcome{Result: result, Err: err}
}

// FinishAnalysis renders the outcome and leaves Busy on every path
func (c *Controller) FinishAnalysis(out AnalysisOutcome) error {
	defer c.view.ExitBusy(FlowAnalyze)

	if out.Err != nil {
		c.log.WithError(out.Err).Warn("Analysis failed")
		c.view.ShowError(FlowAnalyze, failureMessage(actionAnalyze, out.Err))
		return out.Err
	}

	view := analysis.NormalizeResult(out.Result)
	if err := c.view.RenderResult(view); err != nil {
		var renderErr *RenderError
		if errors.As(err, &renderErr) {
			c.log.WithField("slot", renderErr.Slot).Error("Result display is incomplete")
		} else {
			c.log.WithError(err).Error("Result could not be rendered")
		}
		c.view.ShowError(FlowAnalyze, MessageDisplayIncomplete)
		return err
	}

	c.log.WithField("sentiment", view.Sentiment).Debug("Analysis rendered")
	return nil
}

// SubmitAnalysis runs the whole analyze flow and returns the raw result
func (c *Controller) SubmitAnalysis(ctx context.Context, raw string, opts Options) (*types.AnalysisResult, error) {
	req, err := c.BeginAnalysis(raw, opts)
	if err != nil {
		return nil, err
	}
	out := c.RunAnalysis(ctx, req)
	if err := c.FinishAnalysis(out); err != nil {
		return nil, err
	}
	return out.Result, nil
}
