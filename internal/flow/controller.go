package flow

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/studiowebux/textlens/internal/types"
)

// Service is the remote side of the flows, satisfied by *client.Client
type Service interface {
	Analyze(ctx context.Context, req types.AnalysisRequest) (*types.AnalysisResult, error)
	QueryHistory(ctx context.Context, filter types.HistoryFilter) (*types.HistoryPage, error)
}

// Controller drives the analyze and history flows against a Presenter.
//
// Each flow is split into Begin, Run and Finish so an event loop can run the
// network call off its own thread: Begin and Finish mutate the view, Run
// never does. The sequential SubmitAnalysis and LoadHistory compose the three.
type Controller struct {
	svc  Service
	view Presenter
	log  *logrus.Entry
}

// NewController creates a controller; a nil logger falls back to the
// standard logrus logger
func NewController(svc Service, view Presenter, logger *logrus.Logger) *Controller {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Controller{
		svc:  svc,
		view: view,
		log:  logger.WithField("component", "flow"),
	}
}
