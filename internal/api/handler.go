package api

import (
	"context"

	"schedule-console/internal/console"
	"schedule-console/internal/jobs"
	"schedule-console/internal/model"
)

// Dispatcher queues workflow jobs for background execution.
type Dispatcher interface {
	Dispatch(ctx context.Context, job jobs.Job) error
}

// RunLister reads the workflow run history.
type RunLister interface {
	RecentRuns(ctx context.Context, limit int) ([]model.WorkflowRun, error)
}

// Handler holds shared dependencies for the panel and API handlers.
type Handler struct {
	console    *console.Console
	pool       Dispatcher
	runs       RunLister
	recentRuns int
	backendURL string
}

// NewHandler creates a new handler. runs may be nil when history is disabled.
func NewHandler(c *console.Console, pool Dispatcher, runs RunLister, recentRuns int, backendURL string) *Handler {
	return &Handler{
		console:    c,
		pool:       pool,
		runs:       runs,
		recentRuns: recentRuns,
		backendURL: backendURL,
	}
}

func (h *Handler) recent(ctx context.Context, limit int) ([]model.WorkflowRun, error) {
	if h.runs == nil {
		return []model.WorkflowRun{}, nil
	}
	return h.runs.RecentRuns(ctx, limit)
}
