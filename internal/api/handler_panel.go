package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"schedule-console/internal/console"
	"schedule-console/internal/jobs"
	"schedule-console/internal/model"
)

type panelData struct {
	View       console.View
	Runs       []model.WorkflowRun
	BackendURL string
}

// pollParam marks the automatic reloads made while a generation is running.
const pollParam = "poll"

// GetPanel renders the control panel. Every load except the automatic reloads
// fires the connectivity probe.
func (h *Handler) GetPanel(c *gin.Context) {
	if c.Query(pollParam) == "" {
		go h.console.ProbeHealth(context.WithoutCancel(c.Request.Context()))
	}

	runs, err := h.recent(c.Request.Context(), h.recentRuns)
	if err != nil {
		log.Printf("panel: %v", err)
		runs = nil
	}

	c.HTML(http.StatusOK, "panel.html", panelData{
		View:       h.console.Snapshot(),
		Runs:       runs,
		BackendURL: h.backendURL,
	})
}

// PostSeed keeps the submitted range and queues the seed workflow.
func (h *Handler) PostSeed(c *gin.Context) {
	h.keepRange(c)
	h.dispatch(c, jobs.Job{Kind: model.WorkflowSeed})
}

// PostRefresh keeps the submitted range and queues the refresh workflow.
func (h *Handler) PostRefresh(c *gin.Context) {
	h.keepRange(c)
	h.dispatch(c, jobs.Job{Kind: model.WorkflowRefresh})
}

// keepRange stores the date inputs submitted along with a seed or refresh so
// the operator's edits survive the redirect.
func (h *Handler) keepRange(c *gin.Context) {
	start, hasStart := c.GetPostForm("start_date")
	end, hasEnd := c.GetPostForm("end_date")
	if hasStart && hasEnd {
		h.console.SetRange(model.DateRange{Start: start, End: end})
	}
}

// PostGenerate marks a generation as in progress before redirecting, so the
// next render already shows it, and leaves the calls to a worker.
func (h *Handler) PostGenerate(c *gin.Context) {
	var r model.DateRange
	if err := c.ShouldBind(&r); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run := h.console.BeginGenerate(r)
	if err := h.pool.Dispatch(c.Request.Context(), jobs.Job{Kind: model.WorkflowGenerate, Generation: run}); err != nil {
		// Dispatch only gives up once the request is done, so finish inline on
		// a context that outlives it; loading must not stay set.
		h.console.CompleteGenerate(context.WithoutCancel(c.Request.Context()), run)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) dispatch(c *gin.Context, job jobs.Job) {
	if err := h.pool.Dispatch(c.Request.Context(), job); err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "workflow queue unavailable"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}
