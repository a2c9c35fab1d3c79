package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"schedule-console/internal/console"
	"schedule-console/internal/model"
	"schedule-console/internal/store"
)

// GetState returns the current view.
func (h *Handler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.console.Snapshot())
}

// PutRange replaces the date range input without generating.
func (h *Handler) PutRange(c *gin.Context) {
	var r model.DateRange
	if err := c.ShouldBindJSON(&r); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.console.SetRange(r)
	c.JSON(http.StatusOK, h.console.Snapshot())
}

// SeedSync runs the seed workflow and returns the resulting view.
func (h *Handler) SeedSync(c *gin.Context) {
	h.respond(c, h.console.SeedDemoData(c.Request.Context()))
}

// RefreshSync runs the refresh workflow and returns the resulting view.
func (h *Handler) RefreshSync(c *gin.Context) {
	h.respond(c, h.console.Refresh(c.Request.Context()))
}

// GenerateSync runs the generation workflow. An empty body generates for the
// range currently held in the view; fields are passed through unvalidated.
func (h *Handler) GenerateSync(c *gin.Context) {
	r := h.console.Snapshot().Range
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&r); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	h.respond(c, h.console.GenerateSchedule(c.Request.Context(), r))
}

// respond writes the view with 200, or 502 when the workflow failed.
func (h *Handler) respond(c *gin.Context, err error) {
	status := http.StatusOK
	if err != nil {
		status = http.StatusBadGateway
	}
	c.JSON(status, h.console.Snapshot())
}

// GetRuns returns the most recent workflow runs.
func (h *Handler) GetRuns(c *gin.Context) {
	limit := h.recentRuns
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, store.MaxRecentRuns)
	}

	runs, err := h.recent(c.Request.Context(), limit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve runs"})
		return
	}
	c.JSON(http.StatusOK, runs)
}

// GetDemo returns the dataset the seed workflow creates.
func GetDemo(c *gin.Context) {
	c.JSON(http.StatusOK, console.Demo())
}
