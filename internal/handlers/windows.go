package handlers

import (
	"errors"
	"net/http"

	"mission_awareness/internal/models"
	"mission_awareness/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusHealthy = "healthy"

	errBuildChronological = "failed to build chronological window"
	errBuildStreaming     = "failed to build streaming windows"
	errActivitiesRequired = "activities is required"
	errInvalidBodyPref    = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", requestID(c)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Maps service failures: validation errors become 400 with the full message,
// anything else becomes 500 with a generic one.
func (h *Handler) respondServiceError(c *gin.Context, userMsg, logKey string, err error, kv ...interface{}) {
	if errors.Is(err, service.ErrValidation) {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), logKey, err, kv...)
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, kv...)
}

// Request DTO shared by both window-building endpoints.
type buildRequest struct {
	Activities []models.ActivityRecord `json:"activities"`
}

// BuildWindowsRequest is an exported model for Swagger docs of the window payloads.
type BuildWindowsRequest struct {
	// Activities to process, in submission order.
	Activities []models.ActivityRecord `json:"activities"`
}

// ChronologicalWindowResponse is the chronological endpoint payload.
type ChronologicalWindowResponse struct {
	// All activities sorted by ascending start_time.
	Window []models.ActivityRecord `json:"window"`
	// Total number of activities.
	Count int `json:"count"`
}

// StreamingWindowsResponse is the streaming endpoint payload.
type StreamingWindowsResponse struct {
	// Windows in the order they were opened.
	Windows []models.Window `json:"windows"`
	// Total number of windows.
	WindowCount int `json:"window_count"`
	// Total number of activities across all windows.
	TotalActivities int `json:"total_activities"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	st := h.services.Monitoring.Stats(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":  statusHealthy,
		"service": st.Service,
	})
}

// @Summary      Build chronological imaging window
// @Description  Sorts imaging activities by ascending start_time; equal start times keep submission order
// @Tags         imaging-windows
// @Accept       json
// @Produce      json
// @Param        body  body      BuildWindowsRequest  true  "Activities payload"
// @Success      200   {object}  ChronologicalWindowResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /imaging-windows/chronological [post]
func (h *Handler) buildChronological(c *gin.Context) {
	var req buildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if req.Activities == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errActivitiesRequired})
		return
	}
	ctx := c.Request.Context()
	window, err := h.services.Windows.BuildChronological(ctx, req.Activities)
	if err != nil {
		h.respondServiceError(c, errBuildChronological, "chronological_build_failed", err, "activities", len(req.Activities))
		return
	}
	c.JSON(http.StatusOK, ChronologicalWindowResponse{
		Window: window,
		Count:  len(window),
	})
}

// @Summary      Build streaming windows by activity state
// @Description  Groups activities into maximal same-state runs; a state change or an overlap with the immediately preceding activity opens a new window. Every activity must carry activity_state.
// @Tags         imaging-windows
// @Accept       json
// @Produce      json
// @Param        body  body      BuildWindowsRequest  true  "Activities payload"
// @Success      200   {object}  StreamingWindowsResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /imaging-windows/streaming [post]
func (h *Handler) buildStreaming(c *gin.Context) {
	var req buildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if req.Activities == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errActivitiesRequired})
		return
	}
	ctx := c.Request.Context()
	windows, err := h.services.Windows.BuildStreaming(ctx, req.Activities)
	if err != nil {
		h.respondServiceError(c, errBuildStreaming, "streaming_build_failed", err, "activities", len(req.Activities))
		return
	}
	total := 0
	for _, w := range windows {
		total += len(w)
	}
	c.JSON(http.StatusOK, StreamingWindowsResponse{
		Windows:         windows,
		WindowCount:     len(windows),
		TotalActivities: total,
	})
}

// @Summary      Service usage statistics
// @Tags         system
// @Produce      json
// @Success      200  {object}  models.ServiceStats
// @Router       /imaging-windows/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	st := h.services.Monitoring.Stats(c.Request.Context())
	c.JSON(http.StatusOK, st)
}
