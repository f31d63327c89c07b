package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks that an upstream answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker is an optional dependency with its own health endpoint
type HealthChecker interface {
	Enabled() bool
	Health(ctx context.Context) error
}

// Availability reports whether an optional feature is configured
type Availability interface {
	IsAvailable() bool
}

// HealthHandler serves the probe endpoints
type HealthHandler struct {
	cms      Pinger
	index    HealthChecker
	narrator Availability
}

func NewHealthHandler(cms Pinger, index HealthChecker, narrator Availability) *HealthHandler {
	return &HealthHandler{
		cms:      cms,
		index:    index,
		narrator: narrator,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// Liveness godoc
// @Summary Liveness probe endpoint
// @Description Confirms the process is up. No dependency checks.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /liveness [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now().Unix(),
	})
}

// Readiness godoc
// @Summary Readiness probe endpoint
// @Description Ready when the CMS answers. Every dashboard depends on it.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readiness [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ready",
		Checks:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	if err := h.cms.Ping(ctx); err != nil {
		response.Checks["cms"] = "failed"
		response.Status = "not_ready"
		response.Error = "CMS not available"
	} else {
		response.Checks["cms"] = "ok"
	}

	statusCode := http.StatusOK
	if response.Status == "not_ready" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// Health godoc
// @Summary Full health check
// @Description Checks the CMS and, when enabled, the content index. Gemini is reported as configured or disabled.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Checks:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	if err := h.cms.Ping(ctx); err != nil {
		response.Checks["cms"] = "failed"
		response.Status = "unhealthy"
		response.Error = "CMS connectivity check failed"
	} else {
		response.Checks["cms"] = "ok"
	}

	switch {
	case h.index == nil || !h.index.Enabled():
		response.Checks["typesense"] = "disabled"
	case h.index.Health(ctx) != nil:
		// search degrades but dashboards still work
		response.Checks["typesense"] = "failed"
		if response.Status == "healthy" {
			response.Status = "degraded"
		}
	default:
		response.Checks["typesense"] = "ok"
	}

	if h.narrator != nil && h.narrator.IsAvailable() {
		response.Checks["gemini"] = "configured"
	} else {
		response.Checks["gemini"] = "disabled"
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}
