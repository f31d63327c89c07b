package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	middlewares "github.com/kalam-platform/app-analytics/internal/middleware"
	"github.com/kalam-platform/app-analytics/internal/models"
	"github.com/kalam-platform/app-analytics/internal/services"
)

// AnalyticsHandler serves the role dashboards
type AnalyticsHandler struct {
	dashboard *services.DashboardService
}

func NewAnalyticsHandler(dashboard *services.DashboardService) *AnalyticsHandler {
	return &AnalyticsHandler{dashboard: dashboard}
}

// Trend godoc
// @Summary Estimated daily engagement trend
// @Description Spreads each item's lifetime views, likes and comments over the days since publication and sums them per calendar day. Values are estimates, not event counts.
// @Description
// @Description ADMIN may read any dashboard (pass user_id for writer and vocalist). Other roles only read their own.
// @Tags analytics
// @Produce json
// @Param role path string true "Dashboard role" Enums(admin, blogger, writer, vocalist)
// @Param window query int false "Window in days (one of the configured windows)" default(15)
// @Param metric query string false "Metric for the chart series" Enums(views, likes, comments, engagement) default(views)
// @Param user_id query string false "Dashboard owner (admins only; others default to themselves)"
// @Success 200 {object} models.TrendResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/analytics/{role}/trend [get]
func (h *AnalyticsHandler) Trend(c *gin.Context) {
	var req models.TrendRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	fillTrendRequest(c, &req)

	resp, err := h.dashboard.Trend(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to estimate trend", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Distribution godoc
// @Summary Content count by category, theme, language, status or kind
// @Description Groups the dashboard's content by a field. Labels keep first-seen order; empty values count as "Uncategorized" (category) or "Other".
// @Tags analytics
// @Produce json
// @Param role path string true "Dashboard role" Enums(admin, blogger, writer, vocalist)
// @Param field query string false "Field to group by" Enums(category, theme, language, status, kind) default(category)
// @Param user_id query string false "Dashboard owner (admins only)"
// @Success 200 {object} models.DistributionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/analytics/{role}/distribution [get]
func (h *AnalyticsHandler) Distribution(c *gin.Context) {
	var req models.DistributionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	req.Role = middlewares.GetDashboardRole(c)
	req.UserID = middlewares.GetDashboardUserID(c)
	req.Token = middlewares.GetToken(c)

	resp, err := h.dashboard.Distribution(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to compute distribution", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Summary godoc
// @Summary Headline numbers and top content
// @Tags analytics
// @Produce json
// @Param role path string true "Dashboard role" Enums(admin, blogger, writer, vocalist)
// @Param top query int false "Rows in the top content table" minimum(1) maximum(50) default(5)
// @Param user_id query string false "Dashboard owner (admins only)"
// @Success 200 {object} models.SummaryResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/analytics/{role}/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	var req models.SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	req.Role = middlewares.GetDashboardRole(c)
	req.UserID = middlewares.GetDashboardUserID(c)
	req.Token = middlewares.GetToken(c)

	resp, err := h.dashboard.Summary(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to compute summary", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Insights godoc
// @Summary Written description of the estimated trend
// @Description Generated by Gemini from the estimated trend and summary. Returns 503 when no Gemini API key is configured.
// @Tags analytics
// @Produce json
// @Param role path string true "Dashboard role" Enums(admin, blogger, writer, vocalist)
// @Param window query int false "Window in days" default(15)
// @Param metric query string false "Metric to describe" Enums(views, likes, comments, engagement) default(views)
// @Param user_id query string false "Dashboard owner (admins only)"
// @Success 200 {object} models.InsightsResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/analytics/{role}/insights [get]
func (h *AnalyticsHandler) Insights(c *gin.Context) {
	var req models.TrendRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	fillTrendRequest(c, &req)

	resp, err := h.dashboard.Insights(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to generate insights", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func fillTrendRequest(c *gin.Context, req *models.TrendRequest) {
	req.Role = middlewares.GetDashboardRole(c)
	req.UserID = middlewares.GetDashboardUserID(c)
	req.Token = middlewares.GetToken(c)
}
