package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kalam-platform/app-analytics/internal/analytics"
	middlewares "github.com/kalam-platform/app-analytics/internal/middleware"
	"github.com/kalam-platform/app-analytics/internal/models"
	"github.com/kalam-platform/app-analytics/internal/services"
	"github.com/kalam-platform/app-analytics/internal/typesense"
)

// ContentIndex is the read side of the Typesense content collection
type ContentIndex interface {
	Enabled() bool
	Search(ctx context.Context, q typesense.SearchQuery) (*typesense.SearchResult, error)
	FacetCounts(ctx context.Context, field string) ([]analytics.ChartPoint, error)
}

// ContentHandler serves content search and the admin index endpoints
type ContentHandler struct {
	index     ContentIndex
	dashboard *services.DashboardService
}

func NewContentHandler(index ContentIndex, dashboard *services.DashboardService) *ContentHandler {
	return &ContentHandler{
		index:     index,
		dashboard: dashboard,
	}
}

// Search godoc
// @Summary Search indexed blogs and kalams
// @Description Full-text search over titles, bodies and authors. Without q, results are ordered by lifetime views.
// @Tags content
// @Produce json
// @Param q query string false "Search text"
// @Param kind query string false "Content kind" Enums(blog, kalam)
// @Param category query string false "Category"
// @Param status query string false "Moderation status"
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Results per page" default(20) maximum(100)
// @Success 200 {object} typesense.SearchResult
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/content/search [get]
func (h *ContentHandler) Search(c *gin.Context) {
	var req models.ContentSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.index.Search(c.Request.Context(), typesense.SearchQuery{
		Query:    req.Q,
		Kind:     req.Kind,
		Category: req.Category,
		Status:   req.Status,
		Page:     req.Page,
		PerPage:  req.PerPage,
	})
	if err != nil {
		respondError(c, "Failed to search content", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Facets godoc
// @Summary Platform-wide value counts for a field
// @Description Counted by the content index when it is enabled, otherwise from the admin CMS snapshot. Author counts need the index.
// @Tags admin
// @Produce json
// @Param field path string true "Field" Enums(category, theme, language, status, kind, author)
// @Success 200 {object} models.FacetResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/facets/{field} [get]
func (h *ContentHandler) Facets(c *gin.Context) {
	field := strings.ToLower(strings.TrimSpace(c.Param("field")))

	if h.index != nil && h.index.Enabled() {
		points, err := h.index.FacetCounts(c.Request.Context(), field)
		if err != nil {
			respondError(c, "Failed to count facets", err)
			return
		}
		c.JSON(http.StatusOK, newFacetResponse(field, "index", points))
		return
	}

	if field == "author" {
		respondError(c, "Author facets need the content index", typesense.ErrDisabled)
		return
	}

	resp, err := h.dashboard.Distribution(c.Request.Context(), &models.DistributionRequest{
		Role:  models.RoleAdmin,
		Field: field,
		Token: middlewares.GetToken(c),
	})
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidField) {
			err = typesense.ErrInvalidFacetField
		}
		respondError(c, "Failed to count facets", err)
		return
	}

	c.JSON(http.StatusOK, newFacetResponse(string(resp.Field), "snapshot", resp.Points))
}

// Reindex godoc
// @Summary Rebuild the content index from the CMS
// @Description Pulls the admin snapshot and upserts every item. Only one reindex runs at a time.
// @Tags admin
// @Produce json
// @Success 200 {object} models.ReindexResult
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/reindex [post]
func (h *ContentHandler) Reindex(c *gin.Context) {
	result, err := h.dashboard.Reindex(c.Request.Context(), middlewares.GetToken(c))
	if err != nil {
		respondError(c, "Failed to reindex content", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func newFacetResponse(field, source string, points []analytics.ChartPoint) models.FacetResponse {
	if points == nil {
		points = []analytics.ChartPoint{}
	}
	var total int64
	for _, p := range points {
		total += p.Value
	}
	return models.FacetResponse{
		Field:  field,
		Source: source,
		Total:  total,
		Points: points,
	}
}
