package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kalam-platform/app-analytics/internal/analytics"
	"github.com/kalam-platform/app-analytics/internal/cms"
	"github.com/kalam-platform/app-analytics/internal/insights"
	"github.com/kalam-platform/app-analytics/internal/models"
	"github.com/kalam-platform/app-analytics/internal/services"
	"github.com/kalam-platform/app-analytics/internal/typesense"
)

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidRole),
		errors.Is(err, analytics.ErrInvalidMetric),
		errors.Is(err, analytics.ErrInvalidField),
		errors.Is(err, services.ErrWindowNotAllowed),
		errors.Is(err, cms.ErrUserIDRequired),
		errors.Is(err, typesense.ErrInvalidFacetField):
		return http.StatusBadRequest
	case errors.Is(err, cms.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, cms.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, cms.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, insights.ErrInsightsUnavailable),
		errors.Is(err, services.ErrIndexDisabled),
		errors.Is(err, typesense.ErrDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, cms.ErrUpstream),
		errors.Is(err, cms.ErrInvalidPayload),
		errors.Is(err, insights.ErrEmptyNarrative),
		errors.Is(err, insights.ErrGenerationFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes the standard {"error", "details"} body
func respondError(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[api] %s %s: %s: %v", c.Request.Method, c.FullPath(), message, err)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid parameters",
		"details": err.Error(),
	})
}
