package models

import (
	"time"

	"github.com/kalam-platform/app-analytics/internal/analytics"
)

// TrendRequest represents a dashboard trend request
// @Description Query parameters for the estimated engagement trend.
type TrendRequest struct {
	Role Role `form:"-" json:"-" swaggerignore:"true"`
	// Look-back window in days. Must be one of the configured windows.
	Window int `form:"window" binding:"omitempty,min=1,max=366" example:"15"`
	// Metric projected into the chart series
	Metric string `form:"metric" binding:"omitempty,oneof=views likes comments engagement" example:"views" enums:"views,likes,comments,engagement"`
	// Owner of the dashboard. Defaults to the authenticated user.
	UserID string `form:"user_id" example:"42"`

	// Filled by the handler from the request context
	Token string `form:"-" json:"-" swaggerignore:"true"`
}

// TrendResponse is the estimated trend plus the projected chart series
type TrendResponse struct {
	Role   Role                       `json:"role"`
	Metric analytics.Metric           `json:"metric"`
	Trend  analytics.EstimatedTrend   `json:"trend"`
	Series []analytics.ChartPoint     `json:"series"`
	Totals map[analytics.Metric]int64 `json:"totals"`
	Notice string                     `json:"notice"`
}

// DistributionRequest represents a group-by-count request
type DistributionRequest struct {
	Role   Role   `form:"-" json:"-" swaggerignore:"true"`
	Field  string `form:"field" binding:"omitempty,oneof=category theme language status kind" example:"category" enums:"category,theme,language,status,kind"`
	UserID string `form:"user_id" example:"42"`
	Token  string `form:"-" json:"-" swaggerignore:"true"`
}

// DistributionResponse lists label/value counts in first-seen order
type DistributionResponse struct {
	Role   Role                   `json:"role"`
	Field  analytics.Field        `json:"field"`
	Total  int                    `json:"total"`
	Points []analytics.ChartPoint `json:"points"`
}

// SummaryRequest represents a headline summary request
type SummaryRequest struct {
	Role   Role   `form:"-" json:"-" swaggerignore:"true"`
	Top    int    `form:"top" binding:"omitempty,min=1,max=50" example:"5"`
	UserID string `form:"user_id" example:"42"`
	Token  string `form:"-" json:"-" swaggerignore:"true"`
}

// SummaryResponse wraps the summary with its generation time
type SummaryResponse struct {
	Role        Role              `json:"role"`
	GeneratedAt time.Time         `json:"generated_at"`
	Summary     analytics.Summary `json:"summary"`
}

// InsightsResponse is the narrative produced for an estimated trend
type InsightsResponse struct {
	Role        Role      `json:"role"`
	WindowDays  int       `json:"window_days"`
	Narrative   string    `json:"narrative"`
	Model       string    `json:"model"`
	Cached      bool      `json:"cached"`
	GeneratedAt time.Time `json:"generated_at"`
	Notice      string    `json:"notice"`
}

// EstimateNotice accompanies every payload derived from the estimator
const EstimateNotice = "Daily values are estimated from lifetime totals and are not exact event counts."

// ReindexResult reports a snapshot sync into the content index
type ReindexResult struct {
	Fetched    int       `json:"fetched"`
	Indexed    int       `json:"indexed"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
}
