package models

import "github.com/kalam-platform/app-analytics/internal/analytics"

// ContentSearchRequest represents a dashboard content search
// @Description Query parameters for full-text search over indexed blogs and kalams.
type ContentSearchRequest struct {
	// Text to search in titles, bodies and authors. Empty lists by views.
	Q        string `form:"q" example:"ya nabi"`
	Kind     string `form:"kind" binding:"omitempty,oneof=blog kalam" example:"kalam" enums:"blog,kalam"`
	Category string `form:"category" example:"Naat"`
	Status   string `form:"status" example:"approved"`
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PerPage  int    `form:"per_page" binding:"omitempty,min=1,max=100" example:"20"`
}

// FacetResponse lists value counts for one field across the platform
type FacetResponse struct {
	Field string `json:"field"`
	// index when counted by Typesense, snapshot when counted from the CMS
	Source string                 `json:"source" enums:"index,snapshot"`
	Total  int64                  `json:"total"`
	Points []analytics.ChartPoint `json:"points"`
}
