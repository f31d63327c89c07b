// Package analytics computes the derived numbers behind the role dashboards.
//
// The CMS API only exposes lifetime counters (views, likes, comments) per
// content item. Everything daily produced here is a synthetic estimate
// spread over the publication window, never a reconstruction of real
// per-day events. Types carry the Estimated prefix so callers cannot
// confuse them with measured data.
package analytics

import "time"

// ContentKind identifies the type of a content item
type ContentKind string

const (
	KindBlog  ContentKind = "blog"
	KindKalam ContentKind = "kalam"
)

// ContentItem is a read-only snapshot of a blog post or kalam as returned by the CMS API
type ContentItem struct {
	ID       int64       `json:"id"`
	Kind     ContentKind `json:"kind"`
	Title    string      `json:"title"`
	Category string      `json:"category,omitempty"`
	Theme    string      `json:"theme,omitempty"`
	Language string      `json:"language,omitempty"`
	Status   string      `json:"status,omitempty"`
	Author   string      `json:"author,omitempty"`
	Body     string      `json:"-"`

	// CreatedAt is nil when the upstream value was missing or unparseable
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	LifetimeViews    int64 `json:"view_count"`
	LifetimeLikes    int64 `json:"like_count"`
	LifetimeComments int64 `json:"comment_count"`
}

// Anchor returns the date the estimator distributes counters from:
// PublishedAt when set, CreatedAt otherwise.
func (c ContentItem) Anchor() (time.Time, bool) {
	if c.PublishedAt != nil && !c.PublishedAt.IsZero() {
		return *c.PublishedAt, true
	}
	if c.CreatedAt != nil && !c.CreatedAt.IsZero() {
		return *c.CreatedAt, true
	}
	return time.Time{}, false
}

// IsPublished reports whether the item carries a publication date
func (c ContentItem) IsPublished() bool {
	return c.PublishedAt != nil && !c.PublishedAt.IsZero()
}

// EstimatedDailyMetrics is one day of estimated activity across all items.
// Date is the ISO calendar day used as the bucket key; Label is the short
// display form and may repeat across years.
type EstimatedDailyMetrics struct {
	Date     string `json:"date"`
	Label    string `json:"label"`
	Views    int64  `json:"views"`
	Likes    int64  `json:"likes"`
	Comments int64  `json:"comments"`
}

// EstimatedTrend wraps a bucket sequence with the parameters that produced it
type EstimatedTrend struct {
	WindowDays  int                     `json:"window_days"`
	GeneratedAt time.Time               `json:"generated_at"`
	Estimated   bool                    `json:"estimated"`
	ItemsUsed   int                     `json:"items_used"`
	Skipped     int                     `json:"items_skipped"`
	Buckets     []EstimatedDailyMetrics `json:"buckets"`
}

// ChartPoint is the label/value pair consumed by the chart widgets
type ChartPoint struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}
