package analytics

import (
	"errors"
	"strings"
)

var (
	ErrInvalidMetric = errors.New("invalid metric (use: views, likes, comments, engagement)")
	ErrInvalidField  = errors.New("invalid field (use: category, theme, language, status, kind)")
)

// Metric selects which counter a chart series is built from
type Metric string

const (
	MetricViews    Metric = "views"
	MetricLikes    Metric = "likes"
	MetricComments Metric = "comments"

	// MetricEngagement is the combined views + comments score
	MetricEngagement Metric = "engagement"
)

// Metrics lists every supported metric in display order
var Metrics = []Metric{MetricViews, MetricLikes, MetricComments, MetricEngagement}

// IsValid reports whether the metric is supported
func (m Metric) IsValid() bool {
	switch m {
	case MetricViews, MetricLikes, MetricComments, MetricEngagement:
		return true
	}
	return false
}

// ParseMetric parses a metric name, case-insensitive. Empty means views.
func ParseMetric(s string) (Metric, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MetricViews, nil
	}
	m := Metric(s)
	if !m.IsValid() {
		return "", ErrInvalidMetric
	}
	return m, nil
}

// Value extracts the metric from a bucket
func (m Metric) Value(b EstimatedDailyMetrics) int64 {
	switch m {
	case MetricLikes:
		return b.Likes
	case MetricComments:
		return b.Comments
	case MetricEngagement:
		return b.Views + b.Comments
	default:
		return b.Views
	}
}

// ProjectSeries converts buckets into one chart series for a single metric,
// keeping bucket order.
func ProjectSeries(buckets []EstimatedDailyMetrics, metric Metric) []ChartPoint {
	points := make([]ChartPoint, len(buckets))
	for i, b := range buckets {
		points[i] = ChartPoint{
			Label: b.Label,
			Value: metric.Value(b),
		}
	}
	return points
}

// SeriesTotal sums a projected series
func SeriesTotal(points []ChartPoint) int64 {
	var total int64
	for _, p := range points {
		total += p.Value
	}
	return total
}
