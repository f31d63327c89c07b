package analytics

import (
	"math"
	"sort"
	"time"
)

// RecentWindowDays defines "recently published" for the summary cards
const RecentWindowDays = 30

// Summary contains the headline numbers shown above the dashboard charts
type Summary struct {
	TotalItems        int          `json:"total_items"`
	PublishedItems    int          `json:"published_items"`
	RecentlyPublished int          `json:"recently_published"`
	TotalViews        int64        `json:"total_views"`
	TotalLikes        int64        `json:"total_likes"`
	TotalComments     int64        `json:"total_comments"`
	AverageViews      float64      `json:"average_views"`
	EngagementRate    float64      `json:"engagement_rate"`
	TopContent        []TopContent `json:"top_content"`
}

// TopContent is a compact row of the best-performing items table
type TopContent struct {
	ID       int64       `json:"id"`
	Kind     ContentKind `json:"kind"`
	Title    string      `json:"title"`
	Views    int64       `json:"views"`
	Likes    int64       `json:"likes"`
	Comments int64       `json:"comments"`
}

// Summarize computes totals, averages and the top items by views
func Summarize(items []ContentItem, now time.Time, topN int) Summary {
	s := Summary{
		TotalItems: len(items),
		TopContent: []TopContent{},
	}

	recentCutoff := now.AddDate(0, 0, -RecentWindowDays)
	for _, item := range items {
		s.TotalViews += nonNegative(item.LifetimeViews)
		s.TotalLikes += nonNegative(item.LifetimeLikes)
		s.TotalComments += nonNegative(item.LifetimeComments)

		if item.IsPublished() {
			s.PublishedItems++
			if !item.PublishedAt.Before(recentCutoff) && !item.PublishedAt.After(now) {
				s.RecentlyPublished++
			}
		}
	}

	if s.TotalItems > 0 {
		s.AverageViews = round2(float64(s.TotalViews) / float64(s.TotalItems))
	}
	if s.TotalViews > 0 {
		s.EngagementRate = round2(float64(s.TotalLikes+s.TotalComments) / float64(s.TotalViews) * 100)
	}

	s.TopContent = topByViews(items, topN)
	return s
}

func topByViews(items []ContentItem, n int) []TopContent {
	if n <= 0 || len(items) == 0 {
		return []TopContent{}
	}

	sorted := make([]ContentItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.LifetimeViews != b.LifetimeViews {
			return a.LifetimeViews > b.LifetimeViews
		}
		if a.LifetimeLikes != b.LifetimeLikes {
			return a.LifetimeLikes > b.LifetimeLikes
		}
		return a.ID < b.ID
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	top := make([]TopContent, len(sorted))
	for i, item := range sorted {
		top[i] = TopContent{
			ID:       item.ID,
			Kind:     item.Kind,
			Title:    item.Title,
			Views:    nonNegative(item.LifetimeViews),
			Likes:    nonNegative(item.LifetimeLikes),
			Comments: nonNegative(item.LifetimeComments),
		}
	}
	return top
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
