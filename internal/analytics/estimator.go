package analytics

import (
	"math"
	"time"
)

const (
	// DateKeyLayout keys buckets by full calendar date
	DateKeyLayout = "2006-01-02"
	// LabelLayout is the short display label ("Mar 14")
	LabelLayout = "Jan 2"
)

// EstimateDailyTrend spreads each item's lifetime counters over the days
// since its anchor date and returns exactly windowDays buckets, oldest
// first, ending on the calendar day of now (in now's location).
//
// For an item published d > 0 days ago the per-day rate is lifetime/d and
// day i back from today (i < min(d, windowDays)) receives round(rate/(i+1)).
// Items published today or in the future put their full counters on today.
// Items without a usable anchor are skipped. The result under-counts by
// construction and must be presented as an estimate.
func EstimateDailyTrend(items []ContentItem, windowDays int, now time.Time) []EstimatedDailyMetrics {
	buckets, _ := estimate(items, windowDays, now)
	return buckets
}

// EstimateTrend runs EstimateDailyTrend and attaches the parameters used
func EstimateTrend(items []ContentItem, windowDays int, now time.Time) EstimatedTrend {
	buckets, skipped := estimate(items, windowDays, now)
	return EstimatedTrend{
		WindowDays:  len(buckets),
		GeneratedAt: now,
		Estimated:   true,
		ItemsUsed:   len(items) - skipped,
		Skipped:     skipped,
		Buckets:     buckets,
	}
}

func estimate(items []ContentItem, windowDays int, now time.Time) ([]EstimatedDailyMetrics, int) {
	if windowDays <= 0 {
		return []EstimatedDailyMetrics{}, countUnanchored(items)
	}

	today := startOfDay(now)
	buckets := make([]EstimatedDailyMetrics, windowDays)
	for i := 0; i < windowDays; i++ {
		day := today.AddDate(0, 0, i-(windowDays-1))
		buckets[i] = EstimatedDailyMetrics{
			Date:  day.Format(DateKeyLayout),
			Label: day.Format(LabelLayout),
		}
	}
	last := windowDays - 1

	skipped := 0
	for _, item := range items {
		anchor, ok := item.Anchor()
		if !ok {
			skipped++
			continue
		}

		views := nonNegative(item.LifetimeViews)
		likes := nonNegative(item.LifetimeLikes)
		comments := nonNegative(item.LifetimeComments)

		daysSince := int(math.Floor(now.Sub(anchor).Hours() / 24))
		if daysSince <= 0 {
			buckets[last].Views += views
			buckets[last].Likes += likes
			buckets[last].Comments += comments
			continue
		}

		viewRate := float64(views) / float64(daysSince)
		likeRate := float64(likes) / float64(daysSince)
		commentRate := float64(comments) / float64(daysSince)

		span := min(daysSince, windowDays)
		for i := 0; i < span; i++ {
			weight := float64(i + 1)
			b := &buckets[last-i]
			b.Views += int64(math.Round(viewRate / weight))
			b.Likes += int64(math.Round(likeRate / weight))
			b.Comments += int64(math.Round(commentRate / weight))
		}
	}

	return buckets, skipped
}

// startOfDay truncates t to local midnight without crossing DST gaps
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func countUnanchored(items []ContentItem) int {
	n := 0
	for _, item := range items {
		if _, ok := item.Anchor(); !ok {
			n++
		}
	}
	return n
}
