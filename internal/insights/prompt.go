package insights

import (
	"fmt"
	"strings"

	"github.com/kalam-platform/app-analytics/internal/analytics"
)

const systemInstruction = `You write short performance notes for a content dashboard of a devotional poetry platform (blogs and kalams).
The daily numbers are ESTIMATES spread from lifetime totals, not measured daily events. Always say so.
Never invent numbers that are not in the data. Reply in plain English, at most 5 sentences, no markdown.`

// Input is everything a narrative is generated from
type Input struct {
	Role    string
	Metric  analytics.Metric
	Trend   analytics.EstimatedTrend
	Summary analytics.Summary
}

// BuildPrompt renders the input as a compact, deterministic prompt. Equal
// inputs yield equal prompts, which is what the cache keys on.
func BuildPrompt(in Input) string {
	metric := in.Metric
	if !metric.IsValid() {
		metric = analytics.MetricViews
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dashboard: %s\n", in.Role)
	fmt.Fprintf(&b, "Window: last %d days (estimated daily %s)\n", in.Trend.WindowDays, metric)

	series := analytics.ProjectSeries(in.Trend.Buckets, metric)
	points := make([]string, 0, len(series))
	for _, p := range series {
		points = append(points, fmt.Sprintf("%s=%d", p.Label, p.Value))
	}
	fmt.Fprintf(&b, "Series: %s\n", strings.Join(points, ", "))
	fmt.Fprintf(&b, "Window total: %d\n", analytics.SeriesTotal(series))
	if in.Trend.Skipped > 0 {
		fmt.Fprintf(&b, "Items without a publication date (excluded): %d\n", in.Trend.Skipped)
	}

	s := in.Summary
	fmt.Fprintf(&b, "Items: %d total, %d published, %d published in the last %d days\n",
		s.TotalItems, s.PublishedItems, s.RecentlyPublished, analytics.RecentWindowDays)
	fmt.Fprintf(&b, "Lifetime: %d views, %d likes, %d comments, engagement rate %.2f%%\n",
		s.TotalViews, s.TotalLikes, s.TotalComments, s.EngagementRate)

	if len(s.TopContent) > 0 {
		b.WriteString("Top content:\n")
		for i, c := range s.TopContent {
			fmt.Fprintf(&b, "%d. %q (%s) %d views, %d likes\n", i+1, c.Title, c.Kind, c.Views, c.Likes)
		}
	}

	b.WriteString("Describe the trend and what stands out.")
	return b.String()
}
