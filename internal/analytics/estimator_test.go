package analytics

import (
	"reflect"
	"testing"
	"time"
)

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(DateKeyLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return &parsed
}

func viewsByDate(buckets []EstimatedDailyMetrics) map[string]int64 {
	out := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		out[b.Date] = b.Views
	}
	return out
}

func TestEstimateDailyTrendWindow(t *testing.T) {
	now := time.Date(2024, 3, 14, 17, 30, 0, 0, time.UTC)

	for _, window := range []int{1, 7, 15, 30, 90} {
		buckets := EstimateDailyTrend(nil, window, now)
		if len(buckets) != window {
			t.Fatalf("window %d: got %d buckets", window, len(buckets))
		}
		if buckets[len(buckets)-1].Date != "2024-03-14" {
			t.Errorf("window %d: last bucket = %s, want 2024-03-14", window, buckets[len(buckets)-1].Date)
		}
		if buckets[len(buckets)-1].Label != "Mar 14" {
			t.Errorf("window %d: last label = %q, want \"Mar 14\"", window, buckets[len(buckets)-1].Label)
		}
		for i := 1; i < len(buckets); i++ {
			if buckets[i-1].Date >= buckets[i].Date {
				t.Errorf("window %d: buckets not chronological at %d (%s >= %s)", window, i, buckets[i-1].Date, buckets[i].Date)
			}
		}
		for _, b := range buckets {
			if b.Views != 0 || b.Likes != 0 || b.Comments != 0 {
				t.Errorf("window %d: empty input produced non-zero bucket %+v", window, b)
			}
		}
	}
}

func TestEstimateDailyTrendDegenerateWindow(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	items := []ContentItem{{ID: 1, CreatedAt: date(t, "2024-01-10"), LifetimeViews: 10}}

	for _, window := range []int{0, -3} {
		buckets := EstimateDailyTrend(items, window, now)
		if buckets == nil {
			t.Errorf("window %d: got nil slice", window)
		}
		if len(buckets) != 0 {
			t.Errorf("window %d: got %d buckets, want 0", window, len(buckets))
		}
	}
}

func TestEstimateDailyTrendSameDay(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		anchor time.Time
	}{
		{"published now", now},
		{"published earlier today", now.Add(-3 * time.Hour)},
		{"published in the future", now.Add(72 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchor := tt.anchor
			items := []ContentItem{{
				ID:               1,
				CreatedAt:        &anchor,
				PublishedAt:      &anchor,
				LifetimeViews:    120,
				LifetimeLikes:    9,
				LifetimeComments: 4,
			}}

			buckets := EstimateDailyTrend(items, 15, now)
			last := buckets[len(buckets)-1]
			if last.Views != 120 || last.Likes != 9 || last.Comments != 4 {
				t.Errorf("today bucket = %+v, want full counters", last)
			}
			for _, b := range buckets[:len(buckets)-1] {
				if b.Views != 0 || b.Likes != 0 || b.Comments != 0 {
					t.Errorf("bucket %s = %+v, want zero", b.Date, b)
				}
			}
		})
	}
}

func TestEstimateDailyTrendDecayUnderCounts(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	published := now.AddDate(0, 0, -5)
	items := []ContentItem{{ID: 7, CreatedAt: &published, PublishedAt: &published, LifetimeViews: 100}}

	buckets := EstimateDailyTrend(items, 15, now)

	want := []int64{4, 5, 7, 10, 20} // Jan 11 .. Jan 15
	got := make([]int64, 0, len(want))
	var sum int64
	for _, b := range buckets {
		sum += b.Views
	}
	for _, b := range buckets[len(buckets)-5:] {
		got = append(got, b.Views)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("last five buckets = %v, want %v", got, want)
	}
	if sum != 46 {
		t.Errorf("sum of views = %d, want 46", sum)
	}
	if sum > 100 {
		t.Errorf("sum of views %d exceeds lifetime 100", sum)
	}
}

func TestEstimateDailyTrendConservationBound(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	for _, days := range []int{1, 2, 3, 10, 29, 30, 31, 200} {
		for _, views := range []int64{0, 1, 7, 100, 12345} {
			published := now.AddDate(0, 0, -days)
			items := []ContentItem{{ID: 1, PublishedAt: &published, LifetimeViews: views}}

			var sum int64
			for _, b := range EstimateDailyTrend(items, 30, now) {
				sum += b.Views
			}
			if sum > views {
				t.Errorf("days=%d views=%d: distributed %d", days, views, sum)
			}
		}
	}
}

func TestEstimateDailyTrendSkipsMissingDates(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	zero := time.Time{}
	items := []ContentItem{
		{ID: 1, LifetimeViews: 500, LifetimeLikes: 50, LifetimeComments: 5},
		{ID: 2, CreatedAt: &zero, LifetimeViews: 500},
	}

	trend := EstimateTrend(items, 7, now)
	for _, b := range trend.Buckets {
		if b.Views != 0 || b.Likes != 0 || b.Comments != 0 {
			t.Errorf("bucket %s = %+v, want zero", b.Date, b)
		}
	}
	if trend.Skipped != 2 || trend.ItemsUsed != 0 {
		t.Errorf("skipped=%d used=%d, want 2 and 0", trend.Skipped, trend.ItemsUsed)
	}
	if !trend.Estimated {
		t.Error("trend must be flagged as estimated")
	}
}

func TestEstimateDailyTrendIdempotent(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	items := []ContentItem{
		{ID: 1, CreatedAt: date(t, "2023-12-01"), PublishedAt: date(t, "2023-12-03"), LifetimeViews: 900, LifetimeLikes: 40, LifetimeComments: 12},
		{ID: 2, CreatedAt: date(t, "2024-01-12"), LifetimeViews: 31, LifetimeLikes: 3},
		{ID: 3, LifetimeViews: 10},
	}

	first := EstimateDailyTrend(items, 30, now)
	second := EstimateDailyTrend(items, 30, now)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different outputs")
	}
}

func TestEstimateDailyTrendEndToEnd(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	items := []ContentItem{
		{ID: 1, CreatedAt: date(t, "2024-01-01"), PublishedAt: date(t, "2024-01-01"), LifetimeViews: 50},
		{ID: 2, CreatedAt: date(t, "2024-01-10"), LifetimeViews: 30},
	}

	buckets := EstimateDailyTrend(items, 15, now)
	if len(buckets) != 15 {
		t.Fatalf("got %d buckets, want 15", len(buckets))
	}
	if buckets[0].Label != "Jan 1" || buckets[14].Label != "Jan 15" {
		t.Errorf("window = %s..%s, want Jan 1..Jan 15", buckets[0].Label, buckets[14].Label)
	}

	got := viewsByDate(buckets)
	want := map[string]int64{
		"2024-01-15": 10, // 4 from item 1, 6 from item 2
		"2024-01-14": 5,
		"2024-01-13": 3,
		"2024-01-12": 3,
		"2024-01-11": 2,
		"2024-01-10": 1, // item 1 only from here back
		"2024-01-09": 1,
		"2024-01-08": 0,
		"2024-01-02": 0,
		"2024-01-01": 0,
	}
	for day, views := range want {
		if got[day] != views {
			t.Errorf("%s views = %d, want %d", day, got[day], views)
		}
	}
}

func TestEstimateDailyTrendUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("PKT", 5*60*60)
	// 20:00 UTC on Jan 14 is already Jan 15 in PKT
	now := time.Date(2024, 1, 14, 20, 0, 0, 0, time.UTC).In(loc)

	buckets := EstimateDailyTrend(nil, 3, now)
	if buckets[2].Date != "2024-01-15" {
		t.Errorf("last bucket = %s, want 2024-01-15", buckets[2].Date)
	}
}

func TestEstimateDailyTrendNegativeCounters(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	items := []ContentItem{{ID: 1, PublishedAt: &now, LifetimeViews: -40, LifetimeLikes: 3}}

	buckets := EstimateDailyTrend(items, 7, now)
	last := buckets[len(buckets)-1]
	if last.Views != 0 || last.Likes != 3 {
		t.Errorf("today bucket = %+v, want views 0 likes 3", last)
	}
}
