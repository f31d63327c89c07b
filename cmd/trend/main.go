// Command trend prints the estimated daily trend for a content snapshot.
//
// The snapshot comes from a JSON file in the CMS list format or, with -role,
// straight from the CMS API using CMS_SERVICE_TOKEN.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/kalam-platform/app-analytics/internal/analytics"
	"github.com/kalam-platform/app-analytics/internal/cms"
	"github.com/kalam-platform/app-analytics/internal/config"
	"github.com/kalam-platform/app-analytics/internal/models"
)

// same bound as the API's window binding
const maxWindowDays = 366

type options struct {
	File   string
	Kind   string
	Role   string
	UserID string
	Window int
	Metric string
	Now    string
	TZ     string
	Format string
}

func main() {
	var opts options
	flag.StringVar(&opts.File, "file", "", "JSON snapshot in the CMS list format")
	flag.StringVar(&opts.Kind, "kind", "kalam", "Content kind of the items in -file: blog or kalam")
	flag.StringVar(&opts.Role, "role", "", "Fetch the snapshot from the CMS for this dashboard role instead of -file")
	flag.StringVar(&opts.UserID, "user", "", "Dashboard owner for writer and vocalist")
	flag.IntVar(&opts.Window, "window", 15, "Window in days (1-366)")
	flag.StringVar(&opts.Metric, "metric", "views", "Metric column to total: views, likes, comments or engagement")
	flag.StringVar(&opts.Now, "now", "", "Reference time (RFC3339 or YYYY-MM-DD); defaults to the current time")
	flag.StringVar(&opts.TZ, "tz", "", "Time zone for day boundaries; defaults to ANALYTICS_TIMEZONE or UTC")
	flag.StringVar(&opts.Format, "format", "table", "Output format: table or json")
	flag.Parse()

	_ = godotenv.Load()

	items, err := loadItems(context.Background(), opts)
	if err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}

	if err := run(os.Stdout, items, opts); err != nil {
		log.Fatalf("Failed to estimate trend: %v", err)
	}
}

func loadItems(ctx context.Context, opts options) ([]analytics.ContentItem, error) {
	if opts.Role != "" {
		role, err := models.ParseRole(opts.Role)
		if err != nil {
			return nil, err
		}
		cfg := config.LoadConfig()
		return cms.NewClient(cfg.CMS).ListContent(ctx, role, opts.UserID, cfg.CMS.ServiceToken)
	}

	if opts.File == "" {
		return nil, fmt.Errorf("one of -file or -role is required")
	}
	body, err := os.ReadFile(opts.File)
	if err != nil {
		return nil, err
	}
	return cms.DecodeItems(body, analytics.ContentKind(opts.Kind))
}

type output struct {
	Metric analytics.Metric         `json:"metric"`
	Total  int64                    `json:"total"`
	Trend  analytics.EstimatedTrend `json:"trend"`
	Notice string                   `json:"notice"`
}

func run(w io.Writer, items []analytics.ContentItem, opts options) error {
	if opts.Window < 1 || opts.Window > maxWindowDays {
		return fmt.Errorf("-window must be between 1 and %d, got %d", maxWindowDays, opts.Window)
	}

	metric, err := analytics.ParseMetric(opts.Metric)
	if err != nil {
		return err
	}

	now, err := referenceTime(opts.Now, opts.TZ)
	if err != nil {
		return err
	}

	trend := analytics.EstimateTrend(items, opts.Window, now)
	total := analytics.SeriesTotal(analytics.ProjectSeries(trend.Buckets, metric))

	switch opts.Format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(output{Metric: metric, Total: total, Trend: trend, Notice: models.EstimateNotice})
	case "table":
		return writeTable(w, trend, metric, total)
	}
	return fmt.Errorf("unknown -format %q", opts.Format)
}

func writeTable(w io.Writer, trend analytics.EstimatedTrend, metric analytics.Metric, total int64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "date\tlabel\tviews\tlikes\tcomments\t")
	for _, b := range trend.Buckets {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t\n", b.Date, b.Label, b.Views, b.Likes, b.Comments)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s total: %d (items used %d, skipped %d)\n", metric, total, trend.ItemsUsed, trend.Skipped)
	_, err := fmt.Fprintln(w, models.EstimateNotice)
	return err
}

func referenceTime(value, tz string) (time.Time, error) {
	if tz == "" {
		tz = os.Getenv("ANALYTICS_TIMEZONE")
	}
	loc := time.UTC
	if tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return time.Time{}, fmt.Errorf("time zone %q: %w", tz, err)
		}
		loc = l
	}

	if value == "" {
		return time.Now().In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("-now %q: expected RFC3339 or YYYY-MM-DD", value)
	}
	// end of the given day so that day is the last bucket
	return t.Add(24*time.Hour - time.Nanosecond), nil
}
