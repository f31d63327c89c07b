package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kalam-platform/app-analytics/internal/analytics"
	"github.com/kalam-platform/app-analytics/internal/cache"
	"github.com/kalam-platform/app-analytics/internal/config"
	"github.com/kalam-platform/app-analytics/internal/insights"
	"github.com/kalam-platform/app-analytics/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrWindowNotAllowed = errors.New("window is not one of the allowed values")
	ErrIndexDisabled    = errors.New("content index is disabled")
)

// ContentLister fetches the content snapshot behind a dashboard
type ContentLister interface {
	ListContent(ctx context.Context, role models.Role, userID, token string) ([]analytics.ContentItem, error)
}

// ContentIndexer receives fresh snapshots for dashboard search
type ContentIndexer interface {
	Enabled() bool
	Sync(ctx context.Context, items []analytics.ContentItem) (int, error)
}

// Narrator writes a narrative for an estimated trend
type Narrator interface {
	IsAvailable() bool
	Describe(ctx context.Context, in insights.Input) (*insights.Narrative, error)
}

// DashboardService builds the analytics payloads for the role dashboards
type DashboardService struct {
	lister   ContentLister
	indexer  ContentIndexer
	narrator Narrator
	cfg      config.AnalyticsConfig
	cache    *cache.LRU[[]analytics.ContentItem]
	now      func() time.Time

	syncTimeout time.Duration
	syncWG      sync.WaitGroup
}

// NewDashboardService creates the service. The indexer and narrator are optional.
func NewDashboardService(lister ContentLister, cfg config.AnalyticsConfig) *DashboardService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &DashboardService{
		lister:      lister,
		cfg:         cfg,
		cache:       cache.NewLRU[[]analytics.ContentItem](cfg.SnapshotCacheSize),
		now:         time.Now,
		syncTimeout: 2 * time.Minute,
	}
}

// WithIndexer hands every fresh snapshot to the content index
func (s *DashboardService) WithIndexer(ix ContentIndexer) *DashboardService {
	s.indexer = ix
	return s
}

// WithNarrator enables the insights endpoint
func (s *DashboardService) WithNarrator(n Narrator) *DashboardService {
	s.narrator = n
	return s
}

// WithClock replaces time.Now
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Cache exposes the snapshot cache for the cleanup routine
func (s *DashboardService) Cache() *cache.LRU[[]analytics.ContentItem] {
	return s.cache
}

// Wait blocks until pending background index syncs finish
func (s *DashboardService) Wait() {
	s.syncWG.Wait()
}

// Trend estimates the daily engagement of the dashboard's content
func (s *DashboardService) Trend(ctx context.Context, req *models.TrendRequest) (*models.TrendResponse, error) {
	window, err := s.resolveWindow(req.Window)
	if err != nil {
		return nil, err
	}
	metric, err := analytics.ParseMetric(req.Metric)
	if err != nil {
		return nil, err
	}

	items, err := s.Snapshot(ctx, req.Role, req.UserID, req.Token)
	if err != nil {
		return nil, err
	}

	trend := s.estimate(ctx, items, window)
	series := analytics.ProjectSeries(trend.Buckets, metric)

	totals := make(map[analytics.Metric]int64, len(analytics.Metrics))
	for _, m := range analytics.Metrics {
		totals[m] = analytics.SeriesTotal(analytics.ProjectSeries(trend.Buckets, m))
	}

	return &models.TrendResponse{
		Role:   req.Role,
		Metric: metric,
		Trend:  trend,
		Series: series,
		Totals: totals,
		Notice: models.EstimateNotice,
	}, nil
}

// Distribution counts the dashboard's content by a categorical field
func (s *DashboardService) Distribution(ctx context.Context, req *models.DistributionRequest) (*models.DistributionResponse, error) {
	field, err := analytics.ParseField(req.Field)
	if err != nil {
		return nil, err
	}

	items, err := s.Snapshot(ctx, req.Role, req.UserID, req.Token)
	if err != nil {
		return nil, err
	}

	return &models.DistributionResponse{
		Role:   req.Role,
		Field:  field,
		Total:  len(items),
		Points: analytics.Distribution(items, field),
	}, nil
}

// Summary computes the headline cards and top content table
func (s *DashboardService) Summary(ctx context.Context, req *models.SummaryRequest) (*models.SummaryResponse, error) {
	top := req.Top
	if top <= 0 {
		top = s.cfg.TopContent
	}

	items, err := s.Snapshot(ctx, req.Role, req.UserID, req.Token)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	return &models.SummaryResponse{
		Role:        req.Role,
		GeneratedAt: now,
		Summary:     analytics.Summarize(items, now, top),
	}, nil
}

// Insights asks the narrator to describe the estimated trend
func (s *DashboardService) Insights(ctx context.Context, req *models.TrendRequest) (*models.InsightsResponse, error) {
	if s.narrator == nil || !s.narrator.IsAvailable() {
		return nil, insights.ErrInsightsUnavailable
	}

	window, err := s.resolveWindow(req.Window)
	if err != nil {
		return nil, err
	}
	metric, err := analytics.ParseMetric(req.Metric)
	if err != nil {
		return nil, err
	}

	items, err := s.Snapshot(ctx, req.Role, req.UserID, req.Token)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	trend := analytics.EstimateTrend(items, window, now)
	summary := analytics.Summarize(items, now, s.cfg.TopContent)

	narrative, err := s.narrator.Describe(ctx, insights.Input{
		Role:    string(req.Role),
		Metric:  metric,
		Trend:   trend,
		Summary: summary,
	})
	if err != nil {
		return nil, err
	}

	return &models.InsightsResponse{
		Role:        req.Role,
		WindowDays:  window,
		Narrative:   narrative.Text,
		Model:       narrative.Model,
		Cached:      narrative.Cached,
		GeneratedAt: narrative.GeneratedAt,
		Notice:      models.EstimateNotice,
	}, nil
}

// Snapshot returns the dashboard's content, from cache when fresh. A fresh
// fetch is also handed to the content index in the background.
func (s *DashboardService) Snapshot(ctx context.Context, role models.Role, userID, token string) ([]analytics.ContentItem, error) {
	if !role.IsValid() {
		return nil, models.ErrInvalidRole
	}

	key := snapshotKey(role, userID, token)
	if items, ok := s.cache.Get(key); ok {
		return items, nil
	}

	items, err := s.lister.ListContent(ctx, role, userID, token)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, items, s.cfg.SnapshotCacheTTL)
	s.syncIndex(ctx, items)
	return items, nil
}

// Reindex pulls the admin snapshot and writes it to the content index
func (s *DashboardService) Reindex(ctx context.Context, token string) (*models.ReindexResult, error) {
	if s.indexer == nil || !s.indexer.Enabled() {
		return nil, ErrIndexDisabled
	}

	started := s.clock()
	items, err := s.lister.ListContent(ctx, models.RoleAdmin, "", token)
	if err != nil {
		return nil, err
	}

	written, err := s.indexer.Sync(ctx, items)
	result := &models.ReindexResult{
		Fetched:    len(items),
		Indexed:    written,
		Failed:     len(items) - written,
		StartedAt:  started,
		DurationMS: s.clock().Sub(started).Milliseconds(),
	}
	if err != nil {
		result.Error = err.Error()
	}
	log.Printf("[dashboard] reindex fetched=%d indexed=%d failed=%d", result.Fetched, result.Indexed, result.Failed)
	return result, nil
}

func (s *DashboardService) estimate(ctx context.Context, items []analytics.ContentItem, window int) analytics.EstimatedTrend {
	_, span := otel.Tracer("services").Start(ctx, "analytics.EstimateTrend")
	defer span.End()

	trend := analytics.EstimateTrend(items, window, s.clock())
	span.SetAttributes(
		attribute.Int("trend.window_days", window),
		attribute.Int("trend.items_used", trend.ItemsUsed),
		attribute.Int("trend.skipped", trend.Skipped),
	)
	return trend
}

func (s *DashboardService) syncIndex(ctx context.Context, items []analytics.ContentItem) {
	if s.indexer == nil || !s.indexer.Enabled() || len(items) == 0 {
		return
	}

	// detach from the request so the sync outlives it
	syncCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.syncTimeout)
	s.syncWG.Add(1)
	go func() {
		defer s.syncWG.Done()
		defer cancel()
		if _, err := s.indexer.Sync(syncCtx, items); err != nil {
			log.Printf("[dashboard] index sync failed: %v", err)
		}
	}()
}

func (s *DashboardService) resolveWindow(window int) (int, error) {
	if window == 0 {
		return s.cfg.DefaultWindowDays, nil
	}
	if !s.cfg.IsWindowAllowed(window) {
		return 0, fmt.Errorf("%w: %d (allowed: %s)", ErrWindowNotAllowed, window, joinInts(s.cfg.AllowedWindows))
	}
	return window, nil
}

func (s *DashboardService) clock() time.Time {
	return s.now().In(s.cfg.Location)
}

// the CMS may scope results by caller, so the (hashed) token is part of the key
func snapshotKey(role models.Role, userID, token string) string {
	sum := sha256.Sum256([]byte(token))
	return string(role) + "|" + strings.TrimSpace(userID) + "|" + hex.EncodeToString(sum[:8])
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
