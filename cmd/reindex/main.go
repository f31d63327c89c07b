package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/kalam-platform/app-analytics/internal/analytics"
	"github.com/kalam-platform/app-analytics/internal/cms"
	"github.com/kalam-platform/app-analytics/internal/config"
	"github.com/kalam-platform/app-analytics/internal/models"
	"github.com/kalam-platform/app-analytics/internal/observability"
	"github.com/kalam-platform/app-analytics/internal/typesense"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type ReindexConfig struct {
	Kind      string // blog, kalam or empty for both
	ContentID int64
	Workers   int
	DryRun    bool
	Recreate  bool
}

type ReindexStats struct {
	Total     int64
	Processed int64
	Skipped   int64
	Errors    int64
	StartTime time.Time
}

type Reindexer struct {
	runID  string
	config *ReindexConfig
	cms    *cms.Client
	index  *typesense.Client
	token  string
	stats  *ReindexStats
}

func main() {
	kind := flag.String("kind", "", "Only index this kind: blog or kalam")
	contentID := flag.Int64("id", 0, "Only index the content item with this id")
	workers := flag.Int("workers", 3, "Parallel upsert workers")
	dryRun := flag.Bool("dry-run", false, "Fetch and build documents without writing")
	recreate := flag.Bool("recreate", false, "Drop and recreate the collection first")

	flag.Parse()

	cfg := config.LoadConfig()

	observability.InitTracer(cfg, "reindex")
	defer observability.ShutdownTracer()

	reindexCfg := &ReindexConfig{
		Kind:      *kind,
		ContentID: *contentID,
		Workers:   *workers,
		DryRun:    *dryRun,
		Recreate:  *recreate,
	}

	reindexer, err := NewReindexer(reindexCfg, cfg)
	if err != nil {
		log.Fatalf("Failed to create reindexer: %v", err)
	}

	ctx := context.Background()
	if err := reindexer.Run(ctx); err != nil {
		log.Fatalf("Reindex failed: %v", err)
	}
}

func NewReindexer(cfg *ReindexConfig, appCfg *config.Config) (*Reindexer, error) {
	if cfg.Kind != "" && cfg.Kind != string(analytics.KindBlog) && cfg.Kind != string(analytics.KindKalam) {
		return nil, fmt.Errorf("invalid -kind %q", cfg.Kind)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	index := typesense.NewClient(appCfg)
	if !index.Enabled() && !cfg.DryRun {
		return nil, errors.New("TYPESENSE_ENABLED is false; use -dry-run or enable the index")
	}
	if appCfg.CMS.ServiceToken == "" {
		log.Println("[reindex] CMS_SERVICE_TOKEN is empty, admin endpoints will probably reject the request")
	}

	return &Reindexer{
		runID:  uuid.NewString(),
		config: cfg,
		cms:    cms.NewClient(appCfg.CMS),
		index:  index,
		token:  appCfg.CMS.ServiceToken,
		stats:  &ReindexStats{StartTime: time.Now()},
	}, nil
}

func (r *Reindexer) Run(ctx context.Context) error {
	ctx, span := otel.Tracer("reindex").Start(ctx, "reindex.Run")
	defer span.End()
	span.SetAttributes(attribute.String("reindex.run_id", r.runID))

	log.Printf("[reindex %s] starting", r.runID)
	log.Printf("Collection: %s", r.index.Collection())
	log.Printf("Kind: %s", orAll(r.config.Kind))
	log.Printf("Workers: %d", r.config.Workers)
	log.Printf("Dry-run: %v", r.config.DryRun)

	if !r.config.DryRun {
		if r.config.Recreate {
			if err := r.index.Recreate(ctx); err != nil {
				return fmt.Errorf("recreating collection: %w", err)
			}
		} else if err := r.index.EnsureCollection(ctx); err != nil {
			return fmt.Errorf("ensuring collection: %w", err)
		}
		if _, err := r.index.LoadSynonyms(ctx, typesense.DefaultSynonyms); err != nil {
			log.Printf("[reindex %s] %v", r.runID, err)
		}
	}

	items, err := r.cms.ListContent(ctx, models.RoleAdmin, "", r.token)
	if err != nil {
		return fmt.Errorf("fetching admin snapshot: %w", err)
	}

	items = r.selectItems(items)
	atomic.StoreInt64(&r.stats.Total, int64(len(items)))
	log.Printf("Items to index: %d", len(items))

	var wg sync.WaitGroup
	itemChan := make(chan analytics.ContentItem, r.config.Workers*2)

	for i := 0; i < r.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for item := range itemChan {
				if err := r.processItem(ctx, item); err != nil {
					log.Printf("Worker %d - error: %v", workerID, err)
					atomic.AddInt64(&r.stats.Errors, 1)
				}
			}
		}(i)
	}

	for i, item := range items {
		itemChan <- item
		if (i+1)%100 == 0 {
			log.Printf("Progress: %d/%d queued, %d indexed, %d errors",
				i+1, len(items), atomic.LoadInt64(&r.stats.Processed), atomic.LoadInt64(&r.stats.Errors))
		}
	}

	close(itemChan)
	wg.Wait()

	span.SetAttributes(
		attribute.Int64("reindex.processed", r.stats.Processed),
		attribute.Int64("reindex.errors", r.stats.Errors),
	)
	r.printStats()

	if r.stats.Errors > 0 && r.stats.Processed == 0 {
		return fmt.Errorf("all %d upserts failed", r.stats.Errors)
	}
	return nil
}

func (r *Reindexer) selectItems(items []analytics.ContentItem) []analytics.ContentItem {
	out := make([]analytics.ContentItem, 0, len(items))
	for _, item := range items {
		if r.config.Kind != "" && string(item.Kind) != r.config.Kind {
			atomic.AddInt64(&r.stats.Skipped, 1)
			continue
		}
		if r.config.ContentID > 0 && item.ID != r.config.ContentID {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (r *Reindexer) processItem(ctx context.Context, item analytics.ContentItem) error {
	doc := typesense.BuildDocument(item)

	if r.config.DryRun {
		log.Printf("[DRY-RUN] would upsert %s (%q)", doc.ID, doc.Title)
		atomic.AddInt64(&r.stats.Processed, 1)
		return nil
	}

	if err := r.index.Upsert(ctx, doc); err != nil {
		return err
	}

	atomic.AddInt64(&r.stats.Processed, 1)
	return nil
}

func (r *Reindexer) printStats() {
	duration := time.Since(r.stats.StartTime)
	log.Printf("\n=== Reindex %s ===", r.runID)
	log.Printf("Total items: %d", r.stats.Total)
	log.Printf("Indexed: %d", r.stats.Processed)
	log.Printf("Skipped by kind: %d", r.stats.Skipped)
	log.Printf("Errors: %d", r.stats.Errors)
	log.Printf("Elapsed: %v", duration)
	if r.stats.Processed > 0 {
		log.Printf("Average per item: %v", duration/time.Duration(r.stats.Processed))
	}

	if r.config.DryRun {
		log.Println("\nDRY-RUN: nothing was written")
	}
}

func orAll(kind string) string {
	if kind == "" {
		return "all"
	}
	return kind
}
