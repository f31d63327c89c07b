// Package typesense keeps a searchable copy of dashboard content in a
// Typesense collection. The CMS stays the source of truth; the index is
// refreshed from snapshots and may lag behind it.
package typesense

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/kalam-platform/app-analytics/internal/analytics"
	"github.com/kalam-platform/app-analytics/internal/config"
	"github.com/kalam-platform/app-analytics/internal/utils"
	"github.com/typesense/typesense-go/v3/typesense"
	"github.com/typesense/typesense-go/v3/typesense/api"
	"github.com/typesense/typesense-go/v3/typesense/api/pointer"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// excerpt length stored in search_content
	searchContentRunes = 2000
	maxPerPage         = 100
	maxFacetValues     = 100
)

var (
	ErrDisabled          = errors.New("content index is disabled")
	ErrInvalidFacetField = errors.New("invalid facet field (use: category, theme, language, status, kind, author)")
)

// FacetFields are the document fields that can be aggregated
var FacetFields = []string{"category", "theme", "language", "status", "kind", "author"}

// ContentDocument is the indexed form of a blog post or kalam
type ContentDocument struct {
	ID            string `json:"id"`
	ContentID     int64  `json:"content_id"`
	Kind          string `json:"kind"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	Theme         string `json:"theme"`
	Language      string `json:"language"`
	Status        string `json:"status"`
	Author        string `json:"author"`
	SearchContent string `json:"search_content"`
	ViewCount     int64  `json:"view_count"`
	LikeCount     int64  `json:"like_count"`
	CommentCount  int64  `json:"comment_count"`
	CreatedAt     int64  `json:"created_at"`
	PublishedAt   int64  `json:"published_at,omitempty"`
}

// SearchQuery selects content from the index
type SearchQuery struct {
	Query    string
	Kind     string
	Category string
	Status   string
	Page     int
	PerPage  int
}

// SearchResult is one page of matching documents
type SearchResult struct {
	Found     int               `json:"found"`
	Page      int               `json:"page"`
	PerPage   int               `json:"per_page"`
	Documents []ContentDocument `json:"documents"`
}

// Client wraps the Typesense client for the content collection
type Client struct {
	client     *typesense.Client
	collection string
	enabled    bool
}

func NewClient(cfg *config.Config) *Client {
	typesenseClient := typesense.NewClient(
		typesense.WithServer(cfg.TypesenseURL()),
		typesense.WithAPIKey(cfg.TypesenseAPIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	return &Client{
		client:     typesenseClient,
		collection: cfg.TypesenseCollection,
		enabled:    cfg.TypesenseEnabled,
	}
}

// Enabled reports whether the index is configured for use
func (c *Client) Enabled() bool {
	return c != nil && c.enabled
}

// Collection returns the collection name
func (c *Client) Collection() string {
	return c.collection
}

// Health checks that the Typesense server answers
func (c *Client) Health(ctx context.Context) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	ok, err := c.client.Health(ctx, 2*time.Second)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("typesense reported unhealthy")
	}
	return nil
}

// EnsureCollection creates the content collection when it does not exist
func (c *Client) EnsureCollection(ctx context.Context) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	if _, err := c.client.Collection(c.collection).Retrieve(ctx); err == nil {
		return nil
	}

	if _, err := c.client.Collections().Create(ctx, contentSchema(c.collection)); err != nil {
		// another replica may have created it in the meantime
		if _, retrieveErr := c.client.Collection(c.collection).Retrieve(ctx); retrieveErr == nil {
			return nil
		}
		log.Printf("[typesense] failed to create collection %s: %v", c.collection, err)
		return fmt.Errorf("creating collection %s: %w", c.collection, err)
	}

	log.Printf("[typesense] collection %s created", c.collection)
	return nil
}

// Recreate drops and recreates the content collection
func (c *Client) Recreate(ctx context.Context) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	if _, err := c.client.Collection(c.collection).Delete(ctx); err != nil && !isNotFound(err) {
		return fmt.Errorf("dropping collection %s: %w", c.collection, err)
	}
	log.Printf("[typesense] collection %s dropped", c.collection)
	return c.EnsureCollection(ctx)
}

func contentSchema(name string) *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: name,
		Fields: []api.Field{
			{Name: "content_id", Type: "int64"},
			{Name: "kind", Type: "string", Facet: pointer.True()},
			{Name: "slug", Type: "string", Index: pointer.False(), Optional: pointer.True()},
			{Name: "title", Type: "string"},
			{Name: "category", Type: "string", Facet: pointer.True()},
			{Name: "theme", Type: "string", Facet: pointer.True()},
			{Name: "language", Type: "string", Facet: pointer.True()},
			{Name: "status", Type: "string", Facet: pointer.True()},
			{Name: "author", Type: "string", Facet: pointer.True()},
			{Name: "search_content", Type: "string"},
			{Name: "view_count", Type: "int64", Sort: pointer.True()},
			{Name: "like_count", Type: "int64", Sort: pointer.True()},
			{Name: "comment_count", Type: "int64", Sort: pointer.True()},
			{Name: "created_at", Type: "int64", Sort: pointer.True()},
			{Name: "published_at", Type: "int64", Optional: pointer.True(), Sort: pointer.True()},
		},
		DefaultSortingField: pointer.String("created_at"),
	}
}

// BuildDocument converts a content item to its indexed form. Categorical
// fields use the same fallbacks as the dashboard distributions.
func BuildDocument(item analytics.ContentItem) ContentDocument {
	doc := ContentDocument{
		ID:           utils.DocumentID(string(item.Kind), item.ID),
		ContentID:    item.ID,
		Kind:         string(item.Kind),
		Slug:         utils.GenerateSlug(item.Title, item.ID),
		Title:        item.Title,
		Category:     orFallback(item.Category, analytics.FallbackCategory),
		Theme:        orFallback(item.Theme, analytics.FallbackOther),
		Language:     orFallback(item.Language, analytics.FallbackOther),
		Status:       orFallback(item.Status, analytics.FallbackOther),
		Author:       orFallback(item.Author, analytics.FallbackOther),
		ViewCount:    max(item.LifetimeViews, 0),
		LikeCount:    max(item.LifetimeLikes, 0),
		CommentCount: max(item.LifetimeComments, 0),
	}

	doc.SearchContent = utils.FoldAccents(strings.Join(nonEmpty(
		item.Title,
		utils.Excerpt(item.Body, searchContentRunes),
		item.Author,
		item.Category,
		item.Theme,
	), " "))

	if item.CreatedAt != nil {
		doc.CreatedAt = item.CreatedAt.Unix()
	}
	if item.PublishedAt != nil {
		doc.PublishedAt = item.PublishedAt.Unix()
	}
	if doc.CreatedAt == 0 {
		doc.CreatedAt = doc.PublishedAt
	}
	return doc
}

// Sync upserts the items into the collection and returns how many were
// written. It keeps going after a failed document and reports the first error.
func (c *Client) Sync(ctx context.Context, items []analytics.ContentItem) (int, error) {
	if !c.Enabled() {
		return 0, ErrDisabled
	}

	ctx, span := otel.Tracer("typesense").Start(ctx, "typesense.Sync")
	defer span.End()
	span.SetAttributes(attribute.Int("index.items", len(items)))

	if err := c.EnsureCollection(ctx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	written := 0
	var firstErr error
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := c.Upsert(ctx, BuildDocument(item)); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		written++
	}

	span.SetAttributes(attribute.Int("index.written", written))
	if firstErr != nil {
		span.RecordError(firstErr)
		span.SetStatus(codes.Error, "partial sync")
		log.Printf("[typesense] synced %d/%d documents, first error: %v", written, len(items), firstErr)
	}
	return written, firstErr
}

// Upsert writes a single document
func (c *Client) Upsert(ctx context.Context, doc ContentDocument) error {
	if _, err := c.client.Collection(c.collection).Documents().Upsert(ctx, doc, &api.DocumentIndexParameters{}); err != nil {
		return fmt.Errorf("upserting %s: %w", doc.ID, err)
	}
	return nil
}

// Search runs a full-text query over titles and bodies
func (c *Client) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	ctx, span := otel.Tracer("typesense").Start(ctx, "typesense.Search")
	defer span.End()

	page, perPage := normalizePaging(q.Page, q.PerPage)
	params := &api.SearchCollectionParams{
		Q:       pointer.String(queryText(q.Query)),
		QueryBy: pointer.String("title,search_content,author"),
		Page:    pointer.Int(page),
		PerPage: pointer.Int(perPage),
	}
	if filter := BuildFilter(q); filter != "" {
		params.FilterBy = pointer.String(filter)
	}
	if strings.TrimSpace(q.Query) == "" {
		params.SortBy = pointer.String("view_count:desc")
	}

	result, err := c.client.Collection(c.collection).Documents().Search(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return nil, fmt.Errorf("searching %s: %w", c.collection, err)
	}

	resultMap, err := toMap(result)
	if err != nil {
		return nil, err
	}

	out := &SearchResult{
		Found:     intValue(resultMap["found"]),
		Page:      page,
		PerPage:   perPage,
		Documents: parseHits(resultMap),
	}
	span.SetAttributes(attribute.Int("search.found", out.Found))
	return out, nil
}

// FacetCounts returns value counts for a field across the whole collection,
// ordered by count
func (c *Client) FacetCounts(ctx context.Context, field string) ([]analytics.ChartPoint, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	field = utils.MatchKey(field, FacetFields)
	if !isFacetField(field) {
		return nil, ErrInvalidFacetField
	}

	params := &api.SearchCollectionParams{
		Q:              pointer.String("*"),
		FacetBy:        pointer.String(field),
		MaxFacetValues: pointer.Int(maxFacetValues),
		Page:           pointer.Int(1),
		PerPage:        pointer.Int(0),
	}

	result, err := c.client.Collection(c.collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("faceting %s on %s: %w", field, c.collection, err)
	}

	resultMap, err := toMap(result)
	if err != nil {
		return nil, err
	}
	return ParseFacetCounts(resultMap, field), nil
}

// BuildFilter renders the filter_by expression for a query
func BuildFilter(q SearchQuery) string {
	var clauses []string
	if v := strings.TrimSpace(q.Kind); v != "" {
		clauses = append(clauses, "kind:="+quoteValue(strings.ToLower(v)))
	}
	if v := strings.TrimSpace(q.Category); v != "" {
		clauses = append(clauses, "category:="+quoteValue(v))
	}
	if v := strings.TrimSpace(q.Status); v != "" {
		clauses = append(clauses, "status:="+quoteValue(v))
	}
	return strings.Join(clauses, " && ")
}

// ParseFacetCounts extracts the counts of one field from a search response
func ParseFacetCounts(resultMap map[string]interface{}, field string) []analytics.ChartPoint {
	points := []analytics.ChartPoint{}

	facetCounts, ok := resultMap["facet_counts"].([]interface{})
	if !ok {
		return points
	}
	for _, facet := range facetCounts {
		facetMap, ok := facet.(map[string]interface{})
		if !ok || facetMap["field_name"] != field {
			continue
		}
		counts, _ := facetMap["counts"].([]interface{})
		for _, count := range counts {
			countMap, ok := count.(map[string]interface{})
			if !ok {
				continue
			}
			value, _ := countMap["value"].(string)
			if value == "" {
				continue
			}
			points = append(points, analytics.ChartPoint{
				Label: value,
				Value: int64(intValue(countMap["count"])),
			})
		}
	}
	return points
}

func parseHits(resultMap map[string]interface{}) []ContentDocument {
	docs := []ContentDocument{}

	hits, _ := resultMap["hits"].([]interface{})
	for _, h := range hits {
		hitMap, ok := h.(map[string]interface{})
		if !ok {
			continue
		}
		raw, ok := hitMap["document"]
		if !ok {
			continue
		}
		b, err := json.Marshal(raw)
		if err != nil {
			continue
		}
		var doc ContentDocument
		if err := json.Unmarshal(b, &doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

func toMap(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializing search result: %w", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("deserializing search result: %w", err)
	}
	return m, nil
}

func normalizePaging(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func queryText(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return "*"
	}
	return utils.FoldAccents(q)
}

// backticks let values contain spaces and commas
func quoteValue(v string) string {
	return "`" + strings.ReplaceAll(v, "`", "") + "`"
}

func isFacetField(field string) bool {
	for _, f := range FacetFields {
		if f == field {
			return true
		}
	}
	return false
}

func isNotFound(err error) bool {
	return strings.Contains(err.Error(), "404") || strings.Contains(err.Error(), "Not found")
}

func intValue(v interface{}) int {
	if f, ok := v.(float64); ok {
		return int(f)
	}
	return 0
}

func orFallback(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
