package cms

import (
	"errors"
	"testing"
	"time"

	"github.com/kalam-platform/app-analytics/internal/analytics"
)

func TestDecodeItemsShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2},
		{"data envelope", `{"data":[{"id":1}]}`, 1},
		{"kind envelope", `{"kalams":[{"id":1},{"id":2},{"id":3}]}`, 3},
		{"nested envelope", `{"data":{"items":[{"id":1}]}}`, 1},
		{"null data", `{"data":null}`, 0},
		{"non-object records dropped", `[{"id":1}, 42, "x", null]`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := DecodeItems([]byte(tt.body), analytics.KindKalam)
			if err != nil {
				t.Fatalf("DecodeItems() error = %v", err)
			}
			if len(items) != tt.want {
				t.Errorf("got %d items, want %d", len(items), tt.want)
			}
		})
	}
}

func TestDecodeItemsInvalid(t *testing.T) {
	for _, body := range []string{"", "   ", "not json", `{"message":"ok"}`, `{"data":"nope"}`} {
		if _, err := DecodeItems([]byte(body), analytics.KindBlog); !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("DecodeItems(%q) error = %v, want ErrInvalidPayload", body, err)
		}
	}
}

func TestDecodeItemsFields(t *testing.T) {
	body := `[{
		"id": 12,
		"title": "Ya Nabi Salam Alaika",
		"category": {"name": "Naat"},
		"theme": "Devotion",
		"language": "Urdu",
		"status": "approved",
		"writer_name": "Ahmed",
		"content": "**Ya Nabi**",
		"created_at": "2024-01-01T10:00:00Z",
		"published_at": null,
		"view_count": 150,
		"like_count": "12",
		"comment_count": -3
	}]`

	items, err := DecodeItems([]byte(body), analytics.KindKalam)
	if err != nil {
		t.Fatalf("DecodeItems() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items", len(items))
	}

	item := items[0]
	if item.ID != 12 || item.Kind != analytics.KindKalam || item.Title != "Ya Nabi Salam Alaika" {
		t.Errorf("identity fields = %+v", item)
	}
	if item.Category != "Naat" || item.Theme != "Devotion" || item.Language != "Urdu" || item.Status != "approved" {
		t.Errorf("categorical fields = %+v", item)
	}
	if item.Author != "Ahmed" || item.Body != "**Ya Nabi**" {
		t.Errorf("author/body = %q/%q", item.Author, item.Body)
	}
	if item.CreatedAt == nil || !item.CreatedAt.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", item.CreatedAt)
	}
	if item.PublishedAt != nil {
		t.Errorf("PublishedAt = %v, want nil", item.PublishedAt)
	}
	if item.LifetimeViews != 150 || item.LifetimeLikes != 12 || item.LifetimeComments != 0 {
		t.Errorf("counters = %d/%d/%d, want 150/12/0", item.LifetimeViews, item.LifetimeLikes, item.LifetimeComments)
	}
}

func TestDecodeItemsMissingCounters(t *testing.T) {
	items, err := DecodeItems([]byte(`[{"id":1,"created_at":"2024-01-01"}]`), analytics.KindBlog)
	if err != nil {
		t.Fatalf("DecodeItems() error = %v", err)
	}
	if items[0].LifetimeViews != 0 || items[0].LifetimeLikes != 0 || items[0].LifetimeComments != 0 {
		t.Errorf("absent counters should default to 0: %+v", items[0])
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2024-01-15T08:30:00Z", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), true},
		{"2024-01-15T08:30:00.123456Z", time.Date(2024, 1, 15, 8, 30, 0, 123456000, time.UTC), true},
		{"2024-01-15T13:30:00+05:00", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), true},
		{"2024-01-15T08:30:00", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), true},
		{"2024-01-15 08:30:00", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), true},
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, false},
		{"2024-13-45", time.Time{}, false},
	}

	for _, tt := range tests {
		got := ParseTimestamp(tt.input)
		if (got != nil) != tt.ok {
			t.Errorf("ParseTimestamp(%q) = %v, ok want %v", tt.input, got, tt.ok)
			continue
		}
		if got != nil && !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDecodedItemsFeedEstimator(t *testing.T) {
	body := `[
		{"id":1,"created_at":"2024-01-01","published_at":"2024-01-01","view_count":50},
		{"id":2,"created_at":"2024-01-10","published_at":null,"view_count":30},
		{"id":3,"created_at":"garbage","view_count":999}
	]`
	items, err := DecodeItems([]byte(body), analytics.KindKalam)
	if err != nil {
		t.Fatalf("DecodeItems() error = %v", err)
	}

	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	trend := analytics.EstimateTrend(items, 15, now)
	if trend.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", trend.Skipped)
	}
	if got := trend.Buckets[14].Views; got != 10 {
		t.Errorf("Jan 15 views = %d, want 10", got)
	}
}
