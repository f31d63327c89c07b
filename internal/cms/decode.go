package cms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kalam-platform/app-analytics/internal/analytics"
)

// timestampLayouts are tried in order; the CMS mixes ISO-8601 variants
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// envelopeKeys are the object keys that may wrap a list response
var envelopeKeys = []string{"data", "results", "items", "blogs", "kalams"}

// DecodeItems parses a list response into content items. The body may be a
// bare JSON array or an object wrapping the array. Records that are not
// objects are dropped; a bad field never fails the whole payload.
func DecodeItems(body []byte, kind analytics.ContentKind) ([]analytics.ContentItem, error) {
	records, err := unwrapList(body)
	if err != nil {
		return nil, err
	}

	items := make([]analytics.ContentItem, 0, len(records))
	for _, raw := range records {
		var record map[string]interface{}
		if err := json.Unmarshal(raw, &record); err != nil || record == nil {
			continue
		}
		items = append(items, toContentItem(record, kind))
	}
	return items, nil
}

func unwrapList(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidPayload)
	}

	if trimmed[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return list, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	for _, key := range envelopeKeys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return []json.RawMessage{}, nil
		}
		// nested envelope, e.g. {"data": {"items": [...]}}
		if inner := bytes.TrimSpace(raw); len(inner) > 0 && inner[0] == '{' {
			return unwrapList(inner)
		}
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, key, err)
		}
		return list, nil
	}
	return nil, fmt.Errorf("%w: no list found in response object", ErrInvalidPayload)
}

func toContentItem(m map[string]interface{}, kind analytics.ContentKind) analytics.ContentItem {
	return analytics.ContentItem{
		ID:       getInt64(m, "id"),
		Kind:     kind,
		Title:    firstString(m, "title", "name"),
		Category: getString(m, "category"),
		Theme:    getString(m, "theme"),
		Language: getString(m, "language"),
		Status:   getString(m, "status"),
		Author:   firstString(m, "author", "author_name", "writer_name", "vocalist_name"),
		Body:     firstString(m, "content", "body"),

		CreatedAt:   getTime(m, "created_at"),
		PublishedAt: getTime(m, "published_at"),

		LifetimeViews:    getCounter(m, "view_count"),
		LifetimeLikes:    getCounter(m, "like_count"),
		LifetimeComments: getCounter(m, "comment_count"),
	}
}

// ParseTimestamp parses the CMS timestamp formats. It returns nil for
// missing or unparseable values so the estimator can skip the item.
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		switch val := v.(type) {
		case string:
			return strings.TrimSpace(val)
		case map[string]interface{}:
			// relations are sometimes expanded, e.g. "category": {"name": "Naat"}
			return getString(val, "name")
		}
	}
	return ""
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s := getString(m, key); s != "" {
			return s
		}
	}
	return ""
}

func getInt64(m map[string]interface{}, key string) int64 {
	if v, ok := m[key]; ok {
		switch val := v.(type) {
		case float64:
			return int64(val)
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}

// getCounter reads a lifetime counter, defaulting to 0 when absent or negative
func getCounter(m map[string]interface{}, key string) int64 {
	n := getInt64(m, key)
	if n < 0 {
		return 0
	}
	return n
}

func getTime(m map[string]interface{}, key string) *time.Time {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	switch val := v.(type) {
	case string:
		return ParseTimestamp(val)
	case float64:
		if val <= 0 {
			return nil
		}
		t := time.Unix(int64(val), 0).UTC()
		return &t
	}
	return nil
}
