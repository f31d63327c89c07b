package analytics

import "strings"

const (
	FallbackCategory = "Uncategorized"
	FallbackOther    = "Other"
)

// Field is a categorical attribute of ContentItem that can be grouped on
type Field string

const (
	FieldCategory Field = "category"
	FieldTheme    Field = "theme"
	FieldLanguage Field = "language"
	FieldStatus   Field = "status"
	FieldKind     Field = "kind"
)

// ParseField parses a grouping field name. Empty means category.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FieldCategory, nil
	case FieldCategory, FieldTheme, FieldLanguage, FieldStatus, FieldKind:
		return f, nil
	}
	return "", ErrInvalidField
}

// Fallback returns the label used for items with no value in this field
func (f Field) Fallback() string {
	if f == FieldCategory {
		return FallbackCategory
	}
	return FallbackOther
}

// Extract returns the raw field value of an item
func (f Field) Extract(item ContentItem) string {
	switch f {
	case FieldTheme:
		return item.Theme
	case FieldLanguage:
		return item.Language
	case FieldStatus:
		return item.Status
	case FieldKind:
		return string(item.Kind)
	default:
		return item.Category
	}
}

// GroupCount counts items per key in order of first occurrence. Blank keys
// are counted under fallback.
func GroupCount(items []ContentItem, key func(ContentItem) string, fallback string) []ChartPoint {
	index := make(map[string]int)
	points := []ChartPoint{}

	for _, item := range items {
		label := strings.TrimSpace(key(item))
		if label == "" {
			label = fallback
		}
		if pos, ok := index[label]; ok {
			points[pos].Value++
			continue
		}
		index[label] = len(points)
		points = append(points, ChartPoint{Label: label, Value: 1})
	}

	return points
}

// Distribution groups items by a field with that field's fallback label
func Distribution(items []ContentItem, field Field) []ChartPoint {
	return GroupCount(items, field.Extract, field.Fallback())
}
