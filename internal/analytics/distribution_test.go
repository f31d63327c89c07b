package analytics

import (
	"reflect"
	"testing"
)

func TestGroupCountFirstSeenOrder(t *testing.T) {
	items := []ContentItem{
		{Category: "A"},
		{Category: "A"},
		{Category: ""},
	}

	got := Distribution(items, FieldCategory)
	want := []ChartPoint{
		{Label: "A", Value: 2},
		{Label: "Uncategorized", Value: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Distribution() = %v, want %v", got, want)
	}
}

func TestDistributionFields(t *testing.T) {
	items := []ContentItem{
		{Kind: KindKalam, Theme: "Naat", Language: "Urdu", Status: "approved"},
		{Kind: KindBlog, Theme: "  ", Language: "English", Status: "pending"},
		{Kind: KindKalam, Theme: "Hamd", Language: "Urdu", Status: "approved"},
		{Kind: KindKalam, Theme: "Naat", Language: "", Status: "approved"},
	}

	tests := []struct {
		field Field
		want  []ChartPoint
	}{
		{FieldTheme, []ChartPoint{{"Naat", 2}, {"Other", 1}, {"Hamd", 1}}},
		{FieldLanguage, []ChartPoint{{"Urdu", 2}, {"English", 1}, {"Other", 1}}},
		{FieldStatus, []ChartPoint{{"approved", 3}, {"pending", 1}}},
		{FieldKind, []ChartPoint{{"kalam", 3}, {"blog", 1}}},
		{FieldCategory, []ChartPoint{{"Uncategorized", 4}}},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			got := Distribution(items, tt.field)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Distribution(%s) = %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestGroupCountEmpty(t *testing.T) {
	got := Distribution(nil, FieldCategory)
	if got == nil || len(got) != 0 {
		t.Errorf("Distribution(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		input   string
		want    Field
		wantErr bool
	}{
		{"", FieldCategory, false},
		{"Category", FieldCategory, false},
		{" theme ", FieldTheme, false},
		{"language", FieldLanguage, false},
		{"status", FieldStatus, false},
		{"kind", FieldKind, false},
		{"partnership", "", true},
	}

	for _, tt := range tests {
		got, err := ParseField(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseField(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseField(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
