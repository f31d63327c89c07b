package insights

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kalam-platform/app-analytics/internal/analytics"
	"github.com/kalam-platform/app-analytics/internal/config"
)

type fakeGenerator struct {
	calls  int
	text   string
	err    error
	prompt string
	system string
}

func (f *fakeGenerator) Generate(ctx context.Context, model, system, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	f.system = system
	return f.text, f.err
}

func sampleInput() Input {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	published := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	items := []analytics.ContentItem{
		{ID: 1, Kind: analytics.KindKalam, Title: "Mera Nabi", PublishedAt: &published, LifetimeViews: 50, LifetimeLikes: 5},
	}
	return Input{
		Role:    "writer",
		Metric:  analytics.MetricViews,
		Trend:   analytics.EstimateTrend(items, 7, now),
		Summary: analytics.Summarize(items, now, 5),
	}
}

func TestDescribeUnavailable(t *testing.T) {
	n := NewNarrator(context.Background(), &config.Config{GeminiChatModel: "gemini-2.0-flash", GeminiCacheTTLMinutes: 30})
	if n.IsAvailable() {
		t.Fatal("narrator without API key should be unavailable")
	}
	if _, err := n.Describe(context.Background(), sampleInput()); !errors.Is(err, ErrInsightsUnavailable) {
		t.Errorf("Describe() error = %v, want ErrInsightsUnavailable", err)
	}

	var nilNarrator *Narrator
	if nilNarrator.IsAvailable() {
		t.Error("nil narrator should be unavailable")
	}
}

func TestDescribeCachesByPrompt(t *testing.T) {
	gen := &fakeGenerator{text: "  Views are estimated to be rising.  "}
	n := NewNarratorWithGenerator(gen, "gemini-test", time.Minute)

	first, err := n.Describe(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if first.Text != "Views are estimated to be rising." || first.Cached || first.Model != "gemini-test" {
		t.Errorf("first narrative = %+v", first)
	}

	second, err := n.Describe(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if !second.Cached || second.Text != first.Text {
		t.Errorf("second narrative = %+v, want cached copy", second)
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls)
	}

	other := sampleInput()
	other.Metric = analytics.MetricLikes
	if _, err := n.Describe(context.Background(), other); err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if gen.calls != 2 {
		t.Errorf("different metric should miss the cache, calls = %d", gen.calls)
	}
}

func TestDescribeErrors(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
		want error
	}{
		{"generator error", &fakeGenerator{err: errors.New("quota exceeded")}, ErrGenerationFailed},
		{"blank text", &fakeGenerator{text: "   "}, ErrEmptyNarrative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNarratorWithGenerator(tt.gen, "gemini-test", time.Minute)
			_, err := n.Describe(context.Background(), sampleInput())
			if err == nil {
				t.Fatal("Describe() should fail")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	n := NewNarratorWithGenerator(gen, "gemini-test", 0)
	if _, err := n.Describe(context.Background(), sampleInput()); err != nil {
		t.Fatalf("Describe() error = %v", err)
	}

	for _, want := range []string{"Dashboard: writer", "last 7 days", "Jan 15=", "\"Mera Nabi\" (kalam) 50 views"} {
		if !strings.Contains(gen.prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, gen.prompt)
		}
	}
	if !strings.Contains(gen.system, "ESTIMATES") {
		t.Error("system instruction must state the numbers are estimates")
	}

	if BuildPrompt(sampleInput()) != BuildPrompt(sampleInput()) {
		t.Error("BuildPrompt should be deterministic")
	}
}

func TestDescribeWithoutCacheTTL(t *testing.T) {
	gen := &fakeGenerator{text: "Estimated views are flat."}
	n := NewNarratorWithGenerator(gen, "gemini-test", 0)

	for i := 0; i < 2; i++ {
		got, err := n.Describe(context.Background(), sampleInput())
		if err != nil {
			t.Fatalf("Describe() error = %v", err)
		}
		if got.Cached {
			t.Errorf("call %d returned a cached narrative with TTL 0", i+1)
		}
	}
	if gen.calls != 2 {
		t.Errorf("generator calls = %d, want 2", gen.calls)
	}
}

func TestNarrativeCacheIsBounded(t *testing.T) {
	gen := &fakeGenerator{text: "Estimated views are steady."}
	n := NewNarratorWithGenerator(gen, "gemini-test", time.Hour)

	in := sampleInput()
	for i := 0; i < narrativeCacheSize+50; i++ {
		in.Role = "writer-" + strings.Repeat("x", i)
		if _, err := n.Describe(context.Background(), in); err != nil {
			t.Fatalf("Describe() error = %v", err)
		}
	}
	if size := n.cache.Size(); size != narrativeCacheSize {
		t.Errorf("cache size = %d, want %d", size, narrativeCacheSize)
	}
}
