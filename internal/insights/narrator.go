// Package insights turns an estimated engagement trend into a short written
// summary using a Gemini chat model.
package insights

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/kalam-platform/app-analytics/internal/cache"
	"github.com/kalam-platform/app-analytics/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"
)

const narrativeCacheSize = 200

var (
	ErrInsightsUnavailable = errors.New("insights are not configured")
	ErrEmptyNarrative      = errors.New("model returned an empty narrative")
	ErrGenerationFailed    = errors.New("narrative generation failed")
)

// Generator produces text for a prompt
type Generator interface {
	Generate(ctx context.Context, model, system, prompt string) (string, error)
}

// Narrative is a generated trend description
type Narrative struct {
	Text        string
	Model       string
	Cached      bool
	GeneratedAt time.Time
}

// Narrator describes trends, caching results by prompt
type Narrator struct {
	generator Generator
	model     string
	timeout   time.Duration
	cacheTTL  time.Duration
	cache     *cache.LRU[Narrative]
}

// NewNarrator builds a Gemini-backed narrator. Without an API key it returns
// a narrator whose Describe always fails with ErrInsightsUnavailable.
func NewNarrator(ctx context.Context, cfg *config.Config) *Narrator {
	ttl := time.Duration(cfg.GeminiCacheTTLMinutes) * time.Minute
	if !cfg.InsightsEnabled() {
		return &Narrator{model: cfg.GeminiChatModel}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("[insights] failed to create Gemini client, insights disabled: %v", err)
		return &Narrator{model: cfg.GeminiChatModel}
	}

	return NewNarratorWithGenerator(&geminiGenerator{client: client}, cfg.GeminiChatModel, ttl)
}

// NewNarratorWithGenerator builds a narrator around any generator
func NewNarratorWithGenerator(g Generator, model string, cacheTTL time.Duration) *Narrator {
	return &Narrator{
		generator: g,
		model:     model,
		timeout:   30 * time.Second,
		cacheTTL:  cacheTTL,
		cache:     cache.NewLRU[Narrative](narrativeCacheSize),
	}
}

// IsAvailable reports whether narratives can be generated
func (n *Narrator) IsAvailable() bool {
	return n != nil && n.generator != nil
}

// Model returns the configured chat model
func (n *Narrator) Model() string {
	return n.model
}

// Describe writes a short narrative for the trend and summary. Identical
// inputs within the cache TTL reuse the earlier text.
func (n *Narrator) Describe(ctx context.Context, in Input) (*Narrative, error) {
	if !n.IsAvailable() {
		return nil, ErrInsightsUnavailable
	}

	prompt := BuildPrompt(in)
	key := cacheKey(n.model, prompt)
	if cached, ok := n.cache.Get(key); ok {
		cached.Cached = true
		return &cached, nil
	}

	ctx, span := otel.Tracer("insights").Start(ctx, "insights.Describe")
	defer span.End()
	span.SetAttributes(
		attribute.String("gemini.model", n.model),
		attribute.Int("trend.window_days", in.Trend.WindowDays),
	)

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	text, err := n.generator.Generate(ctx, n.model, systemInstruction, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate failed")
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		span.SetStatus(codes.Error, "empty narrative")
		return nil, ErrEmptyNarrative
	}

	narrative := Narrative{
		Text:        text,
		Model:       n.model,
		GeneratedAt: time.Now().UTC(),
	}
	n.cache.Set(key, narrative, n.cacheTTL)
	return &narrative, nil
}

type geminiGenerator struct {
	client *genai.Client
}

func (g *geminiGenerator) Generate(ctx context.Context, model, system, prompt string) (string, error) {
	content := genai.NewContentFromText(prompt, genai.RoleUser)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.3),
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, []*genai.Content{content}, cfg)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyNarrative
	}
	return resp.Text(), nil
}

func cacheKey(model, prompt string) string {
	hash := sha256.Sum256([]byte(model + "\x00" + prompt))
	return hex.EncodeToString(hash[:])
}
