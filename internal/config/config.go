// Package config loads application settings from environment variables.
//
// # Environment Variables
//
// ## Server
//   - SERVER_PORT: HTTP port (default: 8080)
//   - GIN_MODE: gin mode, debug or release (default: release)
//
// ## CMS API
//   - CMS_API_BASE_URL: base URL of the CMS REST API (required)
//   - CMS_API_TIMEOUT_SECONDS: per-request timeout (default: 10)
//   - CMS_API_MAX_RETRIES: attempts for network errors and 5xx (default: 3)
//   - CMS_PATH_BLOGGER: blogger list path (default: /blogs/my-submissions)
//   - CMS_PATH_WRITER: writer list path, {id} is replaced (default: /kalams/writer/{id})
//   - CMS_PATH_VOCALIST: vocalist list path, {id} is replaced (default: /kalams/vocalist/{id})
//   - CMS_PATH_ADMIN_BLOGS: admin blog list path (default: /blogs)
//   - CMS_PATH_ADMIN_KALAMS: admin kalam list path (default: /kalams)
//   - CMS_SERVICE_TOKEN: token used by batch jobs without a caller (optional)
//
// ## Analytics
//   - ANALYTICS_TIMEZONE: IANA zone for day boundaries (default: UTC)
//   - ANALYTICS_DEFAULT_WINDOW_DAYS: window when none is requested (default: 15)
//   - ANALYTICS_ALLOWED_WINDOWS: comma-separated allowed windows (default: 7,15,30,90)
//   - ANALYTICS_TOP_CONTENT: default size of the top content table (default: 5)
//   - ANALYTICS_SNAPSHOT_CACHE_TTL_SECONDS: upstream snapshot cache TTL (default: 60)
//   - ANALYTICS_SNAPSHOT_CACHE_MAX_SIZE: snapshot cache entries (default: 500)
//
// ## Typesense
//   - TYPESENSE_ENABLED: index snapshots for dashboard search (default: false)
//   - TYPESENSE_HOST: Typesense host (default: localhost)
//   - TYPESENSE_PORT: Typesense port (default: 8108)
//   - TYPESENSE_API_KEY: Typesense API key
//   - TYPESENSE_PROTOCOL: http/https (default: http)
//   - TYPESENSE_COLLECTION: collection name (default: dashboard_content)
//
// ## Gemini
//   - GEMINI_API_KEY: Google Gemini API key; insights are disabled when empty
//   - GEMINI_CHAT_MODEL: model for trend narratives (default: gemini-2.0-flash)
//   - GEMINI_CACHE_TTL_MINUTES: narrative cache TTL (default: 30)
//
// ## Tracing
//   - TRACING_ENABLED: enable OTLP tracing (default: false)
//   - TRACING_ENDPOINT: OTLP gRPC collector (default: localhost:4317)
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string `validate:"required,numeric"`
	GinMode    string `validate:"oneof=debug release test"`

	CMS CMSConfig

	Analytics AnalyticsConfig

	// Typesense configuration
	TypesenseEnabled    bool
	TypesenseHost       string
	TypesensePort       string
	TypesenseAPIKey     string
	TypesenseProtocol   string `validate:"oneof=http https"`
	TypesenseCollection string `validate:"required"`

	// Gemini configuration
	GeminiAPIKey          string
	GeminiChatModel       string
	GeminiCacheTTLMinutes int `validate:"gte=0"`

	// Tracing configuration
	TracingEnabled  bool
	TracingEndpoint string
}

// CMSConfig holds the upstream CMS API settings
type CMSConfig struct {
	BaseURL         string `validate:"required,url"`
	Timeout         time.Duration
	MaxRetries      int    `validate:"gte=1,lte=10"`
	BloggerPath     string `validate:"required"`
	WriterPath      string `validate:"required"`
	VocalistPath    string `validate:"required"`
	AdminBlogsPath  string `validate:"required"`
	AdminKalamsPath string `validate:"required"`
	ServiceToken    string
}

// AnalyticsConfig holds estimator and dashboard defaults
type AnalyticsConfig struct {
	Location          *time.Location `validate:"required"`
	DefaultWindowDays int            `validate:"gte=1"`
	AllowedWindows    []int          `validate:"min=1,dive,gte=1,lte=366"`
	TopContent        int            `validate:"gte=0,lte=50"`
	SnapshotCacheTTL  time.Duration
	SnapshotCacheSize int `validate:"gte=1"`
}

// IsWindowAllowed reports whether a requested window is one of the configured options
func (a AnalyticsConfig) IsWindowAllowed(days int) bool {
	for _, w := range a.AllowedWindows {
		if w == days {
			return true
		}
	}
	return false
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg, err := Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// Load reads the environment without exiting, for callers that want the error
func Load() (*Config, error) {
	loc, err := time.LoadLocation(getEnv("ANALYTICS_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("ANALYTICS_TIMEZONE: %w", err)
	}

	allowed, err := getEnvIntList("ANALYTICS_ALLOWED_WINDOWS", []int{7, 15, 30, 90})
	if err != nil {
		return nil, fmt.Errorf("ANALYTICS_ALLOWED_WINDOWS: %w", err)
	}

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "release"),

		CMS: CMSConfig{
			BaseURL:         strings.TrimRight(getEnv("CMS_API_BASE_URL", ""), "/"),
			Timeout:         time.Duration(getEnvInt("CMS_API_TIMEOUT_SECONDS", 10)) * time.Second,
			MaxRetries:      getEnvInt("CMS_API_MAX_RETRIES", 3),
			BloggerPath:     getEnv("CMS_PATH_BLOGGER", "/blogs/my-submissions"),
			WriterPath:      getEnv("CMS_PATH_WRITER", "/kalams/writer/{id}"),
			VocalistPath:    getEnv("CMS_PATH_VOCALIST", "/kalams/vocalist/{id}"),
			AdminBlogsPath:  getEnv("CMS_PATH_ADMIN_BLOGS", "/blogs"),
			AdminKalamsPath: getEnv("CMS_PATH_ADMIN_KALAMS", "/kalams"),
			ServiceToken:    getEnv("CMS_SERVICE_TOKEN", ""),
		},

		Analytics: AnalyticsConfig{
			Location:          loc,
			DefaultWindowDays: getEnvInt("ANALYTICS_DEFAULT_WINDOW_DAYS", 15),
			AllowedWindows:    allowed,
			TopContent:        getEnvInt("ANALYTICS_TOP_CONTENT", 5),
			SnapshotCacheTTL:  time.Duration(getEnvInt("ANALYTICS_SNAPSHOT_CACHE_TTL_SECONDS", 60)) * time.Second,
			SnapshotCacheSize: getEnvInt("ANALYTICS_SNAPSHOT_CACHE_MAX_SIZE", 500),
		},

		TypesenseEnabled:    getEnv("TYPESENSE_ENABLED", "false") == "true",
		TypesenseHost:       getEnv("TYPESENSE_HOST", "localhost"),
		TypesensePort:       getEnv("TYPESENSE_PORT", "8108"),
		TypesenseAPIKey:     getEnv("TYPESENSE_API_KEY", ""),
		TypesenseProtocol:   getEnv("TYPESENSE_PROTOCOL", "http"),
		TypesenseCollection: getEnv("TYPESENSE_COLLECTION", "dashboard_content"),

		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiChatModel:       getEnv("GEMINI_CHAT_MODEL", "gemini-2.0-flash"),
		GeminiCacheTTLMinutes: getEnvInt("GEMINI_CACHE_TTL_MINUTES", 30),

		TracingEnabled:  getEnv("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	if !cfg.Analytics.IsWindowAllowed(cfg.Analytics.DefaultWindowDays) {
		return nil, fmt.Errorf("ANALYTICS_DEFAULT_WINDOW_DAYS=%d is not in ANALYTICS_ALLOWED_WINDOWS %v",
			cfg.Analytics.DefaultWindowDays, cfg.Analytics.AllowedWindows)
	}

	return cfg, nil
}

// TypesenseURL returns the server URL for the Typesense client
func (c *Config) TypesenseURL() string {
	return fmt.Sprintf("%s://%s:%s", c.TypesenseProtocol, c.TypesenseHost, c.TypesensePort)
}

// InsightsEnabled reports whether Gemini narratives can be generated
func (c *Config) InsightsEnabled() bool {
	return c.GeminiAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvIntList(key string, defaultValue []int) ([]int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue, nil
	}

	parts := strings.Split(value, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid window %q", p)
		}
		out = append(out, n)
	}
	return out, nil
}
