package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the reporting tools
type Config struct {
	// Database settings
	MongodbURL        string        `envconfig:"MONGODB_URL" required:"true"`
	Database          string        `envconfig:"MONGODB_DATABASE" default:"pitchfork"`
	MaxPoolSize       uint64        `envconfig:"MONGODB_MAX_POOL_SIZE" default:"4"`
	ConnectTimeout    time.Duration `envconfig:"MONGODB_CONNECT_TIMEOUT" default:"10s"`
	ReviewsCollection string        `envconfig:"REVIEWS_COLLECTION" default:"reviews"`
	GenresCollection  string        `envconfig:"GENRES_COLLECTION" default:"genres"`
	ContentCollection string        `envconfig:"CONTENT_COLLECTION" default:"content"`

	// Report cache (disabled when VALKEY_URL is empty)
	ValkeyURL      string        `envconfig:"VALKEY_URL"`
	ReportCacheTTL time.Duration `envconfig:"REPORT_CACHE_TTL" default:"10m"`

	// Report settings
	TopN       int `envconfig:"TOP_N" default:"10"`
	MinReviews int `envconfig:"MIN_REVIEWS" default:"3"`

	// Application settings
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`
	Port     string `envconfig:"PORT" default:"8080"`
	GinMode  string `envconfig:"GIN_MODE" default:"release"`
}

// Collections names the three collections the reports read from
type Collections struct {
	Reviews string
	Genres  string
	Content string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks values envconfig cannot check on its own
func (c *Config) Validate() error {
	if c.TopN <= 0 {
		return fmt.Errorf("TOP_N must be positive, got %d", c.TopN)
	}
	if c.MinReviews <= 0 {
		return fmt.Errorf("MIN_REVIEWS must be positive, got %d", c.MinReviews)
	}
	if c.Database == "" {
		return fmt.Errorf("MONGODB_DATABASE cannot be empty")
	}

	if c.ValkeyURL != "" {
		u, err := url.Parse(c.ValkeyURL)
		if err != nil {
			return fmt.Errorf("invalid VALKEY_URL: %w", err)
		}
		if u.Host == "" {
			return fmt.Errorf("VALKEY_URL is missing a host")
		}
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// CacheEnabled reports whether aggregate results should be cached in Valkey
func (c *Config) CacheEnabled() bool {
	return c.ValkeyURL != "" && c.ReportCacheTTL > 0
}

// Collections returns the configured collection names
func (c *Config) Collections() Collections {
	return Collections{
		Reviews: c.ReviewsCollection,
		Genres:  c.GenresCollection,
		Content: c.ContentCollection,
	}
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported LOG_LEVEL: %s", s)
	}
}
