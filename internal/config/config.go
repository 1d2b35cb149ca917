package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort         = "8080"
	defaultGoodreadsURL = "https://www.goodreads.com/book/review_counts.json"
	defaultSessionTTL   = 24 * time.Hour
	defaultServiceName  = "book-review"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port         string
	DatabaseURL  string
	GoodreadsKey string
	GoodreadsURL string
	RedisAddr    string

	SessionSecret string
	SessionTTL    time.Duration

	LogLevel     string
	OtelEndpoint string
	ServiceName  string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase is Load for tools that only talk to the database.
func LoadDatabase() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	return cfg, nil
}

func read() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", defaultPort),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		GoodreadsKey:  strings.TrimSpace(os.Getenv("GOODREADS_API")),
		GoodreadsURL:  getEnv("GOODREADS_URL", defaultGoodreadsURL),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_CONNSTRING")),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    defaultSessionTTL,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		OtelEndpoint:  strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		ServiceName:   getEnv("SERVICE_NAME", defaultServiceName),
	}

	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", v, err)
		}
		cfg.SessionTTL = ttl
	}
	return cfg, nil
}

// Validate reports the first missing or malformed setting.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if c.GoodreadsKey == "" {
		return errors.New("GOODREADS_API is not set")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

// TelemetryEnabled reports whether an OTLP collector endpoint was configured.
func (c *Config) TelemetryEnabled() bool {
	return c.OtelEndpoint != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
