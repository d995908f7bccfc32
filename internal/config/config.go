package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmorgan81/rcgraphics/internal/image"
	"github.com/dmorgan81/rcgraphics/internal/store"
)

type Config struct {
	GeminiAPIKey      string
	GeminiAPIKeyParam string
	GeminiModel       string
	GenerationTimeout time.Duration

	LogLevel string

	OutputBucket string
	OutputPrefix string
	Distribution string

	WebAddr          string
	SiteURL          string
	LeaderboardPIN   string
	FirestoreProject string
	PublicDir        string
}

// Load reads the environment. Nothing is required up front; the API key is
// checked when the first image is generated.
func Load() Config {
	cfg := Config{
		GeminiAPIKey:      strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiAPIKeyParam: getEnv("GEMINI_API_KEY_PARAM", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", image.DefaultModel),
		GenerationTimeout: getEnvDuration("GENERATION_TIMEOUT", image.DefaultTimeout),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		OutputBucket:      getEnv("OUTPUT_BUCKET", ""),
		OutputPrefix:      strings.Trim(getEnv("OUTPUT_PREFIX", "generated"), "/"),
		Distribution:      getEnv("DISTRIBUTION", ""),
		WebAddr:           getEnv("WEB_ADDR", ":3000"),
		LeaderboardPIN:    getEnv("LEADERBOARD_PIN", ""),
		FirestoreProject:  getEnv("FIRESTORE_PROJECT", ""),
		PublicDir:         getEnv("PUBLIC_DIR", store.DefaultPublicDir),
	}
	cfg.SiteURL = strings.TrimSuffix(getEnv("SITE_URL", "http://localhost"+cfg.WebAddr), "/")

	if cfg.GenerationTimeout <= 0 {
		cfg.GenerationTimeout = image.DefaultTimeout
	}
	return cfg
}

// MirrorEnabled reports whether saved files are copied to S3.
func (c Config) MirrorEnabled() bool {
	return c.OutputBucket != ""
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
