package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth for this service's API.
	BridgeAPIKey string

	// Logseq HTTP API connection. Leave LogseqURL empty to run without sync
	// (structuring and exports still work).
	LogseqURL   string
	LogseqToken string

	// Cloud handwriting recognition. Optional: jobs may carry a recognition
	// result directly instead of strokes.
	RecognitionURL     string
	RecognitionAppKey  string
	RecognitionHMACKey string
	RecognitionRPS     float64

	// Worker pool
	WorkerCount       int
	MaxQueueSize      int
	MaxConcurrentSync int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		BridgeAPIKey: os.Getenv("BRIDGE_API_KEY"),

		LogseqURL:   envOr("LOGSEQ_URL", "http://127.0.0.1:12315"),
		LogseqToken: os.Getenv("LOGSEQ_TOKEN"),

		RecognitionURL:     os.Getenv("RECOGNITION_URL"),
		RecognitionAppKey:  os.Getenv("RECOGNITION_APP_KEY"),
		RecognitionHMACKey: os.Getenv("RECOGNITION_HMAC_KEY"),
		RecognitionRPS:     envFloat("RECOGNITION_RPS", 2),

		WorkerCount:       envInt("WORKER_COUNT", 4),
		MaxQueueSize:      envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentSync: envInt("MAX_CONCURRENT_SYNC", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentSync <= 0 {
		cfg.MaxConcurrentSync = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.BridgeAPIKey == "" {
		return fmt.Errorf("BRIDGE_API_KEY is required")
	}
	if c.LogseqURL != "" && c.LogseqToken == "" {
		return fmt.Errorf("LOGSEQ_TOKEN is required when LOGSEQ_URL is set")
	}
	if c.RecognitionURL != "" && c.RecognitionAppKey == "" {
		return fmt.Errorf("RECOGNITION_APP_KEY is required when RECOGNITION_URL is set")
	}
	return nil
}

// SyncEnabled reports whether a Logseq endpoint is configured.
func (c Config) SyncEnabled() bool {
	return c.LogseqURL != "" && c.LogseqToken != ""
}

// RecognitionEnabled reports whether a recognition service is configured.
func (c Config) RecognitionEnabled() bool {
	return c.RecognitionURL != "" && c.RecognitionAppKey != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
