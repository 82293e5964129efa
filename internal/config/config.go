package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth
	DocproofAPIKey string

	// Worker pool
	WorkerCount             int
	MaxQueueSize            int
	MaxConcurrentValidators int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Language defaults, overridden by the checker config when it sets them
	Lang    string
	Variant string

	// Path to the checker XML; empty means the built-in validator set
	CheckerConfigPath string

	// PDF
	PDFFallbackPdftotext bool
}

// Load reads the service configuration from the environment. A .env file
// in the working directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		DocproofAPIKey: os.Getenv("DOCPROOF_API_KEY"),

		WorkerCount:             envInt("WORKER_COUNT", 4),
		MaxQueueSize:            envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentValidators: envInt("MAX_CONCURRENT_VALIDATORS", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		Lang:              envOr("DOCPROOF_LANG", "en"),
		Variant:           os.Getenv("DOCPROOF_VARIANT"),
		CheckerConfigPath: os.Getenv("DOCPROOF_CONFIG"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentValidators <= 0 {
		cfg.MaxConcurrentValidators = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DocproofAPIKey == "" {
		return fmt.Errorf("DOCPROOF_API_KEY is required")
	}
	return nil
}

// Checker loads the checker config named by CheckerConfigPath, or the
// built-in one for the configured language when no path is set.
func (c Config) Checker() (Checker, error) {
	if c.CheckerConfigPath == "" {
		return DefaultChecker(c.Lang, c.Variant), nil
	}
	return LoadChecker(c.CheckerConfigPath)
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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
