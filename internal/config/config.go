package config

import (
	"time"

	"photoshare-backend/internal/utils"
)

// Config holds all application configuration
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	LogLevel    string

	// AuthorLookupTimeout bounds each comment-author lookup.
	AuthorLookupTimeout time.Duration
	// PhotoFanoutLimit caps how many photos are resolved concurrently per request.
	PhotoFanoutLimit int
	// AuthorLookupConcurrency caps author lookups in flight per request. It
	// should stay below the pool's MaxConns.
	AuthorLookupConcurrency int
}

// Load reads configuration from the environment. Call utils.LoadEnv first to
// pick up a .env file.
func Load() *Config {
	connString := utils.GetEnv("DATABASE_URL", "")
	if connString == "" {
		// Fallback to individual vars
		connString = "postgres://" + utils.GetEnv("POSTGRES_USER", "postgres") + ":" +
			utils.GetEnv("POSTGRES_PASSWORD", "postgres") + "@" +
			utils.GetEnv("POSTGRES_HOST", "localhost") + ":" +
			utils.GetEnv("POSTGRES_PORT", "5432") + "/" +
			utils.GetEnv("POSTGRES_DB", "photoshare") + "?sslmode=disable"
	}

	fanout := utils.GetEnvInt("PHOTO_FANOUT_LIMIT", 8)
	if fanout < 1 {
		fanout = 1
	}

	lookups := utils.GetEnvInt("AUTHOR_LOOKUP_CONCURRENCY", 8)
	if lookups < 1 {
		lookups = 1
	}

	return &Config{
		Port:                utils.GetEnv("PORT", "3000"),
		DatabaseURL:         connString,
		JWTSecret:           utils.GetEnv("JWT_SECRET", "secret"),
		LogLevel:            utils.GetEnv("LOG_LEVEL", "info"),
		AuthorLookupTimeout: utils.GetEnvMillis("AUTHOR_LOOKUP_TIMEOUT_MS", 2*time.Second),
		PhotoFanoutLimit:    fanout,

		AuthorLookupConcurrency: lookups,
	}
}
