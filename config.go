package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config is read from the environment (optionally seeded from .env).
type Config struct {
	DBURL            string
	Port             string
	LogLevel         string
	GinMode          string
	PreviewCacheSize int
}

// loadConfig loads .env if present and reads the server settings.
// DB_URL is the only required variable.
func loadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		DBURL:            os.Getenv("DB_URL"),
		Port:             envOr("PORT", "3000"),
		LogLevel:         envOr("LOG_LEVEL", "info"),
		GinMode:          envOr("GIN_MODE", gin.ReleaseMode),
		PreviewCacheSize: 1024,
	}
	if cfg.DBURL == "" {
		return Config{}, errors.New("DB_URL is required")
	}
	if s := os.Getenv("PREVIEW_CACHE_SIZE"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("PREVIEW_CACHE_SIZE must be a positive integer, got %q", s)
		}
		cfg.PreviewCacheSize = n
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// setupLogger sets the global zerolog level and switches to console output
// outside release mode.
func setupLogger(cfg Config) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	if cfg.GinMode != gin.ReleaseMode {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}
