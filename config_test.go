package main

import (
	"testing"

	"github.com/gin-gonic/gin"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/gym")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("PREVIEW_CACHE_SIZE", "")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "3000" || cfg.LogLevel != "info" || cfg.GinMode != gin.ReleaseMode || cfg.PreviewCacheSize != 1024 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/gym")
	t.Setenv("PORT", "8080")
	t.Setenv("PREVIEW_CACHE_SIZE", "64")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.PreviewCacheSize != 64 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	cases := []struct {
		name      string
		dbURL     string
		cacheSize string
	}{
		{"missing DB_URL", "", ""},
		{"non-numeric cache size", "postgres://localhost/gym", "lots"},
		{"zero cache size", "postgres://localhost/gym", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DB_URL", tc.dbURL)
			t.Setenv("PREVIEW_CACHE_SIZE", tc.cacheSize)
			if _, err := loadConfig(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSetupLogger_BadLevel(t *testing.T) {
	if err := setupLogger(Config{LogLevel: "loud", GinMode: gin.ReleaseMode}); err == nil {
		t.Error("expected error for unknown log level")
	}
}
