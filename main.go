package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := setupLogger(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	registerMetrics()

	pool, err := newDBPool(context.Background(), cfg.DBURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer pool.Close()

	previews, err := newPreviewCache(cfg.PreviewCacheSize)
	if err != nil {
		log.Fatal().Err(err).Msg("preview cache")
	}

	h := Handler{db: pool, previews: previews}

	gin.SetMode(cfg.GinMode)
	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	log.Info().Str("port", cfg.Port).Msg("starting gin app")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
