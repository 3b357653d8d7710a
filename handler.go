package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Handler holds shared dependencies (db pool, preview cache) for all route handlers.
type Handler struct {
	db       *pgxpool.Pool
	previews *previewCache
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the helpers
// below work inside and outside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
func queryOne[T any](q querier, ctx context.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := q.Query(ctx, sql, args)
	if err != nil {
		log.Error().Err(err).Msg("[queryOne] query failed")
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Debug().Err(err).Msg("[queryOne] scan failed")
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](q querier, ctx context.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := q.Query(ctx, sql, args)
	if err != nil {
		log.Error().Err(err).Msg("[queryMany] query failed")
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Error().Err(err).Msg("[queryMany] scan failed")
	}
	return results, err
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// newDBPool creates a connection pool. We use a pool (not a single conn) because
// hosted Postgres providers close idle connections after a few minutes.
func newDBPool(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse DB URL: %w", err)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from server-side prepared statement caches after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	log.Info().Msg("DB pool ready")
	return pool, nil
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)
	router.POST("/api/recommendation/preview", h.previewRecommendation)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/profile", h.getProfile)
	api.PATCH("/profile", h.patchProfile)
	api.GET("/recommendation", h.getRecommendation)
	api.GET("/body-composition", h.getBodyComposition)
	api.POST("/body-composition", h.upsertBodyComposition)
	api.PUT("/body-composition/:id", h.updateBodyComposition)
	api.DELETE("/body-composition/:id", h.deleteBodyComposition)
}
