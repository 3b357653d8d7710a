package main

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"gymfuel/recommend-api/internal/recommend"
)

/* ─── Request / Response types ───────────────────────────────────────── */

// previewRequest is the request body for POST /api/recommendation/preview.
// Numeric fields are untyped because form inputs arrive as numbers, numeric
// strings, empty strings, or not at all; anything that isn't a positive
// number is passed to the engine as 0.
type previewRequest struct {
	Gender         string `json:"gender"`
	AgeYears       any    `json:"age_years"`
	HeightCm       any    `json:"height_cm"`
	WeightKg       any    `json:"weight_kg"`
	Category       string `json:"category"`
	BodyFatPercent any    `json:"body_fat_percent"`
	Frequency      string `json:"weekly_training_frequency"`
	Goal           string `json:"goal"`
}

func (r previewRequest) profile() recommend.Profile {
	return recommend.Profile{
		Gender:         recommend.Gender(r.Gender),
		AgeYears:       numeric(r.AgeYears),
		HeightCm:       numeric(r.HeightCm),
		WeightKg:       numeric(r.WeightKg),
		Category:       recommend.Category(r.Category),
		BodyFatPercent: numeric(r.BodyFatPercent),
		Frequency:      recommend.Frequency(r.Frequency),
		Goal:           recommend.Goal(r.Goal),
	}
}

// numeric converts a decoded JSON value to float64, returning 0 for
// anything non-numeric. ParseFloat accepts "NaN" and "Inf", so non-finite
// results are also 0.
func numeric(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// recommendationResponse carries the rounded targets and the stage values
// that produced them.
type recommendationResponse struct {
	Result    recommend.Result    `json:"result"`
	Breakdown recommend.Breakdown `json:"breakdown"`
}

func newRecommendationResponse(b recommend.Breakdown) recommendationResponse {
	return recommendationResponse{Result: b.Result, Breakdown: b}
}

/* ─── Engine plumbing ────────────────────────────────────────────────── */

// explain runs the engine through the preview cache and records metrics.
// Hits are counted too, so the metric reflects every evaluation served.
func (h *Handler) explain(p recommend.Profile) (recommend.Breakdown, error) {
	if b, ok := h.previews.get(p); ok {
		observeRecommendation(p.Category, b, nil)
		return b, nil
	}
	b, err := recommend.Explain(p)
	observeRecommendation(p.Category, b, err)
	if err != nil {
		return recommend.Breakdown{}, err
	}
	h.previews.add(p, b)
	return b, nil
}

// storedBreakdown computes the recommendation for a stored profile. A profile
// still missing a choice field is incomplete, not invalid.
func storedBreakdown(p memberProfile, now time.Time) (recommend.Breakdown, error) {
	if !p.enumsSet() {
		return recommend.Breakdown{}, nil
	}
	ep := p.engineProfile(now)
	b, err := recommend.Explain(ep)
	observeRecommendation(ep.Category, b, err)
	return b, err
}

// recomputeTargets recomputes p's recommendation and, when the profile is
// complete, writes the four targets back to member_profiles. An incomplete
// profile keeps its previous targets.
func recomputeTargets(ctx context.Context, q querier, p memberProfile) (memberProfile, recommend.Breakdown, error) {
	b, err := storedBreakdown(p, time.Now())
	if err != nil || !b.Complete {
		return p, b, err
	}

	updated, err := queryOne[memberProfile](q, ctx,
		`UPDATE member_profiles SET
			calories_target_kcal = @calories,
			protein_target_g     = @protein,
			carbs_target_g       = @carbs,
			fat_target_g         = @fat,
			updated_at           = now()
		 WHERE member_id = @memberID
		 RETURNING *`,
		pgx.NamedArgs{
			"memberID": p.MemberID,
			"calories": b.Result.CaloriesKcal,
			"protein":  b.Result.ProteinGrams,
			"carbs":    b.Result.CarbsGrams,
			"fat":      b.Result.FatGrams,
		})
	if err != nil {
		return p, b, err
	}
	return updated, b, nil
}

// engineErrorMessage turns an engine contract error into a client message.
// ok is false for any other error.
func engineErrorMessage(err error) (msg string, ok bool) {
	switch {
	case errors.Is(err, recommend.ErrInvalidGender):
		return "gender must be one of: male, female", true
	case errors.Is(err, recommend.ErrInvalidCategory):
		return "category must be one of: general, athlete", true
	case errors.Is(err, recommend.ErrInvalidFrequency):
		return "weekly_training_frequency must be one of: 0-1, 2-3, 4-5, 6+", true
	case errors.Is(err, recommend.ErrGoalCategoryMismatch):
		return "goal must be bulk, maintain, or diet for general members and lean_bulk, maintain, or cut for athletes", true
	case errors.Is(err, recommend.ErrBodyFatRange):
		return "body_fat_percent must be between 0 and 100", true
	}
	return "", false
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// previewRecommendation computes targets without touching the database.
// POST /api/recommendation/preview (public). The onboarding form calls this
// on every edit, so an incomplete profile returns 200 with zero targets;
// only invalid choice fields return 400.
func (h *Handler) previewRecommendation(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.explain(req.profile())
	if err != nil {
		msg, _ := engineErrorMessage(err)
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	c.JSON(http.StatusOK, newRecommendationResponse(b))
}

// getRecommendation recomputes the recommendation from the stored profile.
// GET /api/recommendation. Nothing is persisted; PATCH /api/profile does that.
func (h *Handler) getRecommendation(c *gin.Context) {
	memberID := c.GetInt("member_id")

	p, err := queryOne[memberProfile](h.db, c,
		"SELECT * FROM member_profiles WHERE member_id = @memberID",
		pgx.NamedArgs{"memberID": memberID})
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	b, err := storedBreakdown(p, time.Now())
	if err != nil {
		log.Warn().Err(err).Int("member_id", memberID).Msg("[getRecommendation] stored profile rejected by engine")
		msg, _ := engineErrorMessage(err)
		apiError(c, http.StatusConflict, msg)
		return
	}

	c.JSON(http.StatusOK, newRecommendationResponse(b))
}
