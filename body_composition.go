package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"gymfuel/recommend-api/internal/recommend"
)

// bodyCompositionResponse is returned by POST /api/body-composition. Profile
// and Recommendation are set only when the entry is the member's latest and
// so replaced the profile's current weight and body fat.
type bodyCompositionResponse struct {
	Entry          bodyCompositionEntry `json:"entry"`
	Profile        *memberProfile       `json:"profile,omitempty"`
	Recommendation *recommend.Breakdown `json:"recommendation,omitempty"`
}

func validWeightKG(w float64) bool {
	return w > 0 && w <= 700
}

func validBodyFat(bf *float64) bool {
	return bf == nil || (*bf >= 0 && *bf <= 100)
}

// getBodyComposition returns entries for the authenticated member within [start, end].
// GET /api/body-composition?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
// Returns an empty array (not null) if no entries exist in the range.
func (h *Handler) getBodyComposition(c *gin.Context) {
	memberID := c.GetInt("member_id")
	start := c.Query("start")
	end := c.Query("end")

	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return
	}
	if _, err := time.Parse("2006-01-02", start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}

	entries, err := queryMany[bodyCompositionEntry](h.db, c,
		`SELECT * FROM body_composition_log
		 WHERE member_id = @memberID AND date >= @start AND date <= @end
		 ORDER BY date ASC`,
		pgx.NamedArgs{"memberID": memberID, "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch body composition log")
		return
	}
	if entries == nil {
		entries = []bodyCompositionEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

// upsertBodyComposition creates or updates the entry for the given date.
// POST /api/body-composition. Body: { "date": "YYYY-MM-DD", "weight_kg": 72.4, "body_fat_percent"?: 14.5 }.
// The UNIQUE(member_id, date) constraint means posting the same date updates in place.
// When no later entry exists, the profile's weight and body fat follow the
// entry and the targets are recomputed in the same transaction.
func (h *Handler) upsertBodyComposition(c *gin.Context) {
	memberID := c.GetInt("member_id")

	var body struct {
		Date           string   `json:"date"`
		WeightKG       float64  `json:"weight_kg"`
		BodyFatPercent *float64 `json:"body_fat_percent"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		apiError(c, http.StatusBadRequest, "date is required")
		return
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if !validWeightKG(body.WeightKG) {
		apiError(c, http.StatusBadRequest, "weight_kg must be between 0 and 700")
		return
	}
	if !validBodyFat(body.BodyFatPercent) {
		apiError(c, http.StatusBadRequest, "body_fat_percent must be between 0 and 100")
		return
	}

	tx, err := h.db.Begin(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to upsert body composition entry")
		return
	}
	defer tx.Rollback(c)

	entry, err := queryOne[bodyCompositionEntry](tx, c,
		`INSERT INTO body_composition_log (member_id, date, weight_kg, body_fat_percent)
		 VALUES (@memberID, @date, @weightKG, @bodyFat)
		 ON CONFLICT (member_id, date) DO UPDATE SET
			weight_kg        = EXCLUDED.weight_kg,
			body_fat_percent = EXCLUDED.body_fat_percent
		 RETURNING *`,
		pgx.NamedArgs{"memberID": memberID, "date": body.Date, "weightKG": body.WeightKG, "bodyFat": body.BodyFatPercent})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to upsert body composition entry")
		return
	}

	resp := bodyCompositionResponse{Entry: entry}

	p, err := queryOne[memberProfile](tx, c,
		`UPDATE member_profiles SET
			weight_kg        = @weightKG,
			body_fat_percent = COALESCE(@bodyFat, body_fat_percent),
			updated_at       = now()
		 WHERE member_id = @memberID
		   AND NOT EXISTS (
			SELECT 1 FROM body_composition_log
			WHERE member_id = @memberID AND date > @date)
		 RETURNING *`,
		pgx.NamedArgs{"memberID": memberID, "date": body.Date, "weightKG": body.WeightKG, "bodyFat": body.BodyFatPercent})
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// Backfilled entry: the profile already reflects a later measurement.
	case err != nil:
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	default:
		p, b, err := recomputeTargets(c, tx, p)
		if err != nil {
			// An invalid stored profile must not block logging the measurement.
			log.Warn().Err(err).Int("member_id", memberID).Msg("[upsertBodyComposition] targets not recomputed")
		}
		resp.Profile = &p
		resp.Recommendation = &b
	}

	if err := tx.Commit(c); err != nil {
		log.Error().Err(err).Int("member_id", memberID).Msg("[upsertBodyComposition] commit failed")
		apiError(c, http.StatusInternalServerError, "failed to upsert body composition entry")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// updateBodyComposition partially updates an existing entry.
// PUT /api/body-composition/:id. Body: { "date"?, "weight_kg"?, "body_fat_percent"? }.
// Uses COALESCE so omitted fields keep their current values. The profile is
// not touched; POST is the path that moves current weight.
func (h *Handler) updateBodyComposition(c *gin.Context) {
	memberID := c.GetInt("member_id")
	id := c.Param("id")

	var body struct {
		Date           *string  `json:"date"`
		WeightKG       *float64 `json:"weight_kg"`
		BodyFatPercent *float64 `json:"body_fat_percent"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date != nil {
		if _, err := time.Parse("2006-01-02", *body.Date); err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
	}
	if body.WeightKG != nil && !validWeightKG(*body.WeightKG) {
		apiError(c, http.StatusBadRequest, "weight_kg must be between 0 and 700")
		return
	}
	if !validBodyFat(body.BodyFatPercent) {
		apiError(c, http.StatusBadRequest, "body_fat_percent must be between 0 and 100")
		return
	}

	entry, err := queryOne[bodyCompositionEntry](h.db, c,
		`UPDATE body_composition_log SET
			date             = COALESCE(@date, date),
			weight_kg        = COALESCE(@weightKG, weight_kg),
			body_fat_percent = COALESCE(@bodyFat, body_fat_percent)
		 WHERE id = @id AND member_id = @memberID
		 RETURNING *`,
		pgx.NamedArgs{"id": id, "memberID": memberID, "date": body.Date, "weightKG": body.WeightKG, "bodyFat": body.BodyFatPercent})
	if err != nil {
		// Distinguish a missing row from a real DB failure so callers get an
		// actionable status code rather than a misleading 404.
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "body composition entry not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to update body composition entry")
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// deleteBodyComposition removes an entry by ID.
// DELETE /api/body-composition/:id. Returns 204 on success, 404 if not found.
// Ownership is enforced by requiring both id and member_id to match.
func (h *Handler) deleteBodyComposition(c *gin.Context) {
	memberID := c.GetInt("member_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM body_composition_log WHERE id = @id AND member_id = @memberID",
		pgx.NamedArgs{"id": id, "memberID": memberID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete body composition entry")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "body composition entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}
