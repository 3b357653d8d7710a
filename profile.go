package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"gymfuel/recommend-api/internal/recommend"
)

// getProfile returns the authenticated member's biometric profile, stored
// targets, and a freshly computed recommendation.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
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
		// Still return the row so the client can repair it.
		log.Warn().Err(err).Int("member_id", memberID).Msg("[getProfile] stored profile rejected by engine")
	}

	c.JSON(http.StatusOK, profileResponse{Profile: p, Recommendation: b})
}

// validatePatch checks each provided field on its own. The goal is checked
// against the merged category after the update, inside the transaction.
func validatePatch(body patchProfileRequest) string {
	if body.Gender != nil && !recommend.Gender(*body.Gender).Valid() {
		return "gender must be one of: male, female"
	}
	if body.Category != nil && !recommend.Category(*body.Category).Valid() {
		return "category must be one of: general, athlete"
	}
	if body.TrainingFrequency != nil && !recommend.Frequency(*body.TrainingFrequency).Valid() {
		return "training_frequency must be one of: 0-1, 2-3, 4-5, 6+"
	}
	if body.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *body.DateOfBirth)
		if err != nil {
			return "invalid date_of_birth, expected YYYY-MM-DD"
		}
		if _, ok := ageOn(dob, time.Now()); !ok {
			return "date_of_birth must give an age between 0 and 130"
		}
	}
	if body.HeightCM != nil && (*body.HeightCM <= 0 || *body.HeightCM > 300) {
		return "height_cm must be between 0 and 300"
	}
	if body.WeightKG != nil && (*body.WeightKG <= 0 || *body.WeightKG > 700) {
		return "weight_kg must be between 0 and 700"
	}
	if body.BodyFatPercent != nil && (*body.BodyFatPercent < 0 || *body.BodyFatPercent > 100) {
		return "body_fat_percent must be between 0 and 100"
	}
	return ""
}

// patchProfile updates only the provided profile fields, then recomputes and
// persists the calorie and macro targets.
// PATCH /api/profile. Uses pointer fields in the request body to distinguish
// "not provided" from zero; only non-nil fields get updated. The update and
// the target write share a transaction, so a goal that does not fit the
// resulting category rolls back with 400.
func (h *Handler) patchProfile(c *gin.Context) {
	memberID := c.GetInt("member_id")

	var body patchProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validatePatch(body); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	// Build SET clause dynamically; only update fields the client actually sent
	setClauses := []string{}
	args := pgx.NamedArgs{"memberID": memberID}

	if body.Gender != nil {
		setClauses = append(setClauses, "gender = @gender")
		args["gender"] = *body.Gender
	}
	if body.DateOfBirth != nil {
		setClauses = append(setClauses, "date_of_birth = @dateOfBirth")
		args["dateOfBirth"] = *body.DateOfBirth
	}
	if body.HeightCM != nil {
		setClauses = append(setClauses, "height_cm = @heightCM")
		args["heightCM"] = *body.HeightCM
	}
	if body.WeightKG != nil {
		setClauses = append(setClauses, "weight_kg = @weightKG")
		args["weightKG"] = *body.WeightKG
	}
	if body.Category != nil {
		setClauses = append(setClauses, "category = @category")
		args["category"] = *body.Category
	}
	if body.BodyFatPercent != nil {
		setClauses = append(setClauses, "body_fat_percent = @bodyFatPercent")
		args["bodyFatPercent"] = *body.BodyFatPercent
	}
	if body.TrainingFrequency != nil {
		setClauses = append(setClauses, "training_frequency = @trainingFrequency")
		args["trainingFrequency"] = *body.TrainingFrequency
	}
	if body.Goal != nil {
		setClauses = append(setClauses, "goal = @goal")
		args["goal"] = *body.Goal
	}
	if body.OnboardingComplete != nil {
		setClauses = append(setClauses, "onboarding_complete = @onboardingComplete")
		args["onboardingComplete"] = *body.OnboardingComplete
	}

	if len(setClauses) == 0 {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}
	setClauses = append(setClauses, "updated_at = now()")

	tx, err := h.db.Begin(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}
	defer tx.Rollback(c)

	query := "UPDATE member_profiles SET " +
		strings.Join(setClauses, ", ") +
		" WHERE member_id = @memberID RETURNING *"

	p, err := queryOne[memberProfile](tx, c, query, args)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	p, b, err := recomputeTargets(c, tx, p)
	if err != nil {
		if msg, ok := engineErrorMessage(err); ok {
			apiError(c, http.StatusBadRequest, msg)
			return
		}
		log.Error().Err(err).Int("member_id", memberID).Msg("[patchProfile] target update failed")
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	if err := tx.Commit(c); err != nil {
		log.Error().Err(err).Int("member_id", memberID).Msg("[patchProfile] commit failed")
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, profileResponse{Profile: p, Recommendation: b})
}
