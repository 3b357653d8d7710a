package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"gymfuel/recommend-api/internal/recommend"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// memberProfile maps to member_profiles. One row per member. Biometric
// fields are nullable because onboarding fills them in one step at a time;
// the target fields hold the last persisted recommendation.
type memberProfile struct {
	MemberID          int       `json:"member_id"          db:"member_id"`
	Gender            *string   `json:"gender"             db:"gender"`
	DateOfBirth       *DateOnly `json:"date_of_birth"      db:"date_of_birth"`
	HeightCM          *float64  `json:"height_cm"          db:"height_cm"`
	WeightKG          *float64  `json:"weight_kg"          db:"weight_kg"`
	Category          *string   `json:"category"           db:"category"`
	BodyFatPercent    *float64  `json:"body_fat_percent"   db:"body_fat_percent"`
	TrainingFrequency *string   `json:"training_frequency" db:"training_frequency"`
	Goal              *string   `json:"goal"               db:"goal"`

	CaloriesTargetKcal int  `json:"calories_target_kcal" db:"calories_target_kcal"`
	ProteinTargetG     int  `json:"protein_target_g"     db:"protein_target_g"`
	CarbsTargetG       int  `json:"carbs_target_g"       db:"carbs_target_g"`
	FatTargetG         int  `json:"fat_target_g"         db:"fat_target_g"`
	OnboardingComplete bool `json:"onboarding_complete"  db:"onboarding_complete"`

	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// bodyCompositionEntry maps to body_composition_log. BodyFatPercent is
// optional because general members rarely measure it.
type bodyCompositionEntry struct {
	ID             int        `json:"id"               db:"id"`
	MemberID       int        `json:"member_id"        db:"member_id"`
	Date           DateOnly   `json:"date"             db:"date"`
	WeightKG       float64    `json:"weight_kg"        db:"weight_kg"`
	BodyFatPercent *float64   `json:"body_fat_percent" db:"body_fat_percent"`
	CreatedAt      *time.Time `json:"created_at"       db:"created_at"`
}

// patchProfileRequest is the request body for PATCH /api/profile.
// All fields are pointers; only non-nil fields get written to the database.
type patchProfileRequest struct {
	Gender             *string  `json:"gender"`
	DateOfBirth        *string  `json:"date_of_birth"` // YYYY-MM-DD string, stored as date
	HeightCM           *float64 `json:"height_cm"`
	WeightKG           *float64 `json:"weight_kg"`
	Category           *string  `json:"category"`
	BodyFatPercent     *float64 `json:"body_fat_percent"`
	TrainingFrequency  *string  `json:"training_frequency"`
	Goal               *string  `json:"goal"`
	OnboardingComplete *bool    `json:"onboarding_complete"`
}

// profileResponse is returned by the profile and recommendation endpoints:
// the stored row plus a freshly computed recommendation.
type profileResponse struct {
	Profile        memberProfile       `json:"profile"`
	Recommendation recommend.Breakdown `json:"recommendation"`
}

// ageOn returns whole years between dob and now, or ok=false for a DOB in the
// future or more than 130 years ago.
func ageOn(dob, now time.Time) (int, bool) {
	age := now.Year() - dob.Year()
	if now.Before(dob.AddDate(age, 0, 0)) {
		age--
	}
	if age < 0 || age > 130 {
		return 0, false
	}
	return age, true
}

// enumsSet reports whether onboarding has reached every choice field.
func (p memberProfile) enumsSet() bool {
	return p.Gender != nil && p.Category != nil && p.TrainingFrequency != nil && p.Goal != nil
}

// engineProfile converts the stored row into engine input. Nil numeric
// fields become 0 so the engine falls back to a zero result; nil enums
// become "" and are rejected by the engine.
func (p memberProfile) engineProfile(now time.Time) recommend.Profile {
	out := recommend.Profile{
		Gender:         recommend.Gender(deref(p.Gender)),
		Category:       recommend.Category(deref(p.Category)),
		Frequency:      recommend.Frequency(deref(p.TrainingFrequency)),
		Goal:           recommend.Goal(deref(p.Goal)),
		HeightCm:       deref(p.HeightCM),
		WeightKg:       deref(p.WeightKG),
		BodyFatPercent: deref(p.BodyFatPercent),
	}
	if p.DateOfBirth != nil {
		if age, ok := ageOn(p.DateOfBirth.Time, now); ok {
			out.AgeYears = float64(age)
		}
	}
	return out
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
