// Package recommend computes daily energy and macronutrient targets from a
// member's biometric profile, training frequency, and goal.
package recommend

import (
	"errors"
	"fmt"
	"math"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Category selects the physiological model: Mifflin-St Jeor for general
// members, Cunningham for athletes.
type Category string

const (
	General Category = "general"
	Athlete Category = "athlete"
)

// Frequency is a weekly training frequency bucket.
type Frequency string

const (
	Freq0to1  Frequency = "0-1"
	Freq2to3  Frequency = "2-3"
	Freq4to5  Frequency = "4-5"
	Freq6Plus Frequency = "6+"
)

// Goal values. Maintain is shared by both categories; the others belong to
// exactly one.
type Goal string

const (
	Bulk     Goal = "bulk"
	Maintain Goal = "maintain"
	Diet     Goal = "diet"
	LeanBulk Goal = "lean_bulk"
	Cut      Goal = "cut"
)

var (
	ErrInvalidGender        = errors.New("invalid gender")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidFrequency     = errors.New("invalid training frequency")
	ErrGoalCategoryMismatch = errors.New("goal does not belong to category")
	ErrBodyFatRange         = errors.New("body fat percent out of range")
)

// Profile is the biometric input to Compute. BodyFatPercent is only read for
// athletes.
type Profile struct {
	Gender         Gender    `json:"gender"`
	AgeYears       float64   `json:"age_years"`
	HeightCm       float64   `json:"height_cm"`
	WeightKg       float64   `json:"weight_kg"`
	Category       Category  `json:"category"`
	BodyFatPercent float64   `json:"body_fat_percent"`
	Frequency      Frequency `json:"weekly_training_frequency"`
	Goal           Goal      `json:"goal"`
}

// Valid reports whether g is one of the two accepted genders.
func (g Gender) Valid() bool {
	return g == Male || g == Female
}

// Valid reports whether c has a model.
func (c Category) Valid() bool {
	_, ok := strategies[c]
	return ok
}

// Valid reports whether f is one of the four buckets.
func (f Frequency) Valid() bool {
	_, ok := activityFactors[f]
	return ok
}

// Validate checks the enum fields only. Numeric fields are never an error:
// an incomplete profile yields a zero Result instead.
func (p Profile) Validate() error {
	if !p.Gender.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidGender, p.Gender)
	}
	s, ok := strategies[p.Category]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, p.Category)
	}
	if !p.Frequency.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, p.Frequency)
	}
	if _, ok := s.goalMultipliers[p.Goal]; !ok {
		return fmt.Errorf("%w: %q is not a %s goal", ErrGoalCategoryMismatch, p.Goal, p.Category)
	}
	if p.Category == Athlete && p.BodyFatPercent > 100 {
		return fmt.Errorf("%w: %v", ErrBodyFatRange, p.BodyFatPercent)
	}
	return nil
}

// complete reports whether every numeric input the category needs is present.
func (p Profile) complete() bool {
	if !present(p.WeightKg) || !present(p.AgeYears) || !present(p.HeightCm) {
		return false
	}
	if p.Category == Athlete && !present(p.BodyFatPercent) {
		return false
	}
	return true
}

func present(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Result holds the daily targets, each rounded independently.
type Result struct {
	CaloriesKcal int `json:"calories_kcal"`
	ProteinGrams int `json:"protein_grams"`
	CarbsGrams   int `json:"carbs_grams"`
	FatGrams     int `json:"fat_grams"`
}

// IsZero reports whether r is the fallback for an incomplete profile.
func (r Result) IsZero() bool {
	return r == Result{}
}
