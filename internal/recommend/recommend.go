package recommend

import "math"

// Breakdown exposes the intermediate values behind a Result.
type Breakdown struct {
	Complete       bool    `json:"complete"`
	Model          string  `json:"model"`
	BaselineKcal   float64 `json:"baseline_kcal"`
	ActivityFactor float64 `json:"activity_factor"`
	TDEEKcal       float64 `json:"tdee_kcal"`
	GoalMultiplier float64 `json:"goal_multiplier"`
	AdjustedKcal   float64 `json:"adjusted_kcal"`
	Macros         Macros  `json:"macros"`
	Result         Result  `json:"result"`
}

// Compute returns the daily calorie and macro targets for p.
//
// An invalid enum (gender, category, frequency, or a goal from the other
// category) is an error. A missing, zero, or non-numeric weight, age, height,
// or athlete body fat is not: Compute returns a zero Result and nil so that a
// half-filled form can call it on every edit.
func Compute(p Profile) (Result, error) {
	b, err := Explain(p)
	if err != nil {
		return Result{}, err
	}
	return b.Result, nil
}

// Explain is Compute with the intermediate stage values attached.
func Explain(p Profile) (Breakdown, error) {
	if err := p.Validate(); err != nil {
		return Breakdown{}, err
	}
	s := strategies[p.Category]
	if !p.complete() {
		return Breakdown{Model: s.model}, nil
	}

	factor := activityFactors[p.Frequency]
	multiplier := s.goalMultipliers[p.Goal]

	baseline := s.baseline(p)
	tdee := baseline * factor
	adjusted := tdee * multiplier
	m := s.allocate(p, adjusted)

	return Breakdown{
		Complete:       true,
		Model:          s.model,
		BaselineKcal:   baseline,
		ActivityFactor: factor,
		TDEEKcal:       tdee,
		GoalMultiplier: multiplier,
		AdjustedKcal:   adjusted,
		Macros:         m,
		Result: Result{
			CaloriesKcal: roundNonNegative(adjusted),
			ProteinGrams: roundNonNegative(m.ProteinGrams),
			CarbsGrams:   roundNonNegative(m.CarbsGrams),
			FatGrams:     roundNonNegative(m.FatGrams),
		},
	}, nil
}

// roundNonNegative rounds half away from zero and clamps at 0. Extreme
// inputs can drive athlete carbs or a very old member's BMR below zero.
func roundNonNegative(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Round(v))
}
