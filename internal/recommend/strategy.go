package recommend

// strategy bundles the per-category model: baseline equation, goal table,
// and macro rule.
type strategy struct {
	model           string
	baseline        func(Profile) float64
	goalMultipliers map[Goal]float64
	allocate        func(p Profile, adjustedKcal float64) Macros
}

var strategies = map[Category]strategy{
	General: {
		model:    "mifflin-st-jeor",
		baseline: mifflinStJeor,
		goalMultipliers: map[Goal]float64{
			Bulk:     1.15,
			Maintain: 1.00,
			Diet:     0.825,
		},
		allocate: allocateGeneral,
	},
	Athlete: {
		model:    "cunningham",
		baseline: cunningham,
		goalMultipliers: map[Goal]float64{
			LeanBulk: 1.10,
			Maintain: 1.00,
			Cut:      0.75,
		},
		allocate: allocateAthlete,
	},
}

// GoalMultiplier returns the calorie multiplier for goal within category.
// ok is false when the goal is not part of that category's domain.
func GoalMultiplier(c Category, g Goal) (multiplier float64, ok bool) {
	s, found := strategies[c]
	if !found {
		return 0, false
	}
	multiplier, ok = s.goalMultipliers[g]
	return multiplier, ok
}

// Goals lists the goals accepted for a category, from lowest to highest
// calorie target.
func Goals(c Category) []Goal {
	switch c {
	case General:
		return []Goal{Diet, Maintain, Bulk}
	case Athlete:
		return []Goal{Cut, Maintain, LeanBulk}
	}
	return nil
}

// Model names the baseline equation used for a category.
func Model(c Category) string {
	return strategies[c].model
}
