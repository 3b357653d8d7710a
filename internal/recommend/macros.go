package recommend

import "math"

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9

	// fatFloorPerKg protects general members from a fat target below
	// 0.8 g/kg when protein and carbs use up the calorie budget.
	fatFloorPerKg = 0.8

	athleteProteinPerKg = 1.9
	athleteFatShare     = 0.25
)

// Macros is an unrounded macronutrient split in grams.
type Macros struct {
	ProteinGrams float64 `json:"protein_grams"`
	CarbsGrams   float64 `json:"carbs_grams"`
	FatGrams     float64 `json:"fat_grams"`
}

// perKgRange is an inclusive g/kg recommendation; only its midpoint is used.
type perKgRange struct{ low, high float64 }

func (r perKgRange) midpoint() float64 {
	return (r.low + r.high) / 2
}

var generalProteinRanges = map[Goal]perKgRange{
	Bulk:     {1.6, 2.2},
	Maintain: {1.4, 2.0},
	Diet:     {2.0, 3.0},
}

var generalCarbRanges = map[Frequency]perKgRange{
	Freq0to1:  {3, 5},
	Freq2to3:  {5, 7},
	Freq4to5:  {6, 10},
	Freq6Plus: {8, 12},
}

// AllocateMacros splits adjustedKcal into protein, carbohydrate, and fat
// using p's category rule. p must be valid and complete.
func AllocateMacros(p Profile, adjustedKcal float64) Macros {
	return strategies[p.Category].allocate(p, adjustedKcal)
}

// allocateGeneral fixes protein and carbs at their per-kg midpoints and gives
// fat whatever is left, never less than the floor.
func allocateGeneral(p Profile, adjustedKcal float64) Macros {
	protein := generalProteinRanges[p.Goal].midpoint() * p.WeightKg
	carbs := generalCarbRanges[p.Frequency].midpoint() * p.WeightKg

	remaining := adjustedKcal - protein*kcalPerGramProtein - carbs*kcalPerGramCarbs
	fat := math.Max(remaining/kcalPerGramFat, p.WeightKg*fatFloorPerKg)

	return Macros{ProteinGrams: protein, CarbsGrams: carbs, FatGrams: fat}
}

// allocateAthlete follows the ISSN split: protein per kg, a fixed share of
// calories from fat, carbohydrate from the remainder.
func allocateAthlete(p Profile, adjustedKcal float64) Macros {
	protein := athleteProteinPerKg * p.WeightKg
	fatKcal := adjustedKcal * athleteFatShare
	carbs := (adjustedKcal - protein*kcalPerGramProtein - fatKcal) / kcalPerGramCarbs

	return Macros{ProteinGrams: protein, CarbsGrams: carbs, FatGrams: fatKcal / kcalPerGramFat}
}
