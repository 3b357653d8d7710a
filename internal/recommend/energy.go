package recommend

// mifflinStJeor returns BMR for the general population.
func mifflinStJeor(p Profile) float64 {
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*p.AgeYears
	if p.Gender == Male {
		return bmr + 5
	}
	return bmr - 161
}

// cunningham returns REE from fat-free mass. Age, height, and gender do not
// enter the equation.
func cunningham(p Profile) float64 {
	return 500 + 22*FatFreeMass(p.WeightKg, p.BodyFatPercent)
}

// FatFreeMass returns body weight minus fat mass, in kg.
func FatFreeMass(weightKg, bodyFatPercent float64) float64 {
	return weightKg * (1 - bodyFatPercent/100)
}

// BaselineEnergy returns the resting energy estimate (BMR or REE) for p's
// category. The profile must already be valid and complete.
func BaselineEnergy(p Profile) float64 {
	return strategies[p.Category].baseline(p)
}
