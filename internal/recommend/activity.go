package recommend

// activityFactors is shared by both categories and is the closed set of
// accepted frequency buckets.
var activityFactors = map[Frequency]float64{
	Freq0to1:  1.2,
	Freq2to3:  1.4,
	Freq4to5:  1.6,
	Freq6Plus: 1.8,
}

// ActivityFactor maps a weekly training frequency bucket to its TDEE
// multiplier. ok is false for anything outside the four buckets.
func ActivityFactor(f Frequency) (factor float64, ok bool) {
	factor, ok = activityFactors[f]
	return factor, ok
}

// Frequencies lists the accepted buckets in ascending order.
func Frequencies() []Frequency {
	return []Frequency{Freq0to1, Freq2to3, Freq4to5, Freq6Plus}
}
