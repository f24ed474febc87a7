package meallog

import "math"

// Activity tiers accepted by CalculateGoal
const (
	Sedentary = "sedentary"
	Moderate  = "moderate"
	Active    = "active"
	Athlete   = "athlete"
)

// proteinPerKg is grams of protein per kilogram of bodyweight
var proteinPerKg = map[string]float64{
	Sedentary: 1.2,
	Moderate:  1.6,
	Active:    2.0,
	Athlete:   2.2,
}

var ActivityTiers = []string{Sedentary, Moderate, Active, Athlete}

// Multiplier returns the per-kilogram factor for tier. Unknown tiers get the moderate factor.
func Multiplier(tier string) float64 {
	if m, ok := proteinPerKg[tier]; ok {
		return m
	}
	return proteinPerKg[Moderate]
}

// CalculateGoal suggests a daily protein target in grams
func CalculateGoal(weightKg float64, tier string) int {
	return int(math.Round(weightKg * Multiplier(tier)))
}
