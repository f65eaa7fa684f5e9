package tracking

import (
	"math"
	"strings"

	"nutrisnap/models"
)

// activityMultipliers maps activity levels to their TDEE factor.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// ValidActivityLevel reports whether level has a TDEE multiplier. The empty
// string is accepted as "not provided".
func ValidActivityLevel(level string) bool {
	if level == "" {
		return true
	}
	_, ok := activityMultipliers[level]
	return ok
}

// BMR estimates the basal metabolic rate in kcal/day with the Mifflin-St Jeor
// equation. ok is false when a measurement is missing or sex is neither
// male nor female.
func BMR(p models.Profile) (kcal float64, ok bool) {
	if p.WeightKG <= 0 || p.HeightCM <= 0 || p.Age <= 0 {
		return 0, false
	}
	base := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	switch strings.ToLower(strings.TrimSpace(p.Sex)) {
	case "male":
		return math.Round(base + 5), true
	case "female":
		return math.Round(base - 161), true
	default:
		return 0, false
	}
}

// TDEE scales BMR by the activity level of p.
func TDEE(p models.Profile) (kcal float64, ok bool) {
	bmr, ok := BMR(p)
	if !ok {
		return 0, false
	}
	mult, found := activityMultipliers[p.ActivityLevel]
	if !found {
		return 0, false
	}
	return math.Round(bmr * mult), true
}
