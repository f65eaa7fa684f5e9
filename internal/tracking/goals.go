package tracking

import (
	"math"

	"nutrisnap/models"
)

// Goals are the daily targets of a user. Zero means unset.
type Goals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fibre    float64 `json:"fibre"`
	Water    float64 `json:"water"`
}

// GoalsFromProfile reads the daily targets of p.
func GoalsFromProfile(p models.Profile) Goals {
	return Goals{
		Calories: p.DailyCalories,
		Protein:  p.DailyProtein,
		Carbs:    p.DailyCarbs,
		Fat:      p.DailyFat,
		Fibre:    p.DailyFiber,
		Water:    p.DailyWater,
	}
}

// GoalDelta compares one averaged nutrient with its target.
type GoalDelta struct {
	Nutrient   string  `json:"nutrient"`
	Unit       string  `json:"unit"`
	Average    float64 `json:"average"`
	Goal       float64 `json:"goal"`
	Difference float64 `json:"difference"`
}

// CompareToGoals lists the difference between avg and every goal that is set.
func CompareToGoals(avg Totals, goals Goals) []GoalDelta {
	rows := []struct {
		name, unit string
		avg, goal  float64
	}{
		{"calories", "kcal", avg.Calories, goals.Calories},
		{"protein", "g", avg.Protein, goals.Protein},
		{"carbs", "g", avg.Carbs, goals.Carbs},
		{"fat", "g", avg.Fat, goals.Fat},
		{"fibre", "g", avg.Fibre, goals.Fibre},
		{"water", "ml", avg.Water, goals.Water},
	}

	deltas := []GoalDelta{}
	for _, row := range rows {
		if row.goal <= 0 {
			continue
		}
		diff := row.avg - row.goal
		if row.name == "calories" {
			diff = math.Round(diff)
		} else {
			diff = round1(diff)
		}
		deltas = append(deltas, GoalDelta{
			Nutrient:   row.name,
			Unit:       row.unit,
			Average:    row.avg,
			Goal:       row.goal,
			Difference: diff,
		})
	}
	return deltas
}

// ProgressBar describes how far current is towards target.
type ProgressBar struct {
	Label   string  `json:"label"`
	Unit    string  `json:"unit"`
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Percent float64 `json:"percent"`
	Over    bool    `json:"over"`
	Excess  float64 `json:"excess"`
}

// Progress fills a bar. Percent is capped at 100 and is zero without target.
func Progress(label, unit string, current, target float64) ProgressBar {
	bar := ProgressBar{Label: label, Unit: unit, Current: current, Target: target}
	if target > 0 {
		bar.Percent = math.Min(current/target*100, 100)
	}
	bar.Over = current > target
	if bar.Over {
		bar.Excess = round1(current - target)
	}
	return bar
}

// DailyProgress builds a bar for every nutrient with a goal.
func DailyProgress(day Totals, goals Goals) []ProgressBar {
	bars := []ProgressBar{}
	add := func(label, unit string, current, target float64) {
		if target > 0 {
			bars = append(bars, Progress(label, unit, current, target))
		}
	}
	add("Calories", "kcal", day.Calories, goals.Calories)
	add("Protein", "g", day.Protein, goals.Protein)
	add("Carbs", "g", day.Carbs, goals.Carbs)
	add("Fat", "g", day.Fat, goals.Fat)
	add("Fibre", "g", day.Fibre, goals.Fibre)
	add("Water", "ml", day.Water, goals.Water)
	return bars
}
