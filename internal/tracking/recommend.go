package tracking

import (
	"math"
	"sort"

	"nutrisnap/models"
)

const (
	maxSuggestions = 3
	calorieBuffer  = 50
	macroBuffer    = 0.2
)

// Suggestion is a catalogue meal that fits the remaining daily budget.
type Suggestion struct {
	Name        string   `json:"name"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Ingredients []string `json:"ingredients"`
	Tags        []string `json:"tags"`
	Distance    float64  `json:"distance"`
}

// Recommend picks up to three catalogue meals that fit what is left of the
// daily goals after consumed, closest fit first. Nothing is suggested
// without a calorie goal or once it is reached.
func Recommend(catalogue []models.MealSuggestion, consumed Totals, goals Goals) []Suggestion {
	if goals.Calories <= 0 {
		return nil
	}
	remaining := Totals{
		Calories: goals.Calories - consumed.Calories,
		Protein:  goals.Protein - consumed.Protein,
		Carbs:    goals.Carbs - consumed.Carbs,
		Fat:      goals.Fat - consumed.Fat,
	}
	if remaining.Calories <= 0 {
		return nil
	}

	fits := func(value, left float64) bool {
		return value <= left+left*macroBuffer
	}

	suitable := []Suggestion{}
	for _, meal := range catalogue {
		if meal.Calories > remaining.Calories+calorieBuffer ||
			!fits(meal.Protein, remaining.Protein) ||
			!fits(meal.Carbs, remaining.Carbs) ||
			!fits(meal.Fat, remaining.Fat) {
			continue
		}
		suitable = append(suitable, Suggestion{
			Name:        meal.Name,
			Calories:    meal.Calories,
			Protein:     meal.Protein,
			Carbs:       meal.Carbs,
			Fat:         meal.Fat,
			Ingredients: meal.IngredientList(),
			Tags:        meal.TagList(),
			Distance: math.Abs(meal.Calories-remaining.Calories) +
				math.Abs(meal.Protein-remaining.Protein) +
				math.Abs(meal.Carbs-remaining.Carbs) +
				math.Abs(meal.Fat-remaining.Fat),
		})
	}

	sort.SliceStable(suitable, func(i, j int) bool {
		return suitable[i].Distance < suitable[j].Distance
	})
	if len(suitable) > maxSuggestions {
		suitable = suitable[:maxSuggestions]
	}
	return suitable
}
