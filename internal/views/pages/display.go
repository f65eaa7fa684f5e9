package pages

import (
	"fmt"
	"strings"
	"time"

	"nutrisnap/internal/views/components"
	"nutrisnap/models"
)

// DefaultDash returns a dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// FormatCalories renders whole kilocalories.
func FormatCalories(value float64) string {
	return fmt.Sprintf("%.0f kcal", value)
}

// FormatGrams renders a gram amount with at most one decimal.
func FormatGrams(value float64) string {
	return fmt.Sprintf("%sg", trimFloat(value))
}

// FormatOptionalGrams renders unknown amounts as a dash.
func FormatOptionalGrams(value *float64) string {
	if value == nil {
		return DefaultDash("")
	}
	return FormatGrams(*value)
}

func trimFloat(value float64) string {
	s := fmt.Sprintf("%.1f", value)
	return strings.TrimSuffix(s, ".0")
}

// formatDay renders YYYY-MM-DD dates as a friendly weekday day month label.
func formatDay(value string) string {
	if strings.TrimSpace(value) == "" {
		return DefaultDash("")
	}
	parsed, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return value
	}
	return parsed.Format("Mon 02 Jan 2006")
}

// MealRows projects meals into table rows.
func MealRows(meals []models.Meal) []components.MealRow {
	rows := make([]components.MealRow, 0, len(meals))
	for _, meal := range meals {
		rows = append(rows, components.MealRow{
			ID:          meal.ID,
			Description: DefaultDash(meal.FoodDescription),
			Amount:      FormatGrams(meal.Amount),
			Calories:    FormatCalories(meal.Calories),
			Protein:     FormatGrams(meal.Protein),
			Carbs:       FormatGrams(meal.Carbs),
			Fat:         FormatGrams(meal.Fat),
			Fibre:       FormatOptionalGrams(meal.Fibre),
		})
	}
	return rows
}
