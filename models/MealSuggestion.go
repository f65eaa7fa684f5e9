package models

import (
	"strings"

	"gorm.io/gorm"
)

// MealSuggestion is a catalogue meal offered when a user has budget left
// for the day.
type MealSuggestion struct {
	gorm.Model
	Name        string  `gorm:"uniqueIndex;not null" json:"name"`
	Calories    float64 `gorm:"not null" json:"calories"`
	Protein     float64 `gorm:"not null" json:"protein"`
	Carbs       float64 `gorm:"not null" json:"carbs"`
	Fat         float64 `gorm:"not null" json:"fat"`
	Ingredients string  `gorm:"type:text" json:"-"`
	Tags        string  `gorm:"type:text" json:"-"`
}

// IngredientList splits the stored ingredient list.
func (s MealSuggestion) IngredientList() []string {
	return splitList(s.Ingredients)
}

// TagList splits the stored tags.
func (s MealSuggestion) TagList() []string {
	return splitList(s.Tags)
}

// JoinList stores values in the ";" separated column format.
func JoinList(values []string) string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			cleaned = append(cleaned, value)
		}
	}
	return strings.Join(cleaned, ";")
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
