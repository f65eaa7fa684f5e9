package models

import (
	"strings"
	"time"
)

const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

const (
	ThemeFresh    = "fresh"
	ThemeNight    = "night"
	ThemeContrast = "contrast"

	DefaultTheme = ThemeFresh
)

// Profile holds body measurements and daily targets of a user. Goal fields
// left at zero are unset.
type Profile struct {
	UserID   string `gorm:"type:varchar(64);primaryKey" json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`

	WeightKG      float64 `json:"weight"`
	HeightCM      float64 `json:"height"`
	Age           int     `json:"age"`
	Sex           string  `gorm:"type:varchar(16)" json:"sex"`
	ActivityLevel string  `gorm:"type:varchar(16)" json:"activity_level"`

	DailyCalories float64 `json:"daily_calories"`
	DailyProtein  float64 `json:"daily_protein"`
	DailyCarbs    float64 `json:"daily_carbs"`
	DailyFat      float64 `json:"daily_fat"`
	DailyFiber    float64 `json:"daily_fiber"`
	DailyWater    float64 `json:"daily_water"`
	WeightGoal    float64 `json:"weight_goal"`
	GoalType      string  `gorm:"type:varchar(16);default:maintain" json:"goal_type"`

	Theme string `gorm:"type:varchar(32);default:fresh" json:"theme"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidGoalType reports whether value names a supported weight goal.
func ValidGoalType(value string) bool {
	switch value {
	case GoalLose, GoalMaintain, GoalGain:
		return true
	default:
		return false
	}
}

// NormalizeGoalType lowercases value and falls back to maintain.
func NormalizeGoalType(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if ValidGoalType(value) {
		return value
	}
	return GoalMaintain
}

// ValidTheme reports whether value names a registered theme.
func ValidTheme(value string) bool {
	switch value {
	case ThemeFresh, ThemeNight, ThemeContrast:
		return true
	default:
		return false
	}
}

// NormalizeTheme trims value and falls back to the default theme.
func NormalizeTheme(value string) string {
	value = strings.TrimSpace(value)
	if ValidTheme(value) {
		return value
	}
	return DefaultTheme
}
