// Package meals reads and writes logged meals, profiles and the suggestion
// catalogue. Every meal query is scoped to one user.
package meals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nutrisnap/models"
)

var (
	ErrNotFound    = errors.New("meals: not found")
	ErrInvalidDate = errors.New("meals: invalid date range")
)

// Create inserts meal.
func Create(ctx context.Context, db *gorm.DB, meal *models.Meal) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	if strings.TrimSpace(meal.UserID) == "" {
		return errors.New("meals: user id must not be empty")
	}
	if err := db.WithContext(ctx).Create(meal).Error; err != nil {
		return fmt.Errorf("meals: create: %w", err)
	}
	return nil
}

// Get loads one meal of userID.
func Get(ctx context.Context, db *gorm.DB, userID, id string) (models.Meal, error) {
	if db == nil {
		return models.Meal{}, gorm.ErrInvalidDB
	}
	var meal models.Meal
	err := db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Meal{}, ErrNotFound
	}
	if err != nil {
		return models.Meal{}, fmt.Errorf("meals: get: %w", err)
	}
	return meal, nil
}

// ForDay lists the meals of userID filed under date, oldest first.
func ForDay(ctx context.Context, db *gorm.DB, userID, date string) ([]models.Meal, error) {
	return Between(ctx, db, userID, date, date)
}

// Between lists the meals of userID from the day from to the day to, both
// inclusive. Dates use models.DateLayout.
func Between(ctx context.Context, db *gorm.DB, userID, from, to string) ([]models.Meal, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	if from == "" || to == "" || from > to {
		return nil, ErrInvalidDate
	}
	var result []models.Meal
	err := db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date desc").
		Order("created_at asc").
		Find(&result).Error
	if err != nil {
		return nil, fmt.Errorf("meals: list: %w", err)
	}
	return result, nil
}

// Save writes the changed columns of an existing meal.
func Save(ctx context.Context, db *gorm.DB, meal *models.Meal) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	res := db.WithContext(ctx).
		Model(&models.Meal{}).
		Where("user_id = ? AND id = ?", meal.UserID, meal.ID).
		Select("food_description", "calories", "protein", "carbs", "fat", "fibre", "water", "amount", "micros", "date", "updated_at").
		Updates(meal)
	if res.Error != nil {
		return fmt.Errorf("meals: save: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one meal of userID.
func Delete(ctx context.Context, db *gorm.DB, userID, id string) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	res := db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&models.Meal{})
	if res.Error != nil {
		return fmt.Errorf("meals: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// LoadProfile returns the profile of userID, or an empty one with defaults.
func LoadProfile(ctx context.Context, db *gorm.DB, userID string) (models.Profile, error) {
	if db == nil {
		return models.Profile{}, gorm.ErrInvalidDB
	}
	var profile models.Profile
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Profile{UserID: userID, GoalType: models.GoalMaintain, Theme: models.DefaultTheme}, nil
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("meals: load profile: %w", err)
	}
	return profile, nil
}

// SaveProfile inserts or replaces the profile.
func SaveProfile(ctx context.Context, db *gorm.DB, profile *models.Profile) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("meals: save profile: %w", err)
	}
	return nil
}

// Suggestions returns the whole suggestion catalogue ordered by name.
func Suggestions(ctx context.Context, db *gorm.DB) ([]models.MealSuggestion, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var result []models.MealSuggestion
	if err := db.WithContext(ctx).Order("name asc").Find(&result).Error; err != nil {
		return nil, fmt.Errorf("meals: list suggestions: %w", err)
	}
	return result, nil
}

// UpsertSuggestion creates suggestion or updates the entry with the same name.
func UpsertSuggestion(ctx context.Context, db *gorm.DB, suggestion *models.MealSuggestion) (created bool, err error) {
	if db == nil {
		return false, gorm.ErrInvalidDB
	}
	name := strings.TrimSpace(suggestion.Name)
	if name == "" {
		return false, errors.New("meals: suggestion name must not be empty")
	}
	suggestion.Name = name

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.MealSuggestion
		findErr := tx.Where("name = ?", name).First(&existing).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			created = true
			return tx.Create(suggestion).Error
		case findErr != nil:
			return findErr
		}
		suggestion.ID = existing.ID
		return tx.Model(&existing).Updates(map[string]any{
			"calories":    suggestion.Calories,
			"protein":     suggestion.Protein,
			"carbs":       suggestion.Carbs,
			"fat":         suggestion.Fat,
			"ingredients": suggestion.Ingredients,
			"tags":        suggestion.Tags,
		}).Error
	})
	if err != nil {
		return false, fmt.Errorf("meals: upsert suggestion %q: %w", name, err)
	}
	return created, nil
}
