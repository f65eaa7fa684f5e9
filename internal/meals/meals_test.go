package meals

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutrisnap/internal/nutrition"
	"nutrisnap/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:meals-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Meal{}, &models.Profile{}, &models.MealSuggestion{}))
	return db
}

func TestCreateAndListByDay(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)

	apple := models.Meal{UserID: "u1", Date: "2025-05-17", FoodDescription: "Apple", Calories: 95, Fibre: nutrition.Float(4.4)}
	require.NoError(t, Create(ctx, db, &apple))
	assert.NotEmpty(t, apple.ID)
	assert.Equal(t, nutrition.DefaultAmountGrams, apple.Amount)

	other := models.Meal{UserID: "u2", Date: "2025-05-17", FoodDescription: "Pizza", Calories: 800}
	require.NoError(t, Create(ctx, db, &other))
	older := models.Meal{UserID: "u1", Date: "2025-05-16", FoodDescription: "Rice", Calories: 200}
	require.NoError(t, Create(ctx, db, &older))

	day, err := ForDay(ctx, db, "u1", "2025-05-17")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "Apple", day[0].FoodDescription)
	require.NotNil(t, day[0].Fibre)
	assert.Equal(t, 4.4, *day[0].Fibre)

	week, err := Between(ctx, db, "u1", "2025-05-11", "2025-05-17")
	require.NoError(t, err)
	require.Len(t, week, 2)
	assert.Equal(t, "2025-05-17", week[0].Date)
	assert.Equal(t, "2025-05-16", week[1].Date)

	_, err = Between(ctx, db, "u1", "2025-05-17", "2025-05-11")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCreateRequiresUser(t *testing.T) {
	t.Parallel()

	err := Create(context.Background(), newTestDB(t), &models.Meal{FoodDescription: "Apple"})
	assert.Error(t, err)
}

func TestSaveAndDeleteAreScopedToUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)

	meal := models.Meal{UserID: "u1", Date: "2025-05-17", FoodDescription: "Apple", Calories: 95}
	require.NoError(t, Create(ctx, db, &meal))

	stranger := meal
	stranger.UserID = "u2"
	stranger.Calories = 1
	assert.ErrorIs(t, Save(ctx, db, &stranger), ErrNotFound)
	assert.ErrorIs(t, Delete(ctx, db, "u2", meal.ID), ErrNotFound)

	meal.Apply(nutrition.Record{Food: "Green Apple", AmountGrams: 150, Calories: 78, Micros: map[string]string{"Vitamin C": "7mg"}})
	require.NoError(t, Save(ctx, db, &meal))

	stored, err := Get(ctx, db, "u1", meal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green Apple", stored.FoodDescription)
	assert.Equal(t, 78.0, stored.Calories)
	assert.Equal(t, 150.0, stored.Amount)
	assert.Equal(t, map[string]string{"Vitamin C": "7mg"}, stored.MicroValues())

	require.NoError(t, Delete(ctx, db, "u1", meal.ID))
	_, err = Get(ctx, db, "u1", meal.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileDefaultsAndUpsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)

	profile, err := LoadProfile(ctx, db, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.UserID)
	assert.Equal(t, models.GoalMaintain, profile.GoalType)
	assert.Equal(t, models.DefaultTheme, profile.Theme)

	profile.DailyCalories = 1800
	require.NoError(t, SaveProfile(ctx, db, &profile))

	profile.DailyCalories = 2200
	profile.Theme = models.ThemeNight
	require.NoError(t, SaveProfile(ctx, db, &profile))

	stored, err := LoadProfile(ctx, db, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2200.0, stored.DailyCalories)
	assert.Equal(t, models.ThemeNight, stored.Theme)
}

func TestUpsertSuggestionByName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)

	created, err := UpsertSuggestion(ctx, db, &models.MealSuggestion{Name: " Avocado Toast ", Calories: 250})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = UpsertSuggestion(ctx, db, &models.MealSuggestion{Name: "Avocado Toast", Calories: 270, Tags: "breakfast"})
	require.NoError(t, err)
	assert.False(t, created)

	_, err = UpsertSuggestion(ctx, db, &models.MealSuggestion{Name: "  "})
	assert.Error(t, err)

	all, err := Suggestions(ctx, db)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 270.0, all[0].Calories)
	assert.Equal(t, []string{"breakfast"}, all[0].TagList())
}

func TestNilDatabase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.ErrorIs(t, Create(ctx, nil, &models.Meal{UserID: "u1"}), gorm.ErrInvalidDB)
	_, err := ForDay(ctx, nil, "u1", "2025-05-17")
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
	_, err = Suggestions(ctx, nil)
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
}
