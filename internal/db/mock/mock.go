package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appdb "nutrisnap/internal/db"
	applog "nutrisnap/internal/log"
	"nutrisnap/internal/nutrition"
	"nutrisnap/models"
)

// DemoUserID owns the seeded profile and meals.
const DemoUserID = "demo-user"

// New returns an in-memory sqlite database seeded with a demo profile, the
// suggestion catalogue and a few days of meals.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	dsn := fmt.Sprintf("file:nutrisnap-mock-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := appdb.AutoMigrate(db); err != nil {
		return nil, err
	}

	if err := seed(ctx, db, time.Now().UTC()); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

// Suggestions is the catalogue seeded into every mock database.
func Suggestions() []models.MealSuggestion {
	return []models.MealSuggestion{
		{
			Name: "Greek Yogurt with Berries", Calories: 150, Protein: 15, Carbs: 20, Fat: 3,
			Ingredients: models.JoinList([]string{"Greek yogurt", "Mixed berries", "Honey"}),
			Tags:        models.JoinList([]string{"breakfast", "high-protein", "quick"}),
		},
		{
			Name: "Grilled Chicken Salad", Calories: 300, Protein: 35, Carbs: 10, Fat: 12,
			Ingredients: models.JoinList([]string{"Chicken breast", "Mixed greens", "Cherry tomatoes", "Olive oil"}),
			Tags:        models.JoinList([]string{"lunch", "high-protein", "low-carb"}),
		},
		{
			Name: "Avocado Toast", Calories: 250, Protein: 8, Carbs: 30, Fat: 15,
			Ingredients: models.JoinList([]string{"Whole grain bread", "Avocado", "Lemon juice"}),
			Tags:        models.JoinList([]string{"breakfast", "vegetarian"}),
		},
		{
			Name: "Salmon with Rice", Calories: 400, Protein: 30, Carbs: 45, Fat: 15,
			Ingredients: models.JoinList([]string{"Salmon fillet", "Brown rice", "Broccoli"}),
			Tags:        models.JoinList([]string{"dinner", "omega-3"}),
		},
		{
			Name: "Protein Smoothie", Calories: 200, Protein: 25, Carbs: 15, Fat: 5,
			Ingredients: models.JoinList([]string{"Protein powder", "Banana", "Almond milk"}),
			Tags:        models.JoinList([]string{"snack", "high-protein", "quick"}),
		},
	}
}

func seed(ctx context.Context, db *gorm.DB, now time.Time) error {
	applog.Debug(ctx, "seeding mock database")

	profile := &models.Profile{
		UserID:        DemoUserID,
		Username:      "demo",
		FullName:      "Demo Eater",
		WeightKG:      70,
		HeightCM:      175,
		Age:           30,
		Sex:           "male",
		ActivityLevel: "moderate",
		DailyCalories: 2000,
		DailyProtein:  150,
		DailyCarbs:    200,
		DailyFat:      70,
		DailyFiber:    30,
		DailyWater:    2000,
		GoalType:      models.GoalMaintain,
		Theme:         models.DefaultTheme,
	}
	if err := db.WithContext(ctx).Create(profile).Error; err != nil {
		return err
	}

	for _, suggestion := range Suggestions() {
		suggestionCopy := suggestion
		if err := db.WithContext(ctx).Create(&suggestionCopy).Error; err != nil {
			return err
		}
	}

	today := now.Format(models.DateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(models.DateLayout)
	meals := []models.Meal{
		{
			UserID: DemoUserID, Date: today, FoodDescription: "Mixed Meal: Apple + Banana",
			Calories: 250, Protein: 2.1, Carbs: 65.1, Fat: 0.9, Fibre: nutrition.Float(6),
			Amount: 270, ItemCount: 2,
		},
		{
			UserID: DemoUserID, Date: today, FoodDescription: "Grilled Chicken Salad",
			Calories: 300, Protein: 35, Carbs: 10, Fat: 12, Amount: 350,
		},
		{
			UserID: DemoUserID, Date: yesterday, FoodDescription: "Salmon with Rice",
			Calories: 400, Protein: 30, Carbs: 45, Fat: 15, Amount: 420,
		},
	}
	for _, meal := range meals {
		mealCopy := meal
		if err := db.WithContext(ctx).Create(&mealCopy).Error; err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
