package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nutrisnap/internal/nutrition"
)

// DateLayout is the calendar day format meals are filed under.
const DateLayout = "2006-01-02"

// Meal is one logged meal. Several scanned foods are stored as a single
// combined row.
type Meal struct {
	ID              string   `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID          string   `gorm:"type:varchar(64);not null;index:idx_meals_user_date,priority:1" json:"user_id"`
	Date            string   `gorm:"type:varchar(10);not null;index:idx_meals_user_date,priority:2" json:"date"`
	FoodDescription string   `gorm:"type:text;not null" json:"food_description"`
	Calories        float64  `gorm:"not null;default:0" json:"calories"`
	Protein         float64  `gorm:"not null;default:0" json:"protein"`
	Carbs           float64  `gorm:"not null;default:0" json:"carbs"`
	Fat             float64  `gorm:"not null;default:0" json:"fat"`
	Fibre           *float64 `json:"fibre"`
	Water           *float64 `json:"water"`
	Amount          float64  `gorm:"not null;default:100" json:"amount"`
	ItemCount       int      `gorm:"not null;default:1" json:"item_count"`
	Micros          string   `gorm:"type:text" json:"-"`
	PhotoURL        string   `json:"photo_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a random id to new meals.
func (m *Meal) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Amount <= 0 {
		m.Amount = nutrition.DefaultAmountGrams
	}
	if m.ItemCount <= 0 {
		m.ItemCount = 1
	}
	return nil
}

// NewMeal builds the row for an aggregated meal eaten on day.
func NewMeal(userID string, day time.Time, aggregated nutrition.AggregatedMeal) Meal {
	return Meal{
		UserID:          userID,
		Date:            day.Format(DateLayout),
		FoodDescription: aggregated.Description,
		Calories:        aggregated.Calories,
		Protein:         aggregated.Macros.Protein,
		Carbs:           aggregated.Macros.Carbs,
		Fat:             aggregated.Macros.Fat,
		Fibre:           aggregated.Macros.Fibre,
		Water:           aggregated.Macros.Water,
		Amount:          aggregated.AmountGrams,
		ItemCount:       aggregated.ItemCount,
	}
}

// Record returns the nutrition of the meal at its stored amount.
func (m Meal) Record() nutrition.Record {
	return nutrition.Record{
		Food:        m.FoodDescription,
		AmountGrams: nutrition.ClampAmount(m.Amount),
		Calories:    m.Calories,
		Macros: nutrition.Macros{
			Protein: m.Protein,
			Carbs:   m.Carbs,
			Fat:     m.Fat,
			Fibre:   m.Fibre,
			Water:   m.Water,
		},
		Micros: m.MicroValues(),
	}
}

// Apply overwrites the nutrient columns with record.
func (m *Meal) Apply(record nutrition.Record) {
	m.FoodDescription = record.Food
	m.Amount = record.AmountGrams
	m.Calories = record.Calories
	m.Protein = record.Macros.Protein
	m.Carbs = record.Macros.Carbs
	m.Fat = record.Macros.Fat
	m.Fibre = record.Macros.Fibre
	m.Water = record.Macros.Water
	m.SetMicros(record.Micros)
}

// MicroValues decodes the stored micronutrients. Unreadable values are
// treated as absent.
func (m Meal) MicroValues() map[string]string {
	if m.Micros == "" {
		return nil
	}
	values := map[string]string{}
	if err := json.Unmarshal([]byte(m.Micros), &values); err != nil {
		return nil
	}
	return values
}

// SetMicros encodes values into the Micros column.
func (m *Meal) SetMicros(values map[string]string) {
	if len(values) == 0 {
		m.Micros = ""
		return
	}
	data, err := json.Marshal(values)
	if err != nil {
		m.Micros = ""
		return
	}
	m.Micros = string(data)
}

// MarshalJSON exposes micros as an object instead of the stored text.
func (m Meal) MarshalJSON() ([]byte, error) {
	type alias Meal
	return json.Marshal(struct {
		alias
		Micros map[string]string `json:"micros,omitempty"`
	}{alias: alias(m), Micros: m.MicroValues()})
}
