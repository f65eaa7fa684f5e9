package nutrition

import (
	"strings"

	"github.com/shopspring/decimal"
)

const compositePrefix = "Mixed Meal: "

// AggregatedMeal is the combined nutrition of several records, persisted as
// a single meal entry.
type AggregatedMeal struct {
	Description string  `json:"description"`
	AmountGrams float64 `json:"amount_grams"`
	Calories    float64 `json:"calories"`
	Macros      Macros  `json:"macros"`
	ItemCount   int     `json:"item_count"`
}

// Aggregate sums the nutrient fields of items. An optional macro that no item
// defines stays nil in the result. Values are summed as they are; per-item
// rounding drift is not corrected.
func Aggregate(items []Record) (AggregatedMeal, error) {
	if len(items) == 0 {
		return AggregatedMeal{}, &UsageError{Op: "aggregate", Msg: "nothing to log", Err: ErrNothingToLog}
	}

	var (
		amount, calories, protein, carbs, fat decimal.Decimal
		fibre, water                          *decimal.Decimal
		names                                 = make([]string, 0, len(items))
	)

	addOptional := func(total **decimal.Decimal, value *float64) {
		if value == nil {
			return
		}
		if *total == nil {
			zero := decimal.Zero
			*total = &zero
		}
		sum := (*total).Add(dec(*value))
		*total = &sum
	}

	for _, item := range items {
		names = append(names, item.Food)
		amount = amount.Add(dec(item.AmountGrams))
		calories = calories.Add(dec(item.Calories))
		protein = protein.Add(dec(item.Macros.Protein))
		carbs = carbs.Add(dec(item.Macros.Carbs))
		fat = fat.Add(dec(item.Macros.Fat))
		addOptional(&fibre, item.Macros.Fibre)
		addOptional(&water, item.Macros.Water)
	}

	meal := AggregatedMeal{
		Description: describe(names),
		AmountGrams: toFloat(amount),
		Calories:    toFloat(calories),
		Macros: Macros{
			Protein: toFloat(protein),
			Carbs:   toFloat(carbs),
			Fat:     toFloat(fat),
			Fibre:   toFloatPtr(fibre),
			Water:   toFloatPtr(water),
		},
		ItemCount: len(items),
	}
	if !finite(meal.AmountGrams) || !finiteRecord(Record{Calories: meal.Calories, Macros: meal.Macros}) {
		return AggregatedMeal{}, &DomainError{Op: "aggregate", Msg: "meal totals exceed the supported range", Err: ErrOutOfRange}
	}
	return meal, nil
}

func describe(names []string) string {
	if len(names) == 1 {
		return names[0]
	}
	return compositePrefix + strings.Join(names, " + ")
}

// dec maps non-finite input to zero.
func dec(v float64) decimal.Decimal {
	if !finite(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func toFloatPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	return Float(toFloat(*d))
}
