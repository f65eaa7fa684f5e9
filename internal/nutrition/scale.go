package nutrition

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Scale recomputes base for newAmountGrams. Calories are rounded to whole
// kcal and gram fields to one decimal place, half away from zero. Micros and
// the food name are carried through unchanged; base is never modified.
func Scale(base Record, newAmountGrams float64) (Record, error) {
	if !positive(base.AmountGrams) {
		return Record{}, &DomainError{
			Op:  "scale",
			Msg: fmt.Sprintf("base amount %v must be positive", base.AmountGrams),
			Err: ErrNonPositiveAmount,
		}
	}
	if !positive(newAmountGrams) {
		return Record{}, &DomainError{
			Op:  "scale",
			Msg: fmt.Sprintf("target amount %v must be positive", newAmountGrams),
			Err: ErrNonPositiveAmount,
		}
	}

	if !finiteRecord(base) {
		return Record{}, &DomainError{Op: "scale", Msg: "base record holds a non-finite value"}
	}
	if negativeRecord(base) {
		return Record{}, &DomainError{Op: "scale", Msg: "base record holds a negative value", Err: ErrNegativeNutrient}
	}

	from := decimal.NewFromFloat(base.AmountGrams)
	to := decimal.NewFromFloat(newAmountGrams)
	scaled := func(value float64, places int32) float64 {
		out, _ := decimal.NewFromFloat(value).Mul(to).Div(from).Round(places).Float64()
		return out
	}
	scaledPtr := func(value *float64) *float64 {
		if value == nil {
			return nil
		}
		return Float(scaled(*value, 1))
	}

	return Record{
		Food:        base.Food,
		AmountGrams: newAmountGrams,
		Calories:    scaled(base.Calories, 0),
		Macros: Macros{
			Protein: scaled(base.Macros.Protein, 1),
			Carbs:   scaled(base.Macros.Carbs, 1),
			Fat:     scaled(base.Macros.Fat, 1),
			Fibre:   scaledPtr(base.Macros.Fibre),
			Water:   scaledPtr(base.Macros.Water),
		},
		Micros: cloneMicros(base.Micros),
	}, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteRecord(r Record) bool {
	if !finite(r.Calories) || !finite(r.Macros.Protein) || !finite(r.Macros.Carbs) || !finite(r.Macros.Fat) {
		return false
	}
	if r.Macros.Fibre != nil && !finite(*r.Macros.Fibre) {
		return false
	}
	return r.Macros.Water == nil || finite(*r.Macros.Water)
}

func negativeRecord(r Record) bool {
	if r.Calories < 0 || r.Macros.Protein < 0 || r.Macros.Carbs < 0 || r.Macros.Fat < 0 {
		return true
	}
	if r.Macros.Fibre != nil && *r.Macros.Fibre < 0 {
		return true
	}
	return r.Macros.Water != nil && *r.Macros.Water < 0
}
