package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"nutrisnap/internal/nutrition"
)

const estimateSystemPrompt = "You are a registered dietitian. Provide compact, fact-checked nutrition data in JSON only."

func buildEstimatePrompt(food string, grams float64) string {
	return fmt.Sprintf(`Return JSON describing the nutrition of %g grams of "%s". Fields:
{
  "food": string (common name of the food),
  "calories": number (kcal),
  "protein": number (grams),
  "carbs": number (grams),
  "fat": number (grams),
  "fibre": number (grams) or null if unknown,
  "water": number (millilitres) or null if unknown,
  "micros": object mapping micronutrient names to amounts with units, e.g. {"Vitamin C": "8mg"}
}
Strict rules: respond with raw JSON, no Markdown, no comments. Use typical values for the raw or most common preparation.`, grams, food)
}

type aiNutritionResponse struct {
	Food     string         `json:"food"`
	Calories any            `json:"calories"`
	Protein  any            `json:"protein"`
	Carbs    any            `json:"carbs"`
	Fat      any            `json:"fat"`
	Fibre    any            `json:"fibre"`
	Water    any            `json:"water"`
	Micros   map[string]any `json:"micros"`
}

// EstimateNutrition asks the model for the nutrition of grams of food. The
// result is a base record at that amount.
func (c *Client) EstimateNutrition(ctx context.Context, food string, grams float64) (nutrition.Record, error) {
	food = normaliseText(food)
	if food == "" {
		return nutrition.Record{}, errors.New("ai: food name must not be empty")
	}
	grams = nutrition.ClampAmount(grams)

	content, err := c.chat(ctx, estimateSystemPrompt, buildEstimatePrompt(food, grams))
	if err != nil {
		return nutrition.Record{}, err
	}

	var parsed aiNutritionResponse
	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.UseNumber()
	if err := decoder.Decode(&parsed); err != nil {
		return nutrition.Record{}, fmt.Errorf("ai: parse JSON payload: %w", err)
	}

	return normaliseNutrition(food, grams, parsed), nil
}

func normaliseNutrition(requested string, grams float64, data aiNutritionResponse) nutrition.Record {
	name := normaliseText(data.Food)
	if name == "" {
		name = requested
	}

	record := nutrition.Record{
		Food:        name,
		AmountGrams: grams,
		Calories:    nonNegative(parseNumeric(data.Calories)),
		Macros: nutrition.Macros{
			Protein: nonNegative(parseNumeric(data.Protein)),
			Carbs:   nonNegative(parseNumeric(data.Carbs)),
			Fat:     nonNegative(parseNumeric(data.Fat)),
			Fibre:   optionalNumeric(data.Fibre),
			Water:   optionalNumeric(data.Water),
		},
	}

	for key, raw := range data.Micros {
		key = normaliseText(key)
		var value string
		switch v := raw.(type) {
		case string:
			value = normaliseText(v)
		case json.Number:
			value = v.String()
		}
		if key == "" || value == "" {
			continue
		}
		if record.Micros == nil {
			record.Micros = map[string]string{}
		}
		record.Micros[key] = value
	}

	return record
}

func optionalNumeric(value any) *float64 {
	if value == nil {
		return nil
	}
	if s, ok := value.(string); ok && normaliseValue(s) == "" {
		return nil
	}
	return nutrition.Float(nonNegative(parseNumeric(value)))
}

func nonNegative(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}
