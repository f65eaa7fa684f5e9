package nutrition

import (
	"regexp"
	"strconv"
)

// Facts are the nutrient values found in a free-text description. Units are
// not interpreted; a missing nutrient is zero.
type Facts struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fibre    float64 `json:"fibre"`
}

// Extractor turns an unstructured nutrition description into Facts.
type Extractor interface {
	Extract(description string) Facts
}

// RegexExtractor finds the first number following each nutrient label.
type RegexExtractor struct{}

var (
	caloriesPattern = labelPattern(`Calories`)
	fatPattern      = labelPattern(`Fat`)
	carbsPattern    = labelPattern(`Carbs?`)
	proteinPattern  = labelPattern(`Protein`)
	fibrePattern    = labelPattern(`(?:Fibre|Fiber)`)
)

func labelPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + label + `[^0-9]*([0-9]+(?:\.[0-9]+)?)`)
}

// Extract implements Extractor.
func (RegexExtractor) Extract(description string) Facts {
	return Facts{
		Calories: firstMatch(caloriesPattern, description),
		Fat:      firstMatch(fatPattern, description),
		Carbs:    firstMatch(carbsPattern, description),
		Protein:  firstMatch(proteinPattern, description),
		Fibre:    firstMatch(fibrePattern, description),
	}
}

// Extract runs the default RegexExtractor over description.
func Extract(description string) Facts {
	return RegexExtractor{}.Extract(description)
}

func firstMatch(pattern *regexp.Regexp, text string) float64 {
	match := pattern.FindStringSubmatch(text)
	if len(match) < 2 {
		return 0
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	return value
}

// Record builds a base record for food at the reference amount.
func (f Facts) Record(food string) Record {
	return Record{
		Food:        food,
		AmountGrams: DefaultAmountGrams,
		Calories:    f.Calories,
		Macros: Macros{
			Protein: f.Protein,
			Carbs:   f.Carbs,
			Fat:     f.Fat,
			Fibre:   Float(f.Fibre),
		},
	}
}
