package nutrition

import (
	"math"
	"strconv"
	"strings"
)

// ClampAmount replaces an unusable serving amount with DefaultAmountGrams.
func ClampAmount(grams float64) float64 {
	if math.IsNaN(grams) || math.IsInf(grams, 0) || grams <= 0 {
		return DefaultAmountGrams
	}
	return grams
}

// ParseAmount reads a user-entered gram amount. Input that is not a positive
// number yields DefaultAmountGrams.
func ParseAmount(value string) float64 {
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "g"))
	grams, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return DefaultAmountGrams
	}
	return ClampAmount(grams)
}
