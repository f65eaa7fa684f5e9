package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	minEstimateGrams   = 20
	maxEstimateGrams   = 500
	fallbackGrams      = 100
	maxFallbackEntries = 10
)

var (
	// ErrNoFoodIdentified is returned when a photo yields no food items.
	ErrNoFoodIdentified = errors.New("ai: no food items were identified in the image")
	// ErrUnsupportedImage is returned for empty uploads or non-image content.
	ErrUnsupportedImage = errors.New("ai: unsupported image")
)

// IdentifiedFood is one food recognised on a photo with its estimated
// portion.
type IdentifiedFood struct {
	Food           string  `json:"food"`
	EstimatedGrams float64 `json:"estimatedGrams"`
}

const identifySystemPrompt = "You are a nutrition assistant that recognises foods on photos and estimates portion sizes. Respond with raw JSON only."

const identifyPrompt = `Analyze this food image and identify all visible food items with estimated portion sizes. For each food item, provide the name and estimated weight in grams based on visual cues like plate size, portion appearance, and common serving sizes.

Return the results as a JSON array with this format:
[{"food": "Food Name", "estimatedGrams": 150}, {"food": "Another Food", "estimatedGrams": 80}]

Guidelines for portion estimation:
- Use visual references like plate size, utensils, hands if visible
- Consider typical serving sizes (e.g., chicken breast ~150g, apple ~180g, slice of bread ~30g)
- For multiple items, estimate each separately
- If uncertain about size, use reasonable typical portions
- Minimum 20g, maximum 500g per item

Focus on identifying specific food items that can be found in nutrition databases.`

// IdentifyFoods sends image to the vision model and returns the recognised
// foods with portion estimates clamped to 20..500 g.
func (c *Client) IdentifyFoods(ctx context.Context, image []byte, mimeType string) ([]IdentifiedFood, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty upload", ErrUnsupportedImage)
	}
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, mimeType)
	}

	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)
	content, err := c.chat(ctx, identifySystemPrompt, []map[string]any{
		{"type": "text", "text": identifyPrompt},
		{"type": "image_url", "image_url": map[string]string{"url": dataURL}},
	})
	if err != nil {
		return nil, err
	}

	foods := ParseIdentifiedFoods(content)
	if len(foods) == 0 {
		return nil, ErrNoFoodIdentified
	}
	return foods, nil
}

// ParseIdentifiedFoods reads a model reply. A JSON array of
// {"food","estimatedGrams"} objects is preferred; any other text is read as
// a comma separated list of at most ten foods at 100 g each.
func ParseIdentifiedFoods(content string) []IdentifiedFood {
	content = stripFences(content)
	caser := cases.Title(language.English)

	var entries []struct {
		Food           string `json:"food"`
		EstimatedGrams any    `json:"estimatedGrams"`
	}
	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.UseNumber()
	if err := decoder.Decode(&entries); err == nil {
		foods := make([]IdentifiedFood, 0, len(entries))
		for _, entry := range entries {
			name := normaliseText(entry.Food)
			if name == "" {
				continue
			}
			foods = append(foods, IdentifiedFood{
				Food:           caser.String(name),
				EstimatedGrams: clampEstimate(parseNumeric(entry.EstimatedGrams)),
			})
		}
		return foods
	}

	if strings.HasPrefix(content, "[") || strings.HasPrefix(content, "{") {
		return nil
	}

	foods := []IdentifiedFood{}
	for _, part := range strings.Split(content, ",") {
		name := normaliseText(part)
		if name == "" {
			continue
		}
		foods = append(foods, IdentifiedFood{Food: caser.String(name), EstimatedGrams: fallbackGrams})
		if len(foods) == maxFallbackEntries {
			break
		}
	}
	return foods
}

func clampEstimate(grams float64) float64 {
	if grams == 0 || math.IsNaN(grams) {
		grams = fallbackGrams
	}
	return math.Min(math.Max(grams, minEstimateGrams), maxEstimateGrams)
}
