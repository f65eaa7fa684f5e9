// Package foodsearch queries the nutrition database proxy used to correct
// misidentified foods.
package foodsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nutrisnap/internal/nutrition"
)

const (
	defaultTimeout = 15 * time.Second
	maxResults     = 10
)

// Config describes the proxy endpoint.
type Config struct {
	URL        string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client posts search terms to the proxy, which signs and forwards them to
// the food database.
type Client struct {
	url        string
	httpClient *http.Client
}

// Food is one search hit. Description carries the per-serving nutrient
// summary, e.g. "Per 100g - Calories: 52kcal | Fat: 0.17g | Carbs: 13.81g".
type Food struct {
	ID          string `json:"food_id"`
	Name        string `json:"food_name"`
	Description string `json:"food_description"`
	Type        string `json:"food_type"`
	URL         string `json:"food_url,omitempty"`
}

// Record reads the nutrient summary of f into a base record at the reference
// amount.
func (f Food) Record() nutrition.Record {
	return nutrition.Extract(f.Description).Record(f.Name)
}

// NewClient builds a Client from cfg.
func NewClient(cfg Config) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errors.New("foodsearch: url must not be empty")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{url: url, httpClient: httpClient}, nil
}

// Search returns up to ten foods matching term. An empty term returns no
// results without calling the proxy.
func (c *Client) Search(ctx context.Context, term string) ([]Food, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []Food{}, nil
	}

	body, err := json.Marshal(map[string]string{"searchTerm": term})
	if err != nil {
		return nil, fmt.Errorf("foodsearch: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("foodsearch: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("foodsearch: call proxy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("foodsearch: proxy returned status %s", resp.Status)
	}

	var payload struct {
		Foods struct {
			Food json.RawMessage `json:"food"`
		} `json:"foods"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("foodsearch: decode response: %w", err)
	}

	foods, err := decodeFoods(payload.Foods.Food)
	if err != nil {
		return nil, err
	}
	if len(foods) > maxResults {
		foods = foods[:maxResults]
	}
	return foods, nil
}

// decodeFoods accepts a single food object or a list of them.
func decodeFoods(raw json.RawMessage) ([]Food, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []Food{}, nil
	}

	if raw[0] == '[' {
		var foods []Food
		if err := json.Unmarshal(raw, &foods); err != nil {
			return nil, fmt.Errorf("foodsearch: decode foods: %w", err)
		}
		return foods, nil
	}

	var food Food
	if err := json.Unmarshal(raw, &food); err != nil {
		return nil, fmt.Errorf("foodsearch: decode food: %w", err)
	}
	return []Food{food}, nil
}
