package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nutrisnap/internal/meals"
	"nutrisnap/internal/nutrition"
	"nutrisnap/models"
)

func withFixedNow(t *testing.T, value time.Time) {
	t.Helper()
	original := now
	now = func() time.Time { return value }
	t.Cleanup(func() { now = original })
}

func createMeal(t *testing.T, meal models.Meal) models.Meal {
	t.Helper()
	if err := meals.Create(context.Background(), database, &meal); err != nil {
		t.Fatalf("failed to create meal: %v", err)
	}
	return meal
}

func TestMealsListUpdateAndDelete(t *testing.T) {
	_, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)
	withFixedNow(t, time.Date(2025, 5, 17, 9, 0, 0, 0, time.UTC))

	rice := createMeal(t, models.Meal{UserID: "alice", Date: "2025-05-17", FoodDescription: "Rice", Amount: 100, Calories: 130, Carbs: 28.2, Protein: 2.7, Fibre: nutrition.Float(0.4)})
	createMeal(t, models.Meal{UserID: "alice", Date: "2025-03-01", FoodDescription: "Old soup", Calories: 90})
	createMeal(t, models.Meal{UserID: "bob", Date: "2025-05-17", FoodDescription: "Pizza", Calories: 800})

	ctx := applogUser("alice")

	w := httptest.NewRecorder()
	MealsResource(w, jsonRequest(ctx, http.MethodGet, "/api/meals", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d (%s)", w.Code, w.Body.String())
	}
	var listed struct {
		From  string        `json:"from"`
		To    string        `json:"to"`
		Meals []models.Meal `json:"meals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if listed.From != "2025-04-18" || listed.To != "2025-05-17" {
		t.Fatalf("range = %s..%s, want 2025-04-18..2025-05-17", listed.From, listed.To)
	}
	if len(listed.Meals) != 1 || listed.Meals[0].ID != rice.ID {
		t.Fatalf("meals = %+v, want only rice", listed.Meals)
	}

	w = httptest.NewRecorder()
	MealsResource(w, jsonRequest(ctx, http.MethodGet, "/api/meals?from=2025-03-01&to=2025-05-17", ""))
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(listed.Meals) != 2 {
		t.Fatalf("meals = %d, want 2", len(listed.Meals))
	}

	w = httptest.NewRecorder()
	MealsResource(w, jsonRequest(ctx, http.MethodPut, "/api/meals/"+rice.ID, `{"amount":150}`))
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d (%s)", w.Code, w.Body.String())
	}
	var updated models.Meal
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode meal: %v", err)
	}
	if updated.Amount != 150 || updated.Calories != 195 || updated.Carbs != 42.3 {
		t.Fatalf("updated = %+v, want 150 g, 195 kcal, 42.3 g carbs", updated)
	}
	if updated.Fibre == nil || *updated.Fibre != 0.6 {
		t.Fatalf("fibre = %v, want 0.6", updated.Fibre)
	}

	w = httptest.NewRecorder()
	MealsResource(w, jsonRequest(ctx, http.MethodPut, "/api/meals/"+rice.ID, `{"food_description":"Brown rice","calories":180,"date":"2025-05-16"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("edit status = %d (%s)", w.Code, w.Body.String())
	}
	stored, err := meals.Get(context.Background(), database, "alice", rice.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.FoodDescription != "Brown rice" || stored.Calories != 180 || stored.Date != "2025-05-16" || stored.Amount != 150 {
		t.Fatalf("stored = %+v", stored)
	}

	w = httptest.NewRecorder()
	MealsResource(w, jsonRequest(applogUser("bob"), http.MethodDelete, "/api/meals/"+rice.ID, ""))
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign delete status = %d, want %d", w.Code, http.StatusNotFound)
	}

	w = httptest.NewRecorder()
	MealsResource(w, jsonRequest(ctx, http.MethodDelete, "/api/meals/"+rice.ID, ""))
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", w.Code, http.StatusNoContent)
	}

	w = httptest.NewRecorder()
	MealsResource(w, jsonRequest(ctx, http.MethodGet, "/api/meals/"+rice.ID, ""))
	if w.Code != http.StatusNotFound {
		t.Fatalf("get deleted status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestMealsRejectsBadInput(t *testing.T) {
	_, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)

	rice := createMeal(t, models.Meal{UserID: "alice", Date: "2025-05-17", FoodDescription: "Rice", Calories: 130})
	ctx := applogUser("alice")

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{name: "bad date", method: http.MethodGet, target: "/api/meals?date=17-05-2025", status: http.StatusBadRequest},
		{name: "reversed range", method: http.MethodGet, target: "/api/meals?from=2025-05-17&to=2025-05-01", status: http.StatusBadRequest},
		{name: "blank name", method: http.MethodPut, target: "/api/meals/" + rice.ID, body: `{"food_description":"  "}`, status: http.StatusBadRequest},
		{name: "unknown meal", method: http.MethodPut, target: "/api/meals/missing", body: `{"amount":10}`, status: http.StatusNotFound},
		{name: "negative calories", method: http.MethodPut, target: "/api/meals/" + rice.ID, body: `{"calories":-130}`, status: http.StatusBadRequest},
		{name: "negative carbs", method: http.MethodPut, target: "/api/meals/" + rice.ID, body: `{"carbs":-1}`, status: http.StatusBadRequest},
		{name: "negative water", method: http.MethodPut, target: "/api/meals/" + rice.ID, body: `{"amount":150,"water":-5}`, status: http.StatusBadRequest},
		{name: "nested path", method: http.MethodGet, target: "/api/meals/a/b", status: http.StatusNotFound},
		{name: "post", method: http.MethodPost, target: "/api/meals", status: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			MealsResource(w, jsonRequest(ctx, tt.method, tt.target, tt.body))
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
		})
	}

	stored, err := meals.Get(ctx, database, "alice", rice.ID)
	if err != nil {
		t.Fatalf("meals.Get() error = %v", err)
	}
	if stored.Calories != 130 || stored.FoodDescription != "Rice" {
		t.Fatalf("stored meal = %+v, want the untouched rice", stored)
	}
}

func TestMealsWithoutDatabase(t *testing.T) {
	original := database
	database = nil
	t.Cleanup(func() { database = original })

	w := httptest.NewRecorder()
	MealsResource(w, jsonRequest(applogUser("alice"), http.MethodGet, "/api/meals", ""))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestMealRange(t *testing.T) {
	withFixedNow(t, time.Date(2025, 5, 17, 23, 30, 0, 0, time.UTC))

	tests := []struct {
		date, from, to string
		wantFrom       string
		wantTo         string
	}{
		{date: "2025-05-01", from: "2025-01-01", wantFrom: "2025-05-01", wantTo: "2025-05-01"},
		{wantFrom: "2025-04-18", wantTo: "2025-05-17"},
		{to: "2025-02-10", wantFrom: "2025-01-12", wantTo: "2025-02-10"},
		{from: "2025-05-10", wantFrom: "2025-05-10", wantTo: "2025-05-17"},
	}
	for _, tt := range tests {
		from, to, err := mealRange(tt.date, tt.from, tt.to)
		if err != nil {
			t.Fatalf("mealRange(%q, %q, %q) returned error: %v", tt.date, tt.from, tt.to, err)
		}
		if from != tt.wantFrom || to != tt.wantTo {
			t.Fatalf("mealRange(%q, %q, %q) = %s..%s, want %s..%s", tt.date, tt.from, tt.to, from, to, tt.wantFrom, tt.wantTo)
		}
	}
}
