package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nutrisnap/models"
)

func TestProfileDefaultsAndUpdate(t *testing.T) {
	_, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)

	ctx := applogUser("alice")

	w := httptest.NewRecorder()
	ProfileResource(w, jsonRequest(ctx, http.MethodGet, "/api/profile", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d (%s)", w.Code, w.Body.String())
	}
	var resp profileResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if resp.GoalType != models.GoalMaintain || resp.Theme != models.DefaultTheme || resp.BMR != nil {
		t.Fatalf("default profile = %+v", resp)
	}

	w = httptest.NewRecorder()
	ProfileResource(w, jsonRequest(ctx, http.MethodPut, "/api/profile",
		`{"full_name":"Alice","weight":70,"height":175,"age":30,"sex":"Male","activity_level":"moderate","daily_calories":2000,"goal_type":"LOSE","theme":"Night"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("put status = %d (%s)", w.Code, w.Body.String())
	}
	resp = profileResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if resp.BMR == nil || *resp.BMR != 1649 {
		t.Fatalf("bmr = %v, want 1649", resp.BMR)
	}
	if resp.TDEE == nil || *resp.TDEE != 2556 {
		t.Fatalf("tdee = %v, want 2556", resp.TDEE)
	}
	if resp.GoalType != models.GoalLose || resp.Theme != models.ThemeNight || resp.Sex != "male" {
		t.Fatalf("profile = %+v", resp.Profile)
	}

	w = httptest.NewRecorder()
	ProfileResource(w, jsonRequest(ctx, http.MethodGet, "/api/profile", ""))
	resp = profileResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if resp.FullName != "Alice" || resp.DailyCalories != 2000 {
		t.Fatalf("stored profile = %+v", resp.Profile)
	}
}

func TestProfileValidation(t *testing.T) {
	_, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)

	tests := []struct {
		name string
		body string
	}{
		{name: "negative weight", body: `{"weight":-1}`},
		{name: "age out of range", body: `{"age":151}`},
		{name: "unknown sex", body: `{"sex":"robot"}`},
		{name: "unknown activity", body: `{"activity_level":"couch"}`},
		{name: "unknown goal", body: `{"goal_type":"bulk"}`},
		{name: "unknown theme", body: `{"theme":"neon"}`},
		{name: "malformed", body: `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ProfileResource(w, jsonRequest(applogUser("alice"), http.MethodPut, "/api/profile", tt.body))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d (%s)", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}
