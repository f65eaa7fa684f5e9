package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	applog "nutrisnap/internal/log"
	"nutrisnap/internal/meals"
	"nutrisnap/internal/tracking"
	"nutrisnap/models"
)

type profileResponse struct {
	models.Profile
	BMR  *float64 `json:"bmr,omitempty"`
	TDEE *float64 `json:"tdee,omitempty"`
}

type profileRequest struct {
	Username      string  `json:"username"`
	FullName      string  `json:"full_name"`
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
	ActivityLevel string  `json:"activity_level"`
	DailyCalories float64 `json:"daily_calories"`
	DailyProtein  float64 `json:"daily_protein"`
	DailyCarbs    float64 `json:"daily_carbs"`
	DailyFat      float64 `json:"daily_fat"`
	DailyFiber    float64 `json:"daily_fiber"`
	DailyWater    float64 `json:"daily_water"`
	WeightGoal    float64 `json:"weight_goal"`
	GoalType      string  `json:"goal_type"`
	Theme         string  `json:"theme"`
}

func (req profileRequest) validate() error {
	numbers := map[string]float64{
		"weight":         req.Weight,
		"height":         req.Height,
		"daily_calories": req.DailyCalories,
		"daily_protein":  req.DailyProtein,
		"daily_carbs":    req.DailyCarbs,
		"daily_fat":      req.DailyFat,
		"daily_fiber":    req.DailyFiber,
		"daily_water":    req.DailyWater,
		"weight_goal":    req.WeightGoal,
	}
	for name, value := range numbers {
		if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%w: %s must not be negative", errInvalidRequest, name)
		}
	}
	if req.Age < 0 || req.Age > 150 {
		return fmt.Errorf("%w: age must be between 0 and 150", errInvalidRequest)
	}
	switch strings.ToLower(strings.TrimSpace(req.Sex)) {
	case "", "male", "female", "other":
	default:
		return fmt.Errorf("%w: sex must be male, female or other", errInvalidRequest)
	}
	if !tracking.ValidActivityLevel(strings.TrimSpace(req.ActivityLevel)) {
		return fmt.Errorf("%w: unknown activity level %q", errInvalidRequest, req.ActivityLevel)
	}
	if goal := strings.TrimSpace(req.GoalType); goal != "" && !models.ValidGoalType(strings.ToLower(goal)) {
		return fmt.Errorf("%w: goal type must be lose, maintain or gain", errInvalidRequest)
	}
	if key := strings.TrimSpace(req.Theme); key != "" && !models.ValidTheme(strings.ToLower(key)) {
		return fmt.Errorf("%w: invalid theme selection", errInvalidRequest)
	}
	return nil
}

// ProfileResource reads and replaces the profile of the current user.
func ProfileResource(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r) {
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	switch r.Method {
	case http.MethodGet:
		profile, err := meals.LoadProfile(r.Context(), database, userID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newProfileResponse(profile))
	case http.MethodPut:
		updateProfile(w, r, userID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func updateProfile(w http.ResponseWriter, r *http.Request, userID string) {
	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, r, err)
		return
	}

	ctx := r.Context()
	profile, err := meals.LoadProfile(ctx, database, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	profile.Username = strings.TrimSpace(req.Username)
	profile.FullName = strings.TrimSpace(req.FullName)
	profile.WeightKG = req.Weight
	profile.HeightCM = req.Height
	profile.Age = req.Age
	profile.Sex = strings.ToLower(strings.TrimSpace(req.Sex))
	profile.ActivityLevel = strings.TrimSpace(req.ActivityLevel)
	profile.DailyCalories = req.DailyCalories
	profile.DailyProtein = req.DailyProtein
	profile.DailyCarbs = req.DailyCarbs
	profile.DailyFat = req.DailyFat
	profile.DailyFiber = req.DailyFiber
	profile.DailyWater = req.DailyWater
	profile.WeightGoal = req.WeightGoal
	profile.GoalType = models.NormalizeGoalType(req.GoalType)
	profile.Theme = models.NormalizeTheme(strings.ToLower(strings.TrimSpace(req.Theme)))

	if err := meals.SaveProfile(ctx, database, &profile); err != nil {
		respondError(w, r, err)
		return
	}
	applog.Debug(ctx, "profile updated", "theme", profile.Theme, "goal", profile.GoalType)
	writeJSON(w, http.StatusOK, newProfileResponse(profile))
}

func newProfileResponse(profile models.Profile) profileResponse {
	resp := profileResponse{Profile: profile}
	if bmr, ok := tracking.BMR(profile); ok {
		resp.BMR = &bmr
	}
	if tdee, ok := tracking.TDEE(profile); ok {
		resp.TDEE = &tdee
	}
	return resp
}
