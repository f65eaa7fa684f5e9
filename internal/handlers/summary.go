package handlers

import (
	"context"
	"net/http"
	"time"

	applog "nutrisnap/internal/log"
	"nutrisnap/internal/meals"
	"nutrisnap/internal/tracking"
	"nutrisnap/models"
)

type dailySummaryResponse struct {
	Day         tracking.Day           `json:"day"`
	Goals       tracking.Goals         `json:"goals"`
	Progress    []tracking.ProgressBar `json:"progress"`
	Suggestions []tracking.Suggestion  `json:"suggestions"`
}

type weeklySummaryResponse struct {
	Start      string               `json:"start"`
	End        string               `json:"end"`
	Days       []tracking.Day       `json:"days"`
	Average    *tracking.Totals     `json:"average,omitempty"`
	Comparison []tracking.GoalDelta `json:"comparison"`
}

// DailySummary reports the totals of one day against the user's goals.
func DailySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireDatabase(w, r) {
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	day, err := parseDay(r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	summary, _, err := buildDailySummary(r.Context(), userID, day.Format(models.DateLayout))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func buildDailySummary(ctx context.Context, userID, date string) (dailySummaryResponse, models.Profile, error) {
	profile, err := meals.LoadProfile(ctx, database, userID)
	if err != nil {
		return dailySummaryResponse{}, models.Profile{}, err
	}
	logged, err := meals.ForDay(ctx, database, userID, date)
	if err != nil {
		return dailySummaryResponse{}, models.Profile{}, err
	}

	day := tracking.Daily(date, logged)
	goals := tracking.GoalsFromProfile(profile)

	catalogue, err := meals.Suggestions(ctx, database)
	if err != nil {
		applog.Error(ctx, "failed to load meal suggestions", "error", err)
		catalogue = nil
	}
	suggestions := tracking.Recommend(catalogue, day.Totals, goals)
	if suggestions == nil {
		suggestions = []tracking.Suggestion{}
	}

	return dailySummaryResponse{
		Day:         day,
		Goals:       goals,
		Progress:    tracking.DailyProgress(day.Totals, goals),
		Suggestions: suggestions,
	}, profile, nil
}

// WeeklySummary reports the seven days ending at date, their average and
// how it compares to the goals.
func WeeklySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireDatabase(w, r) {
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	end, err := parseDay(r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp, err := buildWeeklySummary(r.Context(), userID, end)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func buildWeeklySummary(ctx context.Context, userID string, end time.Time) (weeklySummaryResponse, error) {
	start := tracking.WeekStart(end)
	logged, err := meals.Between(ctx, database, userID, start.Format(models.DateLayout), end.Format(models.DateLayout))
	if err != nil {
		return weeklySummaryResponse{}, err
	}
	profile, err := meals.LoadProfile(ctx, database, userID)
	if err != nil {
		return weeklySummaryResponse{}, err
	}

	days := tracking.Weekly(end, logged)
	resp := weeklySummaryResponse{
		Start:      start.Format(models.DateLayout),
		End:        end.Format(models.DateLayout),
		Days:       days,
		Comparison: []tracking.GoalDelta{},
	}
	if resp.Days == nil {
		resp.Days = []tracking.Day{}
	}
	if avg, ok := tracking.Averages(days); ok {
		resp.Average = &avg
		resp.Comparison = tracking.CompareToGoals(avg, tracking.GoalsFromProfile(profile))
	}
	return resp, nil
}
