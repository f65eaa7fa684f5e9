package handlers

import (
	"net/http"

	templpkg "github.com/a-h/templ"

	"nutrisnap/internal/experience"
	applog "nutrisnap/internal/log"
	"nutrisnap/internal/meals"
	"nutrisnap/internal/tracking"
	"nutrisnap/internal/views/pages"
	"nutrisnap/models"
)

// Dashboard renders today's totals, goals, suggestions and the week.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	today, _ := parseDay("")
	date := today.Format(models.DateLayout)

	summary, profile, err := buildDailySummary(ctx, userID, date)
	if err != nil {
		applog.Error(ctx, "failed to build dashboard", "error", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}
	logged, err := meals.ForDay(ctx, database, userID, date)
	if err != nil {
		applog.Error(ctx, "failed to load meals", "error", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}
	week, err := buildWeeklySummary(ctx, userID, today)
	if err != nil {
		applog.Error(ctx, "failed to build weekly summary", "error", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	data := pages.DashboardData{
		Profile:     profile,
		Today:       summary.Day,
		Meals:       logged,
		Progress:    summary.Progress,
		Suggestions: summary.Suggestions,
		Week:        week.Days,
		Experience:  loadExperience(r, userID),
	}
	if draft, err := loadDraft(ctx); err == nil {
		data.DraftItems = draft.Len()
	}

	var component templpkg.Component
	if isHTMX(r) {
		component = pages.DashboardPartial(data)
	} else {
		component = pages.Dashboard(data)
	}
	render(w, r, component)
}

// DayLogPage renders the meals of the day given by ?date=, today by default.
func DayLogPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	day, err := parseDay(r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	date := day.Format(models.DateLayout)

	ctx := r.Context()
	profile, err := meals.LoadProfile(ctx, database, userID)
	if err != nil {
		applog.Error(ctx, "failed to load profile", "error", err)
		http.Error(w, "failed to load day log", http.StatusInternalServerError)
		return
	}
	logged, err := meals.ForDay(ctx, database, userID, date)
	if err != nil {
		applog.Error(ctx, "failed to load meals", "error", err, "date", date)
		http.Error(w, "failed to load day log", http.StatusInternalServerError)
		return
	}

	data := pages.DayLogData{
		Profile:  profile,
		Day:      tracking.Daily(date, logged),
		Meals:    logged,
		Previous: day.AddDate(0, 0, -1).Format(models.DateLayout),
		Next:     day.AddDate(0, 0, 1).Format(models.DateLayout),
	}

	var component templpkg.Component
	if isHTMX(r) {
		component = pages.DayLogPartial(data)
	} else {
		component = pages.DayLog(data)
	}
	render(w, r, component)
}

func loadExperience(r *http.Request, userID string) experience.Summary {
	if activity == nil {
		return experience.Summary{}
	}
	summary, err := activity.Summary(r.Context(), userID)
	if err != nil {
		applog.Error(r.Context(), "failed to load activity", "error", err)
		return experience.Summary{}
	}
	return summary
}

func render(w http.ResponseWriter, r *http.Request, component templpkg.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
