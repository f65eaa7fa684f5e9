package server

import (
	"context"
	"net/http"

	"nutrisnap/internal/handlers"
	applog "nutrisnap/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")

	user := func(path string, h http.HandlerFunc) {
		mux.Handle(path, handlers.RequireUser(h))
		applog.Debug(context.Background(), "route registered", "path", path, "protected", true)
	}
	user("/app", handlers.Dashboard)
	user("/app/log", handlers.DayLogPage)
	user("/api/photos/analyze", handlers.AnalyzePhoto)
	user("/api/draft", handlers.DraftResource)
	user("/api/draft/", handlers.DraftResource)
	user("/api/foods/search", handlers.SearchFoods)
	user("/api/meals", handlers.MealsResource)
	user("/api/meals/", handlers.MealsResource)
	user("/api/summary/daily", handlers.DailySummary)
	user("/api/summary/weekly", handlers.WeeklySummary)
	user("/api/profile", handlers.ProfileResource)
	user("/api/experience", handlers.Experience)
	user("/api/experience/events", handlers.ExperienceEvents)

	mux.HandleFunc("/", handlers.Home)
	applog.Debug(context.Background(), "route registered", "path", "/")
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir("web/static"))))
	applog.Debug(context.Background(), "route registered", "path", "/assets/", "static", true)
	return mux
}
