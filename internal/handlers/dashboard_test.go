package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nutrisnap/internal/experience"
	"nutrisnap/models"
)

func TestDashboardRendersToday(t *testing.T) {
	_, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)
	withTestServices(t, Services{Tracker: experience.NewTracker(experience.NewMemoryStore())})
	withFixedNow(t, time.Date(2025, 5, 17, 12, 0, 0, 0, time.UTC))

	seedSummaryData(t)

	req := httptest.NewRequest(http.MethodGet, "/app", nil).WithContext(userContext(t, sm, "alice"))
	w := httptest.NewRecorder()
	Dashboard(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{"<html", `id="dashboard"`, "Oats", "Salad", "Greek Yogurt"} {
		if !strings.Contains(body, want) {
			t.Fatalf("dashboard is missing %q", want)
		}
	}

	req = httptest.NewRequest(http.MethodGet, "/app", nil).WithContext(userContext(t, sm, "alice"))
	req.Header.Set("HX-Request", "true")
	w = httptest.NewRecorder()
	Dashboard(w, req)
	if strings.Contains(w.Body.String(), "<html") {
		t.Fatal("expected htmx request to receive the partial")
	}
	if !strings.Contains(w.Body.String(), `id="dashboard"`) {
		t.Fatalf("partial is missing the dashboard section: %s", w.Body.String())
	}
}

func TestDayLogPage(t *testing.T) {
	_, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)

	createMeal(t, models.Meal{UserID: "alice", Date: "2025-05-15", FoodDescription: "Pasta", Calories: 600})

	req := httptest.NewRequest(http.MethodGet, "/app/log?date=2025-05-15", nil).WithContext(applogUser("alice"))
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	DayLogPage(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{"Pasta", "date=2025-05-14", "date=2025-05-16"} {
		if !strings.Contains(body, want) {
			t.Fatalf("day log is missing %q: %s", want, body)
		}
	}

	w = httptest.NewRecorder()
	DayLogPage(w, httptest.NewRequest(http.MethodGet, "/app/log?date=soon", nil).WithContext(applogUser("alice")))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad date status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHomeRedirectsToDashboard(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	Home(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/app" {
		t.Fatalf("expected redirect to /app, got %q", loc)
	}

	w = httptest.NewRecorder()
	Home(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
