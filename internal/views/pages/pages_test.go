package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"nutrisnap/internal/experience"
	"nutrisnap/internal/nutrition"
	"nutrisnap/internal/tracking"
	"nutrisnap/models"
)

func TestFormatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"calories", FormatCalories(142.6), "143 kcal"},
		{"whole grams", FormatGrams(100), "100g"},
		{"decimal grams", FormatGrams(37.5), "37.5g"},
		{"unknown grams", FormatOptionalGrams(nil), "-"},
		{"known grams", FormatOptionalGrams(nutrition.Float(6)), "6g"},
		{"day", formatDay("2025-05-17"), "Sat 17 May 2025"},
		{"bad day", formatDay("yesterday"), "yesterday"},
		{"blank", DefaultDash("  "), "-"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Fatalf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestRemaining(t *testing.T) {
	t.Parallel()

	if got := remaining(1500, 2000, "kcal"); got != "500 kcal left" {
		t.Fatalf("remaining = %q", got)
	}
	if got := remaining(2100.5, 2000, "kcal"); got != "100.5 kcal over goal" {
		t.Fatalf("remaining = %q", got)
	}
	if got := remaining(10, 0, "g"); got != "" {
		t.Fatalf("remaining without goal = %q, want empty", got)
	}
}

func dashboardData() DashboardData {
	profile := models.Profile{FullName: "Sam", DailyCalories: 2000, Theme: models.ThemeNight}
	today := tracking.Day{Date: "2025-05-17", Totals: tracking.Totals{Calories: 550, Protein: 37.1, Meals: 2}}
	return DashboardData{
		Profile:     profile,
		Today:       today,
		Meals:       []models.Meal{{ID: "m1", FoodDescription: "Mixed Meal: Apple + Banana", Calories: 250, Amount: 270}},
		Progress:    tracking.DailyProgress(today.Totals, tracking.GoalsFromProfile(profile)),
		Suggestions: []tracking.Suggestion{{Name: "Salmon with Rice", Calories: 400}},
		Week:        []tracking.Day{today},
		Experience:  experience.Summarize(experience.NewActivity(time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC)), time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC)),
		DraftItems:  1,
	}
}

func TestDashboardRendersSections(t *testing.T) {
	var buf bytes.Buffer
	if err := Dashboard(dashboardData()).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render dashboard: %v", err)
	}
	out := buf.String()
	for _, token := range []string{
		"<title>NutriSnap</title>",
		`data-theme="night"`,
		"Welcome back, Sam",
		"1450 kcal left",
		"Mixed Meal: Apple + Banana",
		"Salmon with Rice",
		`data-nutrient="calories"`,
		"onboarding",
		`data-state="active"`,
	} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected dashboard to contain %q: %s", token, out)
		}
	}
}

func TestDashboardPartialSkipsShell(t *testing.T) {
	var buf bytes.Buffer
	if err := DashboardPartial(dashboardData()).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render dashboard partial: %v", err)
	}
	if strings.Contains(buf.String(), "<html") {
		t.Fatalf("expected partial without document shell: %s", buf.String())
	}
}

func TestDayLogRendersNavigation(t *testing.T) {
	data := DayLogData{
		Day:      tracking.Day{Date: "2025-05-17", Totals: tracking.Totals{Calories: 250}},
		Previous: "2025-05-16",
		Next:     "2025-05-18",
	}
	var buf bytes.Buffer
	if err := DayLog(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render day log: %v", err)
	}
	out := buf.String()
	for _, token := range []string{"/app/log?date=2025-05-16", "/app/log?date=2025-05-18", "Sat 17 May 2025", "No meals logged", "Total: 250 kcal"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected day log to contain %q: %s", token, out)
		}
	}
}
