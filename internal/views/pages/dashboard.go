package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"nutrisnap/internal/experience"
	"nutrisnap/internal/tracking"
	"nutrisnap/internal/views/components"
	"nutrisnap/internal/views/layout"
	"nutrisnap/internal/views/theme"
	"nutrisnap/models"
)

// DashboardData is everything the home screen shows for one day.
type DashboardData struct {
	Profile     models.Profile
	Today       tracking.Day
	Meals       []models.Meal
	Progress    []tracking.ProgressBar
	Suggestions []tracking.Suggestion
	Week        []tracking.Day
	Experience  experience.Summary
	DraftItems  int
}

// NavLinks is the main navigation.
func NavLinks() []components.SidebarLink {
	return []components.SidebarLink{
		{Label: "Today", Path: "/app", Section: "today"},
		{Label: "Day log", Path: "/app/log", Section: "log"},
	}
}

// Dashboard renders the full home page.
func Dashboard(data DashboardData) templ.Component {
	sidebar := components.Sidebar(components.SidebarData{Active: "today", Links: NavLinks()})
	def := layout.ThemeByID(data.Profile.Theme)
	return layout.Layout("NutriSnap", sidebar, DashboardPartial(data), true, def)
}

// DashboardPartial renders the dashboard body for HTMX swaps.
func DashboardPartial(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := theme.Resolve(data.Profile.Theme)

		if err := write(w, `<section id="dashboard" data-level="`, esc(string(data.Experience.Level)), `">`); err != nil {
			return err
		}
		if data.Experience.ShowOnboarding {
			if err := write(w, `<div class="onboarding `, esc(t.CardClass), ` p-4">Snap a photo of your meal to get started. We will identify the foods and estimate portions for you.</div>`); err != nil {
				return err
			}
		}

		if err := write(w, `<h1 class="text-2xl font-semibold">`, esc(greeting(data.Profile)), `</h1>`,
			`<p class="`, esc(t.MutedTextClass), `">`, esc(formatDay(data.Today.Date)), `</p>`,
			`<div class="grid grid-cols-2 gap-4 lg:grid-cols-4">`); err != nil {
			return err
		}
		cards := []templ.Component{
			components.StatCard("Calories", FormatCalories(data.Today.Calories), remaining(data.Today.Calories, data.Profile.DailyCalories, "kcal"), ""),
			components.StatCard("Protein", FormatGrams(data.Today.Protein), remaining(data.Today.Protein, data.Profile.DailyProtein, "g"), ""),
			components.StatCard("Meals", fmt.Sprint(data.Today.Meals), "", ""),
			components.StatCard("Draft", fmt.Sprint(data.DraftItems), "", "items waiting to be logged"),
		}
		for _, card := range cards {
			if err := card.Render(ctx, w); err != nil {
				return err
			}
		}
		if err := write(w, `</div>`); err != nil {
			return err
		}

		if len(data.Progress) > 0 {
			if err := write(w, `<h2 class="mt-6 text-lg">Daily goals</h2><div class="space-y-3">`); err != nil {
				return err
			}
			for _, bar := range data.Progress {
				if err := components.ProgressBar(bar, t).Render(ctx, w); err != nil {
					return err
				}
			}
			if err := write(w, `</div>`); err != nil {
				return err
			}
		}

		if err := write(w, `<h2 class="mt-6 text-lg">Today's meals</h2>`); err != nil {
			return err
		}
		if err := components.MealTable(MealRows(data.Meals)).Render(ctx, w); err != nil {
			return err
		}

		if data.Profile.DailyCalories > 0 {
			if err := write(w, `<h2 class="mt-6 text-lg">Suggested meals</h2>`); err != nil {
				return err
			}
			if err := components.SuggestionList(data.Suggestions).Render(ctx, w); err != nil {
				return err
			}
		}

		if len(data.Week) > 0 {
			if err := write(w, `<h2 class="mt-6 text-lg">Last 7 days</h2><ul class="week">`); err != nil {
				return err
			}
			for _, day := range data.Week {
				if err := write(w, `<li data-date="`, esc(day.Date), `">`, esc(formatDay(day.Date)), `: `, esc(FormatCalories(day.Calories)), `</li>`); err != nil {
					return err
				}
			}
			if err := write(w, `</ul>`); err != nil {
				return err
			}
		}

		return write(w, `</section>`)
	})
}

func greeting(p models.Profile) string {
	name := p.FullName
	if name == "" {
		name = p.Username
	}
	if name == "" {
		return "Welcome back"
	}
	return "Welcome back, " + name
}

func remaining(current, goal float64, unit string) string {
	if goal <= 0 {
		return ""
	}
	left := goal - current
	if left < 0 {
		return fmt.Sprintf("%s %s over goal", trimFloat(-left), unit)
	}
	return fmt.Sprintf("%s %s left", trimFloat(left), unit)
}

func write(w io.Writer, parts ...string) error {
	for _, part := range parts {
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}
	}
	return nil
}

func esc(value string) string {
	return templ.EscapeString(value)
}
