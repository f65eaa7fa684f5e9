package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"nutrisnap/internal/tracking"
	"nutrisnap/internal/views/components"
	"nutrisnap/internal/views/layout"
	"nutrisnap/models"
)

// DayLogData lists the meals of one day.
type DayLogData struct {
	Profile  models.Profile
	Day      tracking.Day
	Meals    []models.Meal
	Previous string
	Next     string
}

// DayLog renders the full day log page.
func DayLog(data DayLogData) templ.Component {
	sidebar := components.Sidebar(components.SidebarData{Active: "log", Links: NavLinks()})
	return layout.Layout("Day log", sidebar, DayLogPartial(data), true, layout.ThemeByID(data.Profile.Theme))
}

// DayLogPartial renders the day log body for HTMX swaps.
func DayLogPartial(data DayLogData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w,
			`<section id="day-log" data-date="`, esc(data.Day.Date), `">`,
			`<nav class="flex justify-between">`,
			`<a hx-get="/app/log?date=`, esc(data.Previous), `" hx-target="#app-main" href="/app/log?date=`, esc(data.Previous), `">Previous day</a>`,
			`<h1 class="text-xl">`, esc(formatDay(data.Day.Date)), `</h1>`,
			`<a hx-get="/app/log?date=`, esc(data.Next), `" hx-target="#app-main" href="/app/log?date=`, esc(data.Next), `">Next day</a>`,
			`</nav>`,
		); err != nil {
			return err
		}
		if err := components.MealTable(MealRows(data.Meals)).Render(ctx, w); err != nil {
			return err
		}
		return write(w,
			`<p class="totals">Total: `, esc(FormatCalories(data.Day.Calories)),
			`, protein `, esc(FormatGrams(data.Day.Protein)),
			`, carbs `, esc(FormatGrams(data.Day.Carbs)),
			`, fat `, esc(FormatGrams(data.Day.Fat)),
			`, fibre `, esc(FormatGrams(data.Day.Fibre)), `</p>`,
			`</section>`,
		)
	})
}
