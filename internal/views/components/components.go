// Package components holds the small building blocks shared by the pages.
package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"nutrisnap/internal/tracking"
	"nutrisnap/internal/views/theme"
)

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

// StatCard renders a headline figure with an optional delta and caption.
func StatCard(label, value, delta, caption string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w,
			`<div class="stat-card rounded-xl p-4">`,
			`<p class="stat-label text-sm">`, esc(label), `</p>`,
			`<p class="stat-value text-2xl font-semibold">`, esc(value), `</p>`,
		); err != nil {
			return err
		}
		if delta != "" {
			if err := write(w, `<p class="stat-delta text-xs">`, esc(delta), `</p>`); err != nil {
				return err
			}
		}
		if caption != "" {
			if err := write(w, `<p class="stat-caption text-xs">`, esc(caption), `</p>`); err != nil {
				return err
			}
		}
		return write(w, `</div>`)
	})
}

// ProgressBar renders how far a nutrient is towards its daily target.
func ProgressBar(bar tracking.ProgressBar, t theme.AppTheme) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fill := t.BarClass
		status := fmt.Sprintf("%.0f / %.0f %s", bar.Current, bar.Target, bar.Unit)
		if bar.Over {
			fill = t.OverBarClass
			status = fmt.Sprintf("%s (+%g %s over)", status, bar.Excess, bar.Unit)
		}
		return write(w,
			`<div class="progress" data-nutrient="`, esc(strings.ToLower(bar.Label)), `" data-over="`, fmt.Sprint(bar.Over), `">`,
			`<div class="flex justify-between text-sm"><span>`, esc(bar.Label), `</span>`,
			`<span class="`, esc(t.MutedTextClass), `">`, esc(status), `</span></div>`,
			`<div class="h-2 w-full rounded bg-slate-200" role="progressbar" aria-valuemin="0" aria-valuemax="100" aria-valuenow="`, fmt.Sprintf("%.0f", bar.Percent), `">`,
			`<div class="h-2 rounded `, esc(fill), `" style="width: `, fmt.Sprintf("%.1f", bar.Percent), `%"></div>`,
			`</div></div>`,
		)
	})
}

// MealRow is one line of the meal table.
type MealRow struct {
	ID          string
	Description string
	Amount      string
	Calories    string
	Protein     string
	Carbs       string
	Fat         string
	Fibre       string
}

// MealTable lists logged meals.
func MealTable(rows []MealRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(rows) == 0 {
			return write(w, `<p class="empty-state">No meals logged for this day yet.</p>`)
		}
		if err := write(w,
			`<table class="meal-table w-full text-sm"><thead><tr>`,
			`<th>Meal</th><th>Amount</th><th>Calories</th><th>Protein</th><th>Carbs</th><th>Fat</th><th>Fibre</th>`,
			`</tr></thead><tbody>`,
		); err != nil {
			return err
		}
		for _, row := range rows {
			if err := write(w,
				`<tr data-meal-id="`, esc(row.ID), `">`,
				`<td>`, esc(row.Description), `</td>`,
				`<td>`, esc(row.Amount), `</td>`,
				`<td>`, esc(row.Calories), `</td>`,
				`<td>`, esc(row.Protein), `</td>`,
				`<td>`, esc(row.Carbs), `</td>`,
				`<td>`, esc(row.Fat), `</td>`,
				`<td>`, esc(row.Fibre), `</td>`,
				`</tr>`,
			); err != nil {
				return err
			}
		}
		return write(w, `</tbody></table>`)
	})
}

// SuggestionList renders recommended catalogue meals.
func SuggestionList(suggestions []tracking.Suggestion) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(suggestions) == 0 {
			return write(w, `<p class="empty-state">You have reached your calorie goal for today.</p>`)
		}
		if err := write(w, `<ul class="suggestions space-y-2">`); err != nil {
			return err
		}
		for _, s := range suggestions {
			if err := write(w,
				`<li class="suggestion"><strong>`, esc(s.Name), `</strong> `,
				`<span>`, fmt.Sprintf("%.0f kcal, %gg protein, %gg carbs, %gg fat", s.Calories, s.Protein, s.Carbs, s.Fat), `</span>`,
			); err != nil {
				return err
			}
			if len(s.Tags) > 0 {
				if err := write(w, ` <span class="tags">`, esc(strings.Join(s.Tags, ", ")), `</span>`); err != nil {
					return err
				}
			}
			if err := write(w, `</li>`); err != nil {
				return err
			}
		}
		return write(w, `</ul>`)
	})
}

// SidebarLink is one navigation entry.
type SidebarLink struct {
	Label   string
	Path    string
	Section string
}

// SidebarData describes the navigation and the highlighted section.
type SidebarData struct {
	Active string
	Links  []SidebarLink
}

// Sidebar renders the navigation column.
func Sidebar(data SidebarData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<aside class="sidebar w-56 p-4"><p class="brand text-lg font-bold">NutriSnap</p><nav><ul>`); err != nil {
			return err
		}
		for _, link := range data.Links {
			if err := write(w,
				`<li><a href="`, esc(link.Path), `" data-nav-section="`, esc(link.Section), `" data-state="`, linkState(link.Section, data.Active), `">`,
				esc(link.Label), `</a></li>`,
			); err != nil {
				return err
			}
		}
		return write(w, `</ul></nav></aside>`)
	})
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}
