package theme

import (
	"strings"

	"nutrisnap/models"
)

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// AppTheme contains resolved styling primitives for the application shell.
type AppTheme struct {
	Key            string
	BodyClass      string
	ShellClass     string
	CardClass      string
	BorderClass    string
	AccentClass    string
	MutedTextClass string
	BarClass       string
	OverBarClass   string
}

// DefaultKey defines the fallback theme when no user preference exists.
const DefaultKey = models.DefaultTheme

var catalogue = map[string]AppTheme{
	models.ThemeFresh: {
		Key:            models.ThemeFresh,
		BodyClass:      "min-h-screen bg-emerald-50 text-slate-900",
		ShellClass:     "app-shell light",
		CardClass:      "rounded-xl bg-white shadow-sm",
		BorderClass:    "border-emerald-200",
		AccentClass:    "text-emerald-600",
		MutedTextClass: "text-slate-500",
		BarClass:       "bg-emerald-500",
		OverBarClass:   "bg-amber-500",
	},
	models.ThemeNight: {
		Key:            models.ThemeNight,
		BodyClass:      "min-h-screen bg-slate-950 text-slate-100",
		ShellClass:     "app-shell dark",
		CardClass:      "rounded-xl bg-slate-900 shadow-sm",
		BorderClass:    "border-slate-700",
		AccentClass:    "text-cyan-400",
		MutedTextClass: "text-slate-400",
		BarClass:       "bg-cyan-500",
		OverBarClass:   "bg-rose-500",
	},
	models.ThemeContrast: {
		Key:            models.ThemeContrast,
		BodyClass:      "min-h-screen bg-white text-black",
		ShellClass:     "app-shell contrast",
		CardClass:      "rounded-none bg-white border-2 border-black",
		BorderClass:    "border-black",
		AccentClass:    "text-blue-800",
		MutedTextClass: "text-gray-800",
		BarClass:       "bg-blue-800",
		OverBarClass:   "bg-red-700",
	},
}

var options = []Option{
	{Value: models.ThemeFresh, Label: "Fresh (Light)"},
	{Value: models.ThemeNight, Label: "Night (Dark)"},
	{Value: models.ThemeContrast, Label: "High Contrast"},
}

// Resolve returns the registered theme configuration for the provided key.
func Resolve(key string) AppTheme {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if value, ok := catalogue[normalized]; ok {
		return value
	}
	return catalogue[DefaultKey]
}

// Options exposes the available theme selections for rendering in a form control.
func Options() []Option {
	return options
}
