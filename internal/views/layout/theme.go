package layout

import (
	"sort"

	"nutrisnap/models"
)

// ThemeDefinition describes a visual theme that can be applied to the app layout.
type ThemeDefinition struct {
	ID          string
	Label       string
	Description string
}

var themeRegistry = map[string]ThemeDefinition{
	models.ThemeFresh: {
		ID:          models.ThemeFresh,
		Label:       "Fresh",
		Description: "Light mint canvas with green progress bars.",
	},
	models.ThemeNight: {
		ID:          models.ThemeNight,
		Label:       "Night",
		Description: "Dark mode with soft contrast and cyan highlights.",
	},
	models.ThemeContrast: {
		ID:          models.ThemeContrast,
		Label:       "High Contrast",
		Description: "Black on white with bold borders for readability.",
	},
}

// ThemeByID returns a definition for the provided identifier, falling back to the default theme.
func ThemeByID(id string) ThemeDefinition {
	if def, ok := themeRegistry[id]; ok {
		return def
	}
	return themeRegistry[models.DefaultTheme]
}

// ThemeOptions exposes all theme definitions sorted by label for form rendering.
func ThemeOptions() []ThemeDefinition {
	options := make([]ThemeDefinition, 0, len(themeRegistry))
	for _, def := range themeRegistry {
		options = append(options, def)
	}
	sort.Slice(options, func(i, j int) bool {
		return options[i].Label < options[j].Label
	})
	return options
}
