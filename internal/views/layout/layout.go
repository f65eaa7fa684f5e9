package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"nutrisnap/internal/views/theme"
)

// Layout wraps content in the document shell. sidebar may be nil.
func Layout(title string, sidebar, content templ.Component, sidebarOpen bool, def ThemeDefinition) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		resolved := theme.Resolve(def.ID)
		if _, err := io.WriteString(w, `<!doctype html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(title)+`</title>`+
			`<link rel="stylesheet" href="/assets/app.css">`+
			`<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`+
			`</head><body class="`+templ.EscapeString(resolved.BodyClass)+`" data-theme="`+templ.EscapeString(resolved.Key)+`">`+
			`<div class="`+templ.EscapeString(resolved.ShellClass+" "+bodyWrapperClass(sidebarOpen))+`">`); err != nil {
			return err
		}
		if sidebar != nil && sidebarOpen {
			if err := sidebar.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<main id="app-main" class="`+mainClass(sidebarOpen)+`">`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></div></body></html>`)
		return err
	})
}

func bodyWrapperClass(sidebarOpen bool) string {
	if sidebarOpen {
		return "flex min-h-screen"
	}
	return "min-h-screen"
}

func mainClass(sidebarOpen bool) string {
	if sidebarOpen {
		return "flex-1 p-6 lg:p-10"
	}
	return "mx-auto max-w-5xl p-6"
}
