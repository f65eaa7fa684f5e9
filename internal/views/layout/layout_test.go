package layout

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"nutrisnap/models"
)

func TestThemeByIDReturnsDefinition(t *testing.T) {
	def := ThemeByID(models.ThemeNight)
	if def.ID != models.ThemeNight {
		t.Fatalf("expected to retrieve definition for %s", models.ThemeNight)
	}
}

func TestThemeByIDFallsBackToDefault(t *testing.T) {
	def := ThemeByID("unknown")
	if def.ID != models.DefaultTheme {
		t.Fatalf("expected fallback to default theme, got %s", def.ID)
	}
}

func TestThemeOptionsAreSortedByLabel(t *testing.T) {
	options := ThemeOptions()
	if len(options) < 2 {
		t.Fatal("expected multiple theme options")
	}
	for i := 1; i < len(options); i++ {
		if options[i-1].Label > options[i].Label {
			t.Fatalf("expected options to be sorted alphabetically by label: %v", options)
		}
	}
}

func TestLayoutRendersProvidedContent(t *testing.T) {
	sidebar := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<aside>sidebar</aside>"))
		return err
	})
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<section>content</section>"))
		return err
	})

	var buf bytes.Buffer
	err := Layout("Today <3", sidebar, content, true, ThemeByID(models.ThemeNight)).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Today &lt;3</title>") {
		t.Fatalf("expected escaped document title to be rendered: %s", out)
	}
	if !strings.Contains(out, "sidebar") || !strings.Contains(out, "content") {
		t.Fatalf("expected sidebar and content sections in output: %s", out)
	}
	if !strings.Contains(out, `data-theme="night"`) {
		t.Fatalf("expected theme key on body: %s", out)
	}
}

func TestLayoutOmitsClosedSidebar(t *testing.T) {
	sidebar := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<aside>sidebar</aside>"))
		return err
	})

	var buf bytes.Buffer
	if err := Layout("Log", sidebar, nil, false, ThemeByID("")).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	if strings.Contains(buf.String(), "sidebar") {
		t.Fatalf("expected closed sidebar to be omitted: %s", buf.String())
	}
}

func TestBodyWrapperClassReflectsSidebarState(t *testing.T) {
	if bodyWrapperClass(true) == bodyWrapperClass(false) {
		t.Fatal("expected different body wrapper class depending on sidebar state")
	}
	if mainClass(true) == mainClass(false) {
		t.Fatal("expected different main class depending on sidebar state")
	}
}
