// Package html renders reports as a self-contained HTML page.
//
// The same [Document] serves two purposes: the live page of the web
// surface, where each panel carries a form and references its chart by
// URL, and static exports, where the chart SVG is inlined.
package html

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/numview/numview/pkg/chart"
	"github.com/numview/numview/pkg/method"
	"github.com/numview/numview/pkg/result"
	"github.com/numview/numview/pkg/surface"
	"github.com/numview/numview/pkg/theme"
	"github.com/numview/numview/pkg/view"
)

//go:embed templates/*.tmpl
var files embed.FS

// Document is one rendered page.
type Document struct {
	Title  string
	Theme  *theme.Theme // nil means theme.Default()
	Panels []Panel
}

// Panel is one method section: an optional input form and its results
// container.
type Panel struct {
	Method   method.Method
	Title    string
	Subtitle string

	// Action is the form target. Panels without an action render no form.
	Action string
	Fields []Field
	Busy   bool

	Report *view.Report
	Error  *view.ErrorView

	// Exactly one of ChartURL and ChartSVG is used when Report is set.
	ChartURL string
	ChartSVG template.HTML
}

// Field is one form input.
type Field struct {
	Name  string
	Label string
	Value string
}

// NewPanel returns the panel of m with its form fields filled from values.
func NewPanel(m method.Method, values map[string]string) Panel {
	names := result.InputFields(m)
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Field{Name: n, Label: result.InputLabel(m, n), Value: values[n]}
	}
	return Panel{
		Method:   m,
		Title:    m.Title(),
		Subtitle: m.Subtitle(),
		Fields:   fields,
	}
}

// WithContent sets the results of p from the content of its container.
func (p Panel) WithContent(c surface.Content) Panel {
	p.Report, p.Error = c.Report, c.Error
	return p
}

// InlineChart renders h as SVG markup for embedding.
func InlineChart(h *chart.Handle) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.Render(chart.FormatSVG, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Render writes doc to w.
func Render(w io.Writer, doc Document) error {
	tmpl, err := templates()
	if err != nil {
		return err
	}
	if doc.Theme == nil {
		doc.Theme = theme.Default()
	}
	if doc.Title == "" {
		doc.Title = "numview"
	}
	if err := tmpl.ExecuteTemplate(w, "page", doc); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

var (
	parseOnce sync.Once
	parsed    *template.Template
	parseErr  error
)

func templates() (*template.Template, error) {
	parseOnce.Do(func() {
		parsed, parseErr = template.New("").Funcs(funcs).ParseFS(files, "templates/*.tmpl")
	})
	return parsed, parseErr
}

var funcs = template.FuncMap{
	"tone": func(t *theme.Theme, tone view.Tone) template.CSS {
		return template.CSS(t.ToneColor(tone))
	},
	"color": func(t *theme.Theme, c view.Color) template.CSS {
		return template.CSS(t.ColorOf(c))
	},
	"swatch": func(t *theme.Theme, c view.Color) template.CSS {
		return template.CSS(t.Swatch(c).Background())
	},
	"css": func(s string) template.CSS { return template.CSS(s) },
	"themed": func(t *theme.Theme, p Panel) themedPanel {
		return themedPanel{Theme: t, Panel: p}
	},
}

type themedPanel struct {
	Theme *theme.Theme
	Panel Panel
}
