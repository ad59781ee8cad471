// Package term renders reports for the terminal with lipgloss.
package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/numview/numview/pkg/theme"
	"github.com/numview/numview/pkg/view"
)

// labelWidth is the column width of summary labels.
const labelWidth = 24

// Renderer turns view models into styled terminal text.
type Renderer struct {
	theme *theme.Theme

	title  lipgloss.Style
	label  lipgloss.Style
	dim    lipgloss.Style
	border lipgloss.Style
	header lipgloss.Style
	errBox lipgloss.Style
}

// New returns a renderer using t. A nil theme means theme.Default().
func New(t *theme.Theme) *Renderer {
	if t == nil {
		t = theme.Default()
	}
	muted := lipgloss.Color(t.Text.Muted)
	return &Renderer{
		theme:  t,
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.ColorOf(view.Blue))),
		label:  lipgloss.NewStyle().Foreground(muted).Width(labelWidth),
		dim:    lipgloss.NewStyle().Foreground(muted),
		border: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text.Tick)),
		header: lipgloss.NewStyle().Foreground(muted).Bold(true).Padding(0, 1),
		errBox: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text.Error)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Text.Error)).
			Padding(0, 1),
	}
}

// Report renders the summary block followed by the iteration table.
func (r *Renderer) Report(rep view.Report) string {
	var b strings.Builder
	b.WriteString(r.Summary(rep.Summary))
	b.WriteString("\n")
	b.WriteString(r.Table(rep.Table))
	b.WriteString("\n")
	return b.String()
}

// Summary renders the title, stats, convergence badge and series lines.
func (r *Renderer) Summary(s view.SummaryView) string {
	var b strings.Builder
	b.WriteString(r.title.Render(s.Title))
	b.WriteString("\n")

	for _, st := range s.Stats {
		b.WriteString(r.label.Render(st.Label))
		b.WriteString(" ")
		b.WriteString(r.tone(st.Tone).Render(st.Value))
		b.WriteString("\n")
	}
	if s.Badge != nil {
		b.WriteString(r.tone(s.Badge.Tone).Bold(true).Render(s.Badge.Text))
		b.WriteString("\n")
	}

	for _, ss := range s.Series {
		if ss.Stats.Empty() {
			continue
		}
		line := fmt.Sprintf("%s: min %s · max %s · mean %s",
			ss.Name, compact(ss.Stats.Min), compact(ss.Stats.Max), compact(ss.Stats.Mean))
		if ss.Stats.Gaps > 0 {
			line += fmt.Sprintf(" · %d gap(s)", ss.Stats.Gaps)
		}
		b.WriteString(r.dim.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// Table renders the iteration table with its highlighted row in bold.
func (r *Renderer) Table(tv view.TableView) string {
	rows := make([][]string, len(tv.Rows))
	for i, row := range tv.Rows {
		rows[i] = row.Cells
	}
	highlight := r.tone(view.ToneSuccess).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.border).
		Headers(tv.Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return r.header
			case row < len(tv.Rows) && tv.Rows[row].Highlight:
				return highlight
			}
			return cell
		})

	var b strings.Builder
	if tv.Title != "" {
		b.WriteString(r.dim.Render(tv.Title))
		b.WriteString("\n")
	}
	b.WriteString(t.Render())
	return b.String()
}

// Error renders a single error notice.
func (r *Renderer) Error(e view.ErrorView) string {
	return r.errBox.Render("✗ "+e.Message) + "\n"
}

func (r *Renderer) tone(t view.Tone) lipgloss.Style {
	if t == view.ToneNeutral {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(r.theme.ToneColor(t)))
}

func compact(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
