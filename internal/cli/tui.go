package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/numview/numview/pkg/method"
	"github.com/numview/numview/pkg/pipeline"
	"github.com/numview/numview/pkg/render/term"
	"github.com/numview/numview/pkg/result"
	"github.com/numview/numview/pkg/theme"
)

// tuiCommand creates the interactive form for the three methods.
func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive calculation form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newSession()
			if err != nil {
				return err
			}
			defer s.Close()

			// Log lines would tear the alternate screen.
			c.Logger.SetOutput(nopWriter{})

			model := NewFormModel(cmd.Context(), s)
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// =============================================================================
// FormModel - Interactive calculation form
// =============================================================================

// callDoneMsg carries a call whose network request has finished.
type callDoneMsg struct {
	call *pipeline.Call
}

// chartSavedMsg reports the outcome of saving the current chart.
type chartSavedMsg struct {
	path string
	err  error
}

// FormModel is the bubbletea model of the interactive form. The network
// request of a submission runs in a tea.Cmd; everything else, including
// presenting the result, happens in Update.
type FormModel struct {
	ctx     context.Context
	session *session
	render  *term.Renderer

	tab     int // index into method.All
	inputs  map[method.Method][]textinput.Model
	focus   map[method.Method]int
	spinner spinner.Model
	status  string
}

// NewFormModel creates the form bound to s.
func NewFormModel(ctx context.Context, s *session) FormModel {
	m := FormModel{
		ctx:     ctx,
		session: s,
		render:  term.New(theme.Default()),
		inputs:  make(map[method.Method][]textinput.Model),
		focus:   make(map[method.Method]int),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleIconSpinner)),
	}
	for _, meth := range method.All {
		names := result.InputFields(meth)
		fields := make([]textinput.Model, len(names))
		for i, name := range names {
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = placeholder(meth, name)
			ti.Width = 24
			fields[i] = ti
		}
		fields[0].Focus()
		m.inputs[meth] = fields
	}
	return m
}

func placeholder(m method.Method, name string) string {
	switch name {
	case result.InputFunction:
		if m == method.Newton {
			return "x**2 - 2"
		}
		return "x + y"
	case result.InputDerivative:
		return "empty: numerical"
	case result.InputTolerance:
		return pipeline.DefaultTolerance
	case result.InputMaxIterations:
		return pipeline.DefaultMaxIterations
	}
	return ""
}

func (m FormModel) current() method.Method { return method.All[m.tab] }

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+n", "ctrl+right":
			return m.switchTab(1), nil
		case "ctrl+p", "ctrl+left":
			return m.switchTab(-1), nil
		case "tab", "down":
			return m.moveFocus(1), nil
		case "shift+tab", "up":
			return m.moveFocus(-1), nil
		case "enter":
			return m.submit()
		case "ctrl+s":
			return m, m.saveChart()
		}

	case callDoneMsg:
		out := m.session.runner.Finish(m.ctx, msg.call)
		m.status = ""
		if out.Superseded {
			m.status = "a newer request was started; showing the latest response"
		}
		return m, nil

	case chartSavedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = "chart saved to " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		if !m.anyBusy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	fields := m.inputs[m.current()]
	i := m.focus[m.current()]
	var cmd tea.Cmd
	fields[i], cmd = fields[i].Update(msg)
	return m, cmd
}

func (m FormModel) switchTab(delta int) FormModel {
	n := len(method.All)
	m.tab = (m.tab + delta + n) % n
	m.status = ""
	return m
}

func (m FormModel) moveFocus(delta int) FormModel {
	meth := m.current()
	fields := m.inputs[meth]
	fields[m.focus[meth]].Blur()
	next := (m.focus[meth] + delta + len(fields)) % len(fields)
	fields[next].Focus()
	m.focus[meth] = next
	return m
}

// submit starts a dispatch for the current method. Submitting again while
// a request is in flight starts another one; the last response to arrive
// is what stays on screen.
func (m FormModel) submit() (tea.Model, tea.Cmd) {
	meth := m.current()
	names := result.InputFields(meth)
	in := make(pipeline.Inputs, len(names))
	for i, name := range names {
		in[name] = m.inputs[meth][i].Value()
	}

	call, err := m.session.runner.Begin(m.ctx, meth, in.WithDefaults(meth))
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	ctx := m.ctx
	do := func() tea.Msg {
		call.Do(ctx)
		return callDoneMsg{call: call}
	}
	return m, tea.Batch(do, m.spinner.Tick)
}

func (m FormModel) saveChart() tea.Cmd {
	meth := m.current()
	content, ok := m.session.surface.Content(meth.ResultsContainer())
	if !ok || content.Chart == nil {
		return nil
	}
	path := meth.ChartSlot() + ".svg"
	return func() tea.Msg {
		return chartSavedMsg{path: path, err: writeChart(path, content.Chart)}
	}
}

func (m FormModel) anyBusy() bool {
	for _, meth := range method.All {
		if m.session.surface.Busy(meth.SubmitControl()) {
			return true
		}
	}
	return false
}

func (m FormModel) View() string {
	var b strings.Builder
	meth := m.current()

	for i, tab := range method.All {
		if i == m.tab {
			b.WriteString(styleTabFocus.Render(tab.Title()))
		} else {
			b.WriteString(styleTab.Render(tab.Title()))
		}
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(meth.Subtitle()))
	b.WriteString("\n\n")

	for i, name := range result.InputFields(meth) {
		b.WriteString(styleKey.Render(result.InputLabel(meth, name)))
		b.WriteString(" ")
		b.WriteString(m.inputs[meth][i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.session.surface.Busy(meth.SubmitControl()) {
		b.WriteString(m.spinner.View() + " " + StyleDim.Render("Calculating..."))
		b.WriteString("\n\n")
	}

	if content, ok := m.session.surface.Content(meth.ResultsContainer()); ok {
		if content.IsError() {
			b.WriteString(m.render.Error(*content.Error))
		} else {
			b.WriteString(m.render.Report(*content.Report))
			if content.Chart != nil {
				spec := content.Chart.Spec
				b.WriteString(StyleDim.Render(fmt.Sprintf("%s · %d series · %d points · ctrl+s saves %s.svg",
					spec.Title, len(spec.Series), spec.Points(), spec.SlotID)))
				b.WriteString("\n")
			}
		}
	}

	if m.status != "" {
		b.WriteString("\n" + StyleDim.Render(m.status) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("tab/↑↓ field  ⏎ calculate  ctrl+n/ctrl+p method  esc quit"))
	return b.String()
}
