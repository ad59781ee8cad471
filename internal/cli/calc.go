package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/numview/numview/pkg/chart"
	"github.com/numview/numview/pkg/method"
	"github.com/numview/numview/pkg/pipeline"
	"github.com/numview/numview/pkg/render/html"
	"github.com/numview/numview/pkg/render/term"
	"github.com/numview/numview/pkg/result"
	"github.com/numview/numview/pkg/surface"
	"github.com/numview/numview/pkg/theme"
)

// ErrReported marks a failure that was already presented to the user.
var ErrReported = errors.New("calculation failed")

// inputFlag binds an input field to its command-line flag.
type inputFlag struct {
	flag  string
	usage string
}

var inputFlags = map[string]inputFlag{
	result.InputFunction:      {"func", "function to evaluate"},
	result.InputDerivative:    {"deriv", "derivative f'(x); a central difference is used when empty"},
	result.InputX0:            {"x0", "initial x"},
	result.InputY0:            {"y0", "initial y"},
	result.InputXF:            {"xf", "final x"},
	result.InputH:             {"h", "step size"},
	result.InputTolerance:     {"tol", "stopping tolerance (default " + pipeline.DefaultTolerance + ")"},
	result.InputMaxIterations: {"max-iter", "iteration cap (default " + pipeline.DefaultMaxIterations + ")"},
}

// calcOpts holds the flags of one calculation command.
type calcOpts struct {
	values    map[string]*string // input field -> raw flag value
	chartPath string             // optional .svg or .png output
	htmlPath  string             // optional standalone page
}

func (o calcOpts) inputs() pipeline.Inputs {
	in := make(pipeline.Inputs, len(o.values))
	for name, v := range o.values {
		in[name] = *v
	}
	return in
}

// calcCommands creates one command per method.
func (c *CLI) calcCommands() []*cobra.Command {
	return []*cobra.Command{
		c.calcCommand(method.Euler, `numview euler --func "x+y" --x0 0 --y0 1 --xf 1 --h 0.5`, "heun"),
		c.calcCommand(method.Runge, `numview runge --func "x+y" --x0 0 --y0 1 --xf 1 --h 0.1 --chart rk4.svg`, "runge-kutta", "rk4"),
		c.calcCommand(method.Newton, `numview newton --func "x**2 - 2" --x0 1 --tol 1e-6`, "newton-raphson"),
	}
}

func (c *CLI) calcCommand(m method.Method, example string, aliases ...string) *cobra.Command {
	opts := calcOpts{values: make(map[string]*string)}

	cmd := &cobra.Command{
		Use:     string(m),
		Aliases: aliases,
		Short:   m.Title() + ": " + m.Subtitle(),
		Example: "  " + example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCalc(cmd.Context(), m, opts)
		},
	}

	for _, name := range result.InputFields(m) {
		f := inputFlags[name]
		opts.values[name] = cmd.Flags().String(f.flag, "", f.usage)
	}
	cmd.Flags().StringVar(&opts.chartPath, "chart", "", "write the chart to a .svg or .png file")
	cmd.Flags().StringVar(&opts.htmlPath, "html", "", "write a standalone HTML report")
	_ = cmd.RegisterFlagCompletionFunc("chart", completeFormats)

	return cmd
}

// runCalc dispatches one calculation and prints whatever landed in the
// method's results container.
func (c *CLI) runCalc(ctx context.Context, m method.Method, opts calcOpts) error {
	s, err := c.newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	call, err := s.runner.Begin(ctx, m, opts.inputs().WithDefaults(m))
	if err != nil {
		return err
	}
	spin := newSpinner(ctx, c.Err, "Calculating "+m.Title()+"...")
	spin.Start()
	call.Do(ctx)
	spin.Stop()
	out := s.runner.Finish(ctx, call)
	if spin.Cancelled() {
		printError(c.Err, "%s cancelled", m.Title())
		return ctx.Err()
	}

	content, _ := s.surface.Content(m.ResultsContainer())
	r := term.New(theme.Default())
	if content.IsError() {
		fmt.Fprint(c.Out, r.Error(*content.Error))
		return fmt.Errorf("%w: %w", ErrReported, out.Err)
	}
	fmt.Fprint(c.Out, r.Report(*content.Report))

	var written []string
	if opts.chartPath != "" {
		if err := writeChart(opts.chartPath, content.Chart); err != nil {
			return err
		}
		written = append(written, opts.chartPath)
	}
	if opts.htmlPath != "" {
		if err := writeHTML(opts.htmlPath, m, content); err != nil {
			return err
		}
		written = append(written, opts.htmlPath)
	}
	if len(written) > 0 {
		printSuccess(c.Out, "Saved %d file(s)", len(written))
		for _, path := range written {
			printFile(c.Out, path)
		}
	}
	return nil
}

// writeChart renders h to path in the format named by its extension.
func writeChart(path string, h *chart.Handle) error {
	format, err := chart.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := h.Render(format, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeHTML writes a standalone page with the chart inlined.
func writeHTML(path string, m method.Method, content surface.Content) error {
	svg, err := html.InlineChart(content.Chart)
	if err != nil {
		return err
	}
	panel := html.NewPanel(m, nil).WithContent(content)
	panel.ChartSVG = svg

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := html.Render(f, html.Document{Title: "numview: " + m.Title(), Panels: []html.Panel{panel}}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
