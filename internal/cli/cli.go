// Package cli implements the numview command-line interface.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/numview/numview/pkg/backend"
	"github.com/numview/numview/pkg/buildinfo"
	"github.com/numview/numview/pkg/chart"
	"github.com/numview/numview/pkg/pipeline"
	"github.com/numview/numview/pkg/surface"
	"github.com/numview/numview/pkg/theme"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "numview"

	// defaultAddr is the listen address of the serve command.
	defaultAddr = "127.0.0.1:8080"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives reports. Err receives logs and the spinner.
	Out io.Writer
	Err io.Writer

	configPath string
	server     string
	timeout    time.Duration
	verbose    bool

	config Config
}

// New creates a new CLI instance writing reports to out and logs to errw.
func New(out, errw io.Writer, level log.Level) *CLI {
	return &CLI{
		Out:    out,
		Err:    errw,
		Logger: newLogger(errw, level),
		config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "numview presents numerical-method calculations",
		Long: `numview sends one calculation request per run to a numerical-methods server
(improved Euler, Runge-Kutta 4 or Newton-Raphson) and presents the returned
iterations as a summary, an iteration table and a chart.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			c.config = cfg
			installLogHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.server, "server", "", "calculation server URL (default "+backend.DefaultServer+")")
	flags.DurationVar(&c.timeout, "timeout", 0, "request timeout (default "+backend.DefaultTimeout.String()+")")
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/numview/config.toml)")

	for _, cmd := range c.calcCommands() {
		root.AddCommand(cmd)
	}
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// session is the set of components one command presents through.
type session struct {
	runner  *pipeline.Runner
	surface *surface.Memory
	charts  *chart.Manager
}

// newSession wires a runner to the configured server, an in-memory surface
// and a chart manager. Callers must Close the session.
func (c *CLI) newSession() (*session, error) {
	client, err := backend.NewClient(c.config.Server, c.config.Timeout)
	if err != nil {
		return nil, err
	}
	surf := surface.NewMemory()
	charts := chart.NewManager(chart.NewEngine(theme.Default()))
	return &session{
		runner:  pipeline.NewRunner(client, charts, surf, c.Logger),
		surface: surf,
		charts:  charts,
	}, nil
}

// Close releases every live chart.
func (s *session) Close() { s.charts.Close() }
