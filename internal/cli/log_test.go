package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/numview/numview/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		debug   bool
		wantOut bool
	}{
		{"info at info level", log.InfoLevel, false, true},
		{"debug at info level", log.InfoLevel, true, false},
		{"debug at debug level", log.DebugLevel, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			if tt.debug {
				logger.Debug("calculation started", "method", "euler")
			} else {
				logger.Info("calculation presented", "method", "euler")
			}
			if got := buf.Len() > 0; got != tt.wantOut {
				t.Errorf("wrote output = %v, want %v", got, tt.wantOut)
			}
		})
	}
}

func TestVerboseFlagEnablesDebug(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	defer observability.Reset()

	var out, errw bytes.Buffer
	c := New(&out, &errw, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"-v", "completion", "bash"})
	root.SetOut(&out)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
	if !strings.Contains(errw.String(), "config loaded") {
		t.Errorf("debug log missing config line: %q", errw.String())
	}
}

func TestLogHooks(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	installLogHooks(newLogger(&buf, log.DebugLevel))

	ctx := context.Background()
	observability.HTTP().OnResponse(ctx, "POST", "127.0.0.1:5000", "/api/euler", 200, 12*time.Millisecond)
	observability.Chart().OnChartPresent(ctx, "eulerChart", "h1", 2, 3)
	observability.Dispatch().OnDispatchComplete(ctx, "euler", "req-1", 3, time.Millisecond, nil)
	observability.Dispatch().OnSuperseded(ctx, "newton", "req-0")

	out := buf.String()
	for _, want := range []string{
		"path=/api/euler", "status=200", "slot=eulerChart", "series=2",
		"dispatch done", "rows=3", "stale completion", "request_id=req-0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should fall back to the default logger")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}
