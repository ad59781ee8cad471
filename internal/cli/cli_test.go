package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/numview/numview/pkg/method"
	"github.com/numview/numview/pkg/observability"
)

const eulerBody = `{"results":[
	{"i":0,"x":0,"fxy":1,"k1":"-","k2":"-","yNext":"-","error":"-"},
	{"i":1,"x":0.5,"fxy":1,"k1":1,"k2":2,"yNext":1.75,"error":"4.285714e-01"},
	{"i":2,"x":1,"fxy":2.25,"k1":2.25,"k2":3.875,"yNext":3.28125,"error":"4.666667e-01"}
]}`

func calcServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	var out, errw bytes.Buffer
	c := New(&out, &errw, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEulerCommand(t *testing.T) {
	srv := calcServer(t, http.StatusOK, eulerBody)
	dir := t.TempDir()
	chartPath := filepath.Join(dir, "euler.svg")
	htmlPath := filepath.Join(dir, "euler.html")

	out, err := execute(t, "euler", "--server", srv.URL,
		"--func", "x+y", "--x0", "0", "--y0", "1", "--xf", "1", "--h", "0.5",
		"--chart", chartPath, "--html", htmlPath)
	if err != nil {
		t.Fatalf("euler error = %v", err)
	}

	for _, want := range []string{"Results: Improved Euler (Heun)", "y(1) ≈ 3.28125", "Saved 2 file(s)", chartPath, htmlPath} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	svg, err := os.ReadFile(chartPath)
	if err != nil || !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("chart file = %.40q, %v", svg, err)
	}
	page, err := os.ReadFile(htmlPath)
	if err != nil || !bytes.Contains(page, []byte(`id="eulerResults"`)) {
		t.Errorf("html file missing results container, %v", err)
	}
}

func TestCommandAliases(t *testing.T) {
	srv := calcServer(t, http.StatusOK, eulerBody)
	if _, err := execute(t, "heun", "--server", srv.URL, "--func", "x+y"); err != nil {
		t.Errorf("heun alias error = %v", err)
	}
}

func TestCalcServerError(t *testing.T) {
	srv := calcServer(t, http.StatusBadRequest, `{"error":"invalid expression"}`)

	out, err := execute(t, "runge", "--server", srv.URL, "--func", "x+")
	if !errors.Is(err, ErrReported) {
		t.Fatalf("error = %v, want ErrReported", err)
	}
	if !strings.Contains(out, "✗ invalid expression") {
		t.Errorf("output = %q, want the server message", out)
	}
}

func TestCalcCancelled(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)
	srv := calcServer(t, http.StatusOK, eulerBody)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errw bytes.Buffer
	root := New(&out, &errw, LogInfo).RootCommand()
	root.SetArgs([]string{"euler", "--server", srv.URL, "--func", "x+y"})
	root.SetOut(&out)
	err := root.ExecuteContext(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if !strings.Contains(errw.String(), "Improved Euler (Heun) cancelled") {
		t.Errorf("stderr = %q, want cancellation notice", errw.String())
	}
}

func TestInvalidServerFlag(t *testing.T) {
	_, err := execute(t, "newton", "--server", "ftp://calc", "--func", "x")
	if err == nil || errors.Is(err, ErrReported) {
		t.Errorf("error = %v, want a configuration error", err)
	}
}

func TestConfigFlag(t *testing.T) {
	srv := calcServer(t, http.StatusOK, eulerBody)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("server = \""+srv.URL+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "euler", "--config", path, "--func", "x+y"); err != nil {
		t.Errorf("euler with config error = %v", err)
	}
	if _, err := execute(t, "euler", "--config", filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing explicit config should fail")
	}
}

// =============================================================================
// TUI
// =============================================================================

func newTestSession(t *testing.T, server string) *session {
	t.Helper()
	c := New(io.Discard, io.Discard, LogInfo)
	c.config = Config{Server: server}
	s, err := c.newSession()
	if err != nil {
		t.Fatalf("newSession() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

// runCmd executes cmd and returns the first callDoneMsg it produces.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if done, ok := c().(callDoneMsg); ok {
				return done
			}
		}
		t.Fatal("batch produced no callDoneMsg")
	}
	return msg
}

func TestFormSubmit(t *testing.T) {
	srv := calcServer(t, http.StatusOK, eulerBody)
	s := newTestSession(t, srv.URL)
	m := NewFormModel(context.Background(), s)
	m.inputs[method.Euler][0].SetValue("x+y")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(FormModel)
	if !s.surface.Busy("eulerBtn") {
		t.Error("submit control should be busy while the request runs")
	}

	next, _ = m.Update(runCmd(t, cmd))
	m = next.(FormModel)
	if s.surface.Busy("eulerBtn") {
		t.Error("busy state should be cleared")
	}
	view := m.View()
	if !strings.Contains(view, "y(1) ≈ 3.28125") || !strings.Contains(view, "ctrl+s saves eulerChart.svg") {
		t.Errorf("View() missing report:\n%s", view)
	}
}

func TestFormSubmitError(t *testing.T) {
	srv := calcServer(t, http.StatusBadRequest, `{"error":"division by zero"}`)
	s := newTestSession(t, srv.URL)
	m := NewFormModel(context.Background(), s).switchTab(2)
	if m.current() != method.Newton {
		t.Fatalf("tab = %s, want newton", m.current())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next, _ := m.Update(runCmd(t, cmd))
	if view := next.(FormModel).View(); !strings.Contains(view, "✗ division by zero") {
		t.Errorf("View() missing error:\n%s", view)
	}
}

func TestFormNavigation(t *testing.T) {
	s := newTestSession(t, "http://127.0.0.1:1")
	m := NewFormModel(context.Background(), s)

	m = m.moveFocus(-1)
	if got := m.focus[method.Euler]; got != 4 {
		t.Errorf("focus = %d, want wrap to 4", got)
	}
	if !m.inputs[method.Euler][4].Focused() || m.inputs[method.Euler][0].Focused() {
		t.Error("focus should move to the last field")
	}
	if m.switchTab(-1).current() != method.Newton {
		t.Error("switchTab(-1) should wrap to the last method")
	}
}
