// Package web serves the numview page: one form and results container per
// method, backed by the same dispatcher as the command line.
package web

import (
	"bytes"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/numview/numview/pkg/chart"
	"github.com/numview/numview/pkg/errors"
	"github.com/numview/numview/pkg/method"
	"github.com/numview/numview/pkg/pipeline"
	"github.com/numview/numview/pkg/render/html"
	"github.com/numview/numview/pkg/result"
	"github.com/numview/numview/pkg/surface"
	"github.com/numview/numview/pkg/theme"
)

// Server is the HTTP surface.
type Server struct {
	runner  *pipeline.Runner
	surface *surface.Memory
	charts  *chart.Manager
	logger  *log.Logger
	router  chi.Router

	mu     sync.Mutex
	inputs map[method.Method]pipeline.Inputs // last submitted values, for refilling the form
}

// New creates a server. The runner must present into surf and charts.
func New(runner *pipeline.Runner, surf *surface.Memory, charts *chart.Manager, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		surface: surf,
		charts:  charts,
		logger:  logger,
		router:  chi.NewRouter(),
		inputs:  make(map[method.Method]pipeline.Inputs),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	s.router.Post("/calculate/{method}", s.handleCalculate)
	s.router.Get("/charts/{slot}.{format}", s.handleChart)
}

// logRequests logs each request at debug level with chi's request id.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	doc := html.Document{Title: "numview", Theme: theme.Default()}
	for _, m := range method.All {
		s.mu.Lock()
		values := s.inputs[m]
		s.mu.Unlock()

		p := html.NewPanel(m, values)
		p.Action = "/calculate/" + string(m)
		p.Busy = s.surface.Busy(m.SubmitControl())
		if content, ok := s.surface.Content(m.ResultsContainer()); ok {
			p = p.WithContent(content)
			if content.Chart != nil {
				p.ChartURL = "/charts/" + content.Chart.Slot + ".svg?v=" + content.Chart.ID
			}
		}
		doc.Panels = append(doc.Panels, p)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := html.Render(w, doc); err != nil {
		s.logger.Error("render page", "error", err)
	}
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	m, err := method.Parse(chi.URLParam(r, "method"))
	if err != nil {
		http.Error(w, errors.UserMessage(err), http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	in := make(pipeline.Inputs)
	for _, name := range result.InputFields(m) {
		in[name] = strings.TrimSpace(r.PostForm.Get(name))
	}
	s.mu.Lock()
	s.inputs[m] = in
	s.mu.Unlock()

	// A failed calculation is presented in the results container, not as
	// an HTTP error.
	s.runner.Dispatch(r.Context(), m, in.WithDefaults(m))

	http.Redirect(w, r, "/#"+string(m), http.StatusSeeOther)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	format, err := chart.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		http.Error(w, errors.UserMessage(err), http.StatusNotFound)
		return
	}
	slot := chi.URLParam(r, "slot")
	if _, known := method.FromChartSlot(slot); !known {
		http.NotFound(w, r)
		return
	}
	h, ok := s.charts.Get(slot)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := h.Render(format, &buf); err != nil {
		// Usually released between lookup and render.
		s.logger.Debug("chart render", "slot", h.Slot, "error", err)
		http.Error(w, "chart no longer available", http.StatusGone)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}
