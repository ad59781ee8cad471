// Package chart owns the live charts bound to chart slots.
//
// A [Manager] keeps at most one [Handle] per slot. Presenting a spec into a
// slot that already holds a chart releases the old handle (and its engine
// resources) before the new one is built, so repeated presentation never
// leaks a chart:
//
//	m := chart.NewManager(chart.NewEngine(theme.Default()))
//	defer m.Close()
//
//	h, err := m.Present(ctx, report.Chart)
//	if err != nil {
//	    // RENDER_ERROR: the slot is now empty
//	}
//	h.Render(chart.FormatSVG, w)
package chart

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/numview/numview/pkg/errors"
	"github.com/numview/numview/pkg/observability"
	"github.com/numview/numview/pkg/view"
)

// Engine builds drawable charts from specs.
type Engine interface {
	Build(spec view.ChartSpec) (Drawing, error)
}

// Drawing is one engine-side chart object.
type Drawing interface {
	Render(format Format, w io.Writer) error
	// Release frees the engine resources. The drawing is unusable afterwards.
	Release()
}

// Handle is the live chart of one slot.
type Handle struct {
	Slot string
	ID   string
	Spec view.ChartSpec

	mu       sync.Mutex
	drawing  Drawing
	released bool
}

// Render writes the chart in the given format.
func (h *Handle) Render(format Format, w io.Writer) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return errors.New(errors.ErrCodeRender, "chart %s in slot %s was released", h.ID, h.Slot)
	}
	if err := h.drawing.Render(format, w); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "render chart %s", h.Slot)
	}
	return nil
}

// Released reports whether the handle has been released.
func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

func (h *Handle) release() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return false
	}
	h.released = true
	h.drawing.Release()
	h.drawing = nil
	return true
}

// Manager is the slot -> handle registry.
type Manager struct {
	engine Engine

	mu   sync.Mutex
	live map[string]*Handle
}

// NewManager returns a Manager that builds charts with engine.
func NewManager(engine Engine) *Manager {
	return &Manager{engine: engine, live: make(map[string]*Handle)}
}

// Present binds a new chart built from spec to spec.SlotID. Any handle
// already bound to the slot is released first. If the engine fails the slot
// is left empty and the error carries [errors.ErrCodeRender].
func (m *Manager) Present(ctx context.Context, spec view.ChartSpec) (*Handle, error) {
	if spec.SlotID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart spec has no slot")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.live[spec.SlotID]; ok {
		delete(m.live, spec.SlotID)
		m.releaseHandle(ctx, old)
	}

	d, err := m.engine.Build(spec)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "build chart %s", spec.SlotID)
	}

	h := &Handle{Slot: spec.SlotID, ID: uuid.NewString(), Spec: spec, drawing: d}
	m.live[spec.SlotID] = h
	observability.Chart().OnChartPresent(ctx, h.Slot, h.ID, len(spec.Series), spec.Points())
	return h, nil
}

// Get returns the live handle of slot.
func (m *Manager) Get(slot string) (*Handle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.live[slot]
	return h, ok
}

// Release releases the handle of slot, if any. It reports whether a handle
// was released.
func (m *Manager) Release(ctx context.Context, slot string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.live[slot]
	if !ok {
		return false
	}
	delete(m.live, slot)
	m.releaseHandle(ctx, h)
	return true
}

// Live returns the slots that currently hold a chart, sorted.
func (m *Manager) Live() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	slots := make([]string, 0, len(m.live))
	for s := range m.live {
		slots = append(slots, s)
	}
	sort.Strings(slots)
	return slots
}

// Close releases every live handle.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for slot, h := range m.live {
		delete(m.live, slot)
		m.releaseHandle(context.Background(), h)
	}
}

func (m *Manager) releaseHandle(ctx context.Context, h *Handle) {
	if h.release() {
		observability.Chart().OnChartRelease(ctx, h.Slot, h.ID)
	}
}
