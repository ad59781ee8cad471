// Package surface is the presentation target of the dispatcher: one results
// container and one busy-tracking submit control per method.
//
// Containers are addressed by the identifiers of pkg/method
// ("eulerResults", "eulerBtn", ...). A container always holds exactly one
// kind of content: a successful report with its chart, or a single error
// notice. Replacing a container discards whatever it held before.
package surface

import (
	"sync"

	"github.com/numview/numview/pkg/chart"
	"github.com/numview/numview/pkg/errors"
	"github.com/numview/numview/pkg/view"
)

// Surface receives presentation updates.
type Surface interface {
	// Replace swaps the content of container.
	Replace(container string, c Content)
	// SetBusy toggles the loading state of a submit control.
	SetBusy(control string, busy bool)
}

// Content is what a container shows. Exactly one of Report and Error is set.
type Content struct {
	Report *view.Report
	Chart  *chart.Handle // live chart of Report; nil for errors
	Error  *view.ErrorView
}

// IsError reports whether c is an error notice.
func (c Content) IsError() bool { return c.Error != nil }

// PresentError replaces container with a single error notice. An empty
// message becomes [errors.FallbackMessage].
func PresentError(s Surface, container, message string) {
	if message == "" {
		message = errors.FallbackMessage
	}
	s.Replace(container, Content{Error: &view.ErrorView{Message: message}})
}

// Busy marks control busy and returns the function that clears it.
//
//	defer surface.Busy(s, m.SubmitControl())()
func Busy(s Surface, control string) (release func()) {
	s.SetBusy(control, true)
	var once sync.Once
	return func() { once.Do(func() { s.SetBusy(control, false) }) }
}

// =============================================================================
// Memory
// =============================================================================

// Memory is an in-process Surface. It is safe for concurrent use and backs
// the web surface as well as tests.
type Memory struct {
	mu         sync.Mutex
	containers map[string]Content
	busy       map[string]int
}

// NewMemory returns an empty Memory surface.
func NewMemory() *Memory {
	return &Memory{
		containers: make(map[string]Content),
		busy:       make(map[string]int),
	}
}

// Replace implements Surface.
func (m *Memory) Replace(container string, c Content) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.containers[container] = c
}

// SetBusy implements Surface. Overlapping calls on the same control nest:
// the control stays busy until every acquisition is released.
func (m *Memory) SetBusy(control string, busy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if busy {
		m.busy[control]++
		return
	}
	if m.busy[control] > 0 {
		m.busy[control]--
	}
	if m.busy[control] == 0 {
		delete(m.busy, control)
	}
}

// Content returns the current content of container.
func (m *Memory) Content(container string) (Content, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.containers[container]
	return c, ok
}

// Busy reports whether control is busy.
func (m *Memory) Busy(control string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy[control] > 0
}
