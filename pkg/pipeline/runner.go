package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/numview/numview/pkg/backend"
	"github.com/numview/numview/pkg/chart"
	"github.com/numview/numview/pkg/errors"
	"github.com/numview/numview/pkg/method"
	"github.com/numview/numview/pkg/observability"
	"github.com/numview/numview/pkg/result"
	"github.com/numview/numview/pkg/surface"
	"github.com/numview/numview/pkg/visualize"
)

// Transport performs the calculation request.
type Transport interface {
	Calculate(ctx context.Context, req result.Request, requestID string) (*backend.Response, error)
}

// Runner dispatches calculations and presents their results.
//
// A Runner is safe for concurrent use. It holds no results: the only state
// it keeps is the newest call started per method, used to flag superseded
// completions in the log, and a lock per method that keeps a chart and the
// container showing it in step.
type Runner struct {
	Transport Transport
	Charts    *chart.Manager
	Surface   surface.Surface
	Logger    *log.Logger

	mu      sync.Mutex
	seq     uint64
	latest  map[method.Method]uint64
	present map[method.Method]*sync.Mutex
}

// NewRunner creates a runner. A nil logger means log.Default().
func NewRunner(t Transport, charts *chart.Manager, s surface.Surface, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Transport: t,
		Charts:    charts,
		Surface:   s,
		Logger:    logger,
		latest:    make(map[method.Method]uint64),
		present:   make(map[method.Method]*sync.Mutex),
	}
}

// Call is one in-flight dispatch between Begin and Finish.
type Call struct {
	Method    method.Method
	RequestID string
	Request   result.Request

	transport Transport
	seq       uint64
	started   time.Time
	release   func()

	once sync.Once
	resp *backend.Response
	err  error
}

// Do performs the network request. It is the only blocking step and is
// safe to run off the UI goroutine. Calling Do more than once has no
// further effect.
func (c *Call) Do(ctx context.Context) {
	c.once.Do(func() {
		c.resp, c.err = c.transport.Calculate(ctx, c.Request, c.RequestID)
	})
}

// Begin builds the request for m and marks its submit control busy. The
// busy state is cleared by Finish.
func (r *Runner) Begin(ctx context.Context, m method.Method, in Inputs) (*Call, error) {
	if !m.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidMethod, "unknown method %q", m)
	}
	req, err := result.NewRequest(m, in)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.latest[m] = seq
	r.mu.Unlock()

	c := &Call{
		Method:    m,
		RequestID: uuid.NewString(),
		Request:   req,
		transport: r.Transport,
		seq:       seq,
		started:   time.Now(),
		release:   surface.Busy(r.Surface, m.SubmitControl()),
	}

	observability.Dispatch().OnDispatchStart(ctx, string(m), c.RequestID)
	r.Logger.Debug("calculation started", "method", m, "request_id", c.RequestID, "endpoint", m.Endpoint())
	return c, nil
}

// Finish decodes the response of c, visualizes it and presents either the
// report or an error into the method's results container. The busy state
// is cleared on every path.
func (r *Runner) Finish(ctx context.Context, c *Call) Outcome {
	defer c.release()

	out := Outcome{Method: c.Method, RequestID: c.RequestID, Superseded: r.superseded(c)}
	if out.Superseded {
		observability.Dispatch().OnSuperseded(ctx, string(c.Method), c.RequestID)
		r.Logger.Debug("superseded by a newer request", "method", c.Method, "request_id", c.RequestID)
	}

	c.Do(ctx)

	// The chart slot and the container change under one lock per method.
	lock := r.presentLock(c.Method)
	lock.Lock()
	out.Err = r.show(ctx, c, &out)
	if out.Err != nil {
		r.Charts.Release(ctx, c.Method.ChartSlot())
		surface.PresentError(r.Surface, c.Method.ResultsContainer(), errors.UserMessage(out.Err))
	}
	lock.Unlock()
	out.Duration = time.Since(c.started)

	if out.Err != nil {
		r.Logger.Warn("calculation failed",
			"method", c.Method,
			"request_id", c.RequestID,
			"code", errors.GetCode(out.Err),
			"error", out.Err)
	} else {
		r.Logger.Info("calculation presented",
			"method", c.Method,
			"request_id", c.RequestID,
			"rows", out.Rows(),
			"duration", out.Duration)
	}

	observability.Dispatch().OnDispatchComplete(ctx, string(c.Method), c.RequestID, out.Rows(), out.Duration, out.Err)
	return out
}

func (r *Runner) show(ctx context.Context, c *Call, out *Outcome) error {
	if c.err != nil {
		return c.err
	}

	set, err := result.Decode(c.Request, c.resp.Body)
	if err != nil {
		return err
	}

	rep := visualize.Render(set)
	h, err := r.Charts.Present(ctx, rep.Chart)
	if err != nil {
		return err
	}

	r.Surface.Replace(c.Method.ResultsContainer(), surface.Content{Report: &rep, Chart: h})
	out.Report, out.Chart = &rep, h
	return nil
}

// Dispatch runs Begin, Do and Finish in order.
func (r *Runner) Dispatch(ctx context.Context, m method.Method, in Inputs) Outcome {
	c, err := r.Begin(ctx, m, in)
	if err != nil {
		return Outcome{Method: m, Err: err}
	}
	c.Do(ctx)
	return r.Finish(ctx, c)
}

func (r *Runner) presentLock(m method.Method) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.present == nil {
		r.present = make(map[method.Method]*sync.Mutex)
	}
	l, ok := r.present[m]
	if !ok {
		l = new(sync.Mutex)
		r.present[m] = l
	}
	return l
}

func (r *Runner) superseded(c *Call) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest[c.Method] > c.seq
}
