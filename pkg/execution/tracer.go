package execution

import (
	"fmt"
	"sync"

	"github.com/ZabehCruz/pybryt/pkg/footprint"
)

// CallerContext identifies the execution scope instrumentation attaches to.
// It is passed in explicitly by whatever harness activates tracing, never
// inferred from the call stack.
type CallerContext struct {
	// Name of the scope, e.g. a function or notebook cell identifier.
	Name string
	// File the scope lives in, if known.
	File string
}

// Tracer is a single-owner registry for active instrumentation. At most one
// collector can be active at a time; re-entrancy is detected by checking
// whether a handle is already checked out, not via ambient process state.
type Tracer struct {
	mu     sync.Mutex
	active *TraceHandle
}

// TraceHandle is the proof of an activation. Whoever holds it must release
// it before control leaves the instrumented scope.
type TraceHandle struct {
	tracer    *Tracer
	collector *Collector
	ctx       CallerContext
	released  bool
}

// NewTracer creates an inactive tracer.
func NewTracer() *Tracer {
	return &Tracer{}
}

// Activate checks out the tracer for the given collector. It fails if a
// handle is already checked out; callers that may be nested must consult
// Active first and degrade to a no-op.
func (t *Tracer) Activate(ctx CallerContext, collector *Collector) (*TraceHandle, error) {
	if collector == nil {
		return nil, fmt.Errorf("activating tracing: collector is nil")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active != nil {
		return nil, fmt.Errorf("activating tracing for %q: collector %s already active",
			ctx.Name, t.active.collector.Token())
	}

	handle := &TraceHandle{tracer: t, collector: collector, ctx: ctx}
	t.active = handle
	return handle, nil
}

// Active reports whether a collector is currently checked out.
func (t *Tracer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active != nil
}

// Observe forwards a snapshot to the active collector. It is a no-op when
// tracing is inactive, so instrumented code never has to guard its probes.
func (t *Tracer) Observe(value footprint.Snapshot) {
	t.mu.Lock()
	handle := t.active
	t.mu.Unlock()

	if handle != nil {
		handle.collector.Observe(value)
	}
}

// Step advances the active collector's step clock. No-op when inactive.
func (t *Tracer) Step() {
	t.mu.Lock()
	handle := t.active
	t.mu.Unlock()

	if handle != nil {
		handle.collector.Step()
	}
}

// Collector returns the collector this handle was activated with.
func (h *TraceHandle) Collector() *Collector {
	return h.collector
}

// Context returns the caller context this handle was activated for.
func (h *TraceHandle) Context() CallerContext {
	return h.ctx
}

// Release deactivates tracing. It is idempotent: releasing an already
// released handle does nothing, so it is safe both deferred and called
// explicitly on the happy path.
func (h *TraceHandle) Release() {
	h.tracer.mu.Lock()
	defer h.tracer.mu.Unlock()

	if h.released {
		return
	}
	h.released = true
	if h.tracer.active == h {
		h.tracer.active = nil
	}
}
