package capability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/calverra/workdeck/internal/logging"
)

// Request asks the dispatcher to run one capability.
type Request struct {
	// Slug must match a registered descriptor.
	Slug string `json:"slug"`

	// Input is the untyped key/value input supplied by the calling
	// context, typically decoded from a planner tool call.
	Input map[string]any `json:"input"`
}

// Result is the uniform envelope returned by every dispatch. Exactly one of
// Data and Error is populated.
type Result struct {
	Slug      string `json:"slug"`
	Succeeded bool   `json:"succeeded"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Observer receives a callback per dispatched request. Used to wire
// instrumentation (metrics, audit trails) without coupling the core to a
// particular backend. errMsg is empty on success.
type Observer interface {
	ObserveDispatch(ctx context.Context, slug, account string, succeeded bool, duration time.Duration, errMsg string)
}

// Dispatcher validates and executes invocation requests against a registry.
// It is stateless beyond its configuration and safe for concurrent use.
type Dispatcher struct {
	registry  *Registry
	mode      Mode
	logger    *slog.Logger
	observers []Observer
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithMode sets the validation mode. The default is Lenient.
func WithMode(mode Mode) DispatcherOption {
	return func(d *Dispatcher) { d.mode = mode }
}

// WithLogger sets the dispatch logger.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithObserver adds an instrumentation observer. Observers are notified in
// registration order after every dispatch.
func WithObserver(o Observer) DispatcherOption {
	return func(d *Dispatcher) { d.observers = append(d.observers, o) }
}

// NewDispatcher creates a dispatcher bound to the given registry.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		mode:     Lenient,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry the dispatcher resolves against.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch resolves, validates and executes a single request. Every failure
// mode — unknown slug, validation error, executor error, executor panic —
// is converted into a failed Result; nothing escapes the dispatch boundary,
// so one failing capability can never abort a batch.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request, ec Context) Result {
	start := time.Now()
	res := d.dispatch(ctx, req, ec)

	for _, o := range d.observers {
		o.ObserveDispatch(ctx, req.Slug, ec.Account, res.Succeeded, time.Since(start), res.Error)
	}
	if res.Succeeded {
		d.logger.LogAttrs(ctx, slog.LevelDebug, "capability dispatched",
			logging.Capability(req.Slug),
			logging.Account(ec.Account),
			slog.Duration(logging.KeyDuration, time.Since(start)),
			logging.Status(logging.StatusSuccess))
	} else {
		d.logger.LogAttrs(ctx, slog.LevelWarn, "capability failed",
			logging.Capability(req.Slug),
			logging.Account(ec.Account),
			logging.Status(logging.StatusError),
			slog.String(logging.KeyError, res.Error))
	}
	return res
}

func (d *Dispatcher) dispatch(ctx context.Context, req Request, ec Context) (res Result) {
	res = Result{Slug: req.Slug}

	desc, ok := d.registry.Get(req.Slug)
	if !ok {
		res.Error = (&UnknownSlugError{Slug: req.Slug}).Error()
		return res
	}

	input, err := desc.Schema.Validate(req.Input, d.mode)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	// Executor panics are contained here: a panicking capability is a
	// failed invocation, not a process fault.
	defer func() {
		if r := recover(); r != nil {
			res.Succeeded = false
			res.Data = nil
			res.Error = fmt.Sprintf("capability panicked: %v", r)
		}
	}()

	data, err := desc.Execute(ctx, input, ec)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Succeeded = true
	res.Data = data
	return res
}

// DispatchAll executes a batch of independent requests concurrently and
// returns results in the same order as the input regardless of completion
// order. Requests must not assume ordering or shared state relative to
// their siblings.
func (d *Dispatcher) DispatchAll(ctx context.Context, reqs []Request, ec Context) []Result {
	results := make([]Result, len(reqs))

	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			results[i] = d.Dispatch(ctx, req, ec)
		}(i, req)
	}
	wg.Wait()

	return results
}
