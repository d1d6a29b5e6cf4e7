package capability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T, descriptors ...Descriptor) *Dispatcher {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.RegisterAll(descriptors...))
	return NewDispatcher(reg, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func addNumbersDescriptor() Descriptor {
	return Descriptor{
		Slug:        "ADD_NUMBERS",
		Name:        "Add Numbers",
		Description: "Adds two numbers",
		Schema:      NewSchema(Number("a", Required()), Number("b", Required())),
		Execute: func(_ context.Context, input map[string]any, _ Context) (any, error) {
			return map[string]any{"sum": input["a"].(float64) + input["b"].(float64)}, nil
		},
	}
}

func TestDispatchSuccess(t *testing.T) {
	d := newTestDispatcher(t, addNumbersDescriptor())

	res := d.Dispatch(context.Background(), Request{
		Slug:  "ADD_NUMBERS",
		Input: map[string]any{"a": 2.0, "b": 3.0},
	}, Context{})

	assert.True(t, res.Succeeded)
	assert.Empty(t, res.Error)
	data, ok := res.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5.0, data["sum"])
}

func TestDispatchMissingFieldSkipsExecutor(t *testing.T) {
	executed := false
	desc := addNumbersDescriptor()
	inner := desc.Execute
	desc.Execute = func(ctx context.Context, input map[string]any, ec Context) (any, error) {
		executed = true
		return inner(ctx, input, ec)
	}
	d := newTestDispatcher(t, desc)

	res := d.Dispatch(context.Background(), Request{
		Slug:  "ADD_NUMBERS",
		Input: map[string]any{"a": 2.0},
	}, Context{})

	assert.False(t, res.Succeeded)
	assert.Equal(t, "missing field: b", res.Error)
	assert.Nil(t, res.Data)
	assert.False(t, executed, "executor must not run on validation failure")
}

func TestDispatchUnknownSlug(t *testing.T) {
	d := newTestDispatcher(t, addNumbersDescriptor())

	res := d.Dispatch(context.Background(), Request{Slug: "NOT_REGISTERED"}, Context{})

	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Error, "NOT_REGISTERED")
}

func TestDispatchExecutorErrorIsContained(t *testing.T) {
	d := newTestDispatcher(t, Descriptor{
		Slug: "ALWAYS_FAILS", Name: "Always Fails",
		Schema: NewSchema(),
		Execute: func(_ context.Context, _ map[string]any, _ Context) (any, error) {
			return nil, errors.New("backend unavailable")
		},
	})

	res := d.Dispatch(context.Background(), Request{Slug: "ALWAYS_FAILS"}, Context{})

	assert.False(t, res.Succeeded)
	assert.Equal(t, "backend unavailable", res.Error)
	assert.Nil(t, res.Data)
}

func TestDispatchExecutorPanicIsContained(t *testing.T) {
	d := newTestDispatcher(t, Descriptor{
		Slug: "PANICS", Name: "Panics",
		Schema: NewSchema(),
		Execute: func(_ context.Context, _ map[string]any, _ Context) (any, error) {
			panic("boom")
		},
	})

	res := d.Dispatch(context.Background(), Request{Slug: "PANICS"}, Context{})

	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Error, "boom")
	assert.Nil(t, res.Data)
}

func TestDispatchAppliesDefaultsBeforeExecution(t *testing.T) {
	var seen map[string]any
	d := newTestDispatcher(t, Descriptor{
		Slug: "LIST_THINGS", Name: "List Things",
		Schema: NewSchema(String("query", Required()), Integer("maxResults", Default(10))),
		Execute: func(_ context.Context, input map[string]any, _ Context) (any, error) {
			seen = input
			return map[string]any{}, nil
		},
	})

	res := d.Dispatch(context.Background(), Request{
		Slug:  "LIST_THINGS",
		Input: map[string]any{"query": "x"},
	}, Context{})

	require.True(t, res.Succeeded)
	assert.Equal(t, int64(10), seen["maxResults"])
}

func TestDispatchAllPreservesOrderWithMixedOutcomes(t *testing.T) {
	var descriptors []Descriptor
	for i := 0; i < 5; i++ {
		i := i
		slug := fmt.Sprintf("CAP_%d", i)
		descriptors = append(descriptors, Descriptor{
			Slug: slug, Name: slug,
			Schema: NewSchema(),
			Execute: func(_ context.Context, _ map[string]any, _ Context) (any, error) {
				// Finish out of order to exercise result reassembly.
				time.Sleep(time.Duration(5-i) * time.Millisecond)
				if i == 2 {
					panic("executor 2 exploded")
				}
				return map[string]any{"index": i}, nil
			},
		})
	}
	d := newTestDispatcher(t, descriptors...)

	reqs := make([]Request, 5)
	for i := range reqs {
		reqs[i] = Request{Slug: fmt.Sprintf("CAP_%d", i)}
	}

	results := d.DispatchAll(context.Background(), reqs, Context{})
	require.Len(t, results, 5)

	for i, res := range results {
		assert.Equal(t, fmt.Sprintf("CAP_%d", i), res.Slug)
		if i == 2 {
			assert.False(t, res.Succeeded)
			assert.Contains(t, res.Error, "executor 2 exploded")
		} else {
			assert.True(t, res.Succeeded, "request %d should succeed", i)
		}
	}
}

func TestDispatchAllRunsConcurrently(t *testing.T) {
	var mu sync.Mutex
	inFlight, peak := 0, 0

	d := newTestDispatcher(t, Descriptor{
		Slug: "SLOW", Name: "Slow",
		Schema: NewSchema(),
		Execute: func(_ context.Context, _ map[string]any, _ Context) (any, error) {
			mu.Lock()
			inFlight++
			if inFlight > peak {
				peak = inFlight
			}
			mu.Unlock()
			time.Sleep(20 * time.Millisecond)
			mu.Lock()
			inFlight--
			mu.Unlock()
			return map[string]any{}, nil
		},
	})

	reqs := []Request{{Slug: "SLOW"}, {Slug: "SLOW"}, {Slug: "SLOW"}}
	d.DispatchAll(context.Background(), reqs, Context{})

	assert.Greater(t, peak, 1, "batch requests should overlap")
}

func TestDispatchObserver(t *testing.T) {
	obs := &recordingObserver{}
	reg := NewRegistry()
	require.NoError(t, reg.Register(addNumbersDescriptor()))
	d := NewDispatcher(reg,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithObserver(obs),
	)

	d.Dispatch(context.Background(), Request{
		Slug:  "ADD_NUMBERS",
		Input: map[string]any{"a": 1.0, "b": 1.0},
	}, Context{Account: "work"})
	d.Dispatch(context.Background(), Request{Slug: "ADD_NUMBERS"}, Context{Account: "work"})

	require.Len(t, obs.calls, 2)
	assert.True(t, obs.calls[0].succeeded)
	assert.Empty(t, obs.calls[0].errMsg)
	assert.False(t, obs.calls[1].succeeded)
	assert.Equal(t, "missing field: a", obs.calls[1].errMsg)
	assert.Equal(t, "work", obs.calls[0].account)
	assert.True(t, strings.HasPrefix(obs.calls[0].slug, "ADD_"))
}

func TestDispatchNotifiesEveryObserver(t *testing.T) {
	metrics := &recordingObserver{}
	audit := &recordingObserver{}
	reg := NewRegistry()
	require.NoError(t, reg.Register(addNumbersDescriptor()))
	d := NewDispatcher(reg,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithObserver(metrics),
		WithObserver(audit),
	)

	d.Dispatch(context.Background(), Request{
		Slug:  "ADD_NUMBERS",
		Input: map[string]any{"a": 1.0, "b": 2.0},
	}, Context{Account: "personal"})

	require.Len(t, metrics.calls, 1)
	require.Len(t, audit.calls, 1)
	assert.Equal(t, metrics.calls[0], audit.calls[0])
	assert.Equal(t, "personal", audit.calls[0].account)
}

type observedCall struct {
	slug      string
	account   string
	succeeded bool
	errMsg    string
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []observedCall
}

func (o *recordingObserver) ObserveDispatch(_ context.Context, slug, account string, succeeded bool, _ time.Duration, errMsg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, observedCall{slug: slug, account: account, succeeded: succeeded, errMsg: errMsg})
}
