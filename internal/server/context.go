package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/calverra/workdeck/internal/calendar"
	"github.com/calverra/workdeck/internal/capabilities/calendar_caps"
	"github.com/calverra/workdeck/internal/capabilities/chat_caps"
	"github.com/calverra/workdeck/internal/capabilities/docs_caps"
	"github.com/calverra/workdeck/internal/capabilities/drive_caps"
	"github.com/calverra/workdeck/internal/capabilities/forms_caps"
	"github.com/calverra/workdeck/internal/capabilities/gmail_caps"
	"github.com/calverra/workdeck/internal/capabilities/search_caps"
	"github.com/calverra/workdeck/internal/capabilities/sheets_caps"
	"github.com/calverra/workdeck/internal/capabilities/slides_caps"
	"github.com/calverra/workdeck/internal/capabilities/tasks_caps"
	"github.com/calverra/workdeck/internal/capability"
	"github.com/calverra/workdeck/internal/drive"
	"github.com/calverra/workdeck/internal/gmail"
	"github.com/calverra/workdeck/internal/google"
	"github.com/calverra/workdeck/internal/tasks"
)

// ServerContext owns the capability registry and dispatcher for one server
// process. It lazily creates Google service backends per account: accounts
// with a stored OAuth token get live API clients, accounts without one fall
// back to the offline backend so every capability stays callable.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	registry   *capability.Registry
	dispatcher *capability.Dispatcher
	logger     *slog.Logger

	// Per-account backend caches. A backend is created on first dispatch
	// for an account and reused afterwards.
	gmailBackends    map[string]gmail_caps.Backend
	calendarBackends map[string]calendar_caps.Backend
	driveBackends    map[string]drive_caps.Backend
	tasksBackends    map[string]tasks_caps.Backend

	mu       sync.RWMutex
	shutdown bool
}

// ServerContextOption configures a ServerContext.
type ServerContextOption func(*serverContextConfig)

type serverContextConfig struct {
	logger    *slog.Logger
	observers []capability.Observer
	mode      capability.Mode
}

// WithLogger sets the logger used by the server context and its dispatcher.
func WithLogger(logger *slog.Logger) ServerContextOption {
	return func(c *serverContextConfig) { c.logger = logger }
}

// WithObserver wires a dispatch observer. May be given more than once;
// typical wiring is the instrumentation metrics recorder plus the audit
// logger.
func WithObserver(o capability.Observer) ServerContextOption {
	return func(c *serverContextConfig) { c.observers = append(c.observers, o) }
}

// WithValidationMode sets the input validation mode for the dispatcher.
func WithValidationMode(mode capability.Mode) ServerContextOption {
	return func(c *serverContextConfig) { c.mode = mode }
}

// NewServerContext creates a server context with the full capability catalog
// registered and a dispatcher bound to it.
func NewServerContext(ctx context.Context, opts ...ServerContextOption) (*ServerContext, error) {
	cfg := serverContextConfig{
		logger: slog.Default(),
		mode:   capability.Lenient,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:              shutdownCtx,
		cancel:           cancel,
		logger:           cfg.logger,
		gmailBackends:    make(map[string]gmail_caps.Backend),
		calendarBackends: make(map[string]calendar_caps.Backend),
		driveBackends:    make(map[string]drive_caps.Backend),
		tasksBackends:    make(map[string]tasks_caps.Backend),
	}

	sc.registry = capability.NewRegistry()
	if err := sc.registerCapabilities(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to build capability catalog: %w", err)
	}

	dispatcherOpts := []capability.DispatcherOption{
		capability.WithMode(cfg.mode),
		capability.WithLogger(cfg.logger),
	}
	for _, o := range cfg.observers {
		dispatcherOpts = append(dispatcherOpts, capability.WithObserver(o))
	}
	sc.dispatcher = capability.NewDispatcher(sc.registry, dispatcherOpts...)

	return sc, nil
}

func (sc *ServerContext) registerCapabilities() error {
	if err := gmail_caps.Register(sc.registry, sc.gmailBackend); err != nil {
		return err
	}
	if err := calendar_caps.Register(sc.registry, sc.calendarBackend); err != nil {
		return err
	}
	if err := drive_caps.Register(sc.registry, sc.driveBackend); err != nil {
		return err
	}
	if err := tasks_caps.Register(sc.registry, sc.tasksBackend); err != nil {
		return err
	}
	if err := docs_caps.Register(sc.registry); err != nil {
		return err
	}
	if err := sheets_caps.Register(sc.registry); err != nil {
		return err
	}
	if err := slides_caps.Register(sc.registry); err != nil {
		return err
	}
	if err := forms_caps.Register(sc.registry); err != nil {
		return err
	}
	if err := chat_caps.Register(sc.registry); err != nil {
		return err
	}
	return search_caps.Register(sc.registry)
}

// Context returns the server lifecycle context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Registry returns the capability catalog.
func (sc *ServerContext) Registry() *capability.Registry {
	return sc.registry
}

// Dispatcher returns the dispatcher bound to the catalog.
func (sc *ServerContext) Dispatcher() *capability.Dispatcher {
	return sc.dispatcher
}

// gmailBackend resolves the Gmail backend for an account, creating and
// caching it on first use.
func (sc *ServerContext) gmailBackend(_ context.Context, account string) (gmail_caps.Backend, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if b, ok := sc.gmailBackends[account]; ok {
		return b, nil
	}

	var backend gmail_caps.Backend
	if gmail.HasTokenForAccount(account) {
		client, err := gmail.NewClientForAccount(sc.ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gmail client for account %s: %w", account, err)
		}
		backend = client
	} else {
		sc.logger.Debug("no Gmail token for account, using offline backend",
			slog.String("account", account))
		backend = gmail.NewOffline(account)
	}

	sc.gmailBackends[account] = backend
	return backend, nil
}

// calendarBackend resolves the Calendar backend for an account.
func (sc *ServerContext) calendarBackend(_ context.Context, account string) (calendar_caps.Backend, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if b, ok := sc.calendarBackends[account]; ok {
		return b, nil
	}

	var backend calendar_caps.Backend
	if google.HasTokenForAccount(account) {
		client, err := calendar.NewClientForAccount(sc.ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
		}
		backend = client
	} else {
		sc.logger.Debug("no Google token for account, using offline backend",
			slog.String("account", account), slog.String("service", "calendar"))
		backend = calendar.NewOffline(account)
	}

	sc.calendarBackends[account] = backend
	return backend, nil
}

// driveBackend resolves the Drive backend for an account.
func (sc *ServerContext) driveBackend(_ context.Context, account string) (drive_caps.Backend, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if b, ok := sc.driveBackends[account]; ok {
		return b, nil
	}

	var backend drive_caps.Backend
	if google.HasTokenForAccount(account) {
		client, err := drive.NewClientForAccount(sc.ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Drive client for account %s: %w", account, err)
		}
		backend = client
	} else {
		sc.logger.Debug("no Google token for account, using offline backend",
			slog.String("account", account), slog.String("service", "drive"))
		backend = drive.NewOffline(account)
	}

	sc.driveBackends[account] = backend
	return backend, nil
}

// tasksBackend resolves the Tasks backend for an account.
func (sc *ServerContext) tasksBackend(_ context.Context, account string) (tasks_caps.Backend, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if b, ok := sc.tasksBackends[account]; ok {
		return b, nil
	}

	var backend tasks_caps.Backend
	if google.HasTokenForAccount(account) {
		client, err := tasks.NewClientForAccount(sc.ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Tasks client for account %s: %w", account, err)
		}
		backend = client
	} else {
		sc.logger.Debug("no Google token for account, using offline backend",
			slog.String("account", account), slog.String("service", "tasks"))
		backend = tasks.NewOffline(account)
	}

	sc.tasksBackends[account] = backend
	return backend, nil
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
