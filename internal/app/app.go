// Package app wires configuration, content tables, the flick input core,
// the onboarding overlay and the terminal renderer into the flickpad
// application.
package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/flickpad/internal/config"
	"github.com/dshills/flickpad/internal/content"
	"github.com/dshills/flickpad/internal/flick"
	"github.com/dshills/flickpad/internal/input/gesture"
	"github.com/dshills/flickpad/internal/input/nav"
	"github.com/dshills/flickpad/internal/onboarding"
	"github.com/dshills/flickpad/internal/renderer"
	"github.com/dshills/flickpad/internal/renderer/backend"
)

// Application is the main flickpad application.
type Application struct {
	mu sync.RWMutex

	// Core components
	config  *config.Config
	tables  nav.Tables
	input   *flick.Input
	overlay *onboarding.Overlay
	watcher *content.Watcher

	// Rendering
	backend  backend.Backend
	renderer *renderer.Renderer
	theme    renderer.Theme
	pointer  config.PointerConfig

	// Observability
	logger    *Logger
	logFile   io.Closer
	sessionID string
	metrics   *Metrics

	// Pointer state for the mouse adapter
	pressed bool

	// State
	running   atomic.Bool
	done      chan struct{}
	doneOnce  sync.Once
	closeOnce sync.Once
	closeErr  error
	ctx       context.Context
	cancel    context.CancelFunc

	// Options
	opts Options
}

// Options configures application creation.
type Options struct {
	// ConfigPath is the settings file. Empty uses the default location.
	ConfigPath string

	// ContentPath is the YAML content file. Overrides content.path.
	ContentPath string

	// LogLevel overrides logging.level when set.
	LogLevel string

	// NoOnboarding skips the demonstration overlay.
	NoOnboarding bool

	// Config replaces the loaded configuration. Used by tests.
	Config *config.Config

	// LogOutput replaces the log file. Used by tests.
	LogOutput io.Writer

	// Clock drives tap timing and the overlay. Defaults to the system clock.
	Clock gesture.Clock
}

// New creates a new application with the given options.
func New(opts Options) (*Application, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &Application{
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
		metrics: NewMetrics(),
		opts:    opts,
	}

	if err := app.bootstrap(); err != nil {
		cancel()
		return nil, err
	}

	return app, nil
}

// SetBackend sets the terminal backend. Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.backend = b
}

// Run starts the event loop and blocks until the application exits.
func (app *Application) Run() (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()

	if b == nil {
		// Headless: wait for Shutdown.
		<-app.done
		return app.Close()
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer func() {
		b.Shutdown()
		if cerr := app.Close(); err == nil {
			err = cerr
		}
	}()

	app.attachRenderer(b)
	app.Logger().Info("started")

	return app.eventLoop()
}

// Shutdown asks a running event loop to exit. Safe to call from any
// goroutine and more than once.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() {
		close(app.done)
	})

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b != nil {
		b.PostEvent(backend.Event{Type: backend.EventInterrupt})
	}
}

// Close releases every component in reverse start order. Run calls it on
// exit; callers that never run the application call it themselves.
func (app *Application) Close() error {
	app.closeOnce.Do(func() {
		app.closeErr = app.shutdown()
	})
	return app.closeErr
}

// shutdown stops components: overlay, watcher, input, then the log.
func (app *Application) shutdown() error {
	var errs ErrorList

	app.cancel()

	if app.overlay != nil {
		app.overlay.Stop()
	}
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.logComponentError("content", err)
			errs.Add(NewComponentError("content", "close watcher", err))
		}
	}
	if app.input != nil {
		app.input.Close()
	}

	app.Logger().Info("stopped: %s", app.metrics.Snapshot())

	if app.logFile != nil {
		if err := app.logFile.Close(); err != nil {
			errs.Add(NewComponentError("logger", "close", err))
		}
	}

	return errs.AsError()
}

// IsRunning returns true if the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Done returns a channel closed once shutdown is requested.
func (app *Application) Done() <-chan struct{} {
	return app.done
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Input returns the flick input core.
func (app *Application) Input() *flick.Input {
	return app.input
}

// Overlay returns the onboarding overlay.
func (app *Application) Overlay() *onboarding.Overlay {
	return app.overlay
}

// Renderer returns the renderer, or nil before Run.
func (app *Application) Renderer() *renderer.Renderer {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.renderer
}

// SessionID returns the id tagging this run's log lines.
func (app *Application) SessionID() string {
	return app.sessionID
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// CellRect implements onboarding.Geometry. Before a renderer exists no
// cell has a position.
func (app *Application) CellRect(i int) (onboarding.Rect, bool) {
	r := app.Renderer()
	if r == nil {
		return onboarding.Rect{}, false
	}
	return r.CellRect(i)
}

// requestRedraw wakes the event loop to draw a frame. Callbacks from
// timer goroutines use it so drawing stays on the loop goroutine.
func (app *Application) requestRedraw() {
	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b != nil {
		b.PostEvent(backend.Event{Type: backend.EventInterrupt})
	}
}

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
