package app

import (
	"io"

	"github.com/dshills/flickpad/internal/config"
	"github.com/dshills/flickpad/internal/content"
	"github.com/dshills/flickpad/internal/flick"
	"github.com/dshills/flickpad/internal/input/gesture"
	"github.com/dshills/flickpad/internal/input/nav"
	"github.com/dshills/flickpad/internal/onboarding"
	"github.com/dshills/flickpad/internal/renderer"
	"github.com/dshills/flickpad/internal/renderer/backend"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	clock     gesture.Clock
	loadErr   error
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application, opts Options) *bootstrapper {
	clock := opts.Clock
	if clock == nil {
		clock = gesture.SystemClock()
	}
	return &bootstrapper{
		app:       app,
		opts:      opts,
		clock:     clock,
		initOrder: make([]string, 0, 6),
	}
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	return newBootstrapper(app, app.opts).bootstrap()
}

// bootstrap runs each step in order. On failure, it cleans up
// already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,   // 1. settings file, environment, CLI overrides
		b.initLogger,   // 2. needs logging.*
		b.initContent,  // 3. needs content.path
		b.initInput,    // 4. needs tables and gesture.*
		b.initOverlay,  // 5. needs the input
		b.initWatcher,  // 6. reloads into the input
		b.initTheme,    // 7. theme.* and pointer.*
		b.reportConfig, // 8. surface bad settings in the log
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	return nil
}

// initConfig loads settings and applies command-line overrides.
func (b *bootstrapper) initConfig() error {
	cfg := b.opts.Config
	if cfg == nil {
		var configOpts []config.Option
		if b.opts.ConfigPath != "" {
			configOpts = append(configOpts, config.WithConfigFile(b.opts.ConfigPath))
		}
		cfg = config.New(configOpts...)

		// Load errors are non-fatal: defaults stay in effect. They are
		// logged once the logger exists.
		b.loadErr = cfg.Load(b.app.ctx)
	}

	overrides := map[string]any{}
	if b.opts.ContentPath != "" {
		overrides["content.path"] = b.opts.ContentPath
	}
	if b.opts.LogLevel != "" {
		overrides["logging.level"] = b.opts.LogLevel
	}
	if b.opts.NoOnboarding {
		overrides["onboarding.enabled"] = false
	}
	for path, value := range overrides {
		if err := cfg.Set(path, value); err != nil {
			return &InitError{Component: "config", Err: err}
		}
	}

	b.app.config = cfg
	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initLogger opens the log file and tags the logger with a session id.
func (b *bootstrapper) initLogger() error {
	lc := b.app.config.Logging()

	var out io.Writer = io.Discard
	switch {
	case b.opts.LogOutput != nil:
		out = b.opts.LogOutput
	case lc.File != "":
		f, err := OpenLogFile(lc.File)
		if err != nil {
			return &InitError{Component: "logger", Err: err}
		}
		b.app.logFile = f
		out = f
	}

	b.app.sessionID = NewSessionID()
	b.app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(lc.Level),
		Output: out,
		Prefix: "flickpad",
	}).WithField("session", b.app.sessionID)
	SetLogger(b.app.logger)

	if b.loadErr != nil {
		b.app.Logger().WithComponent("config").Warn("using defaults: %v", b.loadErr)
	}

	b.initOrder = append(b.initOrder, "logger")
	return nil
}

// initContent loads the content tables. A file named explicitly must load.
func (b *bootstrapper) initContent() error {
	path := b.app.config.Content().Path
	if path == "" {
		b.app.tables = content.Default()
		b.initOrder = append(b.initOrder, "content")
		return nil
	}

	tables, err := content.Load(path)
	if err != nil {
		return &InitError{Component: "content", Err: err}
	}
	b.app.tables = tables
	b.app.Logger().WithComponent("content").Info("loaded %s: %s", path, content.Summary(tables))

	b.initOrder = append(b.initOrder, "content")
	return nil
}

// initInput creates the flick input core.
func (b *bootstrapper) initInput() error {
	gc := b.app.config.Gesture()
	in := flick.New(b.app.tables,
		flick.WithClock(b.clock),
		flick.WithGestureConfig(gesture.Config{
			Threshold:         gc.Threshold,
			DoubleTapWindow:   gc.DoubleTapWindow,
			SingleTapDelay:    gc.SingleTapDelay,
			DoubleTapSuppress: gc.DoubleTapSuppress,
		}),
		flick.WithOnboarding(b.app.config.Onboarding().Enabled),
	)
	in.OnChange(func(flick.Snapshot) {
		b.app.requestRedraw()
	})
	in.OnTransition(b.app.recordTransition)

	b.app.input = in
	b.initOrder = append(b.initOrder, "input")
	return nil
}

// initOverlay creates the onboarding overlay. It is started by Run once
// cells have screen positions.
func (b *bootstrapper) initOverlay() error {
	ov := onboarding.NewOverlay(b.app, b.clock)
	ov.OnStep(b.app.requestRedraw)
	ov.OnDismiss(func() {
		b.app.Logger().WithComponent("onboarding").Debug("dismissed")
		b.app.input.DismissOnboarding()
	})

	b.app.overlay = ov
	b.initOrder = append(b.initOrder, "overlay")
	return nil
}

// initWatcher reloads the content file on change. Watch failures are
// non-fatal: the loaded tables stay in use.
func (b *bootstrapper) initWatcher() error {
	cc := b.app.config.Content()
	if cc.Path == "" || !cc.Watch {
		return nil
	}

	w, err := content.Watch(b.app.ctx, cc.Path, b.app.reloadContent)
	if err != nil {
		b.app.Logger().WithComponent("content").Warn("watch %s: %v", cc.Path, err)
		return nil
	}

	b.app.watcher = w
	b.initOrder = append(b.initOrder, "watcher")
	return nil
}

// initTheme resolves the configured colors.
func (b *bootstrapper) initTheme() error {
	theme, errs := renderer.ThemeFromConfig(b.app.config.Theme())
	for _, err := range errs {
		b.app.Logger().WithComponent("theme").Warn("%v", err)
	}
	b.app.theme = theme
	b.app.pointer = b.app.config.Pointer()
	return nil
}

// reportConfig logs settings that were present but unusable.
func (b *bootstrapper) reportConfig() error {
	log := b.app.Logger().WithComponent("config")
	for path, err := range b.app.config.ConfigErrors() {
		log.Warn("%s: %v", path, err)
	}
	if b.loadErr == nil && b.app.config.FileLoaded() {
		log.Debug("loaded %s", b.app.config.ConfigFile())
	}
	return nil
}

// cleanup performs cleanup in reverse initialization order.
// Called when bootstrap fails partway through.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		b.cleanupComponent(b.initOrder[i])
	}
}

// cleanupComponent cleans up a single component.
func (b *bootstrapper) cleanupComponent(component string) {
	switch component {
	case "watcher":
		if b.app.watcher != nil {
			_ = b.app.watcher.Close()
			b.app.watcher = nil
		}
	case "overlay":
		if b.app.overlay != nil {
			b.app.overlay.Stop()
			b.app.overlay = nil
		}
	case "input":
		if b.app.input != nil {
			b.app.input.Close()
			b.app.input = nil
		}
	case "content":
		b.app.tables = nav.Tables{}
	case "logger":
		if b.app.logFile != nil {
			_ = b.app.logFile.Close()
			b.app.logFile = nil
		}
		b.app.logger = nil
	case "config":
		b.app.config = nil
	}
}

// attachRenderer creates the renderer for b and starts onboarding.
func (app *Application) attachRenderer(b backend.Backend) {
	r := renderer.New(b, app.theme, app.pointer)
	app.mu.Lock()
	app.renderer = r
	app.mu.Unlock()

	if app.input.Snapshot().Onboarding {
		app.overlay.Start()
	}
}

// reloadContent swaps in tables from a changed content file. A file that
// fails to load leaves the current tables in place.
func (app *Application) reloadContent(tables nav.Tables, err error) {
	log := app.Logger().WithComponent("content")
	if err != nil {
		app.metrics.RecordReload(false)
		log.Warn("reload: %v", err)
		return
	}
	app.metrics.RecordReload(true)
	app.input.SetTables(tables)
	log.Info("reloaded: %s", content.Summary(tables))
}

// recordTransition logs and counts state machine transitions.
func (app *Application) recordTransition(tr nav.Transition) {
	app.metrics.RecordTransition(tr.Effect)
	app.Logger().WithComponent("nav").Debug("%s -> %s via %s: %s", tr.From, tr.To, tr.Direction, tr.Effect)
}
