// Package flick combines gesture recognition and grid navigation into the
// flick input core. Input is safe for concurrent use: pointer events and
// the deferred single-tap timer are serialized by one mutex.
package flick

import (
	"slices"
	"sync"

	"github.com/dshills/flickpad/internal/input/gesture"
	"github.com/dshills/flickpad/internal/input/nav"
)

// Option configures an Input.
type Option func(*Input)

// WithClock sets the clock used for tap timing.
func WithClock(c gesture.Clock) Option {
	return func(in *Input) {
		in.clock = c
	}
}

// WithGestureConfig sets the gesture thresholds and timings.
func WithGestureConfig(c gesture.Config) Option {
	return func(in *Input) {
		in.gestureConfig = c
	}
}

// WithOnboarding sets whether the input starts with onboarding shown.
func WithOnboarding(enabled bool) Option {
	return func(in *Input) {
		in.onboarding = enabled
	}
}

// Input is the flick input core.
type Input struct {
	mu sync.Mutex

	clock         gesture.Clock
	gestureConfig gesture.Config
	tracker       *gesture.Tracker
	machine       *nav.Machine

	onboarding bool
	closed     bool

	observers   []func(Snapshot)
	transitions []func(nav.Transition)
}

// New creates an input over tables. Onboarding is shown by default.
func New(tables nav.Tables, opts ...Option) *Input {
	in := &Input{
		gestureConfig: gesture.DefaultConfig(),
		onboarding:    true,
		machine:       nav.NewMachine(tables),
	}
	for _, opt := range opts {
		opt(in)
	}
	in.tracker = gesture.NewTracker(in.gestureConfig, in.clock, in.mature)
	return in
}

// OnChange registers fn to receive a snapshot after every state change.
// Callbacks run outside the lock, possibly on a timer goroutine.
func (in *Input) OnChange(fn func(Snapshot)) {
	in.mu.Lock()
	in.observers = append(in.observers, fn)
	in.mu.Unlock()
}

// OnTransition registers fn to receive every navigation transition.
func (in *Input) OnTransition(fn func(nav.Transition)) {
	in.mu.Lock()
	in.transitions = append(in.transitions, fn)
	in.mu.Unlock()
}

// GestureStart begins a gesture at p.
func (in *Input) GestureStart(p gesture.Point) {
	in.mu.Lock()
	if !in.acceptLocked() {
		in.mu.Unlock()
		return
	}
	in.tracker.Start(p)
	in.unlockAndNotify()
}

// GestureMove updates the live direction.
func (in *Input) GestureMove(p gesture.Point) {
	in.mu.Lock()
	if !in.acceptLocked() {
		in.mu.Unlock()
		return
	}
	prev := in.tracker.Live()
	live, ok := in.tracker.Move(p)
	if !ok || live == prev {
		in.mu.Unlock()
		return
	}
	in.unlockAndNotify()
}

// GestureEnd finishes the gesture at p and applies its outcome: a drag
// selects the cell it points to, a double tap deletes the last character,
// a single tap is deferred until it can no longer become a double tap.
func (in *Input) GestureEnd(p gesture.Point) gesture.Result {
	in.mu.Lock()
	if !in.acceptLocked() {
		in.mu.Unlock()
		return gesture.Result{Outcome: gesture.OutcomeNone, Direction: gesture.NoDirection}
	}

	res := in.tracker.End(p)
	switch res.Outcome {
	case gesture.OutcomeDrag:
		in.unlockAndNotify(in.machine.Select(res.Direction))
	case gesture.OutcomeDoubleTap:
		in.unlockAndNotify(in.deleteLocked())
	case gesture.OutcomeTapDeferred:
		in.unlockAndNotify()
	default:
		in.mu.Unlock()
	}
	return res
}

// DoubleTap deletes the last character without a pointer gesture. It never
// pairs with earlier taps, so each call deletes exactly once. A single tap
// still waiting to mature is applied first.
func (in *Input) DoubleTap() {
	in.mu.Lock()
	if !in.acceptLocked() {
		in.mu.Unlock()
		return
	}

	var trs []nav.Transition
	if in.tracker.Flush() {
		trs = append(trs, in.machine.Tap())
	}
	in.tracker.DoubleTap()
	trs = append(trs, in.deleteLocked())
	in.unlockAndNotify(trs...)
}

func (in *Input) deleteLocked() nav.Transition {
	view := in.machine.View()
	in.machine.DeleteLast()
	return nav.Transition{
		From:      view,
		To:        view,
		Direction: gesture.Center,
		Effect:    nav.EffectDelete,
	}
}

// mature runs on the clock when a deferred tap's delay elapses.
func (in *Input) mature(token uint64) {
	in.mu.Lock()
	if in.closed || !in.tracker.Mature(token) {
		in.mu.Unlock()
		return
	}
	in.unlockAndNotify(in.machine.Tap())
}

// DismissOnboarding hides the onboarding overlay and enables gestures.
func (in *Input) DismissOnboarding() {
	in.mu.Lock()
	if !in.onboarding || in.closed {
		in.mu.Unlock()
		return
	}
	in.onboarding = false
	in.unlockAndNotify()
}

// SetTables swaps the content tables. The text is kept and the view
// returns to the current mode's first grid.
func (in *Input) SetTables(tables nav.Tables) {
	in.mu.Lock()
	if in.closed {
		in.mu.Unlock()
		return
	}
	in.machine.SetTables(tables)
	in.unlockAndNotify()
}

// Snapshot returns the current state.
func (in *Input) Snapshot() Snapshot {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.snapshotLocked()
}

// Config returns the effective gesture configuration.
func (in *Input) Config() gesture.Config {
	return in.tracker.Config()
}

// Close cancels any pending tap. Later events are ignored.
func (in *Input) Close() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed {
		return
	}
	in.closed = true
	in.tracker.Cancel()
}

func (in *Input) acceptLocked() bool {
	return !in.closed && !in.onboarding
}

func (in *Input) snapshotLocked() Snapshot {
	text := in.machine.Text()
	return Snapshot{
		Content:    in.machine.Content(),
		Roles:      in.machine.Roles(),
		View:       in.machine.View(),
		Mode:       in.machine.Mode(),
		Live:       in.tracker.Live(),
		Flicking:   in.tracker.Active(),
		PendingTap: in.tracker.Pending(),
		Text:       text,
		Onboarding: in.onboarding,
		FontSize:   FontSize(text),
	}
}

// unlockAndNotify releases the lock, reports trs in order and calls
// observers with a snapshot taken while it was held.
func (in *Input) unlockAndNotify(trs ...nav.Transition) {
	snap := in.snapshotLocked()
	observers := slices.Clone(in.observers)
	var transitions []func(nav.Transition)
	if len(trs) > 0 {
		transitions = slices.Clone(in.transitions)
	}
	in.mu.Unlock()

	for _, tr := range trs {
		for _, fn := range transitions {
			fn(tr)
		}
	}
	for _, fn := range observers {
		fn(snap)
	}
}
