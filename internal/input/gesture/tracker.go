package gesture

import "time"

// Config configures gesture disambiguation.
type Config struct {
	// Threshold is the per-axis displacement below which a gesture is a tap.
	Threshold float64

	// DoubleTapWindow is the maximum time between two taps for a double tap.
	DoubleTapWindow time.Duration

	// SingleTapDelay is how long a single tap waits before it matures.
	// Must exceed DoubleTapWindow so a second tap can still cancel it.
	SingleTapDelay time.Duration

	// DoubleTapSuppress is how long a double tap blocks a racing single tap.
	DoubleTapSuppress time.Duration
}

// DefaultConfig returns the standard flick timings.
func DefaultConfig() Config {
	return Config{
		Threshold:         DefaultThreshold,
		DoubleTapWindow:   300 * time.Millisecond,
		SingleTapDelay:    320 * time.Millisecond,
		DoubleTapSuppress: 50 * time.Millisecond,
	}
}

// withDefaults fills zero or negative fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Threshold <= 0 {
		c.Threshold = d.Threshold
	}
	if c.DoubleTapWindow <= 0 {
		c.DoubleTapWindow = d.DoubleTapWindow
	}
	if c.SingleTapDelay <= 0 {
		c.SingleTapDelay = d.SingleTapDelay
	}
	if c.DoubleTapSuppress <= 0 {
		c.DoubleTapSuppress = d.DoubleTapSuppress
	}
	return c
}

// Outcome is the semantic result of ending a gesture.
type Outcome uint8

const (
	// OutcomeNone means the end event was ignored (no gesture in progress).
	OutcomeNone Outcome = iota
	// OutcomeDrag is a flick toward Result.Direction.
	OutcomeDrag
	// OutcomeDoubleTap is the second tap of a double tap.
	OutcomeDoubleTap
	// OutcomeTapDeferred is a tap waiting to mature into a single tap.
	OutcomeTapDeferred
)

// String returns a string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeDrag:
		return "drag"
	case OutcomeDoubleTap:
		return "double-tap"
	case OutcomeTapDeferred:
		return "tap-deferred"
	default:
		return "none"
	}
}

// Result describes how a gesture ended.
type Result struct {
	Outcome   Outcome
	Direction Direction
}

// DeferredFunc is called from the clock when a single tap's delay elapses.
// The receiver must pass token to Tracker.Mature under its own serialization.
type DeferredFunc func(token uint64)

// Tracker follows one gesture at a time and resolves taps.
type Tracker struct {
	config   Config
	clock    Clock
	deferred DeferredFunc

	// Current gesture
	active bool
	start  Point
	live   Direction

	// Tap history
	lastTap       time.Time
	suppressUntil time.Time

	// Deferred single tap
	pending Timer
	token   uint64
}

// NewTracker creates a tracker. A nil clock uses SystemClock.
func NewTracker(config Config, clock Clock, deferred DeferredFunc) *Tracker {
	if clock == nil {
		clock = SystemClock()
	}
	return &Tracker{
		config:   config.withDefaults(),
		clock:    clock,
		deferred: deferred,
		live:     NoDirection,
	}
}

// Config returns the effective configuration.
func (t *Tracker) Config() Config {
	return t.config
}

// Start begins a gesture at p. A gesture already in progress is abandoned.
func (t *Tracker) Start(p Point) {
	t.active = true
	t.start = p
	t.live = Center
}

// Move updates the live direction while a gesture is in progress.
// Returns the live direction and whether a gesture is active.
func (t *Tracker) Move(p Point) (Direction, bool) {
	if !t.active {
		return NoDirection, false
	}
	t.live = Classify(t.start, p, t.config.Threshold)
	return t.live, true
}

// End finishes the gesture at p and classifies it.
func (t *Tracker) End(p Point) Result {
	if !t.active {
		return Result{Outcome: OutcomeNone, Direction: NoDirection}
	}

	start := t.start
	t.active = false
	t.live = NoDirection

	dir := Classify(start, p, t.config.Threshold)
	if !IsTap(start, p, t.config.Threshold) {
		return Result{Outcome: OutcomeDrag, Direction: dir}
	}

	now := t.clock.Now()
	double := t.isDoubleTap(now)
	t.lastTap = now

	if double {
		t.cancelPending()
		t.suppressUntil = now.Add(t.config.DoubleTapSuppress)
		return Result{Outcome: OutcomeDoubleTap, Direction: Center}
	}

	t.schedule()
	return Result{Outcome: OutcomeTapDeferred, Direction: Center}
}

// isDoubleTap checks whether a tap at now pairs with the previous tap.
func (t *Tracker) isDoubleTap(now time.Time) bool {
	if t.lastTap.IsZero() {
		return false
	}
	elapsed := now.Sub(t.lastTap)
	// Clock skew: a negative interval starts a new sequence
	if elapsed < 0 {
		return false
	}
	return elapsed < t.config.DoubleTapWindow
}

// schedule replaces any pending single tap with a fresh one.
func (t *Tracker) schedule() {
	t.cancelPending()

	t.token++
	token := t.token
	t.pending = t.clock.AfterFunc(t.config.SingleTapDelay, func() {
		if t.deferred != nil {
			t.deferred(token)
		}
	})
}

// Mature confirms a deferred single tap. It returns true when the tap
// identified by token is still current and no double tap suppresses it;
// the caller then performs the single-tap action.
func (t *Tracker) Mature(token uint64) bool {
	if t.pending == nil || token != t.token {
		return false
	}
	t.pending = nil

	if t.clock.Now().Before(t.suppressUntil) {
		return false
	}
	return true
}

// Flush cancels a pending single tap and reports whether one was waiting.
// The caller performs the single-tap action itself, immediately.
func (t *Tracker) Flush() bool {
	if t.pending == nil {
		return false
	}
	t.cancelPending()
	return true
}

// DoubleTap records a double tap made without a pointer, such as a key
// press. Any pending single tap is cancelled and the suppression window
// starts. The tap history is cleared so the next tap begins a new
// sequence instead of pairing with this one.
func (t *Tracker) DoubleTap() {
	t.cancelPending()
	t.suppressUntil = t.clock.Now().Add(t.config.DoubleTapSuppress)
	t.lastTap = time.Time{}
}

// Cancel stops any pending single tap. Call on teardown.
func (t *Tracker) Cancel() {
	t.cancelPending()
}

func (t *Tracker) cancelPending() {
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}

// Active returns true if a gesture is in progress.
func (t *Tracker) Active() bool {
	return t.active
}

// Live returns the live direction, or NoDirection when idle.
func (t *Tracker) Live() Direction {
	return t.live
}

// Pending returns true if a single tap is waiting to mature.
func (t *Tracker) Pending() bool {
	return t.pending != nil
}

// StartPoint returns the starting point of the current gesture (if any).
func (t *Tracker) StartPoint() (Point, bool) {
	if !t.active {
		return Point{}, false
	}
	return t.start, true
}
