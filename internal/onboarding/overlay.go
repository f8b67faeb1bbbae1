package onboarding

import (
	"sync"

	"github.com/dshills/flickpad/internal/input/gesture"
)

// Rect is a screen rectangle in terminal cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty returns true if the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the middle cell of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Geometry locates grid cells on screen.
type Geometry interface {
	// CellRect returns the rectangle of cell i, or false before the grid
	// has been laid out.
	CellRect(i int) (Rect, bool)
}

// Frame is what the renderer draws for the current step.
type Frame struct {
	// Visible is false when there is nothing to draw.
	Visible bool
	// Highlight is the highlighted cell, or NoDirection.
	Highlight gesture.Direction
	// HighlightRect is the rectangle of the highlighted cell.
	HighlightRect Rect
	// CursorX, CursorY is where the label is drawn.
	CursorX, CursorY int
	// Label is the cursor glyph.
	Label string
	// Hidden marks the pause between flicks; the cursor is not drawn.
	Hidden bool
}

// Overlay advances through Script on its own timer until stopped.
type Overlay struct {
	mu       sync.Mutex
	clock    gesture.Clock
	geometry Geometry

	step    int
	running bool
	timer   gesture.Timer
	gen     uint64

	onStep    func()
	onDismiss func()
}

// NewOverlay creates a stopped overlay. A nil clock uses the system clock.
func NewOverlay(geometry Geometry, clock gesture.Clock) *Overlay {
	if clock == nil {
		clock = gesture.SystemClock()
	}
	return &Overlay{clock: clock, geometry: geometry}
}

// OnStep sets a callback invoked after every step change.
func (o *Overlay) OnStep(fn func()) {
	o.mu.Lock()
	o.onStep = fn
	o.mu.Unlock()
}

// OnDismiss sets a callback invoked once when the overlay is dismissed.
func (o *Overlay) OnDismiss(fn func()) {
	o.mu.Lock()
	o.onDismiss = fn
	o.mu.Unlock()
}

// Start plays the script from the first step.
func (o *Overlay) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stopLocked()
	o.running = true
	o.step = 0
	o.scheduleLocked()
}

// Stop halts the animation without dismissing.
func (o *Overlay) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopLocked()
}

// Dismiss stops the overlay and reports it. Returns false if the overlay
// was not running.
func (o *Overlay) Dismiss() bool {
	o.mu.Lock()
	if !o.running {
		o.mu.Unlock()
		return false
	}
	o.stopLocked()
	fn := o.onDismiss
	o.mu.Unlock()

	if fn != nil {
		fn()
	}
	return true
}

// Running returns true while the overlay is shown.
func (o *Overlay) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// StepIndex returns the index of the current step in Script.
func (o *Overlay) StepIndex() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.step
}

// Current computes the frame for the current step.
func (o *Overlay) Current() Frame {
	o.mu.Lock()
	running := o.running
	step := Script[o.step]
	o.mu.Unlock()

	if !running || o.geometry == nil {
		return Frame{Highlight: gesture.NoDirection}
	}

	// The cursor rests on the center during a pause
	cursorCell := gesture.Center
	if !step.Hidden() {
		cursorCell = step.Highlight
	}
	cursor, ok := o.geometry.CellRect(int(cursorCell))
	if !ok {
		return Frame{Highlight: gesture.NoDirection}
	}

	f := Frame{
		Visible:   true,
		Highlight: step.Highlight,
		Label:     step.Label,
		Hidden:    step.Hidden(),
	}
	f.CursorX, f.CursorY = cursor.Center()
	if !step.Hidden() {
		f.HighlightRect = cursor
	}
	return f
}

func (o *Overlay) stopLocked() {
	o.running = false
	o.gen++
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

func (o *Overlay) scheduleLocked() {
	gen := o.gen
	o.timer = o.clock.AfterFunc(Script[o.step].Duration, func() {
		o.advance(gen)
	})
}

func (o *Overlay) advance(gen uint64) {
	o.mu.Lock()
	if !o.running || gen != o.gen {
		o.mu.Unlock()
		return
	}
	o.step = (o.step + 1) % len(Script)
	o.scheduleLocked()
	fn := o.onStep
	o.mu.Unlock()

	if fn != nil {
		fn()
	}
}
