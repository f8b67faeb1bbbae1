// Package onboarding plays the looping demonstration shown over the grid
// on first launch: a cursor taps the center, then flicks up, right, down
// and left, pausing between each.
package onboarding

import (
	"time"

	"github.com/dshills/flickpad/internal/input/gesture"
)

// Messages shown below the demonstration.
const (
	Message    = "画面をフリックして文字を選択します"
	SubMessage = "タップして操作を始める"
)

// Step is one frame of the demonstration script.
type Step struct {
	// Highlight is the highlighted cell, or NoDirection for a pause.
	Highlight gesture.Direction
	// Label is drawn at the cursor. Empty while hidden.
	Label string
	// Duration is how long the step stays on screen.
	Duration time.Duration
}

// Hidden returns true for the pause between flicks.
func (s Step) Hidden() bool {
	return !s.Highlight.Valid()
}

func show(dir gesture.Direction, ms int) Step {
	return Step{Highlight: dir, Label: dir.Arrow(), Duration: time.Duration(ms) * time.Millisecond}
}

func pause(ms int) Step {
	return Step{Highlight: gesture.NoDirection, Duration: time.Duration(ms) * time.Millisecond}
}

// Script is the demonstration, played in a loop.
var Script = []Step{
	show(gesture.Center, 600), show(gesture.Up, 700), pause(500),
	show(gesture.Center, 600), show(gesture.Right, 700), pause(500),
	show(gesture.Center, 600), show(gesture.Down, 700), pause(500),
	show(gesture.Center, 600), show(gesture.Left, 700), pause(800),
}

// Cycle returns the length of one pass through the script.
func Cycle() time.Duration {
	var d time.Duration
	for _, s := range Script {
		d += s.Duration
	}
	return d
}
