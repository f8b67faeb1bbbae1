package onboarding

import (
	"testing"
	"time"

	"github.com/dshills/flickpad/internal/input/gesture"
)

// gridGeometry lays out 10x5 cells starting at the origin.
type gridGeometry struct {
	ready bool
}

func (g gridGeometry) CellRect(i int) (Rect, bool) {
	if !g.ready || i < 0 || i > 8 {
		return Rect{}, false
	}
	return Rect{X: (i % 3) * 10, Y: (i / 3) * 5, Width: 10, Height: 5}, true
}

func newTestOverlay(geometry Geometry) (*Overlay, *gesture.ManualClock) {
	clock := gesture.NewManualClock(time.Unix(0, 0))
	return NewOverlay(geometry, clock), clock
}

func TestScriptOrder(t *testing.T) {
	wantCells := []gesture.Direction{
		gesture.Center, gesture.Up, gesture.NoDirection,
		gesture.Center, gesture.Right, gesture.NoDirection,
		gesture.Center, gesture.Down, gesture.NoDirection,
		gesture.Center, gesture.Left, gesture.NoDirection,
	}
	wantLabels := []string{"●", "↑", "", "●", "→", "", "●", "↓", "", "●", "←", ""}
	wantMs := []int{600, 700, 500, 600, 700, 500, 600, 700, 500, 600, 700, 800}

	if len(Script) != len(wantCells) {
		t.Fatalf("len(Script) = %d, want %d", len(Script), len(wantCells))
	}
	for i, s := range Script {
		if s.Highlight != wantCells[i] {
			t.Errorf("step %d highlight = %v, want %v", i, s.Highlight, wantCells[i])
		}
		if s.Label != wantLabels[i] {
			t.Errorf("step %d label = %q, want %q", i, s.Label, wantLabels[i])
		}
		if s.Duration != time.Duration(wantMs[i])*time.Millisecond {
			t.Errorf("step %d duration = %v", i, s.Duration)
		}
	}
	if Cycle() != 7500*time.Millisecond {
		t.Errorf("Cycle() = %v, want 7.5s", Cycle())
	}
}

func TestOverlayAdvancesAndLoops(t *testing.T) {
	o, clock := newTestOverlay(gridGeometry{ready: true})
	steps := 0
	o.OnStep(func() { steps++ })
	o.Start()

	clock.Advance(599 * time.Millisecond)
	if o.StepIndex() != 0 {
		t.Fatalf("step = %d before first duration elapsed", o.StepIndex())
	}
	clock.Advance(time.Millisecond)
	if o.StepIndex() != 1 {
		t.Fatalf("step = %d, want 1", o.StepIndex())
	}

	clock.Advance(Cycle() - 600*time.Millisecond)
	if o.StepIndex() != 0 {
		t.Errorf("step = %d after one cycle, want 0", o.StepIndex())
	}
	if steps != len(Script) {
		t.Errorf("OnStep called %d times, want %d", steps, len(Script))
	}
}

func TestOverlayFrames(t *testing.T) {
	o, clock := newTestOverlay(gridGeometry{ready: true})
	o.Start()

	f := o.Current()
	if !f.Visible || f.Highlight != gesture.Center || f.Label != "●" {
		t.Fatalf("first frame = %+v", f)
	}
	if f.CursorX != 15 || f.CursorY != 7 {
		t.Errorf("cursor = (%d,%d), want (15,7)", f.CursorX, f.CursorY)
	}

	clock.Advance(600 * time.Millisecond)
	f = o.Current()
	if f.Highlight != gesture.Up || f.HighlightRect != (Rect{X: 10, Y: 0, Width: 10, Height: 5}) {
		t.Errorf("up frame = %+v", f)
	}

	clock.Advance(700 * time.Millisecond)
	f = o.Current()
	if !f.Visible || !f.Hidden || f.Label != "" || !f.HighlightRect.Empty() {
		t.Errorf("pause frame = %+v", f)
	}
	if f.CursorX != 15 || f.CursorY != 7 {
		t.Errorf("pause cursor = (%d,%d), want center", f.CursorX, f.CursorY)
	}
}

func TestOverlayWithoutGeometry(t *testing.T) {
	o, _ := newTestOverlay(gridGeometry{ready: false})
	o.Start()
	if f := o.Current(); f.Visible {
		t.Errorf("frame without layout = %+v, want invisible", f)
	}

	o2, _ := newTestOverlay(nil)
	o2.Start()
	if f := o2.Current(); f.Visible {
		t.Errorf("frame with nil geometry = %+v", f)
	}
}

func TestOverlayDismiss(t *testing.T) {
	o, clock := newTestOverlay(gridGeometry{ready: true})
	dismissed := 0
	o.OnDismiss(func() { dismissed++ })

	if o.Dismiss() {
		t.Error("Dismiss on stopped overlay returned true")
	}

	o.Start()
	if !o.Dismiss() {
		t.Fatal("Dismiss returned false while running")
	}
	if o.Dismiss() {
		t.Error("second Dismiss returned true")
	}
	if dismissed != 1 {
		t.Errorf("OnDismiss called %d times, want 1", dismissed)
	}
	if o.Running() || o.Current().Visible {
		t.Error("overlay still visible after dismiss")
	}
	if clock.Pending() != 0 {
		t.Errorf("%d timers pending after dismiss", clock.Pending())
	}
}

func TestOverlayRestart(t *testing.T) {
	o, clock := newTestOverlay(gridGeometry{ready: true})
	o.Start()
	clock.Advance(1300 * time.Millisecond)
	if o.StepIndex() != 2 {
		t.Fatalf("step = %d, want 2", o.StepIndex())
	}

	o.Start()
	if o.StepIndex() != 0 || clock.Pending() != 1 {
		t.Errorf("restart: step %d, %d timers", o.StepIndex(), clock.Pending())
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}
	if !r.Contains(2, 3) || !r.Contains(5, 4) || r.Contains(6, 4) || r.Contains(2, 5) {
		t.Error("Contains bounds wrong")
	}
	if x, y := r.Center(); x != 4 || y != 4 {
		t.Errorf("Center = (%d,%d)", x, y)
	}
	if r.Empty() || !(Rect{}).Empty() {
		t.Error("Empty wrong")
	}
}
