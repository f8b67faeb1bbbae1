package flick

import (
	"sync"
	"testing"
	"time"

	"github.com/dshills/flickpad/internal/content"
	"github.com/dshills/flickpad/internal/input/gesture"
	"github.com/dshills/flickpad/internal/input/nav"
)

var origin = gesture.Point{X: 100, Y: 100}

func newTestInput(opts ...Option) (*Input, *gesture.ManualClock) {
	clock := gesture.NewManualClock(time.Unix(1000, 0))
	opts = append([]Option{WithClock(clock), WithOnboarding(false)}, opts...)
	return New(content.Default(), opts...), clock
}

func tap(in *Input) gesture.Result {
	in.GestureStart(origin)
	return in.GestureEnd(origin)
}

func flick(in *Input, dx, dy float64) gesture.Result {
	in.GestureStart(origin)
	end := gesture.Point{X: origin.X + dx, Y: origin.Y + dy}
	in.GestureMove(end)
	return in.GestureEnd(end)
}

func TestFlickEntersRowAndCommits(t *testing.T) {
	in, _ := newTestInput()

	// Flick up selects the か row
	res := flick(in, 0, -60)
	if res.Outcome != gesture.OutcomeDrag || res.Direction != gesture.Up {
		t.Fatalf("flick = %+v", res)
	}
	snap := in.Snapshot()
	if snap.View != nav.ViewHiraganaDetail || snap.Content.Cell(4) != "か" {
		t.Fatalf("after row flick: %v %v", snap.View, snap.Content)
	}

	// Flick left commits き
	flick(in, -60, 0)
	snap = in.Snapshot()
	if snap.Text != "き" || snap.View != nav.ViewBase {
		t.Errorf("text %q view %v, want き/base", snap.Text, snap.View)
	}
}

func TestSingleTapMatures(t *testing.T) {
	in, clock := newTestInput()
	flick(in, 60, 0) // は row

	res := tap(in)
	if res.Outcome != gesture.OutcomeTapDeferred {
		t.Fatalf("tap = %+v", res)
	}
	if !in.Snapshot().PendingTap {
		t.Error("PendingTap = false after tap")
	}

	clock.Advance(319 * time.Millisecond)
	if in.Snapshot().Text != "" {
		t.Fatal("tap matured early")
	}
	clock.Advance(time.Millisecond)
	if got := in.Snapshot().Text; got != "は" {
		t.Errorf("text = %q, want は", got)
	}
}

func TestDoubleTapDeletes(t *testing.T) {
	in, clock := newTestInput()
	flick(in, 0, -60)
	flick(in, -60, 0) // き
	flick(in, 0, -60)
	flick(in, 0, 60) // こ
	if in.Snapshot().Text != "きこ" {
		t.Fatalf("setup text = %q", in.Snapshot().Text)
	}

	tap(in)
	clock.Advance(299 * time.Millisecond)
	res := tap(in)
	if res.Outcome != gesture.OutcomeDoubleTap {
		t.Fatalf("second tap = %+v, want double tap", res)
	}
	if got := in.Snapshot().Text; got != "き" {
		t.Errorf("text = %q, want き", got)
	}

	// The first tap never matures
	clock.Advance(time.Second)
	if got := in.Snapshot().Text; got != "き" {
		t.Errorf("text after timers = %q, want き", got)
	}
	if clock.Pending() != 0 {
		t.Errorf("%d timers still pending", clock.Pending())
	}
}

func TestExplicitDoubleTap(t *testing.T) {
	in, clock := newTestInput()
	flick(in, 0, -60)
	flick(in, -60, 0) // き
	flick(in, 0, -60)
	flick(in, 0, 60) // こ

	var effects []nav.Effect
	in.OnTransition(func(tr nav.Transition) {
		effects = append(effects, tr.Effect)
	})

	// A pending tap is applied before the delete
	tap(in)
	in.DoubleTap()
	snap := in.Snapshot()
	if snap.Text != "き" || snap.View != nav.ViewHiraganaDetail {
		t.Fatalf("after DoubleTap: text %q view %v, want き in the な row", snap.Text, snap.View)
	}
	if len(effects) != 2 || effects[0] != nav.EffectEnterRow || effects[1] != nav.EffectDelete {
		t.Errorf("effects = %v, want [enter-row delete]", effects)
	}

	// Calls inside the double-tap window still delete once each
	clock.Advance(100 * time.Millisecond)
	in.DoubleTap()
	if got := in.Snapshot().Text; got != "" {
		t.Errorf("text = %q, want empty", got)
	}
	clock.Advance(time.Second)
	if clock.Pending() != 0 {
		t.Errorf("%d timers still pending", clock.Pending())
	}
}

func TestExplicitDoubleTapBlockedByOnboarding(t *testing.T) {
	in, _ := newTestInput(WithOnboarding(true))
	in.DoubleTap()
	if snap := in.Snapshot(); !snap.Onboarding || snap.Text != "" {
		t.Errorf("DoubleTap during onboarding changed state: %+v", snap)
	}
}

func TestTapsAtWindowAreSingle(t *testing.T) {
	in, clock := newTestInput()

	// Two taps 300ms apart are not a double tap
	tap(in)
	clock.Advance(300 * time.Millisecond)
	res := tap(in)
	if res.Outcome != gesture.OutcomeTapDeferred {
		t.Fatalf("second tap = %+v, want deferred", res)
	}

	// The first tap was replaced by the second
	clock.Advance(320 * time.Millisecond)
	snap := in.Snapshot()
	if snap.View != nav.ViewHiraganaDetail || snap.Content.Cell(4) != "な" {
		t.Errorf("after tap: view %v center %q, want な row", snap.View, snap.Content.Cell(4))
	}
	if snap.Text != "" {
		t.Errorf("text = %q, want empty", snap.Text)
	}
}

func TestOnboardingBlocksGestures(t *testing.T) {
	in, clock := newTestInput(WithOnboarding(true))

	if !in.Snapshot().Onboarding {
		t.Fatal("Onboarding = false")
	}
	if res := flick(in, 0, -60); res.Outcome != gesture.OutcomeNone {
		t.Errorf("flick during onboarding = %+v", res)
	}
	tap(in)
	clock.Advance(time.Second)
	if snap := in.Snapshot(); snap.View != nav.ViewBase || snap.Text != "" || snap.Flicking {
		t.Errorf("state changed during onboarding: %+v", snap)
	}

	in.DismissOnboarding()
	if in.Snapshot().Onboarding {
		t.Fatal("Onboarding still set after dismiss")
	}
	if res := flick(in, 0, -60); res.Outcome != gesture.OutcomeDrag {
		t.Errorf("flick after dismiss = %+v", res)
	}
}

func TestLiveDirection(t *testing.T) {
	in, _ := newTestInput()

	if in.Snapshot().Live != gesture.NoDirection {
		t.Error("Live set while idle")
	}
	in.GestureStart(origin)
	snap := in.Snapshot()
	if !snap.Flicking || snap.Live != gesture.Center {
		t.Errorf("after start: %+v", snap)
	}
	in.GestureMove(gesture.Point{X: 160, Y: 160})
	if got := in.Snapshot().Live; got != gesture.DownRight {
		t.Errorf("Live = %v, want down-right", got)
	}
	in.GestureEnd(gesture.Point{X: 160, Y: 160})
	if snap := in.Snapshot(); snap.Flicking || snap.Live != gesture.NoDirection {
		t.Errorf("after end: %+v", snap)
	}
}

func TestEndWithoutStartIgnored(t *testing.T) {
	in, clock := newTestInput()
	if res := in.GestureEnd(origin); res.Outcome != gesture.OutcomeNone {
		t.Errorf("end without start = %+v", res)
	}
	in.GestureMove(gesture.Point{X: 0, Y: 0})
	clock.Advance(time.Second)
	if snap := in.Snapshot(); snap.View != nav.ViewBase || snap.Text != "" {
		t.Errorf("state changed: %+v", snap)
	}
}

func TestCloseCancelsPendingTap(t *testing.T) {
	in, clock := newTestInput()
	tap(in)
	in.Close()

	clock.Advance(time.Second)
	if snap := in.Snapshot(); snap.View != nav.ViewBase {
		t.Errorf("tap fired after Close: view %v", snap.View)
	}
	if res := flick(in, 0, -60); res.Outcome != gesture.OutcomeNone {
		t.Errorf("gesture after Close = %+v", res)
	}
	in.Close()
}

func TestObservers(t *testing.T) {
	in, clock := newTestInput()

	var mu sync.Mutex
	var snaps []Snapshot
	var effects []nav.Effect
	in.OnChange(func(s Snapshot) {
		mu.Lock()
		snaps = append(snaps, s)
		mu.Unlock()
	})
	in.OnTransition(func(tr nav.Transition) {
		mu.Lock()
		effects = append(effects, tr.Effect)
		mu.Unlock()
	})

	flick(in, 0, -60) // start, move, end
	tap(in)           // start, end
	clock.Advance(320 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	want := []nav.Effect{nav.EffectEnterRow, nav.EffectAppend}
	if len(effects) != len(want) {
		t.Fatalf("effects = %v, want %v", effects, want)
	}
	for i := range want {
		if effects[i] != want[i] {
			t.Errorf("effect %d = %v, want %v", i, effects[i], want[i])
		}
	}
	if len(snaps) != 6 {
		t.Errorf("%d snapshots, want 6", len(snaps))
	}
	if last := snaps[len(snaps)-1]; last.Text != "か" {
		t.Errorf("last snapshot text = %q", last.Text)
	}
}

func TestSetTables(t *testing.T) {
	in, _ := newTestInput()
	flick(in, 0, -60)

	tables := content.Default()
	tables.Base[1] = "さ"
	in.SetTables(tables)

	snap := in.Snapshot()
	if snap.View != nav.ViewBase || snap.Content.Cell(1) != "さ" {
		t.Errorf("after SetTables: %v %v", snap.View, snap.Content)
	}
}

func TestConcurrentTapAndTimer(t *testing.T) {
	in := New(content.Default(), WithOnboarding(false), WithGestureConfig(gesture.Config{
		SingleTapDelay: time.Millisecond,
	}))
	defer in.Close()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				tap(in)
				_ = in.Snapshot()
			}
		}()
	}
	wg.Wait()
}

func TestFontSize(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{1, 2.0},
		{10, 2.0},
		{11, 1.8},
		{20, 1.8},
		{21, 1.6},
		{30, 1.6},
		{40, 1.4},
		{41, 1.2},
		{50, 1.2},
		{51, 1.0},
	}
	for _, tt := range tests {
		text := ""
		for i := 0; i < tt.n; i++ {
			text += "あ"
		}
		if got := FontSize(text); got != tt.want {
			t.Errorf("FontSize(%d chars) = %v, want %v", tt.n, got, tt.want)
		}
	}

	// Placeholder has 16 characters
	if got := FontSize(""); got != 1.8 {
		t.Errorf("FontSize(\"\") = %v, want 1.8", got)
	}
	if got := FontSize("が"); got != 2.0 {
		t.Errorf("FontSize(voiced kana) = %v", got)
	}
}
