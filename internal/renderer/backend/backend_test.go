package backend

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/flickpad/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	style := core.DefaultStyle().WithForeground(core.ColorWhite)
	cell := core.CellsFromString("X", style)[0]
	b.SetCell(10, 5, cell)

	got := b.GetCell(10, 5)
	if !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)

	empty := b.GetCell(-1, 0)
	if !empty.Equals(core.EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendFillAndClear(t *testing.T) {
	b := NewNullBackend(20, 10)
	b.Init()

	cell := core.CellsFromString(".", core.DefaultStyle())[0]
	b.Fill(core.RectFromSize(2, 3, 2, 4), cell)

	if got := b.Row(2); got != "   ....             " {
		t.Errorf("row 2 = %q", got)
	}
	if got := b.GetCell(0, 0); got.Equals(cell) {
		t.Error("cell outside rect should not be filled")
	}

	b.Clear()
	if got := b.GetCell(3, 2); !got.Equals(core.EmptyCell()) {
		t.Error("clear should reset all cells")
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(20, 10)
	b.Init()

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'q'})
	if ev := b.PollEvent(); ev.Type != EventKey || ev.Rune != 'q' {
		t.Errorf("PollEvent = %+v", ev)
	}

	b.Resize(40, 12)
	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 40 || ev.Height != 12 {
		t.Errorf("resize event = %+v", ev)
	}
	if w, h := b.Size(); w != 40 || h != 12 {
		t.Errorf("size after resize = %dx%d", w, h)
	}

	b.Shutdown()
	b.Shutdown()
	if ev := b.PollEvent(); ev.Type != EventClosed {
		t.Errorf("PollEvent after Shutdown = %v", ev.Type)
	}
}

func TestEventTypeString(t *testing.T) {
	tests := map[EventType]string{
		EventNone:      "none",
		EventKey:       "key",
		EventMouse:     "mouse",
		EventResize:    "resize",
		EventInterrupt: "interrupt",
		EventClosed:    "closed",
	}
	for et, want := range tests {
		if got := et.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", et, got, want)
		}
	}
}

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	sim.SetSize(30, 10)
	t.Cleanup(term.Shutdown)
	return term, sim
}

// pollTimeout polls in the background so a missing event fails the test
// instead of hanging it.
func pollTimeout(t *testing.T, term *Terminal) Event {
	t.Helper()
	ch := make(chan Event, 1)
	go func() { ch <- term.PollEvent() }()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestTerminalMouseEvents(t *testing.T) {
	term, sim := newSimTerminal(t)

	sim.InjectMouse(4, 6, tcell.ButtonPrimary, tcell.ModNone)
	ev := pollTimeout(t, term)
	for ev.Type == EventResize {
		ev = pollTimeout(t, term)
	}
	if ev.Type != EventMouse || ev.MouseX != 4 || ev.MouseY != 6 || ev.MouseButton != MouseLeft {
		t.Errorf("press = %+v", ev)
	}

	sim.InjectMouse(5, 6, tcell.ButtonNone, tcell.ModNone)
	ev = pollTimeout(t, term)
	if ev.Type != EventMouse || ev.MouseButton != MouseNone {
		t.Errorf("release = %+v", ev)
	}
}

func TestTerminalKeyEvents(t *testing.T) {
	term, sim := newSimTerminal(t)

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	sim.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	var keys []Event
	for len(keys) < 2 {
		ev := pollTimeout(t, term)
		if ev.Type == EventKey {
			keys = append(keys, ev)
		}
	}
	if keys[0].Key != KeyRune || keys[0].Rune != 'q' {
		t.Errorf("first key = %+v", keys[0])
	}
	if keys[1].Key != KeyCtrlC {
		t.Errorf("second key = %+v", keys[1])
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   tcell.Key
		want Key
	}{
		{tcell.KeyEnter, KeyEnter},
		{tcell.KeyBackspace, KeyBackspace},
		{tcell.KeyBackspace2, KeyBackspace},
		{tcell.KeyDelete, KeyDelete},
		{tcell.KeyLeft, KeyLeft},
		{tcell.KeyCtrlL, KeyCtrlL},
		// Keys without a flick meaning are not decoded
		{tcell.KeyHome, KeyNone},
		{tcell.KeyPgDn, KeyNone},
		{tcell.KeyF1, KeyNone},
	}
	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.want {
			t.Errorf("convertKey(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTerminalInterrupt(t *testing.T) {
	term, _ := newSimTerminal(t)

	term.PostEvent(Event{Type: EventInterrupt})
	ev := pollTimeout(t, term)
	for ev.Type == EventResize {
		ev = pollTimeout(t, term)
	}
	if ev.Type != EventInterrupt {
		t.Errorf("event = %v, want interrupt", ev.Type)
	}
}

func TestTerminalCellRoundTrip(t *testing.T) {
	term, _ := newSimTerminal(t)

	style := core.DefaultStyle().WithForeground(core.ColorFromRGB(10, 20, 30)).Bold()
	cells := core.CellsFromString("あ", style)
	for i, c := range cells {
		term.SetCell(2+i, 1, c)
	}
	term.Show()

	got := term.GetCell(2, 1)
	if got.Text() != "あ" {
		t.Errorf("text = %q", got.Text())
	}
	if !got.Style.Attributes.Has(core.AttrBold) {
		t.Error("bold lost")
	}
	if !got.Style.Foreground.Equals(style.Foreground) {
		t.Errorf("foreground = %s, want %s", got.Style.Foreground, style.Foreground)
	}
}

func TestStyleConversion(t *testing.T) {
	in := core.DefaultStyle().
		WithForeground(core.ColorFromRGB(1, 2, 3)).
		WithBackground(core.ColorFromRGB(4, 5, 6)).
		Reverse()

	out := convertTcellStyle(convertStyle(in))
	if !out.Equals(in) {
		t.Errorf("style round trip = %+v, want %+v", out, in)
	}

	if got := convertTcellStyle(convertStyle(core.DefaultStyle())); !got.Equals(core.DefaultStyle()) {
		t.Errorf("default style round trip = %+v", got)
	}
}
