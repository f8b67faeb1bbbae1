package app

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dshills/flickpad/internal/input/gesture"
	"github.com/dshills/flickpad/internal/input/nav"
)

// effectCount sizes the per-effect transition counters.
const effectCount = int(nav.EffectEnterCategory) + 1

// Metrics tracks rendering and input counters for one run.
type Metrics struct {
	// Frame timing
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMaxNs   atomic.Int64

	// Input handling
	eventCount  atomic.Uint64
	drags       atomic.Uint64
	doubleTaps  atomic.Uint64
	tapsPending atomic.Uint64

	// Navigation
	transitions [effectCount]atomic.Uint64

	// Content reloads
	reloads      atomic.Uint64
	reloadErrors atomic.Uint64

	startTime time.Time
	now       func() time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
		now:       time.Now,
	}
}

// RecordFrame records the time taken to draw one frame.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)

	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordEvent counts a backend event handled by the loop.
func (m *Metrics) RecordEvent() {
	m.eventCount.Add(1)
}

// RecordGesture counts a finished gesture by outcome.
func (m *Metrics) RecordGesture(o gesture.Outcome) {
	switch o {
	case gesture.OutcomeDrag:
		m.drags.Add(1)
	case gesture.OutcomeDoubleTap:
		m.doubleTaps.Add(1)
	case gesture.OutcomeTapDeferred:
		m.tapsPending.Add(1)
	}
}

// RecordTransition counts a state machine transition by effect.
func (m *Metrics) RecordTransition(e nav.Effect) {
	if int(e) < effectCount {
		m.transitions[e].Add(1)
	}
}

// RecordReload counts a content file reload.
func (m *Metrics) RecordReload(ok bool) {
	if ok {
		m.reloads.Add(1)
		return
	}
	m.reloadErrors.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frames := m.frameCount.Load()
	var avg time.Duration
	if frames > 0 {
		avg = time.Duration(m.frameTotalNs.Load() / int64(frames))
	}

	s := MetricsSnapshot{
		Uptime:       m.now().Sub(m.startTime),
		Frames:       frames,
		AvgFrame:     avg,
		MaxFrame:     time.Duration(m.frameMaxNs.Load()),
		Events:       m.eventCount.Load(),
		Drags:        m.drags.Load(),
		DoubleTaps:   m.doubleTaps.Load(),
		Taps:         m.tapsPending.Load(),
		Transitions:  make(map[nav.Effect]uint64),
		Reloads:      m.reloads.Load(),
		ReloadErrors: m.reloadErrors.Load(),
	}
	for i := range m.transitions {
		if n := m.transitions[i].Load(); n > 0 {
			s.Transitions[nav.Effect(i)] = n
		}
	}
	return s
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	Frames       uint64
	AvgFrame     time.Duration
	MaxFrame     time.Duration
	Events       uint64
	Drags        uint64
	DoubleTaps   uint64
	Taps         uint64
	Transitions  map[nav.Effect]uint64
	Reloads      uint64
	ReloadErrors uint64
}

// Appended returns how many characters or phrases were committed.
func (s MetricsSnapshot) Appended() uint64 {
	return s.Transitions[nav.EffectAppend]
}

// String summarizes the snapshot on one line.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("uptime=%s frames=%d avg=%s max=%s events=%d drags=%d taps=%d doubletaps=%d appended=%d reloads=%d/%d",
		s.Uptime.Round(time.Millisecond), s.Frames, s.AvgFrame, s.MaxFrame, s.Events,
		s.Drags, s.Taps, s.DoubleTaps, s.Appended(), s.Reloads, s.Reloads+s.ReloadErrors)
}
