// Package gesture turns primary-pointer motion into flick gestures.
//
// The package has two parts: a stateless direction classifier and a
// Tracker that follows one gesture at a time and resolves the
// tap / double-tap / drag ambiguity.
//
// # Directions
//
// A gesture is classified into one of the nine cells of a 3x3 grid,
// numbered in row-major order:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// Displacements below the threshold on both axes map to the center (4).
// Everything else is assigned to a compass octant by its angle:
//
//	dir := gesture.Classify(start, end, gesture.DefaultThreshold)
//
// # Tracker
//
// Tracker follows the Start, Move, End lifecycle of a gesture:
//
//	t := gesture.NewTracker(gesture.DefaultConfig(), gesture.SystemClock(), onDeferred)
//	t.Start(p0)
//	live := t.Move(p1) // live feedback only
//	res := t.End(p2)
//
// A drag is reported immediately. A tap is either a double tap (second
// tap inside the double-tap window, reported immediately) or a deferred
// single tap that matures after the single-tap delay unless another tap
// cancels it first. When the delay elapses the Tracker invokes its
// DeferredFunc with a token; the owner confirms the tap with Mature.
//
// # Thread Safety
//
// Tracker is not safe for concurrent use. The owner serializes every call,
// including the Mature call made from the deferred callback.
package gesture
