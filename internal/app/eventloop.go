package app

import (
	"errors"
	"runtime/debug"
	"time"

	"github.com/dshills/flickpad/internal/input/gesture"
	"github.com/dshills/flickpad/internal/renderer/backend"
)

// keyFlickSpan is how far, in thresholds, a keyboard flick travels.
const keyFlickSpan = 2

// numpad maps digit keys to directions laid out like a phone keypad
// seen from above: 7 8 9 on top.
var numpad = map[rune]gesture.Direction{
	'7': gesture.UpLeft, '8': gesture.Up, '9': gesture.UpRight,
	'4': gesture.Left, '5': gesture.Center, '6': gesture.Right,
	'1': gesture.DownLeft, '2': gesture.Down, '3': gesture.DownRight,
}

// eventLoop draws the first frame and handles backend events until quit.
// All drawing happens on this goroutine.
func (app *Application) eventLoop() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
			app.Logger().Error("event loop: %v", r)
		}
	}()

	app.render()

	for {
		select {
		case <-app.done:
			return nil
		default:
		}

		ev := app.backend.PollEvent()
		app.metrics.RecordEvent()

		if err := app.handleBackendEvent(ev); err != nil {
			switch {
			case errors.Is(err, ErrQuit):
				app.doneOnce.Do(func() { close(app.done) })
				return nil
			case errors.Is(err, ErrBackendClosed):
				select {
				case <-app.done:
					return nil
				default:
					return err
				}
			default:
				return err
			}
		}
	}
}

// handleBackendEvent processes a single backend event.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.handleResize(ev.Width, ev.Height)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		app.handleMouseEvent(ev)
	case backend.EventInterrupt:
		app.render()
	case backend.EventClosed:
		return ErrBackendClosed
	}
	return nil
}

// handleResize recomputes the layout and redraws.
func (app *Application) handleResize(width, height int) {
	if r := app.Renderer(); r != nil {
		r.Resize(width, height)
	}
	app.render()
}

// handleKeyEvent quits on q, Esc or Ctrl-C, redraws on Ctrl-L, and turns
// the numeric keypad, arrows, Enter and Backspace into gestures.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyCtrlL:
		app.render()
		return nil
	case backend.KeyUp:
		app.keyFlick(gesture.Up)
	case backend.KeyDown:
		app.keyFlick(gesture.Down)
	case backend.KeyLeft:
		app.keyFlick(gesture.Left)
	case backend.KeyRight:
		app.keyFlick(gesture.Right)
	case backend.KeyEnter:
		app.keyFlick(gesture.Center)
	case backend.KeyBackspace, backend.KeyDelete:
		app.keyDoubleTap()
	case backend.KeyRune:
		if ev.Rune == 'q' {
			return ErrQuit
		}
		if d, ok := numpad[ev.Rune]; ok {
			app.keyFlick(d)
		} else if ev.Rune == ' ' {
			app.keyFlick(gesture.Center)
		}
	}
	return nil
}

// keyFlick replays a flick toward d through the same gesture path as the
// mouse. Center is a tap.
func (app *Application) keyFlick(d gesture.Direction) {
	span := app.input.Config().Threshold * keyFlickSpan
	col := float64(int(d)%3 - 1)
	row := float64(int(d)/3 - 1)

	start := gesture.Point{}
	end := gesture.Point{X: col * span, Y: row * span}
	app.input.GestureStart(start)
	app.input.GestureMove(end)
	app.endGesture(end)
}

// keyDoubleTap deletes exactly once per key press.
func (app *Application) keyDoubleTap() {
	if app.dismissOnboarding() {
		return
	}
	app.input.DoubleTap()
	app.metrics.RecordGesture(gesture.OutcomeDoubleTap)
}

// handleMouseEvent turns button state into gesture start, move and end.
// Button changes are reported as press and release; motion with the
// button held is a move. Other buttons and the wheel are ignored.
func (app *Application) handleMouseEvent(ev backend.Event) {
	r := app.Renderer()
	if r == nil {
		return
	}
	p := r.Layout().Point(ev.MouseX, ev.MouseY)

	switch {
	case ev.MouseButton == backend.MouseLeft && !app.pressed:
		app.pressed = true
		app.input.GestureStart(p)
	case ev.MouseButton == backend.MouseLeft:
		app.input.GestureMove(p)
	case ev.MouseButton == backend.MouseNone && app.pressed:
		app.pressed = false
		app.endGesture(p)
	}
}

// endGesture finishes a gesture. While onboarding is shown the gesture is
// ignored and the release dismisses the overlay instead.
func (app *Application) endGesture(p gesture.Point) {
	res := app.input.GestureEnd(p)
	app.metrics.RecordGesture(res.Outcome)
	app.dismissOnboarding()
}

// dismissOnboarding hides the overlay if it is shown and reports whether
// it was.
func (app *Application) dismissOnboarding() bool {
	if !app.input.Snapshot().Onboarding {
		return false
	}
	if !app.overlay.Dismiss() {
		app.input.DismissOnboarding()
	}
	return true
}

// render draws the current state.
func (app *Application) render() {
	r := app.Renderer()
	if r == nil {
		return
	}
	start := time.Now()
	r.Render(app.input.Snapshot(), app.overlay.Current())
	app.metrics.RecordFrame(time.Since(start))
}
