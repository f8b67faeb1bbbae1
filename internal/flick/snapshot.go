package flick

import (
	"github.com/dshills/flickpad/internal/input/gesture"
	"github.com/dshills/flickpad/internal/input/nav"
)

// Placeholder is the prompt shown while the text is empty.
const Placeholder = "入力した文字がここに表示されます"

// Snapshot is a read-only copy of the input state for rendering.
type Snapshot struct {
	Content nav.GridContent
	Roles   [nav.CellCount]nav.CellRole
	View    nav.ViewMode
	Mode    nav.InputMode

	// Live is the direction under the pointer, or NoDirection when idle.
	Live gesture.Direction
	// Flicking is true while a gesture is in progress.
	Flicking bool
	// PendingTap is true while a single tap waits to mature.
	PendingTap bool

	Text       string
	Onboarding bool

	// FontSize is the text size hint in rem.
	FontSize float64
}

// fontSteps maps a maximum character count to a size in rem.
var fontSteps = []struct {
	max  int
	size float64
}{
	{10, 2.0},
	{20, 1.8},
	{30, 1.6},
	{40, 1.4},
	{50, 1.2},
}

// FontSize shrinks the text as it grows. Empty text is sized by the
// placeholder it shows instead.
func FontSize(text string) float64 {
	if text == "" {
		text = Placeholder
	}
	n := nav.Length(text)
	for _, s := range fontSteps {
		if n <= s.max {
			return s.size
		}
	}
	return 1.0
}
