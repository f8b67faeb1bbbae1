package renderer

import (
	"github.com/dshills/flickpad/internal/config"
	"github.com/dshills/flickpad/internal/input/gesture"
	"github.com/dshills/flickpad/internal/input/nav"
	"github.com/dshills/flickpad/internal/onboarding"
	"github.com/dshills/flickpad/internal/renderer/core"
)

// Layout sizes.
const (
	// headerRows is the mode label and the three-row text box.
	headerRows = 4
	// gapRows separates the text box from the grid.
	gapRows = 1
	// footerRows holds the message line.
	footerRows = 1

	// MinCellWidth fits a two-column glyph plus the 行 suffix.
	MinCellWidth = 4
	// MinCellHeight is one text row.
	MinCellHeight = 1

	// maxCellWidth keeps the grid compact on wide terminals.
	maxCellWidth = 24
)

// Layout is the screen geometry for one terminal size.
type Layout struct {
	Width, Height int

	// Mode is the row of the mode label.
	Mode core.ScreenRect
	// TextBox is the bordered text box including its border.
	TextBox core.ScreenRect
	// Grid is the 3x3 grid, or empty when the terminal is too small.
	Grid core.ScreenRect
	// Footer is the message row.
	Footer core.ScreenRect

	cellWidth, cellHeight int
	pointer               config.PointerConfig
}

// NewLayout computes the layout for a width x height terminal.
func NewLayout(width, height int, pointer config.PointerConfig) Layout {
	if pointer.UnitsPerColumn <= 0 {
		pointer.UnitsPerColumn = 8
	}
	if pointer.UnitsPerRow <= 0 {
		pointer.UnitsPerRow = 16
	}

	l := Layout{Width: width, Height: height, pointer: pointer}
	if width <= 0 || height <= 0 {
		return l
	}

	l.Mode = core.RectFromSize(0, 0, min(1, height), width)
	l.TextBox = core.RectFromSize(1, 0, max(0, min(3, height-1)), width)
	l.Footer = core.RectFromSize(height-1, 0, 1, width)

	gridTop := headerRows + gapRows
	avail := height - gridTop - footerRows
	cellWidth := min(width/3, maxCellWidth)
	// Terminal cells are about twice as tall as wide
	cellHeight := min(avail/3, cellWidth/2)
	if cellWidth < MinCellWidth || cellHeight < MinCellHeight {
		return l
	}

	l.cellWidth, l.cellHeight = cellWidth, cellHeight
	left := (width - 3*cellWidth) / 2
	l.Grid = core.RectFromSize(gridTop, left, 3*cellHeight, 3*cellWidth)
	return l
}

// TooSmall returns true when the grid does not fit.
func (l Layout) TooSmall() bool {
	return l.Grid.IsEmpty()
}

// Cell returns the screen rectangle of grid cell i.
func (l Layout) Cell(i int) (core.ScreenRect, bool) {
	if l.TooSmall() || i < 0 || i >= nav.CellCount {
		return core.ScreenRect{}, false
	}
	row, col := i/3, i%3
	return core.RectFromSize(
		l.Grid.Top+row*l.cellHeight,
		l.Grid.Left+col*l.cellWidth,
		l.cellHeight,
		l.cellWidth,
	), true
}

// CellRect implements onboarding.Geometry.
func (l Layout) CellRect(i int) (onboarding.Rect, bool) {
	r, ok := l.Cell(i)
	if !ok {
		return onboarding.Rect{}, false
	}
	return onboarding.Rect{X: r.Left, Y: r.Top, Width: r.Width(), Height: r.Height()}, true
}

// CellAt returns the grid cell under screen position x, y, or -1.
func (l Layout) CellAt(x, y int) int {
	if l.TooSmall() || !l.Grid.Contains(x, y) {
		return -1
	}
	return (y-l.Grid.Top)/l.cellHeight*3 + (x-l.Grid.Left)/l.cellWidth
}

// Point converts screen position x, y to gesture units, measured at the
// middle of the terminal cell.
func (l Layout) Point(x, y int) gesture.Point {
	return gesture.Point{
		X: (float64(x) + 0.5) * l.pointer.UnitsPerColumn,
		Y: (float64(y) + 0.5) * l.pointer.UnitsPerRow,
	}
}
