package gesture

import (
	"math"
	"strconv"
)

// DefaultThreshold is the per-axis displacement below which a gesture is a tap.
const DefaultThreshold = 30.0

// Point is a pointer coordinate. Y grows downward, as on screens.
type Point struct {
	X float64
	Y float64
}

// Sub returns the displacement from other to p.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Direction is a grid cell index in row-major order.
type Direction int

const (
	// NoDirection means no gesture is in progress.
	NoDirection Direction = -1

	UpLeft    Direction = 0
	Up        Direction = 1
	UpRight   Direction = 2
	Left      Direction = 3
	Center    Direction = 4
	Right     Direction = 5
	DownLeft  Direction = 6
	Down      Direction = 7
	DownRight Direction = 8
)

// Valid reports whether d is a cell index in [0, 8].
func (d Direction) Valid() bool {
	return d >= UpLeft && d <= DownRight
}

// String returns the compass name of the direction.
func (d Direction) String() string {
	switch d {
	case NoDirection:
		return "none"
	case UpLeft:
		return "up-left"
	case Up:
		return "up"
	case UpRight:
		return "up-right"
	case Left:
		return "left"
	case Center:
		return "center"
	case Right:
		return "right"
	case DownLeft:
		return "down-left"
	case Down:
		return "down"
	case DownRight:
		return "down-right"
	default:
		return "direction(" + strconv.Itoa(int(d)) + ")"
	}
}

var arrows = [9]string{"↖", "↑", "↗", "←", "●", "→", "↙", "↓", "↘"}

// Arrow returns the feedback glyph drawn over the hovered cell.
// Returns "" for invalid directions.
func (d Direction) Arrow() string {
	if !d.Valid() {
		return ""
	}
	return arrows[d]
}

// IsTap reports whether the displacement between start and end stays
// below threshold on both axes.
func IsTap(start, end Point, threshold float64) bool {
	delta := end.Sub(start)
	return math.Abs(delta.X) < threshold && math.Abs(delta.Y) < threshold
}

// Classify maps a start and end point to a grid cell.
// Returns Center for taps, otherwise the octant the motion points into.
func Classify(start, end Point, threshold float64) Direction {
	if IsTap(start, end, threshold) {
		return Center
	}

	delta := end.Sub(start)
	angle := math.Atan2(delta.Y, delta.X) * 180 / math.Pi

	switch {
	case angle >= -22.5 && angle < 22.5:
		return Right
	case angle >= 22.5 && angle < 67.5:
		return DownRight
	case angle >= 67.5 && angle < 112.5:
		return Down
	case angle >= 112.5 && angle < 157.5:
		return DownLeft
	case angle >= 157.5 || angle < -157.5:
		return Left
	case angle >= -157.5 && angle < -112.5:
		return UpLeft
	case angle >= -112.5 && angle < -67.5:
		return Up
	case angle >= -67.5 && angle < -22.5:
		return UpRight
	}

	// NaN input only.
	return Center
}
