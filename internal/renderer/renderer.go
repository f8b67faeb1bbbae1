package renderer

import (
	"strings"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/dshills/flickpad/internal/config"
	"github.com/dshills/flickpad/internal/flick"
	"github.com/dshills/flickpad/internal/input/nav"
	"github.com/dshills/flickpad/internal/onboarding"
	"github.com/dshills/flickpad/internal/renderer/backend"
	"github.com/dshills/flickpad/internal/renderer/core"
)

// Screen labels.
const (
	FreeModeLabel     = "自由入力モード"
	TemplateModeLabel = "定型文モード"
	TooSmallMessage   = "端末を大きくしてください"
	HelpMessage       = "フリック: 選択  ダブルタップ: 1文字削除  q: 終了"

	backLabel     = "↩︎"
	deleteLabel   = "🗑"
	templateLabel = "定型文"
	clearLabel    = "全削除"
	rowSuffix     = "行"
	ellipsis      = "…"
)

// Renderer draws snapshots of the flick input. It is safe for concurrent
// use; the layout is replaced on Resize.
type Renderer struct {
	mu      sync.RWMutex
	backend backend.Backend
	theme   Theme
	pointer config.PointerConfig
	layout  Layout
	frames  uint64
}

// New creates a renderer sized to the backend.
func New(b backend.Backend, theme Theme, pointer config.PointerConfig) *Renderer {
	w, h := b.Size()
	return &Renderer{
		backend: b,
		theme:   theme,
		pointer: pointer,
		layout:  NewLayout(w, h, pointer),
	}
}

// Resize recomputes the layout.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.layout = NewLayout(width, height, r.pointer)
}

// Layout returns the current layout.
func (r *Renderer) Layout() Layout {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.layout
}

// CellRect implements onboarding.Geometry over the current layout.
func (r *Renderer) CellRect(i int) (onboarding.Rect, bool) {
	return r.Layout().CellRect(i)
}

// Frames returns the number of frames drawn.
func (r *Renderer) Frames() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frames
}

// Render draws a full frame and shows it.
func (r *Renderer) Render(snap flick.Snapshot, frame onboarding.Frame) {
	r.mu.Lock()
	l := r.layout
	r.frames++
	r.mu.Unlock()

	b := r.backend
	b.Clear()
	b.HideCursor()

	if l.Width > 0 && l.Height > 0 {
		r.drawMode(l, snap)
		r.drawTextBox(l, snap)
		if l.TooSmall() {
			r.drawCentered(l.Footer, TooSmallMessage, r.theme.Message)
		} else {
			r.drawGrid(l, snap)
			if snap.Onboarding {
				r.drawOnboarding(l, snap, frame)
			} else {
				r.drawCentered(l.Footer, HelpMessage, r.theme.Placeholder)
			}
		}
	}

	b.Show()
}

func (r *Renderer) drawMode(l Layout, snap flick.Snapshot) {
	label := FreeModeLabel
	if snap.Mode == nav.ModeTemplate {
		label = TemplateModeLabel
	}
	r.drawString(l.Mode.Left+1, l.Mode.Top, label, r.theme.Message, l.Mode.Width()-1)
}

func (r *Renderer) drawTextBox(l Layout, snap flick.Snapshot) {
	box := l.TextBox
	if box.Height() < 3 || box.Width() < 4 {
		return
	}
	r.drawBorder(box, r.theme.Border)

	inner := box.Inset(1, 2, 1, 2)
	if snap.Onboarding {
		r.drawCentered(inner, onboarding.Message, r.theme.Message)
		return
	}
	if snap.Text == "" {
		r.drawString(inner.Left, inner.Top, fitHead(flick.Placeholder, inner.Width()), r.theme.Placeholder, inner.Width())
		return
	}

	style, spacing := r.textStyle(snap.FontSize)
	text := fitTail(spaced(snap.Text, spacing), inner.Width())
	r.drawString(inner.Left, inner.Top, text, style, inner.Width())
}

// textStyle maps the font size hint to what a terminal can vary: short
// text is bold and letter-spaced, long text is plain.
func (r *Renderer) textStyle(size float64) (core.Style, int) {
	switch {
	case size >= 2.0:
		return r.theme.Text.Bold(), 1
	case size >= 1.6:
		return r.theme.Text.Bold(), 0
	default:
		return r.theme.Text, 0
	}
}

func (r *Renderer) drawGrid(l Layout, snap flick.Snapshot) {
	hover := -1
	if snap.Flicking && !snap.Onboarding && snap.Live.Valid() {
		hover = int(snap.Live)
	}

	for i := 0; i < nav.CellCount; i++ {
		rect, _ := l.Cell(i)
		role := snap.Roles[i]
		style := r.roleStyle(role)
		if i == hover {
			style = r.theme.Hover
		}
		r.drawCell(rect, CellLabel(snap.Content.Cell(i), role), style)
		if i == hover {
			r.drawString(rect.Left, rect.Top, snap.Live.Arrow(), r.theme.Arrow, rect.Width())
		}
	}
}

func (r *Renderer) roleStyle(role nav.CellRole) core.Style {
	switch role {
	case nav.RoleEmpty:
		return r.theme.Empty
	case nav.RoleRow, nav.RoleCharacter:
		return r.theme.Cell
	default:
		return r.theme.Special
	}
}

// CellLabel returns the text drawn in a cell with the given role.
func CellLabel(content string, role nav.CellRole) string {
	switch role {
	case nav.RoleEmpty:
		return ""
	case nav.RoleRow:
		return content + rowSuffix
	case nav.RoleBack:
		return backLabel
	case nav.RoleDelete:
		return deleteLabel
	case nav.RoleTemplateSwitch:
		return templateLabel
	case nav.RoleClearAll:
		return clearLabel
	default:
		return content
	}
}

func (r *Renderer) drawOnboarding(l Layout, snap flick.Snapshot, frame onboarding.Frame) {
	r.drawCentered(l.Footer, onboarding.SubMessage, r.theme.Message)
	if !frame.Visible || frame.Hidden {
		return
	}

	hr := frame.HighlightRect
	if !hr.Empty() && frame.Highlight.Valid() {
		rect := core.RectFromSize(hr.Y, hr.X, hr.Height, hr.Width)
		i := int(frame.Highlight)
		r.drawCell(rect, CellLabel(snap.Content.Cell(i), snap.Roles[i]), r.theme.Hover)
	}
	r.drawString(frame.CursorX, frame.CursorY, frame.Label, r.theme.Cursor, l.Width-frame.CursorX)
}

// drawCell fills rect and centers label in it.
func (r *Renderer) drawCell(rect core.ScreenRect, label string, style core.Style) {
	r.backend.Fill(rect, core.Cell{Rune: ' ', Width: 1, Style: style})
	inner := rect.Inset(0, 1, 0, 1)
	if inner.IsEmpty() {
		return
	}
	r.drawCentered(inner, fitHead(label, inner.Width()), style)
}

// drawCentered draws s centered in the middle row of rect.
func (r *Renderer) drawCentered(rect core.ScreenRect, s string, style core.Style) {
	if rect.IsEmpty() || s == "" {
		return
	}
	s = fitHead(s, rect.Width())
	x := rect.Left + (rect.Width()-core.StringWidth(s))/2
	y := rect.Top + (rect.Height()-1)/2
	r.drawString(x, y, s, style, rect.Right-x)
}

// drawString draws s from x, y without exceeding maxWidth columns.
// Returns the number of columns drawn.
func (r *Renderer) drawString(x, y int, s string, style core.Style, maxWidth int) int {
	drawn := 0
	for _, c := range core.CellsFromString(s, style) {
		if c.IsContinuation() {
			continue
		}
		if drawn+c.Width > maxWidth {
			break
		}
		r.backend.SetCell(x+drawn, y, c)
		for i := 1; i < c.Width; i++ {
			r.backend.SetCell(x+drawn+i, y, core.ContinuationCell(style))
		}
		drawn += c.Width
	}
	return drawn
}

func (r *Renderer) drawBorder(rect core.ScreenRect, style core.Style) {
	set := func(x, y int, ch rune) {
		r.backend.SetCell(x, y, core.Cell{Rune: ch, Width: 1, Style: style})
	}
	right, bottom := rect.Right-1, rect.Bottom-1
	for x := rect.Left + 1; x < right; x++ {
		set(x, rect.Top, '─')
		set(x, bottom, '─')
	}
	for y := rect.Top + 1; y < bottom; y++ {
		set(rect.Left, y, '│')
		set(right, y, '│')
	}
	set(rect.Left, rect.Top, '┌')
	set(right, rect.Top, '┐')
	set(rect.Left, bottom, '└')
	set(right, bottom, '┘')
}

// spaced inserts n spaces between graphemes.
func spaced(s string, n int) string {
	if n <= 0 {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	first := true
	for g.Next() {
		if !first {
			b.WriteString(strings.Repeat(" ", n))
		}
		b.WriteString(g.Str())
		first = false
	}
	return b.String()
}

// fitHead keeps the start of s, ending with an ellipsis when cut.
func fitHead(s string, width int) string {
	if core.StringWidth(s) <= width {
		return s
	}
	if width <= 0 {
		return ""
	}
	limit := width - core.StringWidth(ellipsis)
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > limit {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	return b.String() + ellipsis
}

// fitTail keeps the end of s, where new text appears, starting with an
// ellipsis when cut.
func fitTail(s string, width int) string {
	if core.StringWidth(s) <= width {
		return s
	}
	if width <= 0 {
		return ""
	}
	var clusters []string
	var widths []int
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
		widths = append(widths, g.Width())
	}

	limit := width - core.StringWidth(ellipsis)
	used := 0
	start := len(clusters)
	for start > 0 && used+widths[start-1] <= limit {
		start--
		used += widths[start]
	}
	return ellipsis + strings.Join(clusters[start:], "")
}
