package nav

import "github.com/dshills/flickpad/internal/input/gesture"

// Special cells overlaid on the grid.
const (
	cellBack           = gesture.UpLeft
	cellDelete         = gesture.UpRight
	cellTemplateSwitch = gesture.DownLeft
	cellClearAll       = gesture.DownRight
)

// Effect names what a transition did.
type Effect uint8

const (
	// EffectNone is a no-op self transition.
	EffectNone Effect = iota
	// EffectEnterRow opened a hiragana row.
	EffectEnterRow
	// EffectBack returned one level.
	EffectBack
	// EffectDelete removed the last character.
	EffectDelete
	// EffectClear emptied the text.
	EffectClear
	// EffectAppend committed a character or phrase.
	EffectAppend
	// EffectSwitchTemplate entered template mode.
	EffectSwitchTemplate
	// EffectSwitchFree returned to free input.
	EffectSwitchFree
	// EffectEnterCategory opened a template category.
	EffectEnterCategory
)

// String returns a string representation of the effect.
func (e Effect) String() string {
	switch e {
	case EffectEnterRow:
		return "enter-row"
	case EffectBack:
		return "back"
	case EffectDelete:
		return "delete"
	case EffectClear:
		return "clear"
	case EffectAppend:
		return "append"
	case EffectSwitchTemplate:
		return "switch-template"
	case EffectSwitchFree:
		return "switch-free"
	case EffectEnterCategory:
		return "enter-category"
	default:
		return "none"
	}
}

// Transition records one step of the machine.
type Transition struct {
	From      ViewMode
	To        ViewMode
	Direction gesture.Direction
	Effect    Effect

	// Value is the committed text for EffectAppend, or the opened
	// row/category for EffectEnterRow and EffectEnterCategory.
	Value string
}

// Machine is the navigation state machine.
type Machine struct {
	tables  Tables
	view    ViewMode
	content GridContent
	text    string
	history History
}

// NewMachine creates a machine in the base view with empty text.
func NewMachine(tables Tables) *Machine {
	m := &Machine{tables: tables}
	m.reset(ModeFree)
	return m
}

// View returns the active view.
func (m *Machine) View() ViewMode {
	return m.view
}

// Mode returns the active input mode.
func (m *Machine) Mode() InputMode {
	return m.view.Mode()
}

// Content returns the visible grid.
func (m *Machine) Content() GridContent {
	return m.content
}

// Text returns the accumulated text.
func (m *Machine) Text() string {
	return m.text
}

// HistoryLen returns the depth of the back stack.
func (m *Machine) HistoryLen() int {
	return m.history.Len()
}

// Tables returns the content tables in use.
func (m *Machine) Tables() Tables {
	return m.tables
}

// SetTables swaps the content tables and resets to the current mode's
// initial view. The accumulated text is kept.
func (m *Machine) SetTables(tables Tables) {
	m.tables = tables
	m.reset(m.Mode())
}

// Tap performs the single-tap action: the center cell's selection.
func (m *Machine) Tap() Transition {
	return m.Select(gesture.Center)
}

// Select applies the transition for dir in the current view.
// Every direction is accepted; undefined selections are no-ops.
func (m *Machine) Select(dir gesture.Direction) Transition {
	tr := Transition{From: m.view, Direction: dir}
	if dir.Valid() {
		switch m.view {
		case ViewBase:
			m.selectBase(dir, &tr)
		case ViewHiraganaDetail:
			m.selectHiraganaDetail(dir, &tr)
		case ViewTemplateCategory:
			m.selectCategory(dir, &tr)
		case ViewTemplateDetail:
			m.selectTemplateDetail(dir, &tr)
		}
	}
	tr.To = m.view
	return tr
}

func (m *Machine) selectBase(dir gesture.Direction, tr *Transition) {
	base := m.tables.Base.Cell(int(dir))
	row, ok := m.tables.Row(base)
	if !ok {
		return
	}
	m.history.Push(m.content)
	m.content = row
	m.view = ViewHiraganaDetail
	tr.Effect = EffectEnterRow
	tr.Value = base
}

func (m *Machine) selectHiraganaDetail(dir gesture.Direction, tr *Transition) {
	switch dir {
	case cellBack:
		if m.back() {
			tr.Effect = EffectBack
		}
	case cellDelete:
		m.DeleteLast()
		tr.Effect = EffectDelete
	case cellTemplateSwitch:
		m.reset(ModeTemplate)
		tr.Effect = EffectSwitchTemplate
	default:
		char := m.content.Cell(int(dir))
		if m.commit(char) {
			tr.Effect = EffectAppend
			tr.Value = char
		}
	}
}

func (m *Machine) selectCategory(dir gesture.Direction, tr *Transition) {
	switch dir {
	case cellClearAll:
		m.ClearAll()
		tr.Effect = EffectClear
		return
	case cellBack:
		// Top of the template branch
		return
	}

	category := m.content.Cell(int(dir))
	if !isBlank(category) && category == m.tables.FreeInputLabel {
		m.reset(ModeFree)
		tr.Effect = EffectSwitchFree
		return
	}

	detail, ok := m.tables.Detail(category)
	if !ok {
		return
	}
	m.content = detail
	m.view = ViewTemplateDetail
	tr.Effect = EffectEnterCategory
	tr.Value = category
}

func (m *Machine) selectTemplateDetail(dir gesture.Direction, tr *Transition) {
	switch dir {
	case cellBack:
		m.content = m.tables.Categories
		m.view = ViewTemplateCategory
		tr.Effect = EffectBack
	case cellDelete:
		m.DeleteLast()
		tr.Effect = EffectDelete
	default:
		phrase := m.content.Cell(int(dir))
		if m.commit(phrase) {
			tr.Effect = EffectAppend
			tr.Value = phrase
		}
	}
}

// back restores the previous grid from history.
// Returns false when the history is empty.
func (m *Machine) back() bool {
	prev, ok := m.history.Pop()
	if !ok {
		return false
	}
	m.content = prev
	m.view = ViewBase
	return true
}

// commit appends s and resets to the mode's initial view.
// Blank cells are ignored.
func (m *Machine) commit(s string) bool {
	if isBlank(s) {
		return false
	}
	mode := m.Mode()
	m.text += s
	m.reset(mode)
	return true
}

// reset loads the initial view of mode and clears the history.
func (m *Machine) reset(mode InputMode) {
	m.history.Clear()
	m.view = mode.InitialView()
	if mode == ModeTemplate {
		m.content = m.tables.Categories
	} else {
		m.content = m.tables.Base
	}
}

// DeleteLast removes the last character of the text. No-op when empty.
func (m *Machine) DeleteLast() {
	m.text = TrimLast(m.text)
}

// ClearAll empties the text.
func (m *Machine) ClearAll() {
	m.text = ""
}
