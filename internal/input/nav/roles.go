package nav

// CellRole is how the renderer should present a cell.
type CellRole uint8

const (
	// RoleEmpty is an inactive cell.
	RoleEmpty CellRole = iota
	// RoleRow is a base-view row selector.
	RoleRow
	// RoleCharacter is a selectable character, phrase or category.
	RoleCharacter
	// RoleBack returns one level.
	RoleBack
	// RoleDelete removes the last character.
	RoleDelete
	// RoleTemplateSwitch enters template mode.
	RoleTemplateSwitch
	// RoleFreeInput returns to free input.
	RoleFreeInput
	// RoleClearAll empties the text.
	RoleClearAll
)

// String returns a string representation of the role.
func (r CellRole) String() string {
	switch r {
	case RoleRow:
		return "row"
	case RoleCharacter:
		return "character"
	case RoleBack:
		return "back"
	case RoleDelete:
		return "delete"
	case RoleTemplateSwitch:
		return "template-switch"
	case RoleFreeInput:
		return "free-input"
	case RoleClearAll:
		return "clear-all"
	default:
		return "empty"
	}
}

// CellRole returns the role of cell i in the current view.
func (m *Machine) CellRole(i int) CellRole {
	switch m.view {
	case ViewHiraganaDetail, ViewTemplateDetail:
		switch i {
		case int(cellBack):
			return RoleBack
		case int(cellDelete):
			return RoleDelete
		case int(cellTemplateSwitch):
			if m.view == ViewHiraganaDetail {
				return RoleTemplateSwitch
			}
		}
	case ViewTemplateCategory:
		if i == int(cellClearAll) {
			return RoleClearAll
		}
		if !m.content.Blank(i) && m.content.Cell(i) == m.tables.FreeInputLabel {
			return RoleFreeInput
		}
	}

	if m.content.Blank(i) {
		return RoleEmpty
	}
	if m.view == ViewBase {
		return RoleRow
	}
	return RoleCharacter
}

// Roles returns the role of every cell.
func (m *Machine) Roles() [CellCount]CellRole {
	var roles [CellCount]CellRole
	for i := range roles {
		roles[i] = m.CellRole(i)
	}
	return roles
}
