package nav

// ViewMode identifies what the grid is showing.
type ViewMode uint8

const (
	// ViewBase shows the hiragana row selectors.
	ViewBase ViewMode = iota
	// ViewHiraganaDetail shows the characters of one row.
	ViewHiraganaDetail
	// ViewTemplateCategory shows the phrase categories.
	ViewTemplateCategory
	// ViewTemplateDetail shows the phrases of one category.
	ViewTemplateDetail
)

// String returns a string representation of the view.
func (v ViewMode) String() string {
	switch v {
	case ViewBase:
		return "base"
	case ViewHiraganaDetail:
		return "hiragana-detail"
	case ViewTemplateCategory:
		return "template-category"
	case ViewTemplateDetail:
		return "template-detail"
	default:
		return "unknown"
	}
}

// Mode returns the input mode the view belongs to.
func (v ViewMode) Mode() InputMode {
	switch v {
	case ViewTemplateCategory, ViewTemplateDetail:
		return ModeTemplate
	default:
		return ModeFree
	}
}

// IsDetail returns true for the two leaf views.
func (v ViewMode) IsDetail() bool {
	return v == ViewHiraganaDetail || v == ViewTemplateDetail
}

// InputMode is the top-level content toggle.
type InputMode uint8

const (
	// ModeFree is hiragana input.
	ModeFree InputMode = iota
	// ModeTemplate is preset phrase input.
	ModeTemplate
)

// String returns a string representation of the mode.
func (m InputMode) String() string {
	switch m {
	case ModeFree:
		return "free"
	case ModeTemplate:
		return "template"
	default:
		return "unknown"
	}
}

// InitialView returns the view a mode resets to after a commit.
func (m InputMode) InitialView() ViewMode {
	if m == ModeTemplate {
		return ViewTemplateCategory
	}
	return ViewBase
}
