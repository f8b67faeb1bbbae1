package renderer

import (
	"github.com/dshills/flickpad/internal/config"
	"github.com/dshills/flickpad/internal/renderer/core"
)

// Built-in colors, used when a configured color does not parse.
var (
	defaultHighlight = core.MustHex("#3b82f6")
	defaultAccent    = core.MustHex("#f59e0b")
	defaultText      = core.MustHex("#e5e7eb")
)

// Theme holds the resolved styles the renderer draws with.
type Theme struct {
	Text        core.Style
	Placeholder core.Style
	Border      core.Style
	Cell        core.Style
	Empty       core.Style
	Special     core.Style
	Hover       core.Style
	Arrow       core.Style
	Message     core.Style
	Cursor      core.Style
}

// ThemeFromConfig builds a theme from configured hex colors. Colors that
// fail to parse fall back to the built-in ones; the returned errors name
// them.
func ThemeFromConfig(tc config.ThemeConfig) (Theme, []error) {
	var errs []error
	parse := func(hex string, fallback core.Color) core.Color {
		c, err := core.ColorFromHex(hex)
		if err != nil {
			errs = append(errs, err)
			return fallback
		}
		return c
	}

	return NewTheme(
		parse(tc.Highlight, defaultHighlight),
		parse(tc.Accent, defaultAccent),
		parse(tc.Text, defaultText),
	), errs
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return NewTheme(defaultHighlight, defaultAccent, defaultText)
}

// NewTheme derives every style from three base colors.
func NewTheme(highlight, accent, text core.Color) Theme {
	base := core.DefaultStyle()
	cellBg := text.Blend(core.ColorBlack, 0.85)

	return Theme{
		Text:        base.WithForeground(text),
		Placeholder: base.WithForeground(text.Blend(core.ColorBlack, 0.5)),
		Border:      base.WithForeground(text.Blend(core.ColorBlack, 0.6)),
		Cell:        base.WithForeground(text).WithBackground(cellBg),
		Empty:       base.WithBackground(cellBg.Darken(0.4)),
		Special:     base.WithForeground(accent).WithBackground(cellBg).Bold(),
		Hover:       base.WithForeground(core.ColorWhite).WithBackground(highlight).Bold(),
		Arrow:       base.WithForeground(accent).WithBackground(highlight).Bold(),
		Message:     base.WithForeground(accent).Bold(),
		Cursor:      base.WithForeground(core.ColorWhite).WithBackground(accent).Bold(),
	}
}
