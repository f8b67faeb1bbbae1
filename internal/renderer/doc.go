// Package renderer draws the flick input screen on a terminal backend.
//
// The screen is laid out top to bottom:
//
//	┌──────────────────────────────┐
//	│ mode label                   │  自由入力モード / 定型文モード
//	│ ┌──────────────────────────┐ │
//	│ │ accumulated text         │ │  text box
//	│ └──────────────────────────┘ │
//	│   ┌────┬────┬────┐           │
//	│   │ 0  │ 1  │ 2  │           │
//	│   ├────┼────┼────┤           │  3x3 grid, cells in row-major
//	│   │ 3  │ 4  │ 5  │           │  order matching gesture directions
//	│   ├────┼────┼────┤           │
//	│   │ 6  │ 7  │ 8  │           │
//	│   └────┴────┴────┘           │
//	│ message                      │  onboarding hint / key help
//	└──────────────────────────────┘
//
// Layout implements onboarding.Geometry so the demonstration overlay can
// place its cursor on grid cells, and maps terminal cells to gesture
// points so the tap threshold covers the same distance on both axes.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	theme, _ := renderer.ThemeFromConfig(cfg.Theme())
//	r := renderer.New(term, theme, cfg.Pointer())
//	r.Render(input.Snapshot(), overlay.Current())
package renderer
