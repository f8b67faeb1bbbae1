// Package nav implements the flick grid's menu navigation.
//
// The grid shows one of four views. Free input walks from the base view
// (hiragana row selectors) into a row's detail view; template input walks
// from the category list into a category's phrases:
//
//	          row           commit / back
//	base ─────────────▶ hiragana-detail ──────────▶ base
//	                        │ 6
//	                        ▼
//	template-category ◀─────┘
//	   │ category   ▲ 0 back / commit
//	   ▼            │
//	template-detail ┘
//
// Choosing the free-input category returns to base. Only the free-input
// branch keeps a history stack; the template branch has a fixed one-level
// back.
//
// Machine is a plain value owner and is not safe for concurrent use.
package nav
