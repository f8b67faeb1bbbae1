package nav

import "github.com/rivo/uniseg"

// TrimLast removes the last grapheme cluster of s.
// A kana with a combining voiced mark is removed as one unit.
func TrimLast(s string) string {
	if s == "" {
		return s
	}
	last := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		last, _ = g.Positions()
	}
	return s[:last]
}

// Length returns the number of user-perceived characters in s.
func Length(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
