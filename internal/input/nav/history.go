package nav

// History is a LIFO stack of previously shown grids.
type History struct {
	stack []GridContent
}

// Push saves a grid.
func (h *History) Push(g GridContent) {
	h.stack = append(h.stack, g)
}

// Pop removes and returns the most recent grid.
// Returns false if the history is empty.
func (h *History) Pop() (GridContent, bool) {
	if len(h.stack) == 0 {
		return GridContent{}, false
	}
	top := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return top, true
}

// Len returns the number of saved grids.
func (h *History) Len() int {
	return len(h.stack)
}

// Clear drops every saved grid.
func (h *History) Clear() {
	h.stack = h.stack[:0]
}
