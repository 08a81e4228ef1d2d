package hierarchy

// ViewState records which hierarchy nodes are collapsed. A key that was never
// toggled is expanded. The zero value is ready to use. ViewState is not safe
// for concurrent use.
type ViewState struct {
	collapsed map[Key]bool
}

// NewViewState returns an empty view state.
func NewViewState() *ViewState {
	return &ViewState{}
}

// IsExpanded reports whether the node at k is expanded.
func (s *ViewState) IsExpanded(k Key) bool {
	if s == nil {
		return true
	}
	return !s.collapsed[k]
}

// Toggle flips the node at k and returns its new state. Other keys,
// descendants included, are unaffected.
func (s *ViewState) Toggle(k Key) bool {
	if s.collapsed == nil {
		s.collapsed = make(map[Key]bool)
	}
	if s.collapsed[k] {
		delete(s.collapsed, k)
		return true
	}
	s.collapsed[k] = true
	return false
}

// Collapsed returns the number of collapsed nodes.
func (s *ViewState) Collapsed() int {
	if s == nil {
		return 0
	}
	return len(s.collapsed)
}

// Reset expands every node.
func (s *ViewState) Reset() {
	clear(s.collapsed)
}
