package task

// ListOptions provides filtering options for listing tasks.
type ListOptions struct {
	// UserID restricts the result to one owner when non-empty.
	UserID string
	// Start and End are inclusive day bounds; nil means unbounded.
	Start *Date
	End   *Date
	// Query is a full-text match against title and description.
	Query string
}

// Range is an optional inclusive date filter.
type Range struct {
	Start *Date `json:"start,omitempty"`
	End   *Date `json:"end,omitempty"`
}

// Contains reports whether d is inside the range. Missing bounds are open.
func (r Range) Contains(d Date) bool {
	if r.Start != nil && d.Before(*r.Start) {
		return false
	}
	if r.End != nil && d.After(*r.End) {
		return false
	}
	return true
}
