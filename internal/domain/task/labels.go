package task

// Labels maps priority and status values to display text. Unmapped values are
// returned unchanged.
type Labels struct {
	Priority map[string]string `yaml:"priority" json:"priority"`
	Status   map[string]string `yaml:"status" json:"status"`
}

// DefaultLabels returns the stock display text.
func DefaultLabels() Labels {
	return Labels{
		Priority: map[string]string{
			string(PriorityHigh):   "高",
			string(PriorityMedium): "中",
			string(PriorityLow):    "低",
		},
		Status: map[string]string{
			string(StatusInProgress): "进行中",
		},
	}
}

// PriorityText returns the label for p.
func (l Labels) PriorityText(p Priority) string {
	if text, ok := l.Priority[string(p)]; ok {
		return text
	}
	return string(p)
}

// StatusText returns the label for s.
func (l Labels) StatusText(s Status) string {
	if text, ok := l.Status[string(s)]; ok {
		return text
	}
	return string(s)
}
