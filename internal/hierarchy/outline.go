package hierarchy

import "github.com/rpggio/worklog/internal/domain/task"

// Line is one visible row of a hierarchy outline.
type Line struct {
	Key      Key         `json:"key"`
	Depth    int         `json:"depth"`
	Counts   task.Counts `json:"counts"`
	Expanded bool        `json:"expanded"`
	// Day is set on day rows.
	Day *DayNode `json:"day,omitempty"`
	// Week is set on week rows.
	Week *WeekNode `json:"-"`
}

// Outline flattens years into the rows a viewer sees: every node whose
// ancestors are all expanded, in tree order.
func Outline(years []YearNode, state *ViewState) []Line {
	var lines []Line
	for yi := range years {
		y := &years[yi]
		open := state.IsExpanded(y.Key())
		lines = append(lines, Line{Key: y.Key(), Depth: 0, Counts: y.Counts, Expanded: open})
		if !open {
			continue
		}
		for mi := range y.Months {
			m := &y.Months[mi]
			open := state.IsExpanded(m.Key())
			lines = append(lines, Line{Key: m.Key(), Depth: 1, Counts: m.Counts, Expanded: open})
			if !open {
				continue
			}
			for wi := range m.Weeks {
				w := &m.Weeks[wi]
				open := state.IsExpanded(w.Key())
				lines = append(lines, Line{Key: w.Key(), Depth: 2, Counts: w.Counts, Expanded: open, Week: w})
				if !open {
					continue
				}
				for di := range w.Days {
					d := &w.Days[di]
					lines = append(lines, Line{
						Key:      d.Key(),
						Depth:    3,
						Counts:   d.Counts,
						Expanded: state.IsExpanded(d.Key()),
						Day:      d,
					})
				}
			}
		}
	}
	return lines
}
