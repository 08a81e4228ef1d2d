// Package hierarchy folds a flat task list into a year, month, week and day
// tree with rollup counts, and tracks which nodes a viewer has collapsed.
package hierarchy

import (
	"fmt"
	"slices"
	"time"

	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/grouping"
)

// Relative places a day relative to today.
type Relative string

const (
	RelativeToday     Relative = "today"
	RelativeYesterday Relative = "yesterday"
	RelativeOther     Relative = "other"
)

// YearNode is the top of the tree.
type YearNode struct {
	Year   int         `json:"year"`
	Counts task.Counts `json:"counts"`
	Months []MonthNode `json:"months"`
}

func (n YearNode) Key() Key { return YearKey(n.Year) }

// MonthNode groups the weeks of one calendar month.
type MonthNode struct {
	Year   int         `json:"year"`
	Month  time.Month  `json:"month"`
	Counts task.Counts `json:"counts"`
	Weeks  []WeekNode  `json:"weeks"`
}

func (n MonthNode) Key() Key { return MonthKey(n.Year, n.Month) }

// WeekNode groups the days of one week bucket inside a month. First and Last
// are the earliest and latest task dates in the bucket.
type WeekNode struct {
	Year   int         `json:"year"`
	Month  time.Month  `json:"month"`
	Week   int         `json:"week"`
	First  task.Date   `json:"first"`
	Last   task.Date   `json:"last"`
	Counts task.Counts `json:"counts"`
	Days   []DayNode   `json:"days"`
}

func (n WeekNode) Key() Key { return WeekKey(n.Year, n.Month, n.Week) }

// DayNode is a leaf holding the tasks of one date, in input order, and their
// role-grouped view.
type DayNode struct {
	Date     task.Date        `json:"date"`
	Week     int              `json:"week"`
	Relative Relative         `json:"relative"`
	Counts   task.Counts      `json:"counts"`
	Tasks    []task.Task      `json:"-"`
	View     grouping.DayView `json:"view"`
}

func (n DayNode) Key() Key {
	return DayKey(n.Date.Year(), n.Date.Month(), n.Week, n.Date.Day())
}

// Options controls an aggregation.
type Options struct {
	// Range drops tasks outside it. Bounds are inclusive and optional.
	Range task.Range
	// Today labels day nodes as today or yesterday. Zero disables labeling.
	Today task.Date
	// Policy groups each day's tasks. Nil lists them flat.
	Policy grouping.Policy
}

// Aggregate builds the hierarchy for tasks. Siblings at every level are in
// descending key order, and every node's counts equal the sum of its
// children's. The input slice is not modified. A task without a date yields
// ErrMalformedTask.
func Aggregate(tasks []task.Task, opts Options) ([]YearNode, error) {
	policy := opts.Policy
	if policy == nil {
		policy = grouping.Individual{}
	}

	filtered := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Date.IsZero() {
			return nil, fmt.Errorf("%w: task %q has no date", ErrMalformedTask, t.ID)
		}
		if opts.Range.Contains(t.Date) {
			filtered = append(filtered, t)
		}
	}
	slices.SortStableFunc(filtered, func(a, b task.Task) int {
		return b.Date.Compare(a.Date)
	})

	// Sorted input makes equal keys contiguous at every level, so each node
	// is either the last sibling or a new one.
	years := []YearNode{}
	for _, t := range filtered {
		d := t.Date
		week := WeekNumber(d)

		if len(years) == 0 || years[len(years)-1].Year != d.Year() {
			years = append(years, YearNode{Year: d.Year()})
		}
		yn := &years[len(years)-1]

		if len(yn.Months) == 0 || yn.Months[len(yn.Months)-1].Month != d.Month() {
			yn.Months = append(yn.Months, MonthNode{Year: d.Year(), Month: d.Month()})
		}
		mn := &yn.Months[len(yn.Months)-1]

		if len(mn.Weeks) == 0 || mn.Weeks[len(mn.Weeks)-1].Week != week {
			mn.Weeks = append(mn.Weeks, WeekNode{Year: d.Year(), Month: d.Month(), Week: week, Last: d})
		}
		wn := &mn.Weeks[len(mn.Weeks)-1]
		wn.First = d

		if len(wn.Days) == 0 || !wn.Days[len(wn.Days)-1].Date.Equal(d) {
			wn.Days = append(wn.Days, DayNode{Date: d, Week: week, Relative: relativeTo(d, opts.Today)})
		}
		dn := &wn.Days[len(wn.Days)-1]
		dn.Tasks = append(dn.Tasks, t)

		yn.Counts.Add(t.Priority)
		mn.Counts.Add(t.Priority)
		wn.Counts.Add(t.Priority)
		dn.Counts.Add(t.Priority)
	}

	for yi := range years {
		for mi := range years[yi].Months {
			for wi := range years[yi].Months[mi].Weeks {
				days := years[yi].Months[mi].Weeks[wi].Days
				for di := range days {
					days[di].View = policy.Group(days[di].Tasks)
				}
			}
		}
	}
	return years, nil
}

func relativeTo(d, today task.Date) Relative {
	switch {
	case today.IsZero():
		return RelativeOther
	case d.Equal(today):
		return RelativeToday
	case d.Equal(today.AddDays(-1)):
		return RelativeYesterday
	default:
		return RelativeOther
	}
}
