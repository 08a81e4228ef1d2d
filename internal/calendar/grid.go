// Package calendar builds the month grid and the per-day schedule views.
package calendar

import (
	"time"

	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/grouping"
)

// GridSize is the number of day slots in a month grid: six weeks of seven days.
const GridSize = 42

// Context carries everything one grid build needs. Create a new one per request.
type Context struct {
	// Month is any day within the reference month.
	Month  task.Date
	Today  task.Date
	Tasks  []task.Task
	Policy grouping.Policy
}

// NewContext returns a Context for the month containing ref, with today taken from now.
func NewContext(ref task.Date, now time.Time, tasks []task.Task, policy grouping.Policy) Context {
	return Context{
		Month:  ref,
		Today:  task.DateOf(now),
		Tasks:  tasks,
		Policy: policy,
	}
}

// Cell is one day slot of the grid.
type Cell struct {
	Date         task.Date        `json:"date"`
	IsOtherMonth bool             `json:"is_other_month"`
	IsToday      bool             `json:"is_today"`
	View         grouping.DayView `json:"view"`
}

// Grid is a month laid out as 42 consecutive days starting on a Sunday.
type Grid struct {
	Year  int            `json:"year"`
	Month time.Month     `json:"month"`
	Cells [GridSize]Cell `json:"cells"`
}

// BuildGrid lays out the reference month of c. The first cell is the Sunday on
// or before the 1st. Tasks are matched to cells by exact date and grouped by
// c.Policy; a nil policy lists tasks flat.
func BuildGrid(c Context) Grid {
	policy := c.Policy
	if policy == nil {
		policy = grouping.Individual{}
	}

	first := FirstOfMonth(c.Month)
	start, _ := GridRange(c.Month)

	byDay := make(map[string][]task.Task)
	for _, t := range c.Tasks {
		key := t.Date.String()
		byDay[key] = append(byDay[key], t)
	}

	grid := Grid{Year: first.Year(), Month: first.Month()}
	for i := range grid.Cells {
		d := start.AddDays(i)
		grid.Cells[i] = Cell{
			Date:         d,
			IsOtherMonth: d.Month() != first.Month() || d.Year() != first.Year(),
			IsToday:      d.Equal(c.Today),
			View:         policy.Group(byDay[d.String()]),
		}
	}
	return grid
}

// Weeks returns the grid as six rows of seven days, Sunday first.
func (g Grid) Weeks() [GridSize / 7][7]Cell {
	var rows [GridSize / 7][7]Cell
	for i, c := range g.Cells {
		rows[i/7][i%7] = c
	}
	return rows
}

// GridRange returns the first and last dates shown in the grid of ref's month.
func GridRange(ref task.Date) (task.Date, task.Date) {
	first := FirstOfMonth(ref)
	start := first.AddDays(-int(first.Weekday()))
	return start, start.AddDays(GridSize - 1)
}

// FirstOfMonth returns the 1st of d's month.
func FirstOfMonth(d task.Date) task.Date {
	return task.NewDate(d.Year(), d.Month(), 1)
}

// ShiftMonth returns the 1st of the month n months away from ref's month.
func ShiftMonth(ref task.Date, n int) task.Date {
	return task.NewDate(ref.Year(), ref.Month()+time.Month(n), 1)
}

// ParseMonth parses a "YYYY-MM" reference month.
func ParseMonth(s string) (task.Date, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return task.Date{}, err
	}
	return task.NewDate(t.Year(), t.Month(), 1), nil
}
