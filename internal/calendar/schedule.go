package calendar

import (
	"slices"
	"strings"

	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/grouping"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DaySchedule is the manager's per-employee breakdown of one day.
type DaySchedule struct {
	Date   task.Date            `json:"date"`
	Users  []grouping.UserGroup `json:"users"`
	Counts task.Counts          `json:"counts"`
}

// Employees returns the number of employees with at least one task that day.
func (s DaySchedule) Employees() int {
	return len(s.Users)
}

// BuildDaySchedule groups the tasks dated d by owner and orders the groups by
// display name using Chinese collation. A non-empty search keeps only the
// employees whose display name or username contains it, ignoring case.
func BuildDaySchedule(d task.Date, tasks []task.Task, search string) DaySchedule {
	var day []task.Task
	for _, t := range tasks {
		if t.Date.Equal(d) {
			day = append(day, t)
		}
	}

	view := grouping.Manager{}.Group(day)
	users := view.Users
	if search = strings.ToLower(strings.TrimSpace(search)); search != "" {
		users = slices.DeleteFunc(users, func(g grouping.UserGroup) bool {
			return !strings.Contains(strings.ToLower(g.Name), search) &&
				!strings.Contains(strings.ToLower(g.Username), search)
		})
	}

	col := collate.New(language.Chinese)
	slices.SortStableFunc(users, func(a, b grouping.UserGroup) int {
		return col.CompareString(a.Name, b.Name)
	})

	schedule := DaySchedule{Date: d, Users: users}
	if schedule.Users == nil {
		schedule.Users = []grouping.UserGroup{}
	}
	for _, g := range users {
		schedule.Counts.Total += g.Counts.Total
		schedule.Counts.High += g.Counts.High
		schedule.Counts.Medium += g.Counts.Medium
		schedule.Counts.Low += g.Counts.Low
	}
	return schedule
}
