package hierarchy

import (
	"time"

	"github.com/rpggio/worklog/internal/domain/task"
)

// WeekNumber returns the week bucket of d: the number of whole or partial
// weeks from January 1st of d's year to the Monday starting d's week, rounded
// up. Sunday belongs to the week of the preceding Monday. Days before the
// year's first Monday can yield 0. The number is not ISO-8601 and is not
// corrected across a year boundary.
func WeekNumber(d task.Date) int {
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.AddDays(-offset)
	jan1 := task.NewDate(d.Year(), time.January, 1)

	days := monday.DaysSince(jan1)
	if days > 0 {
		return (days + 6) / 7
	}
	return days / 7
}
