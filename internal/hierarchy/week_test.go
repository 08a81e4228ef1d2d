package hierarchy_test

import (
	"testing"
	"time"

	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/hierarchy"
	"github.com/stretchr/testify/require"
)

func TestWeekNumber(t *testing.T) {
	cases := []struct {
		date task.Date
		want int
	}{
		{task.NewDate(2024, time.June, 3), 22},
		{task.NewDate(2024, time.June, 9), 22},
		{task.NewDate(2024, time.June, 10), 23},
		{task.NewDate(2024, time.May, 29), 21},
		{task.NewDate(2024, time.January, 1), 0},
		{task.NewDate(2024, time.January, 8), 1},
		// 2023 starts on a Sunday, which belongs to the week of Monday 2022-12-26.
		{task.NewDate(2023, time.January, 1), 0},
		{task.NewDate(2023, time.January, 2), 1},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, hierarchy.WeekNumber(tc.date), tc.date.String())
	}
}

func TestWeekNumber_MonthScopedBuckets(t *testing.T) {
	// The week of Monday 2024-07-29 spans July and August and lands in both months.
	tasks := []task.Task{
		{ID: "jul", Date: task.NewDate(2024, time.July, 31)},
		{ID: "aug", Date: task.NewDate(2024, time.August, 1)},
	}
	years, err := hierarchy.Aggregate(tasks, hierarchy.Options{})
	require.NoError(t, err)
	require.Len(t, years[0].Months, 2)
	require.Equal(t, years[0].Months[0].Weeks[0].Week, years[0].Months[1].Weeks[0].Week)
	require.NotEqual(t, years[0].Months[0].Weeks[0].Key(), years[0].Months[1].Weeks[0].Key())
}
