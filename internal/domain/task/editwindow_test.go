package task_test

import (
	"testing"
	"time"

	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/stretchr/testify/require"
)

func TestEditableRange(t *testing.T) {
	w := task.EditableRange(time.Date(2024, time.June, 10, 23, 59, 0, 0, time.UTC))
	require.Equal(t, "2024-06-05", w.Min.String())
	require.Equal(t, "2024-06-10", w.Max.String())

	require.True(t, w.Contains(task.NewDate(2024, time.June, 5)))
	require.True(t, w.Contains(task.NewDate(2024, time.June, 10)))
	require.False(t, w.Contains(task.NewDate(2024, time.June, 4)))
	require.False(t, w.Contains(task.NewDate(2024, time.June, 11)))

	require.NoError(t, w.Validate(task.NewDate(2024, time.June, 5)))
	require.ErrorIs(t, w.Validate(task.NewDate(2024, time.June, 4)), task.ErrOutsideEditWindow)
}

func TestEditableRange_CrossesMonthBoundary(t *testing.T) {
	w := task.EditableRange(time.Date(2024, time.March, 2, 8, 0, 0, 0, time.UTC))
	require.Equal(t, "2024-02-26", w.Min.String())
	require.Equal(t, "2024-03-02", w.Max.String())
}

func TestEditableRange_UsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	w := task.EditableRange(time.Date(2024, time.June, 10, 1, 0, 0, 0, loc))
	require.Equal(t, "2024-06-10", w.Max.String())
}
