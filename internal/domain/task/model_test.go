package task_test

import (
	"testing"

	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/stretchr/testify/require"
)

func TestCountAll(t *testing.T) {
	c := task.CountAll([]task.Task{
		{Priority: task.PriorityHigh},
		{Priority: task.PriorityHigh},
		{Priority: task.PriorityLow},
		{Priority: "urgent"},
	})
	require.Equal(t, task.Counts{Total: 4, High: 2, Low: 1}, c)
}

func TestLabels(t *testing.T) {
	l := task.DefaultLabels()
	require.Equal(t, "高", l.PriorityText(task.PriorityHigh))
	require.Equal(t, "中", l.PriorityText(task.PriorityMedium))
	require.Equal(t, "低", l.PriorityText(task.PriorityLow))
	require.Equal(t, "进行中", l.StatusText(task.StatusInProgress))
	require.Equal(t, "urgent", l.PriorityText("urgent"))
	require.Equal(t, "done", l.StatusText("done"))
}
