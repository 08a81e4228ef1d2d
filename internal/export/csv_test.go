package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	created := time.Date(2024, time.June, 10, 9, 15, 0, 0, time.UTC)
	tasks := []task.Task{
		{
			UserName:    "张三",
			Title:       "Report, final",
			Description: "line one\nline two",
			Date:        task.NewDate(2024, time.June, 10),
			Priority:    task.PriorityHigh,
			Status:      task.StatusInProgress,
			CreatedAt:   created,
		},
		{
			UserName:  "Bob",
			Title:     "Custom",
			Date:      task.NewDate(2024, time.June, 9),
			Priority:  task.Priority("urgent"),
			Status:    task.Status("done"),
			CreatedAt: created,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tasks, task.DefaultLabels()))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\ufeff"))

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, Header, rows[0])
	require.Equal(t, []string{"张三", "Report, final", "line one\nline two", "2024-06-10", "高", "进行中", "2024-06-10 09:15:00"}, rows[1])
	require.Equal(t, "urgent", rows[2][4])
	require.Equal(t, "done", rows[2][5])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, task.Labels{}))
	require.Equal(t, "\ufeff"+strings.Join(Header, ",")+"\n", buf.String())
}

func TestFilename(t *testing.T) {
	require.Equal(t, "tasks_20240610_091500.csv", Filename(time.Date(2024, time.June, 10, 9, 15, 0, 0, time.UTC)))
}
