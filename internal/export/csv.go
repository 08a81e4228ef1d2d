// Package export writes task lists as spreadsheet-friendly CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/rpggio/worklog/internal/domain/task"
)

// bom makes spreadsheet applications detect UTF-8.
const bom = "\ufeff"

// Header is the column row of an export.
var Header = []string{"员工姓名", "任务标题", "任务描述", "日期", "优先级", "状态", "创建时间"}

// ContentType is the MIME type of an export.
const ContentType = "text/csv; charset=utf-8"

// WriteCSV writes a BOM, the header and one row per task. Priority and status
// are rendered through labels.
func WriteCSV(w io.Writer, tasks []task.Task, labels task.Labels) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	for _, t := range tasks {
		err := cw.Write([]string{
			t.UserName,
			t.Title,
			t.Description,
			t.Date.String(),
			labels.PriorityText(t.Priority),
			labels.StatusText(t.Status),
			t.CreatedAt.Format(time.DateTime),
		})
		if err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// Filename returns the download name for an export made at now.
func Filename(now time.Time) string {
	return "tasks_" + now.Format("20060102_150405") + ".csv"
}
