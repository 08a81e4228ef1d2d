// Package render draws calendar grids, hierarchy outlines and task lists for
// the terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rpggio/worklog/internal/calendar"
	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/grouping"
	"github.com/rpggio/worklog/internal/hierarchy"
)

const ellipsis = "…"

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type styles struct {
	Title      lipgloss.Style
	Header     lipgloss.Style
	Cell       lipgloss.Style
	OtherMonth lipgloss.Style
	Today      lipgloss.Style
	High       lipgloss.Style
	Muted      lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:      lipgloss.NewStyle().Bold(true),
		Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Cell:       lipgloss.NewStyle().PaddingRight(1),
		OtherMonth: lipgloss.NewStyle().Faint(true),
		Today:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
		High:       lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(196)),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(240)),
	}
}

// Options sizes the output.
type Options struct {
	// CellWidth is the width of one calendar day column, padding included.
	CellWidth int
	// CellTasks is the number of task lines shown per day before "+N".
	CellTasks int
	// Width bounds list and outline rows.
	Width int
	Labels task.Labels
}

func (o Options) withDefaults() Options {
	if o.CellWidth < 6 {
		o.CellWidth = 14
	}
	if o.CellTasks < 1 {
		o.CellTasks = 3
	}
	if o.Width < 20 {
		o.Width = 80
	}
	if o.Labels.Priority == nil && o.Labels.Status == nil {
		o.Labels = task.DefaultLabels()
	}
	return o
}

// Renderer turns view-models into terminal text. It holds no per-call state.
type Renderer struct {
	opts   Options
	styles styles
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts.withDefaults(), styles: defaultStyles()}
}

// Month draws g as a title line, a weekday header and six rows of seven
// days, Sunday first. Days outside the month are dimmed and today is
// highlighted and bracketed.
func (r *Renderer) Month(g calendar.Grid) string {
	w := r.opts.CellWidth

	header := make([]string, 0, 7)
	for _, name := range weekdayNames {
		header = append(header, r.styles.Header.Width(w).Render(name))
	}

	rows := []string{
		r.styles.Title.Render(fmt.Sprintf("%s %d", g.Month, g.Year)),
		lipgloss.JoinHorizontal(lipgloss.Top, header...),
	}
	for _, week := range g.Weeks() {
		cells := make([]string, 0, 7)
		for _, c := range week {
			cells = append(cells, r.cell(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (r *Renderer) cell(c calendar.Cell) string {
	inner := r.opts.CellWidth - 1

	day := strconv.Itoa(c.Date.Day())
	if c.IsToday {
		day = r.styles.Today.Render("[" + day + "]")
	}
	lines := []string{day}
	lines = append(lines, r.cellLines(c.View, inner)...)

	style := r.styles.Cell.Width(r.opts.CellWidth).Height(r.opts.CellTasks + 2)
	if c.IsOtherMonth {
		style = style.Inherit(r.styles.OtherMonth)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// cellLines lists task titles for individual views and per-user counts for
// manager views, capped at CellTasks lines.
func (r *Renderer) cellLines(v grouping.DayView, width int) []string {
	var items []string
	if len(v.Users) > 0 {
		for _, g := range v.Users {
			items = append(items, fmt.Sprintf("%s %d", g.Name, g.Counts.Total))
		}
	} else {
		for _, tv := range v.Tasks {
			items = append(items, tv.Title)
		}
	}

	limit := r.opts.CellTasks
	shown, more := items, 0
	if len(items) > limit {
		shown = items[:limit-1]
		more = len(items) - len(shown)
	}

	lines := make([]string, 0, limit)
	for _, item := range shown {
		lines = append(lines, truncate.StringWithTail(item, uint(width), ellipsis))
	}
	if more > 0 {
		lines = append(lines, r.styles.Muted.Render(fmt.Sprintf("+%d", more)))
	}
	return lines
}

// Outline draws hierarchy rows as an indented tree. Collapsed nodes are
// marked with ▸, expanded ones with ▾. Rows of expanded days list their
// tasks underneath.
func (r *Renderer) Outline(lines []hierarchy.Line) string {
	if len(lines) == 0 {
		return r.styles.Muted.Render("no tasks")
	}

	var b strings.Builder
	for _, l := range lines {
		marker := "▾"
		if !l.Expanded {
			marker = "▸"
		}
		row := fmt.Sprintf("%s%s %s  %s", strings.Repeat("  ", l.Depth), marker, lineLabel(l), r.counts(l.Counts))
		b.WriteString(truncate.StringWithTail(row, uint(r.opts.Width), ellipsis))
		b.WriteByte('\n')

		if l.Day != nil && l.Expanded {
			pad := strings.Repeat("  ", l.Depth+1)
			for _, tv := range l.Day.View.All() {
				row := fmt.Sprintf("%s- [%s] %s", pad, r.opts.Labels.PriorityText(tv.Priority), tv.Title)
				if tv.UserName != "" {
					row += " (" + tv.UserName + ")"
				}
				b.WriteString(truncate.StringWithTail(row, uint(r.opts.Width), ellipsis))
				b.WriteByte('\n')
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func lineLabel(l hierarchy.Line) string {
	switch {
	case l.Day != nil:
		label := l.Day.Date.String()
		if l.Day.Relative != hierarchy.RelativeOther && l.Day.Relative != "" {
			label += " (" + string(l.Day.Relative) + ")"
		}
		return label
	case l.Week != nil:
		return fmt.Sprintf("week %d  %s ~ %s", l.Week.Week, l.Week.First.Format("01-02"), l.Week.Last.Format("01-02"))
	default:
		return l.Key.String()
	}
}

func (r *Renderer) counts(c task.Counts) string {
	l := r.opts.Labels
	return r.styles.Muted.Render(fmt.Sprintf("%d  %s%d %s%d %s%d",
		c.Total,
		l.PriorityText(task.PriorityHigh), c.High,
		l.PriorityText(task.PriorityMedium), c.Medium,
		l.PriorityText(task.PriorityLow), c.Low,
	))
}

// Tasks draws one row per task followed by its wrapped description.
func (r *Renderer) Tasks(tasks []task.Task) string {
	if len(tasks) == 0 {
		return r.styles.Muted.Render("no tasks")
	}

	var b strings.Builder
	for _, t := range tasks {
		priority := "[" + r.opts.Labels.PriorityText(t.Priority) + "]"
		if t.Priority == task.PriorityHigh {
			priority = r.styles.High.Render(priority)
		}
		row := fmt.Sprintf("%s  %s %s  %s  %s", t.Date, priority, t.Title, r.opts.Labels.StatusText(t.Status), t.UserName)
		b.WriteString(truncate.StringWithTail(row, uint(r.opts.Width), ellipsis))
		b.WriteByte('\n')
		if t.Description != "" {
			wrapped := wordwrap.String(t.Description, r.opts.Width-4)
			b.WriteString(r.styles.Muted.Render(indent.String(wrapped, 4)))
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
