package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rpggio/worklog/internal/calendar"
	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/export"
	"github.com/rpggio/worklog/internal/hierarchy"
	"github.com/rpggio/worklog/internal/render"
	"github.com/spf13/cobra"
)

// rangeFlags are the optional --start and --end day bounds.
type rangeFlags struct {
	start, end string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "First day to include, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.end, "end", "", "Last day to include, YYYY-MM-DD")
}

func (f *rangeFlags) parse() (task.Range, error) {
	var r task.Range
	if f.start != "" {
		d, err := task.ParseDate(f.start)
		if err != nil {
			return r, fmt.Errorf("--start: %w", err)
		}
		r.Start = &d
	}
	if f.end != "" {
		d, err := task.ParseDate(f.end)
		if err != nil {
			return r, fmt.Errorf("--end: %w", err)
		}
		r.End = &d
	}
	return r, nil
}

func newCalendarCmd(g *globals) *cobra.Command {
	var month string
	var cellWidth int

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month of tasks as a calendar grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer closeQuietly(a, a.Logger)

			viewer, err := g.viewer(cmd, a)
			if err != nil {
				return err
			}

			ref := task.DateOf(a.Tasks.Now())
			if month != "" {
				if ref, err = calendar.ParseMonth(month); err != nil {
					return fmt.Errorf("--month: %w", err)
				}
			}

			grid, err := a.Dashboard.Calendar(cmd.Context(), *viewer, ref)
			if err != nil {
				return err
			}
			r := render.New(render.Options{CellWidth: cellWidth, Labels: a.Config.Labels})
			fmt.Fprintln(cmd.OutOrStdout(), r.Month(*grid))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to show, YYYY-MM (default current month)")
	cmd.Flags().IntVar(&cellWidth, "cell-width", 14, "Width of one day column")
	return cmd
}

func newHierarchyCmd(g *globals) *cobra.Command {
	var rf rangeFlags
	var collapse []string

	cmd := &cobra.Command{
		Use:   "hierarchy",
		Short: "Show tasks rolled up by year, month, week and day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := rf.parse()
			if err != nil {
				return err
			}
			state := hierarchy.NewViewState()
			for _, raw := range collapse {
				key, err := hierarchy.ParseKey(raw)
				if err != nil {
					return fmt.Errorf("--collapse: %w", err)
				}
				if state.IsExpanded(key) {
					state.Toggle(key)
				}
			}

			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer closeQuietly(a, a.Logger)

			viewer, err := g.viewer(cmd, a)
			if err != nil {
				return err
			}
			years, err := a.Dashboard.Hierarchy(cmd.Context(), *viewer, rng)
			if err != nil {
				return err
			}

			r := render.New(render.Options{Labels: a.Config.Labels})
			fmt.Fprintln(cmd.OutOrStdout(), r.Outline(hierarchy.Outline(years, state)))
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringSliceVar(&collapse, "collapse", nil, "Node keys to collapse, e.g. 2024-05 or 2024-06-w23")
	return cmd
}

func newListCmd(g *globals) *cobra.Command {
	var rf rangeFlags
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest day first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := rf.parse()
			if err != nil {
				return err
			}

			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer closeQuietly(a, a.Logger)

			viewer, err := g.viewer(cmd, a)
			if err != nil {
				return err
			}
			tasks, err := a.Tasks.List(cmd.Context(), *viewer, task.ListOptions{
				Start: rng.Start,
				End:   rng.End,
				Query: query,
			})
			if err != nil {
				return err
			}

			r := render.New(render.Options{Labels: a.Config.Labels})
			fmt.Fprintln(cmd.OutOrStdout(), r.Tasks(tasks))
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&query, "query", "q", "", "Full-text match on title and description")
	return cmd
}

func newExportCmd(g *globals) *cobra.Command {
	var rf rangeFlags
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks as CSV (managers only)",
		Long: `Export every employee's tasks as a UTF-8 CSV with a byte order mark.

Use --out - to write to stdout. Without --out the file is named
tasks_YYYYMMDD_HHMMSS.csv in the current directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := rf.parse()
			if err != nil {
				return err
			}

			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer closeQuietly(a, a.Logger)

			viewer, err := g.viewer(cmd, a)
			if err != nil {
				return err
			}
			if !viewer.IsManager() {
				return task.ErrForbidden
			}

			tasks, err := a.Tasks.List(cmd.Context(), *viewer, task.ListOptions{Start: rng.Start, End: rng.End})
			if err != nil {
				return err
			}

			if out == "-" {
				return export.WriteCSV(cmd.OutOrStdout(), tasks, a.Config.Labels)
			}
			if out == "" {
				out = export.Filename(a.Tasks.Now())
			}
			if err := writeFile(out, func(w io.Writer) error {
				return export.WriteCSV(w, tasks, a.Config.Labels)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d tasks to %s\n", len(tasks), out)
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, or - for stdout")
	return cmd
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
