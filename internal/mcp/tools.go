package mcp

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/worklog/internal/calendar"
	"github.com/rpggio/worklog/internal/domain/activity"
	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/rpggio/worklog/internal/hierarchy"
)

type tools struct {
	svc    Services
	views  *viewStates
	logger *slog.Logger
}

// registerTools adds every worklog tool to server. Outputs are typed any so
// the SDK does not derive an output schema from types with custom JSON.
func registerTools(server *sdkmcp.Server, t *tools) {
	// Tasks
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks visible to the current user, newest day first. Managers see everyone's tasks, employees only their own.",
	}, t.listTasks)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_task",
		Description: "Create a task for the current user. The date must be inside the edit window (today and the previous 5 days). Managers cannot create tasks.",
	}, t.createTask)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_task",
		Description: "Edit one of your own tasks. Empty fields are left unchanged; the resulting date must be inside the edit window.",
	}, t.updateTask)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_task",
		Description: "Delete one of your own tasks.",
	}, t.deleteTask)

	// Views
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "calendar_month",
		Description: "Return the 42-day month grid (Sunday first) with each day's tasks grouped for the current user's role.",
	}, t.calendarMonth)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "task_hierarchy",
		Description: "Return tasks rolled up by year, month, week and day with priority counts, plus the rows visible under this session's expand/collapse state.",
	}, t.taskHierarchy)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_node",
		Description: "Expand or collapse one hierarchy node for this session. Nodes start expanded; children keep their own state.",
	}, t.toggleNode)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "day_schedule",
		Description: "Manager only: every employee's tasks on one day with priority counts, sorted by name.",
	}, t.daySchedule)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "edit_window",
		Description: "Return the inclusive range of dates a task may currently be created on or moved to.",
	}, t.editWindow)

	// Users and activity
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_users",
		Description: "Manager only: list employee accounts.",
	}, t.listUsers)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "Manager only: page through the operation log, newest first.",
	}, t.recentActivity)
}

func (t *tools) listTasks(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListTasksParams) (*sdkmcp.CallToolResult, any, error) {
	viewer, err := viewerFrom(ctx)
	if err != nil {
		return nil, nil, err
	}
	r, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, nil, toolError(err)
	}
	tasks, err := t.svc.Tasks.List(ctx, viewer, task.ListOptions{Start: r.Start, End: r.End, Query: in.Query})
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, ListTasksResponse{Tasks: tasks}, nil
}

func (t *tools) createTask(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateTaskParams) (*sdkmcp.CallToolResult, any, error) {
	viewer, err := viewerFrom(ctx)
	if err != nil {
		return nil, nil, err
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return nil, nil, toolError(err)
	}
	created, err := t.svc.Tasks.Create(ctx, viewer, task.CreateRequest{
		Title:       in.Title,
		Description: in.Description,
		Date:        date,
		Priority:    task.Priority(in.Priority),
	})
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, created, nil
}

func (t *tools) updateTask(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateTaskParams) (*sdkmcp.CallToolResult, any, error) {
	viewer, err := viewerFrom(ctx)
	if err != nil {
		return nil, nil, err
	}
	req := task.UpdateRequest{ID: in.ID}
	if in.Title != "" {
		req.Title = &in.Title
	}
	if in.Description != "" {
		req.Description = &in.Description
	}
	if in.Date != "" {
		date, err := parseDate("date", in.Date)
		if err != nil {
			return nil, nil, toolError(err)
		}
		req.Date = &date
	}
	if in.Status != "" {
		status := task.Status(in.Status)
		req.Status = &status
	}
	if in.Priority != "" {
		priority := task.Priority(in.Priority)
		req.Priority = &priority
	}

	updated, err := t.svc.Tasks.Update(ctx, viewer, req)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, updated, nil
}

func (t *tools) deleteTask(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteTaskParams) (*sdkmcp.CallToolResult, any, error) {
	viewer, err := viewerFrom(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := t.svc.Tasks.Delete(ctx, viewer, in.ID); err != nil {
		return nil, nil, toolError(err)
	}
	return nil, DeleteTaskResponse{Deleted: in.ID}, nil
}

func (t *tools) calendarMonth(ctx context.Context, _ *sdkmcp.CallToolRequest, in CalendarMonthParams) (*sdkmcp.CallToolResult, any, error) {
	viewer, err := viewerFrom(ctx)
	if err != nil {
		return nil, nil, err
	}
	var month task.Date
	if in.Month != "" {
		if month, err = calendar.ParseMonth(in.Month); err != nil {
			return nil, nil, toolError(fmt.Errorf("%w: month: %v", task.ErrInvalidInput, err))
		}
	}
	grid, err := t.svc.Dashboard.Calendar(ctx, viewer, month)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, grid, nil
}

func (t *tools) taskHierarchy(ctx context.Context, req *sdkmcp.CallToolRequest, in TaskHierarchyParams) (*sdkmcp.CallToolResult, any, error) {
	viewer, err := viewerFrom(ctx)
	if err != nil {
		return nil, nil, err
	}
	r, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, nil, toolError(err)
	}
	years, err := t.svc.Dashboard.Hierarchy(ctx, viewer, r)
	if err != nil {
		return nil, nil, toolError(err)
	}
	var lines []hierarchy.Line
	t.views.with(req.Session, func(st *hierarchy.ViewState) {
		lines = hierarchy.Outline(years, st)
	})
	if lines == nil {
		lines = []hierarchy.Line{}
	}
	return nil, TaskHierarchyResponse{Years: years, Lines: lines}, nil
}

func (t *tools) toggleNode(ctx context.Context, req *sdkmcp.CallToolRequest, in ToggleNodeParams) (*sdkmcp.CallToolResult, any, error) {
	if _, err := viewerFrom(ctx); err != nil {
		return nil, nil, err
	}
	key, err := hierarchy.ParseKey(in.Key)
	if err != nil {
		return nil, nil, toolError(err)
	}
	var expanded bool
	t.views.with(req.Session, func(st *hierarchy.ViewState) {
		expanded = st.Toggle(key)
	})
	return nil, ToggleNodeResponse{Key: key, Expanded: expanded}, nil
}

func (t *tools) daySchedule(ctx context.Context, _ *sdkmcp.CallToolRequest, in DayScheduleParams) (*sdkmcp.CallToolResult, any, error) {
	viewer, err := viewerFrom(ctx)
	if err != nil {
		return nil, nil, err
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return nil, nil, toolError(err)
	}
	schedule, err := t.svc.Dashboard.DaySchedule(ctx, viewer, date, in.Search)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, schedule, nil
}

func (t *tools) editWindow(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EditWindowParams) (*sdkmcp.CallToolResult, any, error) {
	if _, err := viewerFrom(ctx); err != nil {
		return nil, nil, err
	}
	return nil, t.svc.Dashboard.EditWindow(), nil
}

func (t *tools) listUsers(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListUsersParams) (*sdkmcp.CallToolResult, any, error) {
	viewer, err := viewerFrom(ctx)
	if err != nil {
		return nil, nil, err
	}
	users, err := t.svc.Users.ListEmployees(ctx, viewer)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, map[string]any{"users": users}, nil
}

func (t *tools) recentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecentActivityParams) (*sdkmcp.CallToolResult, any, error) {
	viewer, err := viewerFrom(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !viewer.IsManager() {
		return nil, nil, toolError(user.ErrForbidden)
	}

	opts := activity.ListOptions{
		UserID:  in.UserID,
		Action:  in.Action,
		Page:    in.Page,
		PerPage: in.PerPage,
	}
	if in.StartDate != "" {
		d, err := parseDate("start_date", in.StartDate)
		if err != nil {
			return nil, nil, toolError(err)
		}
		opts.Start = &d.Time
	}
	if in.EndDate != "" {
		d, err := parseDate("end_date", in.EndDate)
		if err != nil {
			return nil, nil, toolError(err)
		}
		opts.End = &d.Time
	}

	page, err := t.svc.Activity.List(ctx, opts)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return nil, page, nil
}

func parseDate(field, s string) (task.Date, error) {
	d, err := task.ParseDate(s)
	if err != nil {
		return task.Date{}, fmt.Errorf("%w: %s: %v", task.ErrInvalidInput, field, err)
	}
	return d, nil
}

func parseRange(start, end string) (task.Range, error) {
	var r task.Range
	if start != "" {
		d, err := parseDate("start_date", start)
		if err != nil {
			return r, err
		}
		r.Start = &d
	}
	if end != "" {
		d, err := parseDate("end_date", end)
		if err != nil {
			return r, err
		}
		r.End = &d
	}
	return r, nil
}
