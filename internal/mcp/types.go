package mcp

import (
	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/hierarchy"
)

// Dates are YYYY-MM-DD strings throughout the tool inputs.

type ListTasksParams struct {
	StartDate string `json:"start_date,omitempty" jsonschema:"inclusive lower bound, YYYY-MM-DD"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"inclusive upper bound, YYYY-MM-DD"`
	Query     string `json:"query,omitempty" jsonschema:"full-text match on title and description"`
}

type CreateTaskParams struct {
	Title       string `json:"title" jsonschema:"task title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date" jsonschema:"task day, YYYY-MM-DD, inside the edit window"`
	Priority    string `json:"priority,omitempty" jsonschema:"high, medium or low (default medium)"`
}

// UpdateTaskParams leaves empty fields unchanged.
type UpdateTaskParams struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

type DeleteTaskParams struct {
	ID string `json:"id"`
}

type CalendarMonthParams struct {
	Month string `json:"month,omitempty" jsonschema:"YYYY-MM, default current month"`
}

type TaskHierarchyParams struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type ToggleNodeParams struct {
	Key string `json:"key" jsonschema:"node key such as 2024, 2024-06, 2024-06-w22 or 2024-06-w22-03"`
}

type DayScheduleParams struct {
	Date   string `json:"date"`
	Search string `json:"search,omitempty" jsonschema:"case-insensitive match on name or username"`
}

type EditWindowParams struct{}

type ListUsersParams struct{}

type RecentActivityParams struct {
	UserID    string `json:"user_id,omitempty"`
	Action    string `json:"action,omitempty" jsonschema:"substring of the action name"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Page      int    `json:"page,omitempty"`
	PerPage   int    `json:"per_page,omitempty"`
}

type ListTasksResponse struct {
	Tasks []task.Task `json:"tasks"`
}

type DeleteTaskResponse struct {
	Deleted string `json:"deleted"`
}

type TaskHierarchyResponse struct {
	Years []hierarchy.YearNode `json:"years"`
	// Lines are the rows visible under this session's expand/collapse state.
	Lines []hierarchy.Line `json:"lines"`
}

type ToggleNodeResponse struct {
	Key      hierarchy.Key `json:"key"`
	Expanded bool          `json:"expanded"`
}
