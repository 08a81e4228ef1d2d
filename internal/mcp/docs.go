package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `worklog is a shared daily task log. Employees record what they worked on; managers read everyone's entries.

Core concepts:
- Task: one entry on one calendar day with a title, optional description, priority (high, medium, low) and status.
- Edit window: tasks may only be created on or moved to today and the previous 5 days. Call edit_window when unsure.
- Roles: employees see and edit only their own tasks. Managers see every task, read-only, grouped by employee.

Typical workflow:
1) Orient: call calendar_month (current month by default) or task_hierarchy.
2) Write: create_task / update_task / delete_task (employees only).
3) Review: task_hierarchy rolls tasks up by year, month, week and day with priority counts.
   Use toggle_node(key) to collapse or expand one node; the state lasts for this session only.
4) Managers: day_schedule(date) lists every employee's tasks for one day; list_users and recent_activity audit the log.

Week numbers: week N of a year starts on a Monday and counts whole weeks from January 1.
Weeks are bucketed inside their month, so a week that crosses a month boundary appears under both months.

Docs:
- worklog://docs/index
- worklog://docs/hierarchy
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "worklog://docs/index",
		Name:        "docs_index",
		Title:       "worklog docs index",
		Description: "Entry point for agent-facing docs: tools, roles and limits.",
		Content: `# worklog: Agent Docs Index

## Tools

- ` + "`list_tasks(start_date?, end_date?, query?)`" + `: tasks newest day first.
- ` + "`create_task(title, date, description?, priority?)`" + `: priority defaults to medium.
- ` + "`update_task(id, ...)`" + `: empty fields are left unchanged.
- ` + "`delete_task(id)`" + `.
- ` + "`calendar_month(month?)`" + `: 42 days starting on the Sunday on or before the 1st.
- ` + "`task_hierarchy(start_date?, end_date?)`" + ` and ` + "`toggle_node(key)`" + `.
- ` + "`day_schedule(date, search?)`" + `, ` + "`list_users`" + `, ` + "`recent_activity`" + `: managers only.
- ` + "`edit_window`" + `: the dates writes currently accept.

## Errors

Tool errors start with a code:

- ` + "`OUTSIDE_EDIT_WINDOW`" + `: pick a date from ` + "`edit_window`" + `.
- ` + "`FORBIDDEN`" + `: managers cannot write; employees cannot touch others' tasks.
- ` + "`TASK_NOT_FOUND`" + `, ` + "`INVALID_INPUT`" + `, ` + "`INVALID_KEY`" + `.

## Limits

- Dates are ` + "`YYYY-MM-DD`" + ` calendar days with no time zone.
- Expand/collapse state is per session and never stored.
`,
	},
	{
		URI:         "worklog://docs/hierarchy",
		Name:        "docs_hierarchy",
		Title:       "Task hierarchy",
		Description: "How tasks roll up into years, months, weeks and days, and how node keys look.",
		Content: `# Task hierarchy

` + "`task_hierarchy`" + ` returns ` + "`years`" + ` (the full tree) and ` + "`lines`" + ` (rows visible under your session's view state).

## Levels and keys

| Level | Key example |
|-------|-------------|
| year  | ` + "`2024`" + ` |
| month | ` + "`2024-06`" + ` |
| week  | ` + "`2024-06-w22`" + ` |
| day   | ` + "`2024-06-w22-03`" + ` |

Every node carries counts (total, high, medium, low). A parent's counts equal the sum of its children.
Siblings are ordered newest first.

## Weeks

A week belongs to the month of its day, so late May and early June days of the same Monday-start week land in different month buckets.
Week nodes report the first and last task dates they contain.

## View state

Every node starts expanded. ` + "`toggle_node(key)`" + ` flips exactly that node and returns its new state; children keep their own state.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
