package activity

import "time"

// Action names a kind of user operation recorded in the log.
type Action string

const (
	ActionListTasks  Action = "list_tasks"
	ActionCreateTask Action = "create_task"
	ActionUpdateTask Action = "update_task"
	ActionDeleteTask Action = "delete_task"
	ActionListUsers  Action = "list_users"
	ActionExportCSV  Action = "export_csv"
	ActionCreateUser Action = "create_user"
)

// Entry is one line of the operation log.
type Entry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Action    Action    `json:"action"`
	Details   string    `json:"details,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Page is one page of log entries, newest first.
type Page struct {
	Entries     []Entry `json:"logs"`
	Total       int     `json:"total"`
	Pages       int     `json:"pages"`
	CurrentPage int     `json:"current_page"`
}
