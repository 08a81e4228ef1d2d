// Package grouping decides how the tasks of a single day are presented to a
// role. Both the calendar grid and the hierarchy call the same Policy.
package grouping

import (
	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/domain/user"
)

// TaskView is a task as shown to a viewer, with the actions the viewer may take on it.
type TaskView struct {
	task.Task
	Editable  bool `json:"editable"`
	Deletable bool `json:"deletable"`
}

// UserGroup holds one contributor's tasks for a day.
type UserGroup struct {
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Tasks    []TaskView  `json:"tasks"`
	Counts   task.Counts `json:"counts"`
}

// DayView is the grouped form of one day's tasks. Individual views fill Tasks;
// manager views fill Users.
type DayView struct {
	Role  user.Role   `json:"role"`
	Tasks []TaskView  `json:"tasks,omitempty"`
	Users []UserGroup `json:"users,omitempty"`
}

// All returns every task in the view in presentation order.
func (v DayView) All() []TaskView {
	if len(v.Users) == 0 {
		return v.Tasks
	}
	var out []TaskView
	for _, g := range v.Users {
		out = append(out, g.Tasks...)
	}
	return out
}

// Len returns the number of tasks in the view.
func (v DayView) Len() int {
	n := len(v.Tasks)
	for _, g := range v.Users {
		n += len(g.Tasks)
	}
	return n
}

// Group returns the group for username, if present.
func (v DayView) Group(username string) (UserGroup, bool) {
	for _, g := range v.Users {
		if g.Username == username {
			return g, true
		}
	}
	return UserGroup{}, false
}

// Policy groups the tasks of one day for a role. Implementations are pure.
type Policy interface {
	Role() user.Role
	Group(tasks []task.Task) DayView
}

// ForRole returns the policy for role. Any role other than manager gets the
// individual policy.
func ForRole(role user.Role) Policy {
	if role == user.RoleManager {
		return Manager{}
	}
	return Individual{}
}

// Manager groups tasks by owner username in first-seen order. Every task is read-only.
type Manager struct{}

func (Manager) Role() user.Role { return user.RoleManager }

func (Manager) Group(tasks []task.Task) DayView {
	view := DayView{Role: user.RoleManager}
	index := make(map[string]int)
	for _, t := range tasks {
		i, ok := index[t.UserUsername]
		if !ok {
			i = len(view.Users)
			index[t.UserUsername] = i
			view.Users = append(view.Users, UserGroup{Username: t.UserUsername, Name: t.UserName})
		}
		view.Users[i].Tasks = append(view.Users[i].Tasks, TaskView{Task: t})
		view.Users[i].Counts.Add(t.Priority)
	}
	return view
}

// Individual lists tasks flat, in input order, each editable and deletable.
type Individual struct{}

func (Individual) Role() user.Role { return user.RoleEmployee }

func (Individual) Group(tasks []task.Task) DayView {
	view := DayView{Role: user.RoleEmployee}
	if len(tasks) == 0 {
		return view
	}
	view.Tasks = make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		view.Tasks = append(view.Tasks, TaskView{Task: t, Editable: true, Deletable: true})
	}
	return view
}
