package task

import "time"

// Priority is the urgency of a task. Values outside the known set are kept as-is.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Known reports whether p is one of high, medium or low.
func (p Priority) Known() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Status is the workflow state of a task.
type Status string

const (
	StatusInProgress Status = "in_progress"
)

// Task is an immutable snapshot of one entry in the shared task log.
type Task struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Date         Date      `json:"date"`
	Priority     Priority  `json:"priority"`
	Status       Status    `json:"status"`
	UserID       string    `json:"user_id"`
	UserUsername string    `json:"user_username"`
	UserName     string    `json:"user_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Counts is a rollup of tasks partitioned by priority. Tasks with an unknown
// priority count toward Total only.
type Counts struct {
	Total  int `json:"total"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Add counts one task of priority p.
func (c *Counts) Add(p Priority) {
	c.Total++
	switch p {
	case PriorityHigh:
		c.High++
	case PriorityMedium:
		c.Medium++
	case PriorityLow:
		c.Low++
	}
}

// CountAll returns the rollup of tasks.
func CountAll(tasks []Task) Counts {
	var c Counts
	for _, t := range tasks {
		c.Add(t.Priority)
	}
	return c
}
