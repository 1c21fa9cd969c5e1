package mq

import "time"

// Routing keys for task lifecycle events.
const (
	TaskCreatedKey = "task.created"
	TaskUpdatedKey = "task.updated"
	TaskDeletedKey = "task.deleted"
)

type TaskCreatedPayload struct {
	TaskID    int        `json:"task_id"`
	UserID    int        `json:"user_id"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type TaskUpdatedPayload struct {
	TaskID    int        `json:"task_id"`
	UserID    int        `json:"user_id"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type TaskDeletedPayload struct {
	TaskID    int       `json:"task_id"`
	UserID    int       `json:"user_id"`
	DeletedAt time.Time `json:"deleted_at"`
}
