package domain

import (
	"fmt"
	"time"
)

// TaskStatus enumerates lifecycle states for tasks.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// ParseTaskStatus validates a raw status value.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	switch TaskStatus(raw) {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return TaskStatus(raw), nil
	}
	return "", fmt.Errorf("unknown task status %q", raw)
}

// Task is the aggregate for a unit of work. CreatedBy is immutable after
// creation; every read or mutation is scoped by (ID, CreatedBy).
type Task struct {
	ID            string
	Title         string
	Description   string
	DueDate       *time.Time
	Status        TaskStatus
	Remarks       string
	CreatedOn     time.Time
	LastUpdatedOn time.Time
	CreatedBy     string
	LastUpdatedBy string
}
