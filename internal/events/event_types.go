package events

import (
	"time"

	"github.com/spec-kit/task-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventTaskCreated    EventType = "task_created"
	EventTaskUpdated    EventType = "task_updated"
	EventTaskDeleted    EventType = "task_deleted"
)

// Event represents a domain event emitted by services. OwnerID is the user
// whose collection the event belongs to.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	OwnerID   string      `json:"owner_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string `json:"username"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	TaskID string            `json:"task_id"`
	Title  string            `json:"title"`
	Status domain.TaskStatus `json:"status"`
}

// TaskUpdatedPayload payload.
type TaskUpdatedPayload struct {
	TaskID    string            `json:"task_id"`
	Title     string            `json:"title"`
	OldStatus domain.TaskStatus `json:"old_status"`
	NewStatus domain.TaskStatus `json:"new_status"`
}

// TaskDeletedPayload payload.
type TaskDeletedPayload struct {
	TaskID string `json:"task_id"`
}
