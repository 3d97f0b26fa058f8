package dto

import (
	"time"

	"github.com/spec-kit/task-service/internal/domain"
)

// TaskRequest payload for create and update. Update replaces every field,
// so callers must send the full task, not a patch.
type TaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	Remarks     string     `json:"remarks"`
}

// TaskResponse response.
type TaskResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	DueDate       *time.Time        `json:"due_date"`
	Status        domain.TaskStatus `json:"status"`
	Remarks       string            `json:"remarks"`
	CreatedOn     time.Time         `json:"created_on"`
	LastUpdatedOn time.Time         `json:"last_updated_on"`
}

// TaskStatsResponse aggregates per-status counts.
type TaskStatsResponse struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

// DeleteResponse reports the outcome of a delete request.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
