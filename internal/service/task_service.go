package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/events"
	"github.com/spec-kit/task-service/internal/repository"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

// TaskService coordinates ownership-scoped task workflows. Every operation
// takes the resolved owner explicitly; no ambient caller state exists here.
type TaskService struct {
	tasks      repository.TaskRepository
	dispatcher events.Dispatcher
}

// TaskDependencies bundles requirements for the task service.
type TaskDependencies struct {
	TaskRepo   repository.TaskRepository
	Dispatcher events.Dispatcher
}

// TaskInput carries the caller-supplied task fields. Update replaces all of
// them; a field the caller omits is replaced by its zero value, not kept.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Status      domain.TaskStatus
	Remarks     string
}

// TaskStats aggregates per-status counts for an owner.
type TaskStats struct {
	Total      int
	Pending    int
	InProgress int
	Completed  int
	Cancelled  int
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:      deps.TaskRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListAll returns the owner's tasks, newest first.
func (s *TaskService) ListAll(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

// GetByID fetches a task scoped by owner. A task owned by someone else is
// reported as not found.
func (s *TaskService) GetByID(ctx context.Context, taskID, ownerID string) (*domain.Task, error) {
	task, err := s.tasks.GetByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("task", nil)
		}
		return nil, err
	}
	return task, nil
}

// Create persists a new task for the owner. The store stamps both
// timestamps; status defaults to PENDING when omitted.
func (s *TaskService) Create(ctx context.Context, ownerID string, input TaskInput) (*domain.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	status := input.Status
	if status == "" {
		status = domain.TaskStatusPending
	} else if _, err := domain.ParseTaskStatus(string(status)); err != nil {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(status)})
	}

	task := &domain.Task{
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		DueDate:       input.DueDate,
		Status:        status,
		Remarks:       input.Remarks,
		CreatedBy:     ownerID,
		LastUpdatedBy: ownerID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventTaskCreated,
		OwnerID: ownerID,
		Payload: events.TaskCreatedPayload{TaskID: task.ID, Title: task.Title, Status: task.Status},
	})
	return task, nil
}

// Update replaces title, description, due date, status and remarks on the
// owner's task. Unlike Delete, a missing or non-owned task is an error.
func (s *TaskService) Update(ctx context.Context, taskID, ownerID string, input TaskInput) (*domain.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if _, err := domain.ParseTaskStatus(string(input.Status)); err != nil {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(input.Status)})
	}

	task, err := s.tasks.GetByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("task", nil)
		}
		return nil, err
	}

	oldStatus := task.Status
	task.Title = strings.TrimSpace(input.Title)
	task.Description = input.Description
	task.DueDate = input.DueDate
	task.Status = input.Status
	task.Remarks = input.Remarks
	task.LastUpdatedBy = ownerID

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("task", nil)
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventTaskUpdated,
		OwnerID: ownerID,
		Payload: events.TaskUpdatedPayload{
			TaskID:    task.ID,
			Title:     task.Title,
			OldStatus: oldStatus,
			NewStatus: task.Status,
		},
	})
	return task, nil
}

// Delete removes the owner's task and reports whether anything was deleted.
// Deleting an absent or non-owned task is a no-op, not an error.
func (s *TaskService) Delete(ctx context.Context, taskID, ownerID string) (bool, error) {
	deleted, err := s.tasks.Delete(ctx, taskID, ownerID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publishEvent(ctx, events.Event{
			Type:    events.EventTaskDeleted,
			OwnerID: ownerID,
			Payload: events.TaskDeletedPayload{TaskID: taskID},
		})
	}
	return deleted, nil
}

// Search matches the keyword case-insensitively against title, description
// or remarks. A blank keyword lists everything.
func (s *TaskService) Search(ctx context.Context, ownerID, keyword string) ([]domain.Task, error) {
	if strings.TrimSpace(keyword) == "" {
		return s.tasks.ListByOwner(ctx, ownerID)
	}
	return s.tasks.SearchByKeyword(ctx, ownerID, keyword)
}

// ListByStatus returns the owner's tasks with the given status.
func (s *TaskService) ListByStatus(ctx context.Context, ownerID string, status domain.TaskStatus) ([]domain.Task, error) {
	parsed, err := domain.ParseTaskStatus(string(status))
	if err != nil {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(status)})
	}
	return s.tasks.ListByOwnerAndStatus(ctx, ownerID, parsed)
}

// ListByDueDateRange returns tasks whose due date falls on any day from
// start through end inclusive. Inputs are calendar dates; the time portion
// is discarded.
func (s *TaskService) ListByDueDateRange(ctx context.Context, ownerID string, start, end time.Time) ([]domain.Task, error) {
	from := startOfDay(start)
	until := startOfDay(end).Add(24 * time.Hour)
	if until.Before(from) {
		return nil, apperrors.NewValidationError("start date must not be after end date", nil)
	}
	return s.tasks.ListByOwnerAndDueDateBetween(ctx, ownerID, from, until)
}

// Stats classifies the owner's full task set. It deliberately reuses the
// list query rather than separate count queries, so total always equals the
// sum of the per-status counts.
func (s *TaskService) Stats(ctx context.Context, ownerID string) (*TaskStats, error) {
	tasks, err := s.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &TaskStats{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case domain.TaskStatusPending:
			stats.Pending++
		case domain.TaskStatusInProgress:
			stats.InProgress++
		case domain.TaskStatusCompleted:
			stats.Completed++
		case domain.TaskStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

func (s *TaskService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, stampEvent(event))
}

func stampEvent(event events.Event) events.Event {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return event
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
