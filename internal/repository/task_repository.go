package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/task-service/internal/domain"
)

const taskColumns = `id, title, description, due_date, status, remarks,
               created_on, last_updated_on, created_by, last_updated_by`

// TaskRepository is the task store port. Every lookup and mutation other
// than Create is scoped by owner in the WHERE clause, so a task owned by
// someone else behaves exactly like a missing one. The store stamps
// created_on at insert and last_updated_on on every write.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	SearchByKeyword(ctx context.Context, ownerID, keyword string) ([]domain.Task, error)
	ListByOwnerAndStatus(ctx context.Context, ownerID string, status domain.TaskStatus) ([]domain.Task, error)
	ListByOwnerAndDueDateBetween(ctx context.Context, ownerID string, from, until time.Time) ([]domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (title, description, due_date, status, remarks, created_by, last_updated_by)
        VALUES ($1,$2,$3,$4,$5,$6,$6)
        RETURNING id, created_on, last_updated_on`
	return r.pool.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.DueDate,
		task.Status,
		task.Remarks,
		task.CreatedBy,
	).Scan(&task.ID, &task.CreatedOn, &task.LastUpdatedOn)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE tasks SET title=$1, description=$2, due_date=$3, status=$4, remarks=$5,
            last_updated_by=$6, last_updated_on=NOW()
        WHERE id=$7 AND created_by=$6
        RETURNING last_updated_on`
	err := r.pool.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.DueDate,
		task.Status,
		task.Remarks,
		task.LastUpdatedBy,
		task.ID,
	).Scan(&task.LastUpdatedOn)
	if err != nil {
		return err
	}
	return nil
}

func (r *taskRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	const query = `
        SELECT ` + taskColumns + `
        FROM tasks WHERE id=$1 AND created_by=$2`
	var task domain.Task
	if err := scanTask(r.pool.QueryRow(ctx, query, id, ownerID), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	const query = `
        SELECT ` + taskColumns + `
        FROM tasks WHERE created_by=$1
        ORDER BY created_on DESC`
	return r.list(ctx, query, ownerID)
}

func (r *taskRepository) SearchByKeyword(ctx context.Context, ownerID, keyword string) ([]domain.Task, error) {
	const query = `
        SELECT ` + taskColumns + `
        FROM tasks WHERE created_by=$1
          AND (LOWER(title) LIKE $2 OR LOWER(description) LIKE $2 OR LOWER(remarks) LIKE $2)
        ORDER BY created_on DESC`
	pattern := "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"
	return r.list(ctx, query, ownerID, pattern)
}

func (r *taskRepository) ListByOwnerAndStatus(ctx context.Context, ownerID string, status domain.TaskStatus) ([]domain.Task, error) {
	const query = `
        SELECT ` + taskColumns + `
        FROM tasks WHERE created_by=$1 AND status=$2
        ORDER BY created_on DESC`
	return r.list(ctx, query, ownerID, status)
}

// ListByOwnerAndDueDateBetween matches due dates in the half-open interval
// [from, until); callers normalize calendar-date inputs to day boundaries.
func (r *taskRepository) ListByOwnerAndDueDateBetween(ctx context.Context, ownerID string, from, until time.Time) ([]domain.Task, error) {
	const query = `
        SELECT ` + taskColumns + `
        FROM tasks WHERE created_by=$1 AND due_date >= $2 AND due_date < $3
        ORDER BY due_date ASC`
	return r.list(ctx, query, ownerID, from, until)
}

// Delete reports whether a row matched; absence is not an error.
func (r *taskRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id=$1 AND created_by=$2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *taskRepository) list(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner, task *domain.Task) error {
	return row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Status,
		&task.Remarks,
		&task.CreatedOn,
		&task.LastUpdatedOn,
		&task.CreatedBy,
		&task.LastUpdatedBy,
	)
}

func scanTasks(rows pgx.Rows) ([]domain.Task, error) {
	var result []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := scanTask(rows, &task); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	return result, rows.Err()
}
