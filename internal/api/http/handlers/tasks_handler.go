package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/task-service/internal/api/dto"
	"github.com/spec-kit/task-service/internal/auth"
	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/service"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

const dateLayout = "2006-01-02"

// TasksHandler manages task endpoints for the authenticated owner.
type TasksHandler struct {
	service  *service.TaskService
	activity *service.ActivityService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService, activityService *service.ActivityService) *TasksHandler {
	return &TasksHandler{service: taskService, activity: activityService}
}

// List GET /tasks.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	tasks, err := h.service.ListAll(c.Context(), owner)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskResponses(tasks)})
}

// Get GET /tasks/:id.
func (h *TasksHandler) Get(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	task, err := h.service.GetByID(c.Context(), c.Params("id"), owner)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskResponse(task)})
}

// Create POST /tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.service.Create(c.Context(), owner, taskInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": taskResponse(task)})
}

// Update PUT /tasks/:id.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.service.Update(c.Context(), c.Params("id"), owner, taskInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskResponse(task)})
}

// Delete DELETE /tasks/:id.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	deleted, err := h.service.Delete(c.Context(), c.Params("id"), owner)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DeleteResponse{Deleted: deleted}})
}

// Search GET /tasks/search?keyword=.
func (h *TasksHandler) Search(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	tasks, err := h.service.Search(c.Context(), owner, c.Query("keyword"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskResponses(tasks)})
}

// ByStatus GET /tasks/status/:status.
func (h *TasksHandler) ByStatus(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	tasks, err := h.service.ListByStatus(c.Context(), owner, domain.TaskStatus(c.Params("status")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskResponses(tasks)})
}

// ByDateRange GET /tasks/date-range?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *TasksHandler) ByDateRange(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	start, err := time.Parse(dateLayout, c.Query("start"))
	if err != nil {
		return apperrors.NewValidationError("start must be a date in YYYY-MM-DD form", nil)
	}
	end, err := time.Parse(dateLayout, c.Query("end"))
	if err != nil {
		return apperrors.NewValidationError("end must be a date in YYYY-MM-DD form", nil)
	}

	tasks, err := h.service.ListByDueDateRange(c.Context(), owner, start, end)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskResponses(tasks)})
}

// Stats GET /tasks/stats.
func (h *TasksHandler) Stats(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	stats, err := h.service.Stats(c.Context(), owner)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TaskStatsResponse{
		Total:      stats.Total,
		Pending:    stats.Pending,
		InProgress: stats.InProgress,
		Completed:  stats.Completed,
		Cancelled:  stats.Cancelled,
	}})
}

// Activity GET /tasks/activity.
func (h *TasksHandler) Activity(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	entries, err := h.activity.ListRecent(c.Context(), owner)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": entries})
}

func ownerID(c *fiber.Ctx) (string, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return "", apperrors.NewUnauthorized("authentication required")
	}
	return principal.User.ID, nil
}

func taskInput(req dto.TaskRequest) service.TaskInput {
	return service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      domain.TaskStatus(req.Status),
		Remarks:     req.Remarks,
	}
}

func taskResponse(task *domain.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		DueDate:       task.DueDate,
		Status:        task.Status,
		Remarks:       task.Remarks,
		CreatedOn:     task.CreatedOn,
		LastUpdatedOn: task.LastUpdatedOn,
	}
}

func taskResponses(tasks []domain.Task) []dto.TaskResponse {
	items := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, taskResponse(&tasks[i]))
	}
	return items
}
