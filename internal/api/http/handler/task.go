package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Divyansh8843/TaskMaster/internal/apperrors"
	"github.com/Divyansh8843/TaskMaster/internal/logger"
	"github.com/Divyansh8843/TaskMaster/internal/model"
	"github.com/Divyansh8843/TaskMaster/internal/service"
)

// TaskService defines the task operations the handler consumes.
type TaskService interface {
	Create(ctx context.Context, params service.CreateTaskParams) (model.Task, error)
	List(ctx context.Context, params service.ListTasksParams) (service.TaskPage, error)
	Update(ctx context.Context, userID, id uuid.UUID, params model.UpdateTaskParams) (model.Task, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Stats(ctx context.Context, userID uuid.UUID) (model.TaskStats, error)
}

// Task handles the HTTP endpoints for task management. Every operation
// is scoped to the user id resolved by the authentication middleware.
type Task struct {
	taskService    TaskService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewTask creates a new Task handler.
func NewTask(taskService TaskService, contextManager model.ContextManager, logger *logger.Logger) *Task {
	return &Task{
		taskService:    taskService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type taskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type taskPageResponse struct {
	Tasks       []taskResponse `json:"tasks"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

type taskStatsResponse struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

func toTaskResponse(t model.Task) taskResponse {
	return taskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// Create stores a new task for the caller.
func (h *Task) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		handleError(w, apperrors.NewErrMissingAuthorizationToken())
		return
	}

	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	params := service.CreateTaskParams{
		UserID:  userID,
		DueDate: req.DueDate,
	}
	if req.Title != nil {
		params.Title = *req.Title
	}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.Status != nil {
		params.Status = model.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		params.Priority = model.TaskPriority(*req.Priority)
	}

	task, err := h.taskService.Create(r.Context(), params)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

// List returns one page of the caller's tasks.
func (h *Task) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		handleError(w, apperrors.NewErrMissingAuthorizationToken())
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.taskService.List(r.Context(), service.ListTasksParams{
		UserID:   userID,
		Page:     page,
		Limit:    limit,
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Search:   q.Get("search"),
	})
	if err != nil {
		h.logger.Error("Task handler: list failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	tasks := make([]taskResponse, 0, len(result.Tasks))
	for _, t := range result.Tasks {
		tasks = append(tasks, toTaskResponse(t))
	}

	writeJSON(w, http.StatusOK, taskPageResponse{
		Tasks:       tasks,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
	})
}

// Update applies a partial update to one of the caller's tasks.
func (h *Task) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		handleError(w, apperrors.NewErrMissingAuthorizationToken())
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		handleError(w, apperrors.NewErrTaskNotFound())
		return
	}

	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	params := model.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		params.Status = &status
	}
	if req.Priority != nil {
		priority := model.TaskPriority(*req.Priority)
		params.Priority = &priority
	}

	task, err := h.taskService.Update(r.Context(), userID, taskID, params)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// Delete removes one of the caller's tasks.
func (h *Task) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		handleError(w, apperrors.NewErrMissingAuthorizationToken())
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		handleError(w, apperrors.NewErrTaskNotFound())
		return
	}

	if err := h.taskService.Delete(r.Context(), userID, taskID); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "task deleted successfully"})
}

// Stats aggregates the caller's task counts.
func (h *Task) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		handleError(w, apperrors.NewErrMissingAuthorizationToken())
		return
	}

	stats, err := h.taskService.Stats(r.Context(), userID)
	if err != nil {
		h.logger.Error("Task handler: stats failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, taskStatsResponse{
		Total:      stats.Total,
		Pending:    stats.Pending,
		InProgress: stats.InProgress,
		Completed:  stats.Completed,
	})
}
