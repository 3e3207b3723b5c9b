package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Divyansh8843/TaskMaster/internal/apperrors"
	"github.com/Divyansh8843/TaskMaster/internal/logger"
	"github.com/Divyansh8843/TaskMaster/internal/model"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Task implements the task CRUD collaborator. Every operation is scoped
// to the caller's user id; a task outside that scope behaves as absent.
type Task struct {
	taskStore model.TaskStore
	logger    *logger.Logger
}

func NewTask(taskStore model.TaskStore, logger *logger.Logger) *Task {
	return &Task{
		taskStore: taskStore,
		logger:    logger,
	}
}

// CreateTaskParams contains parameters to create a task.
type CreateTaskParams struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Status      model.TaskStatus
	Priority    model.TaskPriority
	DueDate     *time.Time
}

// Create stores a new task owned by the caller.
func (s *Task) Create(ctx context.Context, params CreateTaskParams) (model.Task, error) {
	if strings.TrimSpace(params.Title) == "" {
		return model.Task{}, apperrors.NewErrTitleRequired()
	}

	status := params.Status
	if status == "" {
		status = model.TaskStatusPending
	}
	if !status.Valid() {
		return model.Task{}, apperrors.NewErrInvalidInput(fmt.Sprintf("unknown status %q", status))
	}

	priority := params.Priority
	if priority == "" {
		priority = model.TaskPriorityMedium
	}
	if !priority.Valid() {
		return model.Task{}, apperrors.NewErrInvalidInput(fmt.Sprintf("unknown priority %q", priority))
	}

	now := time.Now()
	task, err := s.taskStore.Create(ctx, model.Task{
		ID:          uuid.New(),
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     params.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error("Task service: failed to create task",
			"user_id", params.UserID,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasksParams pages and filters a listing.
type ListTasksParams struct {
	UserID   uuid.UUID
	Page     int
	Limit    int
	Status   string
	Priority string
	Search   string
}

// TaskPage is one page of a task listing.
type TaskPage struct {
	Tasks       []model.Task
	TotalPages  int
	CurrentPage int
}

// List returns one page of the caller's tasks, newest first. Status and
// priority values of "" or "all" leave that dimension unfiltered.
func (s *Task) List(ctx context.Context, params ListTasksParams) (TaskPage, error) {
	page := params.Page
	if page < 1 {
		page = defaultPage
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	filter := model.TaskFilter{
		Search: strings.TrimSpace(params.Search),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if params.Status != "" && params.Status != "all" {
		filter.Status = model.TaskStatus(params.Status)
	}
	if params.Priority != "" && params.Priority != "all" {
		filter.Priority = model.TaskPriority(params.Priority)
	}

	tasks, total, err := s.taskStore.List(ctx, params.UserID, filter)
	if err != nil {
		return TaskPage{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	totalPages := (total + limit - 1) / limit

	return TaskPage{
		Tasks:       tasks,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

// Update applies a partial update to a task the caller owns.
func (s *Task) Update(ctx context.Context, userID, id uuid.UUID, params model.UpdateTaskParams) (model.Task, error) {
	task, err := s.taskStore.GetByID(ctx, userID, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Task{}, apperrors.NewErrTaskNotFound()
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	if params.Title != nil {
		if strings.TrimSpace(*params.Title) == "" {
			return model.Task{}, apperrors.NewErrTitleRequired()
		}
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Status != nil {
		if !params.Status.Valid() {
			return model.Task{}, apperrors.NewErrInvalidInput(fmt.Sprintf("unknown status %q", *params.Status))
		}
		task.Status = *params.Status
	}
	if params.Priority != nil {
		if !params.Priority.Valid() {
			return model.Task{}, apperrors.NewErrInvalidInput(fmt.Sprintf("unknown priority %q", *params.Priority))
		}
		task.Priority = *params.Priority
	}
	if params.DueDate != nil {
		task.DueDate = params.DueDate
	}
	task.UpdatedAt = time.Now()

	updated, err := s.taskStore.Update(ctx, task)
	if errors.Is(err, model.ErrNotFound) {
		return model.Task{}, apperrors.NewErrTaskNotFound()
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

// Delete removes a task the caller owns.
func (s *Task) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.taskStore.Delete(ctx, userID, id)
	if errors.Is(err, model.ErrNotFound) {
		return apperrors.NewErrTaskNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Stats aggregates the caller's task counts per status.
func (s *Task) Stats(ctx context.Context, userID uuid.UUID) (model.TaskStats, error) {
	stats, err := s.taskStore.Stats(ctx, userID)
	if err != nil {
		return model.TaskStats{}, fmt.Errorf("failed to get task stats: %w", err)
	}
	return stats, nil
}
