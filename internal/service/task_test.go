package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Divyansh8843/TaskMaster/internal/apperrors"
	"github.com/Divyansh8843/TaskMaster/internal/logger"
	servermocks "github.com/Divyansh8843/TaskMaster/internal/mocks"
	"github.com/Divyansh8843/TaskMaster/internal/model"
)

func TestTask_Create_Defaults(t *testing.T) {
	ctx := context.Background()
	taskStore := &servermocks.TaskStore{}

	userID := uuid.New()
	taskStore.On("Create", mock.Anything, mock.MatchedBy(func(task model.Task) bool {
		return task.UserID == userID &&
			task.Status == model.TaskStatusPending &&
			task.Priority == model.TaskPriorityMedium
	})).Return(model.Task{ID: uuid.New(), Title: "buy milk"}, nil)

	s := NewTask(taskStore, logger.New(0))

	task, err := s.Create(ctx, CreateTaskParams{UserID: userID, Title: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "buy milk", task.Title)
	taskStore.AssertExpectations(t)
}

func TestTask_Create_TitleRequired(t *testing.T) {
	ctx := context.Background()
	taskStore := &servermocks.TaskStore{}

	s := NewTask(taskStore, logger.New(0))

	_, err := s.Create(ctx, CreateTaskParams{UserID: uuid.New(), Title: "   "})
	require.Error(t, err)

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.HTTPStatus)
	taskStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTask_Create_InvalidStatus(t *testing.T) {
	ctx := context.Background()
	taskStore := &servermocks.TaskStore{}

	s := NewTask(taskStore, logger.New(0))

	_, err := s.Create(ctx, CreateTaskParams{
		UserID: uuid.New(),
		Title:  "t",
		Status: model.TaskStatus("done"),
	})
	require.Error(t, err)

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.HTTPStatus)
}

func TestTask_List_DefaultsAndPaging(t *testing.T) {
	ctx := context.Background()
	taskStore := &servermocks.TaskStore{}

	userID := uuid.New()
	taskStore.On("List", mock.Anything, userID, model.TaskFilter{Limit: 10, Offset: 0}).
		Return([]model.Task{{ID: uuid.New()}}, 25, nil)

	s := NewTask(taskStore, logger.New(0))

	page, err := s.List(ctx, ListTasksParams{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Tasks, 1)
}

func TestTask_List_AllFilterIsNoFilter(t *testing.T) {
	ctx := context.Background()
	taskStore := &servermocks.TaskStore{}

	userID := uuid.New()
	taskStore.On("List", mock.Anything, userID, model.TaskFilter{Limit: 10, Offset: 0}).
		Return([]model.Task{}, 0, nil)

	s := NewTask(taskStore, logger.New(0))

	_, err := s.List(ctx, ListTasksParams{UserID: userID, Status: "all", Priority: "all"})
	require.NoError(t, err)
	taskStore.AssertExpectations(t)
}

func TestTask_List_FiltersAndOffset(t *testing.T) {
	ctx := context.Background()
	taskStore := &servermocks.TaskStore{}

	userID := uuid.New()
	taskStore.On("List", mock.Anything, userID, model.TaskFilter{
		Status:   model.TaskStatusCompleted,
		Priority: model.TaskPriorityHigh,
		Search:   "report",
		Limit:    5,
		Offset:   10,
	}).Return([]model.Task{}, 0, nil)

	s := NewTask(taskStore, logger.New(0))

	page, err := s.List(ctx, ListTasksParams{
		UserID:   userID,
		Page:     3,
		Limit:    5,
		Status:   "completed",
		Priority: "high",
		Search:   " report ",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, 0, page.TotalPages)
}

func TestTask_List_LimitCapped(t *testing.T) {
	ctx := context.Background()
	taskStore := &servermocks.TaskStore{}

	userID := uuid.New()
	taskStore.On("List", mock.Anything, userID, model.TaskFilter{Limit: 100, Offset: 0}).
		Return([]model.Task{}, 0, nil)

	s := NewTask(taskStore, logger.New(0))

	_, err := s.List(ctx, ListTasksParams{UserID: userID, Limit: 500})
	require.NoError(t, err)
	taskStore.AssertExpectations(t)
}

func TestTask_Update_PartialApply(t *testing.T) {
	ctx := context.Background()
	taskStore := &servermocks.TaskStore{}

	userID := uuid.New()
	taskID := uuid.New()
	taskStore.On("GetByID", mock.Anything, userID, taskID).Return(model.Task{
		ID:          taskID,
		UserID:      userID,
		Title:       "old",
		Description: "keep me",
		Status:      model.TaskStatusPending,
		Priority:    model.TaskPriorityLow,
	}, nil)

	status := model.TaskStatusCompleted
	taskStore.On("Update", mock.Anything, mock.MatchedBy(func(task model.Task) bool {
		return task.ID == taskID &&
			task.Title == "old" &&
			task.Description == "keep me" &&
			task.Status == model.TaskStatusCompleted &&
			task.Priority == model.TaskPriorityLow
	})).Return(model.Task{ID: taskID, Status: model.TaskStatusCompleted}, nil)

	s := NewTask(taskStore, logger.New(0))

	updated, err := s.Update(ctx, userID, taskID, model.UpdateTaskParams{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusCompleted, updated.Status)
}

func TestTask_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	taskStore := &servermocks.TaskStore{}

	userID := uuid.New()
	taskID := uuid.New()
	taskStore.On("GetByID", mock.Anything, userID, taskID).Return(model.Task{}, model.ErrNotFound)

	s := NewTask(taskStore, logger.New(0))

	_, err := s.Update(ctx, userID, taskID, model.UpdateTaskParams{})
	require.Error(t, err)

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.HTTPStatus)
}

func TestTask_Update_EmptyTitleRejected(t *testing.T) {
	ctx := context.Background()
	taskStore := &servermocks.TaskStore{}

	userID := uuid.New()
	taskID := uuid.New()
	taskStore.On("GetByID", mock.Anything, userID, taskID).Return(model.Task{ID: taskID, Title: "old"}, nil)

	s := NewTask(taskStore, logger.New(0))

	empty := "  "
	_, err := s.Update(ctx, userID, taskID, model.UpdateTaskParams{Title: &empty})
	require.Error(t, err)
	taskStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTask_Update_DueDate(t *testing.T) {
	ctx := context.Background()
	taskStore := &servermocks.TaskStore{}

	userID := uuid.New()
	taskID := uuid.New()
	due := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	taskStore.On("GetByID", mock.Anything, userID, taskID).Return(model.Task{ID: taskID, Title: "t"}, nil)
	taskStore.On("Update", mock.Anything, mock.MatchedBy(func(task model.Task) bool {
		return task.DueDate != nil && task.DueDate.Equal(due)
	})).Return(model.Task{ID: taskID, DueDate: &due}, nil)

	s := NewTask(taskStore, logger.New(0))

	updated, err := s.Update(ctx, userID, taskID, model.UpdateTaskParams{DueDate: &due})
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)
}

func TestTask_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	taskStore := &servermocks.TaskStore{}

	userID := uuid.New()
	taskID := uuid.New()
	taskStore.On("Delete", mock.Anything, userID, taskID).Return(model.ErrNotFound)

	s := NewTask(taskStore, logger.New(0))

	err := s.Delete(ctx, userID, taskID)
	require.Error(t, err)

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.HTTPStatus)
}

func TestTask_Stats(t *testing.T) {
	ctx := context.Background()
	taskStore := &servermocks.TaskStore{}

	userID := uuid.New()
	taskStore.On("Stats", mock.Anything, userID).Return(model.TaskStats{
		Total:      4,
		Pending:    1,
		InProgress: 1,
		Completed:  2,
	}, nil)

	s := NewTask(taskStore, logger.New(0))

	stats, err := s.Stats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Completed)
}
