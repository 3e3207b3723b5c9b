//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Divyansh8843/TaskMaster/internal/model"
	repo "github.com/Divyansh8843/TaskMaster/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "taskmaster_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/taskmaster_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(email string) model.User {
	now := time.Now()
	return model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "hashed",
		Roles:        []string{model.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	u := newUser("user@example.com")
	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)
	require.Equal(t, u.ID, saved.ID)
	require.Equal(t, []string{model.RoleUser}, saved.Roles)

	byEmail, err := ur.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	byID, err := ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)

	_, err = ur.GetByEmail(ctx, "absent@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = ur.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)

	dup := newUser(u.Email)
	_, err = ur.Create(ctx, dup)
	require.ErrorIs(t, err, model.ErrAlreadyExists)

	updated, err := ur.UpdateProfile(ctx, u.ID, "Renamed", "https://pic")
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, "https://pic", updated.Picture)
}

func TestUserRepository_GoogleLink(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	u := newUser("google-link@example.com")
	_, err = ur.Create(ctx, u)
	require.NoError(t, err)

	_, err = ur.GetByGoogleID(ctx, "sub-123")
	require.ErrorIs(t, err, model.ErrNotFound)

	linked, err := ur.LinkGoogleID(ctx, u.ID, "sub-123")
	require.NoError(t, err)
	require.NotNil(t, linked.GoogleID)
	require.Equal(t, "sub-123", *linked.GoogleID)

	bySub, err := ur.GetByGoogleID(ctx, "sub-123")
	require.NoError(t, err)
	require.Equal(t, u.ID, bySub.ID)

	// the subject is unique across users
	other := newUser("google-link-2@example.com")
	_, err = ur.Create(ctx, other)
	require.NoError(t, err)

	_, err = ur.LinkGoogleID(ctx, other.ID, "sub-123")
	require.ErrorIs(t, err, model.ErrAlreadyExists)
}

func TestTaskRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	tr := repo.NewTaskRepository(conn)

	owner := newUser("task-owner@example.com")
	_, err = ur.Create(ctx, owner)
	require.NoError(t, err)

	stranger := newUser("task-stranger@example.com")
	_, err = ur.Create(ctx, stranger)
	require.NoError(t, err)

	now := time.Now()
	task := model.Task{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Title:       "write report",
		Description: "quarterly numbers",
		Status:      model.TaskStatusPending,
		Priority:    model.TaskPriorityHigh,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	saved, err := tr.Create(ctx, task)
	require.NoError(t, err)
	require.Equal(t, task.ID, saved.ID)

	got, err := tr.GetByID(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, "write report", got.Title)

	// invisible outside the owner's scope
	_, err = tr.GetByID(ctx, stranger.ID, task.ID)
	require.ErrorIs(t, err, model.ErrNotFound)

	got.Status = model.TaskStatusCompleted
	got.UpdatedAt = time.Now()
	updated, err := tr.Update(ctx, got)
	require.NoError(t, err)
	require.Equal(t, model.TaskStatusCompleted, updated.Status)

	err = tr.Delete(ctx, stranger.ID, task.ID)
	require.ErrorIs(t, err, model.ErrNotFound)

	err = tr.Delete(ctx, owner.ID, task.ID)
	require.NoError(t, err)

	err = tr.Delete(ctx, owner.ID, task.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestTaskRepository_ListAndStats(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	tr := repo.NewTaskRepository(conn)

	owner := newUser("list-owner@example.com")
	_, err = ur.Create(ctx, owner)
	require.NoError(t, err)

	seed := []struct {
		title    string
		status   model.TaskStatus
		priority model.TaskPriority
	}{
		{"groceries", model.TaskStatusPending, model.TaskPriorityLow},
		{"write report", model.TaskStatusInProgress, model.TaskPriorityHigh},
		{"review report", model.TaskStatusCompleted, model.TaskPriorityHigh},
		{"walk the dog", model.TaskStatusCompleted, model.TaskPriorityMedium},
	}
	for i, s := range seed {
		now := time.Now().Add(time.Duration(i) * time.Millisecond)
		_, err := tr.Create(ctx, model.Task{
			ID:        uuid.New(),
			UserID:    owner.ID,
			Title:     s.title,
			Status:    s.status,
			Priority:  s.priority,
			CreatedAt: now,
			UpdatedAt: now,
		})
		require.NoError(t, err)
	}

	all, total, err := tr.List(ctx, owner.ID, model.TaskFilter{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.Len(t, all, 4)

	completed, total, err := tr.List(ctx, owner.ID, model.TaskFilter{Status: model.TaskStatusCompleted, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, completed, 2)

	high, total, err := tr.List(ctx, owner.ID, model.TaskFilter{Priority: model.TaskPriorityHigh, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, high, 2)

	search, total, err := tr.List(ctx, owner.ID, model.TaskFilter{Search: "report", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, search, 2)

	paged, total, err := tr.List(ctx, owner.ID, model.TaskFilter{Limit: 3})
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.Len(t, paged, 3)

	rest, _, err := tr.List(ctx, owner.ID, model.TaskFilter{Limit: 3, Offset: 3})
	require.NoError(t, err)
	require.Len(t, rest, 1)

	stats, err := tr.Stats(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, 4, stats.Total)
	require.Equal(t, 1, stats.Pending)
	require.Equal(t, 1, stats.InProgress)
	require.Equal(t, 2, stats.Completed)
}
