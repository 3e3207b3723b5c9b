// Package mocks provides testify-backed mocks for the interfaces in
// internal/model.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Divyansh8843/TaskMaster/internal/model"
)

// UserStore is a mock implementation of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByGoogleID(ctx context.Context, googleID string) (model.User, error) {
	args := m.Called(ctx, googleID)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) UpdateProfile(ctx context.Context, id uuid.UUID, name, picture string) (model.User, error) {
	args := m.Called(ctx, id, name, picture)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string) (model.User, error) {
	args := m.Called(ctx, id, googleID)
	return args.Get(0).(model.User), args.Error(1)
}
