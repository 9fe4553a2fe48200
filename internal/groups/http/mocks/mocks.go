// Package mocks provides mock implementations for testing group HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	groupsDomain "github.com/allisson/keywhiz-core/internal/groups/domain"
)

// MockGroupUseCase is a mock implementation of groupsUseCase.GroupUseCase.
type MockGroupUseCase struct {
	mock.Mock
}

func (m *MockGroupUseCase) Create(
	ctx context.Context,
	input groupsDomain.CreateGroupInput,
) (*groupsDomain.Group, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*groupsDomain.Group), args.Error(1)
}

func (m *MockGroupUseCase) GetByID(ctx context.Context, id int64) (*groupsDomain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*groupsDomain.Group), args.Error(1)
}

func (m *MockGroupUseCase) GetByName(ctx context.Context, name string) (*groupsDomain.Group, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*groupsDomain.Group), args.Error(1)
}

func (m *MockGroupUseCase) ListAll(ctx context.Context) ([]groupsDomain.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]groupsDomain.Group), args.Error(1)
}

func (m *MockGroupUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
