// Package mocks provides mock implementations for testing client HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	clientsDomain "github.com/allisson/keywhiz-core/internal/clients/domain"
)

// MockClientUseCase is a mock implementation of clientsUseCase.ClientUseCase.
type MockClientUseCase struct {
	mock.Mock
}

func (m *MockClientUseCase) Create(
	ctx context.Context,
	input clientsDomain.CreateClientInput,
) (*clientsDomain.Client, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clientsDomain.Client), args.Error(1)
}

func (m *MockClientUseCase) GetByID(ctx context.Context, id int64) (*clientsDomain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clientsDomain.Client), args.Error(1)
}

func (m *MockClientUseCase) GetByName(ctx context.Context, name string) (*clientsDomain.Client, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clientsDomain.Client), args.Error(1)
}

func (m *MockClientUseCase) ListAll(ctx context.Context) ([]clientsDomain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clientsDomain.Client), args.Error(1)
}

func (m *MockClientUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
