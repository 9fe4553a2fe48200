// Package mocks provides mock implementations for testing membership HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockMembershipUseCase is a mock implementation of membershipUseCase.MembershipUseCase.
type MockMembershipUseCase struct {
	mock.Mock
}

func (m *MockMembershipUseCase) Enroll(ctx context.Context, clientID, groupID int64) error {
	args := m.Called(ctx, clientID, groupID)
	return args.Error(0)
}

func (m *MockMembershipUseCase) Evict(ctx context.Context, clientID, groupID int64) error {
	args := m.Called(ctx, clientID, groupID)
	return args.Error(0)
}

func (m *MockMembershipUseCase) Allow(ctx context.Context, groupID, seriesID int64) error {
	args := m.Called(ctx, groupID, seriesID)
	return args.Error(0)
}

func (m *MockMembershipUseCase) Disallow(ctx context.Context, groupID, seriesID int64) error {
	args := m.Called(ctx, groupID, seriesID)
	return args.Error(0)
}

func (m *MockMembershipUseCase) GroupsOfClient(ctx context.Context, clientID int64) ([]int64, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockMembershipUseCase) ClientsOfGroup(ctx context.Context, groupID int64) ([]int64, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockMembershipUseCase) GroupsOfSeries(ctx context.Context, seriesID int64) ([]int64, error) {
	args := m.Called(ctx, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockMembershipUseCase) SeriesOfGroup(ctx context.Context, groupID int64) ([]int64, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockMembershipUseCase) HasAccess(ctx context.Context, clientID, seriesID int64) (bool, error) {
	args := m.Called(ctx, clientID, seriesID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipUseCase) RemoveClient(ctx context.Context, clientID int64) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockMembershipUseCase) RemoveGroup(ctx context.Context, groupID int64) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

func (m *MockMembershipUseCase) RemoveSeries(ctx context.Context, seriesID int64) error {
	args := m.Called(ctx, seriesID)
	return args.Error(0)
}
