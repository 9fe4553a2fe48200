package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/keywhiz-core/internal/errors"
)

// mockMembershipRepository mocks membershipRepository.MembershipRepository.
type mockMembershipRepository struct {
	mock.Mock
}

func (m *mockMembershipRepository) Enroll(ctx context.Context, clientID, groupID int64) error {
	args := m.Called(ctx, clientID, groupID)
	return args.Error(0)
}

func (m *mockMembershipRepository) Evict(ctx context.Context, clientID, groupID int64) error {
	args := m.Called(ctx, clientID, groupID)
	return args.Error(0)
}

func (m *mockMembershipRepository) Allow(ctx context.Context, groupID, seriesID int64) error {
	args := m.Called(ctx, groupID, seriesID)
	return args.Error(0)
}

func (m *mockMembershipRepository) Disallow(ctx context.Context, groupID, seriesID int64) error {
	args := m.Called(ctx, groupID, seriesID)
	return args.Error(0)
}

func (m *mockMembershipRepository) GroupIDsForClient(ctx context.Context, clientID int64) ([]int64, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockMembershipRepository) ClientIDsForGroup(ctx context.Context, groupID int64) ([]int64, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockMembershipRepository) GroupIDsForSeries(ctx context.Context, seriesID int64) ([]int64, error) {
	args := m.Called(ctx, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockMembershipRepository) SeriesIDsForGroup(ctx context.Context, groupID int64) ([]int64, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockMembershipRepository) ClientHasAccessToSeries(ctx context.Context, clientID, seriesID int64) (bool, error) {
	args := m.Called(ctx, clientID, seriesID)
	return args.Bool(0), args.Error(1)
}

func (m *mockMembershipRepository) RemoveClient(ctx context.Context, clientID int64) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *mockMembershipRepository) RemoveGroup(ctx context.Context, groupID int64) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

func (m *mockMembershipRepository) RemoveSeries(ctx context.Context, seriesID int64) error {
	args := m.Called(ctx, seriesID)
	return args.Error(0)
}

// fakeTxManager runs fn directly against ctx, without a real transaction, to
// exercise WithTx call sites in isolation from the database.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func TestMembershipUseCase_RemoveGroup_WrapsBothDeletesInOneTx(t *testing.T) {
	repo := new(mockMembershipRepository)
	tx := &fakeTxManager{}
	uc := NewMembershipUseCase(repo, tx)

	repo.On("RemoveGroup", mock.Anything, int64(5)).Return(nil).Once()

	err := uc.RemoveGroup(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	repo.AssertExpectations(t)
}

func TestMembershipUseCase_RemoveGroup_PropagatesRepoError(t *testing.T) {
	repo := new(mockMembershipRepository)
	tx := &fakeTxManager{}
	uc := NewMembershipUseCase(repo, tx)

	repo.On("RemoveGroup", mock.Anything, int64(5)).Return(apperrors.ErrNotFound).Once()

	err := uc.RemoveGroup(context.Background(), 5)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMembershipUseCase_RemoveClient_DoesNotRequireTx(t *testing.T) {
	repo := new(mockMembershipRepository)
	tx := &fakeTxManager{}
	uc := NewMembershipUseCase(repo, tx)

	repo.On("RemoveClient", mock.Anything, int64(9)).Return(nil).Once()

	err := uc.RemoveClient(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 0, tx.calls)
}
