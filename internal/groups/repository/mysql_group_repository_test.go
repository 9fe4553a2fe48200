package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	groupsDomain "github.com/allisson/keywhiz-core/internal/groups/domain"
	"github.com/allisson/keywhiz-core/internal/testutil"
)

func TestNewMySQLGroupRepository(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLGroupRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &MySQLGroupRepository{}, repo)
}

func TestMySQLGroupRepository_CreateAndGetByID(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLGroupRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	group := &groupsDomain.Group{
		Name:        "payments-team",
		Description: "owns payment-processing secrets",
		CreatedAt:   now,
		CreatedBy:   "test",
		UpdatedAt:   now,
		UpdatedBy:   "test",
	}

	id, err := repo.Create(ctx, group)
	require.NoError(t, err)
	assert.NotZero(t, id)

	retrieved, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "payments-team", retrieved.Name)
}

func TestMySQLGroupRepository_Create_NameConflict(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLGroupRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	group := &groupsDomain.Group{Name: "dup-group", CreatedAt: now, UpdatedAt: now}
	_, err := repo.Create(ctx, group)
	require.NoError(t, err)

	_, err = repo.Create(ctx, group)
	assert.ErrorIs(t, err, groupsDomain.ErrNameConflict)
}

func TestMySQLGroupRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLGroupRepository(db)
	_, err := repo.GetByID(context.Background(), 999999)
	assert.ErrorIs(t, err, groupsDomain.ErrNotFound)
}

func TestMySQLGroupRepository_ListAll(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLGroupRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := repo.Create(ctx, &groupsDomain.Group{Name: "group-a", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &groupsDomain.Group{Name: "group-b", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	groups, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestMySQLGroupRepository_Delete(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLGroupRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	id, err := repo.Create(ctx, &groupsDomain.Group{Name: "deletable-group", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	err = repo.Delete(ctx, id)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, groupsDomain.ErrNotFound)
}
