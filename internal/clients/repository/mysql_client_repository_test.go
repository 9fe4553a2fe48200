package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientsDomain "github.com/allisson/keywhiz-core/internal/clients/domain"
	"github.com/allisson/keywhiz-core/internal/testutil"
)

func TestNewMySQLClientRepository(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLClientRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &MySQLClientRepository{}, repo)
}

func TestMySQLClientRepository_CreateAndGetByID(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLClientRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	client := &clientsDomain.Client{
		Name:        "payments-service",
		Description: "automation client for the payments team",
		CreatedAt:   now,
		CreatedBy:   "test",
		UpdatedAt:   now,
		UpdatedBy:   "test",
		Automation:  true,
	}

	id, err := repo.Create(ctx, client)
	require.NoError(t, err)
	assert.NotZero(t, id)

	retrieved, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "payments-service", retrieved.Name)
	assert.True(t, retrieved.Automation)
}

func TestMySQLClientRepository_Create_NameConflict(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLClientRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	client := &clientsDomain.Client{Name: "dup-client", CreatedAt: now, UpdatedAt: now}
	_, err := repo.Create(ctx, client)
	require.NoError(t, err)

	_, err = repo.Create(ctx, client)
	assert.ErrorIs(t, err, clientsDomain.ErrNameConflict)
}

func TestMySQLClientRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLClientRepository(db)
	_, err := repo.GetByID(context.Background(), 999999)
	assert.ErrorIs(t, err, clientsDomain.ErrNotFound)
}

func TestMySQLClientRepository_ListAll(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLClientRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := repo.Create(ctx, &clientsDomain.Client{Name: "client-a", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &clientsDomain.Client{Name: "client-b", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	clients, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 2)
}

func TestMySQLClientRepository_Delete(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLClientRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	id, err := repo.Create(ctx, &clientsDomain.Client{Name: "deletable-client", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	err = repo.Delete(ctx, id)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, clientsDomain.ErrNotFound)
}
