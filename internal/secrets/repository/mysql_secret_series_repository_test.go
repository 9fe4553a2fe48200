package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	secretsDomain "github.com/allisson/keywhiz-core/internal/secrets/domain"
	"github.com/allisson/keywhiz-core/internal/testutil"
)

func TestNewMySQLSecretSeriesRepository(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLSecretSeriesRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &MySQLSecretSeriesRepository{}, repo)
}

func TestMySQLSecretSeriesRepository_Create(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLSecretSeriesRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	series := &secretsDomain.SecretSeries{
		Name:              "db-password",
		Description:       "primary database password",
		Type:              "password",
		GenerationOptions: map[string]string{"length": "32"},
		Metadata:          map[string]string{"owner": "platform"},
		CreatedAt:         now,
		CreatedBy:         "test",
		UpdatedAt:         now,
		UpdatedBy:         "test",
	}

	id, err := repo.Create(ctx, series)
	require.NoError(t, err)
	assert.NotZero(t, id)

	retrieved, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, series.Name, retrieved.Name)
	assert.Equal(t, series.GenerationOptions, retrieved.GenerationOptions)
	assert.Equal(t, series.Metadata, retrieved.Metadata)
}

func TestMySQLSecretSeriesRepository_Create_NameConflict(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLSecretSeriesRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	series := &secretsDomain.SecretSeries{
		Name: "duplicate-name", CreatedAt: now, UpdatedAt: now,
		GenerationOptions: map[string]string{}, Metadata: map[string]string{},
	}
	_, err := repo.Create(ctx, series)
	require.NoError(t, err)

	_, err = repo.Create(ctx, series)
	assert.ErrorIs(t, err, secretsDomain.ErrSeriesNameConflict)
}

func TestMySQLSecretSeriesRepository_GetByName_NotFound(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLSecretSeriesRepository(db)
	ctx := context.Background()

	_, err := repo.GetByName(ctx, "does-not-exist")
	assert.ErrorIs(t, err, secretsDomain.ErrSeriesNotFound)
}

func TestMySQLSecretSeriesRepository_ListAll(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLSecretSeriesRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, name := range []string{"series-a", "series-b", "series-c"} {
		_, err := repo.Create(ctx, &secretsDomain.SecretSeries{
			Name: name, CreatedAt: now, UpdatedAt: now,
			GenerationOptions: map[string]string{}, Metadata: map[string]string{},
		})
		require.NoError(t, err)
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].ID < all[1].ID)
}

func TestMySQLSecretSeriesRepository_DeleteByName_CascadesContent(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	seriesRepo := NewMySQLSecretSeriesRepository(db)
	contentRepo := NewMySQLSecretContentRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	seriesID, err := seriesRepo.Create(ctx, &secretsDomain.SecretSeries{
		Name: "cascading", CreatedAt: now, UpdatedAt: now,
		GenerationOptions: map[string]string{}, Metadata: map[string]string{},
	})
	require.NoError(t, err)

	_, err = contentRepo.Create(ctx, &secretsDomain.SecretContent{
		SecretSeriesID: seriesID, EncryptedContent: "envelope", Version: "",
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	err = seriesRepo.DeleteByName(ctx, "cascading")
	require.NoError(t, err)

	remaining, err := contentRepo.ListBySeries(ctx, seriesID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
