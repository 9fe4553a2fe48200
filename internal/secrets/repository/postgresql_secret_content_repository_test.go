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

func TestNewPostgreSQLSecretContentRepository(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLSecretContentRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgreSQLSecretContentRepository{}, repo)
}

func TestPostgreSQLSecretContentRepository_Create(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	seriesID := testutil.CreateTestSeries(t, db, "postgres", "content-series")
	repo := NewPostgreSQLSecretContentRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	content := &secretsDomain.SecretContent{
		SecretSeriesID:   seriesID,
		EncryptedContent: "dGVzdA==.kid-1",
		Version:          "0000000000000001",
		CreatedAt:        now,
		CreatedBy:        "test",
		UpdatedAt:        now,
		UpdatedBy:        "test",
	}

	id, err := repo.Create(ctx, content)
	require.NoError(t, err)
	assert.NotZero(t, id)

	retrieved, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, content.EncryptedContent, retrieved.EncryptedContent)
	assert.Equal(t, content.Version, retrieved.Version)
	assert.Equal(t, seriesID, retrieved.SecretSeriesID)
}

func TestPostgreSQLSecretContentRepository_Create_VersionConflict(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	seriesID := testutil.CreateTestSeries(t, db, "postgres", "conflict-series")
	repo := NewPostgreSQLSecretContentRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	content := &secretsDomain.SecretContent{
		SecretSeriesID: seriesID, EncryptedContent: "envelope-1", Version: "",
		CreatedAt: now, UpdatedAt: now,
	}
	_, err := repo.Create(ctx, content)
	require.NoError(t, err)

	_, err = repo.Create(ctx, content)
	assert.ErrorIs(t, err, secretsDomain.ErrContentVersionConflict)
}

func TestPostgreSQLSecretContentRepository_GetBySeriesAndVersion_NotFound(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	seriesID := testutil.CreateTestSeries(t, db, "postgres", "missing-version-series")
	repo := NewPostgreSQLSecretContentRepository(db)
	ctx := context.Background()

	_, err := repo.GetBySeriesAndVersion(ctx, seriesID, "absent")
	assert.ErrorIs(t, err, secretsDomain.ErrContentNotFound)
}

func TestPostgreSQLSecretContentRepository_ListBySeries_OrderedByID(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	seriesID := testutil.CreateTestSeries(t, db, "postgres", "versions-series")
	repo := NewPostgreSQLSecretContentRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, version := range []string{"0000000000000001", "0000000000000002", "0000000000000003"} {
		_, err := repo.Create(ctx, &secretsDomain.SecretContent{
			SecretSeriesID: seriesID, EncryptedContent: "e", Version: version,
			CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
	}

	contents, err := repo.ListBySeries(ctx, seriesID)
	require.NoError(t, err)
	require.Len(t, contents, 3)
	assert.True(t, contents[0].ID < contents[1].ID)
	assert.True(t, contents[1].ID < contents[2].ID)
}

func TestPostgreSQLSecretContentRepository_VersionsOf(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	seriesID := testutil.CreateTestSeries(t, db, "postgres", "versions-of-series")
	repo := NewPostgreSQLSecretContentRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, version := range []string{"", "0000000000000002"} {
		_, err := repo.Create(ctx, &secretsDomain.SecretContent{
			SecretSeriesID: seriesID, EncryptedContent: "e", Version: version,
			CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
	}

	versions, err := repo.VersionsOf(ctx, seriesID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"", "0000000000000002"}, versions)
}

func TestPostgreSQLSecretContentRepository_DeleteBySeriesAndVersion(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	seriesID := testutil.CreateTestSeries(t, db, "postgres", "delete-version-series")
	repo := NewPostgreSQLSecretContentRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := repo.Create(ctx, &secretsDomain.SecretContent{
		SecretSeriesID: seriesID, EncryptedContent: "e", Version: "target",
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	err = repo.DeleteBySeriesAndVersion(ctx, seriesID, "target")
	require.NoError(t, err)

	_, err = repo.GetBySeriesAndVersion(ctx, seriesID, "target")
	assert.ErrorIs(t, err, secretsDomain.ErrContentNotFound)
}
