package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	membershipDomain "github.com/allisson/keywhiz-core/internal/membership/domain"
	"github.com/allisson/keywhiz-core/internal/testutil"
)

func TestNewPostgreSQLMembershipRepository(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLMembershipRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgreSQLMembershipRepository{}, repo)
}

func TestPostgreSQLMembershipRepository_EnrollAndEvict(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	clientID, groupID := testutil.CreateTestClientAndGroup(t, db, "postgres", "enroll")
	repo := NewPostgreSQLMembershipRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Enroll(ctx, clientID, groupID))

	groups, err := repo.GroupIDsForClient(ctx, clientID)
	require.NoError(t, err)
	assert.Equal(t, []int64{groupID}, groups)

	require.NoError(t, repo.Evict(ctx, clientID, groupID))

	groups, err = repo.GroupIDsForClient(ctx, clientID)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestPostgreSQLMembershipRepository_Enroll_AlreadyExists(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	clientID, groupID := testutil.CreateTestClientAndGroup(t, db, "postgres", "dup")
	repo := NewPostgreSQLMembershipRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Enroll(ctx, clientID, groupID))
	err := repo.Enroll(ctx, clientID, groupID)
	assert.ErrorIs(t, err, membershipDomain.ErrMembershipExists)
}

func TestPostgreSQLMembershipRepository_AllowAndDisallow(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	_, groupID := testutil.CreateTestClientAndGroup(t, db, "postgres", "allow")
	seriesID := testutil.CreateTestSeries(t, db, "postgres", "allow-series")
	repo := NewPostgreSQLMembershipRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Allow(ctx, groupID, seriesID))

	series, err := repo.SeriesIDsForGroup(ctx, groupID)
	require.NoError(t, err)
	assert.Equal(t, []int64{seriesID}, series)

	require.NoError(t, repo.Disallow(ctx, groupID, seriesID))

	series, err = repo.SeriesIDsForGroup(ctx, groupID)
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestPostgreSQLMembershipRepository_Allow_AlreadyExists(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	_, groupID := testutil.CreateTestClientAndGroup(t, db, "postgres", "dup-allow")
	seriesID := testutil.CreateTestSeries(t, db, "postgres", "dup-allow-series")
	repo := NewPostgreSQLMembershipRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Allow(ctx, groupID, seriesID))
	err := repo.Allow(ctx, groupID, seriesID)
	assert.ErrorIs(t, err, membershipDomain.ErrAccessGrantExists)
}

func TestPostgreSQLMembershipRepository_ClientHasAccessToSeries(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	clientID, groupID := testutil.CreateTestClientAndGroup(t, db, "postgres", "access")
	seriesID := testutil.CreateTestSeries(t, db, "postgres", "access-series")
	repo := NewPostgreSQLMembershipRepository(db)
	ctx := context.Background()

	has, err := repo.ClientHasAccessToSeries(ctx, clientID, seriesID)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, repo.Enroll(ctx, clientID, groupID))
	require.NoError(t, repo.Allow(ctx, groupID, seriesID))

	has, err = repo.ClientHasAccessToSeries(ctx, clientID, seriesID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestPostgreSQLMembershipRepository_RemoveClient(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	clientID, groupID := testutil.CreateTestClientAndGroup(t, db, "postgres", "remove-client")
	repo := NewPostgreSQLMembershipRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Enroll(ctx, clientID, groupID))
	require.NoError(t, repo.RemoveClient(ctx, clientID))

	groups, err := repo.GroupIDsForClient(ctx, clientID)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestPostgreSQLMembershipRepository_RemoveGroup(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	clientID, groupID := testutil.CreateTestClientAndGroup(t, db, "postgres", "remove-group")
	seriesID := testutil.CreateTestSeries(t, db, "postgres", "remove-group-series")
	repo := NewPostgreSQLMembershipRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Enroll(ctx, clientID, groupID))
	require.NoError(t, repo.Allow(ctx, groupID, seriesID))
	require.NoError(t, repo.RemoveGroup(ctx, groupID))

	groups, err := repo.GroupIDsForClient(ctx, clientID)
	require.NoError(t, err)
	assert.Empty(t, groups)

	series, err := repo.SeriesIDsForGroup(ctx, groupID)
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestPostgreSQLMembershipRepository_RemoveSeries(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	_, groupID := testutil.CreateTestClientAndGroup(t, db, "postgres", "remove-series")
	seriesID := testutil.CreateTestSeries(t, db, "postgres", "remove-series-series")
	repo := NewPostgreSQLMembershipRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Allow(ctx, groupID, seriesID))
	require.NoError(t, repo.RemoveSeries(ctx, seriesID))

	series, err := repo.SeriesIDsForGroup(ctx, groupID)
	require.NoError(t, err)
	assert.Empty(t, series)
}
