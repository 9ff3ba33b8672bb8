package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igreja/internal/core"
)

func countPastorsForChurch(t *testing.T, repo *Repository, churchID int64) int64 {
	t.Helper()
	var n int64
	err := repo.db.QueryRowContext(context.Background(),
		repo.driver.rebind("SELECT COUNT(*) FROM pastors WHERE church_id = ?"), churchID).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestDeleteChurchDetachesPastors(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	church, err := repo.CreateChurch(ctx, core.NewChurchInput(core.Fields{"name": "Sede Central", "type": "HeadChurch"}))
	require.NoError(t, err)
	require.Equal(t, int64(1), church.ID)

	pastor, err := repo.CreatePastor(ctx, core.NewPastorInput(core.Fields{"name": "Pr. Silva", "church_id": 1}))
	require.NoError(t, err)
	require.Equal(t, int64(1), pastor.ID)
	require.NotNil(t, pastor.ChurchID)
	assert.Equal(t, int64(1), *pastor.ChurchID)
	require.NotNil(t, pastor.ChurchName)
	assert.Equal(t, "Sede Central", *pastor.ChurchName)

	detached, err := repo.DeleteChurch(ctx, church.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detached)

	pastors, err := repo.ListPastors(ctx)
	require.NoError(t, err)
	require.Len(t, pastors, 1)
	assert.Equal(t, int64(1), pastors[0].ID)
	assert.Nil(t, pastors[0].ChurchID)
	assert.Nil(t, pastors[0].ChurchName)

	churches, err := repo.ListChurches(ctx)
	require.NoError(t, err)
	assert.Empty(t, churches)
}

func TestDeleteChurchLeavesOtherAssignments(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	a, err := repo.CreateChurch(ctx, core.NewChurchInput(core.Fields{"name": "A"}))
	require.NoError(t, err)
	b, err := repo.CreateChurch(ctx, core.NewChurchInput(core.Fields{"name": "B", "type": "Congregation"}))
	require.NoError(t, err)

	for _, churchID := range []int64{a.ID, a.ID, b.ID} {
		_, err := repo.CreatePastor(ctx, core.NewPastorInput(core.Fields{"name": "p", "church_id": churchID}))
		require.NoError(t, err)
	}

	detached, err := repo.DeleteChurch(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detached)

	assert.Zero(t, countPastorsForChurch(t, repo, a.ID))
	assert.Equal(t, int64(1), countPastorsForChurch(t, repo, b.ID))

	pastors, err := repo.ListPastors(ctx)
	require.NoError(t, err)
	require.Len(t, pastors, 3)
	require.NotNil(t, pastors[2].ChurchName)
	assert.Equal(t, "B", *pastors[2].ChurchName)
}

func TestDeleteChurchNotFound(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	church, err := repo.CreateChurch(ctx, core.NewChurchInput(core.Fields{"name": "Sede"}))
	require.NoError(t, err)
	_, err = repo.CreatePastor(ctx, core.NewPastorInput(core.Fields{"name": "Pr. Silva", "church_id": church.ID}))
	require.NoError(t, err)

	_, err = repo.DeleteChurch(ctx, church.ID+1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))

	pastors, err := repo.ListPastors(ctx)
	require.NoError(t, err)
	require.Len(t, pastors, 1)
	require.NotNil(t, pastors[0].ChurchID)
	assert.Equal(t, church.ID, *pastors[0].ChurchID)
}

func TestDeleteChurchCancelledContextLeavesStateUntouched(t *testing.T) {
	repo := newTestRepository(t)

	church, err := repo.CreateChurch(context.Background(), core.NewChurchInput(core.Fields{"name": "Sede"}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repo.DeleteChurch(ctx, church.ID)
	require.Error(t, err)

	churches, err := repo.ListChurches(context.Background())
	require.NoError(t, err)
	assert.Len(t, churches, 1)
}
