package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/ledger-replay/internal/domain"
	"github.com/josh-kwaku/ledger-replay/internal/repository"
	"github.com/josh-kwaku/ledger-replay/internal/testutil"
)

func TestSnapshotSaveAndLoad(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)
	ctx := context.Background()

	runID := uuid.New()
	at := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	accounts := []domain.Account{
		testutil.Account(t, 2, "1.2345", "0", false),
		testutil.Account(t, 1, "0", "10.5", true),
		testutil.Account(t, 65535, "-3", "3", false),
	}

	require.NoError(t, repo.Save(ctx, runID, accounts, at))
	assert.Equal(t, 3, testutil.CountSnapshots(t, db, runID))

	snaps, err := repo.GetByRunID(ctx, runID)
	require.NoError(t, err)
	require.Len(t, snaps, 3)

	assert.Equal(t, domain.ClientID(1), snaps[0].Client)
	assert.True(t, snaps[0].Held.Equal(decimal.RequireFromString("10.5")))
	assert.True(t, snaps[0].Total.Equal(decimal.RequireFromString("10.5")))
	assert.True(t, snaps[0].Locked)
	assert.Equal(t, runID, snaps[0].RunID)
	assert.True(t, snaps[0].CreatedAt.Equal(at))

	assert.Equal(t, domain.ClientID(2), snaps[1].Client)
	assert.True(t, snaps[1].Available.Equal(decimal.RequireFromString("1.2345")))

	assert.Equal(t, domain.ClientID(65535), snaps[2].Client)
	assert.True(t, snaps[2].Total.IsZero())
}

func TestSnapshotSaveTwiceIsRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)
	ctx := context.Background()

	runID := uuid.New()
	accounts := []domain.Account{testutil.Account(t, 1, "5", "0", false)}

	require.NoError(t, repo.Save(ctx, runID, accounts, time.Now().UTC()))

	err := repo.Save(ctx, runID, accounts, time.Now().UTC())
	require.ErrorIs(t, err, repository.ErrSnapshotExists)
	assert.Equal(t, 1, testutil.CountSnapshots(t, db, runID))
}

func TestSnapshotUnknownRunIsEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	snaps, err := repo.GetByRunID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, snaps)
}
