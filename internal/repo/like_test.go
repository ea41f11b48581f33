package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripmatch/backend/internal/repo"
)

func TestLikeRepo_AddAndRemove(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	likes := repo.NewLikeRepo(tx)
	groups := repo.NewGroupRepo(tx)

	seedUser(t, tx, "alice")
	seedUser(t, tx, "carol")
	tripID := seedGroup(t, tx, "salou", "alice", addDays(1))

	require.NoError(t, likes.Add(ctx, tripID, "alice", "carol"))

	got, err := groups.ActiveGroups(ctx, "salou")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"carol"}, got[0].Likes["alice"])

	require.NoError(t, likes.Remove(ctx, tripID, "alice", "carol"))

	got, err = groups.ActiveGroups(ctx, "salou")
	require.NoError(t, err)
	assert.Empty(t, got[0].Likes["alice"])
}

func TestLikeRepo_Add_duplicateIsNoop(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	likes := repo.NewLikeRepo(tx)
	groups := repo.NewGroupRepo(tx)

	seedUser(t, tx, "alice")
	seedUser(t, tx, "carol")
	tripID := seedGroup(t, tx, "salou", "alice", addDays(1))

	require.NoError(t, likes.Add(ctx, tripID, "alice", "carol"))
	require.NoError(t, likes.Add(ctx, tripID, "alice", "carol"))

	got, err := groups.ActiveGroups(ctx, "salou")
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, got[0].Likes["alice"], "duplicate add stores one row")
}

func TestLikeRepo_Remove_absentIsNoop(t *testing.T) {
	tx := newTestTx(t)
	likes := repo.NewLikeRepo(tx)

	seedUser(t, tx, "alice")
	seedUser(t, tx, "carol")
	tripID := seedGroup(t, tx, "salou", "alice", addDays(1))

	assert.NoError(t, likes.Remove(context.Background(), tripID, "alice", "carol"))
}
