package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripmatch/backend/internal/repo"
)

func TestSubEventRepo_SubEvents_batchLookup(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	r := repo.NewSubEventRepo(tx, testPictureBase)

	var boat, hike uuid.UUID
	require.NoError(t, tx.QueryRow(ctx, `
		INSERT INTO sub_events (location, name, picture_path)
		VALUES ('salou', 'Boat Party', 'events/boat.jpg') RETURNING id`).Scan(&boat))
	require.NoError(t, tx.QueryRow(ctx, `
		INSERT INTO sub_events (location, name)
		VALUES ('salou', 'Hike') RETURNING id`).Scan(&hike))

	events, err := r.SubEvents(ctx, []uuid.UUID{boat, hike, uuid.New()})

	require.NoError(t, err)
	require.Len(t, events, 2, "unknown ids are absent, not an error")
	assert.Equal(t, "Boat Party", events[boat].Name)
	assert.Equal(t, "https://pictures.test/events/boat.jpg", events[boat].PictureURL)
	// An empty picture_path resolves to no URL at all.
	assert.Equal(t, "Hike", events[hike].Name)
	assert.Empty(t, events[hike].PictureURL)
}

func TestSubEventRepo_SubEvents_emptyInput(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewSubEventRepo(tx, testPictureBase)

	events, err := r.SubEvents(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, events)
}
