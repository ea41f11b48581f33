package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LikeRepo defines the durable like writes. The database row, not the feed
// cache, is the system of record for likes.
type LikeRepo interface {
	// Add records that liker liked target within the trip. Adding an
	// existing like is a no-op.
	Add(ctx context.Context, tripID uuid.UUID, target, liker string) error

	// Remove deletes liker's like of target within the trip. Removing an
	// absent like is a no-op.
	Remove(ctx context.Context, tripID uuid.UUID, target, liker string) error
}

// pgLikeRepo is the Postgres implementation of LikeRepo.
type pgLikeRepo struct {
	db db
}

// NewLikeRepo constructs a LikeRepo backed by the provided db connection.
func NewLikeRepo(db db) LikeRepo {
	return &pgLikeRepo{db: db}
}

// Add inserts the like row, tolerating duplicates.
func (r *pgLikeRepo) Add(ctx context.Context, tripID uuid.UUID, target, liker string) error {
	const q = `
		INSERT INTO trip_likes (trip_id, target_username, liker_username)
		VALUES (@trip_id, @target, @liker)
		ON CONFLICT DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "target": target, "liker": liker})
	if err != nil {
		return fmt.Errorf("repo.LikeRepo.Add: %w", err)
	}
	return nil
}

// Remove deletes the like row if present.
func (r *pgLikeRepo) Remove(ctx context.Context, tripID uuid.UUID, target, liker string) error {
	const q = `
		DELETE FROM trip_likes
		WHERE trip_id = @trip_id AND target_username = @target AND liker_username = @liker`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "target": target, "liker": liker})
	if err != nil {
		return fmt.Errorf("repo.LikeRepo.Remove: %w", err)
	}
	return nil
}
