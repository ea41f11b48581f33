package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pkordes/tripmatch/backend/internal/domain"
)

// MembershipRepo defines the durable membership writes that invalidate a
// location's feed.
type MembershipRepo interface {
	// Join adds username as a member of the trip, promoting an existing
	// invite row if there is one.
	Join(ctx context.Context, tripID uuid.UUID, username string) error

	// Leave removes username from the trip. Returns domain.ErrNotFound
	// when the user was not a member.
	Leave(ctx context.Context, tripID uuid.UUID, username string) error
}

// pgMembershipRepo is the Postgres implementation of MembershipRepo.
type pgMembershipRepo struct {
	db db
}

// NewMembershipRepo constructs a MembershipRepo backed by the provided db connection.
func NewMembershipRepo(db db) MembershipRepo {
	return &pgMembershipRepo{db: db}
}

// Join upserts the membership row. An invited user who joins flips to a full
// member; a brand-new user gets a fresh row.
func (r *pgMembershipRepo) Join(ctx context.Context, tripID uuid.UUID, username string) error {
	const q = `
		INSERT INTO trip_members (trip_id, username, invited)
		VALUES (@trip_id, @username, false)
		ON CONFLICT (trip_id, username) DO UPDATE SET invited = false`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "username": username})
	if err != nil {
		return fmt.Errorf("repo.MembershipRepo.Join: %w", err)
	}
	return nil
}

// Leave deletes the membership row.
func (r *pgMembershipRepo) Leave(ctx context.Context, tripID uuid.UUID, username string) error {
	const q = `
		DELETE FROM trip_members
		WHERE trip_id = @trip_id AND username = @username`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "username": username})
	if err != nil {
		return fmt.Errorf("repo.MembershipRepo.Leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.MembershipRepo.Leave: %w", domain.ErrNotFound)
	}
	return nil
}
