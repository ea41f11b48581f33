package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripmatch/backend/internal/domain"
)

// GroupRepo defines the bulk trip-group reads the feed cache rebuilds from.
type GroupRepo interface {
	// ActiveGroups returns all trip groups for location that still have at
	// least one candidate date today or later, fully assembled with
	// members, invitees, dates, likes, and attendance.
	ActiveGroups(ctx context.Context, location string) ([]domain.TripGroup, error)
}

// pgGroupRepo is the Postgres implementation of GroupRepo.
type pgGroupRepo struct {
	db db
}

// NewGroupRepo constructs a GroupRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewGroupRepo(db db) GroupRepo {
	return &pgGroupRepo{db: db}
}

// ActiveGroups loads the group rows first, then assembles the one-to-many
// collections with one batched query each, keyed by the collected group ids.
// Five queries total regardless of how many groups the location has.
func (r *pgGroupRepo) ActiveGroups(ctx context.Context, location string) ([]domain.TripGroup, error) {
	const q = `
		SELECT g.id, g.location, g.leader_username
		FROM trip_groups g
		WHERE g.location = @location
		  AND EXISTS (
			SELECT 1 FROM trip_dates d
			WHERE d.trip_id = g.id AND d.trip_date >= current_date
		  )
		ORDER BY g.created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"location": location})
	if err != nil {
		return nil, fmt.Errorf("repo.GroupRepo.ActiveGroups: %w", err)
	}
	defer rows.Close()

	var groups []domain.TripGroup
	byID := make(map[uuid.UUID]*domain.TripGroup)
	for rows.Next() {
		var (
			g  domain.TripGroup
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &g.Location, &g.Leader); err != nil {
			return nil, fmt.Errorf("repo.GroupRepo.ActiveGroups: scan group: %w", err)
		}
		g.ID = uuid.UUID(id.Bytes)
		g.Likes = make(map[string][]string)
		g.Attending = make(map[string][]uuid.UUID)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.GroupRepo.ActiveGroups: rows: %w", err)
	}
	if len(groups) == 0 {
		return nil, nil
	}

	ids := make([]string, len(groups))
	for i := range groups {
		byID[groups[i].ID] = &groups[i]
		ids[i] = groups[i].ID.String()
	}

	if err := r.loadMembers(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := r.loadDates(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := r.loadLikes(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := r.loadAttendance(ctx, ids, byID); err != nil {
		return nil, err
	}

	return groups, nil
}

// loadMembers fills Members and Invited for every group in byID.
func (r *pgGroupRepo) loadMembers(ctx context.Context, ids []string, byID map[uuid.UUID]*domain.TripGroup) error {
	const q = `
		SELECT trip_id, username, invited
		FROM trip_members
		WHERE trip_id = ANY(@trip_ids::uuid[])
		ORDER BY joined_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_ids": ids})
	if err != nil {
		return fmt.Errorf("repo.GroupRepo.ActiveGroups: members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID   pgtype.UUID
			username string
			invited  bool
		)
		if err := rows.Scan(&tripID, &username, &invited); err != nil {
			return fmt.Errorf("repo.GroupRepo.ActiveGroups: scan member: %w", err)
		}
		g, ok := byID[uuid.UUID(tripID.Bytes)]
		if !ok {
			continue
		}
		if invited {
			g.Invited = append(g.Invited, username)
		} else {
			g.Members = append(g.Members, username)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("repo.GroupRepo.ActiveGroups: member rows: %w", err)
	}
	return nil
}

// loadDates fills Dates for every group in byID.
func (r *pgGroupRepo) loadDates(ctx context.Context, ids []string, byID map[uuid.UUID]*domain.TripGroup) error {
	const q = `
		SELECT trip_id, trip_date
		FROM trip_dates
		WHERE trip_id = ANY(@trip_ids::uuid[])
		ORDER BY trip_date`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_ids": ids})
	if err != nil {
		return fmt.Errorf("repo.GroupRepo.ActiveGroups: dates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID pgtype.UUID
			d      pgtype.Date
		)
		if err := rows.Scan(&tripID, &d); err != nil {
			return fmt.Errorf("repo.GroupRepo.ActiveGroups: scan date: %w", err)
		}
		if g, ok := byID[uuid.UUID(tripID.Bytes)]; ok {
			g.Dates = append(g.Dates, d.Time)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("repo.GroupRepo.ActiveGroups: date rows: %w", err)
	}
	return nil
}

// loadLikes fills the target→likers mapping for every group in byID.
func (r *pgGroupRepo) loadLikes(ctx context.Context, ids []string, byID map[uuid.UUID]*domain.TripGroup) error {
	const q = `
		SELECT trip_id, target_username, liker_username
		FROM trip_likes
		WHERE trip_id = ANY(@trip_ids::uuid[])
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_ids": ids})
	if err != nil {
		return fmt.Errorf("repo.GroupRepo.ActiveGroups: likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID        pgtype.UUID
			target, liker string
		)
		if err := rows.Scan(&tripID, &target, &liker); err != nil {
			return fmt.Errorf("repo.GroupRepo.ActiveGroups: scan like: %w", err)
		}
		if g, ok := byID[uuid.UUID(tripID.Bytes)]; ok {
			g.Likes[target] = append(g.Likes[target], liker)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("repo.GroupRepo.ActiveGroups: like rows: %w", err)
	}
	return nil
}

// loadAttendance fills the username→sub-event-ids mapping for every group in byID.
func (r *pgGroupRepo) loadAttendance(ctx context.Context, ids []string, byID map[uuid.UUID]*domain.TripGroup) error {
	const q = `
		SELECT trip_id, username, sub_event_id
		FROM trip_attendance
		WHERE trip_id = ANY(@trip_ids::uuid[])
		ORDER BY position`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_ids": ids})
	if err != nil {
		return fmt.Errorf("repo.GroupRepo.ActiveGroups: attendance: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID   pgtype.UUID
			username string
			eventID  pgtype.UUID
		)
		if err := rows.Scan(&tripID, &username, &eventID); err != nil {
			return fmt.Errorf("repo.GroupRepo.ActiveGroups: scan attendance: %w", err)
		}
		if g, ok := byID[uuid.UUID(tripID.Bytes)]; ok {
			g.Attending[username] = append(g.Attending[username], uuid.UUID(eventID.Bytes))
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("repo.GroupRepo.ActiveGroups: attendance rows: %w", err)
	}
	return nil
}
