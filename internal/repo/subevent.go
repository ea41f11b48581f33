package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripmatch/backend/internal/domain"
)

// SubEventRepo defines the batched sub-event metadata lookup used by feed
// rebuilds.
type SubEventRepo interface {
	// SubEvents returns the sub-events for the given ids, keyed by id.
	// Unknown ids are absent from the map, not an error.
	SubEvents(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.SubEvent, error)
}

// pgSubEventRepo is the Postgres implementation of SubEventRepo.
type pgSubEventRepo struct {
	db          db
	pictureBase string
}

// NewSubEventRepo constructs a SubEventRepo backed by the provided db
// connection. pictureBase is the public base URL of the picture store.
func NewSubEventRepo(db db, pictureBase string) SubEventRepo {
	return &pgSubEventRepo{db: db, pictureBase: pictureBase}
}

// SubEvents batch-loads all requested sub-events in a single query.
func (r *pgSubEventRepo) SubEvents(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.SubEvent, error) {
	out := make(map[uuid.UUID]domain.SubEvent, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}

	const q = `
		SELECT id, name, picture_path
		FROM sub_events
		WHERE id = ANY(@ids::uuid[])`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": strs})
	if err != nil {
		return nil, fmt.Errorf("repo.SubEventRepo.SubEvents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ev   domain.SubEvent
			id   pgtype.UUID
			path string
		)
		if err := rows.Scan(&id, &ev.Name, &path); err != nil {
			return nil, fmt.Errorf("repo.SubEventRepo.SubEvents: scan: %w", err)
		}
		ev.ID = uuid.UUID(id.Bytes)
		if path != "" {
			ev.PictureURL = r.pictureBase + "/" + path
		}
		out[ev.ID] = ev
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SubEventRepo.SubEvents: rows: %w", err)
	}

	return out, nil
}
