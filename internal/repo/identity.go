package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripmatch/backend/internal/domain"
)

// IdentityRepo defines the batched identity/bio lookup the feed cache uses
// during rebuilds.
type IdentityRepo interface {
	// Identities returns the identities for the given usernames, keyed by
	// username. Unknown usernames are absent from the map, not an error.
	Identities(ctx context.Context, usernames []string) (map[string]domain.Identity, error)
}

// pgIdentityRepo is the Postgres implementation of IdentityRepo. It resolves
// profile-picture URLs at load time so the feed core never interprets
// picture storage details.
type pgIdentityRepo struct {
	db          db
	pictureBase string
}

// NewIdentityRepo constructs an IdentityRepo backed by the provided db
// connection. pictureBase is the public base URL of the picture store.
func NewIdentityRepo(db db, pictureBase string) IdentityRepo {
	return &pgIdentityRepo{db: db, pictureBase: pictureBase}
}

// Identities batch-loads all requested users in a single query.
func (r *pgIdentityRepo) Identities(ctx context.Context, usernames []string) (map[string]domain.Identity, error) {
	out := make(map[string]domain.Identity, len(usernames))
	if len(usernames) == 0 {
		return out, nil
	}

	const q = `
		SELECT username, display_name, handle, bio, note, gender,
		       birth_date, verified, shadow_banned, picture_version
		FROM users
		WHERE username = ANY(@usernames)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"usernames": usernames})
	if err != nil {
		return nil, fmt.Errorf("repo.IdentityRepo.Identities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		id, err := r.scanIdentity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.IdentityRepo.Identities: scan: %w", err)
		}
		out[id.Username] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.IdentityRepo.Identities: rows: %w", err)
	}

	return out, nil
}

// scanIdentity maps a single users row into a domain.Identity and resolves
// its picture URL. A picture_version of zero means no picture was uploaded.
func (r *pgIdentityRepo) scanIdentity(s scanner) (domain.Identity, error) {
	var (
		id        domain.Identity
		birthDate pgtype.Date
		version   int
	)
	err := s.Scan(&id.Username, &id.DisplayName, &id.Handle, &id.Bio, &id.Note,
		&id.Gender, &birthDate, &id.Verified, &id.ShadowBanned, &version)
	if err != nil {
		return domain.Identity{}, err
	}

	if birthDate.Valid {
		id.BirthDate = birthDate.Time
	}
	if version > 0 {
		id.HasPicture = true
		id.PictureURL = fmt.Sprintf("%s/profiles/%s.jpg?v=%d", r.pictureBase, id.Username, version)
	}
	return id, nil
}
