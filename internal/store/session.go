package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionStore reads sessions from the auth system's table. Sessions are
// created and expired elsewhere; the only write here is active_org_id.
type SessionStore struct {
	db *pgxpool.Pool
}

func NewSessionStore(db *pgxpool.Pool) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	sess := &domain.Session{}
	var activeOrgID *uuid.UUID
	err := s.db.QueryRow(ctx,
		`SELECT token, user_id, active_org_id, expires_at, created_at
		 FROM sessions WHERE token = $1 AND expires_at > NOW()`,
		token,
	).Scan(&sess.Token, &sess.UserID, &activeOrgID, &sess.ExpiresAt, &sess.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if activeOrgID != nil {
		sess.ActiveOrgID = *activeOrgID
	}
	return sess, nil
}

// SetActiveOrg writes are idempotent for a given org id, so concurrent
// auto-selects of the same sole membership are last-writer-wins safe.
func (s *SessionStore) SetActiveOrg(ctx context.Context, token string, orgID uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE sessions SET active_org_id = $2 WHERE token = $1`,
		token, orgID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
