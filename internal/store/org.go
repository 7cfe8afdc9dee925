package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrgStore struct {
	db *pgxpool.Pool
}

func NewOrgStore(db *pgxpool.Pool) *OrgStore {
	return &OrgStore{db: db}
}

func (s *OrgStore) Create(ctx context.Context, o *domain.Organization) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO organizations (name) VALUES ($1)
		 RETURNING id, created_at, updated_at`,
		o.Name,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (s *OrgStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	o := &domain.Organization{}
	err := s.db.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at
		 FROM organizations WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *OrgStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error) {
	rows, err := s.db.Query(ctx,
		`SELECT o.id, o.name, o.created_at, o.updated_at
		 FROM organizations o
		 INNER JOIN memberships m ON m.org_id = o.id
		 WHERE m.user_id = $1
		 ORDER BY o.name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}
