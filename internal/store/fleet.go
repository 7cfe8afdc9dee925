package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FleetStore struct {
	db *pgxpool.Pool
}

func NewFleetStore(db *pgxpool.Pool) *FleetStore {
	return &FleetStore{db: db}
}

func (s *FleetStore) Create(ctx context.Context, f *domain.Fleet) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO fleets (org_id, name, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		f.OrgID, f.Name, f.Description,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

func (s *FleetStore) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Fleet, error) {
	f := &domain.Fleet{}
	err := s.db.QueryRow(ctx,
		`SELECT id, org_id, name, description, created_at, updated_at
		 FROM fleets WHERE id = $1 AND org_id = $2`,
		id, orgID,
	).Scan(&f.ID, &f.OrgID, &f.Name, &f.Description, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *FleetStore) List(ctx context.Context, orgID uuid.UUID) ([]domain.Fleet, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, org_id, name, description, created_at, updated_at
		 FROM fleets WHERE org_id = $1 ORDER BY name`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fleets []domain.Fleet
	for rows.Next() {
		var f domain.Fleet
		if err := rows.Scan(&f.ID, &f.OrgID, &f.Name, &f.Description, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		fleets = append(fleets, f)
	}
	return fleets, rows.Err()
}

func (s *FleetStore) Update(ctx context.Context, f *domain.Fleet) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE fleets SET name = $3, description = $4, updated_at = NOW()
		 WHERE id = $1 AND org_id = $2`,
		f.ID, f.OrgID, f.Name, f.Description,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *FleetStore) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM fleets WHERE id = $1 AND org_id = $2`, id, orgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *FleetStore) CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM fleets WHERE org_id = $1`,
		orgID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
