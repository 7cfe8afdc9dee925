package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleStore struct {
	db *pgxpool.Pool
}

func NewVehicleStore(db *pgxpool.Pool) *VehicleStore {
	return &VehicleStore{db: db}
}

func (s *VehicleStore) Create(ctx context.Context, v *domain.Vehicle) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO vehicles (org_id, customer_id, fleet_id, vin, plate, make, model, year)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		v.OrgID, v.CustomerID, v.FleetID, v.VIN, v.Plate, v.Make, v.Model, v.Year,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *VehicleStore) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := s.db.QueryRow(ctx,
		`SELECT id, org_id, customer_id, fleet_id, vin, plate, make, model, year, created_at, updated_at
		 FROM vehicles WHERE id = $1 AND org_id = $2`,
		id, orgID,
	).Scan(&v.ID, &v.OrgID, &v.CustomerID, &v.FleetID, &v.VIN, &v.Plate, &v.Make, &v.Model, &v.Year, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *VehicleStore) List(ctx context.Context, orgID uuid.UUID) ([]domain.Vehicle, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, org_id, customer_id, fleet_id, vin, plate, make, model, year, created_at, updated_at
		 FROM vehicles WHERE org_id = $1 ORDER BY created_at DESC`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.OrgID, &v.CustomerID, &v.FleetID, &v.VIN, &v.Plate, &v.Make, &v.Model, &v.Year, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (s *VehicleStore) Update(ctx context.Context, v *domain.Vehicle) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE vehicles SET customer_id = $3, fleet_id = $4, vin = $5, plate = $6, make = $7, model = $8, year = $9, updated_at = NOW()
		 WHERE id = $1 AND org_id = $2`,
		v.ID, v.OrgID, v.CustomerID, v.FleetID, v.VIN, v.Plate, v.Make, v.Model, v.Year,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *VehicleStore) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1 AND org_id = $2`, id, orgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *VehicleStore) CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM vehicles WHERE org_id = $1`,
		orgID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
