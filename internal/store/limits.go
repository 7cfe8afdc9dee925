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

type LimitsStore struct {
	db *pgxpool.Pool
}

func NewLimitsStore(db *pgxpool.Pool) *LimitsStore {
	return &LimitsStore{db: db}
}

func (s *LimitsStore) get(ctx context.Context, orgID uuid.UUID) (*domain.OrgLimits, error) {
	l := &domain.OrgLimits{}
	err := s.db.QueryRow(ctx,
		`SELECT org_id, max_vehicles, max_fleets, max_customers, max_monthly_invoices, created_at, updated_at
		 FROM org_limits WHERE org_id = $1`,
		orgID,
	).Scan(&l.OrgID, &l.MaxVehicles, &l.MaxFleets, &l.MaxCustomers, &l.MaxMonthlyInvoices, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

// GetOrCreate returns the limits row, inserting system defaults when no
// row exists yet. Two first-accesses can race the insert; the loser hits
// the unique constraint on org_id and re-reads the winner's row, so the
// defaults never overwrite an existing record.
func (s *LimitsStore) GetOrCreate(ctx context.Context, orgID uuid.UUID) (*domain.OrgLimits, error) {
	l, err := s.get(ctx, orgID)
	if err == nil {
		return l, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	l = &domain.OrgLimits{OrgID: orgID}
	err = s.db.QueryRow(ctx,
		`INSERT INTO org_limits (org_id, max_vehicles, max_fleets, max_customers)
		 VALUES ($1, $2, $3, $4)
		 RETURNING max_vehicles, max_fleets, max_customers, max_monthly_invoices, created_at, updated_at`,
		orgID, domain.DefaultMaxVehicles, domain.DefaultMaxFleets, domain.DefaultMaxCustomers,
	).Scan(&l.MaxVehicles, &l.MaxFleets, &l.MaxCustomers, &l.MaxMonthlyInvoices, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return s.get(ctx, orgID)
		}
		return nil, err
	}
	return l, nil
}

// Update applies a partial update; nil fields keep their stored value.
// A missing row is seeded with defaults first so unspecified fields end
// up at the system defaults rather than zero.
func (s *LimitsStore) Update(ctx context.Context, orgID uuid.UUID, upd domain.LimitsUpdate) (*domain.OrgLimits, error) {
	if _, err := s.GetOrCreate(ctx, orgID); err != nil {
		return nil, err
	}

	l := &domain.OrgLimits{}
	err := s.db.QueryRow(ctx,
		`UPDATE org_limits SET
		     max_vehicles = COALESCE($2, max_vehicles),
		     max_fleets = COALESCE($3, max_fleets),
		     max_customers = COALESCE($4, max_customers),
		     max_monthly_invoices = CASE WHEN $6 THEN NULL ELSE COALESCE($5, max_monthly_invoices) END,
		     updated_at = NOW()
		 WHERE org_id = $1
		 RETURNING org_id, max_vehicles, max_fleets, max_customers, max_monthly_invoices, created_at, updated_at`,
		orgID, upd.MaxVehicles, upd.MaxFleets, upd.MaxCustomers, upd.MaxMonthlyInvoices, upd.ClearMonthlyInvoices,
	).Scan(&l.OrgID, &l.MaxVehicles, &l.MaxFleets, &l.MaxCustomers, &l.MaxMonthlyInvoices, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}
