package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WorkOrderStore struct {
	db *pgxpool.Pool
}

func NewWorkOrderStore(db *pgxpool.Pool) *WorkOrderStore {
	return &WorkOrderStore{db: db}
}

func (s *WorkOrderStore) Create(ctx context.Context, w *domain.WorkOrder) error {
	// customer_id is nullable; a Nil uuid means no customer attached.
	var customerID *uuid.UUID
	if w.CustomerID != uuid.Nil {
		customerID = &w.CustomerID
	}
	return s.db.QueryRow(ctx,
		`INSERT INTO work_orders (org_id, vehicle_id, customer_id, status, title, notes, opened_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())
		 RETURNING id, opened_at, created_at, updated_at`,
		w.OrgID, w.VehicleID, customerID, w.Status, w.Title, w.Notes,
	).Scan(&w.ID, &w.OpenedAt, &w.CreatedAt, &w.UpdatedAt)
}

func (s *WorkOrderStore) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.WorkOrder, error) {
	w := &domain.WorkOrder{}
	var customerID *uuid.UUID
	err := s.db.QueryRow(ctx,
		`SELECT id, org_id, vehicle_id, customer_id, status, title, notes, opened_at, closed_at, created_at, updated_at
		 FROM work_orders WHERE id = $1 AND org_id = $2`,
		id, orgID,
	).Scan(&w.ID, &w.OrgID, &w.VehicleID, &customerID, &w.Status, &w.Title, &w.Notes, &w.OpenedAt, &w.ClosedAt, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if customerID != nil {
		w.CustomerID = *customerID
	}
	return w, nil
}

func (s *WorkOrderStore) List(ctx context.Context, orgID uuid.UUID) ([]domain.WorkOrder, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, org_id, vehicle_id, customer_id, status, title, notes, opened_at, closed_at, created_at, updated_at
		 FROM work_orders WHERE org_id = $1 ORDER BY opened_at DESC`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.WorkOrder
	for rows.Next() {
		var w domain.WorkOrder
		var customerID *uuid.UUID
		if err := rows.Scan(&w.ID, &w.OrgID, &w.VehicleID, &customerID, &w.Status, &w.Title, &w.Notes, &w.OpenedAt, &w.ClosedAt, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		if customerID != nil {
			w.CustomerID = *customerID
		}
		orders = append(orders, w)
	}
	return orders, rows.Err()
}

func (s *WorkOrderStore) UpdateStatus(ctx context.Context, id, orgID uuid.UUID, status domain.WorkOrderStatus) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE work_orders SET status = $3,
		     closed_at = CASE WHEN $3 = 'completed' THEN NOW() ELSE NULL END,
		     updated_at = NOW()
		 WHERE id = $1 AND org_id = $2`,
		id, orgID, status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *WorkOrderStore) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM work_orders WHERE id = $1 AND org_id = $2`, id, orgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
