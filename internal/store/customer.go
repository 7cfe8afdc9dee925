package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerStore struct {
	db *pgxpool.Pool
}

func NewCustomerStore(db *pgxpool.Pool) *CustomerStore {
	return &CustomerStore{db: db}
}

func (s *CustomerStore) Create(ctx context.Context, c *domain.Customer) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO customers (org_id, name, email, phone, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		c.OrgID, c.Name, c.Email, c.Phone, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (s *CustomerStore) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := s.db.QueryRow(ctx,
		`SELECT id, org_id, name, email, phone, notes, created_at, updated_at
		 FROM customers WHERE id = $1 AND org_id = $2`,
		id, orgID,
	).Scan(&c.ID, &c.OrgID, &c.Name, &c.Email, &c.Phone, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CustomerStore) List(ctx context.Context, orgID uuid.UUID) ([]domain.Customer, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, org_id, name, email, phone, notes, created_at, updated_at
		 FROM customers WHERE org_id = $1 ORDER BY name`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.OrgID, &c.Name, &c.Email, &c.Phone, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *CustomerStore) Update(ctx context.Context, c *domain.Customer) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE customers SET name = $3, email = $4, phone = $5, notes = $6, updated_at = NOW()
		 WHERE id = $1 AND org_id = $2`,
		c.ID, c.OrgID, c.Name, c.Email, c.Phone, c.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CustomerStore) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM customers WHERE id = $1 AND org_id = $2`, id, orgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CustomerStore) CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM customers WHERE org_id = $1`,
		orgID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
