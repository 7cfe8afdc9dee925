package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
	"github.com/halden-dev/shoptrack/internal/store"
)

var (
	ErrCustomerNameRequired = errors.New("name is required")
	ErrCustomerNotFound     = errors.New("customer not found")
)

type CustomerService struct {
	customers domain.CustomerStore
	guard     *QuotaGuard
}

func NewCustomerService(customers domain.CustomerStore, guard *QuotaGuard) *CustomerService {
	return &CustomerService{customers: customers, guard: guard}
}

// Create checks the customer quota before inserting. The check and the
// insert are separate statements; see QuotaGuard for the accepted race.
func (s *CustomerService) Create(ctx context.Context, c *domain.Customer) error {
	if c.Name == "" {
		return ErrCustomerNameRequired
	}

	decision, err := s.guard.CheckCustomerLimit(ctx, c.OrgID)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return &QuotaDeniedError{Decision: decision}
	}

	if err := s.customers.Create(ctx, c); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (s *CustomerService) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) List(ctx context.Context, orgID uuid.UUID) ([]domain.Customer, error) {
	return s.customers.List(ctx, orgID)
}

func (s *CustomerService) Update(ctx context.Context, c *domain.Customer) error {
	if c.Name == "" {
		return ErrCustomerNameRequired
	}
	err := s.customers.Update(ctx, c)
	if errors.Is(err, store.ErrNotFound) {
		return ErrCustomerNotFound
	}
	return err
}

func (s *CustomerService) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	err := s.customers.Delete(ctx, id, orgID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrCustomerNotFound
	}
	return err
}
