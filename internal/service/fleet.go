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
	ErrFleetNameRequired = errors.New("name is required")
	ErrFleetNotFound     = errors.New("fleet not found")
)

type FleetService struct {
	fleets domain.FleetStore
	guard  *QuotaGuard
}

func NewFleetService(fleets domain.FleetStore, guard *QuotaGuard) *FleetService {
	return &FleetService{fleets: fleets, guard: guard}
}

func (s *FleetService) Create(ctx context.Context, f *domain.Fleet) error {
	if f.Name == "" {
		return ErrFleetNameRequired
	}

	decision, err := s.guard.CheckFleetLimit(ctx, f.OrgID)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return &QuotaDeniedError{Decision: decision}
	}

	if err := s.fleets.Create(ctx, f); err != nil {
		return fmt.Errorf("create fleet: %w", err)
	}
	return nil
}

func (s *FleetService) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Fleet, error) {
	f, err := s.fleets.GetByID(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrFleetNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *FleetService) List(ctx context.Context, orgID uuid.UUID) ([]domain.Fleet, error) {
	return s.fleets.List(ctx, orgID)
}

func (s *FleetService) Update(ctx context.Context, f *domain.Fleet) error {
	if f.Name == "" {
		return ErrFleetNameRequired
	}
	err := s.fleets.Update(ctx, f)
	if errors.Is(err, store.ErrNotFound) {
		return ErrFleetNotFound
	}
	return err
}

func (s *FleetService) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	err := s.fleets.Delete(ctx, id, orgID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrFleetNotFound
	}
	return err
}
