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
	ErrVehiclePlateRequired = errors.New("plate is required")
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrVehicleConflict      = errors.New("vehicle already exists")
)

type VehicleService struct {
	vehicles domain.VehicleStore
	guard    *QuotaGuard
}

func NewVehicleService(vehicles domain.VehicleStore, guard *QuotaGuard) *VehicleService {
	return &VehicleService{vehicles: vehicles, guard: guard}
}

func (s *VehicleService) Create(ctx context.Context, v *domain.Vehicle) error {
	if v.Plate == "" {
		return ErrVehiclePlateRequired
	}

	decision, err := s.guard.CheckVehicleLimit(ctx, v.OrgID)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return &QuotaDeniedError{Decision: decision}
	}

	if err := s.vehicles.Create(ctx, v); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrVehicleConflict
		}
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}

func (s *VehicleService) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.Vehicle, error) {
	v, err := s.vehicles.GetByID(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *VehicleService) List(ctx context.Context, orgID uuid.UUID) ([]domain.Vehicle, error) {
	return s.vehicles.List(ctx, orgID)
}

func (s *VehicleService) Update(ctx context.Context, v *domain.Vehicle) error {
	if v.Plate == "" {
		return ErrVehiclePlateRequired
	}
	err := s.vehicles.Update(ctx, v)
	if errors.Is(err, store.ErrNotFound) {
		return ErrVehicleNotFound
	}
	return err
}

func (s *VehicleService) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	err := s.vehicles.Delete(ctx, id, orgID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrVehicleNotFound
	}
	return err
}
