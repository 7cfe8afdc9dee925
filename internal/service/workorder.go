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
	ErrWorkOrderTitleRequired   = errors.New("title is required")
	ErrWorkOrderVehicleRequired = errors.New("vehicle_id is required")
	ErrWorkOrderNotFound        = errors.New("work order not found")
	ErrInvalidWorkOrderStatus   = errors.New("invalid status")
)

type WorkOrderService struct {
	orders    domain.WorkOrderStore
	vehicles  domain.VehicleStore
	customers domain.CustomerStore
}

func NewWorkOrderService(orders domain.WorkOrderStore, vehicles domain.VehicleStore, customers domain.CustomerStore) *WorkOrderService {
	return &WorkOrderService{
		orders:    orders,
		vehicles:  vehicles,
		customers: customers,
	}
}

func (s *WorkOrderService) Create(ctx context.Context, w *domain.WorkOrder) error {
	if w.Title == "" {
		return ErrWorkOrderTitleRequired
	}
	if w.VehicleID == uuid.Nil {
		return ErrWorkOrderVehicleRequired
	}

	// Both references must belong to the same org as the order.
	if _, err := s.vehicles.GetByID(ctx, w.VehicleID, w.OrgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	if w.CustomerID != uuid.Nil {
		if _, err := s.customers.GetByID(ctx, w.CustomerID, w.OrgID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}
	}

	if w.Status == "" {
		w.Status = domain.WorkOrderOpen
	}
	if err := s.orders.Create(ctx, w); err != nil {
		return fmt.Errorf("create work order: %w", err)
	}
	return nil
}

func (s *WorkOrderService) GetByID(ctx context.Context, id, orgID uuid.UUID) (*domain.WorkOrder, error) {
	w, err := s.orders.GetByID(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *WorkOrderService) List(ctx context.Context, orgID uuid.UUID) ([]domain.WorkOrder, error) {
	return s.orders.List(ctx, orgID)
}

func (s *WorkOrderService) UpdateStatus(ctx context.Context, id, orgID uuid.UUID, status string) error {
	if !domain.ValidWorkOrderStatus(status) {
		return ErrInvalidWorkOrderStatus
	}
	err := s.orders.UpdateStatus(ctx, id, orgID, domain.WorkOrderStatus(status))
	if errors.Is(err, store.ErrNotFound) {
		return ErrWorkOrderNotFound
	}
	return err
}

func (s *WorkOrderService) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	err := s.orders.Delete(ctx, id, orgID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrWorkOrderNotFound
	}
	return err
}
