package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
	"golang.org/x/sync/errgroup"
)

// UsageService computes current per-organization resource counts from
// the authoritative tables. The three counts run concurrently and are
// not taken in one transaction; the snapshot is advisory input for the
// quota check, so slight skew between counts is acceptable.
type UsageService struct {
	vehicles  domain.VehicleStore
	fleets    domain.FleetStore
	customers domain.CustomerStore
}

func NewUsageService(vehicles domain.VehicleStore, fleets domain.FleetStore, customers domain.CustomerStore) *UsageService {
	return &UsageService{
		vehicles:  vehicles,
		fleets:    fleets,
		customers: customers,
	}
}

// GetUsage fails fast: any single count error aborts the others and
// surfaces as one aggregate storage error, never a partial snapshot.
func (s *UsageService) GetUsage(ctx context.Context, orgID uuid.UUID) (domain.UsageSnapshot, error) {
	var snap domain.UsageSnapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.vehicles.CountByOrg(ctx, orgID)
		if err != nil {
			return fmt.Errorf("count vehicles: %w", err)
		}
		snap.VehicleCount = n
		return nil
	})
	g.Go(func() error {
		n, err := s.fleets.CountByOrg(ctx, orgID)
		if err != nil {
			return fmt.Errorf("count fleets: %w", err)
		}
		snap.FleetCount = n
		return nil
	})
	g.Go(func() error {
		n, err := s.customers.CountByOrg(ctx, orgID)
		if err != nil {
			return fmt.Errorf("count customers: %w", err)
		}
		snap.CustomerCount = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.UsageSnapshot{}, fmt.Errorf("usage for org %s: %w", orgID, err)
	}
	return snap, nil
}
