package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
)

// QuotaDeniedError is returned by create paths when the guard denies
// one more unit of a resource. It carries the numbers the decision was
// based on so handlers can show usage vs. limit.
type QuotaDeniedError struct {
	Decision domain.QuotaDecision
}

func (e *QuotaDeniedError) Error() string {
	return fmt.Sprintf("%s quota exceeded: %d/%d", e.Decision.Resource, e.Decision.CurrentUsage, e.Decision.Limit)
}

// QuotaGuard answers "may one more X be created for this org right
// now?". The check is advisory: the count-compare-insert sequence is
// not atomic across concurrent requests, so a burst can transiently
// overshoot a limit by a small margin. That tolerance is intentional
// for a human-paced tool; callers wanting hard guarantees would need
// to move the final compare and insert into one transaction under a
// tenant-scoped advisory lock.
type QuotaGuard struct {
	limits    domain.LimitsStore
	vehicles  domain.VehicleStore
	fleets    domain.FleetStore
	customers domain.CustomerStore
}

func NewQuotaGuard(limits domain.LimitsStore, vehicles domain.VehicleStore, fleets domain.FleetStore, customers domain.CustomerStore) *QuotaGuard {
	return &QuotaGuard{
		limits:    limits,
		vehicles:  vehicles,
		fleets:    fleets,
		customers: customers,
	}
}

func (g *QuotaGuard) CheckVehicleLimit(ctx context.Context, orgID uuid.UUID) (domain.QuotaDecision, error) {
	return g.check(ctx, orgID, domain.ResourceVehicles, g.vehicles.CountByOrg, func(l *domain.OrgLimits) int { return l.MaxVehicles })
}

func (g *QuotaGuard) CheckFleetLimit(ctx context.Context, orgID uuid.UUID) (domain.QuotaDecision, error) {
	return g.check(ctx, orgID, domain.ResourceFleets, g.fleets.CountByOrg, func(l *domain.OrgLimits) int { return l.MaxFleets })
}

func (g *QuotaGuard) CheckCustomerLimit(ctx context.Context, orgID uuid.UUID) (domain.QuotaDecision, error) {
	return g.check(ctx, orgID, domain.ResourceCustomers, g.customers.CountByOrg, func(l *domain.OrgLimits) int { return l.MaxCustomers })
}

func (g *QuotaGuard) check(
	ctx context.Context,
	orgID uuid.UUID,
	resource domain.ResourceType,
	count func(context.Context, uuid.UUID) (int, error),
	limitOf func(*domain.OrgLimits) int,
) (domain.QuotaDecision, error) {
	limits, err := g.limits.GetOrCreate(ctx, orgID)
	if err != nil {
		return domain.QuotaDecision{}, fmt.Errorf("load limits for org %s: %w", orgID, err)
	}

	current, err := count(ctx, orgID)
	if err != nil {
		return domain.QuotaDecision{}, fmt.Errorf("count %s for org %s: %w", resource, orgID, err)
	}

	limit := limitOf(limits)
	return domain.QuotaDecision{
		Resource:     resource,
		Allowed:      current < limit,
		CurrentUsage: current,
		Limit:        limit,
	}, nil
}
