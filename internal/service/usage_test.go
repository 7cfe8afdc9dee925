package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageService_GetUsage(t *testing.T) {
	vehicles := newMockVehicleStore()
	fleets := newMockFleetStore()
	customers := newMockCustomerStore()
	svc := NewUsageService(vehicles, fleets, customers)

	orgID := uuid.New()
	otherOrg := uuid.New()
	ctx := context.Background()

	fillVehicles(t, vehicles, orgID, 3)
	require.NoError(t, fleets.Create(ctx, &domain.Fleet{OrgID: orgID, Name: "vans"}))
	require.NoError(t, customers.Create(ctx, &domain.Customer{OrgID: orgID, Name: "a"}))
	require.NoError(t, customers.Create(ctx, &domain.Customer{OrgID: orgID, Name: "b"}))

	// Other tenants never leak into the counts.
	require.NoError(t, customers.Create(ctx, &domain.Customer{OrgID: otherOrg, Name: "x"}))

	snap, err := svc.GetUsage(ctx, orgID)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.VehicleCount)
	assert.Equal(t, 1, snap.FleetCount)
	assert.Equal(t, 2, snap.CustomerCount)
}

func TestUsageService_GetUsage_EmptyOrg(t *testing.T) {
	svc := NewUsageService(newMockVehicleStore(), newMockFleetStore(), newMockCustomerStore())

	snap, err := svc.GetUsage(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, domain.UsageSnapshot{}, snap)
}

func TestUsageService_GetUsage_CountErrorFailsWhole(t *testing.T) {
	vehicles := newMockVehicleStore()
	fleets := newMockFleetStore()
	customers := newMockCustomerStore()
	svc := NewUsageService(vehicles, fleets, customers)

	fleets.countErr = errors.New("fleet count failed")

	snap, err := svc.GetUsage(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, fleets.countErr)
	assert.Equal(t, domain.UsageSnapshot{}, snap, "no partial snapshot on error")
}
