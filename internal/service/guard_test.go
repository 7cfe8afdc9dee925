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

func setupGuardTest() (*QuotaGuard, *mockLimitsStore, *mockVehicleStore, *mockFleetStore, *mockCustomerStore) {
	limits := newMockLimitsStore()
	vehicles := newMockVehicleStore()
	fleets := newMockFleetStore()
	customers := newMockCustomerStore()
	guard := NewQuotaGuard(limits, vehicles, fleets, customers)
	return guard, limits, vehicles, fleets, customers
}

func fillVehicles(t *testing.T, vehicles *mockVehicleStore, orgID uuid.UUID, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		v := &domain.Vehicle{OrgID: orgID, Plate: uuid.NewString()}
		require.NoError(t, vehicles.Create(context.Background(), v))
	}
}

func TestQuotaGuard_AllowsUnderLimit(t *testing.T) {
	guard, limits, vehicles, _, _ := setupGuardTest()
	orgID := uuid.New()
	ctx := context.Background()

	max := 3
	_, err := limits.Update(ctx, orgID, domain.LimitsUpdate{MaxVehicles: &max})
	require.NoError(t, err)

	fillVehicles(t, vehicles, orgID, 2)

	decision, err := guard.CheckVehicleLimit(ctx, orgID)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, domain.ResourceVehicles, decision.Resource)
	assert.Equal(t, 2, decision.CurrentUsage)
	assert.Equal(t, 3, decision.Limit)
}

func TestQuotaGuard_DeniesAtLimit(t *testing.T) {
	guard, limits, vehicles, _, _ := setupGuardTest()
	orgID := uuid.New()
	ctx := context.Background()

	max := 3
	_, err := limits.Update(ctx, orgID, domain.LimitsUpdate{MaxVehicles: &max})
	require.NoError(t, err)

	// usage == limit denies; the boundary unit is never granted.
	fillVehicles(t, vehicles, orgID, 3)

	decision, err := guard.CheckVehicleLimit(ctx, orgID)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 3, decision.CurrentUsage)
	assert.Equal(t, 3, decision.Limit)
}

func TestQuotaGuard_CustomerDefaultBoundary(t *testing.T) {
	guard, _, _, _, customers := setupGuardTest()
	orgID := uuid.New()
	ctx := context.Background()

	for i := 0; i < domain.DefaultMaxCustomers-1; i++ {
		require.NoError(t, customers.Create(ctx, &domain.Customer{OrgID: orgID, Name: "c"}))
	}

	decision, err := guard.CheckCustomerLimit(ctx, orgID)
	require.NoError(t, err)
	assert.True(t, decision.Allowed, "199 of 200 must allow one more")

	require.NoError(t, customers.Create(ctx, &domain.Customer{OrgID: orgID, Name: "c"}))

	decision, err = guard.CheckCustomerLimit(ctx, orgID)
	require.NoError(t, err)
	assert.False(t, decision.Allowed, "200 of 200 must deny")
	assert.Equal(t, domain.DefaultMaxCustomers, decision.CurrentUsage)
	assert.Equal(t, domain.DefaultMaxCustomers, decision.Limit)
}

func TestQuotaGuard_BootstrapsDefaults(t *testing.T) {
	guard, _, _, _, _ := setupGuardTest()
	orgID := uuid.New()

	// First check for an org that has no limits row yet uses defaults.
	decision, err := guard.CheckFleetLimit(context.Background(), orgID)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 0, decision.CurrentUsage)
	assert.Equal(t, domain.DefaultMaxFleets, decision.Limit)
}

func TestQuotaGuard_CountError(t *testing.T) {
	guard, _, vehicles, _, _ := setupGuardTest()
	vehicles.countErr = errors.New("count failed")

	_, err := guard.CheckVehicleLimit(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, vehicles.countErr)
}

func TestQuotaGuard_LimitsError(t *testing.T) {
	guard, limits, _, _, _ := setupGuardTest()
	limits.getErr = errors.New("limits unavailable")

	_, err := guard.CheckCustomerLimit(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, limits.getErr)
}

func TestQuotaDeniedError_Message(t *testing.T) {
	err := &QuotaDeniedError{Decision: domain.QuotaDecision{
		Resource:     domain.ResourceVehicles,
		CurrentUsage: 100,
		Limit:        100,
	}}
	assert.Equal(t, "vehicles quota exceeded: 100/100", err.Error())
}
