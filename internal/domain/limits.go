package domain

import (
	"time"

	"github.com/google/uuid"
)

// System defaults seeded when an organization's limits row is first accessed.
const (
	DefaultMaxVehicles  = 100
	DefaultMaxFleets    = 50
	DefaultMaxCustomers = 200
)

// OrgLimits is the per-organization resource ceiling record. Exactly one
// row exists per organization once first accessed; it is created lazily
// with the defaults above and only changed by explicit admin updates.
type OrgLimits struct {
	OrgID              uuid.UUID `json:"org_id"`
	MaxVehicles        int       `json:"max_vehicles"`
	MaxFleets          int       `json:"max_fleets"`
	MaxCustomers       int       `json:"max_customers"`
	MaxMonthlyInvoices *int      `json:"max_monthly_invoices"` // nil = unlimited
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// LimitsUpdate is a partial update: nil fields keep their current value.
// ClearMonthlyInvoices removes the monthly invoice ceiling entirely.
type LimitsUpdate struct {
	MaxVehicles          *int `json:"max_vehicles,omitempty"`
	MaxFleets            *int `json:"max_fleets,omitempty"`
	MaxCustomers         *int `json:"max_customers,omitempty"`
	MaxMonthlyInvoices   *int `json:"max_monthly_invoices,omitempty"`
	ClearMonthlyInvoices bool `json:"clear_monthly_invoices,omitempty"`
}

// UsageSnapshot holds current per-organization resource counts. It is
// computed on demand from the resource tables and never persisted.
type UsageSnapshot struct {
	VehicleCount  int `json:"vehicle_count"`
	FleetCount    int `json:"fleet_count"`
	CustomerCount int `json:"customer_count"`
}
