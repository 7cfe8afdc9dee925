package domain

import (
	"context"

	"github.com/google/uuid"
)

type OrgStore interface {
	Create(ctx context.Context, o *Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Organization, error)
}

type MembershipStore interface {
	Create(ctx context.Context, m *Membership) error
	ListOrgIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Exists(ctx context.Context, userID, orgID uuid.UUID) (bool, error)
}

// SessionStore reads sessions issued by the external auth system and
// writes the single field this service owns on them.
type SessionStore interface {
	GetByToken(ctx context.Context, token string) (*Session, error)
	SetActiveOrg(ctx context.Context, token string, orgID uuid.UUID) error
}

// LimitsStore owns the per-organization limits row. GetOrCreate is the
// idempotent bootstrap: read the row, else insert defaults, and treat a
// concurrent insert winning the race as success by re-reading.
type LimitsStore interface {
	GetOrCreate(ctx context.Context, orgID uuid.UUID) (*OrgLimits, error)
	Update(ctx context.Context, orgID uuid.UUID, upd LimitsUpdate) (*OrgLimits, error)
}

type CustomerStore interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id, orgID uuid.UUID) (*Customer, error)
	List(ctx context.Context, orgID uuid.UUID) ([]Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id, orgID uuid.UUID) error
	CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error)
}

type VehicleStore interface {
	Create(ctx context.Context, v *Vehicle) error
	GetByID(ctx context.Context, id, orgID uuid.UUID) (*Vehicle, error)
	List(ctx context.Context, orgID uuid.UUID) ([]Vehicle, error)
	Update(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, id, orgID uuid.UUID) error
	CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error)
}

type FleetStore interface {
	Create(ctx context.Context, f *Fleet) error
	GetByID(ctx context.Context, id, orgID uuid.UUID) (*Fleet, error)
	List(ctx context.Context, orgID uuid.UUID) ([]Fleet, error)
	Update(ctx context.Context, f *Fleet) error
	Delete(ctx context.Context, id, orgID uuid.UUID) error
	CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error)
}

type WorkOrderStore interface {
	Create(ctx context.Context, w *WorkOrder) error
	GetByID(ctx context.Context, id, orgID uuid.UUID) (*WorkOrder, error)
	List(ctx context.Context, orgID uuid.UUID) ([]WorkOrder, error)
	UpdateStatus(ctx context.Context, id, orgID uuid.UUID, status WorkOrderStatus) error
	Delete(ctx context.Context, id, orgID uuid.UUID) error
}
