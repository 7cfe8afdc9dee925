package domain

import "github.com/google/uuid"

// UnresolvedReason distinguishes the normal outcomes where no active
// organization could be determined. These are results, not errors.
type UnresolvedReason string

const (
	UnresolvedNoSession UnresolvedReason = "no_session"
	UnresolvedNoOrgs    UnresolvedReason = "no_organizations"
	UnresolvedAmbiguous UnresolvedReason = "multiple_organizations"
)

// ResolveStrategy records how a resolution was reached, for logging.
type ResolveStrategy string

const (
	StrategyAlreadySet       ResolveStrategy = "already_set"
	StrategyAutoSelectSingle ResolveStrategy = "auto_select_single"
)

// TenantResolution is the outcome of resolving a session's active
// organization. Either OrgID is set (resolved) or Reason is set.
type TenantResolution struct {
	OrgID    uuid.UUID
	Strategy ResolveStrategy
	Reason   UnresolvedReason
}

func (r TenantResolution) Resolved() bool {
	return r.Reason == ""
}

func Resolved(orgID uuid.UUID, strategy ResolveStrategy) TenantResolution {
	return TenantResolution{OrgID: orgID, Strategy: strategy}
}

func Unresolved(reason UnresolvedReason) TenantResolution {
	return TenantResolution{Reason: reason}
}
