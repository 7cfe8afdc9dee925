package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
	"go.uber.org/zap"
)

// TenantResolver determines which organization a session operates
// against. Unresolved outcomes are values, not errors; only storage
// failures come back on the error channel.
type TenantResolver struct {
	sessions    domain.SessionStore
	memberships domain.MembershipStore
	logger      *zap.Logger
}

func NewTenantResolver(sessions domain.SessionStore, memberships domain.MembershipStore, logger *zap.Logger) *TenantResolver {
	return &TenantResolver{
		sessions:    sessions,
		memberships: memberships,
		logger:      logger,
	}
}

// Resolve returns the session's active organization. A previously set
// active org is trusted as-is: membership is validated where the org
// was originally selected, not re-checked per request. When the user
// belongs to exactly one organization it is auto-selected and persisted
// onto the session; zero or multiple memberships are returned as
// unresolved so the caller can prompt for explicit selection.
func (r *TenantResolver) Resolve(ctx context.Context, sess *domain.Session) (domain.TenantResolution, error) {
	if sess == nil || sess.UserID == uuid.Nil {
		return domain.Unresolved(domain.UnresolvedNoSession), nil
	}

	if sess.ActiveOrgID != uuid.Nil {
		return domain.Resolved(sess.ActiveOrgID, domain.StrategyAlreadySet), nil
	}

	orgIDs, err := r.memberships.ListOrgIDs(ctx, sess.UserID)
	if err != nil {
		return domain.TenantResolution{}, fmt.Errorf("list memberships for user %s: %w", sess.UserID, err)
	}

	switch len(orgIDs) {
	case 0:
		return domain.Unresolved(domain.UnresolvedNoOrgs), nil
	case 1:
		// Concurrent resolves write the same org id, so this is
		// idempotent and needs no locking.
		if err := r.sessions.SetActiveOrg(ctx, sess.Token, orgIDs[0]); err != nil {
			return domain.TenantResolution{}, fmt.Errorf("set active org %s on session: %w", orgIDs[0], err)
		}
		sess.ActiveOrgID = orgIDs[0]
		r.logger.Info("auto-selected sole organization",
			zap.String("user_id", sess.UserID.String()),
			zap.String("org_id", orgIDs[0].String()),
		)
		return domain.Resolved(orgIDs[0], domain.StrategyAutoSelectSingle), nil
	default:
		return domain.Unresolved(domain.UnresolvedAmbiguous), nil
	}
}
