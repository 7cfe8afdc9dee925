package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
)

var (
	ErrOrgNameRequired = errors.New("name is required")
	ErrOrgNotFound     = errors.New("organization not found")
	ErrNotAMember      = errors.New("user is not a member of this organization")
)

type OrgService struct {
	orgs        domain.OrgStore
	memberships domain.MembershipStore
	sessions    domain.SessionStore
}

func NewOrgService(orgs domain.OrgStore, memberships domain.MembershipStore, sessions domain.SessionStore) *OrgService {
	return &OrgService{
		orgs:        orgs,
		memberships: memberships,
		sessions:    sessions,
	}
}

// Create makes the organization and an owner membership for the creator.
func (s *OrgService) Create(ctx context.Context, o *domain.Organization, creatorID uuid.UUID) error {
	if o.Name == "" {
		return ErrOrgNameRequired
	}

	if err := s.orgs.Create(ctx, o); err != nil {
		return fmt.Errorf("create organization: %w", err)
	}

	m := &domain.Membership{
		UserID: creatorID,
		OrgID:  o.ID,
		Role:   domain.RoleOwner,
	}
	if err := s.memberships.Create(ctx, m); err != nil {
		return fmt.Errorf("create owner membership for org %s: %w", o.ID, err)
	}
	return nil
}

func (s *OrgService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error) {
	return s.orgs.ListByUser(ctx, userID)
}

// Select sets the session's active organization after validating the
// user actually belongs to it. This is the explicit path for users with
// multiple memberships; it is also the only place a membership check
// guards the active-org write.
func (s *OrgService) Select(ctx context.Context, sess *domain.Session, orgID uuid.UUID) error {
	ok, err := s.memberships.Exists(ctx, sess.UserID, orgID)
	if err != nil {
		return fmt.Errorf("check membership of user %s in org %s: %w", sess.UserID, orgID, err)
	}
	if !ok {
		return ErrNotAMember
	}

	if err := s.sessions.SetActiveOrg(ctx, sess.Token, orgID); err != nil {
		return fmt.Errorf("set active org %s on session: %w", orgID, err)
	}
	sess.ActiveOrgID = orgID
	return nil
}
