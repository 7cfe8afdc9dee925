package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
	"go.uber.org/zap"
)

func setupResolverTest() (*TenantResolver, *mockSessionStore, *mockMembershipStore) {
	sessions := newMockSessionStore()
	memberships := newMockMembershipStore()
	resolver := NewTenantResolver(sessions, memberships, zap.NewNop())
	return resolver, sessions, memberships
}

func seedSession(sessions *mockSessionStore, userID uuid.UUID) *domain.Session {
	sess := &domain.Session{
		Token:     "tok-" + userID.String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	sessions.sessions[sess.Token] = sess
	return sess
}

func TestTenantResolver_NilSession(t *testing.T) {
	resolver, _, _ := setupResolverTest()

	res, err := resolver.Resolve(context.Background(), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Resolved() {
		t.Fatal("expected unresolved outcome")
	}
	if res.Reason != domain.UnresolvedNoSession {
		t.Fatalf("expected reason %q, got %q", domain.UnresolvedNoSession, res.Reason)
	}
}

func TestTenantResolver_AlreadySet(t *testing.T) {
	resolver, sessions, memberships := setupResolverTest()

	userID := uuid.New()
	orgID := uuid.New()
	sess := seedSession(sessions, userID)
	sess.ActiveOrgID = orgID

	res, err := resolver.Resolve(context.Background(), sess)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !res.Resolved() {
		t.Fatalf("expected resolved outcome, got reason %q", res.Reason)
	}
	if res.OrgID != orgID {
		t.Fatalf("expected org %s, got %s", orgID, res.OrgID)
	}
	if res.Strategy != domain.StrategyAlreadySet {
		t.Fatalf("expected strategy %q, got %q", domain.StrategyAlreadySet, res.Strategy)
	}
	// A set active org is trusted without touching memberships.
	if memberships.listOrgIDsCalls != 0 {
		t.Fatalf("expected 0 membership lookups, got %d", memberships.listOrgIDsCalls)
	}
	if sessions.setActiveOrgCalls != 0 {
		t.Fatalf("expected 0 session writes, got %d", sessions.setActiveOrgCalls)
	}
}

func TestTenantResolver_AutoSelectSingle(t *testing.T) {
	resolver, sessions, memberships := setupResolverTest()

	userID := uuid.New()
	orgID := uuid.New()
	sess := seedSession(sessions, userID)
	memberships.memberships = append(memberships.memberships, domain.Membership{UserID: userID, OrgID: orgID})

	res, err := resolver.Resolve(context.Background(), sess)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !res.Resolved() {
		t.Fatalf("expected resolved outcome, got reason %q", res.Reason)
	}
	if res.OrgID != orgID {
		t.Fatalf("expected org %s, got %s", orgID, res.OrgID)
	}
	if res.Strategy != domain.StrategyAutoSelectSingle {
		t.Fatalf("expected strategy %q, got %q", domain.StrategyAutoSelectSingle, res.Strategy)
	}

	// The selection must be persisted onto the stored session.
	stored := sessions.sessions[sess.Token]
	if stored.ActiveOrgID != orgID {
		t.Fatalf("expected stored session active org %s, got %s", orgID, stored.ActiveOrgID)
	}
	if sessions.setActiveOrgCalls != 1 {
		t.Fatalf("expected 1 session write, got %d", sessions.setActiveOrgCalls)
	}
}

func TestTenantResolver_AutoSelectIsIdempotent(t *testing.T) {
	resolver, sessions, memberships := setupResolverTest()

	userID := uuid.New()
	orgID := uuid.New()
	sess := seedSession(sessions, userID)
	memberships.memberships = append(memberships.memberships, domain.Membership{UserID: userID, OrgID: orgID})

	ctx := context.Background()
	first, err := resolver.Resolve(ctx, sess)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	// The resolver mutated the session in place, so a second resolve
	// sees the active org and short-circuits without another write.
	second, err := resolver.Resolve(ctx, sess)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if second.OrgID != first.OrgID {
		t.Fatalf("expected same org, got %s then %s", first.OrgID, second.OrgID)
	}
	if second.Strategy != domain.StrategyAlreadySet {
		t.Fatalf("expected strategy %q on re-resolve, got %q", domain.StrategyAlreadySet, second.Strategy)
	}
	if sessions.setActiveOrgCalls != 1 {
		t.Fatalf("expected 1 total session write, got %d", sessions.setActiveOrgCalls)
	}
}

func TestTenantResolver_NoOrgs(t *testing.T) {
	resolver, sessions, _ := setupResolverTest()

	sess := seedSession(sessions, uuid.New())

	res, err := resolver.Resolve(context.Background(), sess)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Resolved() {
		t.Fatal("expected unresolved outcome")
	}
	if res.Reason != domain.UnresolvedNoOrgs {
		t.Fatalf("expected reason %q, got %q", domain.UnresolvedNoOrgs, res.Reason)
	}
	if sessions.setActiveOrgCalls != 0 {
		t.Fatalf("expected no session writes, got %d", sessions.setActiveOrgCalls)
	}
}

func TestTenantResolver_MultipleOrgs(t *testing.T) {
	resolver, sessions, memberships := setupResolverTest()

	userID := uuid.New()
	sess := seedSession(sessions, userID)
	memberships.memberships = append(memberships.memberships,
		domain.Membership{UserID: userID, OrgID: uuid.New()},
		domain.Membership{UserID: userID, OrgID: uuid.New()},
	)

	res, err := resolver.Resolve(context.Background(), sess)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Resolved() {
		t.Fatal("expected unresolved outcome")
	}
	if res.Reason != domain.UnresolvedAmbiguous {
		t.Fatalf("expected reason %q, got %q", domain.UnresolvedAmbiguous, res.Reason)
	}
	// Ambiguity never picks an org on the user's behalf.
	if sessions.setActiveOrgCalls != 0 {
		t.Fatalf("expected no session writes, got %d", sessions.setActiveOrgCalls)
	}
}

func TestTenantResolver_MembershipStoreError(t *testing.T) {
	resolver, sessions, memberships := setupResolverTest()

	sess := seedSession(sessions, uuid.New())
	memberships.listOrgIDsErr = errors.New("connection refused")

	_, err := resolver.Resolve(context.Background(), sess)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, memberships.listOrgIDsErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestTenantResolver_SessionWriteError(t *testing.T) {
	resolver, sessions, memberships := setupResolverTest()

	userID := uuid.New()
	sess := seedSession(sessions, userID)
	memberships.memberships = append(memberships.memberships, domain.Membership{UserID: userID, OrgID: uuid.New()})
	sessions.setActiveOrgErr = errors.New("write failed")

	_, err := resolver.Resolve(context.Background(), sess)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, sessions.setActiveOrgErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
