package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestTenantResolution_Resolved(t *testing.T) {
	orgID := uuid.New()

	res := Resolved(orgID, StrategyAutoSelectSingle)
	if !res.Resolved() {
		t.Error("expected resolved outcome")
	}
	if res.OrgID != orgID {
		t.Errorf("expected org %s, got %s", orgID, res.OrgID)
	}
	if res.Reason != "" {
		t.Errorf("resolved outcome should carry no reason, got %q", res.Reason)
	}
}

func TestTenantResolution_Unresolved(t *testing.T) {
	reasons := []UnresolvedReason{UnresolvedNoSession, UnresolvedNoOrgs, UnresolvedAmbiguous}
	for _, reason := range reasons {
		res := Unresolved(reason)
		if res.Resolved() {
			t.Errorf("Unresolved(%q) should not be resolved", reason)
		}
		if res.OrgID != uuid.Nil {
			t.Errorf("Unresolved(%q) should carry no org, got %s", reason, res.OrgID)
		}
	}
}

func TestValidWorkOrderStatus(t *testing.T) {
	valid := []string{"open", "in_progress", "completed"}
	for _, s := range valid {
		if !ValidWorkOrderStatus(s) {
			t.Errorf("ValidWorkOrderStatus(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "cancelled", "OPEN", "done"}
	for _, s := range invalid {
		if ValidWorkOrderStatus(s) {
			t.Errorf("ValidWorkOrderStatus(%q) = true, want false", s)
		}
	}
}
