package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is owned by the external auth system. This service only ever
// reads sessions and writes the active_org_id field; it never creates
// or deletes them.
type Session struct {
	Token       string    `json:"-"`
	UserID      uuid.UUID `json:"user_id"`
	ActiveOrgID uuid.UUID `json:"active_org_id,omitempty"` // uuid.Nil when unset
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}
