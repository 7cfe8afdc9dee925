package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
	"github.com/halden-dev/shoptrack/internal/service"
)

const orgContextKey contextKey = "org_id"

func OrgFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(orgContextKey).(uuid.UUID)
	return id
}

// RequireOrg resolves the session's active organization and stashes the
// org id in the request context. Unresolved outcomes map to client
// errors with a reason code so the UI can prompt for selection or org
// creation; only storage failures become 500s.
func RequireOrg(resolver *service.TenantResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())

			res, err := resolver.Resolve(r.Context(), sess)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to resolve organization")
				return
			}
			if !res.Resolved() {
				switch res.Reason {
				case domain.UnresolvedNoSession:
					writeError(w, http.StatusUnauthorized, "authentication required")
				default:
					writeUnresolved(w, res.Reason)
				}
				return
			}

			ctx := context.WithValue(r.Context(), orgContextKey, res.OrgID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnresolved(w http.ResponseWriter, reason domain.UnresolvedReason) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":  "no active organization",
		"reason": string(reason),
	})
}
