package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/halden-dev/shoptrack/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeQuotaDenied renders a quota denial with the usage snapshot the
// decision was based on. 403: the request is understood and refused.
func writeQuotaDenied(w http.ResponseWriter, err *service.QuotaDeniedError) {
	writeJSON(w, http.StatusForbidden, map[string]any{
		"error":         "quota exceeded",
		"resource":      err.Decision.Resource,
		"current_usage": err.Decision.CurrentUsage,
		"limit":         err.Decision.Limit,
	})
}

// quotaDenied pulls a QuotaDeniedError out of an error chain.
func quotaDenied(err error) (*service.QuotaDeniedError, bool) {
	var qe *service.QuotaDeniedError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}
