package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/halden-dev/shoptrack/internal/api/middleware"
	"github.com/halden-dev/shoptrack/internal/domain"
	"github.com/halden-dev/shoptrack/internal/service"
)

type LimitsHandler struct {
	quota *service.QuotaService
	usage *service.UsageService
}

func NewLimitsHandler(quota *service.QuotaService, usage *service.UsageService) *LimitsHandler {
	return &LimitsHandler{quota: quota, usage: usage}
}

func (h *LimitsHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	limits, err := h.quota.GetLimits(r.Context(), orgID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load limits")
		return
	}

	writeJSON(w, http.StatusOK, limits)
}

func (h *LimitsHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	var upd domain.LimitsUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	limits, err := h.quota.SetLimits(r.Context(), orgID, upd)
	if err != nil {
		if errors.Is(err, service.ErrLimitNotPositive) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update limits")
		return
	}

	writeJSON(w, http.StatusOK, limits)
}

func (h *LimitsHandler) Usage(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	snap, err := h.usage.GetUsage(r.Context(), orgID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute usage")
		return
	}

	writeJSON(w, http.StatusOK, snap)
}
