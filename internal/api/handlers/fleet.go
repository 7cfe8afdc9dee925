package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/api/middleware"
	"github.com/halden-dev/shoptrack/internal/domain"
	"github.com/halden-dev/shoptrack/internal/service"
)

type FleetHandler struct {
	svc *service.FleetService
}

func NewFleetHandler(svc *service.FleetService) *FleetHandler {
	return &FleetHandler{svc: svc}
}

type fleetRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (h *FleetHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	var req fleetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fleet := &domain.Fleet{
		OrgID:       orgID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.svc.Create(r.Context(), fleet); err != nil {
		if qe, ok := quotaDenied(err); ok {
			writeQuotaDenied(w, qe)
			return
		}
		if errors.Is(err, service.ErrFleetNameRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create fleet")
		return
	}

	writeJSON(w, http.StatusCreated, fleet)
}

func (h *FleetHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid fleet id")
		return
	}

	fleet, err := h.svc.GetByID(r.Context(), id, orgID)
	if err != nil {
		if errors.Is(err, service.ErrFleetNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get fleet")
		return
	}

	writeJSON(w, http.StatusOK, fleet)
}

func (h *FleetHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	fleets, err := h.svc.List(r.Context(), orgID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list fleets")
		return
	}
	if fleets == nil {
		fleets = []domain.Fleet{}
	}

	writeJSON(w, http.StatusOK, fleets)
}

func (h *FleetHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid fleet id")
		return
	}

	var req fleetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fleet := &domain.Fleet{
		ID:          id,
		OrgID:       orgID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.svc.Update(r.Context(), fleet); err != nil {
		switch {
		case errors.Is(err, service.ErrFleetNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrFleetNameRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to update fleet")
		}
		return
	}

	writeJSON(w, http.StatusOK, fleet)
}

func (h *FleetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid fleet id")
		return
	}

	if err := h.svc.Delete(r.Context(), id, orgID); err != nil {
		if errors.Is(err, service.ErrFleetNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete fleet")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
