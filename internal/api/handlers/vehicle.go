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

type VehicleHandler struct {
	svc *service.VehicleService
}

func NewVehicleHandler(svc *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{svc: svc}
}

type vehicleRequest struct {
	CustomerID *string `json:"customer_id,omitempty"`
	FleetID    *string `json:"fleet_id,omitempty"`
	VIN        string  `json:"vin,omitempty"`
	Plate      string  `json:"plate"`
	Make       string  `json:"make"`
	Model      string  `json:"model"`
	Year       int     `json:"year,omitempty"`
}

func (r vehicleRequest) toDomain(orgID uuid.UUID) (*domain.Vehicle, error) {
	v := &domain.Vehicle{
		OrgID: orgID,
		VIN:   r.VIN,
		Plate: r.Plate,
		Make:  r.Make,
		Model: r.Model,
		Year:  r.Year,
	}
	if r.CustomerID != nil {
		id, err := uuid.Parse(*r.CustomerID)
		if err != nil {
			return nil, errors.New("invalid customer_id")
		}
		v.CustomerID = &id
	}
	if r.FleetID != nil {
		id, err := uuid.Parse(*r.FleetID)
		if err != nil {
			return nil, errors.New("invalid fleet_id")
		}
		v.FleetID = &id
	}
	return v, nil
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vehicle, err := req.toDomain(orgID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Create(r.Context(), vehicle); err != nil {
		if qe, ok := quotaDenied(err); ok {
			writeQuotaDenied(w, qe)
			return
		}
		switch {
		case errors.Is(err, service.ErrVehiclePlateRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrVehicleConflict):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create vehicle")
		}
		return
	}

	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	vehicle, err := h.svc.GetByID(r.Context(), id, orgID)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get vehicle")
		return
	}

	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	vehicles, err := h.svc.List(r.Context(), orgID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list vehicles")
		return
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}

	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vehicle, err := req.toDomain(orgID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	vehicle.ID = id

	if err := h.svc.Update(r.Context(), vehicle); err != nil {
		switch {
		case errors.Is(err, service.ErrVehicleNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrVehiclePlateRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to update vehicle")
		}
		return
	}

	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	if err := h.svc.Delete(r.Context(), id, orgID); err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete vehicle")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
