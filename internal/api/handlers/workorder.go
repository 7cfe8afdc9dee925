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

type WorkOrderHandler struct {
	svc *service.WorkOrderService
}

func NewWorkOrderHandler(svc *service.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{svc: svc}
}

type createWorkOrderRequest struct {
	VehicleID  string `json:"vehicle_id"`
	CustomerID string `json:"customer_id,omitempty"`
	Title      string `json:"title"`
	Notes      string `json:"notes,omitempty"`
}

func (h *WorkOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	var req createWorkOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order := &domain.WorkOrder{
		OrgID: orgID,
		Title: req.Title,
		Notes: req.Notes,
	}
	if req.VehicleID != "" {
		id, err := uuid.Parse(req.VehicleID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid vehicle_id")
			return
		}
		order.VehicleID = id
	}
	if req.CustomerID != "" {
		id, err := uuid.Parse(req.CustomerID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid customer_id")
			return
		}
		order.CustomerID = id
	}

	if err := h.svc.Create(r.Context(), order); err != nil {
		switch {
		case errors.Is(err, service.ErrWorkOrderTitleRequired),
			errors.Is(err, service.ErrWorkOrderVehicleRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrVehicleNotFound),
			errors.Is(err, service.ErrCustomerNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create work order")
		}
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *WorkOrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid work order id")
		return
	}

	order, err := h.svc.GetByID(r.Context(), id, orgID)
	if err != nil {
		if errors.Is(err, service.ErrWorkOrderNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get work order")
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *WorkOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	orders, err := h.svc.List(r.Context(), orgID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list work orders")
		return
	}
	if orders == nil {
		orders = []domain.WorkOrder{}
	}

	writeJSON(w, http.StatusOK, orders)
}

type updateWorkOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *WorkOrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid work order id")
		return
	}

	var req updateWorkOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, orgID, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWorkOrderStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrWorkOrderNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to update work order")
		}
		return
	}

	order, err := h.svc.GetByID(r.Context(), id, orgID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load work order")
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *WorkOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := middleware.OrgFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid work order id")
		return
	}

	if err := h.svc.Delete(r.Context(), id, orgID); err != nil {
		if errors.Is(err, service.ErrWorkOrderNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete work order")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
