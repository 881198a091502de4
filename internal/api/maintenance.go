package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adhyoctora11-coder/HMTH/internal/model"
	"github.com/adhyoctora11-coder/HMTH/internal/store"
)

// MaintenanceHandler handles service-event endpoints.
type MaintenanceHandler struct {
	Store *store.Store
}

// List handles GET /api/maintenances.
func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	maintenances := h.Store.Maintenances()
	if maintenances == nil {
		maintenances = []model.Maintenance{}
	}
	jsonResponse(w, http.StatusOK, maintenances)
}

type maintenanceRequest struct {
	EquipmentID       string          `json:"equipment_id"`
	Date              string          `json:"date"`
	Technician        string          `json:"technician"`
	Cost              decimal.Decimal `json:"cost"`
	Quantity          int             `json:"quantity"`
	ApplyStatusChange bool            `json:"apply_status_change"`
}

// Create handles POST /api/maintenances.
func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req maintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EquipmentID == "" {
		jsonError(w, http.StatusBadRequest, "equipment_id required")
		return
	}
	if req.Quantity <= 0 {
		jsonError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}
	if req.Cost.IsNegative() {
		jsonError(w, http.StatusBadRequest, "cost must be non-negative")
		return
	}

	in := store.MaintenanceInput{
		EquipmentID: req.EquipmentID,
		Technician:  req.Technician,
		Cost:        req.Cost,
		Quantity:    req.Quantity,
	}
	if req.Date != "" {
		t, err := time.Parse(dateOnly, req.Date)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid date")
			return
		}
		in.Date = t
	}

	mnt, err := h.Store.AddMaintenance(r.Context(), in, req.ApplyStatusChange)
	if err != nil {
		if errors.Is(err, store.ErrEquipmentNotFound) {
			jsonError(w, http.StatusNotFound, "equipment not found")
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to log maintenance")
		return
	}

	jsonResponse(w, http.StatusCreated, mnt)
}

// Delete handles DELETE /api/maintenances/{id}. Removing a record does not
// reverse any status change its creation applied.
func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteMaintenance(r.Context(), r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete maintenance record")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "maintenance record deleted"})
}
