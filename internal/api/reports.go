package api

import (
	"net/http"

	"github.com/adhyoctora11-coder/HMTH/internal/report"
	"github.com/adhyoctora11-coder/HMTH/internal/store"
)

// ReportHandler serves aggregations derived from the current inventory.
type ReportHandler struct {
	Store *store.Store
}

// Overview handles GET /api/reports/overview.
func (h *ReportHandler) Overview(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, report.Summarize(h.Store.Equipments()))
}

// Categories handles GET /api/reports/categories.
func (h *ReportHandler) Categories(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, report.CategoryDistribution(h.Store.Equipments()))
}

// Valuation handles GET /api/reports/valuation.
func (h *ReportHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, report.CategoryValuation(h.Store.Equipments()))
}

// Vendors handles GET /api/reports/vendors.
func (h *ReportHandler) Vendors(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, report.VendorReliability(h.Store.Equipments()))
}

// Spend handles GET /api/reports/spend.
func (h *ReportHandler) Spend(w http.ResponseWriter, r *http.Request) {
	total := report.MaintenanceSpend(h.Store.Maintenances())
	jsonResponse(w, http.StatusOK, map[string]any{"total_cost": total})
}
