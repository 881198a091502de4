package api

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adhyoctora11-coder/HMTH/internal/imaging"
	"github.com/adhyoctora11-coder/HMTH/internal/model"
	"github.com/adhyoctora11-coder/HMTH/internal/store"
)

// EquipmentHandler handles equipment CRUD and damage-report endpoints.
type EquipmentHandler struct {
	Store *store.Store
}

// dateOnly is the wire format for purchase and warranty dates.
const dateOnly = "2006-01-02"

type equipmentRequest struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Brand         string          `json:"brand"`
	SerialNumber  string          `json:"serial_number"`
	Vendor        string          `json:"vendor"`
	Status        string          `json:"status"`
	PurchaseDate  string          `json:"purchase_date"`
	WarrantyUntil string          `json:"warranty_until"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
}

func (req *equipmentRequest) toInput() (store.EquipmentInput, string) {
	if req.Name == "" {
		return store.EquipmentInput{}, "name required"
	}
	if req.Stock < 0 {
		return store.EquipmentInput{}, "stock must be non-negative"
	}
	if req.Price.IsNegative() {
		return store.EquipmentInput{}, "price must be non-negative"
	}
	if req.Status != "" && !model.ValidStatus(req.Status) {
		return store.EquipmentInput{}, "invalid status"
	}

	in := store.EquipmentInput{
		Name:         req.Name,
		Category:     req.Category,
		Brand:        req.Brand,
		SerialNumber: req.SerialNumber,
		Vendor:       req.Vendor,
		Status:       req.Status,
		Price:        req.Price,
		Stock:        req.Stock,
	}
	if req.PurchaseDate != "" {
		t, err := time.Parse(dateOnly, req.PurchaseDate)
		if err != nil {
			return store.EquipmentInput{}, "invalid purchase_date"
		}
		in.PurchaseDate = t
	}
	if req.WarrantyUntil != "" {
		t, err := time.Parse(dateOnly, req.WarrantyUntil)
		if err != nil {
			return store.EquipmentInput{}, "invalid warranty_until"
		}
		in.WarrantyUntil = &t
	}
	return in, ""
}

// List handles GET /api/equipments.
func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	equipments := h.Store.Equipments()
	if equipments == nil {
		equipments = []model.Equipment{}
	}
	jsonResponse(w, http.StatusOK, equipments)
}

// Create handles POST /api/equipments.
func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req equipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in, msg := req.toInput()
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	eq, err := h.Store.AddEquipment(r.Context(), in)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to register equipment")
		return
	}

	jsonResponse(w, http.StatusCreated, eq)
}

// BulkCreate handles POST /api/equipments/bulk.
func (h *EquipmentHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var reqs []equipmentRequest
	if err := decodeJSON(r, &reqs); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(reqs) == 0 {
		jsonError(w, http.StatusBadRequest, "at least one row required")
		return
	}

	inputs := make([]store.EquipmentInput, 0, len(reqs))
	for i := range reqs {
		in, msg := reqs[i].toInput()
		if msg != "" {
			jsonError(w, http.StatusBadRequest, msg)
			return
		}
		inputs = append(inputs, in)
	}

	created, err := h.Store.AddBulkEquipments(r.Context(), inputs)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to import equipment")
		return
	}

	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/equipments/{id}.
func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	eq := h.Store.EquipmentByID(r.PathValue("id"))
	if eq == nil {
		jsonError(w, http.StatusNotFound, "equipment not found")
		return
	}
	jsonResponse(w, http.StatusOK, eq)
}

type updateEquipmentRequest struct {
	Name          *string          `json:"name"`
	Category      *string          `json:"category"`
	Brand         *string          `json:"brand"`
	SerialNumber  *string          `json:"serial_number"`
	Vendor        *string          `json:"vendor"`
	Status        *string          `json:"status"`
	PurchaseDate  *string          `json:"purchase_date"`
	WarrantyUntil *string          `json:"warranty_until"`
	Price         *decimal.Decimal `json:"price"`
	Stock         *int             `json:"stock"`
}

// Update handles PUT /api/equipments/{id}. Absent fields are left unchanged.
func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateEquipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := store.EquipmentUpdate{
		Name:         req.Name,
		Category:     req.Category,
		Brand:        req.Brand,
		SerialNumber: req.SerialNumber,
		Vendor:       req.Vendor,
		Status:       req.Status,
		Price:        req.Price,
		Stock:        req.Stock,
	}
	if req.Status != nil && !model.ValidStatus(*req.Status) {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if req.PurchaseDate != nil {
		t, err := time.Parse(dateOnly, *req.PurchaseDate)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid purchase_date")
			return
		}
		upd.PurchaseDate = &t
	}
	if req.WarrantyUntil != nil {
		t, err := time.Parse(dateOnly, *req.WarrantyUntil)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid warranty_until")
			return
		}
		upd.WarrantyUntil = &t
	}

	if err := h.Store.UpdateEquipment(r.Context(), id, upd); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update equipment")
		return
	}

	eq := h.Store.EquipmentByID(id)
	if eq == nil {
		jsonError(w, http.StatusNotFound, "equipment not found")
		return
	}
	jsonResponse(w, http.StatusOK, eq)
}

// Delete handles DELETE /api/equipments/{id}.
func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteEquipment(r.Context(), r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete equipment")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "equipment deleted"})
}

type damageRequest struct {
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

// ReportDamage handles POST /api/equipments/{id}/damage.
func (h *EquipmentHandler) ReportDamage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req damageRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity <= 0 {
		jsonError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	if err := h.Store.ReportDamage(r.Context(), id, req.Quantity, req.Note); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to report damage")
		return
	}

	// The store treats missing or non-active records as a no-op; reply with
	// the current record so the client can re-render either way.
	eq := h.Store.EquipmentByID(id)
	if eq == nil {
		jsonError(w, http.StatusNotFound, "equipment not found")
		return
	}
	jsonResponse(w, http.StatusOK, eq)
}

// Scan handles GET /api/scan/{code}: resolves a scanned QR code to its
// equipment record.
func (h *EquipmentHandler) Scan(w http.ResponseWriter, r *http.Request) {
	eq := h.Store.EquipmentByCode(r.PathValue("code"))
	if eq == nil {
		jsonError(w, http.StatusNotFound, "no equipment for code")
		return
	}
	jsonResponse(w, http.StatusOK, eq)
}

// UploadPhoto handles PUT /api/equipments/{id}/photo.
func (h *EquipmentHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Normalize(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Store.SetPhoto(r.Context(), id, photo.Data, photo.MIME); err != nil {
		if err == store.ErrEquipmentNotFound {
			jsonError(w, http.StatusNotFound, "equipment not found")
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo uploaded"})
}

// GetPhoto handles GET /api/equipments/{id}/photo.
func (h *EquipmentHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	data, mime, err := h.Store.Photo(r.Context(), r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
