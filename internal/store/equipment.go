package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adhyoctora11-coder/HMTH/internal/model"
)

// EquipmentInput carries the caller-supplied fields of a new equipment
// record. The identifier and QR reference are always generated.
type EquipmentInput struct {
	Name          string
	Category      string
	Brand         string
	SerialNumber  string
	Vendor        string
	Status        string
	PurchaseDate  time.Time
	WarrantyUntil *time.Time
	Price         decimal.Decimal
	Stock         int
}

// EquipmentUpdate is a partial patch: nil fields are left unchanged.
type EquipmentUpdate struct {
	Name          *string
	Category      *string
	Brand         *string
	SerialNumber  *string
	Vendor        *string
	Status        *string
	PurchaseDate  *time.Time
	WarrantyUntil *time.Time
	Price         *decimal.Decimal
	Stock         *int
}

func newEquipment(in EquipmentInput) model.Equipment {
	id := newEquipmentID()
	status := in.Status
	if status == "" {
		status = model.StatusActive
	}
	stock := in.Stock
	if stock < 0 {
		stock = 0
	}
	return model.Equipment{
		ID:            id,
		Name:          in.Name,
		Category:      in.Category,
		Brand:         in.Brand,
		SerialNumber:  in.SerialNumber,
		Vendor:        in.Vendor,
		Status:        status,
		PurchaseDate:  in.PurchaseDate,
		WarrantyUntil: in.WarrantyUntil,
		Price:         in.Price,
		Stock:         stock,
		QRCode:        id,
	}
}

// AddEquipment registers a new asset and appends an inbound audit entry.
func (s *Store) AddEquipment(ctx context.Context, in EquipmentInput) (*model.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eq := newEquipment(in)
	s.equipments = append(s.equipments, eq)
	s.appendTransaction(eq.ID, eq.Name, model.TransactionIn, "new asset registered")

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return &eq, nil
}

// AddBulkEquipments registers a batch of assets in one persistence write.
// Bulk import is audit-silent: no transactions are emitted.
func (s *Store) AddBulkEquipments(ctx context.Context, inputs []EquipmentInput) ([]model.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]model.Equipment, 0, len(inputs))
	for _, in := range inputs {
		eq := newEquipment(in)
		s.equipments = append(s.equipments, eq)
		created = append(created, eq)
	}

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateEquipment merges the supplied fields into the matching record.
// An unknown id is a silent no-op, and so is any individually invalid field
// (unknown status, negative stock): the field is dropped, the rest of the
// patch applies. The merged record is always persisted, so in-memory and
// durable state never diverge.
func (s *Store) UpdateEquipment(ctx context.Context, id string, upd EquipmentUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	eq := &s.equipments[i]
	if upd.Name != nil {
		eq.Name = *upd.Name
	}
	if upd.Category != nil {
		eq.Category = *upd.Category
	}
	if upd.Brand != nil {
		eq.Brand = *upd.Brand
	}
	if upd.SerialNumber != nil {
		eq.SerialNumber = *upd.SerialNumber
	}
	if upd.Vendor != nil {
		eq.Vendor = *upd.Vendor
	}
	if upd.Status != nil && model.ValidStatus(*upd.Status) {
		eq.Status = *upd.Status
	}
	if upd.PurchaseDate != nil {
		eq.PurchaseDate = *upd.PurchaseDate
	}
	if upd.WarrantyUntil != nil {
		eq.WarrantyUntil = upd.WarrantyUntil
	}
	if upd.Price != nil {
		eq.Price = *upd.Price
	}
	if upd.Stock != nil && *upd.Stock >= 0 {
		eq.Stock = *upd.Stock
	}

	return s.persist(ctx)
}

// DeleteEquipment removes the record and cascades the deletion to every
// transaction and maintenance record referencing it, including any stored
// photo.
func (s *Store) DeleteEquipment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.equipments[:0]
	for _, eq := range s.equipments {
		if eq.ID != id {
			kept = append(kept, eq)
		}
	}
	s.equipments = kept

	keptTrx := s.transactions[:0]
	for _, t := range s.transactions {
		if t.EquipmentID != id {
			keptTrx = append(keptTrx, t)
		}
	}
	s.transactions = keptTrx

	keptMnt := s.maintenances[:0]
	for _, m := range s.maintenances {
		if m.EquipmentID != id {
			keptMnt = append(keptMnt, m)
		}
	}
	s.maintenances = keptMnt

	if err := s.deletePhoto(ctx, id); err != nil {
		return err
	}

	return s.persist(ctx)
}

// Equipments returns a defensive copy of the full collection in insertion
// order.
func (s *Store) Equipments() []model.Equipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Equipment(nil), s.equipments...)
}

// EquipmentByID returns a copy of the matching record, or nil.
func (s *Store) EquipmentByID(id string) *model.Equipment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		eq := s.equipments[i]
		return &eq
	}
	return nil
}

// EquipmentByCode resolves a scanned QR code to its equipment record, or nil.
func (s *Store) EquipmentByCode(code string) *model.Equipment {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, eq := range s.equipments {
		if eq.QRCode == code {
			found := eq
			return &found
		}
	}
	return nil
}

// ReportDamage moves qty units of an active record to broken, splitting the
// record when only part of the stock is affected, and appends one repair
// audit entry referencing the original record. Unknown ids, non-active
// records and non-positive quantities are silent no-ops; quantities above
// the available stock are clamped.
func (s *Store) ReportDamage(ctx context.Context, id string, qty int, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orig, moved := s.splitUnits(id, qty, model.StatusBroken)
	if orig == nil {
		return nil
	}

	if note == "" {
		note = "no note"
	}
	s.appendTransaction(orig.ID, orig.Name, model.TransactionRepair,
		fmt.Sprintf("%d unit(s) broken: %s", moved, note))

	return s.persist(ctx)
}

// splitUnits moves qty units of record id into the target status. When the
// whole stock is affected the record's status flips in place; otherwise the
// stock is decremented and a sibling record with a fresh identifier takes
// the moved units. Returns the original record and the moved quantity, or
// nil when the transition does not apply (unknown id, non-active status, or
// non-positive quantity). Callers must hold the mutex.
func (s *Store) splitUnits(id string, qty int, target string) (*model.Equipment, int) {
	i := s.indexOf(id)
	if i < 0 || s.equipments[i].Status != model.StatusActive || qty <= 0 {
		return nil, 0
	}

	eq := &s.equipments[i]
	moved := qty
	if moved > eq.Stock {
		moved = eq.Stock
	}

	if moved >= eq.Stock {
		// Entire stock affected: flip in place, stock unchanged.
		eq.Status = target
	} else {
		eq.Stock -= moved
		sibling := *eq
		sibling.ID = newEquipmentID()
		sibling.QRCode = sibling.ID
		sibling.Stock = moved
		sibling.Status = target
		s.equipments = append(s.equipments, sibling)
		eq = &s.equipments[i] // the append may have moved the backing array
	}

	orig := *eq
	return &orig, moved
}

func (s *Store) indexOf(id string) int {
	for i, eq := range s.equipments {
		if eq.ID == id {
			return i
		}
	}
	return -1
}
