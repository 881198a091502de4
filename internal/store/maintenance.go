package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adhyoctora11-coder/HMTH/internal/model"
)

// MaintenanceInput carries the caller-supplied fields of a service-event
// record.
type MaintenanceInput struct {
	EquipmentID string
	Date        time.Time
	Technician  string
	Cost        decimal.Decimal
	Quantity    int
}

// AddMaintenance logs a service event against an existing equipment record.
// When applyStatusChange is set, the serviced units are additionally moved
// from active to under-repair via the split transition. Exactly one repair
// audit entry is appended per maintenance event; its note carries the
// service facts and, when a split occurred, the moved quantity.
func (s *Store) AddMaintenance(ctx context.Context, in MaintenanceInput, applyStatusChange bool) (*model.Maintenance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(in.EquipmentID)
	if i < 0 {
		return nil, ErrEquipmentNotFound
	}
	eq := s.equipments[i]

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	m := model.Maintenance{
		ID:            newMaintenanceID(),
		EquipmentID:   eq.ID,
		EquipmentName: eq.Name,
		Date:          date,
		Technician:    in.Technician,
		Cost:          in.Cost,
		Quantity:      in.Quantity,
	}
	s.maintenances = append(s.maintenances, m)

	note := fmt.Sprintf("service log: %d unit(s) serviced by %s", in.Quantity, in.Technician)
	if applyStatusChange {
		if _, moved := s.splitUnits(eq.ID, in.Quantity, model.StatusUnderRepair); moved > 0 {
			note = fmt.Sprintf("%s; %d unit(s) moved to under repair", note, moved)
		}
	}
	s.appendTransaction(eq.ID, eq.Name, model.TransactionRepair, note)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMaintenance removes the service record only. Any stock/status split
// it triggered stays in effect: the split history is not tracked, so there
// is nothing to reconstruct a reversal from.
func (s *Store) DeleteMaintenance(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.maintenances[:0]
	for _, m := range s.maintenances {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.maintenances = kept

	return s.persist(ctx)
}

// Maintenances returns a defensive copy of the service log, most recent
// first.
func (s *Store) Maintenances() []model.Maintenance {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]model.Maintenance(nil), s.maintenances...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
