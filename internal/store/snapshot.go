package store

import (
	"context"

	"github.com/adhyoctora11-coder/HMTH/internal/model"
	"github.com/adhyoctora11-coder/HMTH/internal/snapshot"
)

// ExportSnapshot captures the full current state as a portable blob.
func (s *Store) ExportSnapshot() snapshot.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshot.New(
		append([]model.Equipment(nil), s.equipments...),
		append([]model.Transaction(nil), s.transactions...),
		append([]model.Maintenance(nil), s.maintenances...),
	)
}

// ImportSnapshot wholesale-replaces all three collections with the
// snapshot's contents and persists. This is an overwrite, never a merge:
// last loaded wins.
func (s *Store) ImportSnapshot(ctx context.Context, snap *snapshot.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.equipments = append([]model.Equipment(nil), snap.Equipments...)
	s.transactions = append([]model.Transaction(nil), snap.Transactions...)
	s.maintenances = append([]model.Maintenance(nil), snap.Maintenances...)

	return s.persist(ctx)
}
