package store

import (
	"sort"
	"time"

	"github.com/adhyoctora11-coder/HMTH/internal/model"
)

// appendTransaction records one audit entry. Transactions are append-only;
// nothing ever mutates them after this point. Callers must hold the mutex.
func (s *Store) appendTransaction(equipmentID, equipmentName, typ, note string) model.Transaction {
	t := model.Transaction{
		ID:            newTransactionID(),
		EquipmentID:   equipmentID,
		EquipmentName: equipmentName,
		Type:          typ,
		Date:          time.Now(),
		Note:          note,
	}
	s.transactions = append(s.transactions, t)
	return t
}

// Transactions returns a defensive copy of the audit log, most recent first.
func (s *Store) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]model.Transaction(nil), s.transactions...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
