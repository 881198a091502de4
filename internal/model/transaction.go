package model

import "time"

// Transaction is an immutable audit-log entry for one inventory event.
// The equipment name is a denormalized snapshot taken at creation time and
// is not re-synced if the equipment is renamed later.
type Transaction struct {
	ID            string    `json:"id"`
	EquipmentID   string    `json:"equipment_id"`
	EquipmentName string    `json:"equipment_name"`
	Type          string    `json:"type"`
	Date          time.Time `json:"date"`
	Note          string    `json:"note,omitempty"`
}

// Transaction types.
const (
	TransactionIn     = "in"
	TransactionOut    = "out"
	TransactionRepair = "repair"
)
