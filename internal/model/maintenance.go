package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Maintenance is a service-event record. Deleting one never reverses the
// stock/status split it may have triggered at creation time.
type Maintenance struct {
	ID            string          `json:"id"`
	EquipmentID   string          `json:"equipment_id"`
	EquipmentName string          `json:"equipment_name"`
	Date          time.Time       `json:"date"`
	Technician    string          `json:"technician"`
	Cost          decimal.Decimal `json:"cost"`
	Quantity      int             `json:"quantity"`
}
