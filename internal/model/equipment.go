package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Equipment represents an asset class: a quantity of identical physical
// units sharing one record. Status applies to the whole record, never to a
// subset of its units; partial status changes split the record instead.
type Equipment struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Brand         string          `json:"brand,omitempty"`
	SerialNumber  string          `json:"serial_number,omitempty"`
	Vendor        string          `json:"vendor,omitempty"`
	Status        string          `json:"status"`
	PurchaseDate  time.Time       `json:"purchase_date"`
	WarrantyUntil *time.Time      `json:"warranty_until,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	QRCode        string          `json:"qr_code"`
}

// Equipment statuses.
const (
	StatusActive      = "active"
	StatusUnderRepair = "under_repair"
	StatusBroken      = "broken"
	StatusScrapped    = "scrapped"
	StatusOut         = "out"
)

// ValidStatus reports whether s is a known equipment status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusUnderRepair, StatusBroken, StatusScrapped, StatusOut:
		return true
	}
	return false
}
