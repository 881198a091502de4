package store

import "github.com/google/uuid"

// Identifiers carry a human-readable prefix as a display convention only;
// uniqueness comes from the UUID behind it.

func newEquipmentID() string   { return "EQ-" + uuid.NewString() }
func newTransactionID() string { return "TRX-" + uuid.NewString() }
func newMaintenanceID() string { return "MNT-" + uuid.NewString() }
