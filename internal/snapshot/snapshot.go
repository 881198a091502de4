// Package snapshot encodes the full application state as a portable blob,
// either as a plain JSON export or embedded in a shareable link for manual
// cross-device transfer. Importing a snapshot is always a wholesale
// overwrite, never a merge.
package snapshot

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/adhyoctora11-coder/HMTH/internal/model"
)

// Version is the snapshot format version tag.
const Version = "1"

// linkParam is the query parameter carrying an encoded snapshot.
const linkParam = "sync"

// ErrBadSnapshot is returned when a payload is not a recognizable snapshot.
var ErrBadSnapshot = errors.New("invalid snapshot payload")

// Snapshot is the full serialized state of all three collections at a point
// in time.
type Snapshot struct {
	Equipments   []model.Equipment   `json:"equipments"`
	Transactions []model.Transaction `json:"transactions"`
	Maintenances []model.Maintenance `json:"maintenances"`
	Version      string              `json:"version"`
	Timestamp    int64               `json:"timestamp"` // Unix milliseconds
}

// New builds a snapshot of the given collections stamped with the current
// format version and time.
func New(equipments []model.Equipment, transactions []model.Transaction, maintenances []model.Maintenance) Snapshot {
	return Snapshot{
		Equipments:   equipments,
		Transactions: transactions,
		Maintenances: maintenances,
		Version:      Version,
		Timestamp:    time.Now().UnixMilli(),
	}
}

// Encode serializes a snapshot to JSON.
func Encode(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot blob. The payload must contain an array-typed
// equipment collection; missing transaction or maintenance collections
// default to empty. On any parse failure or shape mismatch the error is
// ErrBadSnapshot and the caller must leave its state untouched.
func Decode(data []byte) (*Snapshot, error) {
	// Probe the shape first so that a payload with equipments of the wrong
	// type is rejected rather than silently zeroed.
	var probe struct {
		Equipments json.RawMessage `json:"equipments"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, ErrBadSnapshot
	}
	if !isJSONArray(probe.Equipments) {
		return nil, ErrBadSnapshot
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, ErrBadSnapshot
	}
	if s.Transactions == nil {
		s.Transactions = []model.Transaction{}
	}
	if s.Maintenances == nil {
		s.Maintenances = []model.Maintenance{}
	}
	return &s, nil
}

// ShareLink embeds an encoded snapshot as a query parameter appended to the
// given base address, preserving the base's existing path and query.
func ShareLink(base string, s Snapshot) (string, error) {
	data, err := Encode(s)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base address: %w", err)
	}

	q := u.Query()
	q.Set(linkParam, base64.URLEncoding.EncodeToString(data))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FromShareLink extracts and decodes the snapshot embedded in a shareable
// link. It returns the snapshot together with the link with the sync
// parameter stripped, so a consumed link is not re-consumed or re-shared
// accidentally. When the link carries no snapshot, the snapshot is nil and
// the address is returned unchanged; callers fall back to durable storage.
func FromShareLink(raw string) (*Snapshot, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, raw, fmt.Errorf("parsing address: %w", err)
	}

	q := u.Query()
	encoded := q.Get(linkParam)
	if encoded == "" {
		return nil, raw, nil
	}

	// Scrub the parameter regardless of whether decoding succeeds.
	q.Del(linkParam)
	u.RawQuery = q.Encode()
	stripped := u.String()

	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, stripped, ErrBadSnapshot
	}

	s, err := Decode(data)
	if err != nil {
		return nil, stripped, err
	}
	return s, stripped, nil
}

// ExportFilename names a snapshot export file: a fixed prefix plus the date.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("HMTH_Inventory_%s.json", t.Format("2006-01-02"))
}

func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
