package snapshot

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adhyoctora11-coder/HMTH/internal/model"
)

func sampleSnapshot() Snapshot {
	return New(
		[]model.Equipment{{
			ID:       "EQ-abc",
			Name:     "Combi Oven",
			Category: "Cooking",
			Status:   model.StatusActive,
			Price:    decimal.NewFromInt(500000),
			Stock:    10,
			QRCode:   "EQ-abc",
		}},
		[]model.Transaction{{
			ID:            "TRX-def",
			EquipmentID:   "EQ-abc",
			EquipmentName: "Combi Oven",
			Type:          model.TransactionIn,
			Date:          time.Now().UTC().Truncate(time.Second),
		}},
		nil,
	)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	snap := sampleSnapshot()

	data, err := Encode(snap)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.Version != Version {
		t.Errorf("version = %q, want %q", got.Version, Version)
	}
	if len(got.Equipments) != 1 || got.Equipments[0].ID != "EQ-abc" {
		t.Errorf("unexpected equipments: %+v", got.Equipments)
	}
	if !got.Equipments[0].Price.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("price = %s, want 500000", got.Equipments[0].Price)
	}
	if len(got.Transactions) != 1 || got.Transactions[0].EquipmentID != "EQ-abc" {
		t.Errorf("unexpected transactions: %+v", got.Transactions)
	}
	// Missing maintenances default to empty, not nil.
	if got.Maintenances == nil {
		t.Error("expected non-nil maintenances")
	}
}

func TestDecodeRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "garbage"},
		{"missing equipments", `{"transactions":[]}`},
		{"equipments not array", `{"equipments":{"id":"EQ-1"}}`},
		{"equipments is string", `{"equipments":"nope"}`},
	}

	for _, tt := range tests {
		if _, err := Decode([]byte(tt.data)); !errors.Is(err, ErrBadSnapshot) {
			t.Errorf("%s: expected ErrBadSnapshot, got %v", tt.name, err)
		}
	}
}

func TestShareLinkRoundTrip(t *testing.T) {
	snap := sampleSnapshot()

	link, err := ShareLink("https://inventory.example.com/app?tab=reports", snap)
	if err != nil {
		t.Fatalf("ShareLink: %v", err)
	}
	if !strings.Contains(link, "sync=") {
		t.Fatalf("expected sync parameter in link, got %q", link)
	}

	got, stripped, err := FromShareLink(link)
	if err != nil {
		t.Fatalf("FromShareLink: %v", err)
	}
	if got == nil || len(got.Equipments) != 1 {
		t.Fatalf("expected decoded snapshot, got %+v", got)
	}

	// The consumed link must no longer carry the snapshot but keeps the
	// rest of the address.
	u, err := url.Parse(stripped)
	if err != nil {
		t.Fatalf("parsing stripped link: %v", err)
	}
	if u.Query().Get("sync") != "" {
		t.Errorf("sync parameter not stripped: %q", stripped)
	}
	if u.Query().Get("tab") != "reports" {
		t.Errorf("unrelated query parameter lost: %q", stripped)
	}
}

func TestFromShareLinkWithoutParameter(t *testing.T) {
	got, stripped, err := FromShareLink("https://inventory.example.com/app")
	if err != nil {
		t.Fatalf("FromShareLink: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil snapshot, got %+v", got)
	}
	if stripped != "https://inventory.example.com/app" {
		t.Errorf("address changed: %q", stripped)
	}
}

func TestFromShareLinkUndecodable(t *testing.T) {
	_, stripped, err := FromShareLink("https://inventory.example.com/app?sync=!!!not-base64!!!")
	if !errors.Is(err, ErrBadSnapshot) {
		t.Fatalf("expected ErrBadSnapshot, got %v", err)
	}
	if strings.Contains(stripped, "sync=") {
		t.Errorf("sync parameter should be stripped even on failure: %q", stripped)
	}
}

func TestExportFilename(t *testing.T) {
	ts := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)
	if got := ExportFilename(ts); got != "HMTH_Inventory_2026-08-28.json" {
		t.Errorf("ExportFilename = %q", got)
	}
}
