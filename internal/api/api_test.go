package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adhyoctora11-coder/HMTH/internal/kv"
	"github.com/adhyoctora11-coder/HMTH/internal/model"
	"github.com/adhyoctora11-coder/HMTH/internal/snapshot"
	"github.com/adhyoctora11-coder/HMTH/internal/store"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	database := kv.NewTestDB(t)
	s, err := store.Open(context.Background(), database)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}

	router := NewRouter(s, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server, login(t, server, "ayu", "Kitchen2026")
}

func login(t *testing.T, server *httptest.Server, user, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"login": user, "password": password})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	json.NewDecoder(resp.Body).Decode(&loginResp)
	if loginResp.Token == "" {
		t.Fatal("empty token from login")
	}
	return loginResp.Token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func TestLoginEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	// Wrong password.
	body, _ := json.Marshal(map[string]string{"login": "ayu", "password": "wrong"})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Login by email works too.
	body, _ = json.Marshal(map[string]string{"login": "ayu@hmth.local", "password": "Kitchen2026"})
	resp, _ = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for email login, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestEquipmentAPIFlow(t *testing.T) {
	server, token := setupTestServer(t)

	// Create equipment.
	req, _ := authRequest("POST", server.URL+"/api/equipments", token, map[string]any{
		"name":          "Stand Mixer",
		"category":      "Pastry",
		"vendor":        "KitchenPro",
		"price":         1500,
		"stock":         4,
		"purchase_date": "2026-01-15",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created model.Equipment
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	if created.ID == "" || created.QRCode != created.ID {
		t.Errorf("expected generated id mirrored into qr code, got id %q code %q", created.ID, created.QRCode)
	}
	if created.Status != model.StatusActive {
		t.Errorf("expected default status active, got %q", created.Status)
	}

	// List.
	req, _ = authRequest("GET", server.URL+"/api/equipments", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	var equipments []model.Equipment
	json.NewDecoder(resp.Body).Decode(&equipments)
	resp.Body.Close()
	if len(equipments) != 1 {
		t.Fatalf("expected 1 equipment, got %d", len(equipments))
	}

	// Partial update.
	req, _ = authRequest("PUT", server.URL+"/api/equipments/"+created.ID, token, map[string]any{
		"brand": "Bosch",
	})
	resp, _ = http.DefaultClient.Do(req)
	var updated model.Equipment
	json.NewDecoder(resp.Body).Decode(&updated)
	resp.Body.Close()
	if updated.Brand != "Bosch" || updated.Name != "Stand Mixer" {
		t.Errorf("partial update: got brand %q name %q", updated.Brand, updated.Name)
	}

	// QR lookup.
	req, _ = authRequest("GET", server.URL+"/api/scan/"+created.QRCode, token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 from scan lookup, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Registration left an inbound audit entry.
	req, _ = authRequest("GET", server.URL+"/api/transactions", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	var transactions []model.Transaction
	json.NewDecoder(resp.Body).Decode(&transactions)
	resp.Body.Close()
	if len(transactions) != 1 || transactions[0].Type != model.TransactionIn {
		t.Fatalf("expected one inbound transaction, got %+v", transactions)
	}

	// Delete cascades.
	req, _ = authRequest("DELETE", server.URL+"/api/equipments/"+created.ID, token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("GET", server.URL+"/api/equipments/"+created.ID, token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestDamageReportEndpoint(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/equipments", token, map[string]any{
		"name":     "Blender",
		"category": "Prep",
		"stock":    6,
	})
	resp, _ := http.DefaultClient.Do(req)
	var created model.Equipment
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	// Report two units broken.
	req, _ = authRequest("POST", server.URL+"/api/equipments/"+created.ID+"/damage", token, map[string]any{
		"quantity": 2,
		"note":     "cracked jar",
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var after model.Equipment
	json.NewDecoder(resp.Body).Decode(&after)
	resp.Body.Close()

	if after.Stock != 4 || after.Status != model.StatusActive {
		t.Errorf("expected original at 4 active units, got %d %q", after.Stock, after.Status)
	}

	req, _ = authRequest("GET", server.URL+"/api/equipments", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	var equipments []model.Equipment
	json.NewDecoder(resp.Body).Decode(&equipments)
	resp.Body.Close()
	if len(equipments) != 2 {
		t.Fatalf("expected split into 2 records, got %d", len(equipments))
	}
}

func TestMaintenanceAPIFlow(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/equipments", token, map[string]any{
		"name":     "Fryer",
		"category": "Hot Line",
		"stock":    3,
	})
	resp, _ := http.DefaultClient.Do(req)
	var created model.Equipment
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	// Log a service event with the status transition applied.
	req, _ = authRequest("POST", server.URL+"/api/maintenances", token, map[string]any{
		"equipment_id":        created.ID,
		"technician":          "Budi",
		"cost":                250,
		"quantity":            1,
		"apply_status_change": true,
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("GET", server.URL+"/api/maintenances", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	var maintenances []model.Maintenance
	json.NewDecoder(resp.Body).Decode(&maintenances)
	resp.Body.Close()
	if len(maintenances) != 1 || maintenances[0].Technician != "Budi" {
		t.Fatalf("expected one maintenance record by Budi, got %+v", maintenances)
	}

	// Unknown equipment is rejected.
	req, _ = authRequest("POST", server.URL+"/api/maintenances", token, map[string]any{
		"equipment_id": "EQ-missing",
		"quantity":     1,
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown equipment, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestReportsEndpoints(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/equipments", token, map[string]any{
		"name":     "Steamer",
		"category": "Hot Line",
		"vendor":   "Acme",
		"price":    400,
		"stock":    5,
	})
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()

	var overview struct {
		TotalUnits int `json:"total_units"`
	}
	req, _ = authRequest("GET", server.URL+"/api/reports/overview", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	json.NewDecoder(resp.Body).Decode(&overview)
	resp.Body.Close()
	if overview.TotalUnits != 5 {
		t.Errorf("expected 5 total units, got %d", overview.TotalUnits)
	}

	for _, path := range []string{"categories", "valuation", "vendors", "spend"} {
		req, _ = authRequest("GET", server.URL+"/api/reports/"+path, token, nil)
		resp, _ = http.DefaultClient.Do(req)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200 from reports/%s, got %d", path, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/equipments", token, map[string]any{
		"name":     "Combi Oven",
		"category": "Hot Line",
		"stock":    2,
	})
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()

	// Export.
	req, _ = authRequest("GET", server.URL+"/api/snapshot", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from export, got %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd == "" {
		t.Error("expected Content-Disposition on export")
	}
	var snap snapshot.Snapshot
	json.NewDecoder(resp.Body).Decode(&snap)
	resp.Body.Close()
	if len(snap.Equipments) != 1 {
		t.Fatalf("expected 1 equipment in snapshot, got %d", len(snap.Equipments))
	}

	// Import into a second, empty server.
	other, otherToken := setupTestServer(t)
	req, _ = authRequest("POST", other.URL+"/api/snapshot", otherToken, snap)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from import, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("GET", other.URL+"/api/equipments", otherToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	var equipments []model.Equipment
	json.NewDecoder(resp.Body).Decode(&equipments)
	resp.Body.Close()
	if len(equipments) != 1 || equipments[0].Name != "Combi Oven" {
		t.Errorf("expected imported Combi Oven, got %+v", equipments)
	}

	// Garbage payload is rejected.
	req, _ = authRequest("POST", other.URL+"/api/snapshot", otherToken, map[string]string{"bogus": "x"})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad snapshot, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestShareLinkEndpoints(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/equipments", token, map[string]any{
		"name":     "Salamander",
		"category": "Hot Line",
		"stock":    1,
	})
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()

	// Generate a link.
	req, _ = authRequest("POST", server.URL+"/api/snapshot/link", token, map[string]string{
		"base_url": "https://inventory.example.com/app",
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from link generation, got %d", resp.StatusCode)
	}
	var linkResp struct {
		URL string `json:"url"`
	}
	json.NewDecoder(resp.Body).Decode(&linkResp)
	resp.Body.Close()

	// Consume it on a fresh server.
	other, otherToken := setupTestServer(t)
	req, _ = authRequest("POST", other.URL+"/api/snapshot/link/consume", otherToken, map[string]string{
		"url": linkResp.URL,
	})
	resp, _ = http.DefaultClient.Do(req)
	var consumeResp struct {
		Imported bool   `json:"imported"`
		URL      string `json:"url"`
	}
	json.NewDecoder(resp.Body).Decode(&consumeResp)
	resp.Body.Close()
	if !consumeResp.Imported {
		t.Fatal("expected link payload to import")
	}
	if consumeResp.URL != "https://inventory.example.com/app" {
		t.Errorf("expected stripped url, got %q", consumeResp.URL)
	}

	req, _ = authRequest("GET", other.URL+"/api/equipments", otherToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	var equipments []model.Equipment
	json.NewDecoder(resp.Body).Decode(&equipments)
	resp.Body.Close()
	if len(equipments) != 1 || equipments[0].Name != "Salamander" {
		t.Errorf("expected imported Salamander, got %+v", equipments)
	}
}

func TestUnauthenticatedAccess(t *testing.T) {
	database := kv.NewTestDB(t)
	s, err := store.Open(context.Background(), database)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	server := httptest.NewServer(NewRouter(s, testJWTSecret))
	t.Cleanup(server.Close)

	resp, _ := http.Get(server.URL + "/api/equipments")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unauthenticated request, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRoleBasedAccess(t *testing.T) {
	server, _ := setupTestServer(t)
	staffToken := login(t, server, "hadhi", "Kitchen2026")

	// Staff cannot register equipment.
	req, _ := authRequest("POST", server.URL+"/api/equipments", staffToken, map[string]any{
		"name":     "Test",
		"category": "Prep",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for staff creating equipment, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Staff can read.
	req, _ = authRequest("GET", server.URL+"/api/equipments", staffToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for staff listing equipment, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Staff can log maintenance.
	req, _ = authRequest("POST", server.URL+"/api/maintenances", staffToken, map[string]any{
		"equipment_id": "EQ-missing",
		"quantity":     1,
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode == http.StatusForbidden {
		t.Error("staff should be allowed to log maintenance")
	}
	resp.Body.Close()
}
