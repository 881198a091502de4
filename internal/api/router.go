package api

import (
	"net/http"

	"github.com/adhyoctora11-coder/HMTH/internal/model"
	"github.com/adhyoctora11-coder/HMTH/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(s *store.Store, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Store: s, JWTSecret: jwtSecret}
	equipmentHandler := &EquipmentHandler{Store: s}
	maintenanceHandler := &MaintenanceHandler{Store: s}
	transactionHandler := &TransactionHandler{Store: s}
	reportHandler := &ReportHandler{Store: s}
	snapshotHandler := &SnapshotHandler{Store: s}

	authMW := AuthMiddleware(jwtSecret)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))

	// Equipment: read (all roles), write (admin only).
	mux.Handle("GET /api/equipments", authMW(http.HandlerFunc(equipmentHandler.List)))
	mux.Handle("POST /api/equipments", authMW(requireAdmin(http.HandlerFunc(equipmentHandler.Create))))
	mux.Handle("POST /api/equipments/bulk", authMW(requireAdmin(http.HandlerFunc(equipmentHandler.BulkCreate))))
	mux.Handle("GET /api/equipments/{id}", authMW(http.HandlerFunc(equipmentHandler.Get)))
	mux.Handle("PUT /api/equipments/{id}", authMW(requireAdmin(http.HandlerFunc(equipmentHandler.Update))))
	mux.Handle("DELETE /api/equipments/{id}", authMW(requireAdmin(http.HandlerFunc(equipmentHandler.Delete))))
	mux.Handle("POST /api/equipments/{id}/damage", authMW(http.HandlerFunc(equipmentHandler.ReportDamage)))
	mux.Handle("PUT /api/equipments/{id}/photo", authMW(requireAdmin(http.HandlerFunc(equipmentHandler.UploadPhoto))))
	mux.Handle("GET /api/equipments/{id}/photo", authMW(http.HandlerFunc(equipmentHandler.GetPhoto)))

	// QR code lookup (all roles).
	mux.Handle("GET /api/scan/{code}", authMW(http.HandlerFunc(equipmentHandler.Scan)))

	// Maintenance: log (all roles), delete (admin only).
	mux.Handle("GET /api/maintenances", authMW(http.HandlerFunc(maintenanceHandler.List)))
	mux.Handle("POST /api/maintenances", authMW(http.HandlerFunc(maintenanceHandler.Create)))
	mux.Handle("DELETE /api/maintenances/{id}", authMW(requireAdmin(http.HandlerFunc(maintenanceHandler.Delete))))

	// Audit trail (read only, all roles).
	mux.Handle("GET /api/transactions", authMW(http.HandlerFunc(transactionHandler.List)))

	// Reports (all roles).
	mux.Handle("GET /api/reports/overview", authMW(http.HandlerFunc(reportHandler.Overview)))
	mux.Handle("GET /api/reports/categories", authMW(http.HandlerFunc(reportHandler.Categories)))
	mux.Handle("GET /api/reports/valuation", authMW(http.HandlerFunc(reportHandler.Valuation)))
	mux.Handle("GET /api/reports/vendors", authMW(http.HandlerFunc(reportHandler.Vendors)))
	mux.Handle("GET /api/reports/spend", authMW(http.HandlerFunc(reportHandler.Spend)))

	// Snapshot: export and share-link generation (all roles), state
	// replacement (admin only).
	mux.Handle("GET /api/snapshot", authMW(http.HandlerFunc(snapshotHandler.Export)))
	mux.Handle("POST /api/snapshot", authMW(requireAdmin(http.HandlerFunc(snapshotHandler.Import))))
	mux.Handle("POST /api/snapshot/link", authMW(http.HandlerFunc(snapshotHandler.ShareLink)))
	mux.Handle("POST /api/snapshot/link/consume", authMW(requireAdmin(http.HandlerFunc(snapshotHandler.ConsumeLink))))

	// Sync trigger and stamp (all roles).
	mux.Handle("POST /api/sync", authMW(http.HandlerFunc(snapshotHandler.Sync)))
	mux.Handle("GET /api/sync", authMW(http.HandlerFunc(snapshotHandler.LastSync)))

	return mux
}
