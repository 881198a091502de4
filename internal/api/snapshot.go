package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/adhyoctora11-coder/HMTH/internal/snapshot"
	"github.com/adhyoctora11-coder/HMTH/internal/store"
)

// maxSnapshotBytes caps uploaded snapshot payloads.
const maxSnapshotBytes = 20 << 20

// SnapshotHandler handles full-state export, import, share links, and the
// sync trigger.
type SnapshotHandler struct {
	Store *store.Store
}

// Export handles GET /api/snapshot: downloads the full inventory state as a
// dated JSON attachment.
func (h *SnapshotHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap := h.Store.ExportSnapshot()

	data, err := snapshot.Encode(snap)
	if err != nil {
		slog.Error("failed to encode snapshot", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to export snapshot")
		return
	}

	filename := snapshot.ExportFilename(time.Now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// Import handles POST /api/snapshot: replaces the entire inventory state with
// the uploaded snapshot.
func (h *SnapshotHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	snap, err := snapshot.Decode(data)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid snapshot payload")
		return
	}

	if err := h.Store.ImportSnapshot(r.Context(), snap); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to import snapshot")
		return
	}

	slog.Info("snapshot imported",
		"equipments", len(snap.Equipments),
		"transactions", len(snap.Transactions),
		"maintenances", len(snap.Maintenances))
	jsonResponse(w, http.StatusOK, map[string]string{"message": "snapshot imported"})
}

type shareLinkRequest struct {
	BaseURL string `json:"base_url"`
}

type shareLinkResponse struct {
	URL string `json:"url"`
}

// ShareLink handles POST /api/snapshot/link: embeds the current state into a
// shareable URL built on the caller-provided base.
func (h *SnapshotHandler) ShareLink(w http.ResponseWriter, r *http.Request) {
	var req shareLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BaseURL == "" {
		jsonError(w, http.StatusBadRequest, "base_url required")
		return
	}

	link, err := snapshot.ShareLink(req.BaseURL, h.Store.ExportSnapshot())
	if err != nil {
		jsonError(w, http.StatusBadRequest, "could not build share link")
		return
	}

	jsonResponse(w, http.StatusOK, shareLinkResponse{URL: link})
}

type consumeLinkRequest struct {
	URL string `json:"url"`
}

type consumeLinkResponse struct {
	Imported bool   `json:"imported"`
	URL      string `json:"url"`
}

// ConsumeLink handles POST /api/snapshot/link/consume: extracts a snapshot
// embedded in a share link, imports it, and returns the URL with the payload
// stripped. A URL without an embedded payload is reported back unchanged.
func (h *SnapshotHandler) ConsumeLink(w http.ResponseWriter, r *http.Request) {
	var req consumeLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		jsonError(w, http.StatusBadRequest, "url required")
		return
	}

	snap, stripped, err := snapshot.FromShareLink(req.URL)
	if err != nil {
		if errors.Is(err, snapshot.ErrBadSnapshot) {
			jsonError(w, http.StatusBadRequest, "invalid snapshot payload")
			return
		}
		jsonError(w, http.StatusBadRequest, "could not parse url")
		return
	}
	if snap == nil {
		jsonResponse(w, http.StatusOK, consumeLinkResponse{Imported: false, URL: stripped})
		return
	}

	if err := h.Store.ImportSnapshot(r.Context(), snap); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to import snapshot")
		return
	}

	jsonResponse(w, http.StatusOK, consumeLinkResponse{Imported: true, URL: stripped})
}

// Sync handles POST /api/sync: kicks off a background sync. Returns 202 when
// accepted and 200 when a sync is already in flight.
func (h *SnapshotHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if h.Store.Sync() {
		jsonResponse(w, http.StatusAccepted, map[string]string{"message": "sync started"})
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "sync already in progress"})
}

// LastSync handles GET /api/sync: reports the last successful sync stamp.
func (h *SnapshotHandler) LastSync(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"last_sync": h.Store.LastSync()})
}
