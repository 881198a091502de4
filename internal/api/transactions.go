package api

import (
	"net/http"

	"github.com/adhyoctora11-coder/HMTH/internal/model"
	"github.com/adhyoctora11-coder/HMTH/internal/store"
)

// TransactionHandler serves the read-only audit trail.
type TransactionHandler struct {
	Store *store.Store
}

// List handles GET /api/transactions.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	transactions := h.Store.Transactions()
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	jsonResponse(w, http.StatusOK, transactions)
}
