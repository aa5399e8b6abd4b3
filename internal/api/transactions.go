package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/mkovac/armory/internal/model"
	"github.com/mkovac/armory/internal/store"
)

// TransactionsHandler handles ledger endpoints.
type TransactionsHandler struct {
	DB *sql.DB
}

// Pending handles GET /api/transactions/pending.
func (h *TransactionsHandler) Pending(w http.ResponseWriter, r *http.Request) {
	txns, err := store.ListPendingTransactions(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list pending transactions")
		return
	}
	if txns == nil {
		txns = []model.Transaction{}
	}
	jsonResponse(w, http.StatusOK, txns)
}

// All handles GET /api/transactions/all.
func (h *TransactionsHandler) All(w http.ResponseWriter, r *http.Request) {
	txns, err := store.ListTransactions(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list transactions")
		return
	}
	if txns == nil {
		txns = []model.Transaction{}
	}
	jsonResponse(w, http.StatusOK, txns)
}

// Issue handles POST /api/transactions/issue.
func (h *TransactionsHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req store.IssueRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Barcode == "" || req.BadgeNumber == "" {
		jsonError(w, http.StatusBadRequest, "barcode and badge number required")
		return
	}
	if req.Quantity < 1 {
		jsonError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	txn, err := store.Issue(r.Context(), h.DB, req)
	if err != nil {
		storeError(w, err, "failed to issue equipment")
		return
	}
	jsonResponse(w, http.StatusOK, txn)
}

// Return handles POST /api/transactions/return/{id}?quantity=N.
func (h *TransactionsHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil || quantity < 1 {
		jsonError(w, http.StatusBadRequest, "quantity must be a positive integer")
		return
	}

	status, err := store.Return(r.Context(), h.DB, id, quantity)
	if err != nil {
		storeError(w, err, "failed to return equipment")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"success": true, "status": status})
}

// ClearAll handles DELETE /api/transactions/clear-all. Stock counts are
// untouched; only the audit trail is discarded.
func (h *TransactionsHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := store.ClearTransactions(r.Context(), h.DB); err != nil {
		storeError(w, err, "failed to clear transactions")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"success": true, "message": "transaction history cleared"})
}
