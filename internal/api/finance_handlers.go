package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pennywiseapp/pennywise/internal/middleware"
	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/storage"
)

// CreateExpense records a new expense for the caller.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var expense models.Expense
	if err := decodeJSON(r, &expense); err != nil {
		respondError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	created, err := h.finance.AddExpense(r.Context(), middleware.GetUserID(r.Context()), &expense)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListExpenses returns the caller's expenses. Supports ?category=,
// ?group_id=, ?from= and ?to= (Unix seconds) query filters.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.ExpenseFilter{
		Category: q.Get("category"),
		GroupID:  q.Get("group_id"),
		From:     parseUnix(q.Get("from")),
		To:       parseUnix(q.Get("to")),
	}

	expenses, err := h.finance.ListExpenses(r.Context(), middleware.GetUserID(r.Context()), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if expenses == nil {
		expenses = []*models.Expense{}
	}
	respondJSON(w, http.StatusOK, expenses)
}

// UpdateExpense rewrites one of the caller's expenses.
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var expense models.Expense
	if err := decodeJSON(r, &expense); err != nil {
		respondError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	expense.ID = mux.Vars(r)["id"]

	updated, err := h.finance.UpdateExpense(r.Context(), middleware.GetUserID(r.Context()), &expense)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteExpense removes one of the caller's expenses.
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	err := h.finance.DeleteExpense(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// CreateIncome records a new income entry for the caller.
func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var income models.Income
	if err := decodeJSON(r, &income); err != nil {
		respondError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	created, err := h.finance.AddIncome(r.Context(), middleware.GetUserID(r.Context()), &income)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListIncome returns the caller's income entries. Supports ?from= and
// ?to= (Unix seconds) query filters.
func (h *Handler) ListIncome(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := h.finance.ListIncome(r.Context(), middleware.GetUserID(r.Context()),
		parseUnix(q.Get("from")), parseUnix(q.Get("to")))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []*models.Income{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// UpdateIncome rewrites one of the caller's income entries.
func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	var income models.Income
	if err := decodeJSON(r, &income); err != nil {
		respondError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	income.ID = mux.Vars(r)["id"]

	updated, err := h.finance.UpdateIncome(r.Context(), middleware.GetUserID(r.Context()), &income)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteIncome removes one of the caller's income entries.
func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	err := h.finance.DeleteIncome(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func parseUnix(s string) int64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
