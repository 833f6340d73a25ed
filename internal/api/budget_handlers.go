package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pennywiseapp/pennywise/internal/middleware"
	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/service"
)

// CreateBudget creates a per-category monthly budget for the caller.
func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var budget models.Budget
	if err := decodeJSON(r, &budget); err != nil {
		respondError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	created, err := h.budgets.CreateBudget(r.Context(), middleware.GetUserID(r.Context()), &budget)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListBudgets returns the caller's budgets with spending progress.
// Supports ?month=YYYY-MM; default is all months.
func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	progress, err := h.budgets.ListBudgets(r.Context(), middleware.GetUserID(r.Context()),
		r.URL.Query().Get("month"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if progress == nil {
		progress = []*service.BudgetProgress{}
	}
	respondJSON(w, http.StatusOK, progress)
}

// UpdateBudget rewrites one of the caller's budgets.
func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	var budget models.Budget
	if err := decodeJSON(r, &budget); err != nil {
		respondError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	budget.ID = mux.Vars(r)["id"]

	updated, err := h.budgets.UpdateBudget(r.Context(), middleware.GetUserID(r.Context()), &budget)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteBudget removes one of the caller's budgets.
func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	err := h.budgets.DeleteBudget(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// CheckBudgetAlerts evaluates the caller's budgets for a month and
// returns any alerts raised. Requires ?month=YYYY-MM.
func (h *Handler) CheckBudgetAlerts(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		respondError(w, http.StatusBadRequest, "month query parameter required")
		return
	}

	raised, err := h.budgets.CheckAlerts(r.Context(), middleware.GetUserID(r.Context()), month)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if raised == nil {
		raised = []*models.BudgetAlert{}
	}
	respondJSON(w, http.StatusOK, raised)
}

// ListBudgetAlerts returns the caller's stored budget alerts.
func (h *Handler) ListBudgetAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.budgets.ListAlerts(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if alerts == nil {
		alerts = []*models.BudgetAlert{}
	}
	respondJSON(w, http.StatusOK, alerts)
}

// MarkAlertRead marks one of the caller's alerts as read.
func (h *Handler) MarkAlertRead(w http.ResponseWriter, r *http.Request) {
	err := h.budgets.MarkAlertRead(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
