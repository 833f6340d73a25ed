package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pennywiseapp/pennywise/internal/ledger"
	"github.com/pennywiseapp/pennywise/internal/middleware"
	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/money"
	"github.com/pennywiseapp/pennywise/internal/service"
)

type createSplitRequest struct {
	ExpenseID string             `json:"expense_id"`
	Method    models.SplitMethod `json:"method"`
	GroupID   string             `json:"group_id,omitempty"`
	Shares    []shareInput       `json:"shares"`
}

type shareInput struct {
	UserID     string      `json:"user_id"`
	Amount     money.Money `json:"amount,omitempty"`
	Percentage float64     `json:"percentage,omitempty"`
}

type statusRequest struct {
	ParticipantID string `json:"participant_id"`
}

// CreateSplit splits one of the caller's expenses among participants.
func (h *Handler) CreateSplit(w http.ResponseWriter, r *http.Request) {
	var req createSplitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	shares := make([]ledger.ShareInput, len(req.Shares))
	for i, s := range req.Shares {
		shares[i] = ledger.ShareInput{UserID: s.UserID, Amount: s.Amount, Percentage: s.Percentage}
	}

	record, err := h.splits.CreateSplit(r.Context(), middleware.GetUserID(r.Context()), service.CreateSplitParams{
		ExpenseID: req.ExpenseID,
		Method:    req.Method,
		GroupID:   req.GroupID,
		Shares:    shares,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, record)
}

// ListSplits returns every split the caller is part of.
func (h *Handler) ListSplits(w http.ResponseWriter, r *http.Request) {
	records, err := h.splits.ListSplits(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if records == nil {
		records = []*models.SplitRecord{}
	}
	respondJSON(w, http.StatusOK, records)
}

// GetSplit returns one split the caller is part of.
func (h *Handler) GetSplit(w http.ResponseWriter, r *http.Request) {
	record, err := h.splits.GetSplit(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// MarkSplitPaid records a participant's payment on a split.
func (h *Handler) MarkSplitPaid(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if req.ParticipantID == "" {
		req.ParticipantID = userID
	}

	record, err := h.splits.MarkPaid(r.Context(), userID, mux.Vars(r)["id"], req.ParticipantID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// MarkSplitSettled records the creator's confirmation of a payment.
func (h *Handler) MarkSplitSettled(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if req.ParticipantID == "" {
		respondError(w, http.StatusBadRequest, "participant_id required")
		return
	}

	record, err := h.splits.MarkSettled(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"], req.ParticipantID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// DeleteSplit removes a whole split. Creator only.
func (h *Handler) DeleteSplit(w http.ResponseWriter, r *http.Request) {
	err := h.splits.DeleteSplit(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// GetBalances returns the caller's per-counterparty debt overview.
func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	report, err := h.splits.Balances(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if report.Balances == nil {
		report.Balances = []ledger.DebtBalance{}
	}
	respondJSON(w, http.StatusOK, report)
}
