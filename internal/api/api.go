// Package api exposes the application over REST. Handlers decode and
// validate requests, delegate to the service layer, and translate
// service errors into HTTP status codes.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pennywiseapp/pennywise/internal/auth"
	"github.com/pennywiseapp/pennywise/internal/ledger"
	"github.com/pennywiseapp/pennywise/internal/money"
	"github.com/pennywiseapp/pennywise/internal/service"
	"github.com/pennywiseapp/pennywise/internal/storage"
)

// Handler bundles the services behind the REST routes.
type Handler struct {
	auth      *service.AuthService
	finance   *service.FinanceService
	budgets   *service.BudgetService
	reminders *service.ReminderService
	reports   *service.ReportService
	groups    *service.GroupService
	splits    *service.SplitService
}

// NewHandler creates the REST handler over the given services.
func NewHandler(
	authSvc *service.AuthService,
	finance *service.FinanceService,
	budgets *service.BudgetService,
	reminders *service.ReminderService,
	reports *service.ReportService,
	groups *service.GroupService,
	splits *service.SplitService,
) *Handler {
	return &Handler{
		auth:      authSvc,
		finance:   finance,
		budgets:   budgets,
		reminders: reminders,
		reports:   reports,
		groups:    groups,
		splits:    splits,
	}
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, map[string]string{"error": msg})
}

// respondServiceError maps service and storage errors onto HTTP codes.
func respondServiceError(w http.ResponseWriter, err error) {
	var amountMismatch *ledger.AmountMismatchError
	var pctMismatch *ledger.PercentageMismatchError
	var currencyMismatch *money.MismatchError

	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrVersionConflict):
		respondError(w, http.StatusConflict, "record was modified concurrently, retry")
	case errors.Is(err, service.ErrForbidden):
		respondError(w, http.StatusForbidden, "not allowed")
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrEmailExists),
		errors.Is(err, service.ErrBudgetExists),
		errors.Is(err, service.ErrFriendExists):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrSelfFriend),
		errors.Is(err, ledger.ErrNegativeOrZeroAmount),
		errors.Is(err, ledger.ErrInsufficientParticipants),
		errors.Is(err, ledger.ErrUnknownMethod),
		errors.Is(err, ledger.ErrParticipantNotFound),
		errors.Is(err, ledger.ErrNotYetPaid),
		errors.As(err, &amountMismatch),
		errors.As(err, &pctMismatch),
		errors.As(err, &currencyMismatch):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("Unhandled service error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON reads the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
