package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pennywiseapp/pennywise/internal/auth"
	"github.com/pennywiseapp/pennywise/internal/middleware"
)

// NewRouter wires every route. Everything under /api/v1 except register
// and login requires a bearer token.
func NewRouter(h *Handler, jwtManager *auth.JWTManager) *mux.Router {
	r := mux.NewRouter()
	// Attached here rather than around the router so the mux route
	// template is available for the metric labels.
	r.Use(middleware.Metrics)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	v1.HandleFunc("/login", h.Login).Methods(http.MethodPost)

	authed := v1.NewRoute().Subrouter()
	authed.Use(middleware.RequireAuth(jwtManager))

	authed.HandleFunc("/me", h.Me).Methods(http.MethodGet)

	authed.HandleFunc("/expenses", h.CreateExpense).Methods(http.MethodPost)
	authed.HandleFunc("/expenses", h.ListExpenses).Methods(http.MethodGet)
	authed.HandleFunc("/expenses/{id}", h.UpdateExpense).Methods(http.MethodPut)
	authed.HandleFunc("/expenses/{id}", h.DeleteExpense).Methods(http.MethodDelete)

	authed.HandleFunc("/income", h.CreateIncome).Methods(http.MethodPost)
	authed.HandleFunc("/income", h.ListIncome).Methods(http.MethodGet)
	authed.HandleFunc("/income/{id}", h.UpdateIncome).Methods(http.MethodPut)
	authed.HandleFunc("/income/{id}", h.DeleteIncome).Methods(http.MethodDelete)

	authed.HandleFunc("/budgets", h.CreateBudget).Methods(http.MethodPost)
	authed.HandleFunc("/budgets", h.ListBudgets).Methods(http.MethodGet)
	authed.HandleFunc("/budgets/{id}", h.UpdateBudget).Methods(http.MethodPut)
	authed.HandleFunc("/budgets/{id}", h.DeleteBudget).Methods(http.MethodDelete)
	authed.HandleFunc("/budgets/alerts/check", h.CheckBudgetAlerts).Methods(http.MethodPost)
	authed.HandleFunc("/budgets/alerts", h.ListBudgetAlerts).Methods(http.MethodGet)
	authed.HandleFunc("/budgets/alerts/{id}/read", h.MarkAlertRead).Methods(http.MethodPost)

	authed.HandleFunc("/reminders", h.CreateReminder).Methods(http.MethodPost)
	authed.HandleFunc("/reminders", h.ListReminders).Methods(http.MethodGet)
	authed.HandleFunc("/reminders/{id}", h.UpdateReminder).Methods(http.MethodPut)
	authed.HandleFunc("/reminders/{id}/complete", h.CompleteReminder).Methods(http.MethodPost)
	authed.HandleFunc("/reminders/{id}", h.DeleteReminder).Methods(http.MethodDelete)

	authed.HandleFunc("/reports/summary", h.GetSummary).Methods(http.MethodGet)

	authed.HandleFunc("/friends", h.ListFriends).Methods(http.MethodGet)
	authed.HandleFunc("/friends/requests", h.SendFriendRequest).Methods(http.MethodPost)
	authed.HandleFunc("/friends/requests", h.ListFriendRequests).Methods(http.MethodGet)
	authed.HandleFunc("/friends/requests/{id}/accept", h.AcceptFriendRequest).Methods(http.MethodPost)

	authed.HandleFunc("/groups", h.CreateGroup).Methods(http.MethodPost)
	authed.HandleFunc("/groups", h.ListGroups).Methods(http.MethodGet)
	authed.HandleFunc("/groups/{id}", h.GetGroup).Methods(http.MethodGet)
	authed.HandleFunc("/groups/{id}/members", h.AddGroupMembers).Methods(http.MethodPost)
	authed.HandleFunc("/groups/{id}/members/{memberId}", h.RemoveGroupMember).Methods(http.MethodDelete)

	authed.HandleFunc("/splits", h.CreateSplit).Methods(http.MethodPost)
	authed.HandleFunc("/splits", h.ListSplits).Methods(http.MethodGet)
	authed.HandleFunc("/splits/balances", h.GetBalances).Methods(http.MethodGet)
	authed.HandleFunc("/splits/{id}", h.GetSplit).Methods(http.MethodGet)
	authed.HandleFunc("/splits/{id}/pay", h.MarkSplitPaid).Methods(http.MethodPost)
	authed.HandleFunc("/splits/{id}/settle", h.MarkSplitSettled).Methods(http.MethodPost)
	authed.HandleFunc("/splits/{id}", h.DeleteSplit).Methods(http.MethodDelete)

	return r
}
