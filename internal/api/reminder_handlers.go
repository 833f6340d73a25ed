package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pennywiseapp/pennywise/internal/middleware"
	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/service"
)

// CreateReminder creates a reminder for the caller.
func (h *Handler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var reminder models.Reminder
	if err := decodeJSON(r, &reminder); err != nil {
		respondError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	created, err := h.reminders.CreateReminder(r.Context(), middleware.GetUserID(r.Context()), &reminder)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListReminders returns the caller's reminders with derived statuses.
func (h *Handler) ListReminders(w http.ResponseWriter, r *http.Request) {
	views, err := h.reminders.ListReminders(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if views == nil {
		views = []*service.ReminderView{}
	}
	respondJSON(w, http.StatusOK, views)
}

// UpdateReminder rewrites one of the caller's reminders.
func (h *Handler) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	var reminder models.Reminder
	if err := decodeJSON(r, &reminder); err != nil {
		respondError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	reminder.ID = mux.Vars(r)["id"]

	updated, err := h.reminders.UpdateReminder(r.Context(), middleware.GetUserID(r.Context()), &reminder)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// CompleteReminder marks a reminder done, or rolls a recurring one
// forward to its next due date.
func (h *Handler) CompleteReminder(w http.ResponseWriter, r *http.Request) {
	updated, err := h.reminders.CompleteReminder(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteReminder removes one of the caller's reminders.
func (h *Handler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	err := h.reminders.DeleteReminder(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
