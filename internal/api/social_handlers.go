package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pennywiseapp/pennywise/internal/middleware"
	"github.com/pennywiseapp/pennywise/internal/models"
)

type createGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type membersRequest struct {
	Members []string `json:"members"`
}

type friendRequest struct {
	Email string `json:"email"`
}

// CreateGroup creates a group with the caller as creator.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), middleware.GetUserID(r.Context()), req.Name, req.Members)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, group)
}

// ListGroups returns the caller's groups.
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.ListGroups(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if groups == nil {
		groups = []*models.Group{}
	}
	respondJSON(w, http.StatusOK, groups)
}

// GetGroup returns one group the caller belongs to.
func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.GetGroup(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

// AddGroupMembers adds users to a group.
func (h *Handler) AddGroupMembers(w http.ResponseWriter, r *http.Request) {
	var req membersRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	group, err := h.groups.AddMembers(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"], req.Members)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

// RemoveGroupMember removes one member from a group.
func (h *Handler) RemoveGroupMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	err := h.groups.RemoveMember(r.Context(), middleware.GetUserID(r.Context()), vars["id"], vars["memberId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// SendFriendRequest sends a friend request to a user by email.
func (h *Handler) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	var req friendRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	friend, err := h.groups.SendFriendRequest(r.Context(), middleware.GetUserID(r.Context()), req.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, friend)
}

// ListFriends returns the caller's accepted friendships.
func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.groups.ListFriends(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if friends == nil {
		friends = []*models.Friend{}
	}
	respondJSON(w, http.StatusOK, friends)
}

// ListFriendRequests returns pending requests addressed to the caller.
func (h *Handler) ListFriendRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.groups.ListFriendRequests(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if requests == nil {
		requests = []*models.Friend{}
	}
	respondJSON(w, http.StatusOK, requests)
}

// AcceptFriendRequest accepts a pending request addressed to the caller.
func (h *Handler) AcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	err := h.groups.AcceptFriendRequest(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
