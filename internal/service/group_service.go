package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/storage"
)

var (
	// ErrNotFriends is returned when an operation requires an accepted
	// friendship that does not exist.
	ErrNotFriends = errors.New("users are not friends")

	// ErrFriendExists is returned when a friend request duplicates an
	// existing edge.
	ErrFriendExists = errors.New("friend request already exists")

	// ErrSelfFriend is returned when a user tries to friend themselves.
	ErrSelfFriend = errors.New("cannot friend yourself")
)

// GroupService manages participant groups and the friendships backing
// them.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group owned by the caller. The creator is
// always a member.
func (s *GroupService) CreateGroup(ctx context.Context, creatorID, name string, memberIDs []string) (*models.Group, error) {
	if name == "" {
		return nil, ErrInvalidInput
	}

	members := []string{creatorID}
	for _, id := range memberIDs {
		if id != creatorID {
			members = append(members, id)
		}
	}

	group := &models.Group{
		Name:      name,
		CreatorID: creatorID,
		Members:   members,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(members))
	return group, nil
}

// GetGroup retrieves a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrForbidden
	}
	return group, nil
}

// ListGroups returns the caller's groups.
func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.ListGroupsByMember(ctx, userID)
}

// AddMembers adds users to a group. Only members may add.
func (s *GroupService) AddMembers(ctx context.Context, userID, groupID string, memberIDs []string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrForbidden
	}

	var added []string
	for _, id := range memberIDs {
		if !group.HasMember(id) {
			added = append(added, id)
		}
	}
	if len(added) == 0 {
		return group, nil
	}

	if err := s.store.AddGroupMembers(ctx, groupID, added); err != nil {
		return nil, err
	}
	group.Members = append(group.Members, added...)
	return group, nil
}

// RemoveMember removes a user from a group. Members may remove
// themselves; only the creator may remove others. The creator cannot
// leave their own group.
func (s *GroupService) RemoveMember(ctx context.Context, userID, groupID, memberID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if memberID == group.CreatorID {
		return ErrForbidden
	}
	if userID != memberID && userID != group.CreatorID {
		return ErrForbidden
	}
	return s.store.RemoveGroupMember(ctx, groupID, memberID)
}

// SendFriendRequest creates a pending friendship toward the user with
// the given email.
func (s *GroupService) SendFriendRequest(ctx context.Context, userID, friendEmail string) (*models.Friend, error) {
	target, err := s.store.GetUserByEmail(ctx, friendEmail)
	if err != nil {
		return nil, err
	}
	if target.ID == userID {
		return nil, ErrSelfFriend
	}

	// Reject duplicates in either direction.
	for _, status := range []models.FriendStatus{models.FriendPending, models.FriendAccepted} {
		edges, err := s.store.ListFriends(ctx, userID, status)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			if e.FriendID == target.ID {
				return nil, ErrFriendExists
			}
		}
	}
	incoming, err := s.store.ListIncomingFriendRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, e := range incoming {
		if e.UserID == target.ID {
			return nil, ErrFriendExists
		}
	}

	friend := &models.Friend{
		UserID:   userID,
		FriendID: target.ID,
		Status:   models.FriendPending,
	}
	if err := s.store.CreateFriend(ctx, friend); err != nil {
		slog.Error("SendFriendRequest failed", "error", err)
		return nil, err
	}
	slog.Info("Friend request sent", "from", userID, "to", target.ID)
	return friend, nil
}

// ListFriends returns the caller's accepted friendships.
func (s *GroupService) ListFriends(ctx context.Context, userID string) ([]*models.Friend, error) {
	return s.store.ListFriends(ctx, userID, models.FriendAccepted)
}

// ListFriendRequests returns pending requests addressed to the caller.
func (s *GroupService) ListFriendRequests(ctx context.Context, userID string) ([]*models.Friend, error) {
	return s.store.ListIncomingFriendRequests(ctx, userID)
}

// AcceptFriendRequest accepts a pending request addressed to the
// caller: the original edge flips to accepted and a reverse accepted
// edge is created so both users see each other as friends.
func (s *GroupService) AcceptFriendRequest(ctx context.Context, userID, requestID string) error {
	edge, err := s.store.GetFriend(ctx, requestID)
	if err != nil {
		return err
	}
	if edge.FriendID != userID {
		return ErrForbidden
	}
	if edge.Status != models.FriendPending {
		return ErrFriendExists
	}

	if err := s.store.UpdateFriendStatus(ctx, requestID, models.FriendAccepted); err != nil {
		return err
	}
	reverse := &models.Friend{
		UserID:   userID,
		FriendID: edge.UserID,
		Status:   models.FriendAccepted,
	}
	if err := s.store.CreateFriend(ctx, reverse); err != nil {
		return err
	}
	slog.Info("Friend request accepted", "request_id", requestID)
	return nil
}
