package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/storage"
)

func TestCreateGroupIncludesCreator(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")
	bob := createTestUser(t, store, "bob@example.com", "Bob")

	group, err := svc.CreateGroup(ctx, alice.ID, "Roommates", []string{bob.ID, alice.ID})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if len(group.Members) != 2 {
		t.Fatalf("members = %v, want creator plus one", group.Members)
	}
	if group.Members[0] != alice.ID {
		t.Errorf("first member = %s, want creator %s", group.Members[0], alice.ID)
	}
	if group.CreatorID != alice.ID {
		t.Errorf("creator = %s, want %s", group.CreatorID, alice.ID)
	}
}

func TestGetGroupNonMemberForbidden(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")
	carol := createTestUser(t, store, "carol@example.com", "Carol")

	group, err := svc.CreateGroup(ctx, alice.ID, "Trip", nil)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	if _, err := svc.GetGroup(ctx, carol.ID, group.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestRemoveMemberRules(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")
	bob := createTestUser(t, store, "bob@example.com", "Bob")
	carol := createTestUser(t, store, "carol@example.com", "Carol")

	group, err := svc.CreateGroup(ctx, alice.ID, "Trip", []string{bob.ID, carol.ID})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	// Bob cannot remove Carol.
	if err := svc.RemoveMember(ctx, bob.ID, group.ID, carol.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("member removing another: err = %v, want ErrForbidden", err)
	}
	// The creator cannot be removed.
	if err := svc.RemoveMember(ctx, alice.ID, group.ID, alice.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("removing creator: err = %v, want ErrForbidden", err)
	}
	// Bob may leave.
	if err := svc.RemoveMember(ctx, bob.ID, group.ID, bob.ID); err != nil {
		t.Errorf("member leaving: %v", err)
	}
	// The creator may remove Carol.
	if err := svc.RemoveMember(ctx, alice.ID, group.ID, carol.ID); err != nil {
		t.Errorf("creator removing member: %v", err)
	}

	got, err := svc.GetGroup(ctx, alice.ID, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(got.Members) != 1 || got.Members[0] != alice.ID {
		t.Errorf("members = %v, want just the creator", got.Members)
	}
}

func TestFriendRequestFlow(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")
	bob := createTestUser(t, store, "bob@example.com", "Bob")

	req, err := svc.SendFriendRequest(ctx, alice.ID, "bob@example.com")
	if err != nil {
		t.Fatalf("SendFriendRequest failed: %v", err)
	}
	if req.Status != models.FriendPending {
		t.Errorf("status = %s, want pending", req.Status)
	}

	// Duplicate requests are rejected, in either direction.
	if _, err := svc.SendFriendRequest(ctx, alice.ID, "bob@example.com"); !errors.Is(err, ErrFriendExists) {
		t.Errorf("duplicate request: err = %v, want ErrFriendExists", err)
	}
	if _, err := svc.SendFriendRequest(ctx, bob.ID, "alice@example.com"); !errors.Is(err, ErrFriendExists) {
		t.Errorf("reverse request: err = %v, want ErrFriendExists", err)
	}

	incoming, err := svc.ListFriendRequests(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListFriendRequests failed: %v", err)
	}
	if len(incoming) != 1 || incoming[0].ID != req.ID {
		t.Fatalf("incoming = %v, want the one request", incoming)
	}

	// Only the addressee may accept.
	if err := svc.AcceptFriendRequest(ctx, alice.ID, req.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("sender accepting: err = %v, want ErrForbidden", err)
	}
	if err := svc.AcceptFriendRequest(ctx, bob.ID, req.ID); err != nil {
		t.Fatalf("AcceptFriendRequest failed: %v", err)
	}

	// Both sides now list each other.
	aliceFriends, err := svc.ListFriends(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListFriends failed: %v", err)
	}
	if len(aliceFriends) != 1 || aliceFriends[0].FriendID != bob.ID {
		t.Errorf("alice's friends = %v, want bob", aliceFriends)
	}
	bobFriends, err := svc.ListFriends(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListFriends failed: %v", err)
	}
	if len(bobFriends) != 1 || bobFriends[0].FriendID != alice.ID {
		t.Errorf("bob's friends = %v, want alice", bobFriends)
	}
}

func TestSendFriendRequestUnknownEmail(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")

	if _, err := svc.SendFriendRequest(ctx, alice.ID, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := svc.SendFriendRequest(ctx, alice.ID, "alice@example.com"); !errors.Is(err, ErrSelfFriend) {
		t.Errorf("self request: err = %v, want ErrSelfFriend", err)
	}
}
