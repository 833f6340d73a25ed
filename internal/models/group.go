package models

// Group represents a reusable participant list.
// Splits may reference a group so members get shared expense history.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates").
	Name string `json:"name"`

	// CreatorID is the user who created the group.
	CreatorID string `json:"creator_id"`

	// Members is the list of member user IDs, creator included.
	Members []string `json:"members"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// HasMember reports whether userID belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// FriendStatus is the state of a friendship edge.
type FriendStatus string

const (
	FriendPending  FriendStatus = "pending"
	FriendAccepted FriendStatus = "accepted"
)

// Friend is a directed friendship from one user to another. A request
// starts pending and both directions become accepted together.
type Friend struct {
	ID       string       `json:"id"`
	UserID   string       `json:"user_id"`
	FriendID string       `json:"friend_id"`
	Status   FriendStatus `json:"status"`

	CreatedAt int64 `json:"created_at"`
}
