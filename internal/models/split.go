package models

import "github.com/pennywiseapp/pennywise/internal/money"

// SplitMethod is the algorithm used to divide an expense.
type SplitMethod string

const (
	// SplitEqual divides the amount evenly among participants.
	SplitEqual SplitMethod = "equal"
	// SplitFixedAmount uses caller-supplied per-participant amounts.
	SplitFixedAmount SplitMethod = "amount"
	// SplitPercentage derives amounts from caller-supplied percentages.
	SplitPercentage SplitMethod = "percentage"
)

// Valid reports whether m is one of the known split methods.
func (m SplitMethod) Valid() bool {
	switch m {
	case SplitEqual, SplitFixedAmount, SplitPercentage:
		return true
	}
	return false
}

// SplitParticipant is one line of a split: who owes what, and where that
// debt stands. HasPaid means funds were transferred to the creator;
// Settled means the creator confirmed closure. The two flags are
// independent, so paid-but-not-settled is a normal intermediate state.
type SplitParticipant struct {
	UserID string `json:"user_id"`

	// Share is this participant's portion of the expense.
	Share money.Money `json:"share"`

	// SharePercentage is for display; validation runs on Share.
	SharePercentage float64 `json:"share_percentage"`

	HasPaid bool `json:"has_paid"`
	Settled bool `json:"settled"`
}

// SplitRecord divides one expense among a fixed participant set.
// The allocation is immutable after creation; only per-participant
// status flags change. Re-splitting means creating a fresh record.
type SplitRecord struct {
	// ID is the unique identifier for the split (UUID format).
	ID string `json:"id"`

	// ExpenseID references the expense being divided.
	ExpenseID string `json:"expense_id"`

	// CreatorID is the user who paid the expense up front.
	CreatorID string `json:"creator_id"`

	// GroupID optionally ties the split to a group.
	GroupID string `json:"group_id,omitempty"`

	Method       SplitMethod        `json:"method"`
	Participants []SplitParticipant `json:"participants"`

	// Version increments on every status mutation. Stores reject writes
	// carrying a stale version so two devices cannot silently clobber
	// each other's updates.
	Version int64 `json:"version"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Complete reports whether every participant is both paid and settled.
func (r *SplitRecord) Complete() bool {
	for _, p := range r.Participants {
		if !p.HasPaid || !p.Settled {
			return false
		}
	}
	return true
}
