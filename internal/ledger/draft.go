package ledger

import (
	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/money"
)

// SplitDraft is the in-progress form state for creating a split. It is an
// immutable value: Reduce returns a fresh draft for every action, leaving
// the caller to own lifecycle and persistence.
type SplitDraft struct {
	ExpenseID string
	Expense   money.Money
	CreatorID string
	Method    models.SplitMethod
	Lines     []DraftLine
}

// DraftLine is one candidate participant row in the form.
type DraftLine struct {
	UserID     string
	Selected   bool
	Amount     money.Money
	Percentage float64
}

// DraftAction mutates a draft through Reduce.
type DraftAction interface{ isDraftAction() }

// SetMethod switches the split method and recomputes derived shares.
type SetMethod struct{ Method models.SplitMethod }

// ToggleParticipant flips a line's selection. The creator cannot be
// deselected.
type ToggleParticipant struct{ UserID string }

// SetAmount records a fixed-amount input for one line.
type SetAmount struct {
	UserID string
	Amount money.Money
}

// SetPercentage records a percentage input for one line and derives its
// amount from the expense total.
type SetPercentage struct {
	UserID     string
	Percentage float64
}

func (SetMethod) isDraftAction()         {}
func (ToggleParticipant) isDraftAction() {}
func (SetAmount) isDraftAction()         {}
func (SetPercentage) isDraftAction()     {}

// NewSplitDraft seeds a draft from an expense and candidate participants.
// The creator is selected up front; equal shares are precomputed since
// Equal is the default method.
func NewSplitDraft(expenseID string, expense money.Money, creatorID string, candidateIDs []string) SplitDraft {
	draft := SplitDraft{
		ExpenseID: expenseID,
		Expense:   expense,
		CreatorID: creatorID,
		Method:    models.SplitEqual,
		Lines:     make([]DraftLine, len(candidateIDs)),
	}
	for i, id := range candidateIDs {
		draft.Lines[i] = DraftLine{UserID: id, Selected: id == creatorID}
	}
	return recomputeEqual(draft)
}

// Reduce applies one action and returns the next draft. The input draft
// is never modified.
func Reduce(draft SplitDraft, action DraftAction) SplitDraft {
	next := draft
	next.Lines = make([]DraftLine, len(draft.Lines))
	copy(next.Lines, draft.Lines)

	switch a := action.(type) {
	case SetMethod:
		next.Method = a.Method
		if a.Method == models.SplitEqual {
			next = recomputeEqual(next)
		}
	case ToggleParticipant:
		if a.UserID == next.CreatorID {
			return draft
		}
		for i := range next.Lines {
			if next.Lines[i].UserID == a.UserID {
				next.Lines[i].Selected = !next.Lines[i].Selected
			}
		}
		if next.Method == models.SplitEqual {
			next = recomputeEqual(next)
		}
	case SetAmount:
		for i := range next.Lines {
			if next.Lines[i].UserID == a.UserID {
				next.Lines[i].Amount = a.Amount
			}
		}
	case SetPercentage:
		for i := range next.Lines {
			if next.Lines[i].UserID == a.UserID {
				next.Lines[i].Percentage = a.Percentage
				next.Lines[i].Amount = next.Expense.Percent(a.Percentage)
			}
		}
	}
	return next
}

// Inputs converts the selected lines into ComputeSplit inputs.
func (d SplitDraft) Inputs() []ShareInput {
	var inputs []ShareInput
	for _, line := range d.Lines {
		if !line.Selected {
			continue
		}
		inputs = append(inputs, ShareInput{
			UserID:     line.UserID,
			Amount:     line.Amount,
			Percentage: line.Percentage,
		})
	}
	return inputs
}

// recomputeEqual refreshes per-line amount and percentage previews for
// the currently selected set.
func recomputeEqual(draft SplitDraft) SplitDraft {
	selected := 0
	for _, line := range draft.Lines {
		if line.Selected {
			selected++
		}
	}
	if selected == 0 {
		return draft
	}

	per := draft.Expense.Amount / int64(selected)
	pct := 100 / float64(selected)
	for i := range draft.Lines {
		if draft.Lines[i].Selected {
			draft.Lines[i].Amount = money.New(per, draft.Expense.Currency)
			draft.Lines[i].Percentage = pct
		} else {
			draft.Lines[i].Amount = money.Money{}
			draft.Lines[i].Percentage = 0
		}
	}
	return draft
}
