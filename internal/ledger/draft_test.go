package ledger

import (
	"testing"

	"github.com/pennywiseapp/pennywise/internal/models"
)

func TestDraftEqualRecompute(t *testing.T) {
	draft := NewSplitDraft("exp-1", usd(3000), "alice", []string{"alice", "bob", "carol"})

	// Only the creator starts selected.
	if got := len(draft.Inputs()); got != 1 {
		t.Fatalf("initial selected = %d, want 1", got)
	}

	draft = Reduce(draft, ToggleParticipant{UserID: "bob"})
	draft = Reduce(draft, ToggleParticipant{UserID: "carol"})

	inputs := draft.Inputs()
	if len(inputs) != 3 {
		t.Fatalf("selected = %d, want 3", len(inputs))
	}
	for _, line := range draft.Lines {
		if line.Amount.Amount != 1000 {
			t.Errorf("%s equal share = %d, want 1000", line.UserID, line.Amount.Amount)
		}
	}
}

func TestDraftCreatorCannotBeDeselected(t *testing.T) {
	draft := NewSplitDraft("exp-1", usd(3000), "alice", []string{"alice", "bob"})

	next := Reduce(draft, ToggleParticipant{UserID: "alice"})
	for _, line := range next.Lines {
		if line.UserID == "alice" && !line.Selected {
			t.Error("creator was deselected")
		}
	}
}

func TestDraftPercentageDerivesAmount(t *testing.T) {
	draft := NewSplitDraft("exp-1", usd(8000), "alice", []string{"alice", "bob"})
	draft = Reduce(draft, ToggleParticipant{UserID: "bob"})
	draft = Reduce(draft, SetMethod{Method: models.SplitPercentage})
	draft = Reduce(draft, SetPercentage{UserID: "bob", Percentage: 25})

	for _, line := range draft.Lines {
		if line.UserID == "bob" && line.Amount.Amount != 2000 {
			t.Errorf("bob amount = %d, want 2000 (25%% of 80.00)", line.Amount.Amount)
		}
	}
}

func TestDraftReduceIsPure(t *testing.T) {
	draft := NewSplitDraft("exp-1", usd(3000), "alice", []string{"alice", "bob"})
	before := draft.Lines[1]

	_ = Reduce(draft, ToggleParticipant{UserID: "bob"})
	if draft.Lines[1] != before {
		t.Error("Reduce mutated its input draft")
	}
}

func TestDraftFlowsIntoComputeSplit(t *testing.T) {
	draft := NewSplitDraft("exp-1", usd(3000), "alice", []string{"alice", "bob", "carol"})
	draft = Reduce(draft, ToggleParticipant{UserID: "bob"})
	draft = Reduce(draft, ToggleParticipant{UserID: "carol"})

	participants, err := ComputeSplit(draft.Expense, draft.Method, draft.CreatorID, draft.Inputs())
	if err != nil {
		t.Fatalf("ComputeSplit from draft failed: %v", err)
	}
	var sum int64
	for _, p := range participants {
		sum += p.Share.Amount
	}
	if sum != 3000 {
		t.Errorf("shares sum to %d, want 3000", sum)
	}
}
