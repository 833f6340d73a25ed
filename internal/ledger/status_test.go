package ledger

import (
	"errors"
	"testing"

	"github.com/pennywiseapp/pennywise/internal/models"
)

func twoPersonRecord() models.SplitRecord {
	return models.SplitRecord{
		ID:        "split-1",
		CreatorID: "alice",
		Method:    models.SplitEqual,
		Participants: []models.SplitParticipant{
			{UserID: "alice", Share: usd(500), HasPaid: true},
			{UserID: "bob", Share: usd(500)},
		},
		Version: 1,
	}
}

func TestMarkPaid(t *testing.T) {
	record := twoPersonRecord()

	updated, err := MarkPaid(record, "bob")
	if err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}
	if !updated.Participants[1].HasPaid {
		t.Error("bob should be paid")
	}
	if updated.Participants[1].Settled {
		t.Error("MarkPaid must not touch Settled")
	}
	if updated.Version != record.Version+1 {
		t.Errorf("version = %d, want %d", updated.Version, record.Version+1)
	}

	// Input record untouched.
	if record.Participants[1].HasPaid {
		t.Error("MarkPaid mutated its input")
	}
}

func TestMarkPaidIdempotent(t *testing.T) {
	record := twoPersonRecord()

	once, err := MarkPaid(record, "bob")
	if err != nil {
		t.Fatalf("first MarkPaid failed: %v", err)
	}
	twice, err := MarkPaid(once, "bob")
	if err != nil {
		t.Fatalf("second MarkPaid failed: %v", err)
	}
	if twice.Participants[1] != once.Participants[1] {
		t.Errorf("second MarkPaid changed the participant: %+v vs %+v",
			twice.Participants[1], once.Participants[1])
	}
}

func TestMarkPaidUnknownParticipant(t *testing.T) {
	if _, err := MarkPaid(twoPersonRecord(), "mallory"); !errors.Is(err, ErrParticipantNotFound) {
		t.Errorf("got %v, want ErrParticipantNotFound", err)
	}
}

func TestMarkSettledRequiresPayment(t *testing.T) {
	record := twoPersonRecord()

	// Settling before payment always fails.
	if _, err := MarkSettled(record, "bob"); !errors.Is(err, ErrNotYetPaid) {
		t.Fatalf("got %v, want ErrNotYetPaid", err)
	}

	// After payment it always succeeds.
	paid, err := MarkPaid(record, "bob")
	if err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}
	settled, err := MarkSettled(paid, "bob")
	if err != nil {
		t.Fatalf("MarkSettled failed: %v", err)
	}
	if !settled.Participants[1].Settled {
		t.Error("bob should be settled")
	}
	if !settled.Complete() {
		// alice (creator, paid) still needs settling
		t.Log("record not complete until creator settles too")
	}
}

func TestForwardOnlyLifecycle(t *testing.T) {
	record := twoPersonRecord()

	paid, _ := MarkPaid(record, "bob")
	settled, _ := MarkSettled(paid, "bob")

	// Settled is terminal; further transitions are no-ops, never reversals.
	again, err := MarkSettled(settled, "bob")
	if err != nil {
		t.Fatalf("re-settling failed: %v", err)
	}
	p := again.Participants[1]
	if !p.HasPaid || !p.Settled {
		t.Errorf("state regressed: %+v", p)
	}
}
