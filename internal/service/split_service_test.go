package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pennywiseapp/pennywise/internal/ledger"
	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/money"
	"github.com/pennywiseapp/pennywise/internal/storage"
	"github.com/pennywiseapp/pennywise/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "pennywise-service-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestUser(t *testing.T, store storage.Store, email, name string) *models.User {
	t.Helper()
	user := models.NewUser(email, name, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", email, err)
	}
	return user
}

func createTestExpense(t *testing.T, store storage.Store, userID string, amount int64) *models.Expense {
	t.Helper()
	expense := &models.Expense{
		UserID:      userID,
		Description: "Dinner",
		Amount:      money.New(amount, "USD"),
		Category:    "Food",
		Date:        1_700_000_000,
	}
	if err := store.CreateExpense(context.Background(), expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return expense
}

func TestCreateSplitEqual(t *testing.T) {
	store := newTestStore(t)
	svc := NewSplitService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")
	bob := createTestUser(t, store, "bob@example.com", "Bob")
	expense := createTestExpense(t, store, alice.ID, 10000)

	record, err := svc.CreateSplit(ctx, alice.ID, CreateSplitParams{
		ExpenseID: expense.ID,
		Method:    models.SplitEqual,
		Shares: []ledger.ShareInput{
			{UserID: alice.ID},
			{UserID: bob.ID},
		},
	})
	if err != nil {
		t.Fatalf("CreateSplit failed: %v", err)
	}

	if len(record.Participants) != 2 {
		t.Fatalf("participants = %d, want 2", len(record.Participants))
	}
	if record.Participants[0].Share.Amount+record.Participants[1].Share.Amount != 10000 {
		t.Error("shares do not sum to expense amount")
	}
	if !record.Participants[0].HasPaid {
		t.Error("creator should be marked paid at creation")
	}
	if record.Participants[1].HasPaid {
		t.Error("non-creator should start unpaid")
	}
	if record.Version != 1 {
		t.Errorf("version = %d, want 1", record.Version)
	}
}

func TestCreateSplitNotExpenseOwner(t *testing.T) {
	store := newTestStore(t)
	svc := NewSplitService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")
	bob := createTestUser(t, store, "bob@example.com", "Bob")
	expense := createTestExpense(t, store, alice.ID, 5000)

	_, err := svc.CreateSplit(ctx, bob.ID, CreateSplitParams{
		ExpenseID: expense.ID,
		Method:    models.SplitEqual,
		Shares:    []ledger.ShareInput{{UserID: bob.ID}, {UserID: alice.ID}},
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestMarkPaidAndSettled(t *testing.T) {
	store := newTestStore(t)
	svc := NewSplitService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")
	bob := createTestUser(t, store, "bob@example.com", "Bob")
	expense := createTestExpense(t, store, alice.ID, 6000)

	record, err := svc.CreateSplit(ctx, alice.ID, CreateSplitParams{
		ExpenseID: expense.ID,
		Method:    models.SplitEqual,
		Shares:    []ledger.ShareInput{{UserID: alice.ID}, {UserID: bob.ID}},
	})
	if err != nil {
		t.Fatalf("CreateSplit failed: %v", err)
	}

	// Only the creator confirms receipt.
	if _, err := svc.MarkSettled(ctx, bob.ID, record.ID, bob.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("MarkSettled by participant: err = %v, want ErrForbidden", err)
	}

	// Settling before payment is rejected by the ledger.
	if _, err := svc.MarkSettled(ctx, alice.ID, record.ID, bob.ID); !errors.Is(err, ledger.ErrNotYetPaid) {
		t.Errorf("MarkSettled before paid: err = %v, want ErrNotYetPaid", err)
	}

	updated, err := svc.MarkPaid(ctx, bob.ID, record.ID, bob.ID)
	if err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}
	if !updated.Participants[1].HasPaid {
		t.Error("bob should be paid after MarkPaid")
	}
	if updated.Version != record.Version+1 {
		t.Errorf("version = %d, want %d", updated.Version, record.Version+1)
	}

	settled, err := svc.MarkSettled(ctx, alice.ID, updated.ID, bob.ID)
	if err != nil {
		t.Fatalf("MarkSettled failed: %v", err)
	}
	if !settled.Participants[1].Settled {
		t.Error("bob should be settled")
	}
	if !settled.Complete() {
		t.Error("split should be complete once everyone is settled")
	}
}

func TestMarkPaidForbiddenForThirdParty(t *testing.T) {
	store := newTestStore(t)
	svc := NewSplitService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")
	bob := createTestUser(t, store, "bob@example.com", "Bob")
	carol := createTestUser(t, store, "carol@example.com", "Carol")
	expense := createTestExpense(t, store, alice.ID, 6000)

	record, err := svc.CreateSplit(ctx, alice.ID, CreateSplitParams{
		ExpenseID: expense.ID,
		Method:    models.SplitEqual,
		Shares:    []ledger.ShareInput{{UserID: alice.ID}, {UserID: bob.ID}},
	})
	if err != nil {
		t.Fatalf("CreateSplit failed: %v", err)
	}

	if _, err := svc.MarkPaid(ctx, carol.ID, record.ID, bob.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestBalances(t *testing.T) {
	store := newTestStore(t)
	svc := NewSplitService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")
	bob := createTestUser(t, store, "bob@example.com", "Bob")

	// Alice paid 100.00 split equally with Bob: Bob owes her 50.00.
	expense := createTestExpense(t, store, alice.ID, 10000)
	if _, err := svc.CreateSplit(ctx, alice.ID, CreateSplitParams{
		ExpenseID: expense.ID,
		Method:    models.SplitEqual,
		Shares:    []ledger.ShareInput{{UserID: alice.ID}, {UserID: bob.ID}},
	}); err != nil {
		t.Fatalf("CreateSplit failed: %v", err)
	}

	report, err := svc.Balances(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	if len(report.Balances) != 1 {
		t.Fatalf("balances = %d, want 1", len(report.Balances))
	}
	if report.Balances[0].CounterpartyID != bob.ID {
		t.Errorf("counterparty = %s, want %s", report.Balances[0].CounterpartyID, bob.ID)
	}
	if report.Balances[0].Net.Amount != -5000 {
		t.Errorf("net = %d, want -5000", report.Balances[0].Net.Amount)
	}
	if report.OwedToYou.Amount != 5000 {
		t.Errorf("owed to you = %d, want 5000", report.OwedToYou.Amount)
	}
	if !report.YouOwe.IsZero() {
		t.Errorf("you owe = %v, want zero", report.YouOwe)
	}

	// Bob's view is the mirror image.
	bobReport, err := svc.Balances(ctx, bob.ID)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	if bobReport.Balances[0].Net.Amount != 5000 {
		t.Errorf("bob's net = %d, want 5000", bobReport.Balances[0].Net.Amount)
	}
}
