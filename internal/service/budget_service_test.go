package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/money"
	"github.com/pennywiseapp/pennywise/internal/storage"
)

func createMonthExpense(t *testing.T, store storage.Store, userID, category, month string, amount int64) {
	t.Helper()
	date, err := time.Parse("2006-01", month)
	if err != nil {
		t.Fatalf("bad month %q: %v", month, err)
	}
	expense := &models.Expense{
		UserID:      userID,
		Description: category + " spend",
		Amount:      money.New(amount, "USD"),
		Category:    category,
		Date:        date.AddDate(0, 0, 10).Unix(),
	}
	if err := store.CreateExpense(context.Background(), expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
}

func TestBudgetProgress(t *testing.T) {
	store := newTestStore(t)
	svc := NewBudgetService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")

	budget, err := svc.CreateBudget(ctx, alice.ID, &models.Budget{
		Category: "Groceries",
		Amount:   money.New(20000, "USD"),
		Month:    "2026-08",
	})
	if err != nil {
		t.Fatalf("CreateBudget failed: %v", err)
	}

	createMonthExpense(t, store, alice.ID, "Groceries", "2026-08", 5000)
	createMonthExpense(t, store, alice.ID, "Groceries", "2026-08", 10000)
	// Different month and category stay out of the total.
	createMonthExpense(t, store, alice.ID, "Groceries", "2026-07", 9000)
	createMonthExpense(t, store, alice.ID, "Transport", "2026-08", 9000)

	progress, err := svc.ListBudgets(ctx, alice.ID, "2026-08")
	if err != nil {
		t.Fatalf("ListBudgets failed: %v", err)
	}
	if len(progress) != 1 {
		t.Fatalf("budgets = %d, want 1", len(progress))
	}

	p := progress[0]
	if p.Budget.ID != budget.ID {
		t.Errorf("budget = %s, want %s", p.Budget.ID, budget.ID)
	}
	if p.Spent.Amount != 15000 {
		t.Errorf("spent = %d, want 15000", p.Spent.Amount)
	}
	if p.Remaining.Amount != 5000 {
		t.Errorf("remaining = %d, want 5000", p.Remaining.Amount)
	}
	if p.Percentage != 75 {
		t.Errorf("percentage = %v, want 75", p.Percentage)
	}
	if p.OverBudget {
		t.Error("should not be over budget at 75%")
	}
}

func TestBudgetDuplicateRejected(t *testing.T) {
	store := newTestStore(t)
	svc := NewBudgetService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")

	if _, err := svc.CreateBudget(ctx, alice.ID, &models.Budget{
		Category: "Groceries",
		Amount:   money.New(20000, "USD"),
		Month:    "2026-08",
	}); err != nil {
		t.Fatalf("CreateBudget failed: %v", err)
	}

	_, err := svc.CreateBudget(ctx, alice.ID, &models.Budget{
		Category: "Groceries",
		Amount:   money.New(30000, "USD"),
		Month:    "2026-08",
	})
	if !errors.Is(err, ErrBudgetExists) {
		t.Errorf("err = %v, want ErrBudgetExists", err)
	}
}

func TestBudgetAlerts(t *testing.T) {
	store := newTestStore(t)
	svc := NewBudgetService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")

	if _, err := svc.CreateBudget(ctx, alice.ID, &models.Budget{
		Category:       "Dining",
		Amount:         money.New(10000, "USD"),
		Month:          "2026-08",
		AlertThreshold: 80,
	}); err != nil {
		t.Fatalf("CreateBudget failed: %v", err)
	}
	if _, err := svc.CreateBudget(ctx, alice.ID, &models.Budget{
		Category: "Transport",
		Amount:   money.New(5000, "USD"),
		Month:    "2026-08",
	}); err != nil {
		t.Fatalf("CreateBudget failed: %v", err)
	}

	createMonthExpense(t, store, alice.ID, "Dining", "2026-08", 8500)
	createMonthExpense(t, store, alice.ID, "Transport", "2026-08", 6000)

	raised, err := svc.CheckAlerts(ctx, alice.ID, "2026-08")
	if err != nil {
		t.Fatalf("CheckAlerts failed: %v", err)
	}
	if len(raised) != 2 {
		t.Fatalf("alerts = %d, want 2", len(raised))
	}

	byType := make(map[models.BudgetAlertType]int)
	for _, a := range raised {
		byType[a.Type]++
	}
	if byType[models.BudgetAlertThreshold] != 1 || byType[models.BudgetAlertExceeded] != 1 {
		t.Errorf("alert types = %v, want one threshold and one exceeded", byType)
	}

	listed, err := svc.ListAlerts(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListAlerts failed: %v", err)
	}
	if len(listed) != 2 {
		t.Errorf("stored alerts = %d, want 2", len(listed))
	}

	if err := svc.MarkAlertRead(ctx, alice.ID, listed[0].ID); err != nil {
		t.Errorf("MarkAlertRead failed: %v", err)
	}
	if err := svc.MarkAlertRead(ctx, alice.ID, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBudgetOwnership(t *testing.T) {
	store := newTestStore(t)
	svc := NewBudgetService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")
	bob := createTestUser(t, store, "bob@example.com", "Bob")

	budget, err := svc.CreateBudget(ctx, alice.ID, &models.Budget{
		Category: "Groceries",
		Amount:   money.New(20000, "USD"),
		Month:    "2026-08",
	})
	if err != nil {
		t.Fatalf("CreateBudget failed: %v", err)
	}

	if err := svc.DeleteBudget(ctx, bob.ID, budget.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	if err := svc.DeleteBudget(ctx, alice.ID, budget.ID); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
}
