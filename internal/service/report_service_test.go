package service

import (
	"context"
	"testing"
	"time"

	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/money"
)

func TestSummarize(t *testing.T) {
	store := newTestStore(t)
	svc := NewReportService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")

	addExpense := func(category, month string, amount int64, currency string) {
		t.Helper()
		date, _ := time.Parse("2006-01", month)
		expense := &models.Expense{
			UserID:      alice.ID,
			Description: category,
			Amount:      money.New(amount, currency),
			Category:    category,
			Date:        date.AddDate(0, 0, 5).Unix(),
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}
	addIncome := func(month string, amount int64) {
		t.Helper()
		date, _ := time.Parse("2006-01", month)
		income := &models.Income{
			UserID: alice.ID,
			Source: "Salary",
			Amount: money.New(amount, "USD"),
			Date:   date.AddDate(0, 0, 1).Unix(),
		}
		if err := store.CreateIncome(ctx, income); err != nil {
			t.Fatalf("CreateIncome failed: %v", err)
		}
	}

	addExpense("Groceries", "2026-07", 30000, "USD")
	addExpense("Groceries", "2026-08", 10000, "USD")
	addExpense("Dining", "2026-08", 20000, "USD")
	// Foreign-currency records are skipped, not converted.
	addExpense("Travel", "2026-08", 50000, "EUR")
	addIncome("2026-07", 100000)
	addIncome("2026-08", 100000)

	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC).Unix()
	to := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC).Unix()

	summary, err := svc.Summarize(ctx, alice.ID, from, to)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if summary.TotalExpenses.Amount != 60000 {
		t.Errorf("total expenses = %d, want 60000", summary.TotalExpenses.Amount)
	}
	if summary.TotalIncome.Amount != 200000 {
		t.Errorf("total income = %d, want 200000", summary.TotalIncome.Amount)
	}
	if summary.Net.Amount != 140000 {
		t.Errorf("net = %d, want 140000", summary.Net.Amount)
	}
	if summary.SavingsRate != 70 {
		t.Errorf("savings rate = %v, want 70", summary.SavingsRate)
	}

	// Categories sorted by total descending.
	if len(summary.Categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(summary.Categories))
	}
	if summary.Categories[0].Category != "Groceries" || summary.Categories[0].Total.Amount != 40000 {
		t.Errorf("top category = %+v, want Groceries 40000", summary.Categories[0])
	}
	if summary.Categories[1].Category != "Dining" {
		t.Errorf("second category = %s, want Dining", summary.Categories[1].Category)
	}

	// Trend sorted by month ascending.
	if len(summary.Trend) != 2 {
		t.Fatalf("trend = %d, want 2 months", len(summary.Trend))
	}
	if summary.Trend[0].Month != "2026-07" || summary.Trend[1].Month != "2026-08" {
		t.Errorf("trend months = %s, %s", summary.Trend[0].Month, summary.Trend[1].Month)
	}
	if summary.Trend[1].Expenses.Amount != 30000 {
		t.Errorf("august expenses = %d, want 30000", summary.Trend[1].Expenses.Amount)
	}
	if summary.Trend[0].Income.Amount != 100000 {
		t.Errorf("july income = %d, want 100000", summary.Trend[0].Income.Amount)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	store := newTestStore(t)
	svc := NewReportService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com", "Alice")

	summary, err := svc.Summarize(ctx, alice.ID, 0, 0)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if !summary.TotalExpenses.IsZero() || !summary.TotalIncome.IsZero() {
		t.Error("empty summary should have zero totals")
	}
	if summary.SavingsRate != 0 {
		t.Errorf("savings rate = %v, want 0 with no income", summary.SavingsRate)
	}
	if len(summary.Categories) != 0 || len(summary.Trend) != 0 {
		t.Error("empty summary should have no categories or trend")
	}
}
