package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/storage"
)

// ErrInvalidInput covers malformed finance records (empty description,
// non-positive amount, and the like).
var ErrInvalidInput = errors.New("invalid input")

// FinanceService manages personal expense and income records.
type FinanceService struct {
	store storage.Store
}

// NewFinanceService creates a new FinanceService with the given storage
// backend.
func NewFinanceService(store storage.Store) *FinanceService {
	return &FinanceService{store: store}
}

// AddExpense validates and persists a new expense for the caller.
func (s *FinanceService) AddExpense(ctx context.Context, userID string, expense *models.Expense) (*models.Expense, error) {
	if expense.Description == "" || expense.Category == "" || !expense.Amount.IsPositive() {
		return nil, ErrInvalidInput
	}
	expense.UserID = userID
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "user_id", userID, "error", err)
		return nil, err
	}
	slog.Debug("Expense added", "expense_id", expense.ID, "amount", expense.Amount.String())
	return expense, nil
}

// ListExpenses returns the caller's expenses matching the filter.
func (s *FinanceService) ListExpenses(ctx context.Context, userID string, filter storage.ExpenseFilter) ([]*models.Expense, error) {
	return s.store.ListExpenses(ctx, userID, filter)
}

// UpdateExpense rewrites one of the caller's expenses.
func (s *FinanceService) UpdateExpense(ctx context.Context, userID string, expense *models.Expense) (*models.Expense, error) {
	existing, err := s.store.GetExpense(ctx, expense.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrForbidden
	}
	if expense.Description == "" || expense.Category == "" || !expense.Amount.IsPositive() {
		return nil, ErrInvalidInput
	}
	expense.UserID = userID
	expense.CreatedAt = existing.CreatedAt
	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes one of the caller's expenses.
func (s *FinanceService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	existing, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrForbidden
	}
	return s.store.DeleteExpense(ctx, expenseID)
}

// AddIncome validates and persists a new income entry for the caller.
func (s *FinanceService) AddIncome(ctx context.Context, userID string, income *models.Income) (*models.Income, error) {
	if income.Source == "" || !income.Amount.IsPositive() {
		return nil, ErrInvalidInput
	}
	income.UserID = userID
	if err := s.store.CreateIncome(ctx, income); err != nil {
		slog.Error("AddIncome failed", "user_id", userID, "error", err)
		return nil, err
	}
	return income, nil
}

// ListIncome returns the caller's income entries within the range.
func (s *FinanceService) ListIncome(ctx context.Context, userID string, from, to int64) ([]*models.Income, error) {
	return s.store.ListIncome(ctx, userID, from, to)
}

// UpdateIncome rewrites one of the caller's income entries.
func (s *FinanceService) UpdateIncome(ctx context.Context, userID string, income *models.Income) (*models.Income, error) {
	if income.Source == "" || !income.Amount.IsPositive() {
		return nil, ErrInvalidInput
	}
	income.UserID = userID
	if err := s.store.UpdateIncome(ctx, income); err != nil {
		return nil, err
	}
	return income, nil
}

// DeleteIncome removes one of the caller's income entries.
func (s *FinanceService) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	return s.store.DeleteIncome(ctx, incomeID)
}
