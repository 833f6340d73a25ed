package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/money"
	"github.com/pennywiseapp/pennywise/internal/storage"
)

// ErrBudgetExists is returned when a budget for the same category and
// month already exists.
var ErrBudgetExists = errors.New("budget already exists for category and month")

// BudgetService manages monthly per-category budgets and the alerts
// raised when spending approaches or exceeds them.
type BudgetService struct {
	store storage.Store
}

// NewBudgetService creates a new BudgetService with the given storage
// backend.
func NewBudgetService(store storage.Store) *BudgetService {
	return &BudgetService{store: store}
}

// BudgetProgress is a budget joined with the month's actual spending.
type BudgetProgress struct {
	Budget *models.Budget `json:"budget"`

	// Spent is the sum of the month's expenses in the budget's category.
	Spent money.Money `json:"spent"`

	// Remaining is budget minus spent; negative when over budget.
	Remaining money.Money `json:"remaining"`

	// Percentage is spent as a share of the budget amount, 0-100+.
	Percentage float64 `json:"percentage"`

	OverBudget bool `json:"over_budget"`
}

// CreateBudget validates and persists a new budget for the caller.
func (s *BudgetService) CreateBudget(ctx context.Context, userID string, budget *models.Budget) (*models.Budget, error) {
	if budget.Category == "" || !budget.Amount.IsPositive() {
		return nil, ErrInvalidInput
	}
	if _, err := monthBounds(budget.Month); err != nil {
		return nil, ErrInvalidInput
	}
	budget.UserID = userID

	existing, err := s.store.ListBudgets(ctx, userID, budget.Month)
	if err != nil {
		return nil, err
	}
	for _, b := range existing {
		if b.Category == budget.Category {
			return nil, ErrBudgetExists
		}
	}

	if err := s.store.CreateBudget(ctx, budget); err != nil {
		slog.Error("CreateBudget failed", "user_id", userID, "error", err)
		return nil, err
	}
	return budget, nil
}

// ListBudgets returns the caller's budgets for a month with spending
// progress attached. An empty month means all months.
func (s *BudgetService) ListBudgets(ctx context.Context, userID, month string) ([]*BudgetProgress, error) {
	budgets, err := s.store.ListBudgets(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	progress := make([]*BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		p, err := s.progressFor(ctx, b)
		if err != nil {
			return nil, err
		}
		progress = append(progress, p)
	}
	return progress, nil
}

// UpdateBudget rewrites one of the caller's budgets.
func (s *BudgetService) UpdateBudget(ctx context.Context, userID string, budget *models.Budget) (*models.Budget, error) {
	existing, err := s.store.GetBudget(ctx, budget.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrForbidden
	}
	if budget.Category == "" || !budget.Amount.IsPositive() {
		return nil, ErrInvalidInput
	}
	budget.UserID = userID
	budget.CreatedAt = existing.CreatedAt
	if err := s.store.UpdateBudget(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// DeleteBudget removes one of the caller's budgets.
func (s *BudgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	existing, err := s.store.GetBudget(ctx, budgetID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrForbidden
	}
	return s.store.DeleteBudget(ctx, budgetID)
}

// CheckAlerts evaluates the caller's budgets for the month and records
// alerts for any budget whose spending crossed its threshold or went
// over. Returns the alerts raised by this call.
func (s *BudgetService) CheckAlerts(ctx context.Context, userID, month string) ([]*models.BudgetAlert, error) {
	budgets, err := s.store.ListBudgets(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	var raised []*models.BudgetAlert
	for _, b := range budgets {
		p, err := s.progressFor(ctx, b)
		if err != nil {
			return nil, err
		}

		var alert *models.BudgetAlert
		switch {
		case p.OverBudget:
			alert = &models.BudgetAlert{
				UserID:   userID,
				BudgetID: b.ID,
				Type:     models.BudgetAlertExceeded,
				Message:  fmt.Sprintf("%s budget for %s exceeded: spent %s of %s", b.Category, b.Month, p.Spent.String(), b.Amount.String()),
			}
		case b.AlertThreshold > 0 && p.Percentage >= b.AlertThreshold:
			alert = &models.BudgetAlert{
				UserID:   userID,
				BudgetID: b.ID,
				Type:     models.BudgetAlertThreshold,
				Message:  fmt.Sprintf("%s budget for %s at %.0f%% of limit", b.Category, b.Month, p.Percentage),
			}
		default:
			continue
		}

		if err := s.store.CreateBudgetAlert(ctx, alert); err != nil {
			return nil, err
		}
		slog.Info("Budget alert raised", "budget_id", b.ID, "type", alert.Type)
		raised = append(raised, alert)
	}
	return raised, nil
}

// ListAlerts returns the caller's budget alerts, newest first.
func (s *BudgetService) ListAlerts(ctx context.Context, userID string) ([]*models.BudgetAlert, error) {
	return s.store.ListBudgetAlerts(ctx, userID)
}

// MarkAlertRead marks one of the caller's alerts as read.
func (s *BudgetService) MarkAlertRead(ctx context.Context, userID, alertID string) error {
	alerts, err := s.store.ListBudgetAlerts(ctx, userID)
	if err != nil {
		return err
	}
	for _, a := range alerts {
		if a.ID == alertID {
			return s.store.MarkBudgetAlertRead(ctx, alertID)
		}
	}
	return storage.ErrNotFound
}

func (s *BudgetService) progressFor(ctx context.Context, budget *models.Budget) (*BudgetProgress, error) {
	bounds, err := monthBounds(budget.Month)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpenses(ctx, budget.UserID, storage.ExpenseFilter{
		Category: budget.Category,
		From:     bounds.from,
		To:       bounds.to,
	})
	if err != nil {
		return nil, err
	}

	spent := money.New(0, budget.Amount.Currency)
	for _, e := range expenses {
		sum, err := spent.Add(e.Amount)
		if err != nil {
			// Mixed-currency months are not totalled; skip the outlier.
			slog.Warn("Skipping expense in foreign currency", "expense_id", e.ID, "currency", e.Amount.Currency)
			continue
		}
		spent = sum
	}

	var pct float64
	if budget.Amount.Amount > 0 {
		pct = float64(spent.Amount) / float64(budget.Amount.Amount) * 100
	}

	return &BudgetProgress{
		Budget:     budget,
		Spent:      spent,
		Remaining:  money.New(budget.Amount.Amount-spent.Amount, budget.Amount.Currency),
		Percentage: pct,
		OverBudget: spent.Amount > budget.Amount.Amount,
	}, nil
}

type monthRange struct {
	from, to int64
}

// monthBounds converts a YYYY-MM month into its inclusive Unix range.
func monthBounds(month string) (monthRange, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return monthRange{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return monthRange{from: start.Unix(), to: end.Unix()}, nil
}
