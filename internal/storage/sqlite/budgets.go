package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/money"
	"github.com/pennywiseapp/pennywise/internal/storage"
)

// CreateBudget persists a new budget, assigning ID and timestamps.
func (s *SQLiteStore) CreateBudget(ctx context.Context, budget *models.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if budget.CreatedAt == 0 {
		budget.CreatedAt = now
	}
	budget.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, user_id, category, amount, currency, month,
			alert_threshold, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		budget.ID, budget.UserID, budget.Category,
		budget.Amount.Amount, budget.Amount.Currency, budget.Month,
		budget.AlertThreshold, budget.CreatedAt, budget.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert budget: %w", err)
	}
	return nil
}

// GetBudget retrieves a budget by ID.
func (s *SQLiteStore) GetBudget(ctx context.Context, id string) (*models.Budget, error) {
	budget := &models.Budget{}
	var amount int64
	var currency string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, category, amount, currency, month, alert_threshold, created_at, updated_at
		FROM budgets WHERE id = ?`, id,
	).Scan(&budget.ID, &budget.UserID, &budget.Category, &amount, &currency,
		&budget.Month, &budget.AlertThreshold, &budget.CreatedAt, &budget.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	budget.Amount = money.New(amount, currency)
	return budget, nil
}

// ListBudgets returns the user's budgets, optionally narrowed to one
// YYYY-MM month.
func (s *SQLiteStore) ListBudgets(ctx context.Context, userID, month string) ([]*models.Budget, error) {
	query := `
		SELECT id, user_id, category, amount, currency, month, alert_threshold, created_at, updated_at
		FROM budgets WHERE user_id = ?`
	args := []interface{}{userID}
	if month != "" {
		query += " AND month = ?"
		args = append(args, month)
	}
	query += " ORDER BY category"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*models.Budget
	for rows.Next() {
		budget := &models.Budget{}
		var amount int64
		var currency string
		if err := rows.Scan(&budget.ID, &budget.UserID, &budget.Category, &amount,
			&currency, &budget.Month, &budget.AlertThreshold,
			&budget.CreatedAt, &budget.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budget.Amount = money.New(amount, currency)
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budgets: %w", err)
	}
	return budgets, nil
}

// UpdateBudget rewrites an existing budget.
func (s *SQLiteStore) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	budget.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx, `
		UPDATE budgets SET category = ?, amount = ?, currency = ?, month = ?,
			alert_threshold = ?, updated_at = ?
		WHERE id = ?`,
		budget.Category, budget.Amount.Amount, budget.Amount.Currency,
		budget.Month, budget.AlertThreshold, budget.UpdatedAt, budget.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return requireRow(res)
}

// DeleteBudget removes a budget and its alerts.
func (s *SQLiteStore) DeleteBudget(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM budgets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return requireRow(res)
}

// CreateBudgetAlert persists a new alert row.
func (s *SQLiteStore) CreateBudgetAlert(ctx context.Context, alert *models.BudgetAlert) error {
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	if alert.CreatedAt == 0 {
		alert.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budget_alerts (id, user_id, budget_id, type, message, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		alert.ID, alert.UserID, alert.BudgetID, alert.Type, alert.Message,
		alert.Read, alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert budget alert: %w", err)
	}
	return nil
}

// ListBudgetAlerts returns the user's alerts, newest first.
func (s *SQLiteStore) ListBudgetAlerts(ctx context.Context, userID string) ([]*models.BudgetAlert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, budget_id, type, message, read, created_at
		FROM budget_alerts WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*models.BudgetAlert
	for rows.Next() {
		alert := &models.BudgetAlert{}
		if err := rows.Scan(&alert.ID, &alert.UserID, &alert.BudgetID, &alert.Type,
			&alert.Message, &alert.Read, &alert.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budget alerts: %w", err)
	}
	return alerts, nil
}

// MarkBudgetAlertRead flags an alert as read.
func (s *SQLiteStore) MarkBudgetAlertRead(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE budget_alerts SET read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to mark alert read: %w", err)
	}
	return requireRow(res)
}
