package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/money"
	"github.com/pennywiseapp/pennywise/internal/storage"
)

// Tags are stored as a comma-joined string; none of the category names
// contain commas and the UI treats tags as flat labels.

// CreateExpense persists a new expense, assigning ID and timestamps.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	expense.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, user_id, description, amount, currency, category, date,
			notes, tags, recurring, recurring_type, group_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.UserID, expense.Description,
		expense.Amount.Amount, expense.Amount.Currency,
		expense.Category, expense.Date,
		nullString(expense.Notes), nullString(strings.Join(expense.Tags, ",")),
		expense.Recurring, nullString(string(expense.RecurringType)),
		nullString(expense.GroupID), expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, description, amount, currency, category, date,
			notes, tags, recurring, recurring_type, group_id, created_at, updated_at
		FROM expenses WHERE id = ?`, id)

	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// ListExpenses returns the user's expenses matching the filter, newest
// date first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, userID string, filter storage.ExpenseFilter) ([]*models.Expense, error) {
	query := `
		SELECT id, user_id, description, amount, currency, category, date,
			notes, tags, recurring, recurring_type, group_id, created_at, updated_at
		FROM expenses WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.GroupID != "" {
		query += " AND group_id = ?"
		args = append(args, filter.GroupID)
	}
	if filter.From != 0 {
		query += " AND date >= ?"
		args = append(args, filter.From)
	}
	if filter.To != 0 {
		query += " AND date <= ?"
		args = append(args, filter.To)
	}
	query += " ORDER BY date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// UpdateExpense rewrites an existing expense.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx, `
		UPDATE expenses SET description = ?, amount = ?, currency = ?, category = ?,
			date = ?, notes = ?, tags = ?, recurring = ?, recurring_type = ?,
			group_id = ?, updated_at = ?
		WHERE id = ?`,
		expense.Description, expense.Amount.Amount, expense.Amount.Currency,
		expense.Category, expense.Date,
		nullString(expense.Notes), nullString(strings.Join(expense.Tags, ",")),
		expense.Recurring, nullString(string(expense.RecurringType)),
		nullString(expense.GroupID), expense.UpdatedAt, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return requireRow(res)
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireRow(res)
}

// CreateIncome persists a new income entry, assigning ID and timestamps.
func (s *SQLiteStore) CreateIncome(ctx context.Context, income *models.Income) error {
	if income.ID == "" {
		income.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if income.CreatedAt == 0 {
		income.CreatedAt = now
	}
	income.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO income (id, user_id, source, amount, currency, category, date,
			notes, recurring, recurring_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		income.ID, income.UserID, income.Source,
		income.Amount.Amount, income.Amount.Currency,
		nullString(income.Category), income.Date, nullString(income.Notes),
		income.Recurring, nullString(string(income.RecurringType)),
		income.CreatedAt, income.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert income: %w", err)
	}
	return nil
}

// ListIncome returns the user's income entries within the date range,
// newest first. Zero bounds are open-ended.
func (s *SQLiteStore) ListIncome(ctx context.Context, userID string, from, to int64) ([]*models.Income, error) {
	query := `
		SELECT id, user_id, source, amount, currency, category, date,
			notes, recurring, recurring_type, created_at, updated_at
		FROM income WHERE user_id = ?`
	args := []interface{}{userID}
	if from != 0 {
		query += " AND date >= ?"
		args = append(args, from)
	}
	if to != 0 {
		query += " AND date <= ?"
		args = append(args, to)
	}
	query += " ORDER BY date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}
	defer rows.Close()

	var entries []*models.Income
	for rows.Next() {
		income := &models.Income{}
		var amount int64
		var currency string
		var category, notes, recurringType sql.NullString
		if err := rows.Scan(
			&income.ID, &income.UserID, &income.Source, &amount, &currency,
			&category, &income.Date, &notes, &income.Recurring, &recurringType,
			&income.CreatedAt, &income.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		income.Amount = money.New(amount, currency)
		income.Category = fromNull(category)
		income.Notes = fromNull(notes)
		income.RecurringType = models.RecurringType(fromNull(recurringType))
		entries = append(entries, income)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate income: %w", err)
	}
	return entries, nil
}

// UpdateIncome rewrites an existing income entry.
func (s *SQLiteStore) UpdateIncome(ctx context.Context, income *models.Income) error {
	income.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx, `
		UPDATE income SET source = ?, amount = ?, currency = ?, category = ?,
			date = ?, notes = ?, recurring = ?, recurring_type = ?, updated_at = ?
		WHERE id = ?`,
		income.Source, income.Amount.Amount, income.Amount.Currency,
		nullString(income.Category), income.Date, nullString(income.Notes),
		income.Recurring, nullString(string(income.RecurringType)),
		income.UpdatedAt, income.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}
	return requireRow(res)
}

// DeleteIncome removes an income entry by ID.
func (s *SQLiteStore) DeleteIncome(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM income WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	return requireRow(res)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row scanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount int64
	var currency string
	var notes, tags, recurringType, groupID sql.NullString

	if err := row.Scan(
		&expense.ID, &expense.UserID, &expense.Description, &amount, &currency,
		&expense.Category, &expense.Date, &notes, &tags,
		&expense.Recurring, &recurringType, &groupID,
		&expense.CreatedAt, &expense.UpdatedAt,
	); err != nil {
		return nil, err
	}

	expense.Amount = money.New(amount, currency)
	expense.Notes = fromNull(notes)
	if t := fromNull(tags); t != "" {
		expense.Tags = strings.Split(t, ",")
	}
	expense.RecurringType = models.RecurringType(fromNull(recurringType))
	expense.GroupID = fromNull(groupID)
	return expense, nil
}

// requireRow converts "zero rows affected" into storage.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
