package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/storage"
)

// CreateReminder persists a new reminder, assigning ID and timestamps.
func (s *SQLiteStore) CreateReminder(ctx context.Context, reminder *models.Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if reminder.CreatedAt == 0 {
		reminder.CreatedAt = now
	}
	reminder.UpdatedAt = now
	if reminder.Recurring == "" {
		reminder.Recurring = models.RecurringNone
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (id, user_id, title, notes, due_date, completed, recurring, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		reminder.ID, reminder.UserID, reminder.Title, nullString(reminder.Notes),
		reminder.DueDate, reminder.Completed, reminder.Recurring,
		reminder.CreatedAt, reminder.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reminder: %w", err)
	}
	return nil
}

// GetReminder retrieves a reminder by ID.
func (s *SQLiteStore) GetReminder(ctx context.Context, id string) (*models.Reminder, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, notes, due_date, completed, recurring, created_at, updated_at
		FROM reminders WHERE id = ?`, id)

	reminder, err := scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	return reminder, nil
}

// ListReminders returns the user's reminders ordered by due date.
func (s *SQLiteStore) ListReminders(ctx context.Context, userID string) ([]*models.Reminder, error) {
	return s.listReminders(ctx, `
		SELECT id, user_id, title, notes, due_date, completed, recurring, created_at, updated_at
		FROM reminders WHERE user_id = ? ORDER BY due_date`, userID)
}

// ListDueReminders returns incomplete reminders due at or before the
// given time, across all users. Used by the overdue sweep.
func (s *SQLiteStore) ListDueReminders(ctx context.Context, before int64) ([]*models.Reminder, error) {
	return s.listReminders(ctx, `
		SELECT id, user_id, title, notes, due_date, completed, recurring, created_at, updated_at
		FROM reminders WHERE completed = 0 AND due_date <= ? ORDER BY due_date`, before)
}

func (s *SQLiteStore) listReminders(ctx context.Context, query string, arg interface{}) ([]*models.Reminder, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}
	return reminders, nil
}

// UpdateReminder rewrites an existing reminder.
func (s *SQLiteStore) UpdateReminder(ctx context.Context, reminder *models.Reminder) error {
	reminder.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx, `
		UPDATE reminders SET title = ?, notes = ?, due_date = ?, completed = ?,
			recurring = ?, updated_at = ?
		WHERE id = ?`,
		reminder.Title, nullString(reminder.Notes), reminder.DueDate,
		reminder.Completed, reminder.Recurring, reminder.UpdatedAt, reminder.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	return requireRow(res)
}

// DeleteReminder removes a reminder by ID.
func (s *SQLiteStore) DeleteReminder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM reminders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return requireRow(res)
}

func scanReminder(row scanner) (*models.Reminder, error) {
	reminder := &models.Reminder{}
	var notes sql.NullString
	if err := row.Scan(
		&reminder.ID, &reminder.UserID, &reminder.Title, &notes,
		&reminder.DueDate, &reminder.Completed, &reminder.Recurring,
		&reminder.CreatedAt, &reminder.UpdatedAt,
	); err != nil {
		return nil, err
	}
	reminder.Notes = fromNull(notes)
	return reminder, nil
}
