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

// CreateSplit persists a split record and all its participants in one
// transaction. A split is never partially created.
func (s *SQLiteStore) CreateSplit(ctx context.Context, record *models.SplitRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if record.CreatedAt == 0 {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	if record.Version == 0 {
		record.Version = 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO splits (id, expense_id, creator_id, group_id, method, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.ExpenseID, record.CreatorID, nullString(record.GroupID),
		record.Method, record.Version, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert split: %w", err)
	}

	for i, p := range record.Participants {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO split_participants (split_id, user_id, position, share, currency, share_percentage, has_paid, settled)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			record.ID, p.UserID, i, p.Share.Amount, p.Share.Currency,
			p.SharePercentage, p.HasPaid, p.Settled,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSplit retrieves a split record with its participants in creation
// order.
func (s *SQLiteStore) GetSplit(ctx context.Context, id string) (*models.SplitRecord, error) {
	record := &models.SplitRecord{}
	var groupID sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, expense_id, creator_id, group_id, method, version, created_at, updated_at
		FROM splits WHERE id = ?`, id,
	).Scan(&record.ID, &record.ExpenseID, &record.CreatorID, &groupID,
		&record.Method, &record.Version, &record.CreatedAt, &record.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get split: %w", err)
	}
	record.GroupID = fromNull(groupID)

	if err := s.loadParticipants(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListSplitsForUser returns every split where the user is creator or
// participant, newest first.
func (s *SQLiteStore) ListSplitsForUser(ctx context.Context, userID string) ([]*models.SplitRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT sp.id FROM splits sp
		LEFT JOIN split_participants p ON p.split_id = sp.id
		WHERE sp.creator_id = ? OR p.user_id = ?
		ORDER BY sp.created_at DESC, sp.id`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan split id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	records := make([]*models.SplitRecord, 0, len(ids))
	for _, id := range ids {
		record, err := s.GetSplit(ctx, id)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// UpdateSplitStatus persists participant status flags under an
// optimistic-concurrency check: the write only lands if the stored
// version is exactly record.Version-1. A stale record gets
// storage.ErrVersionConflict so two devices cannot silently overwrite
// each other's paid/settled updates.
func (s *SQLiteStore) UpdateSplitStatus(ctx context.Context, record *models.SplitRecord) error {
	record.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE splits SET version = ?, updated_at = ? WHERE id = ? AND version = ?",
		record.Version, record.UpdatedAt, record.ID, record.Version-1,
	)
	if err != nil {
		return fmt.Errorf("failed to update split: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		// Distinguish a missing record from a version race.
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM splits WHERE id = ?", record.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check split existence: %w", err)
		}
		return storage.ErrVersionConflict
	}

	for _, p := range record.Participants {
		_, err = tx.ExecContext(ctx,
			"UPDATE split_participants SET has_paid = ?, settled = ? WHERE split_id = ? AND user_id = ?",
			p.HasPaid, p.Settled, record.ID, p.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to update split participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteSplit removes a split and its participants. Splits are only ever
// deleted whole.
func (s *SQLiteStore) DeleteSplit(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM splits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete split: %w", err)
	}
	return requireRow(res)
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, record *models.SplitRecord) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, share, currency, share_percentage, has_paid, settled
		FROM split_participants WHERE split_id = ? ORDER BY position`, record.ID)
	if err != nil {
		return fmt.Errorf("failed to get split participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.SplitParticipant
		var share int64
		var currency string
		if err := rows.Scan(&p.UserID, &share, &currency, &p.SharePercentage,
			&p.HasPaid, &p.Settled); err != nil {
			return fmt.Errorf("failed to scan split participant: %w", err)
		}
		p.Share = money.New(share, currency)
		record.Participants = append(record.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate split participants: %w", err)
	}
	return nil
}
