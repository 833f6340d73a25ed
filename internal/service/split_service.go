// Package service implements the application operations on top of the
// storage layer, enforcing ownership and membership rules the pure
// ledger package deliberately leaves to its callers.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pennywiseapp/pennywise/internal/ledger"
	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/money"
	"github.com/pennywiseapp/pennywise/internal/storage"
)

// ErrForbidden means the caller is not allowed to touch the record.
var ErrForbidden = errors.New("not allowed")

// SplitService creates splits from expenses and tracks repayment status.
type SplitService struct {
	store storage.Store
}

// NewSplitService creates a new SplitService with the given storage backend.
func NewSplitService(store storage.Store) *SplitService {
	return &SplitService{store: store}
}

// CreateSplitParams carries the form inputs for a new split.
type CreateSplitParams struct {
	ExpenseID string
	Method    models.SplitMethod
	GroupID   string
	Shares    []ledger.ShareInput
}

// CreateSplit validates and persists a split of the caller's expense.
// The caller becomes the creator and is marked paid up front. The whole
// record is written atomically; there is no partially created split.
func (s *SplitService) CreateSplit(ctx context.Context, userID string, params CreateSplitParams) (*models.SplitRecord, error) {
	expense, err := s.store.GetExpense(ctx, params.ExpenseID)
	if err != nil {
		return nil, err
	}
	if expense.UserID != userID {
		return nil, ErrForbidden
	}

	participants, err := ledger.ComputeSplit(expense.Amount, params.Method, userID, params.Shares)
	if err != nil {
		return nil, err
	}

	record := &models.SplitRecord{
		ExpenseID:    expense.ID,
		CreatorID:    userID,
		GroupID:      params.GroupID,
		Method:       params.Method,
		Participants: participants,
	}
	if record.GroupID == "" {
		record.GroupID = expense.GroupID
	}

	if err := s.store.CreateSplit(ctx, record); err != nil {
		slog.Error("CreateSplit failed", "expense_id", expense.ID, "error", err)
		return nil, err
	}

	slog.Info("Split created",
		"split_id", record.ID,
		"expense_id", expense.ID,
		"method", record.Method,
		"participants", len(record.Participants),
	)
	return record, nil
}

// GetSplit returns one split if the caller is creator or participant.
func (s *SplitService) GetSplit(ctx context.Context, userID, splitID string) (*models.SplitRecord, error) {
	record, err := s.store.GetSplit(ctx, splitID)
	if err != nil {
		return nil, err
	}
	if !s.isMember(record, userID) {
		return nil, ErrForbidden
	}
	return record, nil
}

// ListSplits returns every split the caller is part of.
func (s *SplitService) ListSplits(ctx context.Context, userID string) ([]*models.SplitRecord, error) {
	return s.store.ListSplitsForUser(ctx, userID)
}

// MarkPaid records that a participant transferred their share to the
// creator. The participant themselves or the creator may record it.
// Safe to retry: marking twice is a no-op at the ledger level, and a
// concurrent update from another device surfaces as
// storage.ErrVersionConflict rather than a silent overwrite.
func (s *SplitService) MarkPaid(ctx context.Context, userID, splitID, participantID string) (*models.SplitRecord, error) {
	record, err := s.store.GetSplit(ctx, splitID)
	if err != nil {
		return nil, err
	}
	if userID != participantID && userID != record.CreatorID {
		return nil, ErrForbidden
	}

	updated, err := ledger.MarkPaid(*record, participantID)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateSplitStatus(ctx, &updated); err != nil {
		slog.Error("MarkPaid failed", "split_id", splitID, "participant_id", participantID, "error", err)
		return nil, err
	}

	slog.Info("Participant marked paid", "split_id", splitID, "participant_id", participantID)
	return &updated, nil
}

// MarkSettled records that the creator confirmed receipt of a payment.
// Only the creator may settle; the ledger additionally requires the
// participant to be paid first.
func (s *SplitService) MarkSettled(ctx context.Context, userID, splitID, participantID string) (*models.SplitRecord, error) {
	record, err := s.store.GetSplit(ctx, splitID)
	if err != nil {
		return nil, err
	}
	if userID != record.CreatorID {
		return nil, ErrForbidden
	}

	updated, err := ledger.MarkSettled(*record, participantID)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateSplitStatus(ctx, &updated); err != nil {
		slog.Error("MarkSettled failed", "split_id", splitID, "participant_id", participantID, "error", err)
		return nil, err
	}

	slog.Info("Participant settled", "split_id", splitID, "participant_id", participantID)
	return &updated, nil
}

// DeleteSplit removes a whole split. Creator only.
func (s *SplitService) DeleteSplit(ctx context.Context, userID, splitID string) error {
	record, err := s.store.GetSplit(ctx, splitID)
	if err != nil {
		return err
	}
	if userID != record.CreatorID {
		return ErrForbidden
	}
	return s.store.DeleteSplit(ctx, splitID)
}

// BalanceReport is the caller's debt overview.
type BalanceReport struct {
	Balances  []ledger.DebtBalance `json:"balances"`
	OwedToYou money.Money          `json:"owed_to_you"`
	YouOwe    money.Money          `json:"you_owe"`
}

// Balances nets every unsettled split the caller is part of into one
// figure per counterparty, plus the two headline totals.
func (s *SplitService) Balances(ctx context.Context, userID string) (*BalanceReport, error) {
	records, err := s.store.ListSplitsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	deref := make([]models.SplitRecord, len(records))
	for i, r := range records {
		deref[i] = *r
	}

	balances, err := ledger.AggregateBalances(deref, userID)
	if err != nil {
		return nil, err
	}
	owedToYou, youOwe, err := ledger.BalanceTotals(balances)
	if err != nil {
		return nil, err
	}

	return &BalanceReport{Balances: balances, OwedToYou: owedToYou, YouOwe: youOwe}, nil
}

func (s *SplitService) isMember(record *models.SplitRecord, userID string) bool {
	if record.CreatorID == userID {
		return true
	}
	for _, p := range record.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}
