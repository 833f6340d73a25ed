package ledger

import (
	"errors"
	"fmt"

	"github.com/pennywiseapp/pennywise/internal/money"
)

// Validation failures are returned as values, never panics: the caller is
// always a form that needs to render the specific message inline.
var (
	// ErrNegativeOrZeroAmount means the expense or a share amount is <= 0.
	ErrNegativeOrZeroAmount = errors.New("amount must be greater than zero")

	// ErrInsufficientParticipants means fewer than two participants were
	// selected (the creator plus at least one other).
	ErrInsufficientParticipants = errors.New("select at least one other person to split with")

	// ErrUnknownMethod means the split method is not equal/amount/percentage.
	ErrUnknownMethod = errors.New("unknown split method")

	// ErrParticipantNotFound means a status mutation targeted an ID that
	// is not part of the record.
	ErrParticipantNotFound = errors.New("participant not found in split")

	// ErrNotYetPaid means settlement was attempted before the payment was
	// acknowledged. Settlement implies payment.
	ErrNotYetPaid = errors.New("participant has not paid yet")
)

// AmountMismatchError reports fixed-amount shares that do not reconcile to
// the expense total. Delta is signed: positive means the shares over-shoot.
type AmountMismatchError struct {
	Delta money.Money
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("split amounts do not total the expense amount (off by %s)", e.Delta)
}

// PercentageMismatchError reports percentages that do not sum to 100.
// Delta is signed in percentage points.
type PercentageMismatchError struct {
	Delta float64
}

func (e *PercentageMismatchError) Error() string {
	return fmt.Sprintf("percentages must total 100%% (off by %.1f)", e.Delta)
}
