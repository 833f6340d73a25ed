// Package ledger computes, validates and aggregates expense splits.
//
// Every function here is pure: plain data in, plain data out, no I/O.
// Persistence and authorization belong to the service layer.
package ledger

import (
	"math"

	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/money"
)

// percentTolerance is how far the percentage sum may drift from 100
// before the split is rejected. Matches the form's 0.1-point allowance.
const percentTolerance = 0.1

// ShareInput is one participant's raw form input for a split.
// Amount is read for the FixedAmount method, Percentage for Percentage;
// Equal ignores both.
type ShareInput struct {
	UserID     string
	Amount     money.Money
	Percentage float64
}

// ComputeSplit turns an expense and raw participant inputs into validated
// split lines. The creator starts with HasPaid set (they fronted the
// money); everyone starts unsettled.
//
// Conservation holds exactly for every method: after remainder
// assignment, the shares sum to the expense amount to the minor unit.
func ComputeSplit(expense money.Money, method models.SplitMethod, creatorID string, inputs []ShareInput) ([]models.SplitParticipant, error) {
	if !expense.IsPositive() {
		return nil, ErrNegativeOrZeroAmount
	}
	if len(inputs) < 2 {
		return nil, ErrInsufficientParticipants
	}

	var shares []money.Money
	var percentages []float64
	var err error

	switch method {
	case models.SplitEqual:
		shares, percentages = equalShares(expense, len(inputs))
	case models.SplitFixedAmount:
		shares, percentages, err = fixedShares(expense, inputs)
	case models.SplitPercentage:
		shares, percentages, err = percentageShares(expense, inputs)
	default:
		return nil, ErrUnknownMethod
	}
	if err != nil {
		return nil, err
	}

	participants := make([]models.SplitParticipant, len(inputs))
	for i, in := range inputs {
		participants[i] = models.SplitParticipant{
			UserID:          in.UserID,
			Share:           shares[i],
			SharePercentage: percentages[i],
			HasPaid:         in.UserID == creatorID,
			Settled:         false,
		}
	}
	return participants, nil
}

// equalShares divides the amount evenly. Integer division leaves a
// remainder of up to count-1 minor units; it goes to the first
// participant so the total reconciles exactly.
func equalShares(expense money.Money, count int) ([]money.Money, []float64) {
	per := expense.Amount / int64(count)
	remainder := expense.Amount - per*int64(count)

	shares := make([]money.Money, count)
	percentages := make([]float64, count)
	for i := range shares {
		shares[i] = money.New(per, expense.Currency)
		percentages[i] = 100 / float64(count)
	}
	shares[0].Amount += remainder
	return shares, percentages
}

// fixedShares validates caller-supplied amounts against the expense
// total, allowing one minor unit of rounding slack per participant.
// Any residual inside the tolerance is spread across the shares.
func fixedShares(expense money.Money, inputs []ShareInput) ([]money.Money, []float64, error) {
	var sum money.Money
	for _, in := range inputs {
		if !in.Amount.IsPositive() {
			return nil, nil, ErrNegativeOrZeroAmount
		}
		var err error
		if sum, err = sum.Add(in.Amount); err != nil {
			return nil, nil, err
		}
	}
	if sum.Currency != expense.Currency {
		return nil, nil, &money.MismatchError{Left: expense.Currency, Right: sum.Currency}
	}

	delta := sum.Amount - expense.Amount
	if abs64(delta) > int64(len(inputs)) {
		return nil, nil, &AmountMismatchError{Delta: money.New(delta, expense.Currency)}
	}

	shares := make([]money.Money, len(inputs))
	percentages := make([]float64, len(inputs))
	for i, in := range inputs {
		shares[i] = in.Amount
		if expense.Amount != 0 {
			percentages[i] = float64(in.Amount.Amount) / float64(expense.Amount) * 100
		}
	}
	if foldResidual(shares, -delta) != 0 {
		return nil, nil, &AmountMismatchError{Delta: money.New(delta, expense.Currency)}
	}
	return shares, percentages, nil
}

// percentageShares validates that percentages sum to 100 within
// tolerance, then rounds each share to minor units. Rounding residue
// is spread across the shares.
func percentageShares(expense money.Money, inputs []ShareInput) ([]money.Money, []float64, error) {
	var pctSum float64
	for _, in := range inputs {
		if in.Percentage <= 0 {
			return nil, nil, ErrNegativeOrZeroAmount
		}
		pctSum += in.Percentage
	}
	if math.Abs(pctSum-100) > percentTolerance {
		return nil, nil, &PercentageMismatchError{Delta: pctSum - 100}
	}

	shares := make([]money.Money, len(inputs))
	percentages := make([]float64, len(inputs))
	var allocated int64
	for i, in := range inputs {
		shares[i] = expense.Percent(in.Percentage)
		percentages[i] = in.Percentage
		allocated += shares[i].Amount
	}
	if residual := expense.Amount - allocated; foldResidual(shares, residual) != 0 {
		return nil, nil, &AmountMismatchError{Delta: money.New(-residual, expense.Currency)}
	}
	return shares, percentages, nil
}

// foldResidual spreads a reconciliation residual across the shares one
// minor unit at a time, skipping shares a deduction would push below
// zero, and returns whatever could not be absorbed. The tolerance
// checks bound the residual at one unit per participant and every
// share enters positive, so a full pass normally absorbs everything.
func foldResidual(shares []money.Money, residual int64) int64 {
	step := int64(1)
	if residual < 0 {
		step = -1
	}
	for residual != 0 {
		moved := false
		for i := range shares {
			if residual == 0 {
				break
			}
			if step < 0 && shares[i].Amount <= 0 {
				continue
			}
			shares[i].Amount += step
			residual -= step
			moved = true
		}
		if !moved {
			return residual
		}
	}
	return 0
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
