package ledger

import (
	"errors"
	"testing"

	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/money"
)

func usd(minor int64) money.Money { return money.New(minor, "USD") }

func TestComputeSplitEqual(t *testing.T) {
	tests := []struct {
		name       string
		expense    money.Money
		inputs     []ShareInput
		wantShares []int64
	}{
		{
			name:       "even division",
			expense:    usd(3000),
			inputs:     []ShareInput{{UserID: "alice"}, {UserID: "bob"}, {UserID: "carol"}},
			wantShares: []int64{1000, 1000, 1000},
		},
		{
			name:       "remainder goes to the first participant",
			expense:    usd(10000),
			inputs:     []ShareInput{{UserID: "alice"}, {UserID: "bob"}, {UserID: "carol"}},
			wantShares: []int64{3334, 3333, 3333},
		},
		{
			name:       "two way odd cent",
			expense:    usd(101),
			inputs:     []ShareInput{{UserID: "alice"}, {UserID: "bob"}},
			wantShares: []int64{51, 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeSplit(tt.expense, models.SplitEqual, "alice", tt.inputs)
			if err != nil {
				t.Fatalf("ComputeSplit failed: %v", err)
			}

			var sum int64
			for i, p := range got {
				if p.Share.Amount != tt.wantShares[i] {
					t.Errorf("share[%d] = %d, want %d", i, p.Share.Amount, tt.wantShares[i])
				}
				sum += p.Share.Amount
			}
			if sum != tt.expense.Amount {
				t.Errorf("shares sum to %d, want %d", sum, tt.expense.Amount)
			}
		})
	}
}

func TestComputeSplitFixedAmount(t *testing.T) {
	tests := []struct {
		name       string
		expense    money.Money
		inputs     []ShareInput
		wantShares []int64
		wantDelta  int64 // non-zero means an AmountMismatchError is expected
	}{
		{
			name:    "exact amounts",
			expense: usd(3000),
			inputs: []ShareInput{
				{UserID: "alice", Amount: usd(2000)},
				{UserID: "bob", Amount: usd(1000)},
			},
			wantShares: []int64{2000, 1000},
		},
		{
			name:    "one cent short within tolerance folds into first share",
			expense: usd(3000),
			inputs: []ShareInput{
				{UserID: "alice", Amount: usd(1999)},
				{UserID: "bob", Amount: usd(1000)},
			},
			wantShares: []int64{2000, 1000},
		},
		{
			name:    "overshoot larger than the first share stays non-negative",
			expense: usd(4),
			inputs: []ShareInput{
				{UserID: "alice", Amount: usd(1)},
				{UserID: "bob", Amount: usd(3)},
				{UserID: "carol", Amount: usd(3)},
			},
			wantShares: []int64{0, 2, 2},
		},
		{
			name:    "shortfall within tolerance tops up every share",
			expense: usd(3000),
			inputs: []ShareInput{
				{UserID: "alice", Amount: usd(999)},
				{UserID: "bob", Amount: usd(999)},
				{UserID: "carol", Amount: usd(999)},
			},
			wantShares: []int64{1000, 1000, 1000},
		},
		{
			name:    "mismatch beyond tolerance",
			expense: usd(3000),
			inputs: []ShareInput{
				{UserID: "alice", Amount: usd(1500)},
				{UserID: "bob", Amount: usd(1000)},
			},
			wantDelta: -500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeSplit(tt.expense, models.SplitFixedAmount, "alice", tt.inputs)
			if tt.wantDelta != 0 {
				var mismatch *AmountMismatchError
				if !errors.As(err, &mismatch) {
					t.Fatalf("expected AmountMismatchError, got %v", err)
				}
				if mismatch.Delta.Amount != tt.wantDelta {
					t.Errorf("delta = %d, want %d", mismatch.Delta.Amount, tt.wantDelta)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeSplit failed: %v", err)
			}

			var sum int64
			for i, p := range got {
				if p.Share.Amount != tt.wantShares[i] {
					t.Errorf("share[%d] = %d, want %d", i, p.Share.Amount, tt.wantShares[i])
				}
				sum += p.Share.Amount
			}
			if sum != tt.expense.Amount {
				t.Errorf("shares sum to %d, want %d", sum, tt.expense.Amount)
			}
		})
	}
}

func TestComputeSplitPercentage(t *testing.T) {
	t.Run("valid percentages", func(t *testing.T) {
		got, err := ComputeSplit(usd(10000), models.SplitPercentage, "alice", []ShareInput{
			{UserID: "alice", Percentage: 50},
			{UserID: "bob", Percentage: 30},
			{UserID: "carol", Percentage: 20},
		})
		if err != nil {
			t.Fatalf("ComputeSplit failed: %v", err)
		}

		want := []int64{5000, 3000, 2000}
		var sum int64
		for i, p := range got {
			if p.Share.Amount != want[i] {
				t.Errorf("share[%d] = %d, want %d", i, p.Share.Amount, want[i])
			}
			sum += p.Share.Amount
		}
		if sum != 10000 {
			t.Errorf("shares sum to %d, want 10000", sum)
		}
	})

	t.Run("sum above 100 is rejected with the delta", func(t *testing.T) {
		_, err := ComputeSplit(usd(10000), models.SplitPercentage, "alice", []ShareInput{
			{UserID: "alice", Percentage: 50},
			{UserID: "bob", Percentage: 30},
			{UserID: "carol", Percentage: 21},
		})
		var mismatch *PercentageMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("expected PercentageMismatchError, got %v", err)
		}
		if mismatch.Delta < 0.9 || mismatch.Delta > 1.1 {
			t.Errorf("delta = %v, want 1", mismatch.Delta)
		}
	})

	t.Run("uneven thirds still conserve the total", func(t *testing.T) {
		got, err := ComputeSplit(usd(10000), models.SplitPercentage, "alice", []ShareInput{
			{UserID: "alice", Percentage: 33.33},
			{UserID: "bob", Percentage: 33.33},
			{UserID: "carol", Percentage: 33.34},
		})
		if err != nil {
			t.Fatalf("ComputeSplit failed: %v", err)
		}
		var sum int64
		for _, p := range got {
			sum += p.Share.Amount
		}
		if sum != 10000 {
			t.Errorf("shares sum to %d, want 10000", sum)
		}
	})

	t.Run("rounding overshoot is absorbed without a negative share", func(t *testing.T) {
		// Each 0.35 share of 5 cents rounds up, so the rounded total
		// overshoots the expense by one unit.
		got, err := ComputeSplit(usd(5), models.SplitPercentage, "alice", []ShareInput{
			{UserID: "alice", Percentage: 30},
			{UserID: "bob", Percentage: 35},
			{UserID: "carol", Percentage: 35},
		})
		if err != nil {
			t.Fatalf("ComputeSplit failed: %v", err)
		}
		var sum int64
		for i, p := range got {
			if p.Share.Amount < 0 {
				t.Errorf("share[%d] = %d, want non-negative", i, p.Share.Amount)
			}
			sum += p.Share.Amount
		}
		if sum != 5 {
			t.Errorf("shares sum to %d, want 5", sum)
		}
	})
}

func TestComputeSplitValidation(t *testing.T) {
	two := []ShareInput{{UserID: "alice"}, {UserID: "bob"}}

	if _, err := ComputeSplit(usd(0), models.SplitEqual, "alice", two); !errors.Is(err, ErrNegativeOrZeroAmount) {
		t.Errorf("zero expense: got %v, want ErrNegativeOrZeroAmount", err)
	}
	if _, err := ComputeSplit(usd(-100), models.SplitEqual, "alice", two); !errors.Is(err, ErrNegativeOrZeroAmount) {
		t.Errorf("negative expense: got %v, want ErrNegativeOrZeroAmount", err)
	}
	if _, err := ComputeSplit(usd(1000), models.SplitEqual, "alice", two[:1]); !errors.Is(err, ErrInsufficientParticipants) {
		t.Errorf("single participant: got %v, want ErrInsufficientParticipants", err)
	}
	if _, err := ComputeSplit(usd(1000), "weighted", "alice", two); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("unknown method: got %v, want ErrUnknownMethod", err)
	}

	mixed := []ShareInput{
		{UserID: "alice", Amount: money.New(500, "EUR")},
		{UserID: "bob", Amount: usd(500)},
	}
	var mismatch *money.MismatchError
	if _, err := ComputeSplit(usd(1000), models.SplitFixedAmount, "alice", mixed); !errors.As(err, &mismatch) {
		t.Errorf("mixed currencies: got %v, want money.MismatchError", err)
	}
}

func TestComputeSplitCreatorStartsPaid(t *testing.T) {
	got, err := ComputeSplit(usd(2000), models.SplitEqual, "bob", []ShareInput{
		{UserID: "alice"}, {UserID: "bob"},
	})
	if err != nil {
		t.Fatalf("ComputeSplit failed: %v", err)
	}
	for _, p := range got {
		wantPaid := p.UserID == "bob"
		if p.HasPaid != wantPaid {
			t.Errorf("%s HasPaid = %v, want %v", p.UserID, p.HasPaid, wantPaid)
		}
		if p.Settled {
			t.Errorf("%s starts settled, want unsettled", p.UserID)
		}
	}
}
