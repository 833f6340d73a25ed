package ledger

import (
	"sort"

	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/money"
)

// DebtBalance is the net amount outstanding between the observer and one
// counterparty, summed across every unsettled split they share.
// Positive means the observer owes the counterparty; negative means the
// counterparty owes the observer.
type DebtBalance struct {
	CounterpartyID string      `json:"counterparty_id"`
	Net            money.Money `json:"net"`
}

// AggregateBalances nets unsettled split shares into one figure per
// counterparty for the given observer.
//
// Where the observer created the split, each other unsettled participant
// owes them their share (negative contribution). Where the observer is a
// participant and their own line is unsettled, they owe the creator
// (positive contribution). Multiple splits against the same counterparty
// collapse into a single net; exact-zero nets are dropped as effectively
// settled.
//
// Output order is deterministic: absolute net descending, ties by
// counterparty ID ascending.
func AggregateBalances(records []models.SplitRecord, observerID string) ([]DebtBalance, error) {
	buckets := make(map[string]money.Money)

	for _, record := range records {
		if record.CreatorID == observerID {
			for _, p := range record.Participants {
				if p.UserID == observerID || p.Settled {
					continue
				}
				net, err := buckets[p.UserID].Add(p.Share.Neg())
				if err != nil {
					return nil, err
				}
				buckets[p.UserID] = net
			}
			continue
		}

		for _, p := range record.Participants {
			if p.UserID != observerID || p.Settled {
				continue
			}
			net, err := buckets[record.CreatorID].Add(p.Share)
			if err != nil {
				return nil, err
			}
			buckets[record.CreatorID] = net
		}
	}

	balances := make([]DebtBalance, 0, len(buckets))
	for id, net := range buckets {
		if net.IsZero() {
			continue
		}
		balances = append(balances, DebtBalance{CounterpartyID: id, Net: net})
	}

	sort.Slice(balances, func(i, j int) bool {
		ai, aj := balances[i].Net.Abs().Amount, balances[j].Net.Abs().Amount
		if ai != aj {
			return ai > aj
		}
		return balances[i].CounterpartyID < balances[j].CounterpartyID
	})
	return balances, nil
}

// BalanceTotals summarizes a balance list into the two headline figures
// the debt overview shows: how much others owe the observer and how much
// the observer owes others. Both totals are non-negative.
func BalanceTotals(balances []DebtBalance) (owedToObserver, observerOwes money.Money, err error) {
	for _, b := range balances {
		if b.Net.Amount < 0 {
			if owedToObserver, err = owedToObserver.Add(b.Net.Abs()); err != nil {
				return money.Money{}, money.Money{}, err
			}
		} else {
			if observerOwes, err = observerOwes.Add(b.Net); err != nil {
				return money.Money{}, money.Money{}, err
			}
		}
	}
	return owedToObserver, observerOwes, nil
}
