package service

import (
	"context"
	"sort"
	"time"

	"github.com/pennywiseapp/pennywise/internal/money"
	"github.com/pennywiseapp/pennywise/internal/storage"
)

// ReportService computes spending summaries from raw expense and income
// records. All aggregation happens here; the store only filters.
type ReportService struct {
	store storage.Store
}

// NewReportService creates a new ReportService with the given storage
// backend.
func NewReportService(store storage.Store) *ReportService {
	return &ReportService{store: store}
}

// CategoryTotal is one category's share of the period's spending.
type CategoryTotal struct {
	Category   string      `json:"category"`
	Total      money.Money `json:"total"`
	Percentage float64     `json:"percentage"`
}

// MonthTotal is one month's spending and income, for trend charts.
type MonthTotal struct {
	// Month is in YYYY-MM format.
	Month    string      `json:"month"`
	Expenses money.Money `json:"expenses"`
	Income   money.Money `json:"income"`
}

// Summary is the full report for a period.
type Summary struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`

	TotalExpenses money.Money `json:"total_expenses"`
	TotalIncome   money.Money `json:"total_income"`
	Net           money.Money `json:"net"`

	// SavingsRate is net as a share of income, 0 when there is no income.
	SavingsRate float64 `json:"savings_rate"`

	// Categories is sorted by total descending.
	Categories []CategoryTotal `json:"categories"`

	// Trend is sorted by month ascending.
	Trend []MonthTotal `json:"trend"`
}

// Summarize builds the caller's spending report for the period. Records
// in a currency other than the caller's default are skipped.
func (s *ReportService) Summarize(ctx context.Context, userID string, from, to int64) (*Summary, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	currency := user.DefaultCurrency

	expenses, err := s.store.ListExpenses(ctx, userID, storage.ExpenseFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	income, err := s.store.ListIncome(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	totalExpenses := money.New(0, currency)
	totalIncome := money.New(0, currency)
	byCategory := make(map[string]int64)
	byMonth := make(map[string]*MonthTotal)

	for _, e := range expenses {
		if e.Amount.Currency != currency {
			continue
		}
		totalExpenses = money.New(totalExpenses.Amount+e.Amount.Amount, currency)
		byCategory[e.Category] += e.Amount.Amount
		m := monthOf(e.Date, byMonth, currency)
		m.Expenses = money.New(m.Expenses.Amount+e.Amount.Amount, currency)
	}
	for _, i := range income {
		if i.Amount.Currency != currency {
			continue
		}
		totalIncome = money.New(totalIncome.Amount+i.Amount.Amount, currency)
		m := monthOf(i.Date, byMonth, currency)
		m.Income = money.New(m.Income.Amount+i.Amount.Amount, currency)
	}

	categories := make([]CategoryTotal, 0, len(byCategory))
	for cat, total := range byCategory {
		var pct float64
		if totalExpenses.Amount > 0 {
			pct = float64(total) / float64(totalExpenses.Amount) * 100
		}
		categories = append(categories, CategoryTotal{
			Category:   cat,
			Total:      money.New(total, currency),
			Percentage: pct,
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Total.Amount != categories[j].Total.Amount {
			return categories[i].Total.Amount > categories[j].Total.Amount
		}
		return categories[i].Category < categories[j].Category
	})

	trend := make([]MonthTotal, 0, len(byMonth))
	for _, m := range byMonth {
		trend = append(trend, *m)
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Month < trend[j].Month })

	net := money.New(totalIncome.Amount-totalExpenses.Amount, currency)
	var savingsRate float64
	if totalIncome.Amount > 0 {
		savingsRate = float64(net.Amount) / float64(totalIncome.Amount) * 100
	}

	return &Summary{
		From:          from,
		To:            to,
		TotalExpenses: totalExpenses,
		TotalIncome:   totalIncome,
		Net:           net,
		SavingsRate:   savingsRate,
		Categories:    categories,
		Trend:         trend,
	}, nil
}

func monthOf(date int64, byMonth map[string]*MonthTotal, currency string) *MonthTotal {
	key := time.Unix(date, 0).Format("2006-01")
	m, ok := byMonth[key]
	if !ok {
		m = &MonthTotal{
			Month:    key,
			Expenses: money.New(0, currency),
			Income:   money.New(0, currency),
		}
		byMonth[key] = m
	}
	return m
}
