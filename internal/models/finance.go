package models

import "github.com/pennywiseapp/pennywise/internal/money"

// RecurringType is the repeat cadence for expenses, income and reminders.
type RecurringType string

const (
	RecurringNone    RecurringType = "none"
	RecurringDaily   RecurringType = "daily"
	RecurringWeekly  RecurringType = "weekly"
	RecurringMonthly RecurringType = "monthly"
	RecurringYearly  RecurringType = "yearly"
)

// Expense is a single outgoing cash-flow entry.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// UserID is the owner of the record.
	UserID string `json:"user_id"`

	Description string      `json:"description"`
	Amount      money.Money `json:"amount"`
	Category    string      `json:"category"`

	// Date is the Unix timestamp the expense occurred (not when it was
	// entered).
	Date int64 `json:"date"`

	Notes string   `json:"notes,omitempty"`
	Tags  []string `json:"tags,omitempty"`

	Recurring     bool          `json:"recurring"`
	RecurringType RecurringType `json:"recurring_type,omitempty"`

	// GroupID optionally ties the expense to a group for splitting.
	GroupID string `json:"group_id,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Income is a single incoming cash-flow entry.
type Income struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	// Source is where the money came from (e.g., "Salary", "Freelance").
	Source   string      `json:"source"`
	Amount   money.Money `json:"amount"`
	Category string      `json:"category,omitempty"`
	Date     int64       `json:"date"`
	Notes    string      `json:"notes,omitempty"`

	Recurring     bool          `json:"recurring"`
	RecurringType RecurringType `json:"recurring_type,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Budget is a per-category spending limit for one month.
type Budget struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	Category string      `json:"category"`
	Amount   money.Money `json:"amount"`

	// Month is the budget period in YYYY-MM format.
	Month string `json:"month"`

	// AlertThreshold is the spent percentage (e.g. 80) at which a
	// threshold alert fires. Zero disables threshold alerts.
	AlertThreshold float64 `json:"alert_threshold,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// BudgetAlertType distinguishes why a budget alert was raised.
type BudgetAlertType string

const (
	BudgetAlertThreshold BudgetAlertType = "threshold"
	BudgetAlertExceeded  BudgetAlertType = "exceeded"
)

// BudgetAlert is a notification row raised when spending crosses a
// budget's threshold or exceeds the budget outright.
type BudgetAlert struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id"`
	BudgetID string          `json:"budget_id"`
	Type     BudgetAlertType `json:"type"`
	Message  string          `json:"message"`
	Read     bool            `json:"read"`

	CreatedAt int64 `json:"created_at"`
}

// Reminder is a dated task, optionally recurring. Completing a recurring
// reminder rolls its due date forward instead of closing it.
type Reminder struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	Title string `json:"title"`
	Notes string `json:"notes,omitempty"`

	// DueDate is the Unix timestamp the reminder is due.
	DueDate   int64         `json:"due_date"`
	Completed bool          `json:"completed"`
	Recurring RecurringType `json:"recurring"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
