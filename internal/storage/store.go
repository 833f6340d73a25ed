// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/pennywiseapp/pennywise/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict is returned when a write carries a stale
	// version. The caller should re-read and retry.
	ErrVersionConflict = errors.New("record was modified concurrently")
)

// ExpenseFilter narrows expense listings. Zero fields match everything.
type ExpenseFilter struct {
	Category string
	GroupID  string
	// From and To bound the expense date (Unix seconds, inclusive).
	From int64
	To   int64
}

// Store defines the persistence operations the services need.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Expenses
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, id string) (*models.Expense, error)
	ListExpenses(ctx context.Context, userID string, filter ExpenseFilter) ([]*models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id string) error

	// Income
	CreateIncome(ctx context.Context, income *models.Income) error
	ListIncome(ctx context.Context, userID string, from, to int64) ([]*models.Income, error)
	UpdateIncome(ctx context.Context, income *models.Income) error
	DeleteIncome(ctx context.Context, id string) error

	// Budgets
	CreateBudget(ctx context.Context, budget *models.Budget) error
	GetBudget(ctx context.Context, id string) (*models.Budget, error)
	ListBudgets(ctx context.Context, userID, month string) ([]*models.Budget, error)
	UpdateBudget(ctx context.Context, budget *models.Budget) error
	DeleteBudget(ctx context.Context, id string) error
	CreateBudgetAlert(ctx context.Context, alert *models.BudgetAlert) error
	ListBudgetAlerts(ctx context.Context, userID string) ([]*models.BudgetAlert, error)
	MarkBudgetAlertRead(ctx context.Context, id string) error

	// Reminders
	CreateReminder(ctx context.Context, reminder *models.Reminder) error
	GetReminder(ctx context.Context, id string) (*models.Reminder, error)
	ListReminders(ctx context.Context, userID string) ([]*models.Reminder, error)
	ListDueReminders(ctx context.Context, before int64) ([]*models.Reminder, error)
	UpdateReminder(ctx context.Context, reminder *models.Reminder) error
	DeleteReminder(ctx context.Context, id string) error

	// Friends
	CreateFriend(ctx context.Context, friend *models.Friend) error
	GetFriend(ctx context.Context, id string) (*models.Friend, error)
	ListFriends(ctx context.Context, userID string, status models.FriendStatus) ([]*models.Friend, error)
	// ListIncomingFriendRequests returns pending edges addressed to the user.
	ListIncomingFriendRequests(ctx context.Context, userID string) ([]*models.Friend, error)
	UpdateFriendStatus(ctx context.Context, id string, status models.FriendStatus) error

	// Groups
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)
	AddGroupMembers(ctx context.Context, groupID string, memberIDs []string) error
	RemoveGroupMember(ctx context.Context, groupID, memberID string) error

	// Splits
	CreateSplit(ctx context.Context, record *models.SplitRecord) error
	GetSplit(ctx context.Context, id string) (*models.SplitRecord, error)
	// ListSplitsForUser returns every split where the user is creator or
	// participant (the participant-membership query).
	ListSplitsForUser(ctx context.Context, userID string) ([]*models.SplitRecord, error)
	// UpdateSplitStatus persists participant status flags. The record's
	// Version must be exactly one ahead of the stored version;
	// ErrVersionConflict otherwise.
	UpdateSplitStatus(ctx context.Context, record *models.SplitRecord) error
	DeleteSplit(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
