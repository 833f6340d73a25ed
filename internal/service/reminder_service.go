package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/pennywiseapp/pennywise/internal/models"
	"github.com/pennywiseapp/pennywise/internal/storage"
)

// ReminderStatus describes where a reminder sits relative to now.
type ReminderStatus string

const (
	ReminderOverdue  ReminderStatus = "overdue"
	ReminderDueToday ReminderStatus = "today"
	ReminderUpcoming ReminderStatus = "upcoming"
	ReminderDone     ReminderStatus = "done"
)

// ReminderView is a reminder with its derived status.
type ReminderView struct {
	*models.Reminder
	Status ReminderStatus `json:"status"`
}

// ReminderService manages dated payment reminders, including recurring
// ones whose due date rolls forward on completion.
type ReminderService struct {
	store storage.Store

	// now is swapped in tests.
	now func() time.Time
}

// NewReminderService creates a new ReminderService with the given
// storage backend.
func NewReminderService(store storage.Store) *ReminderService {
	return &ReminderService{store: store, now: time.Now}
}

// CreateReminder validates and persists a reminder for the caller.
func (s *ReminderService) CreateReminder(ctx context.Context, userID string, reminder *models.Reminder) (*models.Reminder, error) {
	if reminder.Title == "" || reminder.DueDate == 0 {
		return nil, ErrInvalidInput
	}
	if reminder.Recurring == "" {
		reminder.Recurring = models.RecurringNone
	}
	reminder.UserID = userID
	if err := s.store.CreateReminder(ctx, reminder); err != nil {
		slog.Error("CreateReminder failed", "user_id", userID, "error", err)
		return nil, err
	}
	return reminder, nil
}

// ListReminders returns the caller's reminders with derived statuses,
// soonest due first.
func (s *ReminderService) ListReminders(ctx context.Context, userID string) ([]*ReminderView, error) {
	reminders, err := s.store.ListReminders(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*ReminderView, 0, len(reminders))
	for _, r := range reminders {
		views = append(views, &ReminderView{Reminder: r, Status: s.statusOf(r)})
	}
	return views, nil
}

// UpdateReminder rewrites one of the caller's reminders.
func (s *ReminderService) UpdateReminder(ctx context.Context, userID string, reminder *models.Reminder) (*models.Reminder, error) {
	existing, err := s.store.GetReminder(ctx, reminder.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrForbidden
	}
	if reminder.Title == "" || reminder.DueDate == 0 {
		return nil, ErrInvalidInput
	}
	reminder.UserID = userID
	reminder.CreatedAt = existing.CreatedAt
	if err := s.store.UpdateReminder(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// CompleteReminder marks a reminder done. A recurring reminder is not
// closed; its due date advances one period instead.
func (s *ReminderService) CompleteReminder(ctx context.Context, userID, reminderID string) (*models.Reminder, error) {
	reminder, err := s.store.GetReminder(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	if reminder.UserID != userID {
		return nil, ErrForbidden
	}

	if reminder.Recurring != models.RecurringNone && reminder.Recurring != "" {
		reminder.DueDate = nextDueDate(reminder.DueDate, reminder.Recurring)
	} else {
		reminder.Completed = true
	}

	if err := s.store.UpdateReminder(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// DeleteReminder removes one of the caller's reminders.
func (s *ReminderService) DeleteReminder(ctx context.Context, userID, reminderID string) error {
	existing, err := s.store.GetReminder(ctx, reminderID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrForbidden
	}
	return s.store.DeleteReminder(ctx, reminderID)
}

// SweepOverdue logs every open reminder past due. It runs on a schedule
// from the cron sweeper and returns what it found.
func (s *ReminderService) SweepOverdue(ctx context.Context) ([]*models.Reminder, error) {
	due, err := s.store.ListDueReminders(ctx, s.now().Unix())
	if err != nil {
		return nil, err
	}
	for _, r := range due {
		slog.Info("Reminder overdue", "reminder_id", r.ID, "user_id", r.UserID, "title", r.Title)
	}
	return due, nil
}

func (s *ReminderService) statusOf(r *models.Reminder) ReminderStatus {
	if r.Completed {
		return ReminderDone
	}
	now := s.now()
	due := time.Unix(r.DueDate, 0)
	ny, nm, nd := now.Date()
	dy, dm, dd := due.Date()
	switch {
	case dy == ny && dm == nm && dd == nd:
		return ReminderDueToday
	case due.Before(now):
		return ReminderOverdue
	default:
		return ReminderUpcoming
	}
}

// nextDueDate advances a due date by one recurrence period.
func nextDueDate(due int64, recurring models.RecurringType) int64 {
	t := time.Unix(due, 0)
	switch recurring {
	case models.RecurringDaily:
		t = t.AddDate(0, 0, 1)
	case models.RecurringWeekly:
		t = t.AddDate(0, 0, 7)
	case models.RecurringMonthly:
		t = t.AddDate(0, 1, 0)
	case models.RecurringYearly:
		t = t.AddDate(1, 0, 0)
	}
	return t.Unix()
}
