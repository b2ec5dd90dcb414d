package store

import (
	"context"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

// Store defines the persistence interface for reminders, warnings, the
// audit history, and notification settings.
//
// The store holds rows and nothing else: derived status, ranking,
// filtering, and transition rules live in the lifecycle package, which
// operates over collections loaded from here.
type Store interface {
	// === Reminders ===

	CreateReminder(ctx context.Context, r model.Reminder) error
	UpdateReminder(ctx context.Context, r model.Reminder) error
	DeleteReminder(ctx context.Context, id string) error
	GetReminderByID(ctx context.Context, id string) (*model.Reminder, error)
	GetReminders(ctx context.Context) ([]model.Reminder, error)

	// === Warnings ===

	CreateWarning(ctx context.Context, w model.Warning) error
	UpdateWarning(ctx context.Context, w model.Warning) error
	GetWarningByID(ctx context.Context, id string) (*model.Warning, error)
	GetWarnings(ctx context.Context) ([]model.Warning, error)

	// === History ===

	AppendHistory(ctx context.Context, rec model.HistoryRecord) error
	GetHistory(ctx context.Context, limit int) ([]model.HistoryRecord, error)

	// === Transitions ===

	// ApplyReminderTransition persists an updated reminder and its audit
	// record in one transaction, so no caller ever observes one without
	// the other.
	ApplyReminderTransition(ctx context.Context, r model.Reminder, rec model.HistoryRecord) error

	// ApplyWarningTransition persists an updated warning and its audit
	// record in one transaction.
	ApplyWarningTransition(ctx context.Context, w model.Warning, rec model.HistoryRecord) error

	// === Settings ===

	GetSettings(ctx context.Context) (model.NotificationSettings, error)
	SaveSettings(ctx context.Context, settings model.NotificationSettings) error
}
