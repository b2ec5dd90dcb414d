package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Hemanth040/farm-management-system/internal/lifecycle"
	"github.com/Hemanth040/farm-management-system/internal/model"
)

const reminderColumns = `id, title, description, category, subtype, crop_id,
	due_date, due_time, priority, status, recurring, recurrence,
	snoozed_until, completed_at, created_at, channels, is_read, notes,
	auto_generated, source`

// CreateReminder inserts a new reminder. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateReminder(ctx context.Context, r model.Reminder) error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("reminder title must not be empty")
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = model.ReminderStatusPending
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	channels, err := json.Marshal(r.Channels)
	if err != nil {
		return fmt.Errorf("marshaling channels for reminder %s: %w", r.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reminders (
			id, title, description, category, subtype, crop_id,
			due_date, due_time, priority, status, recurring, recurrence,
			snoozed_until, completed_at, created_at, channels, is_read, notes,
			auto_generated, source
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Description, string(r.Category), r.Subtype, r.CropID,
		r.DueDate.UTC(), r.DueTime, string(r.Priority), string(r.Status),
		r.Recurring, string(r.Recurrence),
		utcPtr(r.SnoozedUntil), utcPtr(r.CompletedAt), r.CreatedAt.UTC(),
		string(channels), r.IsRead, r.Notes,
		r.Provenance.AutoGenerated, r.Provenance.Source,
	)
	if err != nil {
		return fmt.Errorf("creating reminder %s: %w", r.ID, err)
	}
	return nil
}

// UpdateReminder updates an existing reminder by ID.
func (s *SQLiteStore) UpdateReminder(ctx context.Context, r model.Reminder) error {
	result, err := s.updateReminderExec(ctx, s.db, r)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return lifecycle.NotFoundError{Kind: model.EntityKindReminder, ID: r.ID}
	}
	return nil
}

// execer covers both *sqlx.DB and *sqlx.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (s *SQLiteStore) updateReminderExec(ctx context.Context, e execer, r model.Reminder) (sql.Result, error) {
	channels, err := json.Marshal(r.Channels)
	if err != nil {
		return nil, fmt.Errorf("marshaling channels for reminder %s: %w", r.ID, err)
	}

	result, err := e.ExecContext(ctx, `
		UPDATE reminders SET
			title = ?, description = ?, category = ?, subtype = ?, crop_id = ?,
			due_date = ?, due_time = ?, priority = ?, status = ?,
			recurring = ?, recurrence = ?,
			snoozed_until = ?, completed_at = ?, channels = ?, is_read = ?, notes = ?
		WHERE id = ?`,
		r.Title, r.Description, string(r.Category), r.Subtype, r.CropID,
		r.DueDate.UTC(), r.DueTime, string(r.Priority), string(r.Status),
		r.Recurring, string(r.Recurrence),
		utcPtr(r.SnoozedUntil), utcPtr(r.CompletedAt), string(channels), r.IsRead, r.Notes,
		r.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating reminder %s: %w", r.ID, err)
	}
	return result, nil
}

// DeleteReminder removes a reminder by ID. Removal is a collaborator-level
// operation: the lifecycle engine itself never deletes.
func (s *SQLiteStore) DeleteReminder(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reminders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting reminder %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return lifecycle.NotFoundError{Kind: model.EntityKindReminder, ID: id}
	}
	return nil
}

// GetReminderByID retrieves a single reminder by ID.
func (s *SQLiteStore) GetReminderByID(ctx context.Context, id string) (*model.Reminder, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT "+reminderColumns+" FROM reminders WHERE id = ?", id)

	r, err := scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lifecycle.NotFoundError{Kind: model.EntityKindReminder, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("getting reminder %s: %w", id, err)
	}
	return &r, nil
}

// GetReminders retrieves all reminders ordered by creation time.
// Filtering and ranking belong to the lifecycle package.
func (s *SQLiteStore) GetReminders(ctx context.Context) ([]model.Reminder, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+reminderColumns+" FROM reminders ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("querying reminders: %w", err)
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning reminder: %w", err)
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// rowScanner abstracts *sqlx.Row and *sqlx.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReminder(row rowScanner) (model.Reminder, error) {
	var (
		r            model.Reminder
		category     string
		priority     string
		status       string
		recurrence   string
		channelsJSON string
	)
	err := row.Scan(
		&r.ID, &r.Title, &r.Description, &category, &r.Subtype, &r.CropID,
		&r.DueDate, &r.DueTime, &priority, &status, &r.Recurring, &recurrence,
		&r.SnoozedUntil, &r.CompletedAt, &r.CreatedAt, &channelsJSON,
		&r.IsRead, &r.Notes,
		&r.Provenance.AutoGenerated, &r.Provenance.Source,
	)
	if err != nil {
		return model.Reminder{}, err
	}

	r.Category = model.ReminderCategory(category)
	r.Priority = model.Priority(priority)
	r.Status = model.ReminderStatus(status)
	r.Recurrence = model.Recurrence(recurrence)

	if err := json.Unmarshal([]byte(channelsJSON), &r.Channels); err != nil {
		return model.Reminder{}, fmt.Errorf("unmarshaling channels: %w", err)
	}
	return r, nil
}

// utcPtr normalizes an optional timestamp to UTC for storage.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
