package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Hemanth040/farm-management-system/internal/lifecycle"
	"github.com/Hemanth040/farm-management-system/internal/model"
)

const historyColumns = `id, entity_kind, entity_id, action, title, actor, note,
	completed_at, snoozed_at, rescheduled_at, dismissed_at, resolved_at,
	snooze_duration, rescheduled_from, rescheduled_to`

// AppendHistory inserts an audit record. Generates a UUID if ID is empty.
func (s *SQLiteStore) AppendHistory(ctx context.Context, rec model.HistoryRecord) error {
	return s.appendHistoryExec(ctx, s.db, rec)
}

func (s *SQLiteStore) appendHistoryExec(ctx context.Context, e execer, rec model.HistoryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	_, err := e.ExecContext(ctx, `
		INSERT INTO history (
			id, entity_kind, entity_id, action, title, actor, note,
			completed_at, snoozed_at, rescheduled_at, dismissed_at, resolved_at,
			snooze_duration, rescheduled_from, rescheduled_to
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.EntityKind), rec.EntityID, string(rec.Action),
		rec.Title, rec.Actor, rec.Note,
		utcPtr(rec.CompletedAt), utcPtr(rec.SnoozedAt), utcPtr(rec.RescheduledAt),
		utcPtr(rec.DismissedAt), utcPtr(rec.ResolvedAt),
		rec.SnoozeDuration, utcPtr(rec.RescheduledFrom), utcPtr(rec.RescheduledTo),
	)
	if err != nil {
		return fmt.Errorf("appending history record %s: %w", rec.ID, err)
	}
	return nil
}

// GetHistory retrieves audit records most-recent-first. A limit of 0
// returns everything.
func (s *SQLiteStore) GetHistory(ctx context.Context, limit int) ([]model.HistoryRecord, error) {
	query := "SELECT " + historyColumns + ` FROM history
		ORDER BY COALESCE(completed_at, snoozed_at, rescheduled_at, dismissed_at, resolved_at) DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []model.HistoryRecord
	for rows.Next() {
		var (
			rec    model.HistoryRecord
			kind   string
			action string
		)
		err := rows.Scan(
			&rec.ID, &kind, &rec.EntityID, &action, &rec.Title, &rec.Actor, &rec.Note,
			&rec.CompletedAt, &rec.SnoozedAt, &rec.RescheduledAt,
			&rec.DismissedAt, &rec.ResolvedAt,
			&rec.SnoozeDuration, &rec.RescheduledFrom, &rec.RescheduledTo,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning history record: %w", err)
		}
		rec.EntityKind = model.EntityKind(kind)
		rec.Action = model.HistoryAction(action)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ApplyReminderTransition persists an updated reminder together with its
// audit record in one transaction.
func (s *SQLiteStore) ApplyReminderTransition(ctx context.Context, r model.Reminder, rec model.HistoryRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transition tx: %w", err)
	}
	defer tx.Rollback()

	result, err := s.updateReminderExec(ctx, tx, r)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return lifecycle.NotFoundError{Kind: model.EntityKindReminder, ID: r.ID}
	}
	if err := s.appendHistoryExec(ctx, tx, rec); err != nil {
		return err
	}
	return tx.Commit()
}

// ApplyWarningTransition persists an updated warning together with its
// audit record in one transaction.
func (s *SQLiteStore) ApplyWarningTransition(ctx context.Context, w model.Warning, rec model.HistoryRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transition tx: %w", err)
	}
	defer tx.Rollback()

	result, err := s.updateWarningExec(ctx, tx, w)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return lifecycle.NotFoundError{Kind: model.EntityKindWarning, ID: w.ID}
	}
	if err := s.appendHistoryExec(ctx, tx, rec); err != nil {
		return err
	}
	return tx.Commit()
}
