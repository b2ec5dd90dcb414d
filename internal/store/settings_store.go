package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

// GetSettings loads the single notification settings row. Defaults are
// returned when no row has been saved yet.
func (s *SQLiteStore) GetSettings(ctx context.Context) (model.NotificationSettings, error) {
	row := s.db.QueryRowxContext(ctx, `
		SELECT inapp, push, sms, email,
			quiet_enabled, quiet_start, quiet_end,
			priority_matrix, default_snooze_sec
		FROM notification_settings WHERE id = 1`)

	var (
		settings   model.NotificationSettings
		matrixJSON string
		snoozeSec  int
	)
	err := row.Scan(
		&settings.Channels.InApp, &settings.Channels.Push,
		&settings.Channels.SMS, &settings.Channels.Email,
		&settings.QuietHours.Enabled, &settings.QuietHours.Start, &settings.QuietHours.End,
		&matrixJSON, &snoozeSec,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultNotificationSettings(), nil
	}
	if err != nil {
		return model.NotificationSettings{}, fmt.Errorf("getting settings: %w", err)
	}

	settings.DefaultSnooze = time.Duration(snoozeSec) * time.Second
	settings.PriorityMatrix = map[model.Priority][]model.Channel{}
	if err := json.Unmarshal([]byte(matrixJSON), &settings.PriorityMatrix); err != nil {
		return model.NotificationSettings{}, fmt.Errorf("unmarshaling priority matrix: %w", err)
	}
	if len(settings.PriorityMatrix) == 0 {
		settings.PriorityMatrix = model.DefaultNotificationSettings().PriorityMatrix
	}
	return settings, nil
}

// SaveSettings upserts the single notification settings row.
func (s *SQLiteStore) SaveSettings(ctx context.Context, settings model.NotificationSettings) error {
	matrix, err := json.Marshal(settings.PriorityMatrix)
	if err != nil {
		return fmt.Errorf("marshaling priority matrix: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO notification_settings (
			id, inapp, push, sms, email,
			quiet_enabled, quiet_start, quiet_end,
			priority_matrix, default_snooze_sec
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			inapp = excluded.inapp,
			push = excluded.push,
			sms = excluded.sms,
			email = excluded.email,
			quiet_enabled = excluded.quiet_enabled,
			quiet_start = excluded.quiet_start,
			quiet_end = excluded.quiet_end,
			priority_matrix = excluded.priority_matrix,
			default_snooze_sec = excluded.default_snooze_sec`,
		settings.Channels.InApp, settings.Channels.Push,
		settings.Channels.SMS, settings.Channels.Email,
		settings.QuietHours.Enabled, settings.QuietHours.Start, settings.QuietHours.End,
		string(matrix), int(settings.DefaultSnooze/time.Second),
	)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
