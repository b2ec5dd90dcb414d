package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

func TestStats(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	dueLater := pendingReminder(today, "18:00") // pending, due today, unread
	dueLater.ID = "due-later"

	missed := pendingReminder(yesterday, "08:00") // overdue, unread
	missed.ID = "missed"

	upcoming := pendingReminder(tomorrow, "08:00") // pending, read
	upcoming.ID = "upcoming"
	upcoming.IsRead = true

	finishedAt := noon.Add(-time.Hour)
	finished := pendingReminder(today, "09:00") // completed, read
	finished.ID = "finished"
	finished.Status = model.ReminderStatusCompleted
	finished.CompletedAt = &finishedAt
	finished.IsRead = true

	reminders := []model.Reminder{dueLater, missed, upcoming, finished}

	warnings := testWarnings() // frost: active critical unread; aphids: active medium unread; pump: dismissed unread

	s := Stats(reminders, warnings, noon)

	require.Equal(t, 3, s.PendingReminders, "pending counts pending plus overdue")
	require.Equal(t, 1, s.OverdueReminders)
	require.Equal(t, 2, s.ActiveWarnings)
	require.Equal(t, 1, s.CriticalWarnings)
	require.Equal(t, 5, s.Unread, "two unread reminders plus three unread warnings")
	require.Equal(t, 1, s.DueToday, "only due-later falls on today; completed excluded")
}

func TestStatsEmptyCollections(t *testing.T) {
	require.Equal(t, Summary{}, Stats(nil, nil, noon))
}
