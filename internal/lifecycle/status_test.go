package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

// noon is the fixed reference time used across the lifecycle tests.
var noon = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func pendingReminder(dueDate time.Time, dueTime string) model.Reminder {
	return model.Reminder{
		ID:       "rem-1",
		Title:    "Irrigate field A",
		Category: model.ReminderCategoryActivity,
		Priority: model.PriorityMedium,
		Status:   model.ReminderStatusPending,
		DueDate:  dueDate,
		DueTime:  dueTime,
		Channels: []model.Channel{model.ChannelInApp},
	}
}

func TestEffectiveStatus(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	yesterday := day.AddDate(0, 0, -1)
	tomorrow := day.AddDate(0, 0, 1)

	snoozedFuture := noon.Add(2 * time.Hour)
	snoozedPast := noon.Add(-2 * time.Hour)
	completedAt := noon.Add(-time.Hour)

	cases := []struct {
		name string
		mod  func(*model.Reminder)
		want model.ReminderStatus
	}{
		{
			name: "pending with future due stays pending",
			mod:  func(r *model.Reminder) { r.DueDate = tomorrow },
			want: model.ReminderStatusPending,
		},
		{
			name: "pending past due presents as overdue",
			mod:  func(r *model.Reminder) { r.DueDate = yesterday },
			want: model.ReminderStatusOverdue,
		},
		{
			name: "pending due exactly now presents as overdue",
			mod:  func(r *model.Reminder) { r.DueDate = day; r.DueTime = "12:00" },
			want: model.ReminderStatusOverdue,
		},
		{
			name: "active snooze holds snoozed",
			mod: func(r *model.Reminder) {
				r.DueDate = yesterday
				r.Status = model.ReminderStatusSnoozed
				r.SnoozedUntil = &snoozedFuture
			},
			want: model.ReminderStatusSnoozed,
		},
		{
			name: "elapsed snooze with future due re-evaluates as pending",
			mod: func(r *model.Reminder) {
				r.DueDate = tomorrow
				r.Status = model.ReminderStatusSnoozed
				r.SnoozedUntil = &snoozedPast
			},
			want: model.ReminderStatusPending,
		},
		{
			name: "elapsed snooze with past due presents as overdue",
			mod: func(r *model.Reminder) {
				r.DueDate = yesterday
				r.Status = model.ReminderStatusSnoozed
				r.SnoozedUntil = &snoozedPast
			},
			want: model.ReminderStatusOverdue,
		},
		{
			name: "completed is unchanged",
			mod: func(r *model.Reminder) {
				r.DueDate = yesterday
				r.Status = model.ReminderStatusCompleted
				r.CompletedAt = &completedAt
			},
			want: model.ReminderStatusCompleted,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := pendingReminder(day, "09:00")
			tc.mod(&r)
			require.Equal(t, tc.want, EffectiveStatus(r, noon))
		})
	}
}

func TestEffectiveStatusDoesNotMutate(t *testing.T) {
	r := pendingReminder(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), "08:00")

	require.Equal(t, model.ReminderStatusOverdue, EffectiveStatus(r, noon))
	require.Equal(t, model.ReminderStatusPending, r.Status)

	// Re-deriving with a different now still works off raw state.
	earlier := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)
	require.Equal(t, model.ReminderStatusPending, EffectiveStatus(r, earlier))
}

func TestIsDueTodayTracksOverdueSameDay(t *testing.T) {
	// Due today one hour from now: pending and due today.
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	r := pendingReminder(today, "13:00")
	r.Priority = model.PriorityCritical

	require.True(t, IsDueToday(r, noon))
	require.Equal(t, model.ReminderStatusPending, EffectiveStatus(r, noon))

	// Two hours later the due time has passed: overdue, still due today.
	later := noon.Add(2 * time.Hour)
	require.Equal(t, model.ReminderStatusOverdue, EffectiveStatus(r, later))
	require.True(t, IsDueToday(r, later))
}

func TestIsDueToday(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	r := pendingReminder(today.AddDate(0, 0, 1), "09:00")
	require.False(t, IsDueToday(r, noon), "tomorrow is not today")

	r = pendingReminder(today, "09:00")
	completed := noon
	r.Status = model.ReminderStatusCompleted
	r.CompletedAt = &completed
	require.False(t, IsDueToday(r, noon), "completed reminders are not due")

	until := noon.Add(4 * time.Hour)
	r = pendingReminder(today, "18:00")
	r.Status = model.ReminderStatusSnoozed
	r.SnoozedUntil = &until
	require.False(t, IsDueToday(r, noon), "actively snoozed reminders are not due")
}
