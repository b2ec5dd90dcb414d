package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hemanth040/farm-management-system/internal/lifecycle"
	"github.com/Hemanth040/farm-management-system/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "farmdash.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReminder() model.Reminder {
	crop := "wheat-7"
	return model.Reminder{
		ID:          "rem-1",
		Title:       "Irrigate north field",
		Description: "Morning run, 40 minutes",
		Category:    model.ReminderCategoryActivity,
		Subtype:     "irrigation",
		CropID:      &crop,
		DueDate:     time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		DueTime:     "06:30",
		Priority:    model.PriorityHigh,
		Status:      model.ReminderStatusPending,
		Recurrence:  model.RecurrenceDaily,
		Recurring:   true,
		CreatedAt:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		Channels:    []model.Channel{model.ChannelInApp, model.ChannelPush},
		Notes:       "check pump pressure first",
		Provenance:  model.Provenance{AutoGenerated: false, Source: "manual"},
	}
}

func sampleWarning() model.Warning {
	return model.Warning{
		ID:          "warn-1",
		Title:       "Frost risk tonight",
		Description: "Temperatures below -2C expected",
		Category:    model.WarningCategoryWeather,
		Severity:    model.SeverityCritical,
		Status:      model.WarningStatusActive,
		AffectedTargets: []model.AffectedTarget{
			{TargetID: "wheat-7", Name: "Wheat, north field", Impact: "seedling damage"},
		},
		RecommendedActions: []string{"cover seedlings", "delay irrigation"},
		GeneratedAt:        time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC),
		ExpiresAt:          time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC),
		PriorityScore:      92,
		Provenance:         model.Provenance{AutoGenerated: true, Source: "weather_service"},
	}
}

func TestReminderRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	want := sampleReminder()
	require.NoError(t, s.CreateReminder(ctx, want))

	got, err := s.GetReminderByID(ctx, want.ID)
	require.NoError(t, err)

	require.Equal(t, want.Title, got.Title)
	require.Equal(t, want.Category, got.Category)
	require.Equal(t, want.Priority, got.Priority)
	require.Equal(t, want.Status, got.Status)
	require.Equal(t, want.DueTime, got.DueTime)
	require.Equal(t, want.Channels, got.Channels)
	require.Equal(t, want.Provenance, got.Provenance)
	require.NotNil(t, got.CropID)
	require.Equal(t, "wheat-7", *got.CropID)
	require.True(t, want.DueDate.Equal(got.DueDate))
}

func TestGetReminderByIDNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetReminderByID(context.Background(), "missing")
	require.Error(t, err)
	require.True(t, lifecycle.IsNotFound(err))
}

func TestUpdateReminder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r := sampleReminder()
	require.NoError(t, s.CreateReminder(ctx, r))

	completedAt := time.Date(2025, 3, 14, 7, 0, 0, 0, time.UTC)
	r.Status = model.ReminderStatusCompleted
	r.CompletedAt = &completedAt
	r.IsRead = true
	require.NoError(t, s.UpdateReminder(ctx, r))

	got, err := s.GetReminderByID(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, model.ReminderStatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	require.True(t, completedAt.Equal(*got.CompletedAt))
	require.True(t, got.IsRead)

	r.ID = "missing"
	err = s.UpdateReminder(ctx, r)
	require.True(t, lifecycle.IsNotFound(err))
}

func TestDeleteReminder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r := sampleReminder()
	require.NoError(t, s.CreateReminder(ctx, r))
	require.NoError(t, s.DeleteReminder(ctx, r.ID))

	_, err := s.GetReminderByID(ctx, r.ID)
	require.True(t, lifecycle.IsNotFound(err))

	require.True(t, lifecycle.IsNotFound(s.DeleteReminder(ctx, r.ID)))
}

func TestWarningRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	want := sampleWarning()
	require.NoError(t, s.CreateWarning(ctx, want))

	got, err := s.GetWarningByID(ctx, want.ID)
	require.NoError(t, err)

	require.Equal(t, want.Title, got.Title)
	require.Equal(t, want.Severity, got.Severity)
	require.Equal(t, want.Status, got.Status)
	require.Equal(t, want.AffectedTargets, got.AffectedTargets)
	require.Equal(t, want.RecommendedActions, got.RecommendedActions)
	require.Equal(t, want.PriorityScore, got.PriorityScore)
	require.Equal(t, want.Provenance, got.Provenance)
}

func TestApplyReminderTransitionIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r := sampleReminder()
	require.NoError(t, s.CreateReminder(ctx, r))

	now := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	updated, record, err := lifecycle.SnoozeReminder(r, 3*time.Hour, "jo", "", now)
	require.NoError(t, err)

	require.NoError(t, s.ApplyReminderTransition(ctx, updated, record))

	got, err := s.GetReminderByID(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, model.ReminderStatusSnoozed, got.Status)
	require.NotNil(t, got.SnoozedUntil)

	records, err := s.GetHistory(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, model.HistoryActionSnoozed, records[0].Action)
	require.Equal(t, "3 hours", records[0].SnoozeDuration)
	require.Equal(t, r.ID, records[0].EntityID)
}

func TestApplyReminderTransitionRollsBackOnMissingEntity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r := sampleReminder()
	now := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	updated, record, err := lifecycle.SnoozeReminder(r, time.Hour, "jo", "", now)
	require.NoError(t, err)

	// The reminder was never stored: the transition must fail and the
	// history insert must not survive.
	err = s.ApplyReminderTransition(ctx, updated, record)
	require.True(t, lifecycle.IsNotFound(err))

	records, err := s.GetHistory(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestHistoryOrderingMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	w := sampleWarning()
	require.NoError(t, s.CreateWarning(ctx, w))
	r := sampleReminder()
	require.NoError(t, s.CreateReminder(ctx, r))

	t1 := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	snoozed, rec1, err := lifecycle.SnoozeReminder(r, time.Hour, "jo", "", t1)
	require.NoError(t, err)
	require.NoError(t, s.ApplyReminderTransition(ctx, snoozed, rec1))

	resolved, rec2, err := lifecycle.ResolveWarning(w, "jo", "covered", t2)
	require.NoError(t, err)
	require.NoError(t, s.ApplyWarningTransition(ctx, resolved, rec2))

	records, err := s.GetHistory(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, model.HistoryActionResolved, records[0].Action)
	require.Equal(t, model.HistoryActionSnoozed, records[1].Action)

	limited, err := s.GetHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Unsaved settings come back as defaults.
	got, err := s.GetSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, model.DefaultNotificationSettings(), got)

	want := model.DefaultNotificationSettings()
	want.Channels.SMS = false
	want.QuietHours.Enabled = true
	want.QuietHours.Start = "21:30"
	want.DefaultSnooze = 2 * time.Hour
	want.PriorityMatrix[model.PriorityLow] = []model.Channel{model.ChannelInApp, model.ChannelEmail}

	require.NoError(t, s.SaveSettings(ctx, want))

	got, err = s.GetSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)

	// Saving again overwrites the single row.
	want.QuietHours.Enabled = false
	require.NoError(t, s.SaveSettings(ctx, want))
	got, err = s.GetSettings(ctx)
	require.NoError(t, err)
	require.False(t, got.QuietHours.Enabled)
}
