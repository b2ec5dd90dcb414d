package sync

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hemanth040/farm-management-system/internal/model"
	"github.com/Hemanth040/farm-management-system/internal/notify"
	"github.com/Hemanth040/farm-management-system/internal/store"
)

type recordingAdapter struct {
	channel model.Channel
	sent    []notify.Notification
}

func (a *recordingAdapter) Channel() model.Channel { return a.channel }

func (a *recordingAdapter) Send(_ context.Context, n notify.Notification) error {
	a.sent = append(a.sent, n)
	return nil
}

func newTestScheduler(t *testing.T, adapters ...notify.Adapter) (*Scheduler, *recordingAdapter) {
	t.Helper()

	inApp := &recordingAdapter{channel: model.ChannelInApp}
	all := append([]notify.Adapter{inApp}, adapters...)
	d := notify.NewDispatcher(zerolog.Nop(), all...)
	return New(nil, d, time.UTC, time.Minute, zerolog.Nop()), inApp
}

func dueReminder(due time.Time) model.Reminder {
	return model.Reminder{
		ID:       uuid.New().String(),
		Title:    "Irrigation check",
		Category: model.ReminderCategoryActivity,
		DueDate:  due,
		DueTime:  due.Format("15:04"),
		Priority: model.PriorityHigh,
		Status:   model.ReminderStatusPending,
		Channels: []model.Channel{model.ChannelInApp, model.ChannelPush},
	}
}

func TestAnnounceReminderOncePerDueInstant(t *testing.T) {
	s, inApp := newTestScheduler(t)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	r := dueReminder(now.Add(-time.Hour))
	settings := model.DefaultNotificationSettings()

	assert.True(t, s.announceReminder(context.Background(), r, settings, now))
	require.Len(t, inApp.sent, 1)
	assert.Equal(t, "Due: Irrigation check", inApp.sent[0].Title)
	assert.Equal(t, model.EntityKindReminder, inApp.sent[0].Kind)

	// A later scan at the same due instant must stay silent.
	assert.False(t, s.announceReminder(context.Background(), r, settings, now.Add(time.Minute)))
	assert.Len(t, inApp.sent, 1)
}

func TestAnnounceReminderRefiresAfterSnooze(t *testing.T) {
	s, inApp := newTestScheduler(t)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	r := dueReminder(now.Add(-2 * time.Hour))
	settings := model.DefaultNotificationSettings()

	assert.True(t, s.announceReminder(context.Background(), r, settings, now))

	// Snoozing moves the due instant. While the snooze holds, nothing
	// fires; once it elapses the reminder is announced again.
	until := now.Add(30 * time.Minute)
	r.Status = model.ReminderStatusSnoozed
	r.SnoozedUntil = &until

	assert.False(t, s.announceReminder(context.Background(), r, settings, now.Add(time.Minute)))
	assert.True(t, s.announceReminder(context.Background(), r, settings, now.Add(time.Hour)))
	assert.Len(t, inApp.sent, 2)
}

func TestAnnounceReminderSkipsFutureAndTerminal(t *testing.T) {
	s, inApp := newTestScheduler(t)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	settings := model.DefaultNotificationSettings()

	future := dueReminder(now.Add(24 * time.Hour))
	assert.False(t, s.announceReminder(context.Background(), future, settings, now))

	done := dueReminder(now.Add(-time.Hour))
	completedAt := now
	done.Status = model.ReminderStatusCompleted
	done.CompletedAt = &completedAt
	assert.False(t, s.announceReminder(context.Background(), done, settings, now))

	assert.Empty(t, inApp.sent)
}

func TestAnnounceReminderQuietHoursSuppression(t *testing.T) {
	push := &recordingAdapter{channel: model.ChannelPush}
	s, inApp := newTestScheduler(t, push)

	settings := model.DefaultNotificationSettings()
	settings.QuietHours = model.QuietHours{Enabled: true, Start: "22:00", End: "06:00"}
	settings.PriorityMatrix[model.PriorityMedium] = []model.Channel{model.ChannelPush}

	night := time.Date(2025, 6, 10, 23, 30, 0, 0, time.UTC)
	r := dueReminder(night.Add(-time.Hour))
	r.Priority = model.PriorityMedium
	r.Channels = []model.Channel{model.ChannelPush}

	// Push is the only eligible channel and quiet hours suppress it, so
	// the whole announcement is dropped but still marked as handled.
	assert.False(t, s.announceReminder(context.Background(), r, settings, night))
	assert.Empty(t, push.sent)
	assert.Empty(t, inApp.sent)
}

func activeWarning(generated time.Time) model.Warning {
	return model.Warning{
		ID:          uuid.New().String(),
		Title:       "Frost expected overnight",
		Category:    model.WarningCategoryWeather,
		Severity:    model.SeverityHigh,
		Status:      model.WarningStatusActive,
		GeneratedAt: generated,
		ExpiresAt:   generated.Add(48 * time.Hour),
	}
}

func TestAnnounceWarningOncePerGeneration(t *testing.T) {
	s, inApp := newTestScheduler(t)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	w := activeWarning(now.Add(-time.Hour))
	settings := model.DefaultNotificationSettings()

	assert.True(t, s.announceWarning(context.Background(), w, settings, now))
	require.Len(t, inApp.sent, 1)
	assert.Equal(t, "Warning: Frost expected overnight", inApp.sent[0].Title)
	assert.Equal(t, model.PriorityHigh, inApp.sent[0].Priority)

	assert.False(t, s.announceWarning(context.Background(), w, settings, now.Add(time.Minute)))
	assert.Len(t, inApp.sent, 1)
}

func TestAnnounceWarningSkipsExpiredAndTerminal(t *testing.T) {
	s, inApp := newTestScheduler(t)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	settings := model.DefaultNotificationSettings()

	expired := activeWarning(now.Add(-72 * time.Hour))
	expired.ExpiresAt = now.Add(-time.Hour)
	assert.False(t, s.announceWarning(context.Background(), expired, settings, now))

	resolved := activeWarning(now.Add(-time.Hour))
	resolvedAt := now
	resolved.Status = model.WarningStatusResolved
	resolved.ResolvedAt = &resolvedAt
	assert.False(t, s.announceWarning(context.Background(), resolved, settings, now))

	assert.Empty(t, inApp.sent)
}

func TestScanPassAnnouncesStoredEntities(t *testing.T) {
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "scan.db"))
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, st.CreateReminder(ctx, dueReminder(now.Add(-time.Hour))))
	require.NoError(t, st.CreateWarning(ctx, activeWarning(now.Add(-time.Hour))))

	inApp := &recordingAdapter{channel: model.ChannelInApp}
	d := notify.NewDispatcher(zerolog.Nop(), inApp)
	s := New(st, d, time.UTC, time.Minute, zerolog.Nop())

	s.scan()

	select {
	case msg := <-s.resultCh:
		require.NoError(t, msg.Error)
		assert.Equal(t, 2, msg.Notified)
	default:
		t.Fatal("expected a scan result")
	}
	assert.Len(t, inApp.sent, 2)
	assert.False(t, s.LastScan().IsZero())
}
