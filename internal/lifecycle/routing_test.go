package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

var allChannels = []model.Channel{
	model.ChannelInApp, model.ChannelPush, model.ChannelSMS, model.ChannelEmail,
}

func quietSettings() model.NotificationSettings {
	s := model.DefaultNotificationSettings()
	s.QuietHours.Enabled = true
	s.QuietHours.Start = "22:00"
	s.QuietHours.End = "06:00"
	// Widen the matrix so quiet-hours behavior is isolated.
	for _, p := range model.ValidPriorities() {
		s.PriorityMatrix[p] = allChannels
	}
	return s
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestResolveChannelsQuietHoursStripsPushAndSMS(t *testing.T) {
	settings := quietSettings()

	got := ResolveChannels(allChannels, model.PriorityMedium, settings, at(23, 0))
	require.Equal(t, []model.Channel{model.ChannelInApp, model.ChannelEmail}, got)
}

func TestResolveChannelsCriticalBypassesQuietHours(t *testing.T) {
	settings := quietSettings()

	got := ResolveChannels(allChannels, model.PriorityCritical, settings, at(23, 0))
	require.Equal(t, allChannels, got)
}

func TestResolveChannelsQuietWindowWrapsMidnight(t *testing.T) {
	settings := quietSettings()

	// 05:00 is inside 22:00-06:00.
	got := ResolveChannels(allChannels, model.PriorityMedium, settings, at(5, 0))
	require.NotContains(t, got, model.ChannelPush)
	require.NotContains(t, got, model.ChannelSMS)

	// 21:59 is outside; 12:00 is outside.
	got = ResolveChannels(allChannels, model.PriorityMedium, settings, at(21, 59))
	require.Contains(t, got, model.ChannelPush)

	got = ResolveChannels(allChannels, model.PriorityMedium, settings, at(12, 0))
	require.Contains(t, got, model.ChannelSMS)
}

func TestResolveChannelsQuietHoursDisabled(t *testing.T) {
	settings := quietSettings()
	settings.QuietHours.Enabled = false

	got := ResolveChannels(allChannels, model.PriorityLow, settings, at(23, 0))
	require.Equal(t, allChannels, got)
}

func TestResolveChannelsIntersectsPriorityMatrix(t *testing.T) {
	settings := model.DefaultNotificationSettings()

	// Default matrix grants low priority only in-app delivery.
	got := ResolveChannels(allChannels, model.PriorityLow, settings, at(12, 0))
	require.Equal(t, []model.Channel{model.ChannelInApp}, got)
}

func TestResolveChannelsRespectsGlobalToggles(t *testing.T) {
	settings := quietSettings()
	settings.QuietHours.Enabled = false
	settings.Channels.SMS = false
	settings.Channels.Email = false

	got := ResolveChannels(allChannels, model.PriorityCritical, settings, at(12, 0))
	require.Equal(t, []model.Channel{model.ChannelInApp, model.ChannelPush}, got)
}

func TestResolveChannelsStartsFromDeclaredSet(t *testing.T) {
	settings := quietSettings()
	settings.QuietHours.Enabled = false

	got := ResolveChannels([]model.Channel{model.ChannelEmail}, model.PriorityCritical, settings, at(12, 0))
	require.Equal(t, []model.Channel{model.ChannelEmail}, got)
}

func TestResolveChannelsEmptyResultIsValid(t *testing.T) {
	settings := model.DefaultNotificationSettings()
	settings.Channels = model.ChannelToggles{}

	got := ResolveChannels(allChannels, model.PriorityCritical, settings, at(12, 0))
	require.Empty(t, got)
}

func TestInQuietWindowMalformedClock(t *testing.T) {
	q := model.QuietHours{Enabled: true, Start: "bogus", End: "06:00"}
	require.False(t, inQuietWindow(q, at(23, 0)))

	// Zero-length window never matches.
	q = model.QuietHours{Enabled: true, Start: "08:00", End: "08:00"}
	require.False(t, inQuietWindow(q, at(8, 0)))
}
