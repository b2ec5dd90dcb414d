package lifecycle

import (
	"time"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

// ResolveChannels decides which channels may fire for an entity of the
// given priority at the given moment. Starting from the entity's own
// declared channel set, it keeps only channels allowed by the priority
// matrix and globally enabled in settings, then strips push and SMS
// during quiet hours unless the priority is critical. An empty result is
// valid: nothing fires.
func ResolveChannels(declared []model.Channel, priority model.Priority, settings model.NotificationSettings, now time.Time) []model.Channel {
	allowed := settings.PriorityMatrix[priority]

	quiet := settings.QuietHours.Enabled &&
		priority != model.PriorityCritical &&
		inQuietWindow(settings.QuietHours, now)

	out := make([]model.Channel, 0, len(declared))
	for _, ch := range declared {
		if !containsChannel(allowed, ch) {
			continue
		}
		if !settings.Channels.Enabled(ch) {
			continue
		}
		if quiet && (ch == model.ChannelPush || ch == model.ChannelSMS) {
			continue
		}
		out = append(out, ch)
	}
	return out
}

// inQuietWindow reports whether now's time of day falls inside the quiet
// hours window. A window whose end precedes its start wraps across
// midnight: 22:00-06:00 covers 23:00 and 05:00 but not 12:00.
func inQuietWindow(q model.QuietHours, now time.Time) bool {
	start, okStart := parseClock(q.Start)
	end, okEnd := parseClock(q.End)
	if !okStart || !okEnd || start == end {
		return false
	}

	minute := now.Hour()*60 + now.Minute()
	if start < end {
		return minute >= start && minute < end
	}
	// Wrap-around window.
	return minute >= start || minute < end
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func containsChannel(channels []model.Channel, ch model.Channel) bool {
	for _, c := range channels {
		if c == ch {
			return true
		}
	}
	return false
}
