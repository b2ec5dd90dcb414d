package model

import "time"

// ChannelToggles holds the global on/off switch for each delivery channel.
type ChannelToggles struct {
	InApp bool `json:"inapp" db:"inapp"`
	Push  bool `json:"push" db:"push"`
	SMS   bool `json:"sms" db:"sms"`
	Email bool `json:"email" db:"email"`
}

// Enabled reports whether the given channel is globally switched on.
func (t ChannelToggles) Enabled(ch Channel) bool {
	switch ch {
	case ChannelInApp:
		return t.InApp
	case ChannelPush:
		return t.Push
	case ChannelSMS:
		return t.SMS
	case ChannelEmail:
		return t.Email
	}
	return false
}

// QuietHours is a time-of-day window during which non-critical push and SMS
// notifications are suppressed. Start and End are "HH:MM"; a window whose
// end precedes its start wraps across midnight (e.g. 22:00-06:00).
type QuietHours struct {
	Enabled bool   `json:"enabled" db:"enabled"`
	Start   string `json:"start" db:"start"`
	End     string `json:"end" db:"end"`
}

// NotificationSettings is the process-wide notification configuration,
// consulted by the routing policy on every decision.
type NotificationSettings struct {
	Channels   ChannelToggles `json:"channels"`
	QuietHours QuietHours     `json:"quiet_hours"`

	// PriorityMatrix maps each priority tier to the channels it may use.
	PriorityMatrix map[Priority][]Channel `json:"priority_matrix"`

	// DefaultSnooze is applied when a snooze is requested without an
	// explicit duration.
	DefaultSnooze time.Duration `json:"default_snooze"`
}

// DefaultNotificationSettings returns the settings used before the user
// saves any: all channels on, quiet hours 22:00-06:00 disabled, a matrix
// that narrows channel breadth as priority drops, one-hour default snooze.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Channels: ChannelToggles{InApp: true, Push: true, SMS: true, Email: true},
		QuietHours: QuietHours{
			Enabled: false,
			Start:   "22:00",
			End:     "06:00",
		},
		PriorityMatrix: map[Priority][]Channel{
			PriorityCritical:      {ChannelInApp, ChannelPush, ChannelSMS, ChannelEmail},
			PriorityHigh:          {ChannelInApp, ChannelPush, ChannelEmail},
			PriorityMedium:        {ChannelInApp, ChannelPush},
			PriorityLow:           {ChannelInApp},
			PriorityInformational: {ChannelInApp},
		},
		DefaultSnooze: time.Hour,
	}
}
