package lifecycle

import (
	"time"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

// Summary holds the dashboard counters, recomputed on every query by a
// single pass over the current collections.
type Summary struct {
	// PendingReminders counts reminders presenting as pending or overdue.
	PendingReminders int

	// OverdueReminders counts reminders presenting as exactly overdue.
	OverdueReminders int

	// ActiveWarnings counts warnings still in the active state.
	ActiveWarnings int

	// CriticalWarnings counts active warnings with critical severity.
	CriticalWarnings int

	// Unread counts reminders and warnings not yet read.
	Unread int

	// DueToday counts non-completed reminders due on now's calendar day.
	DueToday int
}

// Stats reduces the current collections to dashboard counters.
func Stats(reminders []model.Reminder, warnings []model.Warning, now time.Time) Summary {
	var s Summary

	for _, r := range reminders {
		switch EffectiveStatus(r, now) {
		case model.ReminderStatusOverdue:
			s.PendingReminders++
			s.OverdueReminders++
		case model.ReminderStatusPending:
			s.PendingReminders++
		}
		if !r.IsRead {
			s.Unread++
		}
		if IsDueToday(r, now) {
			s.DueToday++
		}
	}

	for _, w := range warnings {
		if w.Status == model.WarningStatusActive {
			s.ActiveWarnings++
			if w.Severity == model.SeverityCritical {
				s.CriticalWarnings++
			}
		}
		if !w.IsRead {
			s.Unread++
		}
	}

	return s
}
