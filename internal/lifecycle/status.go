// Package lifecycle implements the reminder and warning lifecycle engine:
// derived status resolution, multi-criteria filtering, priority-ordered
// ranking, validated state transitions with audit history, notification
// channel routing, and dashboard statistics.
//
// The package is pure: it owns no storage and never reads the wall clock.
// Every time-dependent operation takes the reference timestamp from the
// caller, so results are deterministic for a given input.
package lifecycle

import (
	"time"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

// EffectiveStatus computes the status a reminder should present as at the
// given reference time, without mutating stored state.
//
// A snoozed reminder whose snooze window has elapsed re-evaluates as
// pending; a pending reminder whose due timestamp has passed presents as
// overdue. Completed is returned unchanged.
func EffectiveStatus(r model.Reminder, now time.Time) model.ReminderStatus {
	status := r.Status

	// An elapsed snooze falls back to pending without a stored transition.
	if status == model.ReminderStatusSnoozed {
		if r.SnoozedUntil == nil || !r.SnoozedUntil.After(now) {
			status = model.ReminderStatusPending
		}
	}

	if status == model.ReminderStatusPending && !r.DueAt(now.Location()).After(now) {
		return model.ReminderStatusOverdue
	}

	return status
}

// IsOverdue reports whether the reminder presents as overdue at now.
func IsOverdue(r model.Reminder, now time.Time) bool {
	return EffectiveStatus(r, now) == model.ReminderStatusOverdue
}

// IsDueToday reports whether the reminder's due date falls on the same
// calendar day as now (in now's location) and the reminder is still
// actionable (effectively pending or overdue).
func IsDueToday(r model.Reminder, now time.Time) bool {
	due := r.DueAt(now.Location())
	sameDay := due.Year() == now.Year() && due.YearDay() == now.YearDay()
	if !sameDay {
		return false
	}
	switch EffectiveStatus(r, now) {
	case model.ReminderStatusPending, model.ReminderStatusOverdue:
		return true
	default:
		return false
	}
}
