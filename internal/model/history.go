package model

import "time"

// EntityKind identifies which entity a history record belongs to.
type EntityKind string

const (
	EntityKindReminder EntityKind = "reminder"
	EntityKindWarning  EntityKind = "warning"
)

// HistoryAction names the transition a history record captures.
type HistoryAction string

const (
	HistoryActionCompleted   HistoryAction = "completed"
	HistoryActionSnoozed     HistoryAction = "snoozed"
	HistoryActionRescheduled HistoryAction = "rescheduled"
	HistoryActionDismissed   HistoryAction = "dismissed"
	HistoryActionResolved    HistoryAction = "resolved"
)

// HistoryRecord is an immutable audit entry produced by a state transition.
// Exactly one of the terminal timestamps is set, matching the action.
type HistoryRecord struct {
	ID         string        `json:"id" db:"id"`
	EntityKind EntityKind    `json:"entity_kind" db:"entity_kind"`
	EntityID   string        `json:"entity_id" db:"entity_id"`
	Action     HistoryAction `json:"action" db:"action"`

	// Title is denormalized from the entity for audit readability.
	Title string `json:"title" db:"title"`

	Actor string `json:"actor" db:"actor"`
	Note  string `json:"note,omitempty" db:"note"`

	CompletedAt   *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	SnoozedAt     *time.Time `json:"snoozed_at,omitempty" db:"snoozed_at"`
	RescheduledAt *time.Time `json:"rescheduled_at,omitempty" db:"rescheduled_at"`
	DismissedAt   *time.Time `json:"dismissed_at,omitempty" db:"dismissed_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty" db:"resolved_at"`

	// SnoozeDuration is the human-readable snooze length ("3 hours").
	// Set only for snooze records.
	SnoozeDuration string `json:"snooze_duration,omitempty" db:"snooze_duration"`

	// RescheduledFrom/To record the date change for reschedule records.
	RescheduledFrom *time.Time `json:"rescheduled_from,omitempty" db:"rescheduled_from"`
	RescheduledTo   *time.Time `json:"rescheduled_to,omitempty" db:"rescheduled_to"`
}

// ActionTime returns the single populated terminal timestamp.
// Returns the zero time if none is set.
func (h HistoryRecord) ActionTime() time.Time {
	for _, ts := range []*time.Time{
		h.CompletedAt, h.SnoozedAt, h.RescheduledAt, h.DismissedAt, h.ResolvedAt,
	} {
		if ts != nil {
			return *ts
		}
	}
	return time.Time{}
}
