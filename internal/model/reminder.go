package model

import (
	"fmt"
	"time"
)

// ReminderCategory classifies what kind of obligation a reminder tracks.
type ReminderCategory string

const (
	ReminderCategoryActivity  ReminderCategory = "activity"
	ReminderCategoryCustom    ReminderCategory = "custom"
	ReminderCategoryFinancial ReminderCategory = "financial"
	ReminderCategoryResource  ReminderCategory = "resource"
)

// ValidReminderCategories returns all valid reminder category values.
func ValidReminderCategories() []ReminderCategory {
	return []ReminderCategory{
		ReminderCategoryActivity,
		ReminderCategoryCustom,
		ReminderCategoryFinancial,
		ReminderCategoryResource,
	}
}

// IsValid returns true if the category is a known value.
func (c ReminderCategory) IsValid() bool {
	for _, valid := range ValidReminderCategories() {
		if c == valid {
			return true
		}
	}
	return false
}

// Priority is the ordinal importance tier of a reminder.
type Priority string

const (
	PriorityCritical      Priority = "critical"
	PriorityHigh          Priority = "high"
	PriorityMedium        Priority = "medium"
	PriorityLow           Priority = "low"
	PriorityInformational Priority = "informational"
)

// ValidPriorities returns all valid priority values.
func ValidPriorities() []Priority {
	return []Priority{
		PriorityCritical,
		PriorityHigh,
		PriorityMedium,
		PriorityLow,
		PriorityInformational,
	}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// ReminderStatus is the stored lifecycle state of a reminder.
//
// ReminderStatusOverdue is never written to storage: it is derived at read
// time from a pending reminder whose due timestamp has passed.
type ReminderStatus string

const (
	ReminderStatusPending   ReminderStatus = "pending"
	ReminderStatusOverdue   ReminderStatus = "overdue"
	ReminderStatusSnoozed   ReminderStatus = "snoozed"
	ReminderStatusCompleted ReminderStatus = "completed"
)

// ValidReminderStatuses returns all valid reminder status values,
// including the derived overdue status.
func ValidReminderStatuses() []ReminderStatus {
	return []ReminderStatus{
		ReminderStatusPending,
		ReminderStatusOverdue,
		ReminderStatusSnoozed,
		ReminderStatusCompleted,
	}
}

// IsValid returns true if the status is a known value.
func (s ReminderStatus) IsValid() bool {
	for _, valid := range ValidReminderStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Recurrence is the repeat pattern of a recurring reminder.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// ValidRecurrences returns all valid recurrence values.
func ValidRecurrences() []Recurrence {
	return []Recurrence{RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly}
}

// IsValid returns true if the recurrence is a known value.
func (r Recurrence) IsValid() bool {
	for _, valid := range ValidRecurrences() {
		if r == valid {
			return true
		}
	}
	return false
}

// Channel identifies a notification delivery channel.
type Channel string

const (
	ChannelInApp Channel = "inapp"
	ChannelPush  Channel = "push"
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// ValidChannels returns all valid channel values.
func ValidChannels() []Channel {
	return []Channel{ChannelInApp, ChannelPush, ChannelSMS, ChannelEmail}
}

// IsValid returns true if the channel is a known value.
func (c Channel) IsValid() bool {
	for _, valid := range ValidChannels() {
		if c == valid {
			return true
		}
	}
	return false
}

// Provenance records where an entity came from.
type Provenance struct {
	// AutoGenerated is true when the entity was created by an external
	// trigger rather than a user action.
	AutoGenerated bool `json:"auto_generated" db:"auto_generated"`

	// Source tags the trigger ("manual", "weather_service", ...).
	Source string `json:"source" db:"source"`
}

// Reminder is a time-triggered obligation tracked to completion.
type Reminder struct {
	ID          string           `json:"id" db:"id"`
	Title       string           `json:"title" db:"title"`
	Description string           `json:"description" db:"description"`
	Category    ReminderCategory `json:"category" db:"category"`

	// Subtype refines the category (e.g. "irrigation" under activity).
	Subtype string `json:"subtype" db:"subtype"`

	// CropID optionally ties the reminder to a crop or field.
	CropID *string `json:"crop_id,omitempty" db:"crop_id"`

	// DueDate is the calendar day the reminder is due. Only the date
	// part is meaningful; DueTime carries the time of day.
	DueDate time.Time `json:"due_date" db:"due_date"`

	// DueTime is the due time of day in "HH:MM" form.
	DueTime string `json:"due_time" db:"due_time"`

	Priority Priority       `json:"priority" db:"priority"`
	Status   ReminderStatus `json:"status" db:"status"`

	Recurring  bool       `json:"recurring" db:"recurring"`
	Recurrence Recurrence `json:"recurrence" db:"recurrence"`

	// SnoozedUntil is set while the reminder is snoozed.
	SnoozedUntil *time.Time `json:"snoozed_until,omitempty" db:"snoozed_until"`

	// CompletedAt is set when the reminder is completed.
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Channels is the reminder's own declared notification channel set.
	// Routing intersects it with settings; see the lifecycle package.
	Channels []Channel `json:"channels" db:"-"`

	IsRead     bool       `json:"is_read" db:"is_read"`
	Notes      string     `json:"notes" db:"notes"`
	Provenance Provenance `json:"provenance" db:"-"`
}

// DueAt combines DueDate and DueTime into a single timestamp in loc.
// A missing or malformed DueTime resolves to midnight.
func (r Reminder) DueAt(loc *time.Location) time.Time {
	hour, min := 0, 0
	if r.DueTime != "" {
		fmt.Sscanf(r.DueTime, "%d:%d", &hour, &min)
	}
	return time.Date(
		r.DueDate.Year(), r.DueDate.Month(), r.DueDate.Day(),
		hour, min, 0, 0, loc,
	)
}
