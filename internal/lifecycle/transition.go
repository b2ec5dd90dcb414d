package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

// CreateReminderInput carries the caller-supplied fields for a new reminder.
type CreateReminderInput struct {
	Title       string
	Description string
	Category    model.ReminderCategory
	Subtype     string
	CropID      *string
	DueDate     time.Time
	DueTime     string
	Priority    model.Priority
	Recurring   bool
	Recurrence  model.Recurrence
	Channels    []model.Channel
	Notes       string

	// Provenance defaults to a manual user action when left zero.
	Provenance model.Provenance
}

// CreateReminder validates the input and returns a new pending reminder.
// Creation is not a transition, so no history record is produced.
func CreateReminder(input CreateReminderInput, now time.Time) (model.Reminder, error) {
	if strings.TrimSpace(input.Title) == "" {
		return model.Reminder{}, NewValidationError("title", "must not be empty")
	}
	if !input.Category.IsValid() {
		return model.Reminder{}, NewValidationError("category", "unknown reminder category "+string(input.Category))
	}
	if !input.Priority.IsValid() {
		return model.Reminder{}, NewValidationError("priority", "unknown priority "+string(input.Priority))
	}
	if input.DueDate.IsZero() {
		return model.Reminder{}, NewValidationError("due_date", "must be set")
	}
	if input.DueTime != "" {
		if _, err := time.Parse("15:04", input.DueTime); err != nil {
			return model.Reminder{}, NewValidationError("due_time", "must be HH:MM")
		}
	}
	recurrence := input.Recurrence
	if recurrence == "" {
		recurrence = model.RecurrenceNone
	}
	if !recurrence.IsValid() {
		return model.Reminder{}, NewValidationError("recurrence", "unknown recurrence "+string(input.Recurrence))
	}
	for _, ch := range input.Channels {
		if !ch.IsValid() {
			return model.Reminder{}, NewValidationError("channels", "unknown channel "+string(ch))
		}
	}

	provenance := input.Provenance
	if !provenance.AutoGenerated && provenance.Source == "" {
		provenance.Source = "manual"
	}

	channels := input.Channels
	if len(channels) == 0 {
		channels = []model.Channel{model.ChannelInApp}
	}

	return model.Reminder{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    input.Category,
		Subtype:     input.Subtype,
		CropID:      input.CropID,
		DueDate:     input.DueDate,
		DueTime:     input.DueTime,
		Priority:    input.Priority,
		Status:      model.ReminderStatusPending,
		Recurring:   input.Recurring,
		Recurrence:  recurrence,
		CreatedAt:   now,
		Channels:    channels,
		IsRead:      false,
		Notes:       input.Notes,
		Provenance:  provenance,
	}, nil
}

// FindReminder looks up a reminder by ID in the supplied collection.
func FindReminder(reminders []model.Reminder, id string) (model.Reminder, error) {
	for _, r := range reminders {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Reminder{}, NotFoundError{Kind: model.EntityKindReminder, ID: id}
}

// FindWarning looks up a warning by ID in the supplied collection.
func FindWarning(warnings []model.Warning, id string) (model.Warning, error) {
	for _, w := range warnings {
		if w.ID == id {
			return w, nil
		}
	}
	return model.Warning{}, NotFoundError{Kind: model.EntityKindWarning, ID: id}
}

// actionable reports whether the reminder presents as pending or overdue
// at now, the only states that permit further transitions.
func actionable(r model.Reminder, now time.Time) bool {
	switch EffectiveStatus(r, now) {
	case model.ReminderStatusPending, model.ReminderStatusOverdue:
		return true
	default:
		return false
	}
}

// CompleteReminder marks a pending or overdue reminder completed and
// returns the updated reminder with its audit record. Completed is
// terminal: any later transition attempt fails.
func CompleteReminder(r model.Reminder, actor, note string, now time.Time) (model.Reminder, model.HistoryRecord, error) {
	if !actionable(r, now) {
		return r, model.HistoryRecord{}, InvalidTransitionError{
			Kind: model.EntityKindReminder, ID: r.ID,
			From: string(EffectiveStatus(r, now)), Action: "complete",
		}
	}

	completedAt := now
	r.Status = model.ReminderStatusCompleted
	r.CompletedAt = &completedAt
	r.SnoozedUntil = nil

	record := model.HistoryRecord{
		ID:          uuid.New().String(),
		EntityKind:  model.EntityKindReminder,
		EntityID:    r.ID,
		Action:      model.HistoryActionCompleted,
		Title:       r.Title,
		Actor:       actor,
		Note:        note,
		CompletedAt: &completedAt,
	}
	return r, record, nil
}

// SnoozeReminder pushes a pending or overdue reminder into the snoozed
// state until now+duration. The snooze expires implicitly: once the
// deadline passes, the reminder re-evaluates as pending on read.
func SnoozeReminder(r model.Reminder, duration time.Duration, actor, note string, now time.Time) (model.Reminder, model.HistoryRecord, error) {
	if duration <= 0 {
		return r, model.HistoryRecord{}, NewValidationError("duration", "must be positive")
	}
	if !actionable(r, now) {
		return r, model.HistoryRecord{}, InvalidTransitionError{
			Kind: model.EntityKindReminder, ID: r.ID,
			From: string(EffectiveStatus(r, now)), Action: "snooze",
		}
	}

	snoozedAt := now
	until := now.Add(duration)
	r.Status = model.ReminderStatusSnoozed
	r.SnoozedUntil = &until

	record := model.HistoryRecord{
		ID:             uuid.New().String(),
		EntityKind:     model.EntityKindReminder,
		EntityID:       r.ID,
		Action:         model.HistoryActionSnoozed,
		Title:          r.Title,
		Actor:          actor,
		Note:           note,
		SnoozedAt:      &snoozedAt,
		SnoozeDuration: humanDuration(duration),
	}
	return r, record, nil
}

// RescheduleReminder moves a pending or overdue reminder to a new due
// date, returning it to plain pending (an overdue presentation clears
// itself once the due timestamp is in the future).
func RescheduleReminder(r model.Reminder, newDate time.Time, newTime string, actor, note string, now time.Time) (model.Reminder, model.HistoryRecord, error) {
	if newDate.IsZero() {
		return r, model.HistoryRecord{}, NewValidationError("due_date", "must be set")
	}
	if newTime != "" {
		if _, err := time.Parse("15:04", newTime); err != nil {
			return r, model.HistoryRecord{}, NewValidationError("due_time", "must be HH:MM")
		}
	}
	if !actionable(r, now) {
		return r, model.HistoryRecord{}, InvalidTransitionError{
			Kind: model.EntityKindReminder, ID: r.ID,
			From: string(EffectiveStatus(r, now)), Action: "reschedule",
		}
	}

	rescheduledAt := now
	from := r.DueDate
	to := newDate
	r.DueDate = newDate
	if newTime != "" {
		r.DueTime = newTime
	}
	r.Status = model.ReminderStatusPending
	r.SnoozedUntil = nil

	record := model.HistoryRecord{
		ID:              uuid.New().String(),
		EntityKind:      model.EntityKindReminder,
		EntityID:        r.ID,
		Action:          model.HistoryActionRescheduled,
		Title:           r.Title,
		Actor:           actor,
		Note:            note,
		RescheduledAt:   &rescheduledAt,
		RescheduledFrom: &from,
		RescheduledTo:   &to,
	}
	return r, record, nil
}

// NextOccurrence derives the follow-up instance of a recurring reminder
// after it completes. The new instance gets a fresh identity and starts
// pending and unread; the completed one keeps its own history. Returns
// false when the reminder does not recur.
func NextOccurrence(r model.Reminder, now time.Time) (model.Reminder, bool) {
	if !r.Recurring || r.Recurrence == model.RecurrenceNone || !r.Recurrence.IsValid() {
		return model.Reminder{}, false
	}

	next := r
	next.ID = uuid.New().String()
	next.Status = model.ReminderStatusPending
	next.SnoozedUntil = nil
	next.CompletedAt = nil
	next.IsRead = false
	next.CreatedAt = now

	switch r.Recurrence {
	case model.RecurrenceDaily:
		next.DueDate = r.DueDate.AddDate(0, 0, 1)
	case model.RecurrenceWeekly:
		next.DueDate = r.DueDate.AddDate(0, 0, 7)
	case model.RecurrenceMonthly:
		next.DueDate = r.DueDate.AddDate(0, 1, 0)
	}
	return next, true
}

// MarkReminderRead flips the read flag. Reading is not a lifecycle
// transition and produces no history record.
func MarkReminderRead(r model.Reminder) model.Reminder {
	r.IsRead = true
	return r
}

// MarkWarningRead flips the read flag. No history record is produced.
func MarkWarningRead(w model.Warning) model.Warning {
	w.IsRead = true
	return w
}

// ResolveWarning moves an active warning to the terminal resolved state.
func ResolveWarning(w model.Warning, actor, note string, now time.Time) (model.Warning, model.HistoryRecord, error) {
	if w.Status != model.WarningStatusActive {
		return w, model.HistoryRecord{}, InvalidTransitionError{
			Kind: model.EntityKindWarning, ID: w.ID,
			From: string(w.Status), Action: "resolve",
		}
	}

	resolvedAt := now
	w.Status = model.WarningStatusResolved
	w.ResolvedAt = &resolvedAt

	record := model.HistoryRecord{
		ID:         uuid.New().String(),
		EntityKind: model.EntityKindWarning,
		EntityID:   w.ID,
		Action:     model.HistoryActionResolved,
		Title:      w.Title,
		Actor:      actor,
		Note:       note,
		ResolvedAt: &resolvedAt,
	}
	return w, record, nil
}

// DismissWarning moves an active warning to the terminal dismissed state.
func DismissWarning(w model.Warning, actor, note string, now time.Time) (model.Warning, model.HistoryRecord, error) {
	if w.Status != model.WarningStatusActive {
		return w, model.HistoryRecord{}, InvalidTransitionError{
			Kind: model.EntityKindWarning, ID: w.ID,
			From: string(w.Status), Action: "dismiss",
		}
	}

	dismissedAt := now
	w.Status = model.WarningStatusDismissed
	w.DismissedAt = &dismissedAt

	record := model.HistoryRecord{
		ID:          uuid.New().String(),
		EntityKind:  model.EntityKindWarning,
		EntityID:    w.ID,
		Action:      model.HistoryActionDismissed,
		Title:       w.Title,
		Actor:       actor,
		Note:        note,
		DismissedAt: &dismissedAt,
	}
	return w, record, nil
}

// PrependHistory inserts a record at the head of the history sequence,
// keeping most-recent-first ordering.
func PrependHistory(records []model.HistoryRecord, record model.HistoryRecord) []model.HistoryRecord {
	out := make([]model.HistoryRecord, 0, len(records)+1)
	out = append(out, record)
	return append(out, records...)
}

// humanDuration renders a duration the way the audit log shows it:
// whole days, hours, or minutes, whichever fits.
func humanDuration(d time.Duration) string {
	switch {
	case d >= 24*time.Hour && d%(24*time.Hour) == 0:
		days := int(d / (24 * time.Hour))
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	case d >= time.Hour && d%time.Hour == 0:
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	default:
		minutes := int(d / time.Minute)
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
}
