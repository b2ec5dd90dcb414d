package lifecycle

import (
	"time"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

// ReminderCriteria controls reminder filtering. Nil fields impose no
// constraint; set fields combine with logical AND. Status is matched
// against the effective status, so filtering on "overdue" works even
// though overdue is never stored.
type ReminderCriteria struct {
	CropID   *string
	Category *model.ReminderCategory
	Priority *model.Priority
	Status   *model.ReminderStatus

	// DueFrom/DueTo bound the due timestamp (inclusive).
	DueFrom *time.Time
	DueTo   *time.Time
}

// Validate rejects criteria carrying unknown enum values. An unknown
// value is an error, never an implicit "match all".
func (c ReminderCriteria) Validate() error {
	if c.Category != nil && !c.Category.IsValid() {
		return NewValidationError("category", "unknown reminder category "+string(*c.Category))
	}
	if c.Priority != nil && !c.Priority.IsValid() {
		return NewValidationError("priority", "unknown priority "+string(*c.Priority))
	}
	if c.Status != nil && !c.Status.IsValid() {
		return NewValidationError("status", "unknown reminder status "+string(*c.Status))
	}
	return nil
}

// FilterReminders returns the reminders matching all set criteria fields,
// preserving input order. The input slice is not modified.
func FilterReminders(reminders []model.Reminder, c ReminderCriteria, now time.Time) ([]model.Reminder, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	out := make([]model.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if c.CropID != nil && (r.CropID == nil || *r.CropID != *c.CropID) {
			continue
		}
		if c.Category != nil && r.Category != *c.Category {
			continue
		}
		if c.Priority != nil && r.Priority != *c.Priority {
			continue
		}
		if c.Status != nil && EffectiveStatus(r, now) != *c.Status {
			continue
		}
		due := r.DueAt(now.Location())
		if c.DueFrom != nil && due.Before(*c.DueFrom) {
			continue
		}
		if c.DueTo != nil && due.After(*c.DueTo) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// WarningCriteria controls warning filtering. Nil fields impose no
// constraint. CropID matches against the affected-target list: a warning
// matches when any of its targets references the crop.
type WarningCriteria struct {
	CropID   *string
	Category *model.WarningCategory
	Severity *model.Severity
	Status   *model.WarningStatus

	// GeneratedFrom/GeneratedTo bound the generation timestamp (inclusive).
	GeneratedFrom *time.Time
	GeneratedTo   *time.Time
}

// Validate rejects criteria carrying unknown enum values.
func (c WarningCriteria) Validate() error {
	if c.Category != nil && !c.Category.IsValid() {
		return NewValidationError("category", "unknown warning category "+string(*c.Category))
	}
	if c.Severity != nil && !c.Severity.IsValid() {
		return NewValidationError("severity", "unknown severity "+string(*c.Severity))
	}
	if c.Status != nil && !c.Status.IsValid() {
		return NewValidationError("status", "unknown warning status "+string(*c.Status))
	}
	return nil
}

// FilterWarnings returns the warnings matching all set criteria fields,
// preserving input order. The input slice is not modified.
func FilterWarnings(warnings []model.Warning, c WarningCriteria) ([]model.Warning, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	out := make([]model.Warning, 0, len(warnings))
	for _, w := range warnings {
		if c.CropID != nil && !targetsInclude(w.AffectedTargets, *c.CropID) {
			continue
		}
		if c.Category != nil && w.Category != *c.Category {
			continue
		}
		if c.Severity != nil && w.Severity != *c.Severity {
			continue
		}
		if c.Status != nil && w.Status != *c.Status {
			continue
		}
		if c.GeneratedFrom != nil && w.GeneratedAt.Before(*c.GeneratedFrom) {
			continue
		}
		if c.GeneratedTo != nil && w.GeneratedAt.After(*c.GeneratedTo) {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func targetsInclude(targets []model.AffectedTarget, cropID string) bool {
	for _, t := range targets {
		if t.TargetID == cropID {
			return true
		}
	}
	return false
}
