package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Hemanth040/farm-management-system/internal/lifecycle"
	"github.com/Hemanth040/farm-management-system/internal/model"
)

// settingsLoadedMsg carries the stored notification settings.
type settingsLoadedMsg struct {
	settings model.NotificationSettings
}

// summaryMsg carries refreshed dashboard statistics.
type summaryMsg struct {
	summary lifecycle.Summary
}

// mutationDoneMsg reports the outcome of any store mutation.
type mutationDoneMsg struct {
	err error
}

// reminderOpenedMsg carries a reminder selected for the detail view.
type reminderOpenedMsg struct {
	reminder model.Reminder
	now      time.Time
}

// snoozeFormReadyMsg asks the root model to open the snooze prompt.
type snoozeFormReadyMsg struct {
	reminder model.Reminder
}

// rescheduleFormReadyMsg asks the root model to open the reschedule
// prompt.
type rescheduleFormReadyMsg struct {
	reminder model.Reminder
}

// editFormReadyMsg asks the root model to open the edit form.
type editFormReadyMsg struct {
	reminder model.Reminder
}

// loadSettings reads the notification settings from the store.
func (m Model) loadSettings() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		settings, err := s.GetSettings(context.Background())
		if err != nil {
			return settingsLoadedMsg{settings: model.DefaultNotificationSettings()}
		}
		return settingsLoadedMsg{settings: settings}
	}
}

// saveSettings persists notification settings and reloads them.
func (m Model) saveSettings(settings model.NotificationSettings) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		if err := s.SaveSettings(context.Background(), settings); err != nil {
			return mutationDoneMsg{err: err}
		}
		return settingsLoadedMsg{settings: settings}
	}
}

// refreshSummary recomputes the dashboard statistics.
func (m Model) refreshSummary() tea.Cmd {
	s := m.store
	loc := m.loc
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now().In(loc)

		reminders, err := s.GetReminders(ctx)
		if err != nil {
			return summaryMsg{}
		}
		warnings, err := s.GetWarnings(ctx)
		if err != nil {
			return summaryMsg{}
		}
		return summaryMsg{summary: lifecycle.Stats(reminders, warnings, now)}
	}
}

// openReminder loads a reminder for the detail view.
func (m Model) openReminder(id string) tea.Cmd {
	s := m.store
	loc := m.loc
	return func() tea.Msg {
		r, err := s.GetReminderByID(context.Background(), id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return reminderOpenedMsg{reminder: *r, now: time.Now().In(loc)}
	}
}

// createReminder validates and stores a new reminder.
func (m Model) createReminder(input lifecycle.CreateReminderInput) tea.Cmd {
	s := m.store
	loc := m.loc
	return func() tea.Msg {
		r, err := lifecycle.CreateReminder(input, time.Now().In(loc))
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{err: s.CreateReminder(context.Background(), r)}
	}
}

// saveReminder persists edited reminder fields.
func (m Model) saveReminder(r model.Reminder) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return mutationDoneMsg{err: s.UpdateReminder(context.Background(), r)}
	}
}

// deleteReminder removes a reminder outright. Removal is a storage
// operation, not a transition, so it leaves no history record.
func (m Model) deleteReminder(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return mutationDoneMsg{err: s.DeleteReminder(context.Background(), id)}
	}
}

// completeReminder runs the complete transition. A recurring reminder
// spawns its next occurrence in the same mutation.
func (m Model) completeReminder(id string) tea.Cmd {
	s := m.store
	loc := m.loc
	actor := m.cfg.Actor
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now().In(loc)

		r, err := s.GetReminderByID(ctx, id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}

		done, record, err := lifecycle.CompleteReminder(*r, actor, "", now)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		if err := s.ApplyReminderTransition(ctx, done, record); err != nil {
			return mutationDoneMsg{err: err}
		}

		if next, ok := lifecycle.NextOccurrence(done, now); ok {
			if err := s.CreateReminder(ctx, next); err != nil {
				return mutationDoneMsg{err: err}
			}
		}
		return mutationDoneMsg{}
	}
}

// prepareSnooze loads the reminder and opens the snooze prompt.
func (m Model) prepareSnooze(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		r, err := s.GetReminderByID(context.Background(), id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return snoozeFormReadyMsg{reminder: *r}
	}
}

// prepareReschedule loads the reminder and opens the reschedule prompt.
func (m Model) prepareReschedule(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		r, err := s.GetReminderByID(context.Background(), id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return rescheduleFormReadyMsg{reminder: *r}
	}
}

// prepareEdit loads the reminder and opens the edit form.
func (m Model) prepareEdit(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		r, err := s.GetReminderByID(context.Background(), id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return editFormReadyMsg{reminder: *r}
	}
}

// snoozeReminder runs the snooze transition.
func (m Model) snoozeReminder(id string, duration time.Duration, note string) tea.Cmd {
	s := m.store
	loc := m.loc
	actor := m.cfg.Actor
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now().In(loc)

		r, err := s.GetReminderByID(ctx, id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}

		snoozed, record, err := lifecycle.SnoozeReminder(*r, duration, actor, note, now)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{err: s.ApplyReminderTransition(ctx, snoozed, record)}
	}
}

// rescheduleReminder runs the reschedule transition.
func (m Model) rescheduleReminder(id string, newDate time.Time, newTime, note string) tea.Cmd {
	s := m.store
	loc := m.loc
	actor := m.cfg.Actor
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now().In(loc)

		r, err := s.GetReminderByID(ctx, id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}

		moved, record, err := lifecycle.RescheduleReminder(*r, newDate, newTime, actor, note, now)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{err: s.ApplyReminderTransition(ctx, moved, record)}
	}
}

// markReminderRead flips the read flag without touching history.
func (m Model) markReminderRead(r model.Reminder) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		read := lifecycle.MarkReminderRead(r)
		return mutationDoneMsg{err: s.UpdateReminder(context.Background(), read)}
	}
}

// markReminderReadByID loads a reminder first, then flips the flag.
func (m Model) markReminderReadByID(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		r, err := s.GetReminderByID(context.Background(), id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		read := lifecycle.MarkReminderRead(*r)
		return mutationDoneMsg{err: s.UpdateReminder(context.Background(), read)}
	}
}

// friendlyError renders a lifecycle error for the status bar.
func friendlyError(err error) string {
	switch {
	case lifecycle.IsInvalidTransition(err):
		return "action not allowed in the current state"
	case lifecycle.IsValidationError(err):
		return err.Error()
	case lifecycle.IsNotFound(err):
		return "item no longer exists"
	default:
		return "operation failed: " + err.Error()
	}
}
