package reminderlist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Hemanth040/farm-management-system/internal/lifecycle"
	"github.com/Hemanth040/farm-management-system/internal/model"
	"github.com/Hemanth040/farm-management-system/internal/theme"
)

// ReminderItem wraps a model.Reminder so it can be used in a bubbles/list.
type ReminderItem struct {
	Reminder model.Reminder

	// Now is the instant the list was loaded; status badges derive from it.
	Now time.Time
}

// FilterValue returns the string used for fuzzy filtering.
func (i ReminderItem) FilterValue() string { return i.Reminder.Title }

// Title returns the reminder title for the list.
func (i ReminderItem) Title() string { return i.Reminder.Title }

// Description returns a short summary line for the list.
func (i ReminderItem) Description() string {
	parts := []string{
		string(i.Reminder.Category),
		string(lifecycle.EffectiveStatus(i.Reminder, i.Now)),
		i.Reminder.DueDate.Format("Jan 02"),
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering reminder rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single reminder line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ri, ok := item.(ReminderItem)
	if !ok {
		return
	}

	r := ri.Reminder
	status := lifecycle.EffectiveStatus(r, ri.Now)

	var prefix string
	switch status {
	case model.ReminderStatusCompleted:
		prefix = "✓"
	case model.ReminderStatusSnoozed:
		prefix = "z"
	default:
		prefix = "○"
	}

	statusBadge := theme.StatusStyle(string(status)).Render(string(status))
	priBadge := theme.PriorityStyle(string(r.Priority)).Render(priorityLabel(r.Priority))

	title := r.Title
	if !r.IsRead {
		title = theme.UnreadStyle.Render(title)
	}

	due := theme.DueDateStyle.Render(" " + dueLabel(r, ri.Now))

	overdueStr := ""
	if status == model.ReminderStatusOverdue {
		overdueStr = theme.OverdueStyle.Render(" OVERDUE")
	}

	recurStr := ""
	if r.Recurring && r.Recurrence != model.RecurrenceNone {
		recurStr = theme.DueDateStyle.Render(" ↻" + string(r.Recurrence))
	}

	cropStr := ""
	if r.CropID != nil {
		cropStr = theme.DueDateStyle.Render(" [" + *r.CropID + "]")
	}

	line := fmt.Sprintf(
		"%s %s %s %s%s%s%s%s",
		prefix, statusBadge, priBadge, title, cropStr, due, recurStr, overdueStr,
	)

	if status == model.ReminderStatusCompleted {
		line = theme.DimmedStyle.Render(line)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// dueLabel returns a compact due description relative to now.
func dueLabel(r model.Reminder, now time.Time) string {
	due := r.DueAt(now.Location())
	if r.DueTime != "" {
		return due.Format("Jan 02 15:04")
	}
	return due.Format("Jan 02")
}

// priorityLabel returns a short label for the given priority tier.
func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityCritical:
		return "P1"
	case model.PriorityHigh:
		return "P2"
	case model.PriorityMedium:
		return "P3"
	case model.PriorityLow:
		return "P4"
	case model.PriorityInformational:
		return "P5"
	default:
		return "P?"
	}
}
