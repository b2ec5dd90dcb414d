package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Hemanth040/farm-management-system/internal/keys"
	"github.com/Hemanth040/farm-management-system/internal/lifecycle"
	"github.com/Hemanth040/farm-management-system/internal/model"
	"github.com/Hemanth040/farm-management-system/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// ActionMsg signals the parent to execute a lifecycle action on the
// displayed entity.
type ActionMsg struct {
	Action   string
	Kind     model.EntityKind
	EntityID string
}

// Model is the reminder/warning detail view component.
type Model struct {
	reminder *model.Reminder
	warning  *model.Warning
	now      time.Time
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new detail view model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// ShowReminder displays a reminder.
func (m *Model) ShowReminder(r model.Reminder, now time.Time) {
	m.reminder = &r
	m.warning = nil
	m.now = now
	m.viewport.SetContent(m.renderReminder())
	m.viewport.GotoTop()
}

// ShowWarning displays a warning.
func (m *Model) ShowWarning(w model.Warning, now time.Time) {
	m.warning = &w
	m.reminder = nil
	m.now = now
	m.viewport.SetContent(m.renderWarning())
	m.viewport.GotoTop()
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.Complete):
			if m.reminder != nil {
				return m, m.action("complete", model.EntityKindReminder, m.reminder.ID)
			}

		case key.Matches(msg, m.keys.Snooze):
			if m.reminder != nil {
				return m, m.action("snooze", model.EntityKindReminder, m.reminder.ID)
			}

		case key.Matches(msg, m.keys.Reschedule):
			if m.reminder != nil {
				return m, m.action("reschedule", model.EntityKindReminder, m.reminder.ID)
			}

		case key.Matches(msg, m.keys.Resolve):
			if m.warning != nil {
				return m, m.action("resolve", model.EntityKindWarning, m.warning.ID)
			}

		case key.Matches(msg, m.keys.Dismiss):
			if m.warning != nil {
				return m, m.action("dismiss", model.EntityKindWarning, m.warning.ID)
			}

		case key.Matches(msg, m.keys.MarkRead):
			if m.reminder != nil {
				return m, m.action("mark_read", model.EntityKindReminder, m.reminder.ID)
			}
			if m.warning != nil {
				return m, m.action("mark_read", model.EntityKindWarning, m.warning.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) action(name string, kind model.EntityKind, id string) tea.Cmd {
	return func() tea.Msg {
		return ActionMsg{Action: name, Kind: kind, EntityID: id}
	}
}

// View renders the detail view.
func (m Model) View() string {
	if m.reminder == nil && m.warning == nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Nothing selected")
	}

	return m.viewport.View()
}

// renderReminder builds the reminder detail content.
func (m Model) renderReminder() string {
	r := m.reminder
	status := lifecycle.EffectiveStatus(*r, m.now)

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(r.Title))

	statusBadge := theme.StatusStyle(string(status)).Render(string(status))
	priBadge := theme.PriorityStyle(string(r.Priority)).Render(string(r.Priority))
	catBadge := theme.CategoryStyle(string(r.Category)).Render(string(r.Category))
	sections = append(sections, lipgloss.JoinHorizontal(
		lipgloss.Top, statusBadge, "  ", priBadge, "  ", catBadge,
	))
	sections = append(sections, "")

	meta := newMetaWriter()
	due := r.DueAt(m.now.Location())
	if r.DueTime != "" {
		meta.add("Due", due.Format("2006-01-02 15:04"))
	} else {
		meta.add("Due", due.Format("2006-01-02"))
	}
	if status == model.ReminderStatusOverdue {
		meta.add("Overdue", theme.OverdueStyle.Render("yes"))
	}
	if r.Subtype != "" {
		meta.add("Subtype", r.Subtype)
	}
	if r.CropID != nil {
		meta.add("Crop", *r.CropID)
	}
	if r.Recurring && r.Recurrence != model.RecurrenceNone {
		meta.add("Repeats", string(r.Recurrence))
	}
	if r.SnoozedUntil != nil {
		meta.add("Snoozed until", r.SnoozedUntil.Format("2006-01-02 15:04"))
	}
	if r.CompletedAt != nil {
		meta.add("Completed", r.CompletedAt.Format("2006-01-02 15:04"))
	}
	if len(r.Channels) > 0 {
		chs := make([]string, len(r.Channels))
		for i, ch := range r.Channels {
			chs[i] = string(ch)
		}
		meta.add("Channels", strings.Join(chs, ", "))
	}
	if r.Provenance.AutoGenerated {
		meta.add("Source", r.Provenance.Source+" (auto)")
	}
	meta.add("Created", r.CreatedAt.Format("2006-01-02 15:04"))
	sections = append(sections, meta.lines...)

	sections = append(sections, m.bodySection("Description", r.Description)...)
	if r.Notes != "" {
		sections = append(sections, m.bodySection("Notes", r.Notes)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWarning builds the warning detail content.
func (m Model) renderWarning() string {
	w := m.warning

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(w.Title))

	sevBadge := theme.SeverityStyle(string(w.Severity)).Render(string(w.Severity))
	statusBadge := theme.StatusStyle(string(w.Status)).Render(string(w.Status))
	catBadge := theme.CategoryStyle(string(w.Category)).Render(string(w.Category))
	sections = append(sections, lipgloss.JoinHorizontal(
		lipgloss.Top, sevBadge, "  ", statusBadge, "  ", catBadge,
	))
	sections = append(sections, "")

	meta := newMetaWriter()
	meta.add("Score", fmt.Sprintf("%d", w.PriorityScore))
	meta.add("Generated", w.GeneratedAt.Format("2006-01-02 15:04"))
	if !w.ExpiresAt.IsZero() {
		meta.add("Expires", w.ExpiresAt.Format("2006-01-02 15:04"))
	}
	if w.ResolvedAt != nil {
		meta.add("Resolved", w.ResolvedAt.Format("2006-01-02 15:04"))
	}
	if w.DismissedAt != nil {
		meta.add("Dismissed", w.DismissedAt.Format("2006-01-02 15:04"))
	}
	if w.ReportedBy != "" {
		meta.add("Reported by", w.ReportedBy)
	}
	if w.Provenance.AutoGenerated {
		meta.add("Source", w.Provenance.Source+" (auto)")
	}
	sections = append(sections, meta.lines...)

	if len(w.AffectedTargets) > 0 {
		sections = append(sections, m.separator()...)
		header := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
		sections = append(sections, header.Render("Affected"))
		for _, t := range w.AffectedTargets {
			line := "  • " + t.Name
			if t.Impact != "" {
				line += theme.DueDateStyle.Render(" — " + t.Impact)
			}
			sections = append(sections, line)
		}
	}

	if len(w.RecommendedActions) > 0 {
		sections = append(sections, m.separator()...)
		header := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
		sections = append(sections, header.Render("Recommended actions"))
		for i, a := range w.RecommendedActions {
			sections = append(sections, fmt.Sprintf("  %d. %s", i+1, a))
		}
	}

	sections = append(sections, m.bodySection("Description", w.Description)...)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) separator() []string {
	sep := lipgloss.NewStyle().
		Foreground(theme.ColorSubtle).
		Render(strings.Repeat("─", min(m.width-4, 80)))
	return []string{"", sep, ""}
}

func (m Model) bodySection(title, body string) []string {
	out := m.separator()
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	out = append(out, header.Render(title))

	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No " + strings.ToLower(title))
	}
	return append(out, body)
}

// metaWriter accumulates aligned label/value lines.
type metaWriter struct {
	lines []string
	label lipgloss.Style
	value lipgloss.Style
}

func newMetaWriter() *metaWriter {
	return &metaWriter{
		label: lipgloss.NewStyle().Foreground(theme.ColorGray).Width(16),
		value: lipgloss.NewStyle().Foreground(theme.ColorWhite),
	}
}

func (mw *metaWriter) add(label, value string) {
	mw.lines = append(mw.lines, mw.label.Render(label+":")+mw.value.Render(value))
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
