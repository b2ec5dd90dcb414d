package reminderlist

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Hemanth040/farm-management-system/internal/keys"
	"github.com/Hemanth040/farm-management-system/internal/lifecycle"
	"github.com/Hemanth040/farm-management-system/internal/model"
	"github.com/Hemanth040/farm-management-system/internal/store"
	"github.com/Hemanth040/farm-management-system/internal/theme"
)

// RemindersLoadedMsg is sent when reminders have been loaded and ranked.
type RemindersLoadedMsg struct {
	Reminders []model.Reminder
	Now       time.Time
}

// SelectedReminderMsg is sent when a user selects a reminder to view.
type SelectedReminderMsg struct {
	ReminderID string
}

// statusFilters defines the status filter cycle bound to the filter key.
// The nil entry means "all".
var statusFilters = []*model.ReminderStatus{
	nil,
	ptr(model.ReminderStatusPending),
	ptr(model.ReminderStatusOverdue),
	ptr(model.ReminderStatusSnoozed),
	ptr(model.ReminderStatusCompleted),
}

func ptr[T any](v T) *T { return &v }

// Model is the reminder list view component.
type Model struct {
	list        list.Model
	store       store.Store
	keys        *keys.KeyMap
	loc         *time.Location
	criteria    lifecycle.ReminderCriteria
	filterIndex int
	dueAsc      bool
	query       string
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new reminder list model.
func New(s store.Store, k *keys.KeyMap, loc *time.Location, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Reminders"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search reminders..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		store:       s,
		keys:        k,
		loc:         loc,
		dueAsc:      true,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of reminders.
func (m Model) Init() tea.Cmd {
	return m.LoadReminders()
}

// Update handles messages for the reminder list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RemindersLoadedMsg:
		items := make([]list.Item, len(msg.Reminders))
		for i, r := range msg.Reminders {
			items[i] = ReminderItem{Reminder: r, Now: msg.Now}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = strings.TrimSpace(m.searchInput.Value())
		return m, m.LoadReminders()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query = ""
		return m, m.LoadReminders()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(ReminderItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedReminderMsg{ReminderID: item.Reminder.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleFilter):
		m.filterIndex = (m.filterIndex + 1) % len(statusFilters)
		m.criteria.Status = statusFilters[m.filterIndex]
		return m, m.LoadReminders()

	case key.Matches(msg, m.keys.CycleSort):
		m.dueAsc = !m.dueAsc
		return m, m.LoadReminders()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Searching reports whether the search input currently has focus.
func (m Model) Searching() bool { return m.searchMode }

// Selected returns the currently highlighted reminder, if any.
func (m Model) Selected() (model.Reminder, bool) {
	item, ok := m.list.SelectedItem().(ReminderItem)
	if !ok {
		return model.Reminder{}, false
	}
	return item.Reminder, true
}

// View renders the reminder list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no reminders match.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.criteria.Status != nil || m.query != "" {
		return style.Render("No matching reminders.\nPress f to cycle the status filter, / to search.")
	}

	return style.Render("No reminders yet.\n\nPress n to create one.")
}

// LoadReminders returns a tea.Cmd that loads, filters, and ranks the
// reminder set.
func (m Model) LoadReminders() tea.Cmd {
	s := m.store
	criteria := m.criteria
	query := strings.ToLower(m.query)
	dueAsc := m.dueAsc
	loc := m.loc

	return func() tea.Msg {
		now := time.Now().In(loc)

		reminders, err := s.GetReminders(context.Background())
		if err != nil {
			return RemindersLoadedMsg{Now: now}
		}

		filtered, err := lifecycle.FilterReminders(reminders, criteria, now)
		if err != nil {
			return RemindersLoadedMsg{Now: now}
		}

		if query != "" {
			matched := filtered[:0]
			for _, r := range filtered {
				if strings.Contains(strings.ToLower(r.Title), query) ||
					strings.Contains(strings.ToLower(r.Description), query) {
					matched = append(matched, r)
				}
			}
			filtered = matched
		}

		return RemindersLoadedMsg{
			Reminders: lifecycle.SortReminders(filtered, dueAsc, loc),
			Now:       now,
		}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
