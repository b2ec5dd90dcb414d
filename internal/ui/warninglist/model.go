package warninglist

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

// WarningsLoadedMsg is sent when warnings have been loaded and ranked.
type WarningsLoadedMsg struct {
	Warnings []model.Warning
	Now      time.Time
}

// SelectedWarningMsg is sent when a user selects a warning to view.
type SelectedWarningMsg struct {
	WarningID string
}

// statusFilters defines the status filter cycle bound to the filter key.
var statusFilters = []*model.WarningStatus{
	nil,
	ptr(model.WarningStatusActive),
	ptr(model.WarningStatusResolved),
	ptr(model.WarningStatusDismissed),
}

func ptr[T any](v T) *T { return &v }

// Model is the warning list view component.
type Model struct {
	list        list.Model
	store       store.Store
	keys        *keys.KeyMap
	loc         *time.Location
	criteria    lifecycle.WarningCriteria
	filterIndex int
	query       string
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new warning list model.
func New(s store.Store, k *keys.KeyMap, loc *time.Location, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Warnings"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search warnings..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		store:       s,
		keys:        k,
		loc:         loc,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of warnings.
func (m Model) Init() tea.Cmd {
	return m.LoadWarnings()
}

// Update handles messages for the warning list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case WarningsLoadedMsg:
		items := make([]list.Item, len(msg.Warnings))
		for i, wn := range msg.Warnings {
			items[i] = WarningItem{Warning: wn, Now: msg.Now}
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

func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = strings.TrimSpace(m.searchInput.Value())
		return m, m.LoadWarnings()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query = ""
		return m, m.LoadWarnings()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(WarningItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedWarningMsg{WarningID: item.Warning.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleFilter):
		m.filterIndex = (m.filterIndex + 1) % len(statusFilters)
		m.criteria.Status = statusFilters[m.filterIndex]
		return m, m.LoadWarnings()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Searching reports whether the search input currently has focus.
func (m Model) Searching() bool { return m.searchMode }

// Selected returns the currently highlighted warning, if any.
func (m Model) Selected() (model.Warning, bool) {
	item, ok := m.list.SelectedItem().(WarningItem)
	if !ok {
		return model.Warning{}, false
	}
	return item.Warning, true
}

// View renders the warning list view.
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

func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.criteria.Status != nil || m.query != "" {
		return style.Render("No matching warnings.\nPress f to cycle the status filter, / to search.")
	}

	return style.Render("No warnings. All clear.")
}

// LoadWarnings returns a tea.Cmd that loads, filters, and ranks the
// warning set by priority score.
func (m Model) LoadWarnings() tea.Cmd {
	s := m.store
	criteria := m.criteria
	query := strings.ToLower(m.query)
	loc := m.loc

	return func() tea.Msg {
		now := time.Now().In(loc)

		warnings, err := s.GetWarnings(context.Background())
		if err != nil {
			return WarningsLoadedMsg{Now: now}
		}

		filtered, err := lifecycle.FilterWarnings(warnings, criteria)
		if err != nil {
			return WarningsLoadedMsg{Now: now}
		}

		if query != "" {
			matched := filtered[:0]
			for _, wn := range filtered {
				if strings.Contains(strings.ToLower(wn.Title), query) ||
					strings.Contains(strings.ToLower(wn.Description), query) {
					matched = append(matched, wn)
				}
			}
			filtered = matched
		}

		return WarningsLoadedMsg{
			Warnings: lifecycle.SortWarnings(filtered),
			Now:      now,
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
