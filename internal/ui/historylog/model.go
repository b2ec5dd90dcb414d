package historylog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Hemanth040/farm-management-system/internal/keys"
	"github.com/Hemanth040/farm-management-system/internal/lifecycle"
	"github.com/Hemanth040/farm-management-system/internal/model"
	"github.com/Hemanth040/farm-management-system/internal/store"
	"github.com/Hemanth040/farm-management-system/internal/theme"
)

// defaultLimit caps how many audit records the log view loads.
const defaultLimit = 200

// HistoryLoadedMsg is sent when the audit history has been loaded.
type HistoryLoadedMsg struct {
	Records []model.HistoryRecord
}

// historyItem wraps a model.HistoryRecord for the bubbles/list.
type historyItem struct {
	record model.HistoryRecord
}

func (i historyItem) FilterValue() string { return i.record.Title }

// itemDelegate renders one audit record per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int  { return 1 }
func (d itemDelegate) Spacing() int { return 0 }

func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	hi, ok := item.(historyItem)
	if !ok {
		return
	}

	rec := hi.record

	when := theme.DueDateStyle.Render(rec.ActionTime().Format("Jan 02 15:04"))
	kind := theme.CategoryStyle(string(rec.EntityKind)).Render(string(rec.EntityKind))
	action := theme.StatusStyle(actionStatus(rec.Action)).Render(string(rec.Action))

	detail := ""
	switch rec.Action {
	case model.HistoryActionSnoozed:
		if rec.SnoozeDuration != "" {
			detail = theme.DueDateStyle.Render(" for " + rec.SnoozeDuration)
		}
	case model.HistoryActionRescheduled:
		if rec.RescheduledFrom != nil && rec.RescheduledTo != nil {
			detail = theme.DueDateStyle.Render(fmt.Sprintf(
				" %s → %s",
				rec.RescheduledFrom.Format("Jan 02"),
				rec.RescheduledTo.Format("Jan 02"),
			))
		}
	}

	actor := ""
	if rec.Actor != "" {
		actor = theme.DueDateStyle.Render(" by " + rec.Actor)
	}

	note := ""
	if rec.Note != "" {
		note = theme.HelpStyle.Render(" — " + rec.Note)
	}

	line := fmt.Sprintf("%s %s %s %s%s%s%s", when, kind, action, rec.Title, detail, actor, note)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// actionStatus maps an audit action to the status palette.
func actionStatus(a model.HistoryAction) string {
	switch a {
	case model.HistoryActionCompleted, model.HistoryActionResolved:
		return "completed"
	case model.HistoryActionSnoozed:
		return "snoozed"
	case model.HistoryActionDismissed:
		return "dismissed"
	default:
		return "pending"
	}
}

// Model is the audit history view component.
type Model struct {
	list   list.Model
	store  store.Store
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new history log model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, itemDelegate{}, width, height-2)
	l.Title = "History"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		store:  s,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns a command that loads the history.
func (m Model) Init() tea.Cmd {
	return m.LoadHistory()
}

// Update handles messages for the history view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(HistoryLoadedMsg); ok {
		items := make([]list.Item, len(msg.Records))
		for i, rec := range msg.Records {
			items[i] = historyItem{record: rec}
		}
		cmd := m.list.SetItems(items)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the history view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render(strings.Join([]string{
				"No history yet.",
				"Lifecycle actions on reminders and warnings land here.",
			}, "\n"))
	}
	return m.list.View()
}

// LoadHistory returns a tea.Cmd that loads the most recent audit records.
func (m Model) LoadHistory() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		records, err := s.GetHistory(context.Background(), defaultLimit)
		if err != nil {
			return HistoryLoadedMsg{}
		}
		return HistoryLoadedMsg{Records: lifecycle.SortHistory(records)}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
