// Package help renders the keyboard shortcut overlay and a legend for
// the badges used across the dashboard lists.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Hemanth040/farm-management-system/internal/keys"
	"github.com/Hemanth040/farm-management-system/internal/theme"
)

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the shortcut table and the badge legend.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	m.help.Width = m.width - 4
	m.help.ShowAll = true

	sections := []string{
		titleStyle.Render("Keyboard Shortcuts"),
		m.help.View(m.keys),
		"",
		titleStyle.Render("Legend"),
		m.legend(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// legend explains the badges the reminder and warning lists use.
func (m Model) legend() string {
	label := theme.HelpStyle

	rows := []string{
		"○ pending   z snoozed   ✓ completed   ! warning",
		lipgloss.JoinHorizontal(lipgloss.Top,
			theme.PriorityStyle("critical").Render("P1"), label.Render(" critical  "),
			theme.PriorityStyle("high").Render("P2"), label.Render(" high  "),
			theme.PriorityStyle("medium").Render("P3"), label.Render(" medium  "),
			theme.PriorityStyle("low").Render("P4"), label.Render(" low  "),
			theme.PriorityStyle("informational").Render("P5"), label.Render(" informational"),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			theme.OverdueStyle.Render("OVERDUE"), label.Render(" past due  "),
			theme.UnreadStyle.Render("title"), label.Render(" unread  "),
			theme.DimmedStyle.Render("title"), label.Render(" closed out"),
		),
		label.Render("Warnings rank by severity weight plus detector score; ties break on severity, then recency."),
	}

	return strings.Join(rows, "\n")
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
