package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Hemanth040/farm-management-system/internal/theme"
)

// Layout manages the dashboard frame: header, notice line, content area,
// status bar. The notice line is always reserved so the content height
// stays stable whether or not an alert is showing.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	NoticeHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		NoticeHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.NoticeHeight - l.StatusBarHeight
}

// RenderHeader renders the top bar: app title on the left, the live
// summary counts on the right.
func (l Layout) RenderHeader(title, summary string) string {
	left := theme.HeaderStyle.Render(title)
	right := theme.HeaderStyle.Align(lipgloss.Right).Render(summary)

	gap := l.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, filler, right)
}

// RenderNotice renders the line under the header. Alerts get the warning
// banner treatment; ordinary notices render dimmed. An empty notice
// yields a blank line so the frame height never shifts.
func (l Layout) RenderNotice(text string, alert bool) string {
	if text == "" {
		return lipgloss.NewStyle().Width(l.Width).Render("")
	}

	style := theme.NoticeStyle
	if alert {
		style = theme.AlertBannerStyle
	}
	return style.Width(l.Width).Render(" " + text)
}

// RenderStatusBar renders the bottom bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}
	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes the full terminal view.
func (l Layout) RenderWithFrame(header, notice, content, statusBar string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		notice,
		content,
		statusBar,
	)
}
