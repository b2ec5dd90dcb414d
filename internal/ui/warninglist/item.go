package warninglist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Hemanth040/farm-management-system/internal/model"
	"github.com/Hemanth040/farm-management-system/internal/theme"
)

// WarningItem wraps a model.Warning so it can be used in a bubbles/list.
type WarningItem struct {
	Warning model.Warning
	Now     time.Time
}

// FilterValue returns the string used for fuzzy filtering.
func (i WarningItem) FilterValue() string { return i.Warning.Title }

// Title returns the warning title for the list.
func (i WarningItem) Title() string { return i.Warning.Title }

// Description returns a short summary line for the list.
func (i WarningItem) Description() string {
	parts := []string{
		string(i.Warning.Category),
		string(i.Warning.Severity),
		string(i.Warning.Status),
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering warning rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single warning line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	wi, ok := item.(WarningItem)
	if !ok {
		return
	}

	wn := wi.Warning

	catBadge := theme.CategoryStyle(string(wn.Category)).Render(string(wn.Category))
	sevBadge := theme.SeverityStyle(string(wn.Severity)).Render(string(wn.Severity))
	statusBadge := theme.StatusStyle(string(wn.Status)).Render(string(wn.Status))

	title := wn.Title
	if !wn.IsRead {
		title = theme.UnreadStyle.Render(title)
	}

	score := theme.DueDateStyle.Render(fmt.Sprintf(" (%d)", wn.PriorityScore))

	targetStr := ""
	if len(wn.AffectedTargets) > 0 {
		names := make([]string, 0, 2)
		for _, t := range wn.AffectedTargets {
			names = append(names, t.Name)
			if len(names) == 2 {
				break
			}
		}
		if len(wn.AffectedTargets) > 2 {
			names = append(names, "…")
		}
		targetStr = theme.DueDateStyle.Render(" [" + strings.Join(names, ",") + "]")
	}

	expiresStr := ""
	if !wn.ExpiresAt.IsZero() && wn.Status == model.WarningStatusActive {
		if wn.ExpiresAt.Before(wi.Now) {
			expiresStr = theme.OverdueStyle.Render(" EXPIRED")
		} else {
			expiresStr = theme.DueDateStyle.Render(" expires " + wn.ExpiresAt.Format("Jan 02"))
		}
	}

	line := fmt.Sprintf(
		"! %s %s %s %s%s%s%s",
		sevBadge, catBadge, statusBadge, title, score, targetStr, expiresStr,
	)

	if wn.Status.IsTerminal() {
		line = theme.DimmedStyle.Render(line)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
