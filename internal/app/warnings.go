package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Hemanth040/farm-management-system/internal/lifecycle"
	"github.com/Hemanth040/farm-management-system/internal/model"
)

// warningOpenedMsg carries a warning selected for the detail view.
type warningOpenedMsg struct {
	warning model.Warning
	now     time.Time
}

// openWarning loads a warning for the detail view.
func (m Model) openWarning(id string) tea.Cmd {
	s := m.store
	loc := m.loc
	return func() tea.Msg {
		w, err := s.GetWarningByID(context.Background(), id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return warningOpenedMsg{warning: *w, now: time.Now().In(loc)}
	}
}

// resolveWarning runs the resolve transition.
func (m Model) resolveWarning(id string) tea.Cmd {
	s := m.store
	loc := m.loc
	actor := m.cfg.Actor
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now().In(loc)

		w, err := s.GetWarningByID(ctx, id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}

		resolved, record, err := lifecycle.ResolveWarning(*w, actor, "", now)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{err: s.ApplyWarningTransition(ctx, resolved, record)}
	}
}

// dismissWarning runs the dismiss transition.
func (m Model) dismissWarning(id string) tea.Cmd {
	s := m.store
	loc := m.loc
	actor := m.cfg.Actor
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now().In(loc)

		w, err := s.GetWarningByID(ctx, id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}

		dismissed, record, err := lifecycle.DismissWarning(*w, actor, "", now)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{err: s.ApplyWarningTransition(ctx, dismissed, record)}
	}
}

// markWarningRead flips the read flag without touching history.
func (m Model) markWarningRead(w model.Warning) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		read := lifecycle.MarkWarningRead(w)
		return mutationDoneMsg{err: s.UpdateWarning(context.Background(), read)}
	}
}

// markWarningReadByID loads a warning first, then flips the flag.
func (m Model) markWarningReadByID(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		w, err := s.GetWarningByID(context.Background(), id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		read := lifecycle.MarkWarningRead(*w)
		return mutationDoneMsg{err: s.UpdateWarning(context.Background(), read)}
	}
}
