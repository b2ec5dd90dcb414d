package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Hemanth040/farm-management-system/internal/lifecycle"
	"github.com/Hemanth040/farm-management-system/internal/model"
	"github.com/Hemanth040/farm-management-system/internal/notify"
	"github.com/Hemanth040/farm-management-system/internal/store"
	appsync "github.com/Hemanth040/farm-management-system/internal/sync"
	"github.com/Hemanth040/farm-management-system/internal/ui"
	"github.com/Hemanth040/farm-management-system/internal/ui/detail"
	helpview "github.com/Hemanth040/farm-management-system/internal/ui/help"
	"github.com/Hemanth040/farm-management-system/internal/ui/historylog"
	"github.com/Hemanth040/farm-management-system/internal/ui/reminderform"
	"github.com/Hemanth040/farm-management-system/internal/ui/reminderlist"
	"github.com/Hemanth040/farm-management-system/internal/ui/settingsform"
	"github.com/Hemanth040/farm-management-system/internal/ui/warninglist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewReminders ViewState = iota
	ViewWarnings
	ViewHistory
	ViewDetail
	ViewForm
	ViewSettings
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the persistence layer.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        store.Store
	keys         *KeyMap
	cfg          *model.AppConfig
	loc          *time.Location
	log          zerolog.Logger

	reminderList reminderlist.Model
	warningList  warninglist.Model
	historyLog   historylog.Model
	detail       detail.Model
	form         reminderform.Model
	settingsForm settingsform.Model
	helpView     helpview.Model

	scheduler *appsync.Scheduler
	feed      *notify.InAppAdapter

	settings      model.NotificationSettings
	summary       lifecycle.Summary
	statusMessage string
	ready         bool
}

// New creates the root application model. The scheduler and in-app feed
// are constructed by the caller so their adapters share configuration.
func New(s store.Store, cfg *model.AppConfig, scheduler *appsync.Scheduler, feed *notify.InAppAdapter, log zerolog.Logger) Model {
	k := DefaultKeyMap()
	loc := cfg.Location()

	return Model{
		currentView:  ViewReminders,
		store:        s,
		keys:         k,
		cfg:          cfg,
		loc:          loc,
		log:          log,
		reminderList: reminderlist.New(s, k, loc, 80, 24),
		warningList:  warninglist.New(s, k, loc, 80, 24),
		historyLog:   historylog.New(s, k, 80, 24),
		detail:       detail.New(k, 80, 24),
		form:         reminderform.New(80, 24),
		settingsForm: settingsform.New(80, 24),
		helpView:     helpview.New(k, 80, 24),
		scheduler:    scheduler,
		feed:         feed,
		settings:     model.DefaultNotificationSettings(),
	}
}

// Init loads the initial data and starts the background scan.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.reminderList.Init(),
		m.warningList.Init(),
		m.historyLog.Init(),
		m.loadSettings(),
		m.refreshSummary(),
		m.scheduler.Start(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.reminderList.SetSize(w, h)
		m.warningList.SetSize(w, h)
		m.historyLog.SetSize(w, h)
		m.detail.SetSize(w, h)
		m.form.SetSize(w, h)
		m.settingsForm.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to the active view so huh forms can size themselves.
		return m.updateActiveView(msg)

	case settingsLoadedMsg:
		m.settings = msg.settings
		return m, nil

	case summaryMsg:
		m.summary = msg.summary
		return m, nil

	case appsync.ScanResultMsg:
		cmds := []tea.Cmd{
			m.scheduler.WaitForNextResult(),
			m.refreshSummary(),
		}
		if msg.Notified > 0 || msg.Error != nil {
			cmds = append(cmds,
				m.reminderList.LoadReminders(),
				m.warningList.LoadWarnings(),
			)
		}
		if msg.Notified > 0 && m.feed != nil {
			if recent := m.feed.Recent(); len(recent) > 0 {
				m.statusMessage = "🔔 " + recent[0].Notification.Title
			}
		}
		return m, tea.Batch(cmds...)

	case reminderlist.SelectedReminderMsg:
		return m, m.openReminder(msg.ReminderID)

	case warninglist.SelectedWarningMsg:
		return m, m.openWarning(msg.WarningID)

	case reminderOpenedMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.ShowReminder(msg.reminder, msg.now)
		if !msg.reminder.IsRead {
			return m, m.markReminderRead(msg.reminder)
		}
		return m, nil

	case warningOpenedMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.ShowWarning(msg.warning, msg.now)
		if !msg.warning.IsRead {
			return m, m.markWarningRead(msg.warning)
		}
		return m, nil

	case snoozeFormReadyMsg:
		m.previousView = m.currentView
		m.currentView = ViewForm
		return m, m.form.StartSnooze(msg.reminder, m.settings.DefaultSnooze)

	case rescheduleFormReadyMsg:
		m.previousView = m.currentView
		m.currentView = ViewForm
		return m, m.form.StartReschedule(msg.reminder)

	case editFormReadyMsg:
		m.previousView = m.currentView
		m.currentView = ViewForm
		return m, m.form.StartEdit(msg.reminder)

	case reminderform.ReminderCreatedMsg:
		m.currentView = ViewReminders
		return m, m.createReminder(msg.Input)

	case reminderform.ReminderEditedMsg:
		m.currentView = ViewReminders
		return m, m.saveReminder(msg.Reminder)

	case reminderform.SnoozeRequestedMsg:
		m.currentView = ViewReminders
		return m, m.snoozeReminder(msg.ReminderID, msg.Duration, msg.Note)

	case reminderform.RescheduleRequestedMsg:
		m.currentView = ViewReminders
		return m, m.rescheduleReminder(msg.ReminderID, msg.NewDate, msg.NewTime, msg.Note)

	case reminderform.FormCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case settingsform.SettingsSavedMsg:
		m.currentView = m.previousView
		return m, m.saveSettings(msg.Settings)

	case settingsform.SettingsCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case detail.BackMsg:
		m.currentView = m.previousView
		if m.currentView == ViewDetail {
			m.currentView = ViewReminders
		}
		return m, nil

	case detail.ActionMsg:
		return m.handleDetailAction(msg)

	case mutationDoneMsg:
		if msg.err != nil {
			m.statusMessage = friendlyError(msg.err)
			m.log.Warn().Err(msg.err).Msg("lifecycle action rejected")
			return m, nil
		}
		m.statusMessage = ""
		if m.currentView == ViewDetail {
			m.currentView = m.previousView
		}
		// Let the scheduler pick up anything the mutation made announceable.
		m.scheduler.RefreshNow()
		return m, tea.Batch(
			m.reminderList.LoadReminders(),
			m.warningList.LoadWarnings(),
			m.historyLog.LoadHistory(),
			m.refreshSummary(),
		)

	case tea.KeyMsg:
		if model, cmd, handled := m.handleGlobalKeys(msg); handled {
			return model, cmd
		}
		if model, cmd, handled := m.handleListActionKeys(msg); handled {
			return model, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work in every view.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	inForm := m.currentView == ViewForm || m.currentView == ViewSettings

	if msg.String() == "ctrl+c" {
		m.scheduler.Stop()
		return m, tea.Quit, true
	}

	// While a search input has focus, every other key belongs to it.
	if m.searching() {
		return m, nil, false
	}

	switch msg.String() {

	case "q":
		if m.listViewActive() {
			m.scheduler.Stop()
			return m, tea.Quit, true
		}

	case "?":
		if inForm {
			break
		}
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case "1":
		if m.listViewActive() {
			m.currentView = ViewReminders
			return m, m.reminderList.LoadReminders(), true
		}

	case "2":
		if m.listViewActive() {
			m.currentView = ViewWarnings
			return m, m.warningList.LoadWarnings(), true
		}

	case "3":
		if m.listViewActive() {
			m.currentView = ViewHistory
			return m, m.historyLog.LoadHistory(), true
		}

	case "n":
		if m.currentView == ViewReminders {
			m.previousView = m.currentView
			m.currentView = ViewForm
			return m, m.form.StartCreate(), true
		}

	case "g":
		if m.listViewActive() {
			m.previousView = m.currentView
			m.currentView = ViewSettings
			return m, m.settingsForm.Start(m.settings), true
		}

	case "r":
		if m.listViewActive() {
			m.scheduler.RefreshNow()
			return m, tea.Batch(
				m.reminderList.LoadReminders(),
				m.warningList.LoadWarnings(),
				m.refreshSummary(),
			), true
		}
	}

	return m, nil, false
}

// handleListActionKeys processes lifecycle action keys on the selected
// list item.
func (m Model) handleListActionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch m.currentView {
	case ViewReminders:
		if m.searching() {
			return m, nil, false
		}
		r, ok := m.reminderList.Selected()
		if !ok {
			return m, nil, false
		}
		switch msg.String() {
		case "c":
			return m, m.completeReminder(r.ID), true
		case "z":
			return m, m.prepareSnooze(r.ID), true
		case "e":
			return m, m.prepareReschedule(r.ID), true
		case "E":
			return m, m.prepareEdit(r.ID), true
		case "d":
			return m, m.deleteReminder(r.ID), true
		case "m":
			return m, m.markReminderRead(r), true
		}

	case ViewWarnings:
		if m.searching() {
			return m, nil, false
		}
		w, ok := m.warningList.Selected()
		if !ok {
			return m, nil, false
		}
		switch msg.String() {
		case "v":
			return m, m.resolveWarning(w.ID), true
		case "x":
			return m, m.dismissWarning(w.ID), true
		case "m":
			return m, m.markWarningRead(w), true
		}
	}

	return m, nil, false
}

// handleDetailAction executes a lifecycle action requested from the
// detail view.
func (m Model) handleDetailAction(msg detail.ActionMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case "complete":
		return m, m.completeReminder(msg.EntityID)
	case "snooze":
		return m, m.prepareSnooze(msg.EntityID)
	case "reschedule":
		return m, m.prepareReschedule(msg.EntityID)
	case "resolve":
		return m, m.resolveWarning(msg.EntityID)
	case "dismiss":
		return m, m.dismissWarning(msg.EntityID)
	case "mark_read":
		if msg.Kind == model.EntityKindReminder {
			return m, m.markReminderReadByID(msg.EntityID)
		}
		return m, m.markWarningReadByID(msg.EntityID)
	}
	return m, nil
}

// searching reports whether the active list view's search input has
// focus.
func (m Model) searching() bool {
	switch m.currentView {
	case ViewReminders:
		return m.reminderList.Searching()
	case ViewWarnings:
		return m.warningList.Searching()
	default:
		return false
	}
}

func (m Model) listViewActive() bool {
	switch m.currentView {
	case ViewReminders, ViewWarnings, ViewHistory:
		return true
	default:
		return false
	}
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewReminders:
		m.reminderList, cmd = m.reminderList.Update(msg)
	case ViewWarnings:
		m.warningList, cmd = m.warningList.Update(msg)
	case ViewHistory:
		m.historyLog, cmd = m.historyLog.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	case ViewSettings:
		m.settingsForm, cmd = m.settingsForm.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Farm Dashboard", m.headerStatus())
	noticeText, alert := m.notice()
	notice := m.layout.RenderNotice(noticeText, alert)
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, notice, content, statusBar)
}

// notice picks what the line under the header shows. Critical warnings
// outrank transient status messages.
func (m Model) notice() (string, bool) {
	if m.summary.CriticalWarnings > 0 {
		return fmt.Sprintf("⚠ %d critical warning(s) active", m.summary.CriticalWarnings), true
	}
	return m.statusMessage, false
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewReminders:
		return m.reminderList.View()
	case ViewWarnings:
		return m.warningList.View()
	case ViewHistory:
		return m.historyLog.View()
	case ViewDetail:
		return m.detail.View()
	case ViewForm:
		return m.form.View()
	case ViewSettings:
		return m.settingsForm.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// headerStatus summarizes the live dashboard state for the header bar.
func (m Model) headerStatus() string {
	s := m.summary
	out := fmt.Sprintf("%d due today · %d overdue · %d warnings", s.DueToday, s.OverdueReminders, s.ActiveWarnings)
	if s.CriticalWarnings > 0 {
		out = fmt.Sprintf("%s (%d critical)", out, s.CriticalWarnings)
	}
	if s.Unread > 0 {
		out = fmt.Sprintf("%s · %d new", out, s.Unread)
	}
	return out
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewDetail:
		if m.detailShowsWarning() {
			return "esc back | v resolve | x dismiss | j/k scroll"
		}
		return "esc back | c complete | z snooze | e reschedule | j/k scroll"
	case ViewForm, ViewSettings:
		return "enter submit | esc cancel"
	case ViewWarnings:
		return "q quit | ? help | v resolve | x dismiss | f filter | / search | 1/2/3 views"
	case ViewHistory:
		return "q quit | ? help | 1/2/3 views"
	default:
		return "q quit | ? help | n new | c complete | z snooze | e reschedule | f filter | tab sort"
	}
}

func (m Model) detailShowsWarning() bool {
	return m.previousView == ViewWarnings
}
