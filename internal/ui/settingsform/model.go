package settingsform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Hemanth040/farm-management-system/internal/model"
	"github.com/Hemanth040/farm-management-system/internal/theme"
)

// SettingsSavedMsg is dispatched when the notification settings form is
// submitted.
type SettingsSavedMsg struct {
	Settings model.NotificationSettings
}

// SettingsCancelMsg is dispatched when the user cancels the form.
type SettingsCancelMsg struct{}

// formBindings holds field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	inApp bool
	push  bool
	sms   bool
	email bool

	quietEnabled bool
	quietStart   string
	quietEnd     string

	defaultSnooze string
}

// Model is the Bubble Tea model for the notification settings form.
type Model struct {
	form *huh.Form
	fb   *formBindings

	// matrix is carried through unchanged; the form edits toggles and
	// quiet hours only.
	matrix map[model.Priority][]model.Channel

	width  int
	height int
}

// New creates a new settings form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form from the current settings.
func (m *Model) Start(s model.NotificationSettings) tea.Cmd {
	*m.fb = formBindings{
		inApp:         s.Channels.InApp,
		push:          s.Channels.Push,
		sms:           s.Channels.SMS,
		email:         s.Channels.Email,
		quietEnabled:  s.QuietHours.Enabled,
		quietStart:    s.QuietHours.Start,
		quietEnd:      s.QuietHours.End,
		defaultSnooze: s.DefaultSnooze.String(),
	}
	m.matrix = s.PriorityMatrix
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the settings form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return SettingsCancelMsg{} }
	}

	return m, cmd
}

// View renders the settings form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Notification Settings") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("In-app notifications").
				Value(&m.fb.inApp),
			huh.NewConfirm().
				Title("Push notifications").
				Value(&m.fb.push),
			huh.NewConfirm().
				Title("SMS notifications").
				Value(&m.fb.sms),
			huh.NewConfirm().
				Title("Email notifications").
				Value(&m.fb.email),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Quiet hours").
				Description("Push and SMS are held during this window unless critical.").
				Value(&m.fb.quietEnabled),
			huh.NewInput().
				Title("Quiet start").
				Placeholder("22:00").
				Value(&m.fb.quietStart).
				Validate(validateClock),
			huh.NewInput().
				Title("Quiet end").
				Placeholder("06:00").
				Value(&m.fb.quietEnd).
				Validate(validateClock),
			huh.NewSelect[string]().
				Title("Default snooze").
				Options(
					huh.NewOption("30 minutes", (30*time.Minute).String()),
					huh.NewOption("1 hour", time.Hour.String()),
					huh.NewOption("3 hours", (3*time.Hour).String()),
					huh.NewOption("1 day", (24*time.Hour).String()),
				).
				Value(&m.fb.defaultSnooze),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	snooze, err := time.ParseDuration(m.fb.defaultSnooze)
	if err != nil || snooze <= 0 {
		snooze = time.Hour
	}

	settings := model.NotificationSettings{
		Channels: model.ChannelToggles{
			InApp: m.fb.inApp,
			Push:  m.fb.push,
			SMS:   m.fb.sms,
			Email: m.fb.email,
		},
		QuietHours: model.QuietHours{
			Enabled: m.fb.quietEnabled,
			Start:   strings.TrimSpace(m.fb.quietStart),
			End:     strings.TrimSpace(m.fb.quietEnd),
		},
		PriorityMatrix: m.matrix,
		DefaultSnooze:  snooze,
	}

	return func() tea.Msg { return SettingsSavedMsg{Settings: settings} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateClock(s string) error {
	if _, err := time.Parse("15:04", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid time format, use HH:MM")
	}
	return nil
}
