package reminderform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Hemanth040/farm-management-system/internal/lifecycle"
	"github.com/Hemanth040/farm-management-system/internal/model"
	"github.com/Hemanth040/farm-management-system/internal/theme"
)

// ReminderCreatedMsg is dispatched when a new reminder is submitted.
type ReminderCreatedMsg struct {
	Input lifecycle.CreateReminderInput
}

// ReminderEditedMsg is dispatched when an existing reminder is updated.
type ReminderEditedMsg struct {
	Reminder model.Reminder
}

// SnoozeRequestedMsg is dispatched when a snooze duration is chosen.
type SnoozeRequestedMsg struct {
	ReminderID string
	Duration   time.Duration
	Note       string
}

// RescheduleRequestedMsg is dispatched when a new due date is chosen.
type RescheduleRequestedMsg struct {
	ReminderID string
	NewDate    time.Time
	NewTime    string
	Note       string
}

// FormCancelMsg is dispatched when the user cancels the form.
type FormCancelMsg struct{}

type mode int

const (
	modeCreate mode = iota
	modeEdit
	modeSnooze
	modeReschedule
)

// formBindings holds field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	category    string
	subtype     string
	cropID      string
	dueDate     string
	dueTime     string
	priority    string
	recurring   bool
	recurrence  string
	channels    []string
	notes       string

	snoozeChoice string
	note         string
}

// Model is the Bubble Tea model for reminder forms: create, edit,
// snooze, and reschedule.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	mode   mode
	target model.Reminder
	width  int
	height int
}

// New creates a new reminder form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new reminder.
func (m *Model) StartCreate() tea.Cmd {
	m.mode = modeCreate
	m.target = model.Reminder{}
	*m.fb = formBindings{
		category:   string(model.ReminderCategoryActivity),
		priority:   string(model.PriorityMedium),
		recurrence: string(model.RecurrenceNone),
		channels:   []string{string(model.ChannelInApp)},
	}
	m.form = m.buildDetailForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing reminder.
func (m *Model) StartEdit(r model.Reminder) tea.Cmd {
	m.mode = modeEdit
	m.target = r
	channels := make([]string, len(r.Channels))
	for i, ch := range r.Channels {
		channels[i] = string(ch)
	}
	*m.fb = formBindings{
		title:       r.Title,
		description: r.Description,
		category:    string(r.Category),
		subtype:     r.Subtype,
		dueDate:     r.DueDate.Format("2006-01-02"),
		dueTime:     r.DueTime,
		priority:    string(r.Priority),
		recurring:   r.Recurring,
		recurrence:  string(r.Recurrence),
		channels:    channels,
		notes:       r.Notes,
	}
	if r.CropID != nil {
		m.fb.cropID = *r.CropID
	}
	m.form = m.buildDetailForm()
	return m.form.Init()
}

// StartSnooze initializes the snooze duration prompt for a reminder.
func (m *Model) StartSnooze(r model.Reminder, defaultSnooze time.Duration) tea.Cmd {
	m.mode = modeSnooze
	m.target = r
	*m.fb = formBindings{snoozeChoice: defaultSnooze.String()}
	m.form = m.buildSnoozeForm(defaultSnooze)
	return m.form.Init()
}

// StartReschedule initializes the reschedule prompt for a reminder.
func (m *Model) StartReschedule(r model.Reminder) tea.Cmd {
	m.mode = modeReschedule
	m.target = r
	*m.fb = formBindings{
		dueDate: r.DueDate.Format("2006-01-02"),
		dueTime: r.DueTime,
	}
	m.form = m.buildRescheduleForm()
	return m.form.Init()
}

// Update handles messages for the form.
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
		return m, func() tea.Msg { return FormCancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	var titleText string
	switch m.mode {
	case modeEdit:
		titleText = "Edit Reminder"
	case modeSnooze:
		titleText = "Snooze: " + m.target.Title
	case modeReschedule:
		titleText = "Reschedule: " + m.target.Title
	default:
		titleText = "New Reminder"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildDetailForm() *huh.Form {
	categoryOpts := make([]huh.Option[string], 0, 4)
	for _, c := range model.ValidReminderCategories() {
		categoryOpts = append(categoryOpts, huh.NewOption(string(c), string(c)))
	}

	channelOpts := make([]huh.Option[string], 0, 4)
	for _, ch := range model.ValidChannels() {
		channelOpts = append(channelOpts, huh.NewOption(string(ch), string(ch)))
	}

	recurrenceOpts := make([]huh.Option[string], 0, 4)
	for _, r := range model.ValidRecurrences() {
		recurrenceOpts = append(recurrenceOpts, huh.NewOption(string(r), string(r)))
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs doing?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[string]().
			Title("Category").
			Options(categoryOpts...).
			Value(&m.fb.category),
		huh.NewInput().
			Title("Subtype").
			Placeholder("irrigation, fertilization... (optional)").
			Value(&m.fb.subtype),
		huh.NewInput().
			Title("Crop / Field").
			Placeholder("crop id (optional)").
			Value(&m.fb.cropID),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.dueDate).
			Validate(validateDate),
		huh.NewInput().
			Title("Due Time").
			Placeholder("HH:MM (optional)").
			Value(&m.fb.dueTime).
			Validate(validateOptionalClock),
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("Critical", string(model.PriorityCritical)),
				huh.NewOption("High", string(model.PriorityHigh)),
				huh.NewOption("Medium", string(model.PriorityMedium)),
				huh.NewOption("Low", string(model.PriorityLow)),
				huh.NewOption("Informational", string(model.PriorityInformational)),
			).
			Value(&m.fb.priority),
		huh.NewConfirm().
			Title("Recurring").
			Value(&m.fb.recurring),
		huh.NewSelect[string]().
			Title("Recurrence").
			Options(recurrenceOpts...).
			Value(&m.fb.recurrence),
		huh.NewMultiSelect[string]().
			Title("Channels").
			Options(channelOpts...).
			Value(&m.fb.channels),
		huh.NewText().
			Title("Notes").
			Placeholder("Optional notes...").
			Value(&m.fb.notes),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// snoozeChoices maps the snooze menu labels to durations.
var snoozeChoices = []struct {
	label string
	d     time.Duration
}{
	{"30 minutes", 30 * time.Minute},
	{"1 hour", time.Hour},
	{"3 hours", 3 * time.Hour},
	{"Tomorrow (24 hours)", 24 * time.Hour},
	{"3 days", 72 * time.Hour},
}

func (m *Model) buildSnoozeForm(defaultSnooze time.Duration) *huh.Form {
	opts := make([]huh.Option[string], 0, len(snoozeChoices)+1)
	opts = append(opts, huh.NewOption(
		fmt.Sprintf("Default (%s)", defaultSnooze), defaultSnooze.String(),
	))
	for _, c := range snoozeChoices {
		opts = append(opts, huh.NewOption(c.label, c.d.String()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Snooze for").
				Options(opts...).
				Value(&m.fb.snoozeChoice),
			huh.NewInput().
				Title("Note").
				Placeholder("optional").
				Value(&m.fb.note),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildRescheduleForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New Due Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.dueDate).
				Validate(validateDate),
			huh.NewInput().
				Title("New Due Time").
				Placeholder("HH:MM (optional)").
				Value(&m.fb.dueTime).
				Validate(validateOptionalClock),
			huh.NewInput().
				Title("Note").
				Placeholder("optional").
				Value(&m.fb.note),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	switch m.mode {
	case modeSnooze:
		d, err := time.ParseDuration(m.fb.snoozeChoice)
		if err != nil {
			return func() tea.Msg { return FormCancelMsg{} }
		}
		id, note := m.target.ID, m.fb.note
		return func() tea.Msg {
			return SnoozeRequestedMsg{ReminderID: id, Duration: d, Note: note}
		}

	case modeReschedule:
		date, err := time.Parse("2006-01-02", m.fb.dueDate)
		if err != nil {
			return func() tea.Msg { return FormCancelMsg{} }
		}
		id := m.target.ID
		newTime, note := strings.TrimSpace(m.fb.dueTime), m.fb.note
		return func() tea.Msg {
			return RescheduleRequestedMsg{
				ReminderID: id,
				NewDate:    date,
				NewTime:    newTime,
				Note:       note,
			}
		}
	}

	channels := make([]model.Channel, len(m.fb.channels))
	for i, ch := range m.fb.channels {
		channels[i] = model.Channel(ch)
	}
	date, _ := time.Parse("2006-01-02", m.fb.dueDate)

	if m.mode == modeEdit {
		r := m.target
		r.Title = m.fb.title
		r.Description = m.fb.description
		r.Category = model.ReminderCategory(m.fb.category)
		r.Subtype = m.fb.subtype
		r.DueDate = date
		r.DueTime = strings.TrimSpace(m.fb.dueTime)
		r.Priority = model.Priority(m.fb.priority)
		r.Recurring = m.fb.recurring
		r.Recurrence = model.Recurrence(m.fb.recurrence)
		r.Channels = channels
		r.Notes = m.fb.notes
		if id := strings.TrimSpace(m.fb.cropID); id != "" {
			r.CropID = &id
		} else {
			r.CropID = nil
		}
		return func() tea.Msg { return ReminderEditedMsg{Reminder: r} }
	}

	input := lifecycle.CreateReminderInput{
		Title:       m.fb.title,
		Description: m.fb.description,
		Category:    model.ReminderCategory(m.fb.category),
		Subtype:     m.fb.subtype,
		DueDate:     date,
		DueTime:     strings.TrimSpace(m.fb.dueTime),
		Priority:    model.Priority(m.fb.priority),
		Recurring:   m.fb.recurring,
		Recurrence:  model.Recurrence(m.fb.recurrence),
		Channels:    channels,
		Notes:       m.fb.notes,
	}
	if id := strings.TrimSpace(m.fb.cropID); id != "" {
		input.CropID = &id
	}
	return func() tea.Msg { return ReminderCreatedMsg{Input: input} }
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

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalClock(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("invalid time format, use HH:MM")
	}
	return nil
}
