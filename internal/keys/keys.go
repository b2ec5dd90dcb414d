package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// View switching
	Reminders key.Binding
	Warnings  key.Binding
	History   key.Binding

	// Lifecycle actions
	New        key.Binding
	Edit       key.Binding
	Complete   key.Binding
	Snooze     key.Binding
	Reschedule key.Binding
	Dismiss    key.Binding
	Resolve    key.Binding
	MarkRead   key.Binding
	Delete     key.Binding

	// Filtering and settings
	CycleFilter key.Binding
	Settings    key.Binding

	// Sort
	CycleSort key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open detail"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Reminders: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "reminders"),
		),
		Warnings: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "warnings"),
		),
		History: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "history"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new reminder"),
		),
		Edit: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
		Snooze: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "snooze"),
		),
		Reschedule: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "reschedule"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss"),
		),
		Resolve: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "resolve"),
		),
		MarkRead: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark read"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle filter"),
		),
		Settings: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "notification settings"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle sort"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Search,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Reminders, k.Warnings, k.History, k.Refresh},
		{k.New, k.Edit, k.Complete, k.Snooze, k.Reschedule},
		{k.Dismiss, k.Resolve, k.MarkRead, k.Delete},
		{k.Search, k.CycleFilter, k.CycleSort, k.Settings, k.Help},
	}
}
