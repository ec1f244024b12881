package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Moving cards
	MoveLeft  key.Binding // Move task to the previous column
	MoveRight key.Binding // Move task to the next column
	MoveUp    key.Binding // Reorder task upwards
	MoveDown  key.Binding // Reorder task downwards

	// Task management
	New      key.Binding // Create task in the current column
	Rename   key.Binding // Rename task
	Delete   key.Binding // Delete task
	Archive  key.Binding // Archive task
	Priority key.Binding // Cycle priority
	Detail   key.Binding // Show task details

	// Columns
	NewColumn    key.Binding
	RenameColumn key.Binding
	DeleteColumn key.Binding
	ColumnLeft   key.Binding // Move column left
	ColumnRight  key.Binding // Move column right

	// Assistant
	Subtasks key.Binding
	Suggest  key.Binding // Suggest priority
	Describe key.Binding // Generate description
	Tags     key.Binding
	Insight  key.Binding

	// General
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding // Cancel/back
	Confirm key.Binding // Confirm action (in confirm mode)
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev column"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next column"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "move left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "move right"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		Rename: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Archive: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "archive"),
		),
		Priority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "priority"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "details"),
		),
		NewColumn: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "new column"),
		),
		RenameColumn: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "rename column"),
		),
		DeleteColumn: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "delete column"),
		),
		ColumnLeft: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "column left"),
		),
		ColumnRight: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "column right"),
		),
		Subtasks: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "ai subtasks"),
		),
		Suggest: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "ai priority"),
		),
		Describe: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "ai description"),
		),
		Tags: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "ai tags"),
		),
		Insight: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "ai insight"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
	}
}

// ShortHelp returns keybindings to show in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.New, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Detail, k.Refresh},
		{k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown},
		{k.New, k.Rename, k.Delete, k.Archive, k.Priority},
		{k.NewColumn, k.RenameColumn, k.DeleteColumn, k.ColumnLeft, k.ColumnRight},
		{k.Subtasks, k.Suggest, k.Describe, k.Tags, k.Insight},
		{k.Help, k.Quit},
	}
}
