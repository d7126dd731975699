// Package keymap defines keybindings for the findings browser.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the findings browser.
type KeyMap struct {
	// Quit exits the browser.
	Quit key.Binding

	// Up moves the selection up.
	Up key.Binding

	// Down moves the selection down.
	Down key.Binding

	// Top jumps to the first finding.
	Top key.Binding

	// Bottom jumps to the last finding.
	Bottom key.Binding

	// All shows every finding.
	All key.Binding

	// Errors shows only error findings.
	Errors key.Binding

	// Warnings shows only warning findings.
	Warnings key.Binding

	// Cycle steps through the severity filters.
	Cycle key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all"),
		),
		Errors: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "errors"),
		),
		Warnings: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "warnings"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle filter"),
		),
	}
}

// ShortHelp returns the keybindings shown in the footer.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Cycle, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.All, k.Errors, k.Warnings, k.Cycle},
		{k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
