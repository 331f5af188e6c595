// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vlistui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the list viewer.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Jump opens the index prompt; Align cycles the alignment the
	// prompt scrolls with.
	Jump  key.Binding
	Align key.Binding

	// Retry re-evaluates the load threshold after a failed load.
	Retry key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys and page up/down.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown", " "),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Jump: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "jump"),
	),
	Align: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "align"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// helpBindings is the order bindings appear in the help line.
func (keys KeyMap) helpBindings() []key.Binding {
	return []key.Binding{
		keys.Down, keys.Up, keys.PageDown, keys.Home, keys.End,
		keys.Jump, keys.Align, keys.Retry, keys.Quit,
	}
}
