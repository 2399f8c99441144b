// Package keymap centralises the key bindings shared across TUI views.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap groups every binding the views dispatch on. Views receive a
// *KeyMap rather than reading globals, so remapping from configuration
// later has a single seam.
type KeyMap struct {
	// Global bindings, live in every view.
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// List navigation.
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Chat flow.
	Ask         key.Binding
	Cancel      key.Binding
	NewQuestion key.Binding
	Actions     key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:        bind("q", "quit", "q", "ctrl+c"),
		Help:        bind("?", "help", "?"),
		Back:        bind("esc", "back", "esc"),
		Up:          bind("↑/k", "up", "up", "k"),
		Down:        bind("↓/j", "down", "down", "j"),
		Select:      bind("enter", "select", "enter"),
		Ask:         bind("enter", "ask", "enter"),
		Cancel:      bind("esc", "cancel", "esc"),
		NewQuestion: bind("n", "new question", "n"),
		Actions:     bind("enter", "actions", "enter"),
	}
}

func bind(helpKey, helpDesc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, helpDesc))
}

// ShortHelp returns the minimal binding set shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// AnswerHelp returns the bindings active while an answer is displayed.
func (k *KeyMap) AnswerHelp() []key.Binding {
	return []key.Binding{k.NewQuestion, k.Up, k.Actions, k.Back}
}

// FullHelp returns all bindings grouped for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Ask, k.Back, k.Cancel},
		{k.Help, k.Quit},
	}
}

// Matches reports whether the pressed key belongs to the binding.
func Matches(keyStr string, binding key.Binding) bool {
	return slices.Contains(binding.Keys(), keyStr)
}
