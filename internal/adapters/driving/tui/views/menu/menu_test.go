package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/messages"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/styles"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewView_Defaults(t *testing.T) {
	view := NewView(styles.DefaultStyles())

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Len(t, view.items, 4)
	assert.Equal(t, 0, view.selected)
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)

	// Nil styles fall back to the default theme.
	assert.NotNil(t, NewView(nil).styles)
}

func TestView_Init_NoCommand(t *testing.T) {
	assert.Nil(t, NewView(nil).Init())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
}

func TestView_Navigation(t *testing.T) {
	tests := []struct {
		name  string
		start int
		keys  []tea.KeyMsg
		want  int
	}{
		{"down arrow", 0, []tea.KeyMsg{{Type: tea.KeyDown}}, 1},
		{"j moves down", 0, []tea.KeyMsg{keyRune('j'), keyRune('j')}, 2},
		{"stops at last item", 2, []tea.KeyMsg{keyRune('j'), keyRune('j'), keyRune('j')}, 3},
		{"up arrow", 2, []tea.KeyMsg{{Type: tea.KeyUp}}, 1},
		{"k moves up", 2, []tea.KeyMsg{keyRune('k'), keyRune('k')}, 0},
		{"stops at first item", 1, []tea.KeyMsg{keyRune('k'), keyRune('k')}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(nil)
			view.selected = tt.start
			for _, key := range tt.keys {
				view.Update(key)
			}
			assert.Equal(t, tt.want, view.Selected())
		})
	}
}

func TestView_Enter_SwitchesView(t *testing.T) {
	tests := []struct {
		item int
		want messages.ViewType
	}{
		{0, messages.ViewChat},
		{1, messages.ViewDocuments},
		{2, messages.ViewHelp},
	}

	for _, tt := range tests {
		view := NewView(nil)
		view.selected = tt.item

		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)

		changed, ok := cmd().(messages.ViewChanged)
		require.True(t, ok)
		assert.Equal(t, tt.want, changed.View)
	}
}

func TestView_Quit(t *testing.T) {
	t.Run("enter on quit item", func(t *testing.T) {
		view := NewView(nil)
		view.selected = len(view.items) - 1

		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
	})

	t.Run("q quits from anywhere", func(t *testing.T) {
		_, cmd := NewView(nil).Update(keyRune('q'))
		require.NotNil(t, cmd)
	})
}

func TestView_View(t *testing.T) {
	t.Run("before first window size", func(t *testing.T) {
		view := NewView(nil)
		view.ready = false

		assert.Contains(t, view.View(), "Initialising")
	})

	t.Run("renders title and items", func(t *testing.T) {
		view := NewView(nil)
		view.ready = true

		out := view.View()
		assert.Contains(t, out, "Quarry")
		assert.Contains(t, out, "Grounded Document Q&A")
		for _, item := range view.items {
			assert.Contains(t, out, item.Label)
		}
		assert.Contains(t, out, ">")
	})
}

func TestView_SetDimensions_MarksReady(t *testing.T) {
	view := NewView(nil)
	view.ready = false

	view.SetDimensions(120, 60)

	assert.Equal(t, 120, view.width)
	assert.Equal(t, 60, view.height)
	assert.True(t, view.ready)
}

func TestView_ItemOrder(t *testing.T) {
	view := NewView(nil)

	labels := make([]string, len(view.items))
	for i, item := range view.items {
		labels[i] = item.Label
	}
	assert.Equal(t, []string{"Chat", "Documents", "Help", "Quit"}, labels)

	// Only the last item quits, the rest switch views.
	for _, item := range view.items[:3] {
		assert.False(t, item.Quit)
	}
	assert.True(t, view.items[3].Quit)
	assert.Equal(t, messages.ViewChat, view.items[0].View)
	assert.Equal(t, messages.ViewDocuments, view.items[1].View)
	assert.Equal(t, messages.ViewHelp, view.items[2].View)
}
