// Package menu renders the landing screen of the terminal UI and routes
// the user to the other views.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/messages"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/styles"
)

// Item is one entry in the navigation list.
type Item struct {
	Label string
	View  messages.ViewType
	Quit  bool // selecting the item exits the program instead of switching views
}

// View lists every reachable part of the UI and tracks the cursor.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView builds the menu with the standard set of destinations.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Chat", View: messages.ViewChat},
			{Label: "Documents", View: messages.ViewDocuments},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model. The menu has no startup work.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and resolves selections.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case "enter":
			return v, v.choose()
		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// choose turns the highlighted item into a command.
func (v *View) choose() tea.Cmd {
	item := v.items[v.selected]
	if item.Quit {
		return tea.Quit
	}

	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the title block, the item list and the key hints.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Quarry"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Subtitle.Render("Grounded Document Q&A"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		if i == v.selected {
			b.WriteString("> ")
			b.WriteString(v.styles.Selected.Render(item.Label))
		} else {
			b.WriteString("  ")
			b.WriteString(v.styles.Normal.Render(item.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))

	return b.String()
}

// SetDimensions records the terminal size and marks the view ready to draw.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected reports the index of the highlighted item.
func (v *View) Selected() int {
	return v.selected
}
