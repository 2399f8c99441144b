// Package input provides the question entry field for the chat view.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/styles"
)

const (
	// defaultWidth is used until the first window size arrives.
	defaultWidth = 50

	// charLimit caps question length well above anything the retrieval
	// pipeline accepts.
	charLimit = 512
)

// QuestionInput wraps a bubbles textinput with an "Ask:" label.
type QuestionInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewQuestionInput creates a focused question input.
func NewQuestionInput(s *styles.Styles) *QuestionInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask a question about your documents..."
	ti.Focus()
	ti.CharLimit = charLimit
	ti.Width = defaultWidth

	return &QuestionInput{
		textinput: ti,
		styles:    s,
		width:     defaultWidth,
	}
}

// Init starts the cursor blink.
func (q *QuestionInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards messages to the wrapped textinput.
func (q *QuestionInput) Update(msg tea.Msg) (*QuestionInput, tea.Cmd) {
	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	return q, cmd
}

// View renders the labelled input field.
func (q *QuestionInput) View() string {
	label := q.styles.Title.Render("Ask: ")
	field := q.styles.InputField.Render(q.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the text entered so far.
func (q *QuestionInput) Value() string {
	return q.textinput.Value()
}

// SetValue replaces the entered text.
func (q *QuestionInput) SetValue(value string) {
	q.textinput.SetValue(value)
}

// Focus gives the field keyboard focus.
func (q *QuestionInput) Focus() tea.Cmd {
	return q.textinput.Focus()
}

// Blur removes keyboard focus.
func (q *QuestionInput) Blur() {
	q.textinput.Blur()
}

// Focused reports whether the field has keyboard focus.
func (q *QuestionInput) Focused() bool {
	return q.textinput.Focused()
}

// SetWidth resizes the field, keeping room for the label and a floor so
// typing stays usable in narrow terminals.
func (q *QuestionInput) SetWidth(width int) {
	q.width = width
	field := width - 10
	if field < 20 {
		field = 20
	}
	q.textinput.Width = field
}

// Width returns the width last set.
func (q *QuestionInput) Width() int {
	return q.width
}

// Reset clears the entered text.
func (q *QuestionInput) Reset() {
	q.textinput.Reset()
}
