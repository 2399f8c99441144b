// Package chat provides the question and answer view for the TUI.
package chat

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/components/input"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/components/list"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/components/status"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/keymap"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/messages"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/styles"
	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

// ActionMenu represents a simple action selection overlay.
type ActionMenu struct {
	actions  []string
	selected int
	visible  bool
	citation *domain.Citation
}

// View represents the chat view with question input, answer, citations, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	citations *list.CitationList
	statusbar *status.Bar

	askService    driving.AskService
	actionService driving.CitationActionService
	ctx           context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = answer mode (navigating citations)
	actionMenu *ActionMenu
	question   string
	answer     *domain.Answer
}

// NewView creates a new chat view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	askService driving.AskService,
	actionService driving.CitationActionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewQuestionInput(s),
		citations:     list.NewCitationList(s),
		statusbar:     status.NewBar(s, km),
		askService:    askService,
		actionService: actionService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		ready:         false,
		focusInput:    true, // Start in input mode
		actionMenu:    nil,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AskCompleted:
		v.handleAskCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward to input component
	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	// Forward to citation list component
	var listCmd tea.Cmd
	v.citations, listCmd = v.citations.Update(msg)
	if listCmd != nil {
		cmds = append(cmds, listCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// If action menu is visible, handle its keys
	if v.actionMenu != nil && v.actionMenu.visible {
		return v.handleActionMenuKey(msg)
	}

	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	// Enter in input mode submits the question
	if msg.Type == tea.KeyEnter && v.focusInput {
		question := v.input.Value()
		if question == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateThinking)
		v.focusInput = false // Move to answer mode once asked
		v.input.Blur()
		cmd := v.performAsk(question)
		return v, cmd
	}

	// Input mode: all keys go to input
	if v.focusInput {
		v.input, _ = v.input.Update(msg)
		return v, nil
	}

	// Answer mode: handle Enter to open action menu
	if msg.Type == tea.KeyEnter {
		citation := v.citations.SelectedCitation()
		if v.answer != nil {
			v.actionMenu = &ActionMenu{
				actions:  []string{"Copy answer", "Open cited document", "Cancel"},
				selected: 0,
				visible:  true,
				citation: citation,
			}
		}
		return v, nil
	}

	// Answer mode: handle navigation
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.citations.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.citations.MoveDown()
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.citations.MoveUp()
		return v, nil
	case "j":
		v.citations.MoveDown()
		return v, nil
	case "n":
		// New question: clear input and focus it
		v.focusInput = true
		v.input.Focus()
		v.input.SetValue("")
		return v, nil
	}

	return v, nil
}

// handleActionMenuKey processes keyboard input when action menu is visible.
func (v *View) handleActionMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		if v.actionMenu.selected > 0 {
			v.actionMenu.selected--
		}
		return v, nil
	case tea.KeyDown:
		if v.actionMenu.selected < len(v.actionMenu.actions)-1 {
			v.actionMenu.selected++
		}
		return v, nil
	case tea.KeyEnter:
		action := v.actionMenu.actions[v.actionMenu.selected]
		citation := v.actionMenu.citation
		v.actionMenu = nil // Close menu
		return v.executeAction(action, citation)
	case tea.KeyEsc:
		v.actionMenu = nil // Close menu
		return v, nil
	default:
		// Handle other keys
	}

	// Handle vim-style navigation in action menu
	switch msg.String() {
	case "k":
		if v.actionMenu.selected > 0 {
			v.actionMenu.selected--
		}
		return v, nil
	case "j":
		if v.actionMenu.selected < len(v.actionMenu.actions)-1 {
			v.actionMenu.selected++
		}
		return v, nil
	}

	return v, nil
}

// executeAction performs the selected action on the answer or a citation.
func (v *View) executeAction(action string, citation *domain.Citation) (*View, tea.Cmd) {
	switch action {
	case "Copy answer":
		if v.actionService != nil && v.answer != nil {
			err := v.actionService.CopyToClipboard(v.ctx, v.answer.Text)
			if err != nil {
				v.statusbar.SetMessage("Copy: " + err.Error())
			} else {
				v.statusbar.SetMessage("Copied to clipboard")
			}
		} else {
			v.statusbar.SetMessage("Copy not available")
		}
	case "Open cited document":
		if v.actionService != nil && citation != nil {
			err := v.actionService.OpenCited(v.ctx, *citation)
			if err != nil {
				v.statusbar.SetMessage("Open: " + err.Error())
			} else {
				v.statusbar.SetMessage("Opening document...")
			}
		} else {
			v.statusbar.SetMessage("Open not available")
		}
	case "Cancel":
		// Do nothing, menu is already closed
	}

	return v, nil
}

// performAsk submits the question and returns the answer.
func (v *View) performAsk(question string) tea.Cmd {
	return func() tea.Msg {
		if v.askService == nil {
			return messages.ErrorOccurred{Err: ErrNoAskService}
		}

		answer, err := v.askService.Ask(v.ctx, question, driving.AskOptions{})
		if err != nil {
			return messages.AskCompleted{Question: question, Answer: nil, Err: err}
		}
		return messages.AskCompleted{Question: question, Answer: answer, Err: nil}
	}
}

// handleAskCompleted processes the answer.
func (v *View) handleAskCompleted(msg messages.AskCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.question = msg.Question
	v.answer = msg.Answer
	if msg.Answer != nil {
		v.citations.SetCitations(msg.Answer.Citations)
		v.statusbar.SetCitationCount(len(msg.Answer.Citations))
	} else {
		v.citations.SetCitations(nil)
		v.statusbar.SetCitationCount(0)
	}
	v.statusbar.SetState(status.StateAnswered)

	// Switch to answer mode after a successful ask
	v.focusInput = false
	v.input.Blur()
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)

	// Header
	header := v.styles.Title.Render("Quarry")
	sections = append(sections, header, "")

	// Question input
	inputView := v.input.View()
	sections = append(sections, inputView, "")

	// Error display
	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	// Answer text
	if v.answer != nil {
		answerView := v.renderAnswer()
		sections = append(sections, answerView, "")
	}

	// Citation list, only shown for grounded answers
	if v.answer != nil && len(v.answer.Citations) > 0 {
		listView := v.citations.View()
		sections = append(sections, listView)
	}

	// Action menu overlay (if visible)
	if v.actionMenu != nil && v.actionMenu.visible {
		sections = append(sections, "")
		menuView := v.renderActionMenu()
		sections = append(sections, menuView)
	}

	// Status bar at bottom
	sections = append(sections, "")
	statusView := v.statusbar.View()
	sections = append(sections, statusView)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderAnswer renders the answer text, wrapped to the view width.
func (v *View) renderAnswer() string {
	maxWidth := v.width - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	lines := wrapText(v.answer.Text, maxWidth)
	body := v.styles.Normal.Render(strings.Join(lines, "\n"))

	if !v.answer.Grounded {
		note := v.styles.Muted.Render("(no grounding context found)")
		return body + "\n" + note
	}
	return body
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	if v.actionMenu == nil {
		return ""
	}

	lines := make([]string, 0, len(v.actionMenu.actions))
	for i, action := range v.actionMenu.actions {
		indicator := "  "
		if i == v.actionMenu.selected {
			indicator = "> "
		}

		var line string
		if i == v.actionMenu.selected {
			line = v.styles.Selected.Render(indicator + action)
		} else {
			line = v.styles.Normal.Render(indicator + action)
		}
		lines = append(lines, line)
	}

	content := strings.Join(lines, "\n")

	// Wrap in a bordered box
	menuStyle := v.styles.Border.
		Padding(0, 1)

	return menuStyle.Render(content)
}

// wrapText breaks text into lines no longer than width.
func wrapText(text string, width int) []string {
	if text == "" {
		return []string{""}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			if len(current)+1+len(word) > width {
				lines = append(lines, current)
				current = word
				continue
			}
			current += " " + word
		}
		lines = append(lines, current)
	}
	return lines
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Allocate space to components
	v.input.SetWidth(width)
	v.citations.SetDimensions(width, height-14) // Reserve space for header, input, answer, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Question returns the current question input value.
func (v *View) Question() string {
	return v.input.Value()
}

// SetQuestion sets the question input value.
func (v *View) SetQuestion(question string) {
	v.input.SetValue(question)
}

// Answer returns the current answer, if any.
func (v *View) Answer() *domain.Answer {
	return v.answer
}

// Citations returns the current answer citations.
func (v *View) Citations() []domain.Citation {
	return v.citations.Citations()
}

// SelectedIndex returns the index of the selected citation.
func (v *View) SelectedIndex() int {
	return v.citations.Selected()
}

// SelectedCitation returns the currently selected citation.
func (v *View) SelectedCitation() *domain.Citation {
	return v.citations.SelectedCitation()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.citations.SetCitations(nil)
	v.answer = nil
	v.question = ""
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
