package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/messages"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/styles"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/views/chat"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/views/doccontent"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/views/docdetails"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/views/documents"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/views/menu"
	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

// App is the root Bubbletea model. It owns one instance of every view,
// remembers which one is on screen, and routes messages between them.
type App struct {
	ctx context.Context

	menuView       *menu.View
	chatView       *chat.View
	documentsView  *documents.View
	docContentView *doccontent.View
	docDetailsView *docdetails.View

	// currentView selects which view renders and receives input.
	currentView messages.ViewType

	// selectedDocument is the document last opened from the browser.
	selectedDocument *domain.Document

	// question, answer and err mirror the chat view so callers can read
	// the latest exchange off the app itself.
	question string
	answer   *domain.Answer
	err      error

	ready bool
}

var _ tea.Model = (*App)(nil)

// NewApp builds the application around the given services, starting at
// the menu. It fails when a required service is missing.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ctx:            context.Background(),
		menuView:       menu.NewView(s),
		chatView:       chat.NewView(s, nil, ports.Ask, ports.Actions),
		documentsView:  documents.NewView(s, ports.Document, ports.Corpus),
		docContentView: doccontent.NewView(s, ports.Document, ports.Actions),
		docDetailsView: docdetails.NewView(s, ports.Actions),
		currentView:    messages.ViewMenu,
	}, nil
}

// WithContext propagates ctx to Run and to the views that call services.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("quarry - Grounded Document Q&A"),
	)
}

// Update implements tea.Model. Navigation and load results are handled
// here; everything else goes to whichever view is active.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.AskCompleted:
		var cmd tea.Cmd
		a.chatView, cmd = a.chatView.Update(msg)
		a.syncChat()
		return a, cmd

	case messages.CorporaLoaded, messages.DocumentsLoaded,
		messages.DocumentDeleted, messages.DocumentOpened:
		var cmd tea.Cmd
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.DocumentSelected:
		a.selectedDocument = &msg.Document
		a.currentView = messages.ViewDocContent
		return a, a.docContentView.SetDocument(&msg.Document)

	case messages.DocumentContentLoaded:
		var cmd tea.Cmd
		a.docContentView, cmd = a.docContentView.Update(msg)
		return a, cmd

	case messages.DocumentDetailsLoaded:
		a.showDetails(msg)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.forwardToActive(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forwardToActive(msg)
}

// resize pushes the new terminal size to every view and marks the app
// ready to render.
func (a *App) resize(width, height int) {
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
	a.documentsView.SetDimensions(width, height)
	a.docContentView.SetDimensions(width, height)
	a.docDetailsView.SetDimensions(width, height)
}

// handleKey handles keyboard input. Ctrl+c quits from anywhere; the
// help screen only answers to esc; all other keys belong to the active
// view.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.currentView == messages.ViewHelp {
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
		return a, nil
	}

	return a, a.forwardToActive(msg)
}

// switchView activates a view and kicks off whatever it loads on entry.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	a.currentView = view

	switch view {
	case messages.ViewChat:
		a.chatView.Reset()
		return a.chatView.Init()
	case messages.ViewDocuments:
		return a.documentsView.Load()
	case messages.ViewMenu, messages.ViewHelp,
		messages.ViewDocContent, messages.ViewDocDetails:
		// Nothing to load on entry.
	}
	return nil
}

// showDetails swaps in the details view once a load completes. A failed
// load surfaces the error without leaving the current view.
func (a *App) showDetails(msg messages.DocumentDetailsLoaded) {
	if msg.Err != nil {
		a.err = msg.Err
		return
	}
	if details, ok := msg.Details.(*driving.DocumentDetails); ok {
		a.docDetailsView.SetDetails(details)
		a.currentView = messages.ViewDocDetails
	}
}

// forwardToActive routes a message to whichever view is on screen. The
// help screen is static and swallows everything.
func (a *App) forwardToActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
		a.syncChat()
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewDocContent:
		a.docContentView, cmd = a.docContentView.Update(msg)
	case messages.ViewDocDetails:
		a.docDetailsView, cmd = a.docDetailsView.Update(msg)
	case messages.ViewHelp:
	}

	return cmd
}

// syncChat mirrors the chat view's exchange onto the app.
func (a *App) syncChat() {
	a.question = a.chatView.Question()
	a.answer = a.chatView.Answer()
	a.err = a.chatView.Err()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewDocContent:
		return a.docContentView.View()
	case messages.ViewDocDetails:
		return a.docDetailsView.View()
	case messages.ViewHelp:
		return helpText
	default:
		// The menu doubles as the fallback for unknown view states.
		return a.menuView.View()
	}
}

const helpText = `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Chat:
  (type)      Enter a question
  enter       Ask
  esc         Back to Menu

Answers:
  j/k, ↑/↓    Navigate citations
  enter       Citation actions
  n           New question
  esc         Back to Menu

Documents:
  j/k, ↑/↓    Navigate documents
  enter       Document actions
  r           Reload
  esc         Back to Menu

[esc] back to menu`

// Run drives the program to completion. Cancelling the context given to
// WithContext shuts the program down.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Question returns the question currently in the chat view.
func (a *App) Question() string {
	return a.question
}

// Answer returns the most recent answer, or nil before the first ask.
func (a *App) Answer() *domain.Answer {
	return a.answer
}

// CurrentView returns the view that is on screen.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready reports whether the app has received its terminal size.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions marks the app ready and sizes the chat view, standing
// in for the WindowSizeMsg a running program delivers on startup.
func (a *App) SetDimensions(width, height int) {
	a.ready = true
	a.chatView.SetDimensions(width, height)
}
