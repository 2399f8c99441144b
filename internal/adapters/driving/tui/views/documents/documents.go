// Package documents implements the document browser: a scrolling list of
// every ingested document with a per-document action menu for viewing
// content, inspecting chunk details, opening the source file, or removing
// the document from the index.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/messages"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/styles"
	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

// ActionOption identifies an entry in the per-document action menu.
type ActionOption int

const (
	ActionShowContent ActionOption = iota
	ActionShowDetails
	ActionOpenDocument
	ActionRemove
	ActionCancel
)

// actionLabels maps menu entries to their rendered labels, in menu order.
var actionLabels = [...]string{
	ActionShowContent:  "Show Content",
	ActionShowDetails:  "Show Details",
	ActionOpenDocument: "Open Document",
	ActionRemove:       "Remove",
	ActionCancel:       "Cancel",
}

var (
	errNoDocumentService = errors.New("document service not available")
	errNoCorpusService   = errors.New("corpus service not available")
)

// View lists documents across all corpora. Selecting one opens the
// action menu.
type View struct {
	styles          *styles.Styles
	documentService driving.DocumentService
	corpusService   driving.CorpusService

	documents    []domain.Document
	corpusNames  map[string]string
	selected     int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	showingMenu  bool
	menuSelected ActionOption
	scrollOffset int
}

// NewView creates a documents view backed by the given services.
func NewView(s *styles.Styles, documentService driving.DocumentService, corpusService driving.CorpusService) *View {
	return &View{
		styles:          s,
		documentService: documentService,
		corpusService:   corpusService,
		documents:       []domain.Document{},
		corpusNames:     map[string]string{},
	}
}

// Load clears any previous state and kicks off loading of corpora and
// documents.
func (v *View) Load() tea.Cmd {
	v.documents = []domain.Document{}
	v.selected = 0
	v.scrollOffset = 0
	v.err = nil
	v.showingMenu = false
	v.loading = true
	return tea.Batch(v.loadCorpora(), v.loadDocuments())
}

// Init implements tea.Model. Loading is driven by Load instead.
func (v *View) Init() tea.Cmd {
	return nil
}

// loadCorpora fetches corpus names so list rows can show "corpus:path".
func (v *View) loadCorpora() tea.Cmd {
	return func() tea.Msg {
		if v.corpusService == nil {
			return messages.CorporaLoaded{Err: errNoCorpusService}
		}
		corpora, err := v.corpusService.List(context.Background())
		return messages.CorporaLoaded{Corpora: corpora, Err: err}
	}
}

// loadDocuments fetches documents across all corpora.
func (v *View) loadDocuments() tea.Cmd {
	return func() tea.Msg {
		if v.documentService == nil {
			return messages.DocumentsLoaded{Err: errNoDocumentService}
		}
		docs, err := v.documentService.ListByCorpus(context.Background(), "")
		return messages.DocumentsLoaded{Documents: docs, Err: err}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		if v.showingMenu {
			return v.handleMenuKey(msg)
		}
		return v.handleListKey(msg)

	case messages.CorporaLoaded:
		if msg.Err == nil {
			names := make(map[string]string, len(msg.Corpora))
			for i := range msg.Corpora {
				names[msg.Corpora[i].ID] = msg.Corpora[i].Name
			}
			v.corpusNames = names
		}

	case messages.DocumentsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.documents = msg.Documents
		}

	case messages.DocumentDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.loadDocuments()

	case messages.DocumentOpened:
		if msg.Err != nil {
			v.err = msg.Err
		}

	case messages.ErrorOccurred:
		v.err = msg.Err
	}

	return v, nil
}

// handleListKey handles key presses while the list has focus.
func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.keepVisible()
		}

	case "down", "j":
		if v.selected < len(v.documents)-1 {
			v.selected++
			v.keepVisible()
		}

	case "enter":
		if len(v.documents) > 0 {
			v.showingMenu = true
			v.menuSelected = ActionShowContent
		}

	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case "r":
		v.loading = true
		return v, v.loadDocuments()
	}

	return v, nil
}

// handleMenuKey handles key presses while the action menu has focus.
func (v *View) handleMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.menuSelected > ActionShowContent {
			v.menuSelected--
		}

	case "down", "j":
		if v.menuSelected < ActionCancel {
			v.menuSelected++
		}

	case "enter":
		return v.runAction()

	case "esc":
		v.showingMenu = false
	}

	return v, nil
}

// runAction closes the menu and starts the selected action against the
// selected document.
func (v *View) runAction() (*View, tea.Cmd) {
	v.showingMenu = false
	if v.selected >= len(v.documents) {
		return v, nil
	}
	doc := v.documents[v.selected]

	switch v.menuSelected {
	case ActionShowContent:
		return v, func() tea.Msg {
			return messages.DocumentSelected{Document: doc}
		}
	case ActionShowDetails:
		return v, v.loadDetails(doc.ID)
	case ActionOpenDocument:
		return v, v.openDocument(doc.ID)
	case ActionRemove:
		return v, v.removeDocument(doc.ID)
	}

	return v, nil
}

// loadDetails fetches chunk counts and metadata for one document.
func (v *View) loadDetails(docID string) tea.Cmd {
	return func() tea.Msg {
		if v.documentService == nil {
			return messages.ErrorOccurred{Err: errNoDocumentService}
		}
		details, err := v.documentService.GetDetails(context.Background(), docID)
		return messages.DocumentDetailsLoaded{DocumentID: docID, Details: details, Err: err}
	}
}

// openDocument hands the source file to the OS default handler.
func (v *View) openDocument(docID string) tea.Cmd {
	return func() tea.Msg {
		if v.documentService == nil {
			return messages.DocumentOpened{DocumentID: docID, Err: errNoDocumentService}
		}
		err := v.documentService.Open(context.Background(), docID)
		return messages.DocumentOpened{DocumentID: docID, Err: err}
	}
}

// removeDocument deletes the document, its chunks and embeddings.
func (v *View) removeDocument(docID string) tea.Cmd {
	return func() tea.Msg {
		if v.documentService == nil {
			return messages.DocumentDeleted{DocumentID: docID, Err: errNoDocumentService}
		}
		err := v.documentService.Delete(context.Background(), docID)
		return messages.DocumentDeleted{DocumentID: docID, Err: err}
	}
}

// keepVisible scrolls the window so the selection stays on screen.
func (v *View) keepVisible() {
	page := v.pageSize()
	switch {
	case v.selected < v.scrollOffset:
		v.scrollOffset = v.selected
	case v.selected >= v.scrollOffset+page:
		v.scrollOffset = v.selected - page + 1
	}
}

// pageSize is the number of list rows that fit once the title and footer
// are accounted for.
func (v *View) pageSize() int {
	rows := v.height - 8
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Documents (%d)", len(v.documents))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading documents..."))

	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))

	case len(v.documents) == 0:
		b.WriteString(v.styles.Muted.Render("No documents processed yet. Run 'quarry run' first."))

	case v.showingMenu:
		b.WriteString(v.renderMenu())
		return b.String()

	default:
		v.renderList(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] actions  [r] reload  [esc] back"))
	return b.String()
}

// renderList writes the visible window of document rows plus a range
// indicator when the list overflows.
func (v *View) renderList(b *strings.Builder) {
	page := v.pageSize()
	end := v.scrollOffset + page
	if end > len(v.documents) {
		end = len(v.documents)
	}

	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.renderRow(i, &v.documents[i]))
		b.WriteString("\n")
	}

	if len(v.documents) > page {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1, end, len(v.documents))))
	}
}

// renderRow formats one document as "title  corpus:path", padded into two
// columns. The selected row gets the highlight style and a cursor.
func (v *View) renderRow(i int, doc *domain.Document) string {
	title := doc.Title
	if title == "" {
		title = doc.ID
	}

	col := v.columnWidth()
	title = truncate(title, col)

	location := doc.Path
	if name := v.corpusNames[doc.CorpusID]; name != "" {
		location = name + ":" + doc.Path
	}
	location = truncateLeft(location, col)

	if i == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("> %-*s  %s", col, title, location))
	}
	return v.styles.Normal.Render(fmt.Sprintf("  %-*s  ", col, title)) +
		v.styles.Muted.Render(location)
}

// renderMenu renders the action menu in place of the list.
func (v *View) renderMenu() string {
	var b strings.Builder

	if v.selected < len(v.documents) {
		doc := v.documents[v.selected]
		title := doc.Title
		if title == "" {
			title = doc.ID
		}
		b.WriteString(v.styles.Subtitle.Render("Actions for: " + title))
		b.WriteString("\n\n")
	}

	for action, label := range actionLabels {
		if ActionOption(action) == v.menuSelected {
			b.WriteString(v.styles.Selected.Render("> " + label))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] select  [esc] cancel"))
	return b.String()
}

// columnWidth splits the terminal into two equal columns with a floor so
// narrow windows stay readable.
func (v *View) columnWidth() int {
	w := v.width/2 - 4
	if w < 10 {
		w = 10
	}
	return w
}

// truncate shortens s to max characters, marking the cut with an
// ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// truncateLeft keeps the tail of s, which for paths is the interesting
// end.
func truncateLeft(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}

// SetDimensions records the terminal size and marks the view ready.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Documents returns the loaded document list.
func (v *View) Documents() []domain.Document {
	return v.documents
}

// SelectedIndex returns the index of the highlighted document.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedDocument returns the highlighted document, or nil when the
// list is empty.
func (v *View) SelectedDocument() *domain.Document {
	if v.selected < len(v.documents) {
		return &v.documents[v.selected]
	}
	return nil
}

// IsShowingMenu reports whether the action menu is open.
func (v *View) IsShowingMenu() bool {
	return v.showingMenu
}

// Err returns the last error shown to the user.
func (v *View) Err() error {
	return v.err
}
