// Package doccontent renders a single document's extracted text with
// pager-style scrolling and clipboard copy.
package doccontent

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

var (
	errNoDocumentService = errors.New("document service not available")
	errNoClipboard       = errors.New("clipboard not available")
)

// View shows the extracted text of one document.
type View struct {
	styles          *styles.Styles
	documentService driving.DocumentService
	actionService   driving.CitationActionService

	document     *domain.Document
	content      string
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	notice       string
}

// NewView creates a document content view backed by the given services.
func NewView(s *styles.Styles, documentService driving.DocumentService, actionService driving.CitationActionService) *View {
	return &View{
		styles:          s,
		documentService: documentService,
		actionService:   actionService,
	}
}

// SetDocument switches to doc, clearing any previous content, and starts
// loading its text.
func (v *View) SetDocument(doc *domain.Document) tea.Cmd {
	v.document = doc
	v.content = ""
	v.lines = nil
	v.scrollOffset = 0
	v.err = nil
	v.notice = ""
	return v.loadContent()
}

// Init implements tea.Model. Loading is driven by SetDocument instead.
func (v *View) Init() tea.Cmd {
	return nil
}

// loadContent fetches the assembled chunk text for the current document.
func (v *View) loadContent() tea.Cmd {
	return func() tea.Msg {
		if v.document == nil || v.documentService == nil {
			return messages.DocumentContentLoaded{Err: errNoDocumentService}
		}

		v.loading = true
		content, err := v.documentService.GetContent(context.Background(), v.document.ID)
		return messages.DocumentContentLoaded{
			DocumentID: v.document.ID,
			Content:    content,
			Err:        err,
		}
	}
}

// copyContent puts the full document text on the system clipboard.
func (v *View) copyContent() tea.Cmd {
	return func() tea.Msg {
		docID := ""
		if v.document != nil {
			docID = v.document.ID
		}
		if v.actionService == nil {
			return messages.ContentCopied{DocumentID: docID, Err: errNoClipboard}
		}

		err := v.actionService.CopyToClipboard(context.Background(), v.content)
		return messages.ContentCopied{DocumentID: docID, Err: err}
	}
}

// Update handles messages for the document content view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.DocumentContentLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.content = msg.Content
			v.wrapContent()
		}

	case messages.ContentCopied:
		if msg.Err != nil {
			v.notice = "Copy failed: " + msg.Err.Error()
		} else {
			v.notice = "Copied to clipboard"
		}

	case messages.ErrorOccurred:
		v.err = msg.Err
	}

	return v, nil
}

// handleKey handles pager key presses.
func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.scrollBy(-1)
	case "down", "j":
		v.scrollBy(1)
	case "pgup", "ctrl+u":
		v.scrollBy(-v.visibleLines())
	case "pgdown", "ctrl+d":
		v.scrollBy(v.visibleLines())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "c":
		if v.content == "" {
			return v, nil
		}
		return v, v.copyContent()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}
	}

	return v, nil
}

// scrollBy moves the offset by delta, clamped to the valid range.
func (v *View) scrollBy(delta int) {
	v.scrollOffset += delta
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
	if max := v.maxScrollOffset(); v.scrollOffset > max {
		v.scrollOffset = max
	}
}

// wrapContent rebuilds the line buffer for the current width.
func (v *View) wrapContent() {
	if v.content == "" {
		v.lines = nil
		return
	}

	width := v.width - 4
	if width < 20 {
		width = 20
	}

	var lines []string
	for _, line := range strings.Split(v.content, "\n") {
		lines = append(lines, wrapLine(line, width)...)
	}
	v.lines = lines
}

// wrapLine hard-wraps one line at width characters. A short line comes
// back unchanged as a single row.
func wrapLine(line string, width int) []string {
	if len(line) <= width {
		return []string{line}
	}

	var out []string
	for len(line) > width {
		out = append(out, line[:width])
		line = line[width:]
	}
	if line != "" {
		out = append(out, line)
	}
	return out
}

// visibleLines is the number of content rows that fit once the header
// and footer are accounted for.
func (v *View) visibleLines() int {
	rows := v.height - 6
	if rows < 1 {
		rows = 1
	}
	return rows
}

// maxScrollOffset is the largest offset that still fills the window.
func (v *View) maxScrollOffset() int {
	max := len(v.lines) - v.visibleLines()
	if max < 0 {
		max = 0
	}
	return max
}

// View renders the document content view.
func (v *View) View() string {
	var b strings.Builder
	v.renderHeader(&b)

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading content..."))

	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))

	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(No content)"))

	default:
		v.renderContent(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [c] copy all  [esc] back"))
	return b.String()
}

// renderHeader writes the document title, its path, and a rule.
func (v *View) renderHeader(b *strings.Builder) {
	title := "Document Content"
	if v.document != nil {
		title = v.document.Title
		if title == "" {
			title = v.document.ID
		}
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")

	if v.document != nil && v.document.Path != "" {
		b.WriteString(v.styles.Muted.Render(v.document.Path))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("─", min(v.width-4, 60)))
	b.WriteString("\n\n")
}

// renderContent writes the visible window of lines plus a position
// indicator when the text overflows.
func (v *View) renderContent(b *strings.Builder) {
	page := v.visibleLines()
	end := v.scrollOffset + page
	if end > len(v.lines) {
		end = len(v.lines)
	}

	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.styles.Normal.Render(v.lines[i]))
		b.WriteString("\n")
	}

	if len(v.lines) > page {
		percent := 0
		if v.maxScrollOffset() > 0 {
			percent = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percent, v.scrollOffset+1, end, len(v.lines))))
	}

	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(v.notice))
	}
}

// SetDimensions records the terminal size and rewraps the text.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.wrapContent()
}

// Document returns the document being shown.
func (v *View) Document() *domain.Document {
	return v.document
}

// Content returns the raw, unwrapped text.
func (v *View) Content() string {
	return v.content
}

// Err returns the last error shown to the user.
func (v *View) Err() error {
	return v.err
}
