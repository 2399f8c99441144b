// Package docdetails shows one document's metadata: identity, location,
// chunk counts, and any LLM enrichment, with the source path one key
// away from the clipboard.
package docdetails

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/messages"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/styles"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

var errNoClipboard = errors.New("clipboard not available")

// View renders document details with scrolling.
type View struct {
	styles        *styles.Styles
	actionService driving.CitationActionService

	details      *driving.DocumentDetails
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	notice       string
}

// NewView creates a details view. The action service backs path copying
// and may be nil.
func NewView(s *styles.Styles, actionService driving.CitationActionService) *View {
	return &View{
		styles:        s,
		actionService: actionService,
	}
}

// SetDetails switches to a new document, resetting scroll and notices.
func (v *View) SetDetails(details *driving.DocumentDetails) {
	v.details = details
	v.scrollOffset = 0
	v.err = nil
	v.notice = ""
}

// SetError puts the view into its error state.
func (v *View) SetError(err error) {
	v.err = err
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the details view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.ContentCopied:
		if msg.Err != nil {
			v.notice = "Copy failed: " + msg.Err.Error()
		} else {
			v.notice = "Path copied to clipboard"
		}

	case messages.ErrorOccurred:
		v.err = msg.Err
	}

	return v, nil
}

// handleKey handles key presses.
func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "c":
		if v.details == nil {
			return v, nil
		}
		return v, v.copyPath()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}
	}

	return v, nil
}

// copyPath puts the document's source path on the system clipboard.
func (v *View) copyPath() tea.Cmd {
	return func() tea.Msg {
		if v.actionService == nil {
			return messages.ContentCopied{DocumentID: v.details.ID, Err: errNoClipboard}
		}

		err := v.actionService.CopyToClipboard(context.Background(), v.details.Path)
		return messages.ContentCopied{DocumentID: v.details.ID, Err: err}
	}
}

// visibleLines is the number of detail rows that fit once the header and
// footer are accounted for.
func (v *View) visibleLines() int {
	rows := v.height - 6
	if rows < 1 {
		rows = 1
	}
	return rows
}

// maxScrollOffset is the largest offset that still fills the window.
func (v *View) maxScrollOffset() int {
	return max(0, len(v.buildContent())-v.visibleLines())
}

// buildContent lays out the detail rows: identity fields first, then the
// optional enrichment section.
func (v *View) buildContent() []string {
	if v.details == nil {
		return nil
	}
	d := v.details

	corpus := d.CorpusName
	if corpus == "" {
		corpus = d.CorpusID
	}

	lines := []string{
		v.formatField("ID", d.ID),
		v.formatField("Title", d.Title),
		v.formatField("Corpus", corpus),
		v.formatField("Path", d.Path),
		v.formatField("Format", d.Format),
	}

	if d.PageCount > 0 {
		lines = append(lines, v.formatField("Pages", strconv.Itoa(d.PageCount)))
	}
	lines = append(lines, v.formatField("Chunks", strconv.Itoa(d.ChunkCount)))

	if !d.ProcessedAt.IsZero() {
		lines = append(lines, v.formatField("Processed", d.ProcessedAt.Format("2006-01-02 15:04:05")))
	}

	return append(lines, v.enrichmentLines()...)
}

// enrichmentLines renders the LLM-derived metadata as an indented
// section, or nothing when no enrichment ran.
func (v *View) enrichmentLines() []string {
	d := v.details
	if d.Classification == "" && len(d.Tags) == 0 && d.Summary == "" {
		return nil
	}

	lines := []string{"", "Enrichment:"}
	if d.Classification != "" {
		lines = append(lines, "  Classification: "+d.Classification)
	}
	if len(d.Tags) > 0 {
		lines = append(lines, "  Tags: "+strings.Join(d.Tags, ", "))
	}
	if d.Summary != "" {
		summary := d.Summary
		if len(summary) > 200 {
			summary = summary[:197] + "..."
		}
		lines = append(lines, "  Summary: "+summary)
	}
	return lines
}

// formatField pads the label so values line up in a column.
func (v *View) formatField(label, value string) string {
	return fmt.Sprintf("%-12s %s", label+":", value)
}

// View renders the details view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Document Details"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(0, min(v.width-4, 60))))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))

	case v.details == nil:
		b.WriteString(v.styles.Muted.Render("No document details available"))

	default:
		v.renderDetails(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] scroll  [c] copy path  [esc] back"))
	return b.String()
}

// renderDetails writes the visible window of rows plus a position
// indicator when the content overflows.
func (v *View) renderDetails(b *strings.Builder) {
	lines := v.buildContent()
	page := v.visibleLines()
	end := v.scrollOffset + page
	if end > len(lines) {
		end = len(lines)
	}

	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.renderLine(lines[i]))
		b.WriteString("\n")
	}

	if len(lines) > page {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1, end, len(lines))))
	}

	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(v.notice))
	}
}

// renderLine styles one row: the enrichment heading, indented enrichment
// entries, and "Label: value" fields each get their own treatment.
func (v *View) renderLine(line string) string {
	if strings.HasPrefix(line, "Enrichment:") {
		return v.styles.Subtitle.Render(line)
	}
	if strings.HasPrefix(line, "  ") {
		if label, value, ok := strings.Cut(line, ":"); ok {
			return v.styles.Muted.Render(label+":") + v.styles.Normal.Render(value)
		}
		return v.styles.Muted.Render(line)
	}
	if label, value, ok := strings.Cut(line, ":"); ok {
		return v.styles.Subtitle.Render(label+":") + v.styles.Normal.Render(value)
	}
	return v.styles.Normal.Render(line)
}

// SetDimensions records the terminal size and marks the view ready.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Details returns the details being shown.
func (v *View) Details() *driving.DocumentDetails {
	return v.details
}

// Err returns the last error shown to the user.
func (v *View) Err() error {
	return v.err
}
