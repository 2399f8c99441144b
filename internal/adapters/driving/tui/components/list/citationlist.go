// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/styles"
	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

// CitationList displays answer citations in a navigable list.
type CitationList struct {
	citations []domain.Citation
	selected  int
	styles    *styles.Styles
	width     int
	height    int
}

// NewCitationList creates a new citation list component.
func NewCitationList(s *styles.Styles) *CitationList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &CitationList{
		citations: nil,
		selected:  0,
		styles:    s,
		width:     80,
		height:    10,
	}
}

// Init initialises the citation list.
func (c *CitationList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (c *CitationList) Update(msg tea.Msg) (*CitationList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			c.MoveUp()
		case tea.KeyDown:
			c.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			c.MoveUp()
		case "j":
			c.MoveDown()
		}
	}
	return c, nil
}

// View renders the citation list.
func (c *CitationList) View() string {
	if len(c.citations) == 0 {
		return c.styles.Muted.Render("No citations")
	}

	lines := make([]string, 0, len(c.citations)*2+2)

	// Header
	header := c.styles.Subtitle.Render(fmt.Sprintf("Sources (%d)", len(c.citations)))
	lines = append(lines, header, "")

	// Calculate visible range based on height
	// Each citation takes two lines (title + path), so divide by 2
	visibleCount := (c.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if c.selected >= visibleCount {
		start = c.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(c.citations) {
		end = len(c.citations)
	}

	for i := start; i < end; i++ {
		line := c.renderCitation(i, &c.citations[i])
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// renderCitation formats a single citation with its source path.
func (c *CitationList) renderCitation(index int, citation *domain.Citation) string {
	// Indicator for selected item
	indicator := "  "
	if index == c.selected {
		indicator = "> "
	}

	title := citation.DocumentTitle
	if title == "" {
		title = citation.Path
	}
	if title == "" {
		title = "(Untitled)"
	}

	// Truncate title if too long
	maxTitleLen := c.width - 20
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	score := fmt.Sprintf("%.2f", citation.Score)

	var titleLine string
	if index == c.selected {
		titleLine = c.styles.Selected.Render(fmt.Sprintf("%s[%d] %-*s  %s", indicator, index+1, maxTitleLen, title, score))
	} else {
		titleLine = c.styles.Normal.Render(fmt.Sprintf("%s[%d] %-*s  ", indicator, index+1, maxTitleLen, title)) +
			c.styles.Muted.Render(score)
	}

	// Source path with chunk ordinal
	source := fmt.Sprintf("%s (chunk %d)", citation.Path, citation.Ordinal)
	maxSourceLen := c.width - 10
	if maxSourceLen < 20 {
		maxSourceLen = 20
	}
	if len(source) > maxSourceLen {
		source = source[:maxSourceLen-3] + "..."
	}

	sourceLine := c.styles.Muted.Render("      " + source)

	return titleLine + "\n" + sourceLine
}

// SetCitations updates the citation list.
func (c *CitationList) SetCitations(citations []domain.Citation) {
	c.citations = citations
	c.selected = 0
}

// Citations returns the current citations.
func (c *CitationList) Citations() []domain.Citation {
	return c.citations
}

// Selected returns the index of the selected citation.
func (c *CitationList) Selected() int {
	return c.selected
}

// SetSelected sets the selected index.
func (c *CitationList) SetSelected(index int) {
	if index >= 0 && index < len(c.citations) {
		c.selected = index
	}
}

// SelectedCitation returns the currently selected citation, or nil if none.
func (c *CitationList) SelectedCitation() *domain.Citation {
	if len(c.citations) == 0 || c.selected < 0 || c.selected >= len(c.citations) {
		return nil
	}
	return &c.citations[c.selected]
}

// MoveUp moves selection up.
func (c *CitationList) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// MoveDown moves selection down.
func (c *CitationList) MoveDown() {
	if c.selected < len(c.citations)-1 {
		c.selected++
	}
}

// SetDimensions sets the component dimensions.
func (c *CitationList) SetDimensions(width, height int) {
	c.width = width
	c.height = height
}

// Width returns the current width.
func (c *CitationList) Width() int {
	return c.width
}

// Height returns the current height.
func (c *CitationList) Height() int {
	return c.height
}

// Count returns the number of citations.
func (c *CitationList) Count() int {
	return len(c.citations)
}

// IsEmpty returns whether the list is empty.
func (c *CitationList) IsEmpty() bool {
	return len(c.citations) == 0
}
