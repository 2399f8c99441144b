package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// ErrPDFToolNotFound is returned when pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// maxTitleLength is the longest line still considered a plausible title.
const maxTitleLength = 200

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w", msg, err)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// Extractor handles PDF documents by shelling out to pdftotext from the
// poppler toolkit. Page boundaries arrive as form feeds and are replaced
// with visible page markers so citations can point at a page.
type Extractor struct {
	runner CommandRunner
}

// New creates a new PDF extractor using the system pdftotext.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates a PDF extractor with a custom command runner.
// Used in tests to avoid spawning real processes.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Format-specific extractor
}

// Extract converts a PDF to text via pdftotext.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawDocument) (*driven.Extraction, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	if err := CheckAvailable(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrExtraction, err)
	}

	path := raw.AbsolutePath
	if path == "" {
		// Content arrived in memory; pdftotext wants a file.
		tmp, err := os.CreateTemp("", "quarry-*.pdf")
		if err != nil {
			return nil, fmt.Errorf("%w: cannot stage pdf: %s", domain.ErrExtraction, err)
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.Write(raw.Content); err != nil {
			tmp.Close()
			return nil, fmt.Errorf("%w: cannot stage pdf: %s", domain.ErrExtraction, err)
		}
		tmp.Close()
		path = tmp.Name()
	}

	// "-" sends the text to stdout. Form feeds separate pages.
	output, err := e.runner.Run(ctx, "pdftotext", "-q", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return nil, fmt.Errorf("%w: pdftotext failed: %s", domain.ErrExtraction, err)
	}

	pages := splitPages(string(output))

	return &driven.Extraction{
		Text:      markPages(pages),
		Title:     extractTitle(firstPage(pages), raw.Path),
		PageCount: len(pages),
	}, nil
}

// CheckAvailable reports whether pdftotext is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing pdftotext.
func InstallInstructions() string {
	return `pdftotext is required for PDF support. Install poppler:

  macOS:          brew install poppler
  Debian/Ubuntu:  sudo apt install poppler-utils
  Fedora:         sudo dnf install poppler-utils`
}

// splitPages splits pdftotext output on form feeds. The trailing form feed
// produces an empty final element, which is dropped.
func splitPages(output string) []string {
	pages := strings.Split(output, "\f")
	if len(pages) > 0 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}

// markPages joins page texts with visible page markers.
func markPages(pages []string) string {
	var result strings.Builder
	for i, page := range pages {
		if i > 0 {
			result.WriteString("\n\n")
		}
		fmt.Fprintf(&result, "--- Page %d ---\n", i+1)
		result.WriteString(strings.TrimSpace(page))
	}
	return result.String()
}

// firstPage returns the text of the first page, or "" when there is none.
func firstPage(pages []string) string {
	if len(pages) == 0 {
		return ""
	}
	return pages[0]
}

// extractTitle takes the first short non-empty line as the title, falling
// back to the filename.
func extractTitle(content, path string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > maxTitleLength {
			continue
		}
		return line
	}

	// Fall back to filename
	filename := filepath.Base(path)
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
