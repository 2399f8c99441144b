package services

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure CitationActionService implements the interface.
var _ driving.CitationActionService = (*CitationActionService)(nil)

// CitationActionService provides actions on cited chunks.
type CitationActionService struct {
	docStore    driven.DocumentStore
	corpusStore driven.CorpusStore
}

// NewCitationActionService creates a new citation action service.
func NewCitationActionService(
	docStore driven.DocumentStore,
	corpusStore driven.CorpusStore,
) *CitationActionService {
	return &CitationActionService{
		docStore:    docStore,
		corpusStore: corpusStore,
	}
}

// CopyToClipboard copies text to the system clipboard.
func (s *CitationActionService) CopyToClipboard(_ context.Context, text string) error {
	return copyToClipboard(text)
}

// OpenCited opens the cited document's source file in the default
// application.
func (s *CitationActionService) OpenCited(ctx context.Context, citation domain.Citation) error {
	doc, err := s.docStore.Get(ctx, citation.DocumentID)
	if err != nil {
		return fmt.Errorf("get cited document: %w", err)
	}

	corpus, err := s.corpusStore.Get(ctx, doc.CorpusID)
	if err != nil {
		return fmt.Errorf("get corpus: %w", err)
	}

	return openPath(filepath.Join(corpus.RootPath, doc.Path))
}

// copyToClipboard copies text to the system clipboard using OS-specific commands.
func copyToClipboard(text string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("pbcopy")
	case osLinux:
		// Try xclip first, fall back to xsel
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		} else if _, err := exec.LookPath("xsel"); err == nil {
			cmd = exec.Command("xsel", "--clipboard", "--input")
		} else {
			return fmt.Errorf("no clipboard utility found (install xclip or xsel)")
		}
	case osWindows:
		cmd = exec.Command("cmd", "/c", "clip")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
