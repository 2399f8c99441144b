package ocr

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

// ErrOCRToolNotFound is returned when tesseract is not installed.
var ErrOCRToolNotFound = errors.New("tesseract not found in PATH")

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

// Extractor handles scanned images by shelling out to tesseract. Output
// quality depends entirely on the scan, so the text goes through the same
// canonical cleanup as everything else.
type Extractor struct {
	runner CommandRunner
}

// New creates a new OCR extractor using the system tesseract.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates an OCR extractor with a custom command runner.
// Used in tests to avoid spawning real processes.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"image/png",
		"image/jpeg",
		"image/tiff",
		"image/bmp",
		"image/webp",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Format-specific extractor
}

// Extract runs tesseract over the image and returns the recognised text.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawDocument) (*driven.Extraction, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	if err := CheckAvailable(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrExtraction, err)
	}

	path := raw.AbsolutePath
	if path == "" {
		tmp, err := os.CreateTemp("", "quarry-*"+filepath.Ext(raw.Path))
		if err != nil {
			return nil, fmt.Errorf("%w: cannot stage image: %s", domain.ErrExtraction, err)
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.Write(raw.Content); err != nil {
			tmp.Close()
			return nil, fmt.Errorf("%w: cannot stage image: %s", domain.ErrExtraction, err)
		}
		tmp.Close()
		path = tmp.Name()
	}

	// "stdout" as the output base makes tesseract print instead of
	// writing a sidecar file.
	output, err := e.runner.Run(ctx, "tesseract", path, "stdout")
	if err != nil {
		return nil, fmt.Errorf("%w: tesseract failed: %s", domain.ErrExtraction, err)
	}

	return &driven.Extraction{
		Text:      strings.TrimSpace(string(output)),
		Title:     extractTitle(raw.Path),
		PageCount: 1,
	}, nil
}

// CheckAvailable reports whether tesseract is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return ErrOCRToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing tesseract.
func InstallInstructions() string {
	return `tesseract is required for scanned image support. Install it:

  macOS:          brew install tesseract
  Debian/Ubuntu:  sudo apt install tesseract-ocr
  Fedora:         sudo dnf install tesseract`
}

// extractTitle derives a title from the file path. Scans rarely carry
// embedded titles, so the filename is all there is.
func extractTitle(path string) string {
	filename := filepath.Base(path)
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
