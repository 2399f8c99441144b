package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
	"github.com/quarrylabs/quarry-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector reads documents from a local folder tree.
// Hidden files and directories (dot-prefixed, relative to the root) are
// skipped everywhere: scans, watches and reads.
type Connector struct {
	corpusID string
	rootPath string

	mu     sync.Mutex
	closed bool
}

// New creates a filesystem connector for a corpus root.
func New(corpusID, rootPath string) *Connector {
	return &Connector{
		corpusID: corpusID,
		rootPath: rootPath,
	}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "filesystem"
}

// CorpusID returns the corpus this connector scans.
func (c *Connector) CorpusID() string {
	return c.corpusID
}

// Capabilities returns what the filesystem connector supports.
func (c *Connector) Capabilities() driven.ConnectorCapabilities {
	return driven.ConnectorCapabilities{
		SupportsWatch:     true,
		SupportsHierarchy: true,
		SupportsBinary:    true,
	}
}

// Validate checks the corpus root exists and is a directory.
func (c *Connector) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(c.rootPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("root path %s does not exist", c.rootPath)
	}
	if err != nil {
		return fmt.Errorf("stat root path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path %s is not a directory", c.rootPath)
	}
	return nil
}

// FullScan walks the corpus root and streams every readable regular file.
// Per-file read failures are reported on the error channel and the walk
// continues; both channels close when the walk ends or the context is
// cancelled.
func (c *Connector) FullScan(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument)
	errs := make(chan error, 1)

	go func() {
		defer close(docs)
		defer close(errs)

		if err := c.Validate(ctx); err != nil {
			errs <- err
			return
		}

		walkErr := filepath.WalkDir(c.rootPath, func(path string, entry fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			if err != nil {
				sendScanErr(ctx, errs, fmt.Errorf("scan %s: %w", path, err))
				if entry != nil && entry.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			if entry.IsDir() {
				if path != c.rootPath && isHidden(entry.Name()) {
					return fs.SkipDir
				}
				return nil
			}
			if isHidden(entry.Name()) || !entry.Type().IsRegular() {
				return nil
			}

			doc, err := c.readDocument(path)
			if err != nil {
				sendScanErr(ctx, errs, fmt.Errorf("read %s: %w", path, err))
				return nil
			}

			select {
			case docs <- *doc:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if walkErr != nil && !errors.Is(walkErr, context.Canceled) {
			sendScanErr(ctx, errs, walkErr)
		}
	}()

	return docs, errs
}

// Watch emits change events for files under the corpus root until the
// context is cancelled. Subdirectories are watched recursively, including
// ones created while watching.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("connector is closed")
	}

	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := c.watchTree(watcher, c.rootPath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", c.rootPath, err)
	}

	changes := make(chan domain.RawDocumentChange)

	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				// New directories join the watch; they never become events.
				if event.Op.Has(fsnotify.Create) {
					if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
						if !isHidden(c.relPath(event.Name)) {
							if addErr := c.watchTree(watcher, event.Name); addErr != nil {
								logger.Warn("Watch new directory %s: %v", event.Name, addErr)
							}
						}
						continue
					}
				}

				change := c.changeForEvent(event)
				if change == nil {
					continue
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}

			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watch error: %v", watchErr)
			}
		}
	}()

	return changes, nil
}

// Close marks the connector closed. Reads in flight are unaffected.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// watchTree registers a directory and every visible subdirectory.
func (c *Connector) watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != c.rootPath && isHidden(entry.Name()) {
			return fs.SkipDir
		}
		return watcher.Add(path)
	})
}

// changeForEvent maps one fsnotify event to a document change.
// Returns nil for events that should not reach the ingest pipeline:
// hidden paths, directories, chmods and unreadable files.
func (c *Connector) changeForEvent(event fsnotify.Event) *domain.RawDocumentChange {
	rel := c.relPath(event.Name)
	if isHidden(rel) {
		return nil
	}

	switch {
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		doc, err := c.readDocument(event.Name)
		if err != nil {
			logger.Debug("Dropping event for %s: %v", event.Name, err)
			return nil
		}
		kind := domain.ChangeUpdated
		if event.Op.Has(fsnotify.Create) {
			kind = domain.ChangeCreated
		}
		return &domain.RawDocumentChange{Type: kind, Document: *doc}

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		// A rename away from the tree looks like a deletion; the new
		// location arrives as its own create event when still in scope.
		return &domain.RawDocumentChange{
			Type: domain.ChangeDeleted,
			Document: domain.RawDocument{
				CorpusID:     c.corpusID,
				Path:         rel,
				AbsolutePath: event.Name,
			},
		}
	}

	return nil
}

// readDocument loads one file into a RawDocument.
func (c *Connector) readDocument(path string) (*domain.RawDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &domain.RawDocument{
		CorpusID:     c.corpusID,
		Path:         c.relPath(path),
		AbsolutePath: path,
		MIMEType:     detectMIMEType(path),
		Content:      content,
		ModTime:      info.ModTime(),
	}, nil
}

// relPath converts an absolute path to the slash-separated corpus-relative
// form used as document identity.
func (c *Connector) relPath(path string) string {
	rel, err := filepath.Rel(c.rootPath, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func sendScanErr(ctx context.Context, errs chan<- error, err error) {
	select {
	case errs <- err:
	case <-ctx.Done():
	}
}

// isHidden reports whether any component of the path is dot-prefixed.
// The path must be relative to the corpus root; "." and ".." never count.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// mimeByExtension pins MIME types for extensions the platform tables get
// wrong or leave unset, so detection behaves the same on every OS.
var mimeByExtension = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".txt":      "text/plain",
	".csv":      "text/csv",
	".go":       "text/x-go",
	".py":       "text/x-python",
	".rs":       "text/x-rust",
	".c":        "text/x-c",
	".h":        "text/x-c",
	".ts":       "text/typescript",
	".tsx":      "text/typescript-jsx",
	".jsx":      "text/javascript-jsx",
	".yaml":     "text/yaml",
	".yml":      "text/yaml",
	".toml":     "text/toml",
	".sh":       "text/x-shellscript",
	".bash":     "text/x-shellscript",
	".sql":      "text/x-sql",
	".pdf":      "application/pdf",
	".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".tif":      "image/tiff",
	".tiff":     "image/tiff",
}

// detectMIMEType resolves a file's MIME type from its extension.
// Extensionless files are treated as plain text; unknown extensions fall
// back to application/octet-stream.
func detectMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "text/plain"
	}

	if mimeType, ok := mimeByExtension[ext]; ok {
		return mimeType
	}

	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		if idx := strings.Index(mimeType, ";"); idx >= 0 {
			mimeType = strings.TrimSpace(mimeType[:idx])
		}
		return mimeType
	}

	return "application/octet-stream"
}

// Ensure Factory implements the interface.
var _ driven.ConnectorFactory = (*Factory)(nil)

// Factory builds filesystem connectors for corpora.
type Factory struct{}

// NewFactory creates a connector factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns a connector scanning the corpus root path.
func (f *Factory) Create(_ context.Context, corpus domain.Corpus) (driven.Connector, error) {
	if corpus.RootPath == "" {
		return nil, fmt.Errorf("%w: corpus %s has no root path", domain.ErrInvalidArgument, corpus.ID)
	}
	return New(corpus.ID, corpus.RootPath), nil
}
