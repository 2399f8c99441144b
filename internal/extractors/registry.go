package extractors

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry selects the appropriate extractor for a document based on its
// MIME type. When several extractors claim the same type, the one with the
// highest priority wins.
type Registry struct {
	mu         sync.RWMutex
	extractors []driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an extractor to the registry.
func (r *Registry) Register(extractor driven.Extractor) {
	if extractor == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.extractors = append(r.extractors, extractor)
	sort.SliceStable(r.extractors, func(i, j int) bool {
		return r.extractors[i].Priority() > r.extractors[j].Priority()
	})
}

// Extract converts a raw document using the best matching extractor.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawDocument) (*driven.Extraction, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	extractor := r.find(raw.MIMEType)
	if extractor == nil {
		return nil, fmt.Errorf("%w: no extractor for %q (%s)", domain.ErrUnsupportedFormat, raw.MIMEType, raw.Path)
	}

	return extractor.Extract(ctx, raw)
}

// SupportedMIMETypes returns all MIME types that can be extracted, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, extractor := range r.extractors {
		for _, mimeType := range extractor.SupportedMIMETypes() {
			seen[mimeType] = struct{}{}
		}
	}

	types := make([]string, 0, len(seen))
	for mimeType := range seen {
		types = append(types, mimeType)
	}
	sort.Strings(types)
	return types
}

// find returns the highest-priority extractor claiming the MIME type,
// or nil when none matches.
func (r *Registry) find(mimeType string) driven.Extractor {
	mimeType = canonicalMIMEType(mimeType)

	r.mu.RLock()
	defer r.mu.RUnlock()

	// Extractors are kept sorted by priority, so the first match wins.
	for _, extractor := range r.extractors {
		for _, supported := range extractor.SupportedMIMETypes() {
			if supported == mimeType {
				return extractor
			}
		}
	}
	return nil
}

// canonicalMIMEType strips parameters like "; charset=utf-8".
func canonicalMIMEType(mimeType string) string {
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
