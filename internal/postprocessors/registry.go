package postprocessors

import (
	"fmt"
	"sort"

	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
)

// BuilderFunc constructs a PostProcessor from the generic key/value
// settings found in user configuration.
type BuilderFunc func(cfg map[string]any) (driven.PostProcessor, error)

// Registry holds named processor builders so pipelines can be assembled
// from configuration rather than hard-coded.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]BuilderFunc)}
}

// Register stores a builder under name. The name should match what the
// built processor reports from Name().
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build constructs the named processor with the given config.
func (r *Registry) Build(name string, cfg map[string]any) (driven.PostProcessor, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown processor: %q", name)
	}
	return builder(cfg)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names lists the registered processor names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
