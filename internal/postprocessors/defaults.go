package postprocessors

import (
	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
	"github.com/quarrylabs/quarry-cli/internal/postprocessors/canonical"
	"github.com/quarrylabs/quarry-cli/internal/postprocessors/chunker"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("canonical", buildCanonical)
	r.Register("chunker", buildChunker)
}

// NewDefaultPipeline builds the standard ingest pipeline for a chunking
// configuration: canonical text normalisation, then chunking.
func NewDefaultPipeline(cfg domain.ChunkingSettings) (*Pipeline, error) {
	chunk, err := chunker.FromSettings(cfg)
	if err != nil {
		return nil, err
	}
	return NewPipeline(canonical.New(), chunk), nil
}

// buildCanonical creates the canonical text processor. It takes no config.
func buildCanonical(_ map[string]any) (driven.PostProcessor, error) {
	return canonical.New(), nil
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - chunk_size (int): Characters per chunk (default: 1000)
//   - overlap (int): Overlapping characters between chunks (default: 200)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if cfg != nil {
		if size := getIntFromConfig(cfg, "chunk_size"); size > 0 {
			opts = append(opts, chunker.WithChunkSize(size))
		}
		if _, ok := cfg["overlap"]; ok {
			opts = append(opts, chunker.WithOverlap(getIntFromConfig(cfg, "overlap")))
		}
	}

	return chunker.New(opts...)
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
