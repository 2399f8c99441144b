// Package domain defines the core business entities for Quarry.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Corpus: A named folder of source documents
//   - Document: A processed document with metadata
//   - Chunk: A retrievable segment of canonical text with its embedding
//   - ManifestEntry: Last-processed fingerprint and outcome for a source file
//   - RetrievalResult: Ranked chunks for a query vector
//   - GroundedRequest: A generation request built from retrieved chunks only
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
