// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Connector: Reads raw files from a corpus root
//   - Extractor: Converts raw bytes of one format into text
//   - ExtractorRegistry: Selects the extractor for a MIME type
//   - PostProcessorPipeline: Canonicalises text and derives chunks
//   - CorpusStore: Corpus configuration persistence
//   - DocumentStore: Document metadata persistence
//   - ChunkStore: Chunk and embedding persistence
//   - ManifestStore: Per-file fingerprint persistence for refresh decisions
//   - ConfigStore: Application configuration
//   - EmbeddingService: Generates vector embeddings
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Answer generation and document enrichment. Without it,
//     ask mode and summaries are disabled; ingest and retrieval still work.
//   - PromptStore: Prompt template overrides. Without it, built-in defaults
//     are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or extractor package
package driven
