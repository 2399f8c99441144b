// Package sqlite provides the persistent store backing corpora, documents,
// chunks with their embeddings, and the processing manifest.
//
// A single database file holds everything. The Store type owns the
// connection and hands out typed views implementing the driven store
// ports. Chunk replacement happens in one transaction per document, so
// readers see either the complete old chunk set or the complete new one.
//
// Embedding vectors are stored as little-endian float32 blobs. The chunk
// view is opened with the embedding width it must enforce; writes that
// violate it are rejected whole.
package sqlite
