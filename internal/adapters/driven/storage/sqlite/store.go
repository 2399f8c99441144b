package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/quarrylabs/quarry-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// Store is a unified SQLite-based storage that provides access to the
// corpus, document, chunk, and manifest store interfaces through wrapper
// types sharing one connection.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.quarry/data/quarry.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".quarry", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "quarry.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CorpusStore returns a CorpusStore interface backed by this store.
func (s *Store) CorpusStore() driven.CorpusStore {
	return &corpusStore{store: s}
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// ChunkStore returns a ChunkStore enforcing the given embedding width.
// A non-positive width disables the dimension check; text and ordinal
// validation always apply.
func (s *Store) ChunkStore(dimensions int) driven.ChunkStore {
	return &chunkStore{store: s, dimensions: dimensions}
}

// ManifestStore returns a ManifestStore interface backed by this store.
func (s *Store) ManifestStore() driven.ManifestStore {
	return &manifestStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Corpus Store ====================

// corpusStore implements driven.CorpusStore.
type corpusStore struct {
	store *Store
}

var _ driven.CorpusStore = (*corpusStore)(nil)

// Save stores or updates a corpus.
func (s *corpusStore) Save(ctx context.Context, corpus domain.Corpus) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO corpora (id, name, root_path, chunk_size, chunk_overlap, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			root_path = excluded.root_path,
			chunk_size = excluded.chunk_size,
			chunk_overlap = excluded.chunk_overlap,
			updated_at = excluded.updated_at
	`, corpus.ID, corpus.Name, corpus.RootPath, corpus.ChunkSize, corpus.ChunkOverlap,
		corpus.CreatedAt, corpus.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving corpus: %w", err)
	}
	return nil
}

// Get retrieves a corpus by ID.
func (s *corpusStore) Get(ctx context.Context, id string) (*domain.Corpus, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, root_path, chunk_size, chunk_overlap, created_at, updated_at
		FROM corpora WHERE id = ?
	`, id)

	return scanCorpus(row)
}

// GetByName retrieves a corpus by its unique name.
func (s *corpusStore) GetByName(ctx context.Context, name string) (*domain.Corpus, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, root_path, chunk_size, chunk_overlap, created_at, updated_at
		FROM corpora WHERE name = ?
	`, name)

	return scanCorpus(row)
}

// List returns all configured corpora, ordered by name.
func (s *corpusStore) List(ctx context.Context) ([]domain.Corpus, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, root_path, chunk_size, chunk_overlap, created_at, updated_at
		FROM corpora ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying corpora: %w", err)
	}
	defer rows.Close()

	var corpora []domain.Corpus //nolint:prealloc // size unknown from query
	for rows.Next() {
		var corpus domain.Corpus
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&corpus.ID, &corpus.Name, &corpus.RootPath,
			&corpus.ChunkSize, &corpus.ChunkOverlap, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning corpus: %w", err)
		}
		if createdAt.Valid {
			corpus.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			corpus.UpdatedAt = updatedAt.Time
		}
		corpora = append(corpora, corpus)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating corpora: %w", err)
	}

	return corpora, nil
}

// Delete removes a corpus configuration.
func (s *corpusStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM corpora WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting corpus: %w", err)
	}
	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Save stores or updates a document.
func (s *documentStore) Save(ctx context.Context, doc *domain.Document) error {
	tagsJSON, err := json.Marshal(doc.Tags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO documents
			(id, corpus_id, path, title, format, fingerprint, content,
			 page_count, summary, tags, classification, processed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			corpus_id = excluded.corpus_id,
			path = excluded.path,
			title = excluded.title,
			format = excluded.format,
			fingerprint = excluded.fingerprint,
			content = excluded.content,
			page_count = excluded.page_count,
			summary = excluded.summary,
			tags = excluded.tags,
			classification = excluded.classification,
			processed_at = excluded.processed_at
	`, doc.ID, doc.CorpusID, doc.Path, doc.Title, doc.Format, doc.Fingerprint,
		doc.Content, doc.PageCount, doc.Summary, string(tagsJSON),
		doc.Classification, doc.ProcessedAt, doc.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, corpus_id, path, title, format, fingerprint, content,
		       page_count, summary, tags, classification, processed_at, created_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocument(row)
}

// GetByPath retrieves a document by corpus and source path.
func (s *documentStore) GetByPath(ctx context.Context, corpusID, path string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, corpus_id, path, title, format, fingerprint, content,
		       page_count, summary, tags, classification, processed_at, created_at
		FROM documents WHERE corpus_id = ? AND path = ?
	`, corpusID, path)

	return scanDocument(row)
}

// List returns documents for a corpus, ordered by path. An empty corpusID
// lists every document.
func (s *documentStore) List(ctx context.Context, corpusID string) ([]domain.Document, error) {
	query := `
		SELECT id, corpus_id, path, title, format, fingerprint, content,
		       page_count, summary, tags, classification, processed_at, created_at
		FROM documents`
	args := []any{}
	if corpusID != "" {
		query += " WHERE corpus_id = ?"
		args = append(args, corpusID)
	}
	query += " ORDER BY path"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// Delete removes a document. Chunks cascade through the foreign key.
func (s *documentStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// ==================== Chunk Store ====================

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store      *Store
	dimensions int
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// ReplaceChunks atomically swaps the entire chunk set for a document.
func (s *chunkStore) ReplaceChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error {
	if err := s.validate(documentID, chunks); err != nil {
		return err
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, ordinal, start_offset, end_offset, content, embedding, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		tagsJSON, err := json.Marshal(chunk.Tags)
		if err != nil {
			return fmt.Errorf("marshalling chunk tags: %w", err)
		}

		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, documentID, chunk.Ordinal,
			chunk.StartOffset, chunk.EndOffset, chunk.Text, embeddingBlob,
			string(tagsJSON)); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// validate rejects a batch that violates the store invariants. Nothing is
// written when validation fails.
func (s *chunkStore) validate(documentID string, chunks []domain.Chunk) error {
	seen := make(map[int]struct{}, len(chunks))
	for _, chunk := range chunks {
		if chunk.Text == "" {
			return fmt.Errorf("%w: chunk %d of document %s has empty text",
				domain.ErrValidation, chunk.Ordinal, documentID)
		}
		if s.dimensions > 0 && len(chunk.Embedding) != s.dimensions {
			return fmt.Errorf("%w: chunk %d of document %s has embedding width %d, want %d",
				domain.ErrValidation, chunk.Ordinal, documentID, len(chunk.Embedding), s.dimensions)
		}
		if _, dup := seen[chunk.Ordinal]; dup {
			return fmt.Errorf("%w: duplicate ordinal %d in document %s",
				domain.ErrValidation, chunk.Ordinal, documentID)
		}
		seen[chunk.Ordinal] = struct{}{}
	}
	return nil
}

// GetChunks returns a document's chunks ordered by ordinal.
func (s *chunkStore) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	var exists int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE id = ?", documentID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking document: %w", err)
	}
	if exists == 0 {
		return nil, domain.ErrNotFound
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, ordinal, start_offset, end_offset, content, embedding, tags
		FROM chunks WHERE document_id = ?
		ORDER BY ordinal
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// AllChunks streams every committed chunk, ordered by document then ordinal.
// WAL snapshot isolation keeps the stream consistent while other documents
// are being replaced.
func (s *chunkStore) AllChunks(ctx context.Context, corpusID string) (<-chan domain.Chunk, <-chan error) {
	chunkCh := make(chan domain.Chunk)
	errCh := make(chan error, 1)

	go func() {
		defer close(chunkCh)
		defer close(errCh)

		query := `
			SELECT c.id, c.document_id, c.ordinal, c.start_offset, c.end_offset, c.content, c.embedding, c.tags
			FROM chunks c`
		args := []any{}
		if corpusID != "" {
			query += `
			JOIN documents d ON d.id = c.document_id
			WHERE d.corpus_id = ?`
			args = append(args, corpusID)
		}
		query += `
			ORDER BY c.document_id, c.ordinal`

		rows, err := s.store.db.QueryContext(ctx, query, args...)
		if err != nil {
			errCh <- fmt.Errorf("querying chunks: %w", err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			chunk, err := scanChunk(rows)
			if err != nil {
				errCh <- err
				return
			}

			select {
			case chunkCh <- *chunk:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}

		if err := rows.Err(); err != nil {
			errCh <- fmt.Errorf("iterating chunks: %w", err)
		}
	}()

	return chunkCh, errCh
}

// CountChunks returns the number of committed chunks.
func (s *chunkStore) CountChunks(ctx context.Context, corpusID string) (int, error) {
	query := "SELECT COUNT(*) FROM chunks"
	args := []any{}
	if corpusID != "" {
		query = `
			SELECT COUNT(*) FROM chunks c
			JOIN documents d ON d.id = c.document_id
			WHERE d.corpus_id = ?`
		args = append(args, corpusID)
	}

	var count int
	if err := s.store.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// ==================== Manifest Store ====================

// manifestStore implements driven.ManifestStore.
type manifestStore struct {
	store *Store
}

var _ driven.ManifestStore = (*manifestStore)(nil)

// Put stores or updates a manifest entry.
func (s *manifestStore) Put(ctx context.Context, entry domain.ManifestEntry) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO manifest_entries (corpus_id, path, fingerprint, status, processed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(corpus_id, path) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			status = excluded.status,
			processed_at = excluded.processed_at
	`, entry.CorpusID, entry.Path, entry.Fingerprint, string(entry.Status), entry.ProcessedAt)

	if err != nil {
		return fmt.Errorf("saving manifest entry: %w", err)
	}
	return nil
}

// Get retrieves the entry for a file. Returns nil without error when the
// file was never recorded.
func (s *manifestStore) Get(ctx context.Context, corpusID, path string) (*domain.ManifestEntry, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT corpus_id, path, fingerprint, status, processed_at
		FROM manifest_entries WHERE corpus_id = ? AND path = ?
	`, corpusID, path)

	var entry domain.ManifestEntry
	var status string
	var processedAt sql.NullTime
	if err := row.Scan(&entry.CorpusID, &entry.Path, &entry.Fingerprint, &status, &processedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning manifest entry: %w", err)
	}

	entry.Status = domain.ManifestStatus(status)
	if processedAt.Valid {
		entry.ProcessedAt = processedAt.Time
	}

	return &entry, nil
}

// List returns every entry for a corpus.
func (s *manifestStore) List(ctx context.Context, corpusID string) ([]domain.ManifestEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT corpus_id, path, fingerprint, status, processed_at
		FROM manifest_entries WHERE corpus_id = ?
		ORDER BY path
	`, corpusID)
	if err != nil {
		return nil, fmt.Errorf("querying manifest entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.ManifestEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.ManifestEntry
		var status string
		var processedAt sql.NullTime
		if err := rows.Scan(&entry.CorpusID, &entry.Path, &entry.Fingerprint, &status, &processedAt); err != nil {
			return nil, fmt.Errorf("scanning manifest entry: %w", err)
		}
		entry.Status = domain.ManifestStatus(status)
		if processedAt.Valid {
			entry.ProcessedAt = processedAt.Time
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating manifest entries: %w", err)
	}

	return entries, nil
}

// Delete removes the entry for a file.
func (s *manifestStore) Delete(ctx context.Context, corpusID, path string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM manifest_entries WHERE corpus_id = ? AND path = ?", corpusID, path)
	if err != nil {
		return fmt.Errorf("deleting manifest entry: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var tagsJSON string
	var processedAt, createdAt sql.NullTime

	if err := row.Scan(&doc.ID, &doc.CorpusID, &doc.Path, &doc.Title, &doc.Format,
		&doc.Fingerprint, &doc.Content, &doc.PageCount, &doc.Summary, &tagsJSON,
		&doc.Classification, &processedAt, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if tagsJSON != "" && tagsJSON != jsonNull {
		if err := json.Unmarshal([]byte(tagsJSON), &doc.Tags); err != nil {
			return nil, fmt.Errorf("unmarshaling tags: %w", err)
		}
	}
	if processedAt.Valid {
		doc.ProcessedAt = processedAt.Time
	}
	if createdAt.Valid {
		doc.CreatedAt = createdAt.Time
	}

	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var tagsJSON string
	var processedAt, createdAt sql.NullTime

	if err := rows.Scan(&doc.ID, &doc.CorpusID, &doc.Path, &doc.Title, &doc.Format,
		&doc.Fingerprint, &doc.Content, &doc.PageCount, &doc.Summary, &tagsJSON,
		&doc.Classification, &processedAt, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if tagsJSON != "" && tagsJSON != jsonNull {
		if err := json.Unmarshal([]byte(tagsJSON), &doc.Tags); err != nil {
			return nil, fmt.Errorf("unmarshaling tags: %w", err)
		}
	}
	if processedAt.Valid {
		doc.ProcessedAt = processedAt.Time
	}
	if createdAt.Valid {
		doc.CreatedAt = createdAt.Time
	}

	return &doc, nil
}

// scanChunk scans a chunk from *sql.Rows.
func scanChunk(rows *sql.Rows) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var embeddingBlob []byte
	var tagsJSON string

	if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Ordinal,
		&chunk.StartOffset, &chunk.EndOffset, &chunk.Text, &embeddingBlob,
		&tagsJSON); err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	chunk.Embedding = bytesToFloat32Slice(embeddingBlob)

	if tagsJSON != "" && tagsJSON != jsonNull {
		if err := json.Unmarshal([]byte(tagsJSON), &chunk.Tags); err != nil {
			return nil, fmt.Errorf("unmarshaling chunk tags: %w", err)
		}
	}

	return &chunk, nil
}

// scanCorpus scans a single corpus row.
func scanCorpus(row *sql.Row) (*domain.Corpus, error) {
	var corpus domain.Corpus
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&corpus.ID, &corpus.Name, &corpus.RootPath,
		&corpus.ChunkSize, &corpus.ChunkOverlap, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning corpus: %w", err)
	}

	if createdAt.Valid {
		corpus.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		corpus.UpdatedAt = updatedAt.Time
	}

	return &corpus, nil
}
