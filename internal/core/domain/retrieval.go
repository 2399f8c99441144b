package domain

// ScoredChunk pairs a stored chunk with its similarity to the query vector.
type ScoredChunk struct {
	// Chunk is the retrieved segment.
	Chunk Chunk

	// Score is the cosine similarity in [-1, 1]; zero-norm vectors score 0.
	Score float64
}

// RetrievalResult is the ranked outcome of a retrieval: at most K scored
// chunks in descending score order. Equal scores are ordered by ascending
// document id, then ascending ordinal, so a ranking is reproducible across
// runs on identical data.
type RetrievalResult struct {
	// Chunks are the ranked hits, best first.
	Chunks []ScoredChunk
}

// Empty reports whether the retrieval returned no chunks.
func (r RetrievalResult) Empty() bool {
	return len(r.Chunks) == 0
}

// Less reports whether s ranks strictly before o.
// Higher score wins; ties fall to ascending document id, then ordinal.
func (s ScoredChunk) Less(o ScoredChunk) bool {
	if s.Score != o.Score {
		return s.Score > o.Score
	}
	if s.Chunk.DocumentID != o.Chunk.DocumentID {
		return s.Chunk.DocumentID < o.Chunk.DocumentID
	}
	return s.Chunk.Ordinal < o.Chunk.Ordinal
}
