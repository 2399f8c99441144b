package services

import (
	"container/heap"
	"context"
	"fmt"
	"math"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
	"github.com/quarrylabs/quarry-cli/internal/logger"
)

// Retriever ranks stored chunks by cosine similarity to a query vector.
// It scans the full chunk stream once and keeps the best K candidates in a
// bounded min-heap, so memory stays O(K) regardless of store size.
type Retriever struct {
	chunkStore driven.ChunkStore
}

// NewRetriever creates a retriever over a chunk store.
func NewRetriever(chunkStore driven.ChunkStore) *Retriever {
	return &Retriever{chunkStore: chunkStore}
}

// TopK returns the k chunks most similar to the query vector, best first.
// An empty corpusID spans every corpus. minScore drops hits below the floor
// when positive. Fewer than k results means the store holds fewer matching
// chunks; that is not an error.
func (r *Retriever) TopK(
	ctx context.Context, query []float32, k int, corpusID string, minScore float64,
) (domain.RetrievalResult, error) {
	if k <= 0 {
		return domain.RetrievalResult{}, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidArgument, k)
	}
	if len(query) == 0 {
		return domain.RetrievalResult{}, fmt.Errorf("%w: empty query vector", domain.ErrInvalidArgument)
	}

	chunksCh, errsCh := r.chunkStore.AllChunks(ctx, corpusID)

	h := make(bottomKHeap, 0, k)
	scanned := 0

	for chunksCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			return domain.RetrievalResult{}, ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if err != nil {
				return domain.RetrievalResult{}, fmt.Errorf("scan chunks: %w", err)
			}

		case chunk, ok := <-chunksCh:
			if !ok {
				chunksCh = nil
				continue
			}
			scanned++
			score := cosineSimilarity(query, chunk.Embedding)
			if minScore > 0 && score < minScore {
				continue
			}
			cand := domain.ScoredChunk{Chunk: chunk, Score: score}
			if h.Len() < k {
				heap.Push(&h, cand)
				continue
			}
			// Replace the current worst only when the candidate ranks
			// strictly before it; ties resolve via ScoredChunk.Less.
			if cand.Less(h[0]) {
				h[0] = cand
				heap.Fix(&h, 0)
			}
		}
	}

	// Drain worst-first, fill best-first.
	ranked := make([]domain.ScoredChunk, h.Len())
	for i := len(ranked) - 1; i >= 0; i-- {
		ranked[i] = heap.Pop(&h).(domain.ScoredChunk)
	}

	logger.Debug("Retrieval: scanned %d chunks, returning %d (k=%d, floor=%.2f)",
		scanned, len(ranked), k, minScore)

	return domain.RetrievalResult{Chunks: ranked}, nil
}

// bottomKHeap keeps the worst-ranked candidate at the root so it can be
// evicted in O(log K) when a better one arrives.
type bottomKHeap []domain.ScoredChunk

func (h bottomKHeap) Len() int           { return len(h) }
func (h bottomKHeap) Less(i, j int) bool { return h[j].Less(h[i]) }
func (h bottomKHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *bottomKHeap) Push(x any) {
	*h = append(*h, x.(domain.ScoredChunk))
}

func (h *bottomKHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// A zero-norm vector on either side scores 0, as does a width mismatch;
// degenerate input is never an error at query time.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		av, bv := float64(a[i]), float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
