package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/reviewlens/reviewlens/internal/domain"
	"github.com/reviewlens/reviewlens/internal/port"
)

// SearchService answers nearest-neighbor queries by scoring the query vector
// against every stored vector.
//
// The read path never propagates errors: any failure while embedding,
// counting, or scanning degrades to fewer (or zero) hits so queries stay
// available even when the write path is broken.
type SearchService struct {
	embedder port.Embedder
	vectors  port.VectorIndex
	reviews  port.ReviewLog

	maxTopK     int
	defaultTopK int
}

// NewSearchService creates a new search service. topK requests are clamped
// to maxTopK; non-positive requests fall back to defaultTopK.
func NewSearchService(embedder port.Embedder, vectors port.VectorIndex, reviews port.ReviewLog, maxTopK, defaultTopK int) *SearchService {
	return &SearchService{
		embedder:    embedder,
		vectors:     vectors,
		reviews:     reviews,
		maxTopK:     maxTopK,
		defaultTopK: defaultTopK,
	}
}

// Search embeds query, ranks all stored vectors by dot product against it,
// and joins the top hits with their reviews. Both sides were L2-normalized
// at embed time, so the dot product is a cosine similarity.
func (s *SearchService) Search(_ context.Context, query string, topK int) []domain.SearchHit {
	if topK <= 0 {
		topK = s.defaultTopK
	}
	if topK > s.maxTopK {
		topK = s.maxTopK
	}

	queryVec := s.embedder.EmbedQuery(query)

	reviewCount, err := s.reviews.Count()
	if err != nil {
		slog.Error("review count failed", "error", err)
		return []domain.SearchHit{}
	}

	stored, err := s.vectors.ScanAll()
	if err != nil {
		slog.Error("vector scan failed", "error", err)
		return []domain.SearchHit{}
	}

	// The stores can drift after a partial ingest failure; never score an id
	// the other store does not have.
	n := reviewCount
	if len(stored) < n {
		n = len(stored)
	}

	type scored struct {
		id    int
		score float32
	}
	ranked := make([]scored, 0, n)
	for id := 0; id < n; id++ {
		ranked = append(ranked, scored{id: id, score: dot(queryVec, stored[id])})
	}

	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	hits := make([]domain.SearchHit, 0, len(ranked))
	for _, c := range ranked {
		review, err := s.reviews.Read(c.id)
		if err != nil {
			slog.Warn("review read failed, dropping hit", "id", c.id, "error", err)
			continue
		}
		hits = append(hits, domain.SearchHit{ID: c.id, Score: c.score, Review: review})
	}
	return hits
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var s float32
	for i := 0; i < n; i++ {
		s += a[i] * b[i]
	}
	return s
}
