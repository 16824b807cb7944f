package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/reviewlens/reviewlens/internal/domain"
	"github.com/reviewlens/reviewlens/internal/port"
)

// IngestService embeds reviews and appends vector + document to the two
// positionally-coupled logs. One mutex spans both appends of an ingest, so
// two concurrent inserts can never interleave their vector and review writes:
// the id correspondence is structural, not an accident of call ordering.
type IngestService struct {
	embedder port.Embedder
	vectors  port.VectorIndex
	reviews  port.ReviewLog

	mu sync.Mutex
}

// NewIngestService creates a new ingest service.
func NewIngestService(embedder port.Embedder, vectors port.VectorIndex, reviews port.ReviewLog) *IngestService {
	return &IngestService{embedder: embedder, vectors: vectors, reviews: reviews}
}

// validateReview rejects malformed reviews before any store or statistics
// mutation. Ratings outside 1-5 are the one malformed shape clients actually
// send.
func validateReview(r domain.Review) error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating %d out of range 1-5: %w", r.Rating, port.ErrInvalidReview)
	}
	return nil
}

// InsertOne stores a single review and returns its ordinal id.
//
// There is no rollback: if the review append fails after the vector append
// succeeded, the stores have diverged by one orphaned vector. Search bounds
// its scan by the smaller store, which is the only defense against that.
func (s *IngestService) InsertOne(_ context.Context, r domain.Review) (int, error) {
	if err := validateReview(r); err != nil {
		return 0, err
	}

	vec := s.embedder.EmbedIndex(r.Text())

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.vectors.Append(vec)
	if err != nil {
		return 0, fmt.Errorf("append vector: %w", err)
	}
	if err := s.reviews.Append(r); err != nil {
		return 0, fmt.Errorf("append review (vector id %d is now orphaned): %w", id, err)
	}

	slog.Info("insert review", "id", id, "product_id", r.ProductID, "title", r.Title)
	return id, nil
}

// InsertBulk stores reviews in input order, aborting on the first failure.
// It returns how many reviews were inserted before the failure.
func (s *IngestService) InsertBulk(ctx context.Context, reviews []domain.Review) (int, error) {
	inserted := 0
	for i, r := range reviews {
		if _, err := s.InsertOne(ctx, r); err != nil {
			return inserted, fmt.Errorf("bulk insert aborted at review %d: %w", i, err)
		}
		inserted++
	}
	return inserted, nil
}
