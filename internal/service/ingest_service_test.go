package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewlens/reviewlens/internal/adapter/embed"
	"github.com/reviewlens/reviewlens/internal/adapter/store"
	"github.com/reviewlens/reviewlens/internal/domain"
	"github.com/reviewlens/reviewlens/internal/port"
)

const testDim = 256

func newTestStack(t *testing.T) (*embed.TFIDFEmbedder, *store.VectorFile, *store.ReviewFile) {
	t.Helper()
	dir := t.TempDir()

	vectors, err := store.OpenVectorFile(dir, testDim)
	require.NoError(t, err)
	t.Cleanup(func() { vectors.Close() })

	reviews, err := store.OpenReviewFile(dir)
	require.NoError(t, err)
	t.Cleanup(func() { reviews.Close() })

	return embed.NewTFIDFEmbedder(testDim), vectors, reviews
}

func review(title, body, productID string, rating int) domain.Review {
	return domain.Review{Title: title, Body: body, ProductID: productID, Rating: rating}
}

func TestInsertOneAssignsSequentialIDs(t *testing.T) {
	embedder, vectors, reviews := newTestStack(t)
	svc := NewIngestService(embedder, vectors, reviews)

	for i := 0; i < 4; i++ {
		id, err := svc.InsertOne(context.Background(), review("t", "b", "p", 5))
		require.NoError(t, err)
		assert.Equal(t, i, id)
	}
}

func TestInsertOneKeepsStoresInLockstep(t *testing.T) {
	embedder, vectors, reviews := newTestStack(t)
	svc := NewIngestService(embedder, vectors, reviews)

	docs := []domain.Review{
		review("fast shipping", "arrived early", "p1", 5),
		review("broken on arrival", "very disappointed", "p2", 1),
		review("decent value", "does the job", "p3", 3),
	}
	for _, r := range docs {
		_, err := svc.InsertOne(context.Background(), r)
		require.NoError(t, err)
	}

	vn, err := vectors.Count()
	require.NoError(t, err)
	rn, err := reviews.Count()
	require.NoError(t, err)
	require.Equal(t, len(docs), vn)
	require.Equal(t, len(docs), rn)

	for id, want := range docs {
		vec, err := vectors.Get(id)
		require.NoError(t, err)
		assert.Len(t, vec, testDim)

		got, err := reviews.Read(id)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestInsertOneRejectsBadRating(t *testing.T) {
	embedder, vectors, reviews := newTestStack(t)
	svc := NewIngestService(embedder, vectors, reviews)

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.InsertOne(context.Background(), review("t", "b", "p", rating))
		assert.ErrorIs(t, err, port.ErrInvalidReview, "rating %d", rating)
	}

	// Rejected before any mutation: stores and corpus stayed empty.
	vn, err := vectors.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, vn)
	rn, err := reviews.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, rn)
}

func TestInsertBulkFailFast(t *testing.T) {
	embedder, vectors, reviews := newTestStack(t)
	svc := NewIngestService(embedder, vectors, reviews)

	batch := []domain.Review{
		review("ok one", "fine", "p1", 4),
		review("ok two", "fine", "p2", 5),
		review("malformed", "rating out of range", "p3", 9),
		review("never reached", "should not be stored", "p4", 2),
	}

	inserted, err := svc.InsertBulk(context.Background(), batch)
	require.ErrorIs(t, err, port.ErrInvalidReview)
	assert.Equal(t, 2, inserted)

	rn, err := reviews.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, rn)
}

func TestInsertBulkEmpty(t *testing.T) {
	embedder, vectors, reviews := newTestStack(t)
	svc := NewIngestService(embedder, vectors, reviews)

	inserted, err := svc.InsertBulk(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
}

func TestConcurrentInsertsPreserveCorrespondence(t *testing.T) {
	embedder, vectors, reviews := newTestStack(t)
	svc := NewIngestService(embedder, vectors, reviews)

	const workers = 16
	var wg sync.WaitGroup
	ids := make([]int, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			id, err := svc.InsertOne(context.Background(), review("t", "b", string(rune('a'+w)), 5))
			assert.NoError(t, err)
			ids[w] = id
		}(w)
	}
	wg.Wait()

	// Every id appears exactly once and each one joins to the review that
	// produced it.
	seen := make(map[int]bool)
	for w, id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true

		got, err := reviews.Read(id)
		require.NoError(t, err)
		assert.Equal(t, string(rune('a'+w)), got.ProductID)
	}

	vn, err := vectors.Count()
	require.NoError(t, err)
	rn, err := reviews.Count()
	require.NoError(t, err)
	assert.Equal(t, workers, vn)
	assert.Equal(t, workers, rn)
}
