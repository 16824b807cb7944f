package embed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDim = 512

func norm(vec []float32) float64 {
	var sum float64
	for _, x := range vec {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

func TestEmbedIndexUnitNorm(t *testing.T) {
	e := NewTFIDFEmbedder(testDim)

	vec := e.EmbedIndex("great phone with a great battery")
	require.Len(t, vec, testDim)
	assert.InDelta(t, 1.0, norm(vec), 1e-3)
}

func TestEmbedQueryUnitNorm(t *testing.T) {
	e := NewTFIDFEmbedder(testDim)
	e.EmbedIndex("some corpus document")

	vec := e.EmbedQuery("corpus")
	assert.InDelta(t, 1.0, norm(vec), 1e-3)
}

func TestEmptyTextYieldsZeroVector(t *testing.T) {
	e := NewTFIDFEmbedder(testDim)

	for _, text := range []string{"", "   ", "!!! ---"} {
		vec := e.EmbedIndex(text)
		require.Len(t, vec, testDim)
		assert.Zero(t, norm(vec), "text %q", text)
	}
}

func TestIndexAndQueryAgreeOnSameText(t *testing.T) {
	e := NewTFIDFEmbedder(testDim)

	const text = "really good product works as described"
	indexed := e.EmbedIndex(text)
	queried := e.EmbedQuery(text)

	// EmbedQuery runs against the statistics EmbedIndex just wrote, so the
	// two vectors coincide and their dot product is the full cosine.
	assert.InDelta(t, 1.0, dot(indexed, queried), 1e-4)
}

func TestEmbedQueryDoesNotMutateStatistics(t *testing.T) {
	e := NewTFIDFEmbedder(testDim)
	e.EmbedIndex("seed document about cameras")

	first := e.EmbedQuery("cameras")
	for i := 0; i < 5; i++ {
		e.EmbedQuery("cameras")
	}
	again := e.EmbedQuery("cameras")

	assert.Equal(t, first, again)
}

func TestEmbedIndexShiftsWeights(t *testing.T) {
	e := NewTFIDFEmbedder(testDim)

	before := e.EmbedQuery("battery life")
	e.EmbedIndex("battery battery battery")
	after := e.EmbedQuery("battery life")

	// The df for "battery" grew, so the same query text weighs differently.
	assert.NotEqual(t, before, after)
}

func TestBucketIsCaseInsensitive(t *testing.T) {
	e := NewTFIDFEmbedder(testDim)

	a := e.EmbedQuery("Excellent")
	b := e.EmbedQuery("excellent")
	assert.Equal(t, a, b)
}

func TestTokenizeSplitsOnNonAlphanumeric(t *testing.T) {
	toks := tokenize("good-product, really_good! 10/10")
	assert.Equal(t, []string{"good", "product", "really", "good", "10", "10"}, toks)
}

func TestConcurrentEmbedIndexKeepsUnitNorm(t *testing.T) {
	e := NewTFIDFEmbedder(testDim)

	done := make(chan []float32, 32)
	for i := 0; i < 32; i++ {
		go func() {
			done <- e.EmbedIndex("shared vocabulary stress test")
		}()
	}
	for i := 0; i < 32; i++ {
		vec := <-done
		assert.InDelta(t, 1.0, norm(vec), 1e-3)
	}
}
