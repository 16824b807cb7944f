package embed

import (
	"hash/fnv"
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/reviewlens/reviewlens/internal/port"
)

// normFloor keeps the L2 denominator away from zero for all-empty-token input.
const normFloor = 1e-6

// Compile-time interface check.
var _ port.Embedder = (*TFIDFEmbedder)(nil)

// TFIDFEmbedder maps text to a fixed-dimension vector with the hashing trick:
// each token is bucketed by hash, term frequencies are weighted by an inverse
// document frequency maintained online, and the result is L2-normalized.
//
// Corpus statistics (per-bucket document frequency and total document count)
// live on the instance and are guarded by a single mutex. They are not
// persisted: after a restart the idf weights drift relative to vectors
// embedded before it.
type TFIDFEmbedder struct {
	dim int

	mu   sync.Mutex
	df   []uint32
	docs uint32
}

// NewTFIDFEmbedder creates an embedder with the given fixed dimension.
func NewTFIDFEmbedder(dim int) *TFIDFEmbedder {
	return &TFIDFEmbedder{
		dim: dim,
		df:  make([]uint32, dim),
	}
}

// Dim returns the fixed output dimension.
func (e *TFIDFEmbedder) Dim() int {
	return e.dim
}

// bucket maps a token to a dimension slot. Hash collisions are accepted and
// unresolved; that is the point of the hashing trick.
func (e *TFIDFEmbedder) bucket(token string) int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(token)))
	return int(h.Sum64() % uint64(e.dim))
}

// tokenize splits on runs of non-alphanumeric characters and drops empties.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// termFrequencies accumulates raw per-bucket counts and the set of distinct
// buckets the text touched.
func (e *TFIDFEmbedder) termFrequencies(text string) ([]float32, map[int]struct{}) {
	vec := make([]float32, e.dim)
	seen := make(map[int]struct{})
	for _, tok := range tokenize(text) {
		i := e.bucket(tok)
		vec[i]++
		seen[i] = struct{}{}
	}
	return vec, seen
}

func idf(dfi uint32, docs float64) float64 {
	return math.Log((docs+1)/(float64(dfi)+1)) + 1
}

func l2Normalize(vec []float32) {
	var sum float64
	for _, x := range vec {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm < normFloor {
		norm = normFloor
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}

// EmbedIndex embeds text for storage. The document-frequency update and the
// statistics snapshot used for weighting happen under one lock, so concurrent
// calls never interleave their read-modify-write of df and the doc counter.
func (e *TFIDFEmbedder) EmbedIndex(text string) []float32 {
	vec, seen := e.termFrequencies(text)

	e.mu.Lock()
	for i := range seen {
		e.df[i]++
	}
	e.docs++
	docs := float64(e.docs)
	for i, x := range vec {
		if x > 0 {
			vec[i] = float32(float64(x) * idf(e.df[i], docs))
		}
	}
	e.mu.Unlock()

	l2Normalize(vec)
	return vec
}

// EmbedQuery embeds text for search. Statistics are only read; an empty
// corpus counts as one document so idf stays finite.
func (e *TFIDFEmbedder) EmbedQuery(text string) []float32 {
	vec, _ := e.termFrequencies(text)

	e.mu.Lock()
	docs := float64(e.docs)
	if docs < 1 {
		docs = 1
	}
	for i, x := range vec {
		if x > 0 {
			vec[i] = float32(float64(x) * idf(e.df[i], docs))
		}
	}
	e.mu.Unlock()

	l2Normalize(vec)
	return vec
}
