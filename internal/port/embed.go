package port

// Embedder converts text into fixed-dimension feature vectors.
//
// EmbedIndex mutates shared corpus statistics as a side effect, so embedding
// the same text at different times may yield different vectors. EmbedQuery
// only reads a snapshot of those statistics. Both must use the same token
// bucketing so query and index vectors live in the same space.
type Embedder interface {
	// Dim returns the fixed output dimension.
	Dim() int

	// EmbedIndex embeds text for storage, updating document-frequency
	// statistics for the tokens it contains.
	EmbedIndex(text string) []float32

	// EmbedQuery embeds text for search without touching statistics.
	EmbedQuery(text string) []float32
}
