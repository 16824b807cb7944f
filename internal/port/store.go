package port

import "github.com/reviewlens/reviewlens/internal/domain"

// VectorIndex is an append-only log of fixed-dimension vectors addressed by
// ordinal id. Id i corresponds to the i-th successful append.
type VectorIndex interface {
	// Dim returns the fixed vector dimension.
	Dim() int

	// Append stores a vector and returns its ordinal id. Fails with
	// ErrDimensionMismatch if the vector has the wrong length and with
	// ErrStorePoisoned once a post-write integrity check has failed.
	Append(vec []float32) (int, error)

	// Get returns the vector stored under id, or ErrNotFound.
	Get(id int) ([]float32, error)

	// Count returns the number of complete records currently on disk.
	// Best-effort: a concurrent append may or may not be visible.
	Count() (int, error)

	// ScanAll reads every complete record into memory in id order.
	ScanAll() ([][]float32, error)

	Close() error
}

// ReviewLog is an append-only log of review documents addressed by ordinal
// line number. Line i must describe the same document as vector record i.
type ReviewLog interface {
	// Append serializes the review as one line at the end of the log.
	Append(r domain.Review) error

	// Read returns the id-th review, or ErrNotFound if id is past the end.
	// Cost is O(id); acceptable at this scale.
	Read(id int) (domain.Review, error)

	// Count returns the number of lines currently present.
	Count() (int, error)

	Close() error
}
