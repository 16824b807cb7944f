package port

import "errors"

// Sentinel errors used across ports. Callers classify with errors.Is.
var (
	// ErrNotFound indicates an ordinal id past the end of a store.
	ErrNotFound = errors.New("record not found")

	// ErrDimensionMismatch indicates a vector whose length differs from the
	// store's configured dimension. Rejected before any mutation.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrStorePoisoned indicates a post-write integrity check failed. The
	// store refuses further writes until reopened and verified.
	ErrStorePoisoned = errors.New("vector store poisoned")

	// ErrInvalidReview indicates a review that fails ingest validation.
	ErrInvalidReview = errors.New("invalid review")
)
