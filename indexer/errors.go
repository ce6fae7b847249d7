package indexer

import "errors"

var (
	// ErrStoreRequired indicates a nil scholarship store was provided.
	ErrStoreRequired = errors.New("scholarship store is required")

	// ErrEmbedderRequired indicates a nil embedder was provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrIndexRequired indicates a nil vector index was provided.
	ErrIndexRequired = errors.New("vector index is required")

	// ErrInvalidMaxAttempts indicates a non-positive retry attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")
)
