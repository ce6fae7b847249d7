package embedding

import "context"

// Embedder generates vector embeddings from text for semantic similarity.
// Implementations must be thread-safe for concurrent use and must honor
// context cancellation: the matcher relies on a bounded wait so that a slow
// provider can never stall the rule-based path.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails or times out.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in
	// a batch, in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
