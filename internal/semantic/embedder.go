package semantic

import "context"

// Embedder is the text-embedding model boundary: an external
// collaborator. The core only depends on this interface, never on a
// concrete model.
type Embedder interface {
	// Capabilities reports what this embedder supports.
	Capabilities() Capabilities
	// EmbedTexts returns one vector per input text, in order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Capabilities describes a text embedder's fixed properties.
type Capabilities struct {
	ModelName        string
	DefaultDimension int
	MaxBatchSize     int
}
