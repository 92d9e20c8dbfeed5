// Package embedding defines the interface implemented by the text embedding
// backends (Ollama, Hugging Face), so callers can swap providers freely.
package embedding

import "fmt"

// Embedder turns a document into its vector representation.
type Embedder interface {
	// Embed converts text into an embedding vector, or returns an error if
	// the backend request fails. Empty input yields nil without error.
	Embed(text string) ([]float32, error)
}

// EmbedAll embeds every document in order, one request at a time, returning
// the vectors with the same index correspondence as the input.
func EmbedAll(embedder Embedder, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for i, text := range texts {
		vector, err := embedder.Embed(text)
		if err != nil {
			return nil, fmt.Errorf("embed document %d: %w", i, err)
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}
