package topics

import "fmt"

// ShapeMismatchError reports texts and embeddings of different lengths.
type ShapeMismatchError struct {
	Texts   int
	Vectors int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("topics: %d texts but %d embedding vectors", e.Texts, e.Vectors)
}
