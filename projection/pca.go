package projection

// Reduce projects each embedding onto the top targetDim principal directions
// of the batch, returning one row per input vector in input order. The input
// is never mutated.
//
// Every returned row has exactly targetDim components. When the input is rank
// deficient and fewer than targetDim eigenpairs carry variance, the trailing
// components are zero. When there are too few vectors to estimate variance at
// all (N < targetDim+1), no decomposition is attempted: each row is the
// vector's first targetDim components, zero-padded if the embedding dimension
// is smaller than targetDim. That degenerate path is a defined fallback, not
// an error.
func Reduce(embeddings [][]float32, targetDim int) ([][]float64, error) {
	return ReduceWithConfig(embeddings, targetDim, DefaultEigenConfig())
}

// ReduceWithConfig allows customizing the eigensolver bounds.
func ReduceWithConfig(embeddings [][]float32, targetDim int, config EigenConfig) ([][]float64, error) {
	if targetDim < 1 {
		return nil, &InvalidParameterError{Param: "targetDim", Value: targetDim}
	}

	numberOfVectors := len(embeddings)
	if numberOfVectors == 0 {
		return nil, nil
	}

	dimension := len(embeddings[0])
	if err := checkRectangular(embeddings, dimension); err != nil {
		return nil, err
	}

	// Too few points to estimate variance reliably.
	if numberOfVectors < targetDim+1 {
		return truncatedProjection(embeddings, targetDim), nil
	}

	dataMatrix := buildDataMatrix(embeddings, numberOfVectors, dimension)
	centerColumns(dataMatrix, numberOfVectors, dimension)
	pairs := extractEigenPairs(dataMatrix, targetDim, config)

	points := make([][]float64, numberOfVectors)
	for rowIndex := 0; rowIndex < numberOfVectors; rowIndex++ {
		centeredRow := dataMatrix.RawRowView(rowIndex)
		point := make([]float64, targetDim)
		for componentIndex, pair := range pairs {
			point[componentIndex] = dotProduct(centeredRow, pair.Vector)
		}
		points[rowIndex] = point
	}
	return points, nil
}

// truncatedProjection is the degenerate-case fallback: each vector's first
// targetDim components, zero-padded when the vector is shorter.
func truncatedProjection(embeddings [][]float32, targetDim int) [][]float64 {
	points := make([][]float64, len(embeddings))
	for rowIndex, vector := range embeddings {
		point := make([]float64, targetDim)
		for componentIndex := 0; componentIndex < targetDim && componentIndex < len(vector); componentIndex++ {
			point[componentIndex] = float64(vector[componentIndex])
		}
		points[rowIndex] = point
	}
	return points
}

// dotProduct computes the dot product of two equal-length vectors.
func dotProduct(a, b []float64) float64 {
	var sum float64
	for componentIndex := range a {
		sum += a[componentIndex] * b[componentIndex]
	}
	return sum
}

// Point3D is a single embedding projected into 3-D space for visualization,
// keeping the original text label for display.
type Point3D struct {
	X, Y, Z float64
	Text    string
}

// ProjectTo3D reduces embedding vectors to labeled 3-D points. The first two
// components place a point on the plot plane; the third carries the remaining
// dominant variance and is used for depth shading. Inputs that cannot be
// decomposed (ragged rows) fall back to each vector's leading components so
// the visualization always has something to draw.
func ProjectTo3D(embeddingVectors [][]float32, textLabels []string) []Point3D {
	if len(embeddingVectors) == 0 {
		return nil
	}

	coordinates, err := Reduce(embeddingVectors, 3)
	if err != nil {
		coordinates = fallbackCoordinates(embeddingVectors)
	}

	points := make([]Point3D, len(coordinates))
	for pointIndex, coordinate := range coordinates {
		points[pointIndex] = Point3D{
			X:    coordinate[0],
			Y:    coordinate[1],
			Z:    coordinate[2],
			Text: labelAtIndex(textLabels, pointIndex),
		}
	}
	return points
}

// fallbackCoordinates uses each vector's first three components directly.
func fallbackCoordinates(embeddingVectors [][]float32) [][]float64 {
	coordinates := make([][]float64, len(embeddingVectors))
	for rowIndex, vector := range embeddingVectors {
		coordinate := make([]float64, 3)
		for componentIndex := 0; componentIndex < 3 && componentIndex < len(vector); componentIndex++ {
			coordinate[componentIndex] = float64(vector[componentIndex])
		}
		coordinates[rowIndex] = coordinate
	}
	return coordinates
}

// labelAtIndex safely retrieves a text label, returning "" when out of range.
func labelAtIndex(textLabels []string, index int) string {
	if index < len(textLabels) {
		return textLabels[index]
	}
	return ""
}
