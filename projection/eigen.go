// Package projection provides dimensionality reduction for high-dimensional embedding vectors.
//
// # Eigen-decomposition based projection
//
// The reduction works in two stages. First the covariance structure of the
// centered data is decomposed into eigenpairs: each eigenvector is a direction
// in embedding space, and its eigenvalue measures how much the data varies
// along that direction. Then each input vector is projected onto the top-K
// eigenvectors via dot products, yielding a K-dimensional point per input.
//
// The decomposition uses power iteration with deflation rather than a direct
// solver: repeatedly multiplying a vector by the covariance matrix converges
// to the dominant eigenvector, and subtracting that component's contribution
// (deflation) exposes the next one. The iteration count and convergence
// tolerance are bounded explicitly so results are reproducible across runs on
// the same platform.
package projection

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// EigenPair couples one principal direction of variance with the amount of
// variance it explains. Vector is unit length with the same dimension as the
// input embeddings.
type EigenPair struct {
	Value  float64
	Vector []float64
}

// EigenConfig bounds the iterative eigensolver.
type EigenConfig struct {
	MaxIterations int     // Power iteration cap per component (default: 200)
	Tolerance     float64 // Convergence threshold on direction change (default: 1e-10)
	RandomSeed    int64   // Seed for the iteration's starting vector
}

// DefaultEigenConfig returns sensible default solver bounds.
func DefaultEigenConfig() EigenConfig {
	return EigenConfig{
		MaxIterations: 200,
		Tolerance:     1e-10,
		RandomSeed:    42,
	}
}

// Decompose extracts up to maxPairs eigenpairs from the covariance structure
// of the given vectors, ordered by eigenvalue descending. The number of pairs
// returned is additionally limited by the available variance: at most
// min(N-1, D) directions exist for N vectors of dimension D, and directions
// carrying no measurable variance are not returned.
func Decompose(vectors [][]float32, maxPairs int) ([]EigenPair, error) {
	return DecomposeWithConfig(vectors, maxPairs, DefaultEigenConfig())
}

// DecomposeWithConfig allows customizing the solver bounds.
func DecomposeWithConfig(vectors [][]float32, maxPairs int, config EigenConfig) ([]EigenPair, error) {
	if maxPairs < 1 {
		return nil, &InvalidParameterError{Param: "maxPairs", Value: maxPairs}
	}
	if len(vectors) == 0 {
		return nil, nil
	}
	dimension := len(vectors[0])
	if err := checkRectangular(vectors, dimension); err != nil {
		return nil, err
	}

	dataMatrix := buildDataMatrix(vectors, len(vectors), dimension)
	centerColumns(dataMatrix, len(vectors), dimension)
	return extractEigenPairs(dataMatrix, maxPairs, config), nil
}

// checkRectangular verifies every vector has the expected dimensionality.
func checkRectangular(vectors [][]float32, expectedDimension int) error {
	for rowIndex, vector := range vectors {
		if len(vector) != expectedDimension {
			return &ShapeMismatchError{Row: rowIndex, Want: expectedDimension, Got: len(vector)}
		}
	}
	return nil
}

// buildDataMatrix copies float32 vectors into a gonum Dense matrix of shape
// (numberOfVectors x dimension). gonum operates on float64, so values are
// widened here once rather than per operation.
func buildDataMatrix(vectors [][]float32, numberOfVectors, dimension int) *mat.Dense {
	flattened := make([]float64, numberOfVectors*dimension)
	for rowIndex, vector := range vectors {
		for columnIndex, value := range vector {
			flattened[rowIndex*dimension+columnIndex] = float64(value)
		}
	}
	return mat.NewDense(numberOfVectors, dimension, flattened)
}

// centerColumns shifts each column to zero mean in place. Principal
// directions measure variance around the mean; without centering the first
// component would point at the data's centroid instead of along its spread.
func centerColumns(dataMatrix *mat.Dense, numberOfVectors, dimension int) {
	for columnIndex := 0; columnIndex < dimension; columnIndex++ {
		columnMean := stat.Mean(mat.Col(nil, columnIndex, dataMatrix), nil)
		for rowIndex := 0; rowIndex < numberOfVectors; rowIndex++ {
			dataMatrix.Set(rowIndex, columnIndex, dataMatrix.At(rowIndex, columnIndex)-columnMean)
		}
	}
}

// covarianceMatrix computes (X^T X) / (N-1) for the centered data matrix X.
func covarianceMatrix(centered *mat.Dense) *mat.Dense {
	numberOfVectors, dimension := centered.Dims()
	covariance := mat.NewDense(dimension, dimension, nil)
	covariance.Mul(centered.T(), centered)
	if numberOfVectors > 1 {
		covariance.Scale(1/float64(numberOfVectors-1), covariance)
	}
	return covariance
}

// extractEigenPairs runs power iteration with deflation on the covariance of
// the centered data. After each dominant eigenpair converges, its rank-one
// contribution is subtracted from the covariance matrix so the next iteration
// converges to the next-largest direction.
func extractEigenPairs(centered *mat.Dense, maxPairs int, config EigenConfig) []EigenPair {
	numberOfVectors, dimension := centered.Dims()

	available := numberOfVectors - 1
	if dimension < available {
		available = dimension
	}
	if maxPairs < available {
		available = maxPairs
	}
	if available < 1 {
		return nil
	}

	covariance := covarianceMatrix(centered)
	rng := rand.New(rand.NewSource(config.RandomSeed))

	var pairs []EigenPair
	var leadingValue float64

	for componentIndex := 0; componentIndex < available; componentIndex++ {
		direction, ok := powerIterate(covariance, pairs, rng, config)
		if !ok {
			break
		}

		// Rayleigh quotient v^T C v gives the eigenvalue for unit v.
		product := mat.NewVecDense(dimension, nil)
		product.MulVec(covariance, direction)
		eigenvalue := mat.Dot(direction, product)

		if componentIndex == 0 {
			leadingValue = eigenvalue
		}
		// Directions with no measurable variance are rank deficiency, not signal.
		if eigenvalue <= config.Tolerance || eigenvalue <= config.Tolerance*leadingValue {
			break
		}

		pairs = append(pairs, EigenPair{
			Value:  eigenvalue,
			Vector: vecToSlice(direction),
		})

		deflated := mat.NewDense(dimension, dimension, nil)
		deflated.RankOne(covariance, -eigenvalue, direction, direction)
		covariance = deflated
	}

	return pairs
}

// powerIterate converges to the dominant eigenvector of the (deflated)
// covariance matrix. Each step re-orthogonalizes against the already
// extracted components so accumulated floating-point error cannot drift the
// iterate back toward a previous direction.
func powerIterate(covariance *mat.Dense, previous []EigenPair, rng *rand.Rand, config EigenConfig) (*mat.VecDense, bool) {
	dimension, _ := covariance.Dims()

	current := mat.NewVecDense(dimension, nil)
	for componentIndex := 0; componentIndex < dimension; componentIndex++ {
		current.SetVec(componentIndex, rng.Float64()-0.5)
	}
	orthogonalize(current, previous)
	if !normalize(current) {
		return nil, false
	}

	next := mat.NewVecDense(dimension, nil)
	for iteration := 0; iteration < config.MaxIterations; iteration++ {
		next.MulVec(covariance, current)
		orthogonalize(next, previous)
		if !normalize(next) {
			return nil, false
		}

		// Alignment of successive iterates; |dot| -> 1 at convergence.
		alignment := math.Abs(mat.Dot(next, current))
		current.CopyVec(next)
		if 1-alignment < config.Tolerance {
			break
		}
	}

	return current, true
}

// orthogonalize subtracts the projection of v onto each previously extracted
// eigenvector (one Gram-Schmidt sweep).
func orthogonalize(v *mat.VecDense, previous []EigenPair) {
	for _, pair := range previous {
		basis := mat.NewVecDense(len(pair.Vector), pair.Vector)
		coefficient := mat.Dot(v, basis)
		v.AddScaledVec(v, -coefficient, basis)
	}
}

// normalize scales v to unit length, reporting false for a vanishing vector.
func normalize(v *mat.VecDense) bool {
	norm := math.Sqrt(mat.Dot(v, v))
	if norm < 1e-300 {
		return false
	}
	v.ScaleVec(1/norm, v)
	return true
}

// vecToSlice copies a gonum vector into a plain slice.
func vecToSlice(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for componentIndex := 0; componentIndex < v.Len(); componentIndex++ {
		out[componentIndex] = v.AtVec(componentIndex)
	}
	return out
}
