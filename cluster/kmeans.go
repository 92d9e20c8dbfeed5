// Package cluster partitions embedding vectors into k groups via
// centroid-based iterative clustering.
package cluster

import (
	"math"
	"math/rand"
)

// KMeansConfig holds the clustering bounds.
type KMeansConfig struct {
	MaxIterations int   // Lloyd iteration cap (default: 100)
	RandomSeed    int64 // Seed for centroid seeding
}

// DefaultKMeansConfig returns sensible defaults.
func DefaultKMeansConfig() KMeansConfig {
	return KMeansConfig{
		MaxIterations: 100,
		RandomSeed:    42,
	}
}

// Assign partitions the vectors into k clusters and returns one cluster id in
// [0, k) per input index.
//
// Ids carry no meaning of their own, and the id-to-cluster mapping is not
// stable across runs with different seeds; callers needing stable identity
// must derive it from cluster content, not from the id value.
func Assign(embeddings [][]float32, k int) ([]int, error) {
	return AssignWithConfig(embeddings, k, DefaultKMeansConfig())
}

// AssignWithConfig allows customizing the iteration cap and seed.
func AssignWithConfig(embeddings [][]float32, k int, config KMeansConfig) ([]int, error) {
	n := len(embeddings)
	if k < 1 || k > n {
		return nil, &InvalidParameterError{K: k, N: n}
	}
	dimension := len(embeddings[0])
	for i, vector := range embeddings {
		if len(vector) != dimension {
			return nil, &ShapeMismatchError{Row: i, Want: dimension, Got: len(vector)}
		}
	}

	data := convertToFloat64(embeddings)
	rng := rand.New(rand.NewSource(config.RandomSeed))
	centroids := seedCentroids(data, k, rng)

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	for iteration := 0; iteration < config.MaxIterations; iteration++ {
		changed := false
		for i, point := range data {
			nearest := nearestCentroid(point, centroids)
			if nearest != labels[i] {
				labels[i] = nearest
				changed = true
			}
		}
		if !changed {
			break
		}
		recomputeCentroids(data, labels, centroids)
	}

	return labels, nil
}

// seedCentroids picks k starting centroids: the first uniformly at random,
// each subsequent one with probability proportional to its squared distance
// from the nearest centroid chosen so far.
func seedCentroids(data [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clonePoint(data[rng.Intn(len(data))]))

	weights := make([]float64, len(data))
	for len(centroids) < k {
		total := 0.0
		for i, point := range data {
			weights[i] = squaredDistanceToNearest(point, centroids)
			total += weights[i]
		}

		// All remaining points coincide with a centroid; fall back to uniform.
		if total == 0 {
			centroids = append(centroids, clonePoint(data[rng.Intn(len(data))]))
			continue
		}

		target := rng.Float64() * total
		chosen := len(data) - 1
		cumulative := 0.0
		for i, weight := range weights {
			cumulative += weight
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, clonePoint(data[chosen]))
	}

	return centroids
}

func nearestCentroid(point []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		dist := squaredEuclidean(point, centroid)
		if dist < bestDist {
			bestDist = dist
			best = c
		}
	}
	return best
}

func squaredDistanceToNearest(point []float64, centroids [][]float64) float64 {
	nearest := math.Inf(1)
	for _, centroid := range centroids {
		dist := squaredEuclidean(point, centroid)
		if dist < nearest {
			nearest = dist
		}
	}
	return nearest
}

// recomputeCentroids moves each centroid to the mean of its assigned points.
// A centroid that attracted no points keeps its previous position.
func recomputeCentroids(data [][]float64, labels []int, centroids [][]float64) {
	dimension := len(data[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for c := range sums {
		sums[c] = make([]float64, dimension)
	}

	for i, point := range data {
		c := labels[i]
		counts[c]++
		for j, value := range point {
			sums[c][j] += value
		}
	}

	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		for j := range centroids[c] {
			centroids[c][j] = sums[c][j] / float64(counts[c])
		}
	}
}

func squaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

func clonePoint(point []float64) []float64 {
	out := make([]float64, len(point))
	copy(out, point)
	return out
}

func convertToFloat64(vectors [][]float32) [][]float64 {
	result := make([][]float64, len(vectors))
	for i, v := range vectors {
		result[i] = make([]float64, len(v))
		for j, value := range v {
			result[i][j] = float64(value)
		}
	}
	return result
}
