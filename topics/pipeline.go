package topics

import (
	"math"

	"github.com/lucahttp/WepGpu-Embeddings/cluster"
)

// PipelineConfig bundles the clustering and labeling settings used by Run.
type PipelineConfig struct {
	Clustering cluster.KMeansConfig
	Labeling   LabelerConfig
}

// DefaultPipelineConfig returns the standard pipeline behavior.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Clustering: cluster.DefaultKMeansConfig(),
		Labeling:   DefaultLabelerConfig(),
	}
}

// Run clusters the embeddings into k groups and labels each group from its
// documents' vocabulary. texts[i] must be the document embedded as
// embeddings[i]; the returned topics carry those indices so callers can map
// results back onto their input order.
//
// k <= 0 derives a default of max(2, floor(sqrt(N/2))), clamped to [1, N].
// Empty texts return an empty result with no error.
func Run(texts []string, embeddings [][]float32, k int) ([]Topic, error) {
	return RunWithConfig(texts, embeddings, k, DefaultPipelineConfig())
}

// RunWithConfig allows customizing clustering and labeling.
func RunWithConfig(texts []string, embeddings [][]float32, k int, config PipelineConfig) ([]Topic, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if len(texts) != len(embeddings) {
		return nil, &ShapeMismatchError{Texts: len(texts), Vectors: len(embeddings)}
	}

	if k <= 0 {
		k = DefaultTopicCount(len(texts))
	}

	assignment, err := cluster.AssignWithConfig(embeddings, k, config.Clustering)
	if err != nil {
		return nil, err
	}
	return LabelWithConfig(texts, assignment, config.Labeling), nil
}

// DefaultTopicCount is the cluster count used when the caller does not supply
// one: max(2, floor(sqrt(N/2))), clamped to [1, N].
func DefaultTopicCount(documentCount int) int {
	k := int(math.Floor(math.Sqrt(float64(documentCount) / 2)))
	if k < 2 {
		k = 2
	}
	if k > documentCount {
		k = documentCount
	}
	if k < 1 {
		k = 1
	}
	return k
}
