package topics

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Topic is one cluster enriched with ranked keywords, a derived label, and
// the original document indices belonging to it.
type Topic struct {
	ID       int
	Keywords []string // Up to MaxKeywords tokens, score descending
	Label    string   // Top keywords joined, or "Topic <id>" when none survive
	Indices  []int    // Ascending document indices in this cluster
}

// LabelerConfig controls keyword extraction and label derivation.
type LabelerConfig struct {
	Tokenizer     TokenizerConfig
	MaxKeywords   int // Keywords kept per topic (default: 5)
	LabelKeywords int // Keywords joined into the label (default: 3)
}

// DefaultLabelerConfig returns the standard labeling behavior.
func DefaultLabelerConfig() LabelerConfig {
	return LabelerConfig{
		Tokenizer:     DefaultTokenizerConfig(),
		MaxKeywords:   5,
		LabelKeywords: 3,
	}
}

// Label derives one Topic per distinct cluster id in the assignment, sorted
// by id ascending. Token salience is scored with class-based TF-IDF: a
// token's raw count within the cluster, boosted by how few clusters the
// token appears in overall.
func Label(texts []string, assignment []int) []Topic {
	return LabelWithConfig(texts, assignment, DefaultLabelerConfig())
}

// LabelWithConfig allows customizing tokenization and keyword counts.
func LabelWithConfig(texts []string, assignment []int, config LabelerConfig) []Topic {
	indicesByCluster := make(map[int][]int)
	countsByCluster := make(map[int]map[string]int)

	for documentIndex, clusterID := range assignment {
		indicesByCluster[clusterID] = append(indicesByCluster[clusterID], documentIndex)

		if documentIndex >= len(texts) {
			continue
		}
		counts := countsByCluster[clusterID]
		if counts == nil {
			counts = make(map[string]int)
			countsByCluster[clusterID] = counts
		}
		for _, token := range config.Tokenizer.tokenize(texts[documentIndex]) {
			counts[token]++
		}
	}

	// Class-based document frequency: in how many distinct clusters does
	// each token occur at least once.
	clustersWithWord := make(map[string]int)
	for _, counts := range countsByCluster {
		for token := range counts {
			clustersWithWord[token]++
		}
	}
	totalClusters := len(indicesByCluster)

	clusterIDs := make([]int, 0, len(indicesByCluster))
	for clusterID := range indicesByCluster {
		clusterIDs = append(clusterIDs, clusterID)
	}
	sort.Ints(clusterIDs)

	result := make([]Topic, 0, len(clusterIDs))
	for _, clusterID := range clusterIDs {
		keywords := rankKeywords(countsByCluster[clusterID], clustersWithWord, totalClusters, config.MaxKeywords)
		result = append(result, Topic{
			ID:       clusterID,
			Keywords: keywords,
			Label:    deriveLabel(clusterID, keywords, config.LabelKeywords),
			Indices:  indicesByCluster[clusterID],
		})
	}
	return result
}

// rankKeywords scores every token in one cluster and returns the top
// maxKeywords, score descending with lexicographic tie-breaking.
func rankKeywords(counts map[string]int, clustersWithWord map[string]int, totalClusters, maxKeywords int) []string {
	type scoredToken struct {
		token string
		score float64
	}

	scored := make([]scoredToken, 0, len(counts))
	for token, rawCount := range counts {
		// A cluster-exclusive token gets the maximal boost; a token present
		// in every cluster still scores log(2) > 0.
		boost := math.Log(1 + float64(totalClusters)/float64(clustersWithWord[token]))
		scored = append(scored, scoredToken{
			token: token,
			score: float64(rawCount) * boost,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].token < scored[j].token
	})

	if len(scored) > maxKeywords {
		scored = scored[:maxKeywords]
	}
	keywords := make([]string, len(scored))
	for i, entry := range scored {
		keywords[i] = entry.token
	}
	return keywords
}

// deriveLabel joins the leading keywords with underscores, falling back to a
// numbered label when nothing survived tokenization.
func deriveLabel(clusterID int, keywords []string, labelKeywords int) string {
	if len(keywords) == 0 {
		return fmt.Sprintf("Topic %d", clusterID)
	}
	if len(keywords) > labelKeywords {
		keywords = keywords[:labelKeywords]
	}
	return strings.Join(keywords, "_")
}

// ByIndex builds the back-reference from document index to its Topic. Every
// index present in any topic's Indices maps to that topic; the pointers
// reference entries of the given slice.
func ByIndex(topicList []Topic) map[int]*Topic {
	byIndex := make(map[int]*Topic)
	for i := range topicList {
		for _, documentIndex := range topicList[i].Indices {
			byIndex[documentIndex] = &topicList[i]
		}
	}
	return byIndex
}
