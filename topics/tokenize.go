// Package topics groups documents into clusters and derives human-readable
// keyword labels for each cluster using class-based TF-IDF.
package topics

import (
	"regexp"
	"strings"
)

// TokenizerConfig controls how documents are split into scoring tokens.
// The zero value is not usable; start from DefaultTokenizerConfig.
type TokenizerConfig struct {
	NonWord        *regexp.Regexp      // Pattern replaced by spaces before splitting
	MinTokenLength int                 // Tokens shorter than this are dropped
	Stopwords      map[string]struct{} // Tokens dropped regardless of length
}

// DefaultTokenizerConfig lower-cases, splits on runs of non-word characters,
// and drops tokens of length <= 2 plus common English function words.
func DefaultTokenizerConfig() TokenizerConfig {
	return TokenizerConfig{
		NonWord:        regexp.MustCompile(`\W+`),
		MinTokenLength: 3,
		Stopwords:      defaultStopwords(),
	}
}

// tokenize splits one document into surviving tokens.
func (config TokenizerConfig) tokenize(document string) []string {
	normalized := config.NonWord.ReplaceAllString(strings.ToLower(document), " ")

	var tokens []string
	for _, token := range strings.Fields(normalized) {
		if len(token) < config.MinTokenLength {
			continue
		}
		if _, stopped := config.Stopwords[token]; stopped {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "am", "an",
		"and", "any", "are", "as", "at", "be", "because", "been", "before",
		"being", "below", "between", "both", "but", "by", "can", "did", "do",
		"does", "doing", "down", "during", "each", "few", "for", "from",
		"further", "had", "has", "have", "having", "he", "her", "here", "hers",
		"herself", "him", "himself", "his", "how", "i", "if", "in", "into",
		"is", "it", "its", "itself", "just", "me", "more", "most", "my",
		"myself", "no", "nor", "not", "now", "of", "off", "on", "once", "only",
		"or", "other", "our", "ours", "ourselves", "out", "over", "own",
		"same", "she", "should", "so", "some", "such", "than", "that", "the",
		"their", "theirs", "them", "themselves", "then", "there", "these",
		"they", "this", "those", "through", "to", "too", "under", "until",
		"up", "very", "was", "we", "were", "what", "when", "where", "which",
		"while", "who", "whom", "why", "will", "with", "you", "your", "yours",
		"yourself", "yourselves",
	}

	stopwords := make(map[string]struct{}, len(words))
	for _, word := range words {
		stopwords[word] = struct{}{}
	}
	return stopwords
}
