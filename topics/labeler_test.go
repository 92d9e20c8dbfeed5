package topics

import (
	"testing"
)

func TestTokenizerConfig_DropsStopwordsAndShortTokens(t *testing.T) {
	config := DefaultTokenizerConfig()
	tokens := config.tokenize("The cat, and a DOG, sat on it!")

	expected := []string{"cat", "dog", "sat"}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, tokens)
	}
	for i, token := range expected {
		if tokens[i] != token {
			t.Errorf("token %d: expected %q, got %q", i, token, tokens[i])
		}
	}
}

func TestTokenizerConfig_CustomStopwords(t *testing.T) {
	config := DefaultTokenizerConfig()
	config.Stopwords = map[string]struct{}{"banana": {}}
	config.MinTokenLength = 1

	tokens := config.tokenize("a banana or two")
	expected := []string{"a", "or", "two"}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, tokens)
	}
	for i, token := range expected {
		if tokens[i] != token {
			t.Errorf("token %d: expected %q, got %q", i, token, tokens[i])
		}
	}
}

func TestLabel_ExclusiveTokenOutscoresUbiquitous(t *testing.T) {
	// "zebra" appears only in cluster 0, "common" in both, with equal raw
	// counts inside cluster 0. The exclusive token must rank higher.
	texts := []string{
		"zebra common",
		"zebra common",
		"common field",
		"common field",
	}
	assignment := []int{0, 0, 1, 1}

	result := Label(texts, assignment)
	if len(result) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(result))
	}

	topic := result[0]
	if topic.ID != 0 {
		t.Fatalf("expected first topic id 0, got %d", topic.ID)
	}
	if len(topic.Keywords) < 2 {
		t.Fatalf("expected at least 2 keywords, got %v", topic.Keywords)
	}
	if topic.Keywords[0] != "zebra" {
		t.Errorf("expected cluster-exclusive token first, got %v", topic.Keywords)
	}
}

func TestLabel_TiesBrokenLexicographically(t *testing.T) {
	texts := []string{"delta alpha", "delta alpha"}
	assignment := []int{0, 0}

	result := Label(texts, assignment)
	if len(result) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(result))
	}
	keywords := result[0].Keywords
	if len(keywords) != 2 || keywords[0] != "alpha" || keywords[1] != "delta" {
		t.Errorf("expected alphabetical tie-break [alpha delta], got %v", keywords)
	}
}

func TestLabel_KeywordAndLabelLimits(t *testing.T) {
	texts := []string{
		"aaa aaa aaa aaa aaa aaa bbb bbb bbb bbb bbb ccc ccc ccc ccc ddd ddd ddd eee eee fff ggg",
	}
	assignment := []int{0}

	result := Label(texts, assignment)
	if len(result) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(result))
	}

	topic := result[0]
	if len(topic.Keywords) != 5 {
		t.Errorf("expected 5 keywords, got %d: %v", len(topic.Keywords), topic.Keywords)
	}
	if topic.Label != "aaa_bbb_ccc" {
		t.Errorf("expected label aaa_bbb_ccc, got %q", topic.Label)
	}
}

func TestLabel_FallbackLabel(t *testing.T) {
	// Documents that tokenize to nothing leave the cluster unnamed.
	texts := []string{"the of and", "a an it"}
	assignment := []int{0, 0}

	result := Label(texts, assignment)
	if len(result) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(result))
	}
	if result[0].Label != "Topic 0" {
		t.Errorf("expected fallback label, got %q", result[0].Label)
	}
	if len(result[0].Keywords) != 0 {
		t.Errorf("expected no keywords, got %v", result[0].Keywords)
	}
	if len(result[0].Indices) != 2 {
		t.Errorf("indices must be preserved even without keywords: %v", result[0].Indices)
	}
}

func TestLabel_SortedByIDWithIndices(t *testing.T) {
	texts := []string{"red apple", "blue sky", "green apple", "blue sea"}
	assignment := []int{2, 0, 2, 0}

	result := Label(texts, assignment)
	if len(result) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(result))
	}
	if result[0].ID != 0 || result[1].ID != 2 {
		t.Errorf("topics not sorted by id: %d, %d", result[0].ID, result[1].ID)
	}

	if got := result[0].Indices; len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("topic 0 indices wrong: %v", got)
	}
	if got := result[1].Indices; len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("topic 2 indices wrong: %v", got)
	}
}

func TestByIndex(t *testing.T) {
	texts := []string{"alpha", "beta", "gamma"}
	assignment := []int{1, 0, 1}

	result := Label(texts, assignment)
	byIndex := ByIndex(result)

	if len(byIndex) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(byIndex))
	}
	if byIndex[0].ID != 1 || byIndex[2].ID != 1 {
		t.Errorf("documents 0 and 2 should map to topic 1")
	}
	if byIndex[1].ID != 0 {
		t.Errorf("document 1 should map to topic 0")
	}
	if byIndex[0] != byIndex[2] {
		t.Errorf("documents in one cluster should share a Topic reference")
	}
}
