package huggingface

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func newTestClient(server *httptest.Server) *Client {
	return &Client{
		baseURL:    server.URL,
		httpClient: server.Client(),
	}
}

func TestSplits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/splits" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if dataset := r.URL.Query().Get("dataset"); dataset != "acme/corpus" {
			t.Errorf("unexpected dataset %q", dataset)
		}
		fmt.Fprint(w, `{"splits":[{"dataset":"acme/corpus","config":"default","split":"train"},{"dataset":"acme/corpus","config":"default","split":"test"}]}`)
	}))
	defer server.Close()

	splits, err := newTestClient(server).Splits("acme/corpus")
	if err != nil {
		t.Fatalf("Splits: %v", err)
	}
	if len(splits) != 2 {
		t.Fatalf("expected 2 splits, got %d", len(splits))
	}
	if splits[0].Config != "default" || splits[1].Split != "test" {
		t.Errorf("unexpected splits: %+v", splits)
	}
}

func TestSplitsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "dataset not found", http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := newTestClient(server).Splits("missing/dataset"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"rows":[{"row_idx":0,"row":{"text":"hello","label":1}},{"row_idx":1,"row":{"text":"world","label":0}}]}`)
	}))
	defer server.Close()

	rows, err := newTestClient(server).Rows("acme/corpus", "default", "train", 0, 2)
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Fields["text"] != "hello" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
}

// The split serves 250 rows. FetchTexts should page through all of them
// with 100-row requests and stop at the short final page.
func TestFetchTextsPaginates(t *testing.T) {
	const totalRows = 250
	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		length, _ := strconv.Atoi(r.URL.Query().Get("length"))

		var rows []Row
		for i := offset; i < offset+length && i < totalRows; i++ {
			rows = append(rows, Row{
				Index:  i,
				Fields: map[string]any{"text": fmt.Sprintf("document %d", i)},
			})
		}
		json.NewEncoder(w).Encode(rowsResponse{Rows: rows})
	}))
	defer server.Close()

	texts, err := newTestClient(server).FetchTexts("acme/corpus", "default", "train", "text", 0)
	if err != nil {
		t.Fatalf("FetchTexts: %v", err)
	}
	if len(texts) != totalRows {
		t.Fatalf("expected %d texts, got %d", totalRows, len(texts))
	}
	if requests != 3 {
		t.Errorf("expected 3 page requests, got %d", requests)
	}
	if texts[0] != "document 0" || texts[totalRows-1] != "document 249" {
		t.Errorf("unexpected boundary texts: %q, %q", texts[0], texts[totalRows-1])
	}
}

func TestFetchTextsRespectsMaxRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		length, _ := strconv.Atoi(r.URL.Query().Get("length"))

		var rows []Row
		for i := offset; i < offset+length; i++ {
			rows = append(rows, Row{
				Index:  i,
				Fields: map[string]any{"text": fmt.Sprintf("document %d", i)},
			})
		}
		json.NewEncoder(w).Encode(rowsResponse{Rows: rows})
	}))
	defer server.Close()

	texts, err := newTestClient(server).FetchTexts("acme/corpus", "default", "train", "text", 30)
	if err != nil {
		t.Fatalf("FetchTexts: %v", err)
	}
	if len(texts) != 30 {
		t.Fatalf("expected 30 texts, got %d", len(texts))
	}
}

func TestTextColumnSkipsMissingAndEmpty(t *testing.T) {
	rows := []Row{
		{Index: 0, Fields: map[string]any{"text": "first", "label": 1}},
		{Index: 1, Fields: map[string]any{"text": "second", "label": 0}},
		{Index: 2, Fields: map[string]any{"text": "", "label": 0}},
		{Index: 3, Fields: map[string]any{"other": "value"}},
		{Index: 4, Fields: map[string]any{"text": 42}},
	}

	texts := textColumn(rows, "text")
	if len(texts) != 2 {
		t.Fatalf("expected 2 texts, got %v", texts)
	}
	if texts[0] != "first" || texts[1] != "second" {
		t.Errorf("unexpected texts: %v", texts)
	}
}

func TestEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pipeline/feature-extraction/test-model" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("unexpected authorization header %q", auth)
		}
		fmt.Fprint(w, `[[0.1, 0.2, 0.3]]`)
	}))
	defer server.Close()

	client := &EmbeddingsClient{
		baseURL:    server.URL,
		modelID:    "test-model",
		token:      "secret",
		httpClient: server.Client(),
	}

	vector, err := client.Embed("some text")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vector) != 3 {
		t.Fatalf("expected 3 dimensions, got %d", len(vector))
	}
	if vector[1] != 0.2 {
		t.Errorf("expected 0.2 at index 1, got %v", vector[1])
	}
}

func TestEmbedEmptyText(t *testing.T) {
	client := NewEmbeddingsClient("test-model", "token")
	vector, err := client.Embed("")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if vector != nil {
		t.Errorf("expected nil vector for empty text, got %v", vector)
	}
}
