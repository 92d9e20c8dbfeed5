// Package ollama provides an HTTP client for the Ollama embedding API. It
// turns documents into vector representations, one at a time or in batches.
package ollama

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client handles HTTP communication with the Ollama embedding endpoint. The
// underlying http.Client is reused across requests.
type Client struct {
	baseURL    string // e.g. "http://localhost:11434"
	modelName  string // e.g. "nomic-embed-text"
	httpClient *http.Client
}

// embedRequest is the JSON payload for the /api/embed endpoint. Input may be
// a single string or an array of strings; the response shape is the same.
type embedRequest struct {
	Model string `json:"model"`
	Input any    `json:"input"`
}

// embedResponse is the JSON response from /api/embed: one vector per input.
type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// NewClient creates an Ollama client for the given server and model.
func NewClient(baseURL, modelName string) *Client {
	return &Client{
		baseURL:    baseURL,
		modelName:  modelName,
		httpClient: &http.Client{},
	}
}

// Embed converts one document into its embedding vector. Empty input returns
// nil without making a request.
func (client *Client) Embed(text string) ([]float32, error) {
	if text == "" {
		return nil, nil
	}
	embeddings, err := client.embed(text)
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch converts a batch of documents in a single request, returning one
// vector per input in the same order.
func (client *Client) EmbedBatch(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	embeddings, err := client.embed(texts)
	if err != nil {
		return nil, err
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embeddings))
	}
	return embeddings, nil
}

func (client *Client) embed(input any) ([][]float32, error) {
	payload, err := json.Marshal(embedRequest{
		Model: client.modelName,
		Input: input,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	response, err := client.httpClient.Post(
		client.baseURL+"/api/embed",
		"application/json",
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("post request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", response.StatusCode)
	}

	var parsed embedResponse
	if err := json.NewDecoder(response.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}
	return parsed.Embeddings, nil
}
