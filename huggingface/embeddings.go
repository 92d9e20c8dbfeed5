package huggingface

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

const defaultInferenceURL = "https://api-inference.huggingface.co"

// EmbeddingsClient computes text embeddings through the Hugging Face
// Inference API feature-extraction pipeline.
type EmbeddingsClient struct {
	baseURL    string
	modelID    string
	token      string
	httpClient *http.Client
}

type featureExtractionRequest struct {
	Inputs  string          `json:"inputs"`
	Options map[string]bool `json:"options,omitempty"`
}

// NewEmbeddingsClient returns a client for the given model. An empty
// token falls back to the HF_TOKEN environment variable.
func NewEmbeddingsClient(modelID, token string) *EmbeddingsClient {
	if token == "" {
		token = os.Getenv("HF_TOKEN")
	}
	return &EmbeddingsClient{
		baseURL:    defaultInferenceURL,
		modelID:    modelID,
		token:      token,
		httpClient: &http.Client{},
	}
}

// Embed converts text into an embedding vector. Empty text yields a nil
// vector without a request.
func (client *EmbeddingsClient) Embed(text string) ([]float32, error) {
	if text == "" {
		return nil, nil
	}

	payload := featureExtractionRequest{
		Inputs:  text,
		Options: map[string]bool{"wait_for_model": true},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	requestURL := fmt.Sprintf("%s/pipeline/feature-extraction/%s", client.baseURL, client.modelID)
	request, err := http.NewRequest(http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if client.token != "" {
		request.Header.Set("Authorization", "Bearer "+client.token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("post request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		var errorBody map[string]any
		json.NewDecoder(response.Body).Decode(&errorBody)
		return nil, fmt.Errorf("API error %d: %v", response.StatusCode, errorBody)
	}

	// A single input comes back wrapped in an outer array.
	var vectors [][]float32
	if err := json.NewDecoder(response.Body).Decode(&vectors); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	return vectors[0], nil
}
