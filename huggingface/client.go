// Package huggingface pulls text corpora from the Hugging Face Dataset
// Viewer API and computes embeddings through the Inference API. It is the
// remote counterpart of the local Ollama embedder: point it at a public
// dataset and it yields ready-to-embed document texts.
package huggingface

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

const defaultViewerURL = "https://datasets-server.huggingface.co"

// rowsPageSize is the largest page the /rows endpoint serves per request.
const rowsPageSize = 100

// Client reads dataset rows from the Hugging Face Dataset Viewer API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client talking to the public Dataset Viewer API.
func NewClient() *Client {
	return &Client{
		baseURL:    defaultViewerURL,
		httpClient: &http.Client{},
	}
}

// Split identifies one split of a dataset configuration.
type Split struct {
	Dataset string `json:"dataset"`
	Config  string `json:"config"`
	Split   string `json:"split"`
}

type splitsResponse struct {
	Splits []Split `json:"splits"`
}

// Row is one dataset row keyed by column name.
type Row struct {
	Index  int            `json:"row_idx"`
	Fields map[string]any `json:"row"`
}

type rowsResponse struct {
	Rows []Row `json:"rows"`
}

// Splits lists the splits available for a dataset.
func (client *Client) Splits(dataset string) ([]Split, error) {
	requestURL := fmt.Sprintf("%s/splits?dataset=%s", client.baseURL, url.QueryEscape(dataset))

	var response splitsResponse
	if err := client.getJSON(requestURL, &response); err != nil {
		return nil, err
	}
	return response.Splits, nil
}

// Rows fetches a page of rows from a dataset split.
func (client *Client) Rows(dataset, config, split string, offset, length int) ([]Row, error) {
	requestURL := fmt.Sprintf("%s/rows?dataset=%s&config=%s&split=%s&offset=%s&length=%s",
		client.baseURL,
		url.QueryEscape(dataset),
		url.QueryEscape(config),
		url.QueryEscape(split),
		strconv.Itoa(offset),
		strconv.Itoa(length),
	)

	var response rowsResponse
	if err := client.getJSON(requestURL, &response); err != nil {
		return nil, err
	}
	return response.Rows, nil
}

// FetchTexts collects the non-empty string values of one column, paging
// through the split until maxRows texts were seen or the split ends.
// A maxRows of zero or less means the whole split.
func (client *Client) FetchTexts(dataset, config, split, column string, maxRows int) ([]string, error) {
	var texts []string
	offset := 0

	for {
		if maxRows > 0 && offset >= maxRows {
			break
		}

		length := rowsPageSize
		if maxRows > 0 && offset+length > maxRows {
			length = maxRows - offset
		}

		rows, err := client.Rows(dataset, config, split, offset, length)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			break
		}

		texts = append(texts, textColumn(rows, column)...)
		offset += len(rows)

		if len(rows) < length {
			break
		}
	}

	return texts, nil
}

// textColumn extracts the non-empty string values of one column.
func textColumn(rows []Row, column string) []string {
	var texts []string
	for _, row := range rows {
		value, exists := row.Fields[column]
		if !exists {
			continue
		}
		if text, ok := value.(string); ok && text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}

func (client *Client) getJSON(requestURL string, target any) error {
	response, err := client.httpClient.Get(requestURL)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		return fmt.Errorf("API error %d: %s", response.StatusCode, string(body))
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
