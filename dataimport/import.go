// Package dataimport loads document corpora from CSV and JSON files for
// embedding and visualization.
package dataimport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is one corpus entry, optionally carrying a precomputed embedding
// so corpora can be re-imported without re-running the embedder.
type Document struct {
	Text   string
	Vector []float32
}

type jsonDocument struct {
	Text   string    `json:"text"`
	Vector []float32 `json:"vector,omitempty"`
}

// LoadTexts reads document texts from a .csv file (using the "text" column)
// or a .json file (an array of strings, or of objects with a "text" field).
func LoadTexts(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".json":
		return loadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(path))
	}
}

// LoadDocuments reads a JSON array of {text, vector} objects. Every entry
// must carry both fields.
func LoadDocuments(path string) ([]Document, error) {
	if strings.ToLower(filepath.Ext(path)) != ".json" {
		return nil, fmt.Errorf("LoadDocuments only supports JSON files")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var entries []jsonDocument
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	documents := make([]Document, 0, len(entries))
	for i, entry := range entries {
		if entry.Text == "" {
			return nil, fmt.Errorf("entry %d missing text field", i)
		}
		if len(entry.Vector) == 0 {
			return nil, fmt.Errorf("entry %d missing vector field", i)
		}
		documents = append(documents, Document{Text: entry.Text, Vector: entry.Vector})
	}
	return documents, nil
}

func loadCSV(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	textColumn := -1
	for columnIndex, header := range records[0] {
		if strings.EqualFold(strings.TrimSpace(header), "text") {
			textColumn = columnIndex
			break
		}
	}
	if textColumn == -1 {
		return nil, fmt.Errorf("CSV missing 'text' column header")
	}

	texts := make([]string, 0, len(records)-1)
	for _, row := range records[1:] {
		if textColumn < len(row) && row[textColumn] != "" {
			texts = append(texts, row[textColumn])
		}
	}
	return texts, nil
}

func loadJSON(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading JSON file: %w", err)
	}

	// Plain string array first; fall back to objects with a text field.
	var strs []string
	if err := json.Unmarshal(raw, &strs); err == nil {
		return strs, nil
	}

	var entries []jsonDocument
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing JSON: expected array of strings or objects with 'text' field: %w", err)
	}

	texts := make([]string, 0, len(entries))
	for i, entry := range entries {
		if entry.Text == "" {
			return nil, fmt.Errorf("entry %d missing text field", i)
		}
		texts = append(texts, entry.Text)
	}
	return texts, nil
}
