// Package config reads runtime configuration for the backend services from
// environment variables.
package config

import (
	"github.com/caarlos0/env/v10"
)

// Config holds the service endpoints and model settings. Every field has a
// default suitable for a local Ollama + Qdrant setup.
type Config struct {
	// Embedding service
	OllamaURL      string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	EmbeddingModel string `env:"EMBEDDING_MODEL" envDefault:"nomic-embed-text"`

	// Vector store
	QdrantAddress  string `env:"QDRANT_ADDR" envDefault:"localhost:6334"`
	CollectionName string `env:"QDRANT_COLLECTION" envDefault:"embeddings"`
	VectorSize     uint64 `env:"VECTOR_SIZE" envDefault:"768"`

	// Hugging Face (optional; only used for dataset import and the HF embedder)
	HFToken string `env:"HF_TOKEN"`
	HFModel string `env:"HF_MODEL" envDefault:"sentence-transformers/all-MiniLM-L6-v2"`
}

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
