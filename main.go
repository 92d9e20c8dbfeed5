// Command wepgpu-embeddings is a terminal UI for exploring text embeddings.
// It embeds documents through Ollama or the Hugging Face Inference API,
// stores them in Qdrant, and renders the corpus as a topic-annotated 3-D
// principal component map.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lucahttp/WepGpu-Embeddings/config"
	"github.com/lucahttp/WepGpu-Embeddings/dataimport"
	"github.com/lucahttp/WepGpu-Embeddings/embedding"
	"github.com/lucahttp/WepGpu-Embeddings/huggingface"
	"github.com/lucahttp/WepGpu-Embeddings/ollama"
	"github.com/lucahttp/WepGpu-Embeddings/preload"
	"github.com/lucahttp/WepGpu-Embeddings/qdrant"
	"github.com/lucahttp/WepGpu-Embeddings/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	preloadDemo := flag.Bool("preload", false, "seed the store with the demo corpus")
	withVectors := flag.Bool("with-vectors", false, "dataset file already carries embedding vectors")
	hfDataset := flag.String("hf", "", "Hugging Face dataset to import (e.g. ag_news)")
	hfConfig := flag.String("hf-config", "default", "dataset configuration name")
	hfSplit := flag.String("hf-split", "train", "dataset split to import")
	hfColumn := flag.String("hf-column", "text", "dataset column holding the text")
	hfMaxRows := flag.Int("hf-max", 200, "maximum rows to import, 0 for all")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	embedder := ollama.NewClient(cfg.OllamaURL, cfg.EmbeddingModel)

	store, err := qdrant.NewStore(cfg.QdrantAddress, cfg.CollectionName, cfg.VectorSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to Qdrant: %v\n", err)
		fmt.Fprintln(os.Stderr, "Make sure Qdrant is running: docker run -p 6333:6333 -p 6334:6334 qdrant/qdrant")
		os.Exit(1)
	}
	defer store.Close()

	if *preloadDemo {
		if err := seedDemoCorpus(embedder, store); err != nil {
			fmt.Fprintf(os.Stderr, "Preload failed: %v\n", err)
			os.Exit(1)
		}
	}

	if *hfDataset != "" {
		hfEmbedder := huggingface.NewEmbeddingsClient(cfg.HFModel, cfg.HFToken)
		err := importHuggingFace(hfEmbedder, store, *hfDataset, *hfConfig, *hfSplit, *hfColumn, *hfMaxRows)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Dataset import failed: %v\n", err)
			os.Exit(1)
		}
	}

	if flag.NArg() > 0 {
		if err := importFile(embedder, store, flag.Arg(0), *withVectors); err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
	}

	program := tea.NewProgram(tui.NewModel(embedder, store, version), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// seedDemoCorpus embeds the bundled demo documents in one batch request
// and stores them.
func seedDemoCorpus(embedder *ollama.Client, store *qdrant.Store) error {
	texts := preload.Docs()
	fmt.Printf("Preloading %d documents...\n", len(texts))

	vectors, err := embedder.EmbedBatch(texts)
	if err != nil {
		return fmt.Errorf("embed demo corpus: %w", err)
	}

	if err := storeAll(store, texts, vectors); err != nil {
		return err
	}

	fmt.Println("Done.")
	return nil
}

// importFile loads a CSV or JSON dataset file and stores its documents.
// Without withVectors the texts are embedded first; with it the file must
// already carry an embedding vector per document.
func importFile(embedder embedding.Embedder, store *qdrant.Store, path string, withVectors bool) error {
	if withVectors {
		documents, err := dataimport.LoadDocuments(path)
		if err != nil {
			return fmt.Errorf("loading dataset: %w", err)
		}

		texts := make([]string, 0, len(documents))
		vectors := make([][]float32, 0, len(documents))
		for _, document := range documents {
			texts = append(texts, document.Text)
			vectors = append(vectors, document.Vector)
		}

		fmt.Printf("Importing %d embedded documents from %s...\n", len(texts), path)
		if err := storeAll(store, texts, vectors); err != nil {
			return err
		}
		fmt.Println("Done.")
		return nil
	}

	texts, err := dataimport.LoadTexts(path)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	return embedAndStore(embedder, store, texts, path)
}

// importHuggingFace pulls texts from a Hugging Face dataset and embeds
// them through the Inference API.
func importHuggingFace(embedder embedding.Embedder, store *qdrant.Store, dataset, datasetConfig, split, column string, maxRows int) error {
	viewer := huggingface.NewClient()
	texts, err := viewer.FetchTexts(dataset, datasetConfig, split, column, maxRows)
	if err != nil {
		return fmt.Errorf("fetching dataset: %w", err)
	}
	return embedAndStore(embedder, store, texts, dataset)
}

// embedAndStore embeds every text with the given backend and writes the
// resulting records in one batch.
func embedAndStore(embedder embedding.Embedder, store *qdrant.Store, texts []string, source string) error {
	if len(texts) == 0 {
		return fmt.Errorf("no texts found in %s", source)
	}

	fmt.Printf("Embedding %d texts from %s...\n", len(texts), source)
	vectors, err := embedding.EmbedAll(embedder, texts)
	if err != nil {
		return err
	}

	if err := storeAll(store, texts, vectors); err != nil {
		return err
	}

	fmt.Println("Done.")
	return nil
}

func storeAll(store *qdrant.Store, texts []string, vectors [][]float32) error {
	records := make([]qdrant.Record, 0, len(texts))
	for i, text := range texts {
		records = append(records, qdrant.Record{
			ID:     uuid.New().String(),
			Text:   text,
			Vector: vectors[i],
		})
	}

	if err := store.UpsertBatch(context.Background(), records); err != nil {
		return fmt.Errorf("store records: %w", err)
	}
	return nil
}
