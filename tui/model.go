// Package tui is the interactive terminal frontend. It renders the stored
// corpus as a topic-colored scatter map of the first three principal
// components, with tabs for the raw document list and per-topic statistics.
package tui

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/lucahttp/WepGpu-Embeddings/ollama"
	"github.com/lucahttp/WepGpu-Embeddings/projection"
	"github.com/lucahttp/WepGpu-Embeddings/qdrant"
	"github.com/lucahttp/WepGpu-Embeddings/topics"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// liveMarker tags the label of the not-yet-saved input point so the
// renderer can tell it apart from stored documents.
const liveMarker = " ●"

// Model holds the full application state.
type Model struct {
	width, height int

	input     string
	cursorPos int
	inputMode inputMode
	activeTab viewTab

	records    []qdrant.Record
	points     []projection.Point3D
	topicList  []topics.Topic
	topicOf    map[int]*topics.Topic
	currentVec []float32

	embedder *ollama.Client
	store    *qdrant.Store

	err           error
	embedding     bool
	selectedIndex int
	showMetadata  bool
	showTopics    bool
	focusMode     bool
	version       string
}

// embeddingResult carries the vector computed for the live input text.
type embeddingResult struct {
	vector []float32
	err    error
}

// corpusUpdated carries a freshly analyzed corpus: stored records plus
// their projection and topic assignment. A nil records slice means the
// stored set did not change, only the projection did.
type corpusUpdated struct {
	records   []qdrant.Record
	points    []projection.Point3D
	topicList []topics.Topic
}

// NewModel wires the TUI to its embedding client and vector store.
func NewModel(embedder *ollama.Client, store *qdrant.Store, version string) Model {
	return Model{
		embedder:      embedder,
		store:         store,
		width:         80,
		height:        24,
		selectedIndex: -1,
		showMetadata:  true,
		showTopics:    true,
		version:       version,
	}
}

// Init starts by loading and analyzing the stored corpus.
func (model Model) Init() tea.Cmd {
	return model.loadCorpus()
}

// analyzeRecords projects the corpus to three dimensions and derives its
// topics. An optional live vector is appended so the input text shows up
// on the map before it is saved.
func analyzeRecords(records []qdrant.Record, liveVec []float32, liveText string) ([]projection.Point3D, []topics.Topic) {
	var vectors [][]float32
	var texts []string
	for _, record := range records {
		vectors = append(vectors, record.Vector)
		texts = append(texts, record.Text)
	}
	if liveVec != nil {
		vectors = append(vectors, liveVec)
		texts = append(texts, liveText+liveMarker)
	}

	points := projection.ProjectTo3D(vectors, texts)
	topicList, err := topics.Run(texts, vectors, 0)
	if err != nil {
		topicList = nil
	}
	return points, topicList
}

// loadCorpus fetches every stored record and analyzes it.
func (model *Model) loadCorpus() tea.Cmd {
	store := model.store
	return func() tea.Msg {
		records, err := store.GetAll(context.Background())
		if err != nil {
			return embeddingResult{err: err}
		}
		points, topicList := analyzeRecords(records, nil, "")
		return corpusUpdated{records: records, points: points, topicList: topicList}
	}
}

// Update routes incoming messages.
func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch message := msg.(type) {
	case tea.KeyMsg:
		return model.handleKeyPress(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height

	case embeddingResult:
		return model.handleEmbeddingResult(message)

	case corpusUpdated:
		return model.handleCorpusUpdated(message)
	}

	return model, nil
}

func (model Model) handleKeyPress(keyMessage tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.inputMode == modeInput {
		return model.handleInputModeKey(keyMessage)
	}

	switch keyMessage.String() {
	case "ctrl+c", "q", "esc":
		return model, tea.Quit

	case "i":
		model.inputMode = modeInput

	case "1":
		model.activeTab = tabMap

	case "2":
		model.activeTab = tabDocuments

	case "3":
		model.activeTab = tabTopics

	case "tab", "down":
		model.selectNext()

	case "shift+tab", "up":
		model.selectPrevious()

	case "/":
		model.showMetadata = !model.showMetadata

	case "t":
		model.showTopics = !model.showTopics

	case "f":
		model.focusMode = !model.focusMode

	case "D":
		if model.selectedIndex >= 0 && model.selectedIndex < len(model.records) {
			return model, model.deleteSelected()
		}
	}

	return model, nil
}

func (model Model) handleInputModeKey(keyMessage tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMessage.String() {
	case "ctrl+c":
		return model, tea.Quit

	case "esc":
		model.inputMode = modeNormal
		model.input = ""
		model.cursorPos = 0
		model.currentVec = nil
		return model, model.loadCorpus()

	case "enter":
		return model.handleEnterKey()

	case "backspace":
		if model.cursorPos > 0 {
			model.input = model.input[:model.cursorPos-1] + model.input[model.cursorPos:]
			model.cursorPos--
			return model, model.debounceEmbed()
		}

	case "left":
		if model.cursorPos > 0 {
			model.cursorPos--
		}

	case "right":
		if model.cursorPos < len(model.input) {
			model.cursorPos++
		}

	default:
		keyString := keyMessage.String()
		if len(keyString) == 1 {
			model.input = model.input[:model.cursorPos] + keyString + model.input[model.cursorPos:]
			model.cursorPos++
			return model, model.debounceEmbed()
		}
	}

	return model, nil
}

// handleEnterKey saves the live embedding when one is ready.
func (model Model) handleEnterKey() (tea.Model, tea.Cmd) {
	if model.input != "" && model.currentVec != nil {
		saveCommand := model.saveCurrent()
		model.inputMode = modeNormal
		model.input = ""
		model.cursorPos = 0
		model.currentVec = nil
		return model, saveCommand
	}
	return model, nil
}

func (model *Model) selectNext() {
	if len(model.records) > 0 {
		model.selectedIndex = (model.selectedIndex + 1) % len(model.records)
	}
}

func (model *Model) selectPrevious() {
	if len(model.records) > 0 {
		model.selectedIndex--
		if model.selectedIndex < 0 {
			model.selectedIndex = len(model.records) - 1
		}
	}
}

func (model Model) handleEmbeddingResult(result embeddingResult) (tea.Model, tea.Cmd) {
	model.embedding = false
	if result.err != nil {
		model.err = result.err
		return model, nil
	}
	model.currentVec = result.vector
	model.err = nil
	if model.currentVec != nil {
		return model, model.refreshWithLivePoint()
	}
	return model, nil
}

func (model Model) handleCorpusUpdated(update corpusUpdated) (tea.Model, tea.Cmd) {
	model.points = update.points
	model.topicList = update.topicList
	model.topicOf = topics.ByIndex(update.topicList)
	if update.records != nil {
		model.records = update.records
	}

	if model.selectedIndex >= len(model.records) {
		model.selectedIndex = len(model.records) - 1
	}

	return model, nil
}

// debounceEmbed waits briefly before asking the embedder, so fast typing
// does not flood the API.
func (model *Model) debounceEmbed() tea.Cmd {
	inputText := model.input
	embedder := model.embedder
	return func() tea.Msg {
		time.Sleep(150 * time.Millisecond)
		if inputText == "" {
			return embeddingResult{}
		}
		vector, err := embedder.Embed(inputText)
		return embeddingResult{vector: vector, err: err}
	}
}

// saveCurrent persists the live input and re-analyzes the corpus.
func (model *Model) saveCurrent() tea.Cmd {
	text := model.input
	vector := model.currentVec
	store := model.store
	return func() tea.Msg {
		ctx := context.Background()
		if err := store.Upsert(ctx, uuid.New().String(), text, vector); err != nil {
			return embeddingResult{err: err}
		}

		records, err := store.GetAll(ctx)
		if err != nil {
			return embeddingResult{err: err}
		}
		points, topicList := analyzeRecords(records, nil, "")
		return corpusUpdated{records: records, points: points, topicList: topicList}
	}
}

// deleteSelected removes the selected record and re-analyzes the corpus.
func (model *Model) deleteSelected() tea.Cmd {
	if model.selectedIndex < 0 || model.selectedIndex >= len(model.records) {
		return nil
	}
	id := model.records[model.selectedIndex].ID
	store := model.store
	return func() tea.Msg {
		ctx := context.Background()
		if err := store.Delete(ctx, id); err != nil {
			return embeddingResult{err: err}
		}

		records, err := store.GetAll(ctx)
		if err != nil {
			return embeddingResult{err: err}
		}
		points, topicList := analyzeRecords(records, nil, "")
		return corpusUpdated{records: records, points: points, topicList: topicList}
	}
}

// refreshWithLivePoint recomputes the projection with the unsaved input
// vector included.
func (model *Model) refreshWithLivePoint() tea.Cmd {
	store := model.store
	liveVec := model.currentVec
	liveText := model.input
	return func() tea.Msg {
		records, err := store.GetAll(context.Background())
		if err != nil {
			return corpusUpdated{}
		}
		points, topicList := analyzeRecords(records, liveVec, liveText)
		return corpusUpdated{points: points, topicList: topicList}
	}
}

// View renders the active tab with the tab bar above and the status bar
// below.
func (model Model) View() string {
	layout := model.calculateLayout()
	s := newStyles()

	var sections []string
	sections = append(sections, model.renderTabBar(s, layout.totalWidth))

	switch model.activeTab {
	case tabDocuments:
		sections = append(sections, model.renderDocumentsTab(s, layout))
	case tabTopics:
		sections = append(sections, model.renderTopicsTab(s, layout))
	default:
		sections = append(sections, model.renderContentArea(s, layout))
	}

	if errorLine := model.renderError(s); errorLine != "" {
		sections = append(sections, errorLine)
	}
	sections = append(sections, model.renderStatusBar(s, layout.totalWidth))

	return strings.Join(sections, "\n")
}

// topicLabelFor returns the topic label of a document index, or "" when
// no topic is known for it.
func (model Model) topicLabelFor(index int) string {
	if topic, exists := model.topicOf[index]; exists {
		return topic.Label
	}
	return ""
}

// renderMetadata builds the info panel for the selected record: text,
// topic, vector statistics, and nearest neighbors.
func (model Model) renderMetadata(panelWidth, panelHeight int) string {
	if model.selectedIndex < 0 || model.selectedIndex >= len(model.records) {
		return ""
	}

	selected := model.records[model.selectedIndex]
	s := newStyles()
	var lines []string

	lines = append(lines, s.title.Render("Selected"))
	lines = append(lines, truncateString(selected.Text, panelWidth))

	if label := model.topicLabelFor(model.selectedIndex); label != "" {
		topicStyle := topicStyleFor(model.topicOf[model.selectedIndex].ID)
		lines = append(lines, s.dimText.Render("Topic: ")+topicStyle.Render(truncateString(label, panelWidth-7)))
	}
	lines = append(lines, "")

	if len(selected.Vector) > 0 {
		minValue, maxValue, meanValue := vectorStatistics(selected.Vector)
		lines = append(lines, s.dimText.Render("Dim: ")+fmt.Sprintf("%d", len(selected.Vector)))
		lines = append(lines, s.dimText.Render("Min/Max: ")+fmt.Sprintf("%.3f / %.3f", minValue, maxValue))
		lines = append(lines, s.dimText.Render("Mean: ")+fmt.Sprintf("%.4f", meanValue))
		lines = append(lines, s.dimText.Render("L2 norm: ")+fmt.Sprintf("%.4f", vectorNorm(selected.Vector)))
		lines = append(lines, "")
	}

	neighbors := model.nearestNeighbors(model.selectedIndex, 5)
	if len(neighbors) > 0 {
		lines = append(lines, s.title.Render("Nearest"))
		for _, entry := range neighbors {
			lines = append(lines, fmt.Sprintf("%.3f %s", entry.similarity, truncateString(model.records[entry.index].Text, panelWidth-7)))
		}
	}

	for len(lines) < panelHeight {
		lines = append(lines, "")
	}
	if len(lines) > panelHeight {
		lines = lines[:panelHeight]
	}

	return strings.Join(lines, "\n")
}

type neighbor struct {
	index      int
	similarity float64
}

// nearestNeighbors ranks the other records by cosine similarity to the
// record at the given index and returns the top maxNeighbors.
func (model Model) nearestNeighbors(index int, maxNeighbors int) []neighbor {
	if index < 0 || index >= len(model.records) {
		return nil
	}

	selected := model.records[index]
	var ranked []neighbor
	for candidateIndex, candidate := range model.records {
		if candidateIndex == index {
			continue
		}
		ranked = append(ranked, neighbor{
			index:      candidateIndex,
			similarity: cosineSimilarity(selected.Vector, candidate.Vector),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].similarity > ranked[j].similarity
	})

	if len(ranked) > maxNeighbors {
		ranked = ranked[:maxNeighbors]
	}
	return ranked
}

func (model Model) nearestNeighborIndices(index int, maxNeighbors int) []int {
	var indices []int
	for _, entry := range model.nearestNeighbors(index, maxNeighbors) {
		indices = append(indices, entry.index)
	}
	return indices
}

// cosineSimilarity is in [-1, 1]; mismatched or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func vectorStatistics(vector []float32) (minValue, maxValue, meanValue float64) {
	if len(vector) == 0 {
		return
	}

	minValue = float64(vector[0])
	maxValue = float64(vector[0])
	var sum float64
	for _, component := range vector {
		value := float64(component)
		if value < minValue {
			minValue = value
		}
		if value > maxValue {
			maxValue = value
		}
		sum += value
	}
	meanValue = sum / float64(len(vector))
	return
}

func vectorNorm(vector []float32) float64 {
	var sumSquares float64
	for _, component := range vector {
		sumSquares += float64(component) * float64(component)
	}
	return math.Sqrt(sumSquares)
}

func truncateString(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	if maxLength < 3 {
		return text[:maxLength]
	}
	return text[:maxLength-3] + "..."
}
