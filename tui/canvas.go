package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// topicPalette holds the 256-color codes cycled through for topic markers
// and legend entries.
var topicPalette = []string{"39", "213", "214", "118", "203", "81", "228", "135", "172", "77"}

func topicStyleFor(topicID int) lipgloss.Style {
	if topicID < 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	}
	color := topicPalette[topicID%len(topicPalette)]
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// depthMarker picks the marker rune for a point from its normalized depth.
// Points closer to the viewer render heavier.
func depthMarker(depth float64) rune {
	switch {
	case depth >= 0.66:
		return '●'
	case depth >= 0.33:
		return '◉'
	default:
		return '○'
	}
}

type canvasCell struct {
	char  rune
	style lipgloss.Style
}

type canvasStyles struct {
	selectedDot   lipgloss.Style
	selectedLabel lipgloss.Style
	live          lipgloss.Style
	dim           lipgloss.Style
	line          lipgloss.Style
	neighborDot   lipgloss.Style
	neighborLabel lipgloss.Style
}

func newCanvasStyles() canvasStyles {
	return canvasStyles{
		selectedDot:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		selectedLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("118")).Bold(true),
		live:          lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
		dim:           lipgloss.NewStyle().Foreground(lipgloss.Color("239")),
		line:          lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
		neighborDot:   lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
		neighborLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true),
	}
}

// renderCanvas draws the scatter map: every point placed by its first two
// projection components, depth-shaded by the third, colored by topic.
func (model Model) renderCanvas(canvasWidth, canvasHeight int) string {
	grid := newCanvasGrid(canvasWidth, canvasHeight)

	if len(model.points) == 0 {
		writePlaceholder(grid, canvasWidth, canvasHeight)
	} else {
		model.plotPoints(grid, canvasWidth, canvasHeight)
		if model.showTopics {
			model.writeTopicLegend(grid, canvasWidth)
		}
	}

	return gridToString(grid)
}

func newCanvasGrid(canvasWidth, canvasHeight int) [][]canvasCell {
	grid := make([][]canvasCell, canvasHeight)
	for row := range grid {
		grid[row] = make([]canvasCell, canvasWidth)
		for column := range grid[row] {
			grid[row][column] = canvasCell{char: ' ', style: lipgloss.NewStyle()}
		}
	}
	return grid
}

func writePlaceholder(grid [][]canvasCell, canvasWidth, canvasHeight int) {
	message := "No embeddings yet - press I and start typing"
	row := canvasHeight / 2
	start := (canvasWidth - len(message)) / 2
	if start < 0 {
		start = 0
	}
	for offset, character := range message {
		if start+offset < canvasWidth {
			grid[row][start+offset] = canvasCell{char: character, style: lipgloss.NewStyle()}
		}
	}
}

// writeTopicLegend stacks one line per topic in the top-left corner.
func (model Model) writeTopicLegend(grid [][]canvasCell, canvasWidth int) {
	for legendRow, topic := range model.topicList {
		if legendRow >= len(grid) {
			break
		}
		style := topicStyleFor(topic.ID)
		entry := "■ " + truncateString(topic.Label, 20)
		for offset, character := range entry {
			if offset < canvasWidth {
				grid[legendRow][offset] = canvasCell{char: character, style: style}
			}
		}
	}
}

// gridPoint is a projected point mapped onto canvas cells.
type gridPoint struct {
	row, column int
	pointIndex  int
	label       string
	depth       float64
	isLive      bool
	isSelected  bool
}

func (model Model) plotPoints(grid [][]canvasCell, canvasWidth, canvasHeight int) {
	styles := newCanvasStyles()

	gridPoints := model.toGridPoints(canvasWidth, canvasHeight)
	neighborSet := model.neighborSet()

	model.drawConnectors(grid, gridPoints, neighborSet, styles.line)

	// Highlighted points draw last so they stay visible on collisions.
	sort.SliceStable(gridPoints, func(i, j int) bool {
		return renderPriority(gridPoints[i], neighborSet) < renderPriority(gridPoints[j], neighborSet)
	})

	model.drawMarkers(grid, gridPoints, neighborSet, canvasWidth, styles)
}

func renderPriority(point gridPoint, neighborSet map[int]bool) int {
	switch {
	case point.isSelected:
		return 3
	case point.isLive:
		return 2
	case neighborSet[point.pointIndex]:
		return 1
	default:
		return 0
	}
}

// toGridPoints maps projection coordinates to cell positions. X and Y
// place the point; Z becomes a normalized depth in [0, 1].
func (model Model) toGridPoints(canvasWidth, canvasHeight int) []gridPoint {
	minX, maxX := model.points[0].X, model.points[0].X
	minY, maxY := model.points[0].Y, model.points[0].Y
	minZ, maxZ := model.points[0].Z, model.points[0].Z
	for _, point := range model.points {
		minX = min(minX, point.X)
		maxX = max(maxX, point.X)
		minY = min(minY, point.Y)
		maxY = max(maxY, point.Y)
		minZ = min(minZ, point.Z)
		maxZ = max(maxZ, point.Z)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	rangeZ := maxZ - minZ
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	padding := 2
	plotWidth := canvasWidth - 2*padding
	plotHeight := canvasHeight - 2*padding

	var gridPoints []gridPoint
	for pointIndex, point := range model.points {
		column := padding + int((point.X-minX)/rangeX*float64(plotWidth-1))
		row := padding + int((point.Y-minY)/rangeY*float64(plotHeight-1))

		column = clamp(column, 0, canvasWidth-1)
		row = clamp(row, 0, canvasHeight-1)

		depth := 1.0
		if rangeZ > 0 {
			depth = (point.Z - minZ) / rangeZ
		}

		isLive := pointIndex == len(model.points)-1 && strings.HasSuffix(point.Text, liveMarker)

		gridPoints = append(gridPoints, gridPoint{
			row:        row,
			column:     column,
			pointIndex: pointIndex,
			label:      point.Text,
			depth:      depth,
			isLive:     isLive,
			isSelected: pointIndex == model.selectedIndex,
		})
	}

	return gridPoints
}

// neighborSet marks the indices connected to the selected point.
func (model Model) neighborSet() map[int]bool {
	neighborSet := make(map[int]bool)
	if model.selectedIndex < 0 || model.selectedIndex >= len(model.records) {
		return neighborSet
	}
	for _, index := range model.nearestNeighborIndices(model.selectedIndex, 5) {
		neighborSet[index] = true
	}
	return neighborSet
}

func (model Model) drawConnectors(grid [][]canvasCell, gridPoints []gridPoint, neighborSet map[int]bool, lineStyle lipgloss.Style) {
	var selected *gridPoint
	for i := range gridPoints {
		if gridPoints[i].isSelected {
			selected = &gridPoints[i]
			break
		}
	}
	if selected == nil {
		return
	}

	for _, target := range gridPoints {
		if neighborSet[target.pointIndex] {
			drawLine(grid, selected.column, selected.row, target.column, target.row, lineStyle)
		}
	}
}

func (model Model) drawMarkers(grid [][]canvasCell, gridPoints []gridPoint, neighborSet map[int]bool, canvasWidth int, styles canvasStyles) {
	hasSelection := model.selectedIndex >= 0 && model.selectedIndex < len(model.records)

	for _, point := range gridPoints {
		if model.focusMode && hasSelection && !point.isSelected && !point.isLive && !neighborSet[point.pointIndex] {
			continue
		}

		var marker string
		var markerStyle lipgloss.Style
		var labelStyle lipgloss.Style

		switch {
		case point.isSelected:
			marker = "[*]"
			markerStyle = styles.selectedDot
			labelStyle = styles.selectedLabel
		case point.isLive:
			marker = "●"
			markerStyle = styles.live
			labelStyle = styles.live
		case neighborSet[point.pointIndex]:
			marker = "◆"
			markerStyle = styles.neighborDot
			labelStyle = styles.neighborLabel
		default:
			marker = string(depthMarker(point.depth))
			markerStyle = topicStyleFor(model.topicIDFor(point.pointIndex))
			labelStyle = styles.dim
		}

		markerRunes := []rune(marker)
		markerStart := point.column
		if point.isSelected {
			markerStart = max(point.column-1, 0)
		}

		for offset, markerRune := range markerRunes {
			if markerStart+offset < canvasWidth {
				grid[point.row][markerStart+offset] = canvasCell{char: markerRune, style: markerStyle}
			}
		}

		label := point.label
		if len(label) > 12 {
			label = label[:12]
		}
		labelStart := point.column + len(markerRunes) + 1
		if point.isSelected {
			labelStart = point.column + 3
		}
		for offset, character := range label {
			if labelStart+offset < canvasWidth {
				grid[point.row][labelStart+offset] = canvasCell{char: character, style: labelStyle}
			}
		}
	}
}

// topicIDFor returns the topic id of a point index, or -1 when unknown.
func (model Model) topicIDFor(index int) int {
	if topic, exists := model.topicOf[index]; exists {
		return topic.ID
	}
	return -1
}

func gridToString(grid [][]canvasCell) string {
	var builder strings.Builder
	for row, cells := range grid {
		for _, cell := range cells {
			builder.WriteString(cell.style.Render(string(cell.char)))
		}
		if row < len(grid)-1 {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

// drawLine fills cells between two grid positions with Bresenham's
// algorithm, skipping cells that already hold a marker.
func drawLine(grid [][]canvasCell, startX, startY, endX, endY int, lineStyle lipgloss.Style) {
	deltaX := abs(endX - startX)
	deltaY := abs(endY - startY)

	stepX := 1
	if startX > endX {
		stepX = -1
	}
	stepY := 1
	if startY > endY {
		stepY = -1
	}

	errorTerm := deltaX - deltaY
	x, y := startX, startY

	for {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[0]) {
			if grid[y][x].char == ' ' {
				grid[y][x] = canvasCell{char: '·', style: lineStyle}
			}
		}

		if x == endX && y == endY {
			break
		}

		doubledError := 2 * errorTerm
		if doubledError > -deltaY {
			errorTerm -= deltaY
			x += stepX
		}
		if doubledError < deltaX {
			errorTerm += deltaX
			y += stepY
		}
	}
}

func abs(number int) int {
	if number < 0 {
		return -number
	}
	return number
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
