package projection

import (
	"errors"
	"math"
	"testing"
)

func TestReduce_InvalidTargetDim(t *testing.T) {
	for _, targetDim := range []int{0, -1} {
		_, err := Reduce([][]float32{{1, 2}, {3, 4}}, targetDim)
		var paramErr *InvalidParameterError
		if !errors.As(err, &paramErr) {
			t.Errorf("targetDim=%d: expected InvalidParameterError, got %v", targetDim, err)
		}
	}
}

func TestReduce_RaggedInput(t *testing.T) {
	vectors := [][]float32{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8},
	}
	_, err := Reduce(vectors, 2)
	var shapeErr *ShapeMismatchError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected ShapeMismatchError, got %v", err)
	}
}

func TestReduce_OutputShape(t *testing.T) {
	vectors := make([][]float32, 10)
	for i := range vectors {
		vectors[i] = []float32{float32(i), float32(i * i), float32(10 - i), float32(i % 3), 0.5}
	}

	points, err := Reduce(vectors, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(points))
	}
	for i, point := range points {
		if len(point) != 3 {
			t.Errorf("row %d has width %d, expected 3", i, len(point))
		}
	}
}

func TestReduce_DegenerateFallback(t *testing.T) {
	// 2 points, targetDim 3: too few to decompose, so rows are the leading
	// components of each input.
	vectors := [][]float32{
		{1.5, 2.5, 3.5, 4.5},
		{5.0, 6.0, 7.0, 8.0},
	}

	points, err := Reduce(vectors, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(points))
	}
	expected := [][]float64{
		{1.5, 2.5, 3.5},
		{5.0, 6.0, 7.0},
	}
	for i, row := range expected {
		for j, want := range row {
			if points[i][j] != want {
				t.Errorf("points[%d][%d] = %f, expected %f", i, j, points[i][j], want)
			}
		}
	}
}

func TestReduce_DegenerateFallbackZeroPads(t *testing.T) {
	// Embedding dimension 2 is below targetDim 4: trailing components are zero.
	vectors := [][]float32{
		{1.0, 2.0},
		{3.0, 4.0},
	}

	points, err := Reduce(vectors, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, point := range points {
		if len(point) != 4 {
			t.Fatalf("row %d has width %d, expected 4", i, len(point))
		}
		if point[2] != 0 || point[3] != 0 {
			t.Errorf("row %d not zero-padded: %v", i, point)
		}
	}
}

func TestReduce_ZeroPadsRankDeficientInput(t *testing.T) {
	// Collinear points have a single direction of variance; all other
	// components must come back exactly zero.
	vectors := [][]float32{
		{0.0, 0.0, 0.0},
		{1.0, 2.0, 3.0},
		{2.0, 4.0, 6.0},
		{3.0, 6.0, 9.0},
	}

	points, err := Reduce(vectors, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, point := range points {
		if len(point) != 3 {
			t.Fatalf("row %d has width %d, expected 3", i, len(point))
		}
		if point[1] != 0 || point[2] != 0 {
			t.Errorf("row %d should be zero beyond the first component: %v", i, point)
		}
	}
}

func TestReduce_Deterministic(t *testing.T) {
	vectors := [][]float32{
		{1.0, 2.0, 3.0, 4.0},
		{1.1, 2.1, 3.1, 4.1},
		{5.0, 6.0, 7.0, 8.0},
		{5.1, 6.1, 7.1, 8.1},
		{9.0, 0.5, 2.5, 1.0},
		{0.2, 8.8, 4.4, 6.6},
	}

	first, err := Reduce(vectors, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Reduce(vectors, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const relativeTolerance = 1e-9
	for i := range first {
		for j := range first[i] {
			a, b := first[i][j], second[i][j]
			scale := math.Max(math.Abs(a), math.Abs(b))
			if scale < 1 {
				scale = 1
			}
			if math.Abs(a-b) > relativeTolerance*scale {
				t.Errorf("point %d component %d differs between runs: %g vs %g", i, j, a, b)
			}
		}
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	vectors := [][]float32{
		{1.0, 2.0, 3.0},
		{4.0, 5.0, 6.0},
		{7.0, 8.0, 10.0},
		{2.0, 9.0, 1.0},
	}
	original := make([][]float32, len(vectors))
	for i, v := range vectors {
		original[i] = append([]float32(nil), v...)
	}

	if _, err := Reduce(vectors, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range vectors {
		for j := range vectors[i] {
			if vectors[i][j] != original[i][j] {
				t.Fatalf("input mutated at [%d][%d]: %f -> %f", i, j, original[i][j], vectors[i][j])
			}
		}
	}
}

func TestReduce_SeparatesDistantGroups(t *testing.T) {
	vectors := [][]float32{
		{0.0, 0.1, 0.0}, {0.1, 0.0, 0.1}, {0.0, 0.0, 0.2},
		{10.0, 10.1, 10.0}, {10.1, 10.0, 10.1}, {10.0, 10.2, 10.0},
	}

	points, err := Reduce(vectors, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var meanA, meanB float64
	for i := 0; i < 3; i++ {
		meanA += points[i][0]
		meanB += points[i+3][0]
	}
	meanA /= 3
	meanB /= 3

	if math.Abs(meanA-meanB) < 5 {
		t.Errorf("first component does not separate the groups: %f vs %f", meanA, meanB)
	}
}

func TestProjectTo3D_EmptyInput(t *testing.T) {
	result := ProjectTo3D(nil, nil)
	if result != nil {
		t.Errorf("expected nil for empty input, got %v", result)
	}
}

func TestProjectTo3D_LabelsPreserved(t *testing.T) {
	vectors := [][]float32{
		{0.0, 0.0, 0.0, 0.1},
		{0.1, 0.1, 0.1, 0.0},
		{5.0, 5.0, 5.0, 5.1},
		{5.1, 5.1, 5.1, 5.0},
	}
	labels := []string{"a1", "a2", "b1", "b2"}

	points := ProjectTo3D(vectors, labels)
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}
	for i, point := range points {
		if point.Text != labels[i] {
			t.Errorf("point %d has label %q, expected %q", i, point.Text, labels[i])
		}
		if math.IsNaN(point.X) || math.IsNaN(point.Y) || math.IsNaN(point.Z) {
			t.Errorf("point %d has NaN coordinates", i)
		}
	}
}

func BenchmarkReduce(b *testing.B) {
	vectors := make([][]float32, 200)
	for i := range vectors {
		vectors[i] = make([]float32, 128)
		for j := range vectors[i] {
			vectors[i][j] = float32((i*131 + j*17) % 97)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Reduce(vectors, 3); err != nil {
			b.Fatal(err)
		}
	}
}
