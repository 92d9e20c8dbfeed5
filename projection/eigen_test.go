package projection

import (
	"errors"
	"math"
	"testing"
)

func TestDecompose_InvalidMaxPairs(t *testing.T) {
	_, err := Decompose([][]float32{{1, 2}, {3, 4}}, 0)
	var paramErr *InvalidParameterError
	if !errors.As(err, &paramErr) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
	if paramErr.Param != "maxPairs" {
		t.Errorf("expected param maxPairs, got %s", paramErr.Param)
	}
}

func TestDecompose_RaggedInput(t *testing.T) {
	vectors := [][]float32{
		{1, 2, 3},
		{4, 5},
	}
	_, err := Decompose(vectors, 2)
	var shapeErr *ShapeMismatchError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected ShapeMismatchError, got %v", err)
	}
	if shapeErr.Row != 1 || shapeErr.Want != 3 || shapeErr.Got != 2 {
		t.Errorf("wrong mismatch details: %+v", shapeErr)
	}
}

func TestDecompose_UnitAndOrthogonal(t *testing.T) {
	vectors := [][]float32{
		{1.0, 0.2, 0.1, 3.0},
		{2.0, 1.1, 0.3, 1.0},
		{0.5, 2.3, 1.7, 0.2},
		{3.1, 0.4, 2.2, 1.5},
		{1.7, 1.9, 0.8, 2.6},
		{0.3, 2.8, 1.1, 0.9},
	}

	pairs, err := Decompose(vectors, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) == 0 {
		t.Fatal("expected at least one eigenpair")
	}

	const epsilon = 1e-6
	for i, pair := range pairs {
		norm := math.Sqrt(dotProduct(pair.Vector, pair.Vector))
		if math.Abs(norm-1.0) > epsilon {
			t.Errorf("eigenvector %d has norm %f, expected 1", i, norm)
		}
		for j := i + 1; j < len(pairs); j++ {
			dot := dotProduct(pair.Vector, pairs[j].Vector)
			if math.Abs(dot) > epsilon {
				t.Errorf("eigenvectors %d and %d not orthogonal: dot=%g", i, j, dot)
			}
		}
	}
}

func TestDecompose_EigenvaluesDescending(t *testing.T) {
	vectors := [][]float32{
		{0.0, 0.0, 0.1},
		{1.0, 0.1, 0.0},
		{2.0, 0.0, 0.2},
		{3.0, 0.2, 0.1},
		{4.0, 0.1, 0.3},
	}

	pairs, err := Decompose(vectors, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(pairs); i++ {
		if pairs[i].Value > pairs[i-1].Value {
			t.Errorf("eigenvalues not descending: %f before %f", pairs[i-1].Value, pairs[i].Value)
		}
	}
	for i, pair := range pairs {
		if pair.Value < 0 {
			t.Errorf("eigenvalue %d is negative: %f", i, pair.Value)
		}
	}
}

func TestDecompose_KnownDirection(t *testing.T) {
	// Points spread along the diagonal (1,1); the dominant eigenvector must
	// align with it (up to sign).
	vectors := [][]float32{
		{0.0, 0.0},
		{1.0, 1.1},
		{2.0, 1.9},
		{3.0, 3.1},
		{4.0, 4.0},
	}

	pairs, err := Decompose(vectors, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected 1 eigenpair, got %d", len(pairs))
	}

	diagonal := []float64{1 / math.Sqrt2, 1 / math.Sqrt2}
	alignment := math.Abs(dotProduct(pairs[0].Vector, diagonal))
	if alignment < 0.99 {
		t.Errorf("dominant eigenvector not aligned with diagonal: |dot|=%f", alignment)
	}
}

func TestDecompose_EmptyInput(t *testing.T) {
	pairs, err := Decompose(nil, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pairs != nil {
		t.Errorf("expected nil pairs for empty input, got %v", pairs)
	}
}

func TestDecompose_RankLimited(t *testing.T) {
	// Two points span at most one direction of variance regardless of D.
	vectors := [][]float32{
		{1.0, 2.0, 3.0, 4.0},
		{5.0, 6.0, 7.0, 8.0},
	}

	pairs, err := Decompose(vectors, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) > 1 {
		t.Errorf("expected at most 1 eigenpair from 2 points, got %d", len(pairs))
	}
}
