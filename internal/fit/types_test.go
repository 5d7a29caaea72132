package fit

import (
	"errors"
	"math"
	"testing"
)

func TestNewGrid(t *testing.T) {
	grid, err := NewGrid(-10, 10, 300)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	if grid.Len() != 300 {
		t.Errorf("Expected 300 candidates, got %d", grid.Len())
	}

	values := grid.Values()
	if values[0] != -10 {
		t.Errorf("Expected first candidate -10, got %f", values[0])
	}
	if math.Abs(values[len(values)-1]-10) > 1e-9 {
		t.Errorf("Expected last candidate 10, got %f", values[len(values)-1])
	}

	// Evenly spaced
	step := values[1] - values[0]
	for i := 1; i < len(values); i++ {
		if math.Abs((values[i]-values[i-1])-step) > 1e-12 {
			t.Fatalf("Uneven spacing at index %d: %f vs %f", i, values[i]-values[i-1], step)
		}
	}
}

func TestNewGridSingleCandidate(t *testing.T) {
	grid, err := NewGrid(3, 5, 1)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if grid.Len() != 1 {
		t.Fatalf("Expected 1 candidate, got %d", grid.Len())
	}
	if grid.Values()[0] != 3 {
		t.Errorf("Expected candidate 3, got %f", grid.Values()[0])
	}
}

func TestNewGridInvalid(t *testing.T) {
	if _, err := NewGrid(-10, 10, 0); !errors.Is(err, ErrBadGrid) {
		t.Errorf("Expected ErrBadGrid for zero count, got %v", err)
	}
	if _, err := NewGrid(10, -10, 5); !errors.Is(err, ErrBadGrid) {
		t.Errorf("Expected ErrBadGrid for inverted bounds, got %v", err)
	}
	if _, err := NewGrid(5, 5, 5); !errors.Is(err, ErrBadGrid) {
		t.Errorf("Expected ErrBadGrid for empty range, got %v", err)
	}
}

func TestGridFromValuesCopies(t *testing.T) {
	src := []float64{1, 2, 3}
	grid := GridFromValues(src...)

	src[0] = 99
	if grid.Values()[0] != 1 {
		t.Error("Grid should not alias the input slice")
	}
}

func TestPairsEnumerationOrder(t *testing.T) {
	grid := GridFromValues(1, 2)

	var got []Params
	for p := range grid.Pairs() {
		got = append(got, p)
	}

	want := []Params{
		{Intercept: 1, Slope: 1},
		{Intercept: 1, Slope: 2},
		{Intercept: 2, Slope: 1},
		{Intercept: 2, Slope: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d pairs, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Pair %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestPairsOfSeparateGrids(t *testing.T) {
	intercepts := GridFromValues(0)
	slopes := GridFromValues(1, 2, 3)

	count := 0
	for p := range PairsOf(intercepts, slopes) {
		if p.Intercept != 0 {
			t.Errorf("Expected intercept 0, got %f", p.Intercept)
		}
		count++
	}
	if count != 3 {
		t.Errorf("Expected 3 pairs, got %d", count)
	}
}

func TestPredict(t *testing.T) {
	p := Params{Intercept: 2, Slope: 3}
	if got := p.Predict(4); got != 14 {
		t.Errorf("Expected 14, got %f", got)
	}
}
