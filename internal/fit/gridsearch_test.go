package fit

import (
	"errors"
	"testing"
)

func TestGridSearchResultIsGridOptimum(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{1.9, 5.1, 7.8, 11.2, 13.9}

	grid, err := NewGrid(-5, 5, 41)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	result, err := NewGridSearch(grid).Fit(x, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// The result must be a member of grid × grid.
	if !containsValue(grid, result.Params.Intercept) {
		t.Errorf("Intercept %f is not a grid candidate", result.Params.Intercept)
	}
	if !containsValue(grid, result.Params.Slope) {
		t.Errorf("Slope %f is not a grid candidate", result.Params.Slope)
	}

	// No other pair in grid × grid may achieve a strictly lower RSS.
	for p := range grid.Pairs() {
		if RSS(x, y, p) < result.RSS {
			t.Fatalf("Pair %+v has RSS %f < reported minimum %f", p, RSS(x, y, p), result.RSS)
		}
	}
}

func containsValue(g Grid, v float64) bool {
	for _, c := range g.Values() {
		if c == v {
			return true
		}
	}
	return false
}

func TestGridSearchEmptyGrid(t *testing.T) {
	x := []float64{1, 2}
	y := []float64{1, 2}

	_, err := NewGridSearch(Grid{}).Fit(x, y)
	if !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("Expected ErrEmptyGrid, got %v", err)
	}
}

func TestGridSearchBadSample(t *testing.T) {
	grid := GridFromValues(0, 1)

	if _, err := NewGridSearch(grid).Fit(nil, nil); !errors.Is(err, ErrBadSample) {
		t.Errorf("Expected ErrBadSample for empty input, got %v", err)
	}
	if _, err := NewGridSearch(grid).Fit([]float64{1, 2}, []float64{1}); !errors.Is(err, ErrBadSample) {
		t.Errorf("Expected ErrBadSample for mismatched lengths, got %v", err)
	}
}

func TestGridSearchTieBreakFirstWins(t *testing.T) {
	// With x = [0] the slope never affects the prediction, so every slope
	// candidate ties for a given intercept, and both intercepts tie because
	// |−1| = |1|. The first enumerated pair must win.
	x := []float64{0}
	y := []float64{0}
	grid := GridFromValues(-1, 1)

	result, err := NewGridSearch(grid).Fit(x, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	want := Params{Intercept: -1, Slope: -1}
	if result.Params != want {
		t.Errorf("Expected first tied pair %+v, got %+v", want, result.Params)
	}
}

func TestGridSearchDeterministic(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0.5, 1.4, 2.6, 3.4}
	grid, err := NewGrid(-3, 3, 25)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	search := NewGridSearch(grid)
	first, err := search.Fit(x, y)
	if err != nil {
		t.Fatalf("First fit failed: %v", err)
	}
	second, err := search.Fit(x, y)
	if err != nil {
		t.Fatalf("Second fit failed: %v", err)
	}

	if first != second {
		t.Errorf("Repeated fits differ: %+v vs %+v", first, second)
	}
}

func TestGridSearchExactLineOnGrid(t *testing.T) {
	// The true parameters (0, 2) are grid candidates, so the search must
	// find them with RSS 0.
	x := []float64{1, 2, 3}
	y := []float64{2, 4, 6}
	grid := GridFromValues(-2, -1, 0, 1, 2)

	result, err := NewGridSearch(grid).Fit(x, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if result.Params != (Params{Intercept: 0, Slope: 2}) {
		t.Errorf("Expected (0, 2), got %+v", result.Params)
	}
	if result.RSS != 0 {
		t.Errorf("Expected RSS 0, got %f", result.RSS)
	}
}

func TestGridSearchSeparateGrids(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{5, 5.5, 6}

	search := &GridSearch{
		Intercepts: GridFromValues(4, 5, 6),
		Slopes:     GridFromValues(0, 0.5, 1),
	}
	result, err := search.Fit(x, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if result.Params != (Params{Intercept: 5, Slope: 0.5}) {
		t.Errorf("Expected (5, 0.5), got %+v", result.Params)
	}
}
