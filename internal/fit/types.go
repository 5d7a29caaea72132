package fit

import (
	"errors"
	"fmt"
	"iter"

	"gonum.org/v1/gonum/floats"
)

// Params represents a line y = Intercept + Slope*x.
type Params struct {
	Intercept float64
	Slope     float64
}

// Predict evaluates the line at x.
func (p Params) Predict(x float64) float64 {
	return p.Intercept + p.Slope*x
}

// Result pairs fitted parameters with the residual sum of squares they
// achieve on the sample they were fitted to.
type Result struct {
	Params Params
	RSS    float64
}

// Grid is an ordered, finite sequence of candidate parameter values.
type Grid struct {
	values []float64
}

var (
	// ErrBadGrid is returned when grid bounds or resolution are invalid.
	ErrBadGrid = errors.New("invalid grid")
	// ErrEmptyGrid is returned when a search runs over a grid with no candidates.
	ErrEmptyGrid = errors.New("empty candidate grid")
)

// NewGrid builds a grid of count evenly spaced candidates spanning [lo, hi].
func NewGrid(lo, hi float64, count int) (Grid, error) {
	if count < 1 {
		return Grid{}, fmt.Errorf("%w: count must be >= 1, got %d", ErrBadGrid, count)
	}
	if lo >= hi {
		return Grid{}, fmt.Errorf("%w: lo %g must be < hi %g", ErrBadGrid, lo, hi)
	}
	if count == 1 {
		return Grid{values: []float64{lo}}, nil
	}
	return Grid{values: floats.Span(make([]float64, count), lo, hi)}, nil
}

// GridFromValues builds a grid from explicit candidate values, preserving order.
func GridFromValues(values ...float64) Grid {
	return Grid{values: append([]float64{}, values...)}
}

// Len returns the number of candidates in the grid.
func (g Grid) Len() int {
	return len(g.values)
}

// Values returns a copy of the candidate values in order.
func (g Grid) Values() []float64 {
	return append([]float64{}, g.values...)
}

// Pairs enumerates the Cartesian product of the grid with itself as
// (intercept, slope) candidates: intercept outer loop, slope inner loop.
func (g Grid) Pairs() iter.Seq[Params] {
	return PairsOf(g, g)
}

// PairsOf enumerates intercepts × slopes in a fixed, deterministic order:
// every slope candidate is visited for the first intercept before the second
// intercept is considered. The enumeration order defines the tie-break of
// the grid search.
func PairsOf(intercepts, slopes Grid) iter.Seq[Params] {
	return func(yield func(Params) bool) {
		for _, b0 := range intercepts.values {
			for _, b1 := range slopes.values {
				if !yield(Params{Intercept: b0, Slope: b1}) {
					return
				}
			}
		}
	}
}
