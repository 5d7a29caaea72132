package fit

import "math"

// GridSearch estimates line parameters by evaluating the RSS of every
// candidate pair in intercepts × slopes and keeping the minimum. It is a
// brute-force baseline: O(|grid|²·n) with no analytic shortcut, and its
// result is only optimal over the discrete grid, not the continuous RSS
// surface. Ties are broken by enumeration order (first minimum wins).
type GridSearch struct {
	Intercepts Grid
	Slopes     Grid
}

// NewGridSearch builds a search applying the same candidate grid to both
// parameters.
func NewGridSearch(grid Grid) *GridSearch {
	return &GridSearch{Intercepts: grid, Slopes: grid}
}

func (s *GridSearch) Name() string { return "grid-search" }

// Fit evaluates every candidate pair and returns the first one achieving
// the minimum RSS. Returns ErrEmptyGrid when either grid has no candidates.
func (s *GridSearch) Fit(x, y []float64) (Result, error) {
	if err := checkSample(x, y); err != nil {
		return Result{}, err
	}
	if s.Intercepts.Len() == 0 || s.Slopes.Len() == 0 {
		return Result{}, ErrEmptyGrid
	}

	cost := RSSCost(x, y)
	best := Result{RSS: math.Inf(1)}
	for p := range PairsOf(s.Intercepts, s.Slopes) {
		if c := cost(p); c < best.RSS {
			best = Result{Params: p, RSS: c}
		}
	}
	return best, nil
}
