package fit

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// NormalEquations computes the closed-form least-squares minimizer:
//
//	slope     = Σ(x_i − x̄)(y_i − ȳ) / Σ(x_i − x̄)²
//	intercept = ȳ − slope·x̄
//
// This is the unique global minimizer of the RSS for simple linear
// regression; no search is involved.
type NormalEquations struct{}

func (NormalEquations) Name() string { return "normal-equations" }

// Fit solves the normal equations directly. Returns ErrZeroVariance when
// all x values coincide and the slope denominator is zero.
func (NormalEquations) Fit(x, y []float64) (Result, error) {
	if err := checkSample(x, y); err != nil {
		return Result{}, err
	}

	xMean := stat.Mean(x, nil)
	yMean := stat.Mean(y, nil)

	var sxx, sxy float64
	for i := range x {
		dx := x[i] - xMean
		sxx += dx * dx
		sxy += dx * (y[i] - yMean)
	}
	if sxx == 0 {
		return Result{}, fmt.Errorf("%w: all x values equal %g", ErrZeroVariance, x[0])
	}

	slope := sxy / sxx
	p := Params{Intercept: yMean - slope*xMean, Slope: slope}
	return Result{Params: p, RSS: RSS(x, y, p)}, nil
}
