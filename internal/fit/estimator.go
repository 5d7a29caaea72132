package fit

import (
	"errors"
	"fmt"
)

// Estimator fits a line to paired observations. Implementations are pure:
// the same (x, y) always produces the same result.
type Estimator interface {
	// Name identifies the estimator in reports and logs.
	Name() string

	// Fit estimates line parameters from the sample.
	// Returns ErrBadSample for mismatched or empty inputs.
	Fit(x, y []float64) (Result, error)
}

var (
	// ErrBadSample is returned for empty or mismatched x/y slices.
	ErrBadSample = errors.New("invalid sample")
	// ErrZeroVariance is returned by the closed-form estimator when all
	// x values are identical and the slope denominator vanishes.
	ErrZeroVariance = errors.New("degenerate sample: zero variance in x")
)

// checkSample validates the input constraints shared by both estimators.
func checkSample(x, y []float64) error {
	if len(x) == 0 {
		return fmt.Errorf("%w: no observations", ErrBadSample)
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: len(x)=%d, len(y)=%d", ErrBadSample, len(x), len(y))
	}
	return nil
}
