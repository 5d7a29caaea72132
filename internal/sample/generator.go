package sample

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sample is an ordered pair of equal-length observation slices.
// Values built through New or Generate always satisfy len(X) == len(Y) >= 1.
type Sample struct {
	X []float64
	Y []float64
}

var (
	// ErrBadSample is returned for empty or mismatched observation slices.
	ErrBadSample = errors.New("invalid sample")
	// ErrBadConfig is returned for generator configs violating input constraints.
	ErrBadConfig = errors.New("invalid generator config")
)

// New validates and wraps pre-generated observations.
func New(x, y []float64) (Sample, error) {
	if len(x) == 0 {
		return Sample{}, fmt.Errorf("%w: no observations", ErrBadSample)
	}
	if len(x) != len(y) {
		return Sample{}, fmt.Errorf("%w: len(x)=%d, len(y)=%d", ErrBadSample, len(x), len(y))
	}
	return Sample{X: x, Y: y}, nil
}

// Len returns the number of observations.
func (s Sample) Len() int { return len(s.X) }

// GeneratorConfig describes the population regression line and the sampling
// ranges used to draw synthetic observations.
type GeneratorConfig struct {
	// N is the number of observations to draw.
	N int
	// XMin and XMax bound the uniform range the x values are drawn from.
	XMin, XMax float64
	// Intercept and Slope define the population regression line.
	Intercept float64
	Slope     float64
	// NoiseSigma is the standard deviation of the zero-mean Gaussian noise
	// added to each y value. Zero means noise-free observations.
	NoiseSigma float64
}

// Validate checks the config against its input constraints.
func (c GeneratorConfig) Validate() error {
	if c.N < 1 {
		return fmt.Errorf("%w: n must be >= 1, got %d", ErrBadConfig, c.N)
	}
	if c.XMin >= c.XMax {
		return fmt.Errorf("%w: x range [%g, %g) is empty", ErrBadConfig, c.XMin, c.XMax)
	}
	if c.NoiseSigma < 0 {
		return fmt.Errorf("%w: noise sigma must be >= 0, got %g", ErrBadConfig, c.NoiseSigma)
	}
	return nil
}

// Generate draws N observations y_i = intercept + slope·x_i + ε_i with x_i
// uniform over [XMin, XMax) and ε_i ~ N(0, NoiseSigma). All entropy comes
// from src; the same config and source state always yield the same sample.
func Generate(cfg GeneratorConfig, src rand.Source) (Sample, error) {
	if err := cfg.Validate(); err != nil {
		return Sample{}, err
	}

	uniform := distuv.Uniform{Min: cfg.XMin, Max: cfg.XMax, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: cfg.NoiseSigma, Src: src}

	x := make([]float64, cfg.N)
	y := make([]float64, cfg.N)
	for i := range x {
		x[i] = uniform.Rand()
		y[i] = cfg.Intercept + cfg.Slope*x[i] + noise.Rand()
	}
	return Sample{X: x, Y: y}, nil
}
