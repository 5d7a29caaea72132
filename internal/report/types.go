package report

import (
	"time"
)

// ScenarioConfig holds everything needed to reproduce one scenario: the
// population line, the sampling ranges, the candidate grid, and the seed.
type ScenarioConfig struct {
	// Name identifies the scenario in tables, plots, and file names.
	Name string `json:"name"`

	// N is the sample size.
	N int `json:"n"`

	// XMin and XMax bound the uniform range of the x values.
	XMin float64 `json:"xMin"`
	XMax float64 `json:"xMax"`

	// Intercept and Slope define the population regression line.
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`

	// NoiseSigma is the noise standard deviation.
	NoiseSigma float64 `json:"noiseSigma"`

	// GridLo, GridHi, and GridCount define the shared candidate grid of the
	// grid-search estimator.
	GridLo    float64 `json:"gridLo"`
	GridHi    float64 `json:"gridHi"`
	GridCount int     `json:"gridCount"`

	// Seed initializes the scenario's random source.
	Seed uint64 `json:"seed"`
}

// Estimate is one estimator's output for a scenario.
type Estimate struct {
	Estimator string  `json:"estimator"`
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	RSS       float64 `json:"rss"`
	RSquared  float64 `json:"rSquared"`
}

// ScenarioResult is the outcome of running every estimator over one
// scenario's sample.
type ScenarioResult struct {
	Config ScenarioConfig `json:"config"`

	// Estimates holds one entry per estimator, in run order.
	Estimates []Estimate `json:"estimates"`

	// MaxParamGap is the largest absolute difference between any two
	// estimators' values for the same parameter. Small gaps mean the grid
	// search agrees with the closed form.
	MaxParamGap float64 `json:"maxParamGap"`

	// PlotFile is the bundle-relative path of the scenario's fit plot,
	// empty when plotting was skipped.
	PlotFile string `json:"plotFile,omitempty"`
}

// ResolutionPoint records the grid search's RSS against the closed-form
// minimum at one grid resolution.
type ResolutionPoint struct {
	Resolution    int     `json:"resolution"`
	GridRSS       float64 `json:"gridRss"`
	ClosedFormRSS float64 `json:"closedFormRss"`
	Gap           float64 `json:"gap"`
}

// Report is the complete output of one run. All fields are serialized to
// report.json in the bundle.
type Report struct {
	// RunID is the unique identifier of this run's bundle.
	RunID string `json:"runId"`

	// CreatedAt records when the run started.
	CreatedAt time.Time `json:"createdAt"`

	// Seed is the run seed all scenario seeds derive from.
	Seed uint64 `json:"seed"`

	// Version is the linefit version that produced the report.
	Version string `json:"version,omitempty"`

	// Scenarios holds every scenario result in run order.
	Scenarios []ScenarioResult `json:"scenarios"`

	// ResolutionSweep tabulates grid-search convergence on the baseline
	// sample, one point per grid resolution.
	ResolutionSweep []ResolutionPoint `json:"resolutionSweep,omitempty"`

	// ResolutionPlot is the bundle-relative path of the convergence plot,
	// empty when plotting was skipped.
	ResolutionPlot string `json:"resolutionPlot,omitempty"`
}

// BundleInfo is bundle metadata without the full scenario payload, used for
// listing bundles without deserializing every result.
type BundleInfo struct {
	RunID     string    `json:"runId"`
	CreatedAt time.Time `json:"createdAt"`
	Seed      uint64    `json:"seed"`
	Scenarios int       `json:"scenarios"`
}

// ToInfo converts a full Report to its listing metadata.
func (r *Report) ToInfo() BundleInfo {
	return BundleInfo{
		RunID:     r.RunID,
		CreatedAt: r.CreatedAt,
		Seed:      r.Seed,
		Scenarios: len(r.Scenarios),
	}
}

// Validate checks that the report is complete enough to persist.
func (r *Report) Validate() error {
	if r.RunID == "" {
		return &ValidationError{Field: "RunID", Reason: "cannot be empty"}
	}
	if r.CreatedAt.IsZero() {
		return &ValidationError{Field: "CreatedAt", Reason: "cannot be zero"}
	}
	if len(r.Scenarios) == 0 {
		return &ValidationError{Field: "Scenarios", Reason: "cannot be empty"}
	}
	for i := range r.Scenarios {
		if err := r.Scenarios[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks one scenario result.
func (sr *ScenarioResult) Validate() error {
	if sr.Config.Name == "" {
		return &ValidationError{Field: "Config.Name", Reason: "cannot be empty"}
	}
	if sr.Config.N < 1 {
		return &ValidationError{Field: "Config.N", Reason: "must be >= 1"}
	}
	if len(sr.Estimates) == 0 {
		return &ValidationError{Field: "Estimates", Reason: "cannot be empty"}
	}
	for _, e := range sr.Estimates {
		if e.Estimator == "" {
			return &ValidationError{Field: "Estimates.Estimator", Reason: "cannot be empty"}
		}
		if e.RSS < 0 {
			return &ValidationError{Field: "Estimates.RSS", Reason: "cannot be negative"}
		}
	}
	return nil
}

// ValidationError represents a report validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}

// ErrNotFound is returned when a requested bundle does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing report bundle.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "report bundle not found: " + e.RunID
	}
	return "report bundle not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
