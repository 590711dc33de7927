package domain

import (
	"time"
)

// Stage identifies a pipeline stage in the diagnostics trail.
type Stage string

const (
	StageFormatDetection Stage = "format_detection"
	StageDecode          Stage = "decode"
	StageAxisLocation    Stage = "axis_location"
	StageMetricMatching  Stage = "metric_matching"
	StageAssembly        Stage = "assembly"
	StageDerivation      Stage = "derivation"
)

// StageOutcome classifies a diagnostics entry.
type StageOutcome string

const (
	OutcomeSuccess  StageOutcome = "success"
	OutcomeFallback StageOutcome = "fallback"
	OutcomeFailure  StageOutcome = "failure"
)

// DiagnosticEntry is one record in the ordered diagnostics trail.
type DiagnosticEntry struct {
	Stage   Stage        `json:"stage"`
	Outcome StageOutcome `json:"outcome"`
	Detail  string       `json:"detail"`
	At      time.Time    `json:"at"`
}

// Result is the single output of a pipeline run. It is created once per
// invocation, is never mutated after assembly completes, and always
// carries whatever partial data exists when a stage failed.
type Result struct {
	RunID       string            `json:"run_id"`
	Source      string            `json:"source"`
	Table       *RawTable         `json:"table,omitempty"`
	Axis        *Axis             `json:"axis,omitempty"`
	Series      []MetricSeries    `json:"series"`
	Derived     []DerivedSeries   `json:"derived"`
	Diagnostics []DiagnosticEntry `json:"diagnostics"`

	// Partial is set when structure was found but zero metrics matched
	// (the PartialExtraction condition).
	Partial bool `json:"partial"`
	// FailureCode carries the terminal error kind when a stage hard-stopped
	// the run, e.g. "NO_AXIS_FOUND". Empty on full success.
	FailureCode string `json:"failure_code,omitempty"`
}

// SeriesFor returns the series bound to the given metric, or nil.
func (r *Result) SeriesFor(m Metric) *MetricSeries {
	for i := range r.Series {
		if r.Series[i].Metric == m {
			return &r.Series[i]
		}
	}
	return nil
}

// DerivedFor returns the computed series for the given derived metric, or nil.
func (r *Result) DerivedFor(m DerivedMetric) *DerivedSeries {
	for i := range r.Derived {
		if r.Derived[i].Metric == m {
			return &r.Derived[i]
		}
	}
	return nil
}

// HasMetrics reports whether any metric series were assembled.
func (r *Result) HasMetrics() bool {
	return len(r.Series) > 0
}
