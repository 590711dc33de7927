package extraction

import (
	"time"

	"github.com/google/uuid"

	"finlens/pkg/contracts/domain"
)

// Trail accumulates the ordered diagnostics of one pipeline run. It is
// append-only while the run is active; Entries hands an immutable copy to
// the Result.
type Trail struct {
	runID   string
	entries []domain.DiagnosticEntry
}

// NewTrail starts a trail with a fresh run ID.
func NewTrail() *Trail {
	return &Trail{runID: uuid.New().String()}
}

// RunID returns the identifier stamped into the Result.
func (t *Trail) RunID() string {
	return t.runID
}

func (t *Trail) record(stage domain.Stage, outcome domain.StageOutcome, detail string) {
	t.entries = append(t.entries, domain.DiagnosticEntry{
		Stage:   stage,
		Outcome: outcome,
		Detail:  detail,
		At:      time.Now().UTC(),
	})
}

// Success records a completed stage.
func (t *Trail) Success(stage domain.Stage, detail string) {
	t.record(stage, domain.OutcomeSuccess, detail)
}

// Fallback records a failed attempt that the stage recovered from.
func (t *Trail) Fallback(stage domain.Stage, detail string) {
	t.record(stage, domain.OutcomeFallback, detail)
}

// Failure records a stage failure.
func (t *Trail) Failure(stage domain.Stage, detail string) {
	t.record(stage, domain.OutcomeFailure, detail)
}

// Entries returns a copy of the accumulated trail.
func (t *Trail) Entries() []domain.DiagnosticEntry {
	out := make([]domain.DiagnosticEntry, len(t.entries))
	copy(out, t.entries)
	return out
}
