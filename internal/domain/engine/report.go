package engine

import "github.com/google/uuid"

// Entry pairs a step identity with its terminal outcome.
type Entry struct {
	Step    string
	Outcome Outcome
}

// Report is the ordered, append-only record of per-step outcomes for
// one run. Only the orchestrator writes to it; after the run it is
// handed out read-only for rendering.
type Report struct {
	id      string
	entries []Entry
}

// NewReport creates an empty report with a fresh run identity.
func NewReport() *Report {
	return &Report{id: uuid.NewString()}
}

// RunID returns the identity stamped on this run.
func (r *Report) RunID() string {
	return r.id
}

// Record appends one outcome. Every considered step has exactly one
// entry; steps filtered out before consideration are never recorded.
func (r *Report) Record(step string, outcome Outcome) {
	r.entries = append(r.entries, Entry{Step: step, Outcome: outcome})
}

// Entries returns the recorded entries in order.
func (r *Report) Entries() []Entry {
	return r.entries
}

// Empty reports whether nothing was recorded.
func (r *Report) Empty() bool {
	return len(r.entries) == 0
}

// Failed reports whether at least one entry is Failed. Skipped and
// Ignored entries do not count against the run.
func (r *Report) Failed() bool {
	for _, entry := range r.entries {
		if entry.Outcome.IsFailure() {
			return true
		}
	}
	return false
}

// ByKind returns the entries of one kind, preserving recorded order.
func (r *Report) ByKind(kind Kind) []Entry {
	var out []Entry
	for _, entry := range r.entries {
		if entry.Outcome.Kind == kind {
			out = append(out, entry)
		}
	}
	return out
}
