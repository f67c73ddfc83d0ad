package reconciler

import (
	"fmt"
	"strings"
)

// Outcome classifies what a reconciliation run did to one collection.
type Outcome string

const (
	// OutcomeCreated means the collection did not exist and was created with
	// its validator and indexes.
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means the collection existed and its validator was
	// modified in place.
	OutcomeUpdated Outcome = "updated"
	// OutcomeSkipped means the collection existed and no validator was
	// declared, so nothing was changed.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the validator update was rejected; the failure is
	// non-fatal and the run continued with the remaining collections.
	OutcomeFailed Outcome = "failed"
)

// CollectionResult records what happened to one collection during a run.
type CollectionResult struct {
	Collection     string  `json:"collection"`
	Outcome        Outcome `json:"outcome"`
	IndexesEnsured int     `json:"indexes_ensured"`
	Reason         string  `json:"reason,omitempty"` // underlying message for failed outcomes
}

// Results aggregates per-collection outcomes of one run, in processing order.
type Results []CollectionResult

// Failed returns the results with a failed outcome.
func (r Results) Failed() Results {
	var failed Results
	for _, result := range r {
		if result.Outcome == OutcomeFailed {
			failed = append(failed, result)
		}
	}
	return failed
}

// HasFailures reports whether any collection ended in a failed outcome.
func (r Results) HasFailures() bool {
	return len(r.Failed()) > 0
}

// Summary renders a one-line human-readable overview, e.g.
// "users: created, events: updated, rsvps: skipped, attendees: failed".
func (r Results) Summary() string {
	parts := make([]string, 0, len(r))
	for _, result := range r {
		parts = append(parts, fmt.Sprintf("%s: %s", result.Collection, result.Outcome))
	}
	return strings.Join(parts, ", ")
}
