package domain

import "fmt"

// ValidationError signals a malformed or incomplete request payload, or a
// snapshot that violates a structural invariant.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return "validation: " + e.Detail }

// NotFoundError signals a missing itinerary or activity.
type NotFoundError struct {
	Kind string // "itinerary" or "activity"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ConflictError signals an irreconcilable time overlap, reported after any
// applicable slot-finding has been exhausted.
type ConflictError struct {
	ActivityID string
	Detail     string
}

func (e *ConflictError) Error() string { return "conflict: " + e.Detail }

// InfeasibleError signals a day that cannot satisfy its time bounds even
// after automatic trimming.
type InfeasibleError struct {
	Detail string
}

func (e *InfeasibleError) Error() string { return "infeasible: " + e.Detail }

// UpstreamUnavailableError signals a failed collaborator lookup. The core
// recovers from it through documented fallbacks and never surfaces it to the
// caller; adapters use it to report degradation to their own logs.
type UpstreamUnavailableError struct {
	Upstream string
	Err      error
}

func (e *UpstreamUnavailableError) Error() string {
	return fmt.Sprintf("upstream %s unavailable: %v", e.Upstream, e.Err)
}

func (e *UpstreamUnavailableError) Unwrap() error { return e.Err }
