package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	pending ──> in_progress ──> delivered ──> completed
//	                 ▲               │
//	                 │               ▼
//	                 └──── revision_requested
//
//	pending, in_progress, delivered, revision_requested ──> cancelled
//
// Completed and Cancelled are terminal.
type Status int

const (
	// Unknown catches uninitialized values. It is never persisted.
	Unknown Status = iota
	Pending
	InProgress
	Delivered
	RevisionRequested
	Completed
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:           "unknown",
	Pending:           "pending",
	InProgress:        "in_progress",
	Delivered:         "delivered",
	RevisionRequested: "revision_requested",
	Completed:         "completed",
	Cancelled:         "cancelled",
}

// transitions lists the allowed targets per source status, in display order.
var transitions = map[Status][]Status{
	Pending:           {InProgress, Cancelled},
	InProgress:        {Delivered, Cancelled},
	Delivered:         {RevisionRequested, Completed, Cancelled},
	RevisionRequested: {InProgress, Cancelled},
	Completed:         {},
	Cancelled:         {},
}

// ParseStatus converts a wire or database name such as "in_progress" into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name used on the wire and in storage.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no transition can leave s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// AllowedTransitions returns the targets reachable from s in one step.
// The result is a fresh slice and never nil.
func (s Status) AllowedTransitions() []Status {
	allowed := transitions[s]
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// CanTransitionTo reports whether (s, to) appears in the transition table.
func (s Status) CanTransitionTo(to Status) bool {
	for _, candidate := range transitions[s] {
		if candidate == to {
			return true
		}
	}
	return false
}

// TransitionTo returns to when the move is allowed, or an InvalidTransitionError
// naming both states and the targets that are allowed from s.
//
// Example:
//
//	_, err := order.Pending.TransitionTo(order.Completed)
//	// status transition is not allowed: pending -> completed (allowed from pending: in_progress, cancelled)
func (s Status) TransitionTo(to Status) (Status, error) {
	if !s.CanTransitionTo(to) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), to.String(), Names(s.AllowedTransitions()))
	}
	return to, nil
}

// Names maps statuses to their string names.
func Names(statuses []Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
